package handler

import "time"

// --- Request types ---

// createPropertyRequest binds the multipart form fields of a new listing.
// Image files arrive alongside these fields and are handled separately;
// pre-uploaded URIs may be passed via the images field.
type createPropertyRequest struct {
	Title         string   `form:"title"          json:"title"          validate:"required"`
	Price         float64  `form:"price"          json:"price"          validate:"gte=0"`
	Location      string   `form:"location"       json:"location"       validate:"required"`
	Description   string   `form:"description"    json:"description"    validate:"required"`
	Images        []string `form:"images"         json:"images"`
	Amenities     []string `form:"amenities"      json:"amenities"`
	PropertyType  string   `form:"property_type"  json:"property_type"  validate:"required,oneof=Apartment Villa PG Plot Commercial"`
	Bedrooms      int      `form:"bedrooms"       json:"bedrooms"       validate:"gte=0"`
	Bathrooms     int      `form:"bathrooms"      json:"bathrooms"      validate:"gte=0"`
	Elevator      bool     `form:"elevator"       json:"elevator"`
	SqFeet        float64  `form:"sqfeet"         json:"sqfeet"         validate:"gte=0"`
	AvailableFrom string   `form:"available_from" json:"available_from"`
}

// updatePropertyRequest is a partial patch; absent fields leave the stored
// value untouched.
type updatePropertyRequest struct {
	Title         *string  `json:"title"`
	Price         *float64 `json:"price"`
	Location      *string  `json:"location"`
	Description   *string  `json:"description"`
	Images        []string `json:"images"`
	Amenities     []string `json:"amenities"`
	PropertyType  *string  `json:"property_type"`
	Bedrooms      *int     `json:"bedrooms"`
	Bathrooms     *int     `json:"bathrooms"`
	Elevator      *bool    `json:"elevator"`
	SqFeet        *float64 `json:"sqfeet"`
	AvailableFrom *string  `json:"available_from"`
	BookingStatus *bool    `json:"booking_status"`
}

// --- Response types ---
// Owned by the transport layer so the JSON contract is not coupled to
// internal service changes.

type ownerResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type propertyResponse struct {
	ID            string         `json:"id"`
	Title         string         `json:"title"`
	Price         float64        `json:"price"`
	Location      string         `json:"location"`
	Description   string         `json:"description"`
	Images        []string       `json:"images"`
	Amenities     []string       `json:"amenities"`
	PropertyType  string         `json:"property_type"`
	Bedrooms      int            `json:"bedrooms"`
	Bathrooms     int            `json:"bathrooms"`
	Elevator      bool           `json:"elevator"`
	SqFeet        float64        `json:"sqfeet"`
	AvailableFrom *time.Time     `json:"available_from,omitempty"`
	BookingStatus bool           `json:"booking_status"`
	OwnerID       string         `json:"owner_id"`
	Owner         *ownerResponse `json:"owner,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

type propertyEnvelope struct {
	Success bool             `json:"success"`
	Message string           `json:"message,omitempty"`
	Data    propertyResponse `json:"data"`
}

type listPropertiesResponse struct {
	Success bool               `json:"success"`
	Total   int                `json:"total"`
	Data    []propertyResponse `json:"data"`
}

type deletedResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
