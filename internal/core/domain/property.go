package domain

import "time"

// PropertyType enumerates the supported listing categories.
type PropertyType string

const (
	TypeApartment  PropertyType = "Apartment"
	TypeVilla      PropertyType = "Villa"
	TypePG         PropertyType = "PG"
	TypePlot       PropertyType = "Plot"
	TypeCommercial PropertyType = "Commercial"
)

// ValidPropertyType reports whether t is a known listing category.
func ValidPropertyType(t PropertyType) bool {
	switch t {
	case TypeApartment, TypeVilla, TypePG, TypePlot, TypeCommercial:
		return true
	}
	return false
}

// Property is the core listing aggregate.
type Property struct {
	ID            string        `json:"id"`
	Title         string        `json:"title"`
	Price         float64       `json:"price"`
	Location      string        `json:"location"`
	Description   string        `json:"description"`
	Images        []string      `json:"images"`
	Amenities     []string      `json:"amenities"`
	PropertyType  PropertyType  `json:"property_type"`
	Bedrooms      int           `json:"bedrooms"`
	Bathrooms     int           `json:"bathrooms"`
	Elevator      bool          `json:"elevator"`
	SqFeet        float64       `json:"sqfeet"`
	AvailableFrom *time.Time    `json:"available_from,omitempty"`
	BookingStatus bool          `json:"booking_status"`
	OwnerID       string        `json:"owner_id"`
	Owner         *OwnerSummary `json:"owner,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// Validate checks the invariants a listing must satisfy before it is stored.
func (p *Property) Validate() error {
	if p.Title == "" || p.Location == "" || p.Description == "" || p.OwnerID == "" {
		return ErrInvalidInput
	}
	if len(p.Images) == 0 {
		return ErrInvalidInput
	}
	if p.Price < 0 || p.SqFeet < 0 {
		return ErrInvalidInput
	}
	if !ValidPropertyType(p.PropertyType) {
		return ErrInvalidInput
	}
	return nil
}

// SearchFilter carries the listing query dimensions. All present dimensions
// combine with logical AND.
type SearchFilter struct {
	// Text matches case-insensitively as a substring of title, location or
	// description (OR across the three fields).
	Text string
	// MinPrice/MaxPrice are inclusive bounds; nil means unbounded.
	MinPrice *float64
	MaxPrice *float64
	// Amenities, when non-empty, requires the listing's amenity set to be a
	// superset of the requested set.
	Amenities []string
}
