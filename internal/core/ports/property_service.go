package ports

import (
	"context"
	"time"

	"github.com/staynest/rental-platform/internal/core/domain"
)

// CreatePropertyInput carries the client-submitted draft of a listing.
// Server-assigned fields (id, timestamps) are absent by construction.
type CreatePropertyInput struct {
	Title         string
	Price         float64
	Location      string
	Description   string
	Images        []string
	Amenities     []string
	PropertyType  string
	Bedrooms      int
	Bathrooms     int
	Elevator      bool
	SqFeet        float64
	AvailableFrom *time.Time
}

// UpdatePropertyInput is a partial patch: nil pointers leave the stored
// field untouched.
type UpdatePropertyInput struct {
	Title         *string
	Price         *float64
	Location      *string
	Description   *string
	Images        []string
	Amenities     []string
	PropertyType  *string
	Bedrooms      *int
	Bathrooms     *int
	Elevator      *bool
	SqFeet        *float64
	AvailableFrom *time.Time
	BookingStatus *bool
}

// PropertyService defines the listing use cases. Every mutation takes the
// authenticated actor; the service runs the access policy before touching
// the store.
type PropertyService interface {
	Create(ctx context.Context, actor *domain.User, input CreatePropertyInput) (*domain.Property, error)
	GetByID(ctx context.Context, id string) (*domain.Property, error)
	Update(ctx context.Context, actor *domain.User, id string, input UpdatePropertyInput) (*domain.Property, error)
	Delete(ctx context.Context, actor *domain.User, id string) error
	Search(ctx context.Context, filter domain.SearchFilter) ([]*domain.Property, error)
}
