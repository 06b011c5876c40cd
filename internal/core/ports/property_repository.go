package ports

import (
	"context"

	"github.com/staynest/rental-platform/internal/core/domain"
)

// PropertyRepository defines persistence operations for listings.
type PropertyRepository interface {
	Create(ctx context.Context, p *domain.Property) (*domain.Property, error)
	FindByID(ctx context.Context, id string) (*domain.Property, error)
	// Update applies a partial field replacement, preserving unlisted fields,
	// and returns the updated document.
	Update(ctx context.Context, id string, fields map[string]any) (*domain.Property, error)
	Delete(ctx context.Context, id string) error
	// Search returns listings matching filter, each carrying a denormalized
	// owner summary. Ordering is deterministic (newest first).
	Search(ctx context.Context, filter domain.SearchFilter) ([]*domain.Property, error)
	// DeleteByOwner removes every listing owned by the given user and
	// returns the number removed.
	DeleteByOwner(ctx context.Context, ownerID string) (int64, error)
}
