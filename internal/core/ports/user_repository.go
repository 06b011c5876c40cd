package ports

import (
	"context"

	"github.com/staynest/rental-platform/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// UpdateFields applies a partial update to the user document. Keys are
	// domain field names: name, email, password_hash, role.
	UpdateFields(ctx context.Context, id string, fields map[string]any) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*domain.User, error)
	// SetBlocked toggles the block flag. Setting an already-set value is not
	// an error.
	SetBlocked(ctx context.Context, id string, blocked bool) error
}
