package ports

import (
	"context"

	"github.com/staynest/rental-platform/internal/core/domain"
)

// UpdateProfileInput is a partial patch for the actor's own account.
type UpdateProfileInput struct {
	Name     *string
	Email    *string
	Role     *string
	Password *string
}

// ProfileUpdateResult reports the outcome of a profile update, including
// which fields actually changed. A password identical to the stored one is
// silently skipped and does not appear in ChangedFields.
type ProfileUpdateResult struct {
	User          *domain.User
	ChangedFields []string
}

// UserService defines profile and administration use cases.
type UserService interface {
	UpdateProfile(ctx context.Context, actor *domain.User, input UpdateProfileInput) (*ProfileUpdateResult, error)
	// DeleteProfile hard-deletes the actor's account and removes the
	// listings it owned.
	DeleteProfile(ctx context.Context, actor *domain.User) error
	ListUsers(ctx context.Context, actor *domain.User) ([]*domain.User, error)
	BlockUser(ctx context.Context, actor *domain.User, targetID string) error
	UnblockUser(ctx context.Context, actor *domain.User, targetID string) error
}
