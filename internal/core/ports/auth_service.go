package ports

import (
	"context"

	"github.com/staynest/rental-platform/internal/core/domain"
)

// AuthService implements registration, login and session-token verification.
type AuthService interface {
	Register(ctx context.Context, name, email, password, role string) (*domain.User, error)
	// Login returns a signed session token alongside the user on success.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// VerifyToken validates a session token and returns the bound user id.
	// It fails with domain.ErrUnauthenticated on any malformed, forged or
	// expired token.
	VerifyToken(token string) (string, error)
}
