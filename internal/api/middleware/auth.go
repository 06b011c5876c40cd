package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/staynest/rental-platform/internal/core/domain"
	"github.com/staynest/rental-platform/internal/core/ports"
)

// CookieName is the session cookie carrying the signed token. The token is
// never accepted from a header or body, and never echoed back in JSON.
const CookieName = "access_token"

// userContextKey is where the authenticated user is stored on the request.
const userContextKey = "auth_user"

// TokenVerifier is the subset of the auth service the middleware needs.
type TokenVerifier interface {
	VerifyToken(token string) (string, error)
}

// Auth validates the session cookie and loads the current user record so
// downstream policy checks see fresh role/block state. It rejects with 401
// before any handler runs when the cookie is missing, forged or expired.
func Auth(verifier TokenVerifier, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(CookieName)
			if err != nil || cookie.Value == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}

			userID, err := verifier.VerifyToken(cookie.Value)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}

			user, err := users.FindByID(c.Request().Context(), userID)
			if err != nil {
				// A valid token for a deleted account is still unauthenticated.
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}

			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

// ActorFromContext returns the authenticated user injected by Auth.
func ActorFromContext(c echo.Context) (*domain.User, bool) {
	user, ok := c.Get(userContextKey).(*domain.User)
	return user, ok
}

// SetActor injects a user into the request context. Exported for tests and
// for the RBAC middleware's own tests.
func SetActor(c echo.Context, u *domain.User) {
	c.Set(userContextKey, u)
}
