package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/staynest/rental-platform/internal/api/middleware"
	"github.com/staynest/rental-platform/internal/core/domain"
)

// ctxActor extracts the authenticated user injected by the Auth middleware.
// Its presence proves the middleware ran; handlers on protected routes must
// never trust a client-supplied user id instead.
func ctxActor(c echo.Context) (*domain.User, error) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok || actor == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	return actor, nil
}
