package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/staynest/rental-platform/internal/api/metrics"
	"github.com/staynest/rental-platform/internal/api/middleware"
	"github.com/staynest/rental-platform/internal/core/domain"
	"github.com/staynest/rental-platform/internal/core/ports"
)

// AuthHandler handles registration, login and signout.
type AuthHandler struct {
	authService ports.AuthService
	sessionTTL  time.Duration
}

func NewAuthHandler(authService ports.AuthService, sessionTTL time.Duration) *AuthHandler {
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	return &AuthHandler{authService: authService, sessionTTL: sessionTTL}
}

type registerRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role"     validate:"required,oneof=tenant owner admin"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	User    *domain.User `json:"user,omitempty"`
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.Register(c.Request().Context(), req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, authResponse{
		Success: true,
		Message: "user registered successfully",
		User:    user,
	})
}

// Login authenticates a user and sets the session cookie. The token travels
// only in the HTTP-only cookie, never in the JSON body.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			metrics.LoginAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
		case errors.Is(err, domain.ErrUserNotFound):
			metrics.LoginAttemptsTotal.WithLabelValues("not_found").Inc()
		default:
			metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		}
		return err
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()

	c.SetCookie(&http.Cookie{
		Name:     middleware.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.sessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return c.JSON(http.StatusOK, authResponse{
		Success: true,
		Message: "login successful",
		User:    user,
	})
}

// Signout clears the session cookie. Idempotent: succeeds whether or not a
// session was present.
//
// @Summary      Sign out
// @Tags         auth
// @Produce      json
// @Success      200  {object}  authResponse
// @Router       /api/auth/signout [get]
func (h *AuthHandler) Signout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     middleware.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	return c.JSON(http.StatusOK, authResponse{
		Success: true,
		Message: "user signed out successfully",
	})
}
