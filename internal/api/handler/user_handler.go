package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/staynest/rental-platform/internal/api/metrics"
	"github.com/staynest/rental-platform/internal/core/domain"
	"github.com/staynest/rental-platform/internal/core/ports"
)

// UserHandler handles profile management and user administration.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

type updateProfileRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"     validate:"omitempty,email"`
	Role     *string `json:"role"      validate:"omitempty,oneof=tenant owner admin"`
	Password *string `json:"password"  validate:"omitempty,min=6"`
}

type profileResponse struct {
	Success       bool         `json:"success"`
	Message       string       `json:"message"`
	User          *domain.User `json:"user,omitempty"`
	ChangedFields []string     `json:"changed_fields,omitempty"`
}

type usersResponse struct {
	Success bool           `json:"success"`
	Total   int            `json:"total"`
	Data    []*domain.User `json:"data"`
}

// UpdateProfile handles PUT /api/user/profile. The target is always the
// authenticated actor; no other user id is accepted.
//
// @Summary      Update own profile
// @Tags         user
// @Accept       json
// @Produce      json
// @Success      200  {object}  profileResponse
// @Failure      400  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /api/user/profile [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.UpdateProfile(c.Request().Context(), actor, ports.UpdateProfileInput{
		Name:     req.Name,
		Email:    req.Email,
		Role:     req.Role,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, profileResponse{
		Success:       true,
		Message:       "profile updated successfully",
		User:          result.User,
		ChangedFields: result.ChangedFields,
	})
}

// DeleteProfile handles DELETE /api/user/profile.
//
// @Summary      Delete own account
// @Tags         user
// @Produce      json
// @Success      200  {object}  profileResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/user/profile [delete]
func (h *UserHandler) DeleteProfile(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteProfile(c.Request().Context(), actor); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, profileResponse{
		Success: true,
		Message: "user account deleted successfully",
	})
}

// ListUsers handles GET /api/user/users (admin only). Password hashes never
// serialize: the domain type hides the field from JSON.
//
// @Summary      List all users
// @Tags         user
// @Produce      json
// @Success      200  {object}  usersResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/user/users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	users, err := h.service.ListUsers(c.Request().Context(), actor)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, usersResponse{
		Success: true,
		Total:   len(users),
		Data:    users,
	})
}

// BlockUser handles PUT /api/user/block/:userId (admin only).
//
// @Summary      Block a user
// @Tags         user
// @Produce      json
// @Param        userId  path  string  true  "Target user id"
// @Success      200  {object}  profileResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/user/block/{userId} [put]
func (h *UserHandler) BlockUser(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	if err := h.service.BlockUser(c.Request().Context(), actor, c.Param("userId")); err != nil {
		return err
	}

	metrics.UsersBlockedTotal.WithLabelValues("block").Inc()
	return c.JSON(http.StatusOK, profileResponse{
		Success: true,
		Message: "user blocked successfully",
	})
}

// UnblockUser handles PUT /api/user/unblock/:userId (admin only).
//
// @Summary      Unblock a user
// @Tags         user
// @Produce      json
// @Param        userId  path  string  true  "Target user id"
// @Success      200  {object}  profileResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/user/unblock/{userId} [put]
func (h *UserHandler) UnblockUser(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	if err := h.service.UnblockUser(c.Request().Context(), actor, c.Param("userId")); err != nil {
		return err
	}

	metrics.UsersBlockedTotal.WithLabelValues("unblock").Inc()
	return c.JSON(http.StatusOK, profileResponse{
		Success: true,
		Message: "user unblocked successfully",
	})
}
