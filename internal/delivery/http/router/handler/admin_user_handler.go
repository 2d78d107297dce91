package handler

import (
	"net/http"

	"trading/internal/delivery/http/response"
	"trading/internal/domain/entity"
	"trading/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AdminUserHandler holds dependencies for the admin account management handlers.
type AdminUserHandler struct {
	uc usecase.UserUsecase
}

// NewAdminUserHandler is the constructor for AdminUserHandler, injected by Fx.
func NewAdminUserHandler(uc usecase.UserUsecase) *AdminUserHandler {
	return &AdminUserHandler{uc: uc}
}

type updateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=USER ADMIN"`
}

type setActiveRequest struct {
	Active *bool `json:"active" validate:"required"`
}

// List returns every account.
func (h *AdminUserHandler) List(c echo.Context) error {
	users, err := h.uc.ListUsers(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toUserViews(users), "")
}

// UpdateRole sets an account's role.
func (h *AdminUserHandler) UpdateRole(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_ID", "Invalid user id")
	}

	var req updateRoleRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid role input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	user, err := h.uc.UpdateRole(c.Request().Context(), id, entity.Role(req.Role))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toUserView(user), "User role updated successfully")
}

// SetActive enables or disables an account.
func (h *AdminUserHandler) SetActive(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_ID", "Invalid user id")
	}

	var req setActiveRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid active flag input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	user, err := h.uc.SetActive(c.Request().Context(), id, *req.Active)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toUserView(user), "User active flag updated successfully")
}
