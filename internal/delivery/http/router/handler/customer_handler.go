package handler

import (
	"net/http"

	"trading/internal/delivery/http/response"
	"trading/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CustomerHandler holds dependencies for customer management handlers.
type CustomerHandler struct {
	uc usecase.CustomerUsecase
}

// NewCustomerHandler is the constructor for CustomerHandler, injected by Fx.
func NewCustomerHandler(uc usecase.CustomerUsecase) *CustomerHandler {
	return &CustomerHandler{uc: uc}
}

type customerRequest struct {
	Name    string `json:"name" validate:"required"`
	EIK     string `json:"eik" validate:"required,len=9,numeric"`
	Email   string `json:"email" validate:"required,email"`
	Address string `json:"address"`
}

// List returns every customer.
func (h *CustomerHandler) List(c echo.Context) error {
	customers, err := h.uc.ListCustomers(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toCustomerViews(customers), "")
}

// Get returns a single customer by ID.
func (h *CustomerHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_ID", "Invalid customer id")
	}

	customer, err := h.uc.GetCustomer(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toCustomerView(customer), "")
}

// Create registers a new customer.
func (h *CustomerHandler) Create(c echo.Context) error {
	var req customerRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid customer input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	customer, err := h.uc.CreateCustomer(c.Request().Context(), usecase.CustomerInput{
		Name:    req.Name,
		EIK:     req.EIK,
		Email:   req.Email,
		Address: req.Address,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toCustomerView(customer), "Customer created successfully")
}

// Update overwrites a customer's details.
func (h *CustomerHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_ID", "Invalid customer id")
	}

	var req customerRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid customer input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	customer, err := h.uc.UpdateCustomer(c.Request().Context(), id, usecase.CustomerInput{
		Name:    req.Name,
		EIK:     req.EIK,
		Email:   req.Email,
		Address: req.Address,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toCustomerView(customer), "Customer updated successfully")
}

// Delete removes a customer without orders.
func (h *CustomerHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_ID", "Invalid customer id")
	}

	if err := h.uc.DeleteCustomer(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}
