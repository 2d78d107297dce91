package handler

import (
	"net/http"

	"trading/internal/delivery/http/middleware"
	"trading/internal/delivery/http/response"
	"trading/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// OrderHandler holds dependencies for the order workflow handlers.
type OrderHandler struct {
	uc usecase.OrderUsecase
}

// NewOrderHandler is the constructor for OrderHandler, injected by Fx.
func NewOrderHandler(uc usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

type orderLineRequest struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
}

type orderRequest struct {
	CustomerID      uuid.UUID          `json:"customerId" validate:"required"`
	Items           []orderLineRequest `json:"items" validate:"required,min=1,dive"`
	GenerateInvoice bool               `json:"generateInvoice"`
}

func (r orderRequest) toInput() usecase.PlaceOrderInput {
	items := make([]usecase.OrderLineInput, 0, len(r.Items))
	for _, line := range r.Items {
		items = append(items, usecase.OrderLineInput{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		})
	}

	return usecase.PlaceOrderInput{
		CustomerID:      r.CustomerID,
		Items:           items,
		GenerateInvoice: r.GenerateInvoice,
	}
}

// List returns the orders visible to the caller.
func (h *OrderHandler) List(c echo.Context) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Caller identity missing")
	}

	orders, err := h.uc.ListOrders(c.Request().Context(), actor)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toOrderViews(orders), "")
}

// Get returns a single order.
func (h *OrderHandler) Get(c echo.Context) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Caller identity missing")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_ID", "Invalid order id")
	}

	order, err := h.uc.GetOrder(c.Request().Context(), actor, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toOrderView(order), "")
}

// Place creates a new order.
func (h *OrderHandler) Place(c echo.Context) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Caller identity missing")
	}

	var req orderRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	order, err := h.uc.PlaceOrder(c.Request().Context(), actor, req.toInput())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toOrderView(order), "Order placed successfully")
}

// Update rebuilds an existing order from the request.
func (h *OrderHandler) Update(c echo.Context) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Caller identity missing")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_ID", "Invalid order id")
	}

	var req orderRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	order, err := h.uc.UpdateOrder(c.Request().Context(), actor, id, req.toInput())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toOrderView(order), "Order updated successfully")
}

// Delete removes an order and returns its stock.
func (h *OrderHandler) Delete(c echo.Context) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Caller identity missing")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_ID", "Invalid order id")
	}

	if err := h.uc.DeleteOrder(c.Request().Context(), actor, id); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}
