package usecase

import (
	"context"

	"github.com/google/uuid"

	"trading/internal/domain/entity"
)

// OrderLineInput is one requested product line of an order.
type OrderLineInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// PlaceOrderInput defines the data required to place a new order.
type PlaceOrderInput struct {
	CustomerID uuid.UUID
	Items      []OrderLineInput

	// GenerateInvoice asks for a companion invoice after the order commits.
	// The invoice call is best effort; its failure never undoes the order.
	GenerateInvoice bool
}

// OrderUsecase defines the interface for the order workflow.
type OrderUsecase interface {
	// ListOrders returns orders visible to the actor: all of them for an
	// admin, only the actor's own for a regular user.
	ListOrders(ctx context.Context, actor Actor) ([]*entity.Order, error)

	// GetOrder returns a single order with its items.
	GetOrder(ctx context.Context, actor Actor, id uuid.UUID) (*entity.Order, error)

	// PlaceOrder validates stock, decrements it, and persists the order
	// atomically, then optionally requests an invoice.
	PlaceOrder(ctx context.Context, actor Actor, input PlaceOrderInput) (*entity.Order, error)

	// UpdateOrder restores the stock held by the existing order, then
	// rebuilds it from the input as if placed anew.
	UpdateOrder(ctx context.Context, actor Actor, id uuid.UUID, input PlaceOrderInput) (*entity.Order, error)

	// DeleteOrder removes an order and returns its stock.
	DeleteOrder(ctx context.Context, actor Actor, id uuid.UUID) error
}
