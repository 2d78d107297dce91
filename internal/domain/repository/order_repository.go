package repository

import (
	"context"
	"errors"

	"trading/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrOrderNotFound is a domain-specific error returned when an order is not found.
var ErrOrderNotFound = errors.New("order not found")

// OrderRepository defines the standard operations for order persistence.
// An order and its items form one aggregate: Create and Update always write
// the full item set, and Delete removes the items with the order.
type OrderRepository interface {
	// FindAll retrieves every order, newest first.
	FindAll(ctx context.Context) ([]*entity.Order, error)

	// FindByCreator retrieves the orders placed by a specific user, newest first.
	FindByCreator(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error)

	// FindByID retrieves a single order with its items.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// Create persists a new order together with all of its items.
	Create(ctx context.Context, order *entity.Order) error

	// Update persists the order and replaces its item set wholesale.
	Update(ctx context.Context, order *entity.Order) error

	// Delete removes an order and its items.
	Delete(ctx context.Context, id uuid.UUID) error

	// SetInvoiceID records the invoice reference on an already persisted
	// order without touching the rest of the aggregate.
	SetInvoiceID(ctx context.Context, orderID, invoiceID uuid.UUID) error

	// ExistsByCustomer reports whether any order references the given customer.
	ExistsByCustomer(ctx context.Context, customerID uuid.UUID) (bool, error)
}
