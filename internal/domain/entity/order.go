package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order is the aggregate root for a purchase: it owns its items exclusively,
// and items are only ever created or replaced as part of the whole order.
type Order struct {
	ID         uuid.UUID
	CustomerID uuid.UUID
	Customer   *Customer // Populated on reads; nil on bare writes.
	CreatedBy  uuid.UUID // The user account that placed the order.
	Creator    *User     // Populated on reads.
	CreatedOn  time.Time
	Items      []OrderItem
	TotalPrice decimal.Decimal
	// InvoiceID references a row in the invoice service's own store. It is
	// set at most once, after a successful remote call, and is never
	// enforced by a database constraint.
	InvoiceID *uuid.UUID
}

// OrderItem snapshots one product line at the time of ordering. Price and
// Total are frozen copies, not live links to the product.
type OrderItem struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	ProductID uuid.UUID
	Product   *Product // Populated on reads.
	Quantity  int
	Price     decimal.Decimal // Unit price at time of order.
	Total     decimal.Decimal // Price multiplied by Quantity.
}
