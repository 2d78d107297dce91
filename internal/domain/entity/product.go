package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a catalog item with live on-hand stock. Quantity is mutated by
// the order workflow and must never go negative.
type Product struct {
	ID          uuid.UUID
	Name        string          // Unique product name.
	Price       decimal.Decimal // Unit price, non-negative.
	Quantity    int             // On-hand stock, non-negative.
	Category    string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
