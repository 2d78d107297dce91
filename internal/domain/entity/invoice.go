package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Invoice is the invoice service's own record. OrderID is an opaque
// cross-service reference into the trading application; it is never checked
// against the remote store. Invoices are immutable after creation except for
// deletion, and are swept once older than the retention window.
type Invoice struct {
	ID           uuid.UUID
	OrderID      uuid.UUID
	EIK          string
	CustomerName string
	TotalAmount  decimal.Decimal // Must be positive.
	IssuedOn     time.Time       // Defaults to creation time when not supplied.
}
