package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceRecord is the wire representation of an invoice exchanged with the
// invoice service. IssuedOn is left unset on creation; the invoice service
// assigns it.
type InvoiceRecord struct {
	ID           uuid.UUID       `json:"id"`
	OrderID      uuid.UUID       `json:"orderId"`
	EIK          string          `json:"eik"`
	CustomerName string          `json:"customerName"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	IssuedOn     *time.Time      `json:"issuedOn,omitempty"`
}

// InvoiceClient is the typed HTTP client for the external invoice service.
// Calls are synchronous with no retry; errors propagate to the caller, and
// only the order workflow is allowed to absorb them.
type InvoiceClient interface {
	// CreateInvoice requests creation of an invoice. A nil record, or a
	// record with a zero ID, means the service declined to create one; that
	// outcome is not an error.
	CreateInvoice(ctx context.Context, req *InvoiceRecord) (*InvoiceRecord, error)

	// GetInvoice fetches a single invoice by ID.
	GetInvoice(ctx context.Context, id uuid.UUID) (*InvoiceRecord, error)

	// ListInvoices fetches all invoices.
	ListInvoices(ctx context.Context) ([]*InvoiceRecord, error)

	// DeleteInvoice removes an invoice by ID.
	DeleteInvoice(ctx context.Context, id uuid.UUID) error
}
