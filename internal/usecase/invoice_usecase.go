package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"trading/internal/domain/entity"
)

// CreateInvoiceInput defines the data required to issue an invoice.
type CreateInvoiceInput struct {
	OrderID      uuid.UUID
	EIK          string
	CustomerName string
	TotalAmount  decimal.Decimal

	// IssuedOn defaults to the current time when unset.
	IssuedOn *time.Time
}

// InvoiceUsecase defines the interface for invoice management operations.
type InvoiceUsecase interface {
	// ListInvoices returns every invoice, newest first. Results are served
	// from the listing cache when possible.
	ListInvoices(ctx context.Context) ([]*entity.Invoice, error)

	// GetInvoice returns a single invoice by ID.
	GetInvoice(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)

	// CreateInvoice validates and stores a new invoice.
	CreateInvoice(ctx context.Context, input CreateInvoiceInput) (*entity.Invoice, error)

	// DeleteInvoice removes an invoice by ID.
	DeleteInvoice(ctx context.Context, id uuid.UUID) error

	// RenderInvoicePDF produces the printable document for an invoice.
	RenderInvoicePDF(ctx context.Context, id uuid.UUID) ([]byte, error)

	// CleanupExpired deletes invoices older than the retention window.
	// Run on a schedule.
	CleanupExpired(ctx context.Context) error
}
