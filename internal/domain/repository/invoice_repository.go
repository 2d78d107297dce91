package repository

import (
	"context"
	"errors"
	"time"

	"trading/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrInvoiceNotFound is a domain-specific error returned when an invoice is not found.
var ErrInvoiceNotFound = errors.New("invoice not found")

// InvoiceRepository defines the standard operations for invoice persistence
// in the invoice service's own store.
type InvoiceRepository interface {
	// FindAll retrieves every stored invoice.
	FindAll(ctx context.Context) ([]*entity.Invoice, error)

	// FindByID retrieves a single invoice by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)

	// FindIssuedBefore retrieves invoices issued strictly before the cutoff.
	FindIssuedBefore(ctx context.Context, cutoff time.Time) ([]*entity.Invoice, error)

	// Create persists a new invoice with a generated identity.
	Create(ctx context.Context, invoice *entity.Invoice) error

	// Delete removes an invoice by ID.
	Delete(ctx context.Context, id uuid.UUID) error
}
