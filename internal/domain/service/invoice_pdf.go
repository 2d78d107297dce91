package service

import "trading/internal/domain/entity"

// InvoicePDFRenderer produces a printable document for a stored invoice.
type InvoicePDFRenderer interface {
	// Render returns a single-page PDF summarizing the invoice.
	Render(invoice *entity.Invoice) ([]byte, error)
}
