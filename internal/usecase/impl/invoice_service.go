package impl

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.uber.org/fx"

	"trading/config"
	"trading/internal/domain/entity"
	domainerrors "trading/internal/domain/errors"
	"trading/internal/domain/repository"
	"trading/internal/domain/service"
	"trading/internal/errors"
	"trading/internal/usecase"
)

const (
	invoiceListCacheKey = "invoices:all"

	defaultRetentionDays = 365
)

type invoiceService struct {
	invoiceRepo repository.InvoiceRepository
	renderer    service.InvoicePDFRenderer
	cache       service.ListingCache
	config      *config.Config
	logger      *slog.Logger
}

// InvoiceServiceParams holds dependencies for InvoiceService, injected by Fx.
type InvoiceServiceParams struct {
	fx.In

	InvoiceRepo repository.InvoiceRepository
	Renderer    service.InvoicePDFRenderer
	Cache       service.ListingCache
	Config      *config.Config
	Logger      *slog.Logger
}

// NewInvoiceService creates a new invoice service instance
func NewInvoiceService(params InvoiceServiceParams) usecase.InvoiceUsecase {
	return &invoiceService{
		invoiceRepo: params.InvoiceRepo,
		renderer:    params.Renderer,
		cache:       params.Cache,
		config:      params.Config,
		logger:      params.Logger,
	}
}

// ListInvoices returns every invoice, newest first, served from the listing
// cache when nothing has changed since the last read.
func (s *invoiceService) ListInvoices(ctx context.Context) ([]*entity.Invoice, error) {
	if cached, ok := s.cache.Get(invoiceListCacheKey); ok {
		if invoices, ok := cached.([]*entity.Invoice); ok {
			return invoices, nil
		}
	}

	invoices, err := s.invoiceRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	s.cache.Set(invoiceListCacheKey, invoices)

	return invoices, nil
}

// GetInvoice returns a single invoice by ID.
func (s *invoiceService) GetInvoice(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrInvoiceNotFound) {
			return nil, domainerrors.ErrInvoiceNotFound
		}

		return nil, errors.Wrap(err, "failed to find invoice")
	}

	return invoice, nil
}

// CreateInvoice validates and stores a new invoice. IssuedOn defaults to the
// current time when the caller leaves it unset.
func (s *invoiceService) CreateInvoice(ctx context.Context, input usecase.CreateInvoiceInput) (*entity.Invoice, error) {
	if input.OrderID == uuid.Nil {
		return nil, domainerrors.ErrInvoiceInvalid.WithDetails("order id is required")
	}
	if input.EIK == "" {
		return nil, domainerrors.ErrInvoiceInvalid.WithDetails("eik is required")
	}
	if input.CustomerName == "" {
		return nil, domainerrors.ErrInvoiceInvalid.WithDetails("customer name is required")
	}
	if !input.TotalAmount.IsPositive() {
		return nil, domainerrors.ErrInvoiceInvalid.WithDetails("total amount must be positive")
	}

	issuedOn := time.Now()
	if input.IssuedOn != nil {
		issuedOn = *input.IssuedOn
	}

	invoice := &entity.Invoice{
		OrderID:      input.OrderID,
		EIK:          input.EIK,
		CustomerName: input.CustomerName,
		TotalAmount:  input.TotalAmount,
		IssuedOn:     issuedOn,
	}

	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, err
	}

	s.cache.Flush()

	s.logger.Info("Invoice created",
		slog.String("invoiceId", invoice.ID.String()),
		slog.String("orderId", invoice.OrderID.String()),
		slog.String("totalAmount", invoice.TotalAmount.String()),
	)

	return invoice, nil
}

// DeleteInvoice removes an invoice by ID.
func (s *invoiceService) DeleteInvoice(ctx context.Context, id uuid.UUID) error {
	if err := s.invoiceRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrInvoiceNotFound) {
			return domainerrors.ErrInvoiceNotFound
		}

		return err
	}

	s.cache.Flush()

	s.logger.Info("Invoice deleted", slog.String("invoiceId", id.String()))

	return nil
}

// RenderInvoicePDF produces the printable document for an invoice.
func (s *invoiceService) RenderInvoicePDF(ctx context.Context, id uuid.UUID) ([]byte, error) {
	invoice, err := s.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}

	document, err := s.renderer.Render(invoice)
	if err != nil {
		return nil, errors.Wrap(err, "failed to render invoice")
	}

	return document, nil
}

// CleanupExpired deletes invoices older than the retention window, logging
// each removal. A failed delete stops the sweep; the remaining invoices get
// picked up on the next run.
func (s *invoiceService) CleanupExpired(ctx context.Context) error {
	retentionDays := defaultRetentionDays
	if s.config.Cleanup != nil && s.config.Cleanup.RetentionDays > 0 {
		retentionDays = s.config.Cleanup.RetentionDays
	}

	cutoff := time.Now().AddDate(0, 0, -retentionDays)

	expired, err := s.invoiceRepo.FindIssuedBefore(ctx, cutoff)
	if err != nil {
		return errors.Wrap(err, "failed to list expired invoices")
	}
	if len(expired) == 0 {
		s.logger.Info("No expired invoices to clean up",
			slog.Time("cutoff", cutoff),
		)

		return nil
	}

	deleted := 0
	for _, invoice := range expired {
		if err := s.invoiceRepo.Delete(ctx, invoice.ID); err != nil {
			if errors.Is(err, repository.ErrInvoiceNotFound) {
				// Already gone, nothing to do.
				continue
			}

			s.cache.Flush()

			return errors.Wrapf(err, "failed to delete expired invoice %s", invoice.ID)
		}

		deleted++
		s.logger.Info("Deleted expired invoice",
			slog.String("invoiceId", invoice.ID.String()),
			slog.Time("issuedOn", invoice.IssuedOn),
		)
	}

	s.cache.Flush()

	s.logger.Info("Invoice cleanup finished",
		slog.Time("cutoff", cutoff),
		slog.Int("deleted", deleted),
	)

	return nil
}
