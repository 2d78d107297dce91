package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"trading/config"
	"trading/internal/domain/entity"
	domainerrors "trading/internal/domain/errors"
	"trading/internal/domain/repository"
	"trading/internal/infra/cache"
	"trading/internal/mocks"
	"trading/internal/usecase"
)

type invoiceServiceMocks struct {
	invoiceRepo *mocks.InvoiceRepository
	renderer    *mocks.InvoicePDFRenderer
}

func newInvoiceService(t *testing.T, cfg *config.Config) (usecase.InvoiceUsecase, *invoiceServiceMocks) {
	t.Helper()

	if cfg == nil {
		cfg = &config.Config{}
	}

	m := &invoiceServiceMocks{
		invoiceRepo: new(mocks.InvoiceRepository),
		renderer:    new(mocks.InvoicePDFRenderer),
	}

	svc := NewInvoiceService(InvoiceServiceParams{
		InvoiceRepo: m.invoiceRepo,
		Renderer:    m.renderer,
		Cache:       cache.NewMemoryCache(),
		Config:      cfg,
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	return svc, m
}

func validInvoiceInput() usecase.CreateInvoiceInput {
	return usecase.CreateInvoiceInput{
		OrderID:      uuid.New(),
		EIK:          "123456789",
		CustomerName: "Acme Ltd",
		TotalAmount:  decimal.RequireFromString("199.90"),
	}
}

func TestCreateInvoice_DefaultsIssuedOn(t *testing.T) {
	svc, m := newInvoiceService(t, nil)

	m.invoiceRepo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		args.Get(1).(*entity.Invoice).ID = uuid.New()
	}).Return(nil)

	before := time.Now()
	invoice, err := svc.CreateInvoice(context.Background(), validInvoiceInput())
	require.NoError(t, err)

	assert.False(t, invoice.IssuedOn.Before(before))
	assert.False(t, invoice.IssuedOn.After(time.Now()))
}

func TestCreateInvoice_ExplicitIssuedOn(t *testing.T) {
	svc, m := newInvoiceService(t, nil)

	m.invoiceRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	issuedOn := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	input := validInvoiceInput()
	input.IssuedOn = &issuedOn

	invoice, err := svc.CreateInvoice(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, issuedOn, invoice.IssuedOn)
}

func TestCreateInvoice_Validation(t *testing.T) {
	svc, m := newInvoiceService(t, nil)

	cases := []struct {
		name   string
		mutate func(*usecase.CreateInvoiceInput)
	}{
		{"missing order id", func(in *usecase.CreateInvoiceInput) { in.OrderID = uuid.Nil }},
		{"missing eik", func(in *usecase.CreateInvoiceInput) { in.EIK = "" }},
		{"missing customer name", func(in *usecase.CreateInvoiceInput) { in.CustomerName = "" }},
		{"zero amount", func(in *usecase.CreateInvoiceInput) { in.TotalAmount = decimal.Zero }},
		{"negative amount", func(in *usecase.CreateInvoiceInput) { in.TotalAmount = decimal.RequireFromString("-1") }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validInvoiceInput()
			tc.mutate(&input)

			_, err := svc.CreateInvoice(context.Background(), input)

			var appErr domainerrors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, "INVOICE_INVALID", appErr.ErrorCode())
		})
	}

	m.invoiceRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestListInvoices_CachedUntilMutation(t *testing.T) {
	svc, m := newInvoiceService(t, nil)

	invoices := []*entity.Invoice{{ID: uuid.New()}}
	m.invoiceRepo.On("FindAll", mock.Anything).Return(invoices, nil)
	m.invoiceRepo.On("Delete", mock.Anything, invoices[0].ID).Return(nil)

	_, err := svc.ListInvoices(context.Background())
	require.NoError(t, err)
	_, err = svc.ListInvoices(context.Background())
	require.NoError(t, err)
	m.invoiceRepo.AssertNumberOfCalls(t, "FindAll", 1)

	require.NoError(t, svc.DeleteInvoice(context.Background(), invoices[0].ID))

	_, err = svc.ListInvoices(context.Background())
	require.NoError(t, err)
	m.invoiceRepo.AssertNumberOfCalls(t, "FindAll", 2)
}

func TestGetInvoice_NotFound(t *testing.T) {
	svc, m := newInvoiceService(t, nil)

	invoiceID := uuid.New()
	m.invoiceRepo.On("FindByID", mock.Anything, invoiceID).Return(nil, repository.ErrInvoiceNotFound)

	_, err := svc.GetInvoice(context.Background(), invoiceID)
	assert.ErrorIs(t, err, domainerrors.ErrInvoiceNotFound)
}

func TestRenderInvoicePDF(t *testing.T) {
	svc, m := newInvoiceService(t, nil)

	invoice := &entity.Invoice{ID: uuid.New(), CustomerName: "Acme Ltd"}
	m.invoiceRepo.On("FindByID", mock.Anything, invoice.ID).Return(invoice, nil)
	m.renderer.On("Render", invoice).Return([]byte("%PDF-1.4"), nil)

	document, err := svc.RenderInvoicePDF(context.Background(), invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4"), document)
}

func TestCleanupExpired(t *testing.T) {
	cfg := &config.Config{Cleanup: &config.CleanupConfig{RetentionDays: 365}}
	svc, m := newInvoiceService(t, cfg)

	old := &entity.Invoice{ID: uuid.New(), IssuedOn: time.Now().AddDate(0, 0, -400)}

	m.invoiceRepo.On("FindIssuedBefore", mock.Anything, mock.MatchedBy(func(cutoff time.Time) bool {
		// The cutoff sits one retention window in the past.
		expected := time.Now().AddDate(0, 0, -365)
		return cutoff.Sub(expected).Abs() < time.Minute
	})).Return([]*entity.Invoice{old}, nil)
	m.invoiceRepo.On("Delete", mock.Anything, old.ID).Return(nil)

	require.NoError(t, svc.CleanupExpired(context.Background()))
	m.invoiceRepo.AssertExpectations(t)
}

func TestCleanupExpired_NothingToDelete(t *testing.T) {
	svc, m := newInvoiceService(t, nil)

	m.invoiceRepo.On("FindIssuedBefore", mock.Anything, mock.Anything).Return([]*entity.Invoice{}, nil)

	require.NoError(t, svc.CleanupExpired(context.Background()))
	m.invoiceRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
