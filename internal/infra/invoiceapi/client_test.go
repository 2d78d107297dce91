package invoiceapi

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trading/config"
	"trading/internal/domain/service"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) service.InvoiceClient {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.Config{
		InvoiceService: &config.InvoiceServiceConfig{
			BaseURL: server.URL,
			Timeout: 5 * time.Second,
		},
	}

	return NewClient(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func envelope(data any) map[string]any {
	return map[string]any{
		"data": data,
		"meta": map[string]any{"request_id": "test"},
	}
}

func TestCreateInvoice_DecodesEnvelope(t *testing.T) {
	orderID := uuid.New()
	invoiceID := uuid.New()
	issuedOn := time.Date(2026, 2, 10, 12, 30, 0, 0, time.UTC)

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/invoices", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req service.InvoiceRecord
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, orderID, req.OrderID)
		assert.Equal(t, "123456789", req.EIK)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(envelope(service.InvoiceRecord{
			ID:           invoiceID,
			OrderID:      orderID,
			EIK:          req.EIK,
			CustomerName: req.CustomerName,
			TotalAmount:  req.TotalAmount,
			IssuedOn:     &issuedOn,
		}))
	})

	record, err := client.CreateInvoice(context.Background(), &service.InvoiceRecord{
		OrderID:      orderID,
		EIK:          "123456789",
		CustomerName: "Acme Ltd",
		TotalAmount:  decimal.NewFromFloat(45.48),
	})

	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, invoiceID, record.ID)
	assert.Equal(t, orderID, record.OrderID)
	assert.True(t, decimal.NewFromFloat(45.48).Equal(record.TotalAmount))
	require.NotNil(t, record.IssuedOn)
	assert.True(t, issuedOn.Equal(*record.IssuedOn))
}

func TestCreateInvoice_NullDataYieldsNilRecord(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(envelope(nil))
	})

	record, err := client.CreateInvoice(context.Background(), &service.InvoiceRecord{
		OrderID:      uuid.New(),
		EIK:          "123456789",
		CustomerName: "Acme Ltd",
		TotalAmount:  decimal.NewFromInt(10),
	})

	require.NoError(t, err)
	assert.Nil(t, record)
}

func TestCreateInvoice_NonSuccessStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"code": "INVOICE_INVALID", "message": "invalid invoice data"},
		})
	})

	record, err := client.CreateInvoice(context.Background(), &service.InvoiceRecord{
		OrderID: uuid.New(),
	})

	require.Error(t, err)
	assert.Nil(t, record)
	assert.Contains(t, err.Error(), "400")
}

func TestGetInvoice_BuildsPathFromID(t *testing.T) {
	invoiceID := uuid.New()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/invoices/"+invoiceID.String(), r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(envelope(service.InvoiceRecord{ID: invoiceID}))
	})

	record, err := client.GetInvoice(context.Background(), invoiceID)

	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, invoiceID, record.ID)
}

func TestListInvoices_DecodesSlice(t *testing.T) {
	first := uuid.New()
	second := uuid.New()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/invoices", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(envelope([]service.InvoiceRecord{
			{ID: first},
			{ID: second},
		}))
	})

	records, err := client.ListInvoices(context.Background())

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, first, records[0].ID)
	assert.Equal(t, second, records[1].ID)
}

func TestDeleteInvoice(t *testing.T) {
	invoiceID := uuid.New()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/v1/invoices/"+invoiceID.String(), r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, client.DeleteInvoice(context.Background(), invoiceID))
}

func TestDeleteInvoice_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	err := client.DeleteInvoice(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}
