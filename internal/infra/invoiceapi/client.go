// Package invoiceapi implements the typed HTTP client for the companion
// invoice microservice. This is the only inter-process boundary in the
// system: calls are synchronous, with no retry and no circuit breaker, and
// the order workflow must tolerate this service being unreachable.
package invoiceapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"trading/config"
	"trading/internal/domain/service"
)

const (
	invoicesPath   = "/api/v1/invoices"
	defaultTimeout = 30 * time.Second
)

// client implements service.InvoiceClient over plain net/http.
type client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// responseEnvelope matches the invoice service's JSON envelope; only the
// data payload matters here.
type responseEnvelope struct {
	Data json.RawMessage `json:"data"`
}

// NewClient is the constructor for the invoice service client.
func NewClient(cfg *config.Config, logger *slog.Logger) service.InvoiceClient {
	timeout := defaultTimeout
	baseURL := ""
	if cfg.InvoiceService != nil {
		baseURL = cfg.InvoiceService.BaseURL
		if cfg.InvoiceService.Timeout > 0 {
			timeout = cfg.InvoiceService.Timeout
		}
	}

	return &client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// CreateInvoice requests creation of an invoice. IssuedOn is left unset; the
// invoice service assigns it. A decoded record with a zero ID is returned
// as-is; deciding whether that counts as "no invoice" is the caller's job.
func (c *client) CreateInvoice(ctx context.Context, req *service.InvoiceRecord) (*service.InvoiceRecord, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+invoicesPath, bytes.NewReader(body))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	c.logger.Info("Requesting invoice creation",
		slog.String("orderId", req.OrderID.String()),
		slog.String("totalAmount", req.TotalAmount.String()),
	)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, errors.Wrap(err, "invoice service call failed")
	}
	defer resp.Body.Close()

	return decodeInvoice(resp)
}

// GetInvoice fetches a single invoice by ID.
func (c *client) GetInvoice(ctx context.Context, id uuid.UUID) (*service.InvoiceRecord, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s%s/%s", c.baseURL, invoicesPath, id), nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, errors.Wrap(err, "invoice service call failed")
	}
	defer resp.Body.Close()

	return decodeInvoice(resp)
}

// ListInvoices fetches all invoices.
func (c *client) ListInvoices(ctx context.Context) ([]*service.InvoiceRecord, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+invoicesPath, nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, errors.Wrap(err, "invoice service call failed")
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	envelope, err := decodeEnvelope(resp.Body)
	if err != nil {
		return nil, err
	}

	var records []*service.InvoiceRecord
	if err := json.Unmarshal(envelope.Data, &records); err != nil {
		return nil, errors.Wrap(err, "failed to decode invoice list")
	}

	return records, nil
}

// DeleteInvoice removes an invoice by ID.
func (c *client) DeleteInvoice(ctx context.Context, id uuid.UUID) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodDelete, fmt.Sprintf("%s%s/%s", c.baseURL, invoicesPath, id), nil)
	if err != nil {
		return errors.WithStack(err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return errors.Wrap(err, "invoice service call failed")
	}
	defer resp.Body.Close()

	return checkStatus(resp)
}

// decodeInvoice validates the response status and unwraps a single invoice
// record from the service's envelope. An empty body yields a nil record.
func decodeInvoice(resp *http.Response) (*service.InvoiceRecord, error) {
	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	envelope, err := decodeEnvelope(resp.Body)
	if err != nil {
		return nil, err
	}
	if len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		return nil, nil
	}

	var record service.InvoiceRecord
	if err := json.Unmarshal(envelope.Data, &record); err != nil {
		return nil, errors.Wrap(err, "failed to decode invoice record")
	}

	return &record, nil
}

func decodeEnvelope(body io.Reader) (*responseEnvelope, error) {
	var envelope responseEnvelope
	if err := json.NewDecoder(body).Decode(&envelope); err != nil {
		return nil, errors.Wrap(err, "failed to decode invoice service response")
	}

	return &envelope, nil
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.Errorf("invoice service returned non-success status: %d", resp.StatusCode)
	}

	return nil
}
