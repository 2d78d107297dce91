// Package handler contains the HTTP handlers of the invoice service.
package handler

import (
	"fmt"
	"net/http"
	"time"

	"trading/internal/delivery/api/response"
	"trading/internal/domain/entity"
	"trading/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// InvoiceHandler holds dependencies for invoice management handlers.
type InvoiceHandler struct {
	uc usecase.InvoiceUsecase
}

// NewInvoiceHandler is the constructor for InvoiceHandler, injected by Fx.
func NewInvoiceHandler(uc usecase.InvoiceUsecase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc}
}

type createInvoiceRequest struct {
	OrderID      uuid.UUID       `json:"orderId" validate:"required"`
	EIK          string          `json:"eik" validate:"required"`
	CustomerName string          `json:"customerName" validate:"required"`
	TotalAmount  decimal.Decimal `json:"totalAmount" validate:"required"`
	IssuedOn     *time.Time      `json:"issuedOn"`
}

// invoiceView is the wire representation of an invoice.
type invoiceView struct {
	ID           uuid.UUID       `json:"id"`
	OrderID      uuid.UUID       `json:"orderId"`
	EIK          string          `json:"eik"`
	CustomerName string          `json:"customerName"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	IssuedOn     time.Time       `json:"issuedOn"`
}

func toInvoiceView(invoice *entity.Invoice) invoiceView {
	return invoiceView{
		ID:           invoice.ID,
		OrderID:      invoice.OrderID,
		EIK:          invoice.EIK,
		CustomerName: invoice.CustomerName,
		TotalAmount:  invoice.TotalAmount,
		IssuedOn:     invoice.IssuedOn,
	}
}

// List returns every invoice, newest first.
func (h *InvoiceHandler) List(c echo.Context) error {
	invoices, err := h.uc.ListInvoices(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	views := make([]invoiceView, 0, len(invoices))
	for _, invoice := range invoices {
		views = append(views, toInvoiceView(invoice))
	}

	return response.Success(c, http.StatusOK, views)
}

// Get returns a single invoice by ID.
func (h *InvoiceHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_ID", "Invalid invoice id")
	}

	invoice, err := h.uc.GetInvoice(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toInvoiceView(invoice))
}

// Create validates and stores a new invoice.
func (h *InvoiceHandler) Create(c echo.Context) error {
	var req createInvoiceRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid invoice input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	invoice, err := h.uc.CreateInvoice(c.Request().Context(), usecase.CreateInvoiceInput{
		OrderID:      req.OrderID,
		EIK:          req.EIK,
		CustomerName: req.CustomerName,
		TotalAmount:  req.TotalAmount,
		IssuedOn:     req.IssuedOn,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toInvoiceView(invoice))
}

// Delete removes an invoice by ID.
func (h *InvoiceHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_ID", "Invalid invoice id")
	}

	if err := h.uc.DeleteInvoice(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}

// DownloadPDF streams the printable invoice document as an attachment.
func (h *InvoiceHandler) DownloadPDF(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_ID", "Invalid invoice id")
	}

	document, err := h.uc.RenderInvoicePDF(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=invoice_%s.pdf`, id))

	return c.Blob(http.StatusOK, "application/pdf", document)
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"})
}
