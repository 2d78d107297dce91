// Package router contains routing and server setup for the invoice API.
package router

import (
	"trading/internal/delivery/api/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	InvoiceHandler *handler.InvoiceHandler
}

// router holds all the handlers that need to be registered.
type router struct {
	invoiceHandler *handler.InvoiceHandler
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		invoiceHandler: params.InvoiceHandler,
	}
}

// RegisterRoutes sets up all the API routes for the invoice service. The API
// is internal to the deployment, so there is no authentication layer here.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	apiV1 := e.Group("/api/v1")

	invoicesGroup := apiV1.Group("/invoices")
	{
		invoicesGroup.GET("", r.invoiceHandler.List)
		invoicesGroup.POST("", r.invoiceHandler.Create)
		invoicesGroup.GET("/:id", r.invoiceHandler.Get)
		invoicesGroup.DELETE("/:id", r.invoiceHandler.Delete)
		invoicesGroup.GET("/:id/pdf", r.invoiceHandler.DownloadPDF)
	}
}
