package scheduler

import (
	"context"

	"trading/config"
	"trading/internal/domain/service"
	"trading/internal/usecase"
)

// Default schedules, overridable per service through configuration.
const (
	defaultCleanupSchedule    = "0 3 * * *"
	defaultStockCheckSchedule = "0 8 * * *"
	cacheFlushSchedule        = "@every 6h"
)

// invoiceCleanupJob sweeps invoices past the retention window.
type invoiceCleanupJob struct {
	invoices usecase.InvoiceUsecase
	schedule string
}

// NewInvoiceCleanupJob builds the nightly invoice retention job.
func NewInvoiceCleanupJob(cfg *config.Config, invoices usecase.InvoiceUsecase) Job {
	schedule := defaultCleanupSchedule
	if cfg.Cleanup != nil && cfg.Cleanup.Schedule != "" {
		schedule = cfg.Cleanup.Schedule
	}

	return &invoiceCleanupJob{
		invoices: invoices,
		schedule: schedule,
	}
}

func (j *invoiceCleanupJob) Name() string     { return "invoice-cleanup" }
func (j *invoiceCleanupJob) Schedule() string { return j.schedule }

func (j *invoiceCleanupJob) Run(ctx context.Context) error {
	return j.invoices.CleanupExpired(ctx)
}

// lowStockJob logs products at or below the stock threshold.
type lowStockJob struct {
	products usecase.ProductUsecase
	schedule string
}

// NewLowStockJob builds the morning low-stock report job.
func NewLowStockJob(cfg *config.Config, products usecase.ProductUsecase) Job {
	schedule := defaultStockCheckSchedule
	if cfg.StockCheck != nil && cfg.StockCheck.Schedule != "" {
		schedule = cfg.StockCheck.Schedule
	}

	return &lowStockJob{
		products: products,
		schedule: schedule,
	}
}

func (j *lowStockJob) Name() string     { return "low-stock-report" }
func (j *lowStockJob) Schedule() string { return j.schedule }

func (j *lowStockJob) Run(ctx context.Context) error {
	return j.products.ReportLowStock(ctx)
}

// cacheFlushJob periodically drops the listing cache so long-lived entries
// cannot drift from the database forever.
type cacheFlushJob struct {
	cache service.ListingCache
}

// NewCacheFlushJob builds the periodic cache flush job.
func NewCacheFlushJob(cache service.ListingCache) Job {
	return &cacheFlushJob{cache: cache}
}

func (j *cacheFlushJob) Name() string     { return "listing-cache-flush" }
func (j *cacheFlushJob) Schedule() string { return cacheFlushSchedule }

func (j *cacheFlushJob) Run(ctx context.Context) error {
	j.cache.Flush()

	return nil
}
