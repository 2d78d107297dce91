package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"trading/internal/domain/entity"
)

// ProductInput defines the data for creating or updating a product.
type ProductInput struct {
	Name        string
	Price       decimal.Decimal
	Quantity    int
	Category    string
	Description string
}

// ProductUsecase defines the interface for product catalog operations.
type ProductUsecase interface {
	// ListProducts returns every product. Results are served from the
	// listing cache when possible.
	ListProducts(ctx context.Context) ([]*entity.Product, error)

	// GetProduct returns a single product by ID.
	GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// CreateProduct adds a new product to the catalog.
	CreateProduct(ctx context.Context, input ProductInput) (*entity.Product, error)

	// UpdateProduct overwrites a product's details.
	UpdateProduct(ctx context.Context, id uuid.UUID, input ProductInput) (*entity.Product, error)

	// DeleteProduct removes a product from the catalog.
	DeleteProduct(ctx context.Context, id uuid.UUID) error

	// ReportLowStock logs every product at or below the configured quantity
	// threshold. Run on a schedule.
	ReportLowStock(ctx context.Context) error
}
