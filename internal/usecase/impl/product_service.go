package impl

import (
	"context"
	"log/slog"

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
	productListCacheKey = "products:all"

	defaultLowStockThreshold = 5
)

type productService struct {
	productRepo repository.ProductRepository
	cache       service.ListingCache
	config      *config.Config
	logger      *slog.Logger
}

// ProductServiceParams holds dependencies for ProductService, injected by Fx.
type ProductServiceParams struct {
	fx.In

	ProductRepo repository.ProductRepository
	Cache       service.ListingCache
	Config      *config.Config
	Logger      *slog.Logger
}

// NewProductService creates a new product service instance
func NewProductService(params ProductServiceParams) usecase.ProductUsecase {
	return &productService{
		productRepo: params.ProductRepo,
		cache:       params.Cache,
		config:      params.Config,
		logger:      params.Logger,
	}
}

// ListProducts returns every product, served from the listing cache when the
// catalog has not changed since the last read.
func (s *productService) ListProducts(ctx context.Context) ([]*entity.Product, error) {
	if cached, ok := s.cache.Get(productListCacheKey); ok {
		if products, ok := cached.([]*entity.Product); ok {
			return products, nil
		}
	}

	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	s.cache.Set(productListCacheKey, products)

	return products, nil
}

// GetProduct returns a single product by ID.
func (s *productService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product")
	}

	return product, nil
}

// CreateProduct adds a new product to the catalog.
func (s *productService) CreateProduct(ctx context.Context, input usecase.ProductInput) (*entity.Product, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}

	product := &entity.Product{
		Name:        input.Name,
		Price:       input.Price,
		Quantity:    input.Quantity,
		Category:    input.Category,
		Description: input.Description,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	s.cache.Flush()

	s.logger.Info("Product created",
		slog.String("productId", product.ID.String()),
		slog.String("name", product.Name),
	)

	return product, nil
}

// UpdateProduct overwrites a product's details.
func (s *productService) UpdateProduct(ctx context.Context, id uuid.UUID, input usecase.ProductInput) (*entity.Product, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}

	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	product.Name = input.Name
	product.Price = input.Price
	product.Quantity = input.Quantity
	product.Category = input.Category
	product.Description = input.Description

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	s.cache.Flush()

	return product, nil
}

// DeleteProduct removes a product from the catalog.
func (s *productService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return domainerrors.ErrProductNotFound
		}

		return err
	}

	s.cache.Flush()

	s.logger.Info("Product deleted", slog.String("productId", id.String()))

	return nil
}

// ReportLowStock logs every product at or below the configured quantity
// threshold. Reads go straight to the repository so the report never works
// off a stale cache.
func (s *productService) ReportLowStock(ctx context.Context) error {
	threshold := defaultLowStockThreshold
	if s.config.StockCheck != nil && s.config.StockCheck.Threshold > 0 {
		threshold = s.config.StockCheck.Threshold
	}

	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to list products for stock report")
	}

	low := 0
	for _, product := range products {
		if product.Quantity > threshold {
			continue
		}

		low++
		s.logger.Warn("Product is low on stock",
			slog.String("productId", product.ID.String()),
			slog.String("name", product.Name),
			slog.Int("quantity", product.Quantity),
			slog.Int("threshold", threshold),
		)
	}

	s.logger.Info("Low stock report finished",
		slog.Int("checked", len(products)),
		slog.Int("low", low),
	)

	return nil
}

func validateProductInput(input usecase.ProductInput) error {
	if input.Price.IsNegative() {
		return domainerrors.ErrValidationFailed.WithDetails("price must not be negative")
	}
	if input.Quantity < 0 {
		return domainerrors.ErrValidationFailed.WithDetails("quantity must not be negative")
	}

	return nil
}
