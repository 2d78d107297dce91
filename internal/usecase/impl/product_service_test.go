package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"trading/config"
	"trading/internal/domain/entity"
	domainerrors "trading/internal/domain/errors"
	"trading/internal/infra/cache"
	"trading/internal/mocks"
	"trading/internal/usecase"
)

func newProductService(t *testing.T, cfg *config.Config) (usecase.ProductUsecase, *mocks.ProductRepository) {
	t.Helper()

	if cfg == nil {
		cfg = &config.Config{}
	}

	productRepo := new(mocks.ProductRepository)
	svc := NewProductService(ProductServiceParams{
		ProductRepo: productRepo,
		Cache:       cache.NewMemoryCache(),
		Config:      cfg,
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	return svc, productRepo
}

func TestListProducts_CachesResult(t *testing.T) {
	svc, productRepo := newProductService(t, nil)

	products := []*entity.Product{{ID: uuid.New(), Name: "Desk"}}
	productRepo.On("FindAll", mock.Anything).Return(products, nil).Once()

	for range 3 {
		got, err := svc.ListProducts(context.Background())
		require.NoError(t, err)
		assert.Equal(t, products, got)
	}

	productRepo.AssertNumberOfCalls(t, "FindAll", 1)
}

func TestCreateProduct_FlushesCache(t *testing.T) {
	svc, productRepo := newProductService(t, nil)

	products := []*entity.Product{{ID: uuid.New(), Name: "Desk"}}
	productRepo.On("FindAll", mock.Anything).Return(products, nil)
	productRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	_, err := svc.ListProducts(context.Background())
	require.NoError(t, err)

	_, err = svc.CreateProduct(context.Background(), usecase.ProductInput{
		Name:     "Chair",
		Price:    decimal.RequireFromString("79.00"),
		Quantity: 10,
	})
	require.NoError(t, err)

	_, err = svc.ListProducts(context.Background())
	require.NoError(t, err)

	// The mutation dropped the cached listing, forcing a second read.
	productRepo.AssertNumberOfCalls(t, "FindAll", 2)
}

func TestCreateProduct_Validation(t *testing.T) {
	svc, _ := newProductService(t, nil)

	_, err := svc.CreateProduct(context.Background(), usecase.ProductInput{
		Name:  "Chair",
		Price: decimal.RequireFromString("-1"),
	})

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_FAILED", appErr.ErrorCode())

	_, err = svc.CreateProduct(context.Background(), usecase.ProductInput{
		Name:     "Chair",
		Price:    decimal.RequireFromString("1"),
		Quantity: -1,
	})
	require.ErrorAs(t, err, &appErr)
}

func TestReportLowStock(t *testing.T) {
	cfg := &config.Config{StockCheck: &config.StockCheckConfig{Threshold: 3}}
	svc, productRepo := newProductService(t, cfg)

	products := []*entity.Product{
		{ID: uuid.New(), Name: "Desk", Quantity: 10},
		{ID: uuid.New(), Name: "Chair", Quantity: 2},
	}
	productRepo.On("FindAll", mock.Anything).Return(products, nil)

	require.NoError(t, svc.ReportLowStock(context.Background()))
	productRepo.AssertExpectations(t)
}
