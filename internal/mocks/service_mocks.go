package mocks

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"trading/internal/domain/entity"
	"trading/internal/domain/service"
)

// PasswordHasher is a mock implementation of service.PasswordHasher.
type PasswordHasher struct {
	mock.Mock
}

func (m *PasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *PasswordHasher) Check(password, hash string) bool {
	return m.Called(password, hash).Bool(0)
}

// TokenService is a mock implementation of service.TokenService.
type TokenService struct {
	mock.Mock
}

func (m *TokenService) GenerateToken(userID uuid.UUID, username string, role entity.Role) (string, error) {
	args := m.Called(userID, username, role)

	return args.String(0), args.Error(1)
}

func (m *TokenService) ValidateToken(tokenString string) (*jwt.Token, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*jwt.Token), args.Error(1)
}

// InvoiceClient is a mock implementation of service.InvoiceClient.
type InvoiceClient struct {
	mock.Mock
}

func (m *InvoiceClient) CreateInvoice(ctx context.Context, req *service.InvoiceRecord) (*service.InvoiceRecord, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.InvoiceRecord), args.Error(1)
}

func (m *InvoiceClient) GetInvoice(ctx context.Context, id uuid.UUID) (*service.InvoiceRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.InvoiceRecord), args.Error(1)
}

func (m *InvoiceClient) ListInvoices(ctx context.Context) ([]*service.InvoiceRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*service.InvoiceRecord), args.Error(1)
}

func (m *InvoiceClient) DeleteInvoice(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// ListingCache is a mock implementation of service.ListingCache.
type ListingCache struct {
	mock.Mock
}

func (m *ListingCache) Get(key string) (any, bool) {
	args := m.Called(key)

	return args.Get(0), args.Bool(1)
}

func (m *ListingCache) Set(key string, value any) {
	m.Called(key, value)
}

func (m *ListingCache) Flush() {
	m.Called()
}

// InvoicePDFRenderer is a mock implementation of service.InvoicePDFRenderer.
type InvoicePDFRenderer struct {
	mock.Mock
}

func (m *InvoicePDFRenderer) Render(invoice *entity.Invoice) ([]byte, error) {
	args := m.Called(invoice)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]byte), args.Error(1)
}
