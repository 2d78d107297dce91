package usecase

import (
	"context"

	"github.com/google/uuid"

	"trading/internal/domain/entity"
)

// CustomerInput defines the data for creating or updating a customer.
type CustomerInput struct {
	Name    string
	EIK     string
	Email   string
	Address string
}

// CustomerUsecase defines the interface for customer management operations.
type CustomerUsecase interface {
	// ListCustomers returns every customer.
	ListCustomers(ctx context.Context) ([]*entity.Customer, error)

	// GetCustomer returns a single customer by ID.
	GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error)

	// CreateCustomer registers a new customer.
	CreateCustomer(ctx context.Context, input CustomerInput) (*entity.Customer, error)

	// UpdateCustomer overwrites a customer's details.
	UpdateCustomer(ctx context.Context, id uuid.UUID, input CustomerInput) (*entity.Customer, error)

	// DeleteCustomer removes a customer. Customers referenced by any order
	// cannot be deleted.
	DeleteCustomer(ctx context.Context, id uuid.UUID) error
}
