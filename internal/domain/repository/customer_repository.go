// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"trading/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrCustomerNotFound is a domain-specific error returned when a customer is not found.
var ErrCustomerNotFound = errors.New("customer not found")

// CustomerRepository defines the standard operations for customer persistence.
type CustomerRepository interface {
	// FindAll retrieves every customer.
	FindAll(ctx context.Context) ([]*entity.Customer, error)

	// FindByID retrieves a single customer by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error)

	// Create persists a new customer entity to the storage.
	Create(ctx context.Context, customer *entity.Customer) error

	// Update modifies an existing customer entity in the storage.
	Update(ctx context.Context, customer *entity.Customer) error

	// Delete removes a customer by ID.
	Delete(ctx context.Context, id uuid.UUID) error
}
