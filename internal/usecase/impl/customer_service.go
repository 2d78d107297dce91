package impl

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"go.uber.org/fx"

	"trading/internal/domain/entity"
	domainerrors "trading/internal/domain/errors"
	"trading/internal/domain/repository"
	"trading/internal/errors"
	"trading/internal/usecase"
)

type customerService struct {
	customerRepo repository.CustomerRepository
	orderRepo    repository.OrderRepository
	logger       *slog.Logger
}

// CustomerServiceParams holds dependencies for CustomerService, injected by Fx.
type CustomerServiceParams struct {
	fx.In

	CustomerRepo repository.CustomerRepository
	OrderRepo    repository.OrderRepository
	Logger       *slog.Logger
}

// NewCustomerService creates a new customer service instance
func NewCustomerService(params CustomerServiceParams) usecase.CustomerUsecase {
	return &customerService{
		customerRepo: params.CustomerRepo,
		orderRepo:    params.OrderRepo,
		logger:       params.Logger,
	}
}

// ListCustomers returns every customer.
func (s *customerService) ListCustomers(ctx context.Context) ([]*entity.Customer, error) {
	return s.customerRepo.FindAll(ctx)
}

// GetCustomer returns a single customer by ID.
func (s *customerService) GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return nil, domainerrors.ErrCustomerNotFound
		}

		return nil, errors.Wrap(err, "failed to find customer")
	}

	return customer, nil
}

// CreateCustomer registers a new customer. Uniqueness of EIK and email is
// enforced by the database; violations surface as a conflict.
func (s *customerService) CreateCustomer(ctx context.Context, input usecase.CustomerInput) (*entity.Customer, error) {
	customer := &entity.Customer{
		Name:    input.Name,
		EIK:     input.EIK,
		Email:   input.Email,
		Address: input.Address,
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}

	s.logger.Info("Customer created",
		slog.String("customerId", customer.ID.String()),
		slog.String("eik", customer.EIK),
	)

	return customer, nil
}

// UpdateCustomer overwrites a customer's details.
func (s *customerService) UpdateCustomer(ctx context.Context, id uuid.UUID, input usecase.CustomerInput) (*entity.Customer, error) {
	customer, err := s.GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}

	customer.Name = input.Name
	customer.EIK = input.EIK
	customer.Email = input.Email
	customer.Address = input.Address

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

// DeleteCustomer removes a customer unless any order still references them.
func (s *customerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	hasOrders, err := s.orderRepo.ExistsByCustomer(ctx, id)
	if err != nil {
		return errors.Wrap(err, "failed to check customer orders")
	}
	if hasOrders {
		return domainerrors.ErrCustomerHasOrders
	}

	if err := s.customerRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return domainerrors.ErrCustomerNotFound
		}

		return err
	}

	s.logger.Info("Customer deleted", slog.String("customerId", id.String()))

	return nil
}
