// Package impl provides the concrete implementations of the usecase interfaces.
package impl

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"

	"trading/internal/domain/entity"
	domainerrors "trading/internal/domain/errors"
	"trading/internal/domain/repository"
	"trading/internal/domain/service"
	"trading/internal/errors"
	"trading/internal/usecase"
)

type orderService struct {
	txManager     repository.TransactionManager
	orderRepo     repository.OrderRepository
	invoiceClient service.InvoiceClient
	logger        *slog.Logger
}

// OrderServiceParams holds dependencies for OrderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	TxManager     repository.TransactionManager
	OrderRepo     repository.OrderRepository
	InvoiceClient service.InvoiceClient
	Logger        *slog.Logger
}

// NewOrderService creates a new order service instance
func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	return &orderService{
		txManager:     params.TxManager,
		orderRepo:     params.OrderRepo,
		invoiceClient: params.InvoiceClient,
		logger:        params.Logger,
	}
}

// ListOrders returns all orders for an admin, or only the actor's own orders
// for a regular user.
func (s *orderService) ListOrders(ctx context.Context, actor usecase.Actor) ([]*entity.Order, error) {
	if actor.IsAdmin() {
		return s.orderRepo.FindAll(ctx)
	}

	return s.orderRepo.FindByCreator(ctx, actor.UserID)
}

// GetOrder returns a single order. Regular users only see orders they placed.
func (s *orderService) GetOrder(ctx context.Context, actor usecase.Actor, id uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order")
	}

	if !actor.IsAdmin() && order.CreatedBy != actor.UserID {
		return nil, domainerrors.ErrForbidden
	}

	return order, nil
}

// PlaceOrder validates stock, decrements it line by line, and persists the
// order in one transaction. The invoice request, if asked for, happens after
// commit and is best effort.
func (s *orderService) PlaceOrder(ctx context.Context, actor usecase.Actor, input usecase.PlaceOrderInput) (*entity.Order, error) {
	if err := validateOrderInput(input); err != nil {
		return nil, err
	}

	var (
		order    *entity.Order
		customer *entity.Customer
	)

	err := s.txManager.Execute(ctx, func(f repository.RepositoryFactory) error {
		var err error

		customer, err = findCustomer(ctx, f.NewCustomerRepository(), input.CustomerID)
		if err != nil {
			return err
		}

		// The token outlives the account; make sure the creator still exists.
		creator, err := findUser(ctx, f.NewUserRepository(), actor.UserID)
		if err != nil {
			return err
		}

		items, total, err := reserveStock(ctx, f.NewProductRepository(), input.Items)
		if err != nil {
			return err
		}

		order = &entity.Order{
			CustomerID: customer.ID,
			CreatedBy:  creator.ID,
			CreatedOn:  time.Now(),
			Items:      items,
			TotalPrice: total,
		}

		return f.NewOrderRepository().Create(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Order placed",
		slog.String("orderId", order.ID.String()),
		slog.String("createdBy", actor.Username),
		slog.String("totalPrice", order.TotalPrice.String()),
	)

	if input.GenerateInvoice {
		s.requestInvoice(ctx, order, customer)
	}

	return order, nil
}

// UpdateOrder restores the stock held by the existing order, then rebuilds it
// from the input as if placed anew. The order keeps its identity, creator and
// creation time.
func (s *orderService) UpdateOrder(ctx context.Context, actor usecase.Actor, id uuid.UUID, input usecase.PlaceOrderInput) (*entity.Order, error) {
	if err := validateOrderInput(input); err != nil {
		return nil, err
	}

	var (
		order    *entity.Order
		customer *entity.Customer
	)

	err := s.txManager.Execute(ctx, func(f repository.RepositoryFactory) error {
		orderRepo := f.NewOrderRepository()
		productRepo := f.NewProductRepository()

		var err error

		order, err = orderRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrOrderNotFound) {
				return domainerrors.ErrOrderNotFound
			}

			return errors.Wrap(err, "failed to find order")
		}

		if !actor.IsAdmin() && order.CreatedBy != actor.UserID {
			return domainerrors.ErrForbidden
		}

		if err := releaseStock(ctx, productRepo, order.Items); err != nil {
			return err
		}

		customer, err = findCustomer(ctx, f.NewCustomerRepository(), input.CustomerID)
		if err != nil {
			return err
		}

		items, total, err := reserveStock(ctx, productRepo, input.Items)
		if err != nil {
			return err
		}

		order.CustomerID = customer.ID
		order.Customer = nil
		order.Creator = nil
		order.Items = items
		order.TotalPrice = total

		return orderRepo.Update(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Order updated",
		slog.String("orderId", order.ID.String()),
		slog.String("updatedBy", actor.Username),
		slog.String("totalPrice", order.TotalPrice.String()),
	)

	// Orders are invoiced at most once.
	if input.GenerateInvoice && order.InvoiceID == nil {
		s.requestInvoice(ctx, order, customer)
	}

	return order, nil
}

// DeleteOrder removes an order and returns its stock to the catalog.
func (s *orderService) DeleteOrder(ctx context.Context, actor usecase.Actor, id uuid.UUID) error {
	return s.txManager.Execute(ctx, func(f repository.RepositoryFactory) error {
		orderRepo := f.NewOrderRepository()

		order, err := orderRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrOrderNotFound) {
				return domainerrors.ErrOrderNotFound
			}

			return errors.Wrap(err, "failed to find order")
		}

		if !actor.IsAdmin() && order.CreatedBy != actor.UserID {
			return domainerrors.ErrForbidden
		}

		if err := releaseStock(ctx, f.NewProductRepository(), order.Items); err != nil {
			return err
		}

		return orderRepo.Delete(ctx, order.ID)
	})
}

// requestInvoice asks the invoice service to issue an invoice for a committed
// order. Every failure mode leaves the order in place without an invoice: a
// transport error, a nil response and a zero invoice ID are all treated as
// "no invoice", logged and swallowed.
func (s *orderService) requestInvoice(ctx context.Context, order *entity.Order, customer *entity.Customer) {
	record, err := s.invoiceClient.CreateInvoice(ctx, &service.InvoiceRecord{
		OrderID:      order.ID,
		EIK:          customer.EIK,
		CustomerName: customer.Name,
		TotalAmount:  order.TotalPrice,
	})
	if err != nil {
		s.logger.Warn("Invoice service call failed, keeping order without invoice",
			slog.String("orderId", order.ID.String()),
			slog.Any("error", err),
		)

		return
	}
	if record == nil || record.ID == uuid.Nil {
		s.logger.Warn("Invoice service returned no invoice",
			slog.String("orderId", order.ID.String()),
		)

		return
	}

	if err := s.orderRepo.SetInvoiceID(ctx, order.ID, record.ID); err != nil {
		s.logger.Error("Failed to record invoice reference on order",
			slog.String("orderId", order.ID.String()),
			slog.String("invoiceId", record.ID.String()),
			slog.Any("error", err),
		)

		return
	}

	invoiceID := record.ID
	order.InvoiceID = &invoiceID

	s.logger.Info("Invoice issued for order",
		slog.String("orderId", order.ID.String()),
		slog.String("invoiceId", record.ID.String()),
	)
}

// validateOrderInput rejects empty orders and non-positive quantities before
// any transaction starts.
func validateOrderInput(input usecase.PlaceOrderInput) error {
	if input.CustomerID == uuid.Nil {
		return domainerrors.ErrValidationFailed.WithDetails("customer id is required")
	}
	if len(input.Items) == 0 {
		return domainerrors.ErrValidationFailed.WithDetails("order must contain at least one item")
	}
	for _, line := range input.Items {
		if line.ProductID == uuid.Nil {
			return domainerrors.ErrValidationFailed.WithDetails("product id is required on every item")
		}
		if line.Quantity < 1 {
			return domainerrors.ErrValidationFailed.WithDetails("item quantity must be at least 1")
		}
	}

	return nil
}

// findCustomer resolves the order's customer, mapping the repository sentinel
// to the application error.
func findCustomer(ctx context.Context, customerRepo repository.CustomerRepository, id uuid.UUID) (*entity.Customer, error) {
	customer, err := customerRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return nil, domainerrors.ErrCustomerNotFound
		}

		return nil, errors.Wrap(err, "failed to find customer")
	}

	return customer, nil
}

// findUser resolves the acting user, mapping the repository sentinel to the
// application error.
func findUser(ctx context.Context, userRepo repository.UserRepository, id uuid.UUID) (*entity.User, error) {
	user, err := userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	return user, nil
}

// reserveStock checks and decrements stock line by line, freezing the unit
// price onto each item. The surrounding transaction undoes the decrements if
// any later line fails.
func reserveStock(ctx context.Context, productRepo repository.ProductRepository, lines []usecase.OrderLineInput) ([]entity.OrderItem, decimal.Decimal, error) {
	items := make([]entity.OrderItem, 0, len(lines))
	total := decimal.Zero

	for _, line := range lines {
		product, err := productRepo.FindByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return nil, decimal.Zero, domainerrors.ErrProductNotFound
			}

			return nil, decimal.Zero, errors.Wrap(err, "failed to find product")
		}

		if product.Quantity < line.Quantity {
			return nil, decimal.Zero, domainerrors.ErrInsufficientStock.WithDetails(product.Name)
		}

		product.Quantity -= line.Quantity
		if err := productRepo.Update(ctx, product); err != nil {
			return nil, decimal.Zero, errors.Wrap(err, "failed to decrement stock")
		}

		lineTotal := product.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		items = append(items, entity.OrderItem{
			ProductID: product.ID,
			Quantity:  line.Quantity,
			Price:     product.Price,
			Total:     lineTotal,
		})
		total = total.Add(lineTotal)
	}

	return items, total, nil
}

// releaseStock returns the quantities held by the given items to the catalog.
func releaseStock(ctx context.Context, productRepo repository.ProductRepository, items []entity.OrderItem) error {
	for _, item := range items {
		product, err := productRepo.FindByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				// The product is gone; its stock cannot be restored.
				continue
			}

			return errors.Wrap(err, "failed to find product for stock restore")
		}

		product.Quantity += item.Quantity
		if err := productRepo.Update(ctx, product); err != nil {
			return errors.Wrap(err, "failed to restore stock")
		}
	}

	return nil
}
