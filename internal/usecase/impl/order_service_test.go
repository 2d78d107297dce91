package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"trading/internal/domain/entity"
	domainerrors "trading/internal/domain/errors"
	"trading/internal/domain/repository"
	"trading/internal/domain/service"
	"trading/internal/mocks"
	"trading/internal/usecase"
)

type orderServiceMocks struct {
	customerRepo  *mocks.CustomerRepository
	productRepo   *mocks.ProductRepository
	orderRepo     *mocks.OrderRepository
	userRepo      *mocks.UserRepository
	invoiceClient *mocks.InvoiceClient
}

// actorExists stubs the creator lookup that order placement performs.
func (m *orderServiceMocks) actorExists(actor usecase.Actor) {
	m.userRepo.On("FindByID", mock.Anything, actor.UserID).Return(&entity.User{
		ID:       actor.UserID,
		Username: actor.Username,
		Role:     actor.Role,
		Active:   true,
	}, nil)
}

func newOrderService(t *testing.T) (usecase.OrderUsecase, *orderServiceMocks) {
	t.Helper()

	m := &orderServiceMocks{
		customerRepo:  new(mocks.CustomerRepository),
		productRepo:   new(mocks.ProductRepository),
		orderRepo:     new(mocks.OrderRepository),
		userRepo:      new(mocks.UserRepository),
		invoiceClient: new(mocks.InvoiceClient),
	}

	txManager := &mocks.TransactionManager{
		Factory: &mocks.RepositoryFactory{
			CustomerRepo: m.customerRepo,
			ProductRepo:  m.productRepo,
			OrderRepo:    m.orderRepo,
			UserRepo:     m.userRepo,
		},
	}

	svc := NewOrderService(OrderServiceParams{
		TxManager:     txManager,
		OrderRepo:     m.orderRepo,
		InvoiceClient: m.invoiceClient,
		Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	return svc, m
}

func adminActor() usecase.Actor {
	return usecase.Actor{
		UserID:   uuid.New(),
		Username: "boss",
		Role:     entity.RoleAdmin,
	}
}

func userActor() usecase.Actor {
	return usecase.Actor{
		UserID:   uuid.New(),
		Username: "clerk",
		Role:     entity.RoleUser,
	}
}

func TestPlaceOrder_Success(t *testing.T) {
	svc, m := newOrderService(t)
	actor := userActor()

	customer := &entity.Customer{ID: uuid.New(), Name: "Acme Ltd", EIK: "123456789"}
	keyboard := &entity.Product{ID: uuid.New(), Name: "Keyboard", Price: decimal.RequireFromString("19.99"), Quantity: 10}
	mouse := &entity.Product{ID: uuid.New(), Name: "Mouse", Price: decimal.RequireFromString("5.50"), Quantity: 3}

	m.customerRepo.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)
	m.actorExists(actor)
	m.productRepo.On("FindByID", mock.Anything, keyboard.ID).Return(keyboard, nil)
	m.productRepo.On("FindByID", mock.Anything, mouse.ID).Return(mouse, nil)
	m.productRepo.On("Update", mock.Anything, mock.Anything).Return(nil)
	m.orderRepo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		order := args.Get(1).(*entity.Order)
		order.ID = uuid.New()
	}).Return(nil)

	order, err := svc.PlaceOrder(context.Background(), actor, usecase.PlaceOrderInput{
		CustomerID: customer.ID,
		Items: []usecase.OrderLineInput{
			{ProductID: keyboard.ID, Quantity: 2},
			{ProductID: mouse.ID, Quantity: 1},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, actor.UserID, order.CreatedBy)
	assert.True(t, order.TotalPrice.Equal(decimal.RequireFromString("45.48")), "got %s", order.TotalPrice)
	require.Len(t, order.Items, 2)
	assert.True(t, order.Items[0].Price.Equal(decimal.RequireFromString("19.99")))
	assert.True(t, order.Items[0].Total.Equal(decimal.RequireFromString("39.98")))
	assert.Equal(t, 8, keyboard.Quantity)
	assert.Equal(t, 2, mouse.Quantity)
	assert.Nil(t, order.InvoiceID)

	m.invoiceClient.AssertNotCalled(t, "CreateInvoice", mock.Anything, mock.Anything)
}

func TestPlaceOrder_InsufficientStock(t *testing.T) {
	svc, m := newOrderService(t)
	actor := userActor()

	customer := &entity.Customer{ID: uuid.New(), Name: "Acme Ltd"}
	scarce := &entity.Product{ID: uuid.New(), Name: "Webcam", Price: decimal.RequireFromString("49.90"), Quantity: 1}

	m.customerRepo.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)
	m.actorExists(actor)
	m.productRepo.On("FindByID", mock.Anything, scarce.ID).Return(scarce, nil)

	_, err := svc.PlaceOrder(context.Background(), actor, usecase.PlaceOrderInput{
		CustomerID: customer.ID,
		Items:      []usecase.OrderLineInput{{ProductID: scarce.ID, Quantity: 2}},
	})

	require.Error(t, err)
	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "INSUFFICIENT_STOCK", appErr.ErrorCode())
	assert.Equal(t, "Webcam", appErr.Details())

	m.productRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	m.orderRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPlaceOrder_CustomerNotFound(t *testing.T) {
	svc, m := newOrderService(t)

	customerID := uuid.New()
	m.customerRepo.On("FindByID", mock.Anything, customerID).Return(nil, repository.ErrCustomerNotFound)

	_, err := svc.PlaceOrder(context.Background(), userActor(), usecase.PlaceOrderInput{
		CustomerID: customerID,
		Items:      []usecase.OrderLineInput{{ProductID: uuid.New(), Quantity: 1}},
	})

	assert.ErrorIs(t, err, domainerrors.ErrCustomerNotFound)
}

func TestPlaceOrder_CreatorNoLongerExists(t *testing.T) {
	svc, m := newOrderService(t)
	actor := userActor()

	customer := &entity.Customer{ID: uuid.New(), Name: "Acme Ltd"}
	m.customerRepo.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)
	m.userRepo.On("FindByID", mock.Anything, actor.UserID).Return(nil, repository.ErrUserNotFound)

	_, err := svc.PlaceOrder(context.Background(), actor, usecase.PlaceOrderInput{
		CustomerID: customer.ID,
		Items:      []usecase.OrderLineInput{{ProductID: uuid.New(), Quantity: 1}},
	})

	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
	m.orderRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPlaceOrder_InputValidation(t *testing.T) {
	svc, _ := newOrderService(t)
	actor := userActor()

	cases := []struct {
		name  string
		input usecase.PlaceOrderInput
	}{
		{
			name:  "missing customer",
			input: usecase.PlaceOrderInput{Items: []usecase.OrderLineInput{{ProductID: uuid.New(), Quantity: 1}}},
		},
		{
			name:  "no items",
			input: usecase.PlaceOrderInput{CustomerID: uuid.New()},
		},
		{
			name: "zero quantity",
			input: usecase.PlaceOrderInput{
				CustomerID: uuid.New(),
				Items:      []usecase.OrderLineInput{{ProductID: uuid.New(), Quantity: 0}},
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.PlaceOrder(context.Background(), actor, tc.input)

			var appErr domainerrors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, "VALIDATION_FAILED", appErr.ErrorCode())
		})
	}
}

func TestPlaceOrder_WithInvoice(t *testing.T) {
	svc, m := newOrderService(t)
	actor := userActor()

	customer := &entity.Customer{ID: uuid.New(), Name: "Acme Ltd", EIK: "123456789"}
	product := &entity.Product{ID: uuid.New(), Name: "Desk", Price: decimal.RequireFromString("100.00"), Quantity: 4}
	orderID := uuid.New()
	invoiceID := uuid.New()

	m.customerRepo.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)
	m.actorExists(actor)
	m.productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	m.productRepo.On("Update", mock.Anything, mock.Anything).Return(nil)
	m.orderRepo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		args.Get(1).(*entity.Order).ID = orderID
	}).Return(nil)
	m.invoiceClient.On("CreateInvoice", mock.Anything, mock.MatchedBy(func(req *service.InvoiceRecord) bool {
		return req.OrderID == orderID &&
			req.EIK == "123456789" &&
			req.CustomerName == "Acme Ltd" &&
			req.TotalAmount.Equal(decimal.RequireFromString("100.00"))
	})).Return(&service.InvoiceRecord{ID: invoiceID, OrderID: orderID}, nil)
	m.orderRepo.On("SetInvoiceID", mock.Anything, orderID, invoiceID).Return(nil)

	order, err := svc.PlaceOrder(context.Background(), actor, usecase.PlaceOrderInput{
		CustomerID:      customer.ID,
		Items:           []usecase.OrderLineInput{{ProductID: product.ID, Quantity: 1}},
		GenerateInvoice: true,
	})

	require.NoError(t, err)
	require.NotNil(t, order.InvoiceID)
	assert.Equal(t, invoiceID, *order.InvoiceID)
	m.orderRepo.AssertExpectations(t)
}

func TestPlaceOrder_InvoiceFailureKeepsOrder(t *testing.T) {
	svc, m := newOrderService(t)
	actor := userActor()

	customer := &entity.Customer{ID: uuid.New(), Name: "Acme Ltd", EIK: "123456789"}
	product := &entity.Product{ID: uuid.New(), Name: "Desk", Price: decimal.RequireFromString("100.00"), Quantity: 4}

	m.customerRepo.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)
	m.actorExists(actor)
	m.productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	m.productRepo.On("Update", mock.Anything, mock.Anything).Return(nil)
	m.orderRepo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		args.Get(1).(*entity.Order).ID = uuid.New()
	}).Return(nil)
	m.invoiceClient.On("CreateInvoice", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused"))

	order, err := svc.PlaceOrder(context.Background(), actor, usecase.PlaceOrderInput{
		CustomerID:      customer.ID,
		Items:           []usecase.OrderLineInput{{ProductID: product.ID, Quantity: 1}},
		GenerateInvoice: true,
	})

	require.NoError(t, err)
	assert.Nil(t, order.InvoiceID)
	m.orderRepo.AssertNotCalled(t, "SetInvoiceID", mock.Anything, mock.Anything, mock.Anything)
}

func TestPlaceOrder_InvoiceDeclinedIsNoop(t *testing.T) {
	cases := []struct {
		name   string
		record *service.InvoiceRecord
	}{
		{name: "nil record", record: nil},
		{name: "zero invoice id", record: &service.InvoiceRecord{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, m := newOrderService(t)
			actor := userActor()

			customer := &entity.Customer{ID: uuid.New(), Name: "Acme Ltd", EIK: "123456789"}
			product := &entity.Product{ID: uuid.New(), Name: "Desk", Price: decimal.RequireFromString("100.00"), Quantity: 4}

			m.customerRepo.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)
			m.actorExists(actor)
			m.productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
			m.productRepo.On("Update", mock.Anything, mock.Anything).Return(nil)
			m.orderRepo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
				args.Get(1).(*entity.Order).ID = uuid.New()
			}).Return(nil)
			m.invoiceClient.On("CreateInvoice", mock.Anything, mock.Anything).Return(tc.record, nil)

			order, err := svc.PlaceOrder(context.Background(), actor, usecase.PlaceOrderInput{
				CustomerID:      customer.ID,
				Items:           []usecase.OrderLineInput{{ProductID: product.ID, Quantity: 1}},
				GenerateInvoice: true,
			})

			require.NoError(t, err)
			assert.Nil(t, order.InvoiceID)
			m.orderRepo.AssertNotCalled(t, "SetInvoiceID", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestListOrders_RoleSensitive(t *testing.T) {
	svc, m := newOrderService(t)

	admin := adminActor()
	clerk := userActor()

	all := []*entity.Order{{ID: uuid.New()}, {ID: uuid.New()}}
	own := []*entity.Order{{ID: uuid.New(), CreatedBy: clerk.UserID}}

	m.orderRepo.On("FindAll", mock.Anything).Return(all, nil)
	m.orderRepo.On("FindByCreator", mock.Anything, clerk.UserID).Return(own, nil)

	got, err := svc.ListOrders(context.Background(), admin)
	require.NoError(t, err)
	assert.Equal(t, all, got)

	got, err = svc.ListOrders(context.Background(), clerk)
	require.NoError(t, err)
	assert.Equal(t, own, got)
}

func TestGetOrder_OwnershipEnforced(t *testing.T) {
	svc, m := newOrderService(t)

	owner := userActor()
	stranger := userActor()
	order := &entity.Order{ID: uuid.New(), CreatedBy: owner.UserID}

	m.orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)

	got, err := svc.GetOrder(context.Background(), owner, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order, got)

	_, err = svc.GetOrder(context.Background(), stranger, order.ID)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	got, err = svc.GetOrder(context.Background(), adminActor(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, order, got)
}

func TestUpdateOrder_RestoresStockThenRebuilds(t *testing.T) {
	svc, m := newOrderService(t)
	actor := userActor()

	customer := &entity.Customer{ID: uuid.New(), Name: "Acme Ltd", EIK: "123456789"}
	product := &entity.Product{ID: uuid.New(), Name: "Desk", Price: decimal.RequireFromString("100.00"), Quantity: 3}
	existing := &entity.Order{
		ID:         uuid.New(),
		CustomerID: customer.ID,
		CreatedBy:  actor.UserID,
		Items: []entity.OrderItem{{
			ProductID: product.ID,
			Quantity:  2,
			Price:     decimal.RequireFromString("100.00"),
			Total:     decimal.RequireFromString("200.00"),
		}},
		TotalPrice: decimal.RequireFromString("200.00"),
	}

	m.orderRepo.On("FindByID", mock.Anything, existing.ID).Return(existing, nil)
	m.productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	m.productRepo.On("Update", mock.Anything, mock.Anything).Return(nil)
	m.customerRepo.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)
	m.orderRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

	order, err := svc.UpdateOrder(context.Background(), actor, existing.ID, usecase.PlaceOrderInput{
		CustomerID: customer.ID,
		Items:      []usecase.OrderLineInput{{ProductID: product.ID, Quantity: 1}},
	})

	require.NoError(t, err)
	// Stock went 3 -> 5 on restore, then 5 -> 4 for the new line.
	assert.Equal(t, 4, product.Quantity)
	require.Len(t, order.Items, 1)
	assert.True(t, order.TotalPrice.Equal(decimal.RequireFromString("100.00")))
	assert.Equal(t, actor.UserID, order.CreatedBy)
}

func TestDeleteOrder_RestoresStock(t *testing.T) {
	svc, m := newOrderService(t)
	actor := userActor()

	product := &entity.Product{ID: uuid.New(), Name: "Desk", Price: decimal.RequireFromString("100.00"), Quantity: 3}
	order := &entity.Order{
		ID:        uuid.New(),
		CreatedBy: actor.UserID,
		Items:     []entity.OrderItem{{ProductID: product.ID, Quantity: 2}},
	}

	m.orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	m.productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	m.productRepo.On("Update", mock.Anything, mock.Anything).Return(nil)
	m.orderRepo.On("Delete", mock.Anything, order.ID).Return(nil)

	require.NoError(t, svc.DeleteOrder(context.Background(), actor, order.ID))
	assert.Equal(t, 5, product.Quantity)
	m.orderRepo.AssertExpectations(t)
}

func TestDeleteOrder_NotFound(t *testing.T) {
	svc, m := newOrderService(t)

	orderID := uuid.New()
	m.orderRepo.On("FindByID", mock.Anything, orderID).Return(nil, repository.ErrOrderNotFound)

	err := svc.DeleteOrder(context.Background(), adminActor(), orderID)
	assert.ErrorIs(t, err, domainerrors.ErrOrderNotFound)
}
