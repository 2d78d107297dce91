package postgres

import (
	"context"

	"trading/internal/domain/entity"
	domainerrors "trading/internal/domain/errors"
	"trading/internal/domain/repository"
	"trading/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// orderRepository implements the repository.OrderRepository interface using GORM.
// Orders and their items are written as one aggregate.
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

// FindAll retrieves every order, newest first, with items and references preloaded.
func (repo *orderRepository) FindAll(ctx context.Context) ([]*entity.Order, error) {
	var orderModels []*model.OrderModel

	if err := repo.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Product").
		Preload("Customer").
		Preload("Creator").
		Order("created_on DESC").
		Find(&orderModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	orders := make([]*entity.Order, 0, len(orderModels))
	for _, orderM := range orderModels {
		orders = append(orders, toOrderDomain(orderM))
	}

	return orders, nil
}

// FindByCreator retrieves the orders placed by a specific user, newest first.
func (repo *orderRepository) FindByCreator(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	var orderModels []*model.OrderModel

	if err := repo.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Product").
		Preload("Customer").
		Preload("Creator").
		Where("created_by = ?", userID).
		Order("created_on DESC").
		Find(&orderModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list orders by creator")
	}

	orders := make([]*entity.Order, 0, len(orderModels))
	for _, orderM := range orderModels {
		orders = append(orders, toOrderDomain(orderM))
	}

	return orders, nil
}

// FindByID retrieves a single order with its items.
func (repo *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var orderM model.OrderModel

	if err := repo.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Product").
		Preload("Customer").
		Preload("Creator").
		Where("id = ?", id).
		First(&orderM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order by id")
	}

	return toOrderDomain(&orderM), nil
}

// Create persists a new order together with all of its items. GORM inserts
// the item rows alongside the order row.
func (repo *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	orderM := fromOrderDomain(order)

	if err := repo.db.WithContext(ctx).Create(orderM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("invalid customer or user reference")
		}
		return domainerrors.NewDatabaseExecuteError(err, "failed to create order")
	}

	order.ID = orderM.ID
	for i := range order.Items {
		order.Items[i].ID = orderM.Items[i].ID
		order.Items[i].OrderID = orderM.ID
	}

	return nil
}

// Update persists the order and replaces its item set wholesale: the old
// item rows are dropped and the current set inserted fresh.
func (repo *orderRepository) Update(ctx context.Context, order *entity.Order) error {
	if err := repo.db.WithContext(ctx).
		Where("order_id = ?", order.ID).
		Delete(&model.OrderItemModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to clear order items")
	}

	orderM := fromOrderDomain(order)
	if err := repo.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(orderM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update order")
	}

	for i := range order.Items {
		order.Items[i].ID = orderM.Items[i].ID
		order.Items[i].OrderID = orderM.ID
	}

	return nil
}

// SetInvoiceID records the invoice reference on an already persisted order.
// Runs outside the placement transaction, after the remote invoice call.
func (repo *orderRepository) SetInvoiceID(ctx context.Context, orderID, invoiceID uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ?", orderID).
		Update("invoice_id", invoiceID)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to set order invoice id")
	}
	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

// Delete removes an order; its items go with it via the cascade constraint.
func (repo *orderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.OrderModel{}, "id = ?", id)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete order")
	}
	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

// ExistsByCustomer reports whether any order references the given customer.
// Used by the customer deletion guard.
func (repo *orderRepository) ExistsByCustomer(ctx context.Context, customerID uuid.UUID) (bool, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("customer_id = ?", customerID).
		Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "failed to check orders by customer")
	}

	return count > 0, nil
}

// --- Mapper Functions ---

// toOrderDomain converts a GORM OrderModel to a domain Order entity.
func toOrderDomain(data *model.OrderModel) *entity.Order {
	if data == nil {
		return nil
	}

	items := make([]entity.OrderItem, 0, len(data.Items))
	for _, itemM := range data.Items {
		items = append(items, entity.OrderItem{
			ID:        itemM.ID,
			OrderID:   itemM.OrderID,
			ProductID: itemM.ProductID,
			Product:   toProductDomain(itemM.Product),
			Quantity:  itemM.Quantity,
			Price:     itemM.Price,
			Total:     itemM.Total,
		})
	}

	return &entity.Order{
		ID:         data.ID,
		CustomerID: data.CustomerID,
		Customer:   toCustomerDomain(data.Customer),
		CreatedBy:  data.CreatedBy,
		Creator:    toUserDomain(data.Creator),
		CreatedOn:  data.CreatedOn,
		Items:      items,
		TotalPrice: data.TotalPrice,
		InvoiceID:  data.InvoiceID,
	}
}

// fromOrderDomain converts a domain Order entity to a GORM OrderModel.
func fromOrderDomain(data *entity.Order) *model.OrderModel {
	if data == nil {
		return nil
	}

	items := make([]*model.OrderItemModel, 0, len(data.Items))
	for _, item := range data.Items {
		items = append(items, &model.OrderItemModel{
			ID:        item.ID,
			OrderID:   item.OrderID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Total:     item.Total,
		})
	}

	return &model.OrderModel{
		ID:         data.ID,
		CustomerID: data.CustomerID,
		CreatedBy:  data.CreatedBy,
		CreatedOn:  data.CreatedOn,
		TotalPrice: data.TotalPrice,
		InvoiceID:  data.InvoiceID,
		Items:      items,
	}
}
