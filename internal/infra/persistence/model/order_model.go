package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderModel mirrors the 'orders' table. Items are owned exclusively by the
// order; replacing or deleting the order always replaces or deletes the rows
// in 'order_items' with it.
type OrderModel struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	CustomerID uuid.UUID       `gorm:"type:uuid;not null;index"`
	CreatedBy  uuid.UUID       `gorm:"type:uuid;not null;index"`
	CreatedOn  time.Time       `gorm:"not null"`
	TotalPrice decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	// InvoiceID points into the invoice service's own store; deliberately no
	// foreign key.
	InvoiceID *uuid.UUID `gorm:"type:uuid"`

	Customer *CustomerModel    `gorm:"foreignKey:CustomerID"`
	Creator  *UserModel        `gorm:"foreignKey:CreatedBy"`
	Items    []*OrderItemModel `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel mirrors the 'order_items' table. Price and Total are
// snapshots taken at order time, not live links to the product.
type OrderItemModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity  int             `gorm:"not null"`
	Price     decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Total     decimal.Decimal `gorm:"type:numeric(14,2);not null"`

	Product *ProductModel `gorm:"foreignKey:ProductID"`
}

// TableName explicitly sets the table name for GORM.
func (OrderItemModel) TableName() string {
	return "order_items"
}
