package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceModel mirrors the 'invoices' table in the invoice service's own
// database. OrderID is an opaque reference into the trading application.
type InvoiceModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	OrderID      uuid.UUID       `gorm:"type:uuid;not null"`
	EIK          string          `gorm:"column:eik;type:varchar(9);not null"`
	CustomerName string          `gorm:"type:varchar(255);not null"`
	TotalAmount  decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	IssuedOn     time.Time       `gorm:"not null;index"`
}

// TableName explicitly sets the table name for GORM.
func (InvoiceModel) TableName() string {
	return "invoices"
}
