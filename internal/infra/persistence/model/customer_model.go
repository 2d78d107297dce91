// Package model holds the GORM persistence models mirroring the database
// tables. PostgreSQL generates UUIDs via uuid_generate_v7().
package model

import (
	"time"

	"github.com/google/uuid"
)

// CustomerModel mirrors the 'customers' table.
type CustomerModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name      string    `gorm:"type:varchar(255);not null"`
	EIK       string    `gorm:"column:eik;type:varchar(9);unique;not null"`
	Email     string    `gorm:"type:varchar(255);unique;not null"`
	Address   string    `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (CustomerModel) TableName() string {
	return "customers"
}
