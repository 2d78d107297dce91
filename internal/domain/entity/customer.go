package entity

import (
	"time"

	"github.com/google/uuid"
)

// Customer is a legal entity orders are placed for. The EIK (national tax
// registration number) and email are unique across customers.
type Customer struct {
	ID        uuid.UUID
	Name      string // Display name of the company or person.
	EIK       string // 9-character national tax identifier, unique.
	Email     string // Unique contact email.
	Address   string // Optional postal address.
	CreatedAt time.Time
	UpdatedAt time.Time
}
