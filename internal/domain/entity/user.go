// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is an operator account of the trading application. Users place orders
// on behalf of customers; admins additionally manage products, customers and
// other user accounts.
type User struct {
	ID           uuid.UUID // The unique identifier for the account.
	Username     string    // Unique login name.
	Email        string    // Contact email, unique across accounts.
	PasswordHash string    // bcrypt hash of the password. Never serialized outward.
	Role         Role      // Either RoleUser or RoleAdmin.
	Active       bool      // Inactive accounts cannot log in.
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
