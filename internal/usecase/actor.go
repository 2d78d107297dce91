// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"github.com/google/uuid"

	"trading/internal/domain/entity"
)

// Actor is the authenticated caller of an operation. Handlers build it from
// token claims and pass it down explicitly, so the service layer never reads
// ambient auth state.
type Actor struct {
	UserID   uuid.UUID
	Username string
	Role     entity.Role
}

// IsAdmin reports whether the actor holds the ADMIN role.
func (a Actor) IsAdmin() bool {
	return a.Role == entity.RoleAdmin
}
