package usecase

import (
	"context"

	"github.com/google/uuid"

	"trading/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Username string
	Password string
}

// --- Output DTOs ---

// RegisterOutput returns the newly created user's basic information.
type RegisterOutput struct {
	User *entity.User
}

// LoginOutput returns the generated token after a successful login.
type LoginOutput struct {
	AccessToken string
	User        *entity.User
}

// UserUsecase defines the interface for account and authentication operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type UserUsecase interface {
	// Register creates a new account with the USER role.
	Register(ctx context.Context, input RegisterInput) (*RegisterOutput, error)

	// Login authenticates a user and issues an access token.
	Login(ctx context.Context, input LoginInput) (*LoginOutput, error)

	// ListUsers returns every account. Admin only; the handler enforces that.
	ListUsers(ctx context.Context) ([]*entity.User, error)

	// UpdateRole sets an account's role.
	UpdateRole(ctx context.Context, userID uuid.UUID, role entity.Role) (*entity.User, error)

	// SetActive enables or disables an account. A disabled account keeps its
	// data but can no longer log in.
	SetActive(ctx context.Context, userID uuid.UUID, active bool) (*entity.User, error)

	// EnsureAdmin seeds a default admin account when no admin exists yet.
	// It runs once at startup.
	EnsureAdmin(ctx context.Context) error
}
