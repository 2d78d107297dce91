package service

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"trading/internal/domain/entity"
)

// TokenService abstracts access-token handling for the authentication flow.
type TokenService interface {
	// GenerateToken creates a signed access token carrying the user's
	// identity, username and role.
	GenerateToken(userID uuid.UUID, username string, role entity.Role) (string, error)

	// ValidateToken checks the validity of a token string and returns the
	// parsed token.
	ValidateToken(tokenString string) (*jwt.Token, error)
}
