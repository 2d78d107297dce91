package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"trading/config"
	"trading/internal/domain/entity"
	"trading/internal/domain/service"
)

const defaultAccessTTL = 8 * time.Hour

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	secret    string
	accessTTL time.Duration
}

// NewJWTService is the constructor for jwtService.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Access == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	ttl := defaultAccessTTL
	if cfg.Auth != nil && cfg.Auth.AccessTokenTTL > 0 {
		ttl = cfg.Auth.AccessTokenTTL
	}

	return &jwtService{
		secret:    cfg.SecretKey.Access,
		accessTTL: ttl,
	}, nil
}

// GenerateToken creates a signed access token for a given user. The claims
// carry everything the middleware needs to build the caller identity, so no
// database lookup happens per request.
func (s *jwtService) GenerateToken(userID uuid.UUID, username string, role entity.Role) (string, error) {
	claims := jwt.MapClaims{
		"sub":      userID,                               // Subject (who the token is for)
		"username": username,                             // Stamped onto orders as the creator
		"role":     string(role),                         // Authorization level
		"iat":      time.Now().Unix(),                    // Issued At
		"exp":      time.Now().Add(s.accessTTL).Unix(),   // Expiration Time
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secret))
}

// ValidateToken checks the validity of a token string against the secret.
func (s *jwtService) ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.secret), nil
	})
}
