package middleware

import (
	"strings"

	"trading/internal/delivery/http/response"
	"trading/internal/domain/entity"
	"trading/internal/domain/service"
	"trading/internal/usecase"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const actorContextKey = "actor"

// AuthMiddleware provides middleware for JWT authentication and authorization.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate validates the bearer token and places the caller identity on
// the request context. Everything the handlers need comes from the claims;
// no user lookup happens here.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return response.Unauthorized(c, "MISSING_TOKEN", "Authorization header is missing")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return response.Unauthorized(c, "INVALID_TOKEN", "Invalid token format, must be Bearer token")
		}

		token, err := m.tokenSvc.ValidateToken(tokenString)
		if err != nil || !token.Valid {
			return response.Unauthorized(c, "INVALID_TOKEN", "Invalid or expired token")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return response.Unauthorized(c, "INVALID_TOKEN", "Failed to parse token claims")
		}

		actor, ok := actorFromClaims(claims)
		if !ok {
			return response.Unauthorized(c, "INVALID_TOKEN", "Token claims are incomplete")
		}

		c.Set(actorContextKey, actor)

		return next(c)
	}
}

// RequireRole checks that the authenticated caller holds a specific role.
// It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireRole(requiredRole entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, ok := GetActor(c)
			if !ok {
				return response.Forbidden(c, "FORBIDDEN", "Permission denied: caller identity missing")
			}

			if actor.Role != requiredRole {
				return response.Forbidden(c, "FORBIDDEN", "Permission denied: require '"+string(requiredRole)+"' role")
			}

			return next(c)
		}
	}
}

// GetActor returns the caller identity placed on the context by Authenticate.
func GetActor(c echo.Context) (usecase.Actor, bool) {
	actor, ok := c.Get(actorContextKey).(usecase.Actor)

	return actor, ok
}

func actorFromClaims(claims jwt.MapClaims) (usecase.Actor, bool) {
	sub, ok := claims["sub"].(string)
	if !ok {
		return usecase.Actor{}, false
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return usecase.Actor{}, false
	}

	username, ok := claims["username"].(string)
	if !ok {
		return usecase.Actor{}, false
	}

	roleClaim, ok := claims["role"].(string)
	if !ok {
		return usecase.Actor{}, false
	}
	role := entity.Role(roleClaim)
	if !role.Valid() {
		return usecase.Actor{}, false
	}

	return usecase.Actor{
		UserID:   userID,
		Username: username,
		Role:     role,
	}, true
}
