package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trading/config"
	"trading/internal/domain/entity"
	"trading/internal/domain/service"
	"trading/internal/infra/auth"
)

func newTestTokenService(t *testing.T) service.TokenService {
	t.Helper()

	cfg := &config.Config{}
	cfg.SecretKey.Access = "test-secret"
	cfg.Auth = &config.AuthConfig{AccessTokenTTL: time.Hour}

	svc, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	return svc
}

func performRequest(m *AuthMiddleware, authHeader string, next echo.HandlerFunc) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	_ = m.Authenticate(next)(c)

	return rec
}

func TestAuthenticate_SetsActorFromClaims(t *testing.T) {
	tokenSvc := newTestTokenService(t)
	m := NewAuthMiddleware(tokenSvc)
	userID := uuid.New()

	token, err := tokenSvc.GenerateToken(userID, "alice", entity.RoleUser)
	require.NoError(t, err)

	var called bool
	rec := performRequest(m, "Bearer "+token, func(c echo.Context) error {
		called = true
		actor, ok := GetActor(c)
		require.True(t, ok)
		assert.Equal(t, userID, actor.UserID)
		assert.Equal(t, "alice", actor.Username)
		assert.Equal(t, entity.RoleUser, actor.Role)

		return c.NoContent(http.StatusOK)
	})

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	m := NewAuthMiddleware(newTestTokenService(t))

	rec := performRequest(m, "", func(c echo.Context) error {
		t.Fatal("handler should not run")

		return nil
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "MISSING_TOKEN")
}

func TestAuthenticate_NonBearerHeader(t *testing.T) {
	m := NewAuthMiddleware(newTestTokenService(t))

	rec := performRequest(m, "Basic dXNlcjpwYXNz", func(c echo.Context) error {
		t.Fatal("handler should not run")

		return nil
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_TOKEN")
}

func TestAuthenticate_GarbageToken(t *testing.T) {
	m := NewAuthMiddleware(newTestTokenService(t))

	rec := performRequest(m, "Bearer not-a-jwt", func(c echo.Context) error {
		t.Fatal("handler should not run")

		return nil
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole(t *testing.T) {
	tokenSvc := newTestTokenService(t)
	m := NewAuthMiddleware(tokenSvc)

	adminToken, err := tokenSvc.GenerateToken(uuid.New(), "admin", entity.RoleAdmin)
	require.NoError(t, err)
	userToken, err := tokenSvc.GenerateToken(uuid.New(), "bob", entity.RoleUser)
	require.NoError(t, err)

	guarded := m.Authenticate(m.RequireRole(entity.RoleAdmin)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}))

	run := func(token string) *httptest.ResponseRecorder {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		_ = guarded(e.NewContext(req, rec))

		return rec
	}

	assert.Equal(t, http.StatusOK, run(adminToken).Code)

	rec := run(userToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "FORBIDDEN")
}
