package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trading/config"
	"trading/internal/domain/entity"
	"trading/internal/domain/service"
)

func newTestJWTService(t *testing.T, secret string, ttl time.Duration) service.TokenService {
	t.Helper()

	cfg := &config.Config{}
	cfg.SecretKey.Access = secret
	cfg.Auth = &config.AuthConfig{AccessTokenTTL: ttl}

	svc, err := NewJWTService(cfg)
	require.NoError(t, err)

	return svc
}

func TestNewJWTService_RequiresSecret(t *testing.T) {
	_, err := NewJWTService(&config.Config{})
	require.Error(t, err)
}

func TestGenerateToken_RoundTrip(t *testing.T) {
	svc := newTestJWTService(t, "test-secret", time.Hour)
	userID := uuid.New()

	tokenString, err := svc.GenerateToken(userID, "alice", entity.RoleAdmin)
	require.NoError(t, err)

	token, err := svc.ValidateToken(tokenString)
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, userID.String(), claims["sub"])
	assert.Equal(t, "alice", claims["username"])
	assert.Equal(t, "ADMIN", claims["role"])

	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp.Time, time.Minute)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	svc := newTestJWTService(t, "test-secret", time.Hour)
	other := newTestJWTService(t, "other-secret", time.Hour)

	tokenString, err := svc.GenerateToken(uuid.New(), "alice", entity.RoleUser)
	require.NoError(t, err)

	_, err = other.ValidateToken(tokenString)
	require.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	svc := newTestJWTService(t, "test-secret", time.Hour)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": uuid.New().String(),
		"exp": time.Now().Add(-time.Minute).Unix(),
	})
	tokenString, err := expired.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = svc.ValidateToken(tokenString)
	require.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestValidateToken_RejectsNonHMAC(t *testing.T) {
	svc := newTestJWTService(t, "test-secret", time.Hour)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": uuid.New().String()})
	tokenString, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.ValidateToken(tokenString)
	require.Error(t, err)
}
