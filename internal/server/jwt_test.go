package server

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jonathan/cv-builder/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWTConfig(hours int) *config.JWTConfig {
	return &config.JWTConfig{
		Secret:          "test-secret-key-for-jwt-signing-minimum-32-bytes",
		ExpirationHours: hours,
	}
}

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService(testJWTConfig(24))
	userID := uuid.New()

	token, err := svc.GenerateToken(userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, userID, claims.GetUserID())
}

func TestJWTService_EmptyToken(t *testing.T) {
	svc := NewJWTService(testJWTConfig(24))

	_, err := svc.ValidateToken("")
	assert.Error(t, err)
}

func TestJWTService_WrongSecret(t *testing.T) {
	svc := NewJWTService(testJWTConfig(24))
	other := NewJWTService(&config.JWTConfig{
		Secret:          "a-completely-different-secret-that-is-long-enough",
		ExpirationHours: 24,
	})

	token, err := other.GenerateToken(uuid.New())
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	cfg := testJWTConfig(24)
	svc := NewJWTService(cfg)
	userID := uuid.New()

	past := time.Now().Add(-time.Hour)
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(past),
			IssuedAt:  jwt.NewNumericDate(past.Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.Secret))
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsNonHMACAlgorithm(t *testing.T) {
	svc := NewJWTService(testJWTConfig(24))

	// alg=none with an empty signature must never validate.
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: uuid.New()}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_AsTokenValidator(t *testing.T) {
	svc := NewJWTService(testJWTConfig(24))
	userID := uuid.New()

	token, err := svc.GenerateToken(userID)
	require.NoError(t, err)

	getter, err := svc.AsTokenValidator().ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, getter.GetUserID())
}
