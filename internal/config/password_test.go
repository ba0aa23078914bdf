package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPasswordConfig(t *testing.T) *PasswordConfig {
	t.Helper()
	// Minimum allowed cost keeps the hashing rounds cheap in tests
	return &PasswordConfig{BcryptCost: 10}
}

func TestNewPasswordConfig_Defaults(t *testing.T) {
	t.Setenv("BCRYPT_COST", "")
	t.Setenv("PASSWORD_PEPPER", "")

	cfg, err := NewPasswordConfig()
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Empty(t, cfg.Pepper)
}

func TestNewPasswordConfig_CostOutOfRange(t *testing.T) {
	for _, cost := range []string{"9", "15", "abc"} {
		t.Setenv("BCRYPT_COST", cost)
		_, err := NewPasswordConfig()
		assert.Error(t, err, "cost %s should be rejected", cost)
	}
}

func TestHashAndVerifyPassword(t *testing.T) {
	cfg := testPasswordConfig(t)

	hash, err := cfg.HashPassword("s3cret-password")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-password", hash)

	assert.True(t, cfg.VerifyPassword("s3cret-password", hash))
	assert.False(t, cfg.VerifyPassword("wrong-password", hash))
}

func TestVerifyPassword_PepperMismatch(t *testing.T) {
	peppered := &PasswordConfig{BcryptCost: 10, Pepper: "global-pepper"}
	plain := testPasswordConfig(t)

	hash, err := peppered.HashPassword("s3cret-password")
	require.NoError(t, err)

	assert.True(t, peppered.VerifyPassword("s3cret-password", hash))
	// Without the pepper the same password must not verify
	assert.False(t, plain.VerifyPassword("s3cret-password", hash))
}
