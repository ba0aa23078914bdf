package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testClaims struct {
	userID uuid.UUID
}

func (c *testClaims) GetUserID() uuid.UUID { return c.userID }

// testTokenValidator accepts only the tokens it was seeded with.
type testTokenValidator struct {
	validTokens map[string]uuid.UUID
}

func (v *testTokenValidator) ValidateToken(tokenString string) (UserIDGetter, error) {
	userID, ok := v.validTokens[tokenString]
	if !ok {
		return nil, fmt.Errorf("invalid token")
	}
	return &testClaims{userID: userID}, nil
}

func authHandler(t *testing.T, wantUserID uuid.UUID) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := GetUserID(r)
		require.NoError(t, err)
		assert.Equal(t, wantUserID, userID)
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	userID := uuid.New()
	validator := &testTokenValidator{validTokens: map[string]uuid.UUID{"good-token": userID}}

	handler := AuthMiddleware(validator)(authHandler(t, userID))

	req := httptest.NewRequest(http.MethodGet, "/cvs", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthMiddleware_CaseInsensitiveScheme(t *testing.T) {
	userID := uuid.New()
	validator := &testTokenValidator{validTokens: map[string]uuid.UUID{"good-token": userID}}

	handler := AuthMiddleware(validator)(authHandler(t, userID))

	req := httptest.NewRequest(http.MethodGet, "/cvs", nil)
	req.Header.Set("Authorization", "bearer good-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	validator := &testTokenValidator{validTokens: map[string]uuid.UUID{"good-token": uuid.New()}}
	handler := AuthMiddleware(validator)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic good-token"},
		{"no token", "Bearer"},
		{"unknown token", "Bearer bad-token"},
		{"extra parts", "Bearer good-token extra"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/cvs", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.JSONEq(t, `{"error":"Unauthorized"}`, rec.Body.String())
		})
	}
}

func TestGetUserID_MissingFromContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/cvs", nil)
	_, err := GetUserID(req)
	assert.Error(t, err)
}

func TestWithUserID(t *testing.T) {
	userID := uuid.New()
	req := httptest.NewRequest(http.MethodGet, "/cvs", nil)
	req = req.WithContext(WithUserID(req.Context(), userID))

	got, err := GetUserID(req)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}
