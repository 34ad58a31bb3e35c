package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/arjunm-codes/notesvault/internal/api/services"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, userID string, ttl time.Duration) string {
	t.Helper()
	claims := &services.Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestAuthResolvesUserID(t *testing.T) {
	userID := primitive.NewObjectID()

	var got primitive.ObjectID
	var ok bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok = UserID(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/notes", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, userID.Hex(), time.Hour))
	rec := httptest.NewRecorder()

	Auth(testSecret, next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.True(t, ok)
	assert.Equal(t, userID, got)
}

func TestAuthRejectsBadTokens(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "not bearer", header: "Basic abc"},
		{name: "garbage token", header: "Bearer not-a-jwt"},
		{name: "wrong secret", header: ""},
		{name: "expired", header: ""},
		{name: "bad user id", header: ""},
	}
	tests[3].header = "Bearer " + signToken(t, "other-secret", primitive.NewObjectID().Hex(), time.Hour)
	tests[4].header = "Bearer " + signToken(t, testSecret, primitive.NewObjectID().Hex(), -time.Minute)
	tests[5].header = "Bearer " + signToken(t, testSecret, "not-an-object-id", time.Hour)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			})

			req := httptest.NewRequest(http.MethodGet, "/notes", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			Auth(testSecret, next).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.False(t, called)
		})
	}
}

func TestAuthPassesPreflight(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodOptions, "/notes", nil)
	rec := httptest.NewRecorder()

	Auth(testSecret, next).ServeHTTP(rec, req)

	assert.True(t, called)
}
