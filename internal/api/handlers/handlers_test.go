package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arjunm-codes/notesvault/internal/apperrors"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{err: fmt.Errorf("%w: bad title", apperrors.ErrValidation), want: http.StatusBadRequest},
		{err: apperrors.ErrPhoneRequired, want: http.StatusBadRequest},
		{err: apperrors.ErrPasswordChangeNotAllowed, want: http.StatusBadRequest},
		{err: apperrors.ErrInvalidCredentials, want: http.StatusUnauthorized},
		{err: apperrors.ErrInvalidToken, want: http.StatusUnauthorized},
		{err: apperrors.ErrForbidden, want: http.StatusForbidden},
		{err: apperrors.ErrNotFound, want: http.StatusNotFound},
		{err: apperrors.ErrEmailExists, want: http.StatusConflict},
		{err: errors.New("connection reset"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), "for error %v", tt.err)
	}
}

func TestWriteErrorDomainOutcome(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, apperrors.ErrForbidden, "Update failed")

	assert.Equal(t, http.StatusForbidden, rec.Code)

	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "not authorized", body.Message)
	assert.Empty(t, body.Error)
}

func TestWriteErrorStoreFailureUsesFallback(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, errors.New("connection reset"), "Failed to get notes")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Failed to get notes", body.Message)
}

func TestNotFoundRoute(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/definitely/not/a/route", nil)

	NotFound(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Invalid application routing", body.Message)
}

func TestStateRoundTrip(t *testing.T) {
	state, err := GenerateState(map[string]string{"flow": "register"})
	require.NoError(t, err)

	data, err := DecodeState(state)
	require.NoError(t, err)
	assert.Equal(t, "register", data["flow"])

	_, err = DecodeState("malformed")
	assert.Error(t, err)
}

func TestQueryInt(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/notes/paginate-sort?page=2&limit=abc", nil)

	assert.Equal(t, int64(2), queryInt(req, "page", 1))
	assert.Equal(t, int64(5), queryInt(req, "limit", 5))
	assert.Equal(t, int64(1), queryInt(req, "missing", 1))
}
