package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arjunm-codes/notesvault/internal/apperrors"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)

	assert.True(t, CheckPassword(hash, "hunter22"))
	assert.False(t, CheckPassword(hash, "hunter23"))
	assert.False(t, CheckPassword("", "hunter22"))
}

func TestEncryptPhoneRoundTrip(t *testing.T) {
	const key = "secret-key"

	encrypted, err := EncryptPhone("+371-555-0101", key)
	require.NoError(t, err)
	assert.NotEqual(t, "+371-555-0101", encrypted)

	phone, err := DecryptPhone(encrypted, key)
	require.NoError(t, err)
	assert.Equal(t, "+371-555-0101", phone)

	// wrong key does not decrypt
	_, err = DecryptPhone(encrypted, "other-key")
	assert.Error(t, err)
}

func TestEncryptPhoneRequiresPhone(t *testing.T) {
	_, err := EncryptPhone("", "secret-key")
	assert.ErrorIs(t, err, apperrors.ErrPhoneRequired)
}

func TestEncryptPhoneRandomized(t *testing.T) {
	const key = "secret-key"

	a, err := EncryptPhone("+371-555-0101", key)
	require.NoError(t, err)
	b, err := EncryptPhone("+371-555-0101", key)
	require.NoError(t, err)

	// fresh nonce per call
	assert.NotEqual(t, a, b)
}

func TestGenerateSecureToken(t *testing.T) {
	a, err := GenerateSecureToken(16)
	require.NoError(t, err)
	b, err := GenerateSecureToken(16)
	require.NoError(t, err)

	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}
