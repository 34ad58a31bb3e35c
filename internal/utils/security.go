package utils

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/arjunm-codes/notesvault/internal/apperrors"
)

// HashPassword returns the bcrypt hash of a plaintext password.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// CheckPassword reports whether the plaintext password matches the stored hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// phoneKey derives the fixed-size AES key from the configured secret.
func phoneKey(secret string) []byte {
	key := sha256.Sum256([]byte(secret))
	return key[:]
}

// EncryptPhone encrypts a phone number with AES-GCM for storage at rest.
// An empty phone is an input error, not a storage error.
func EncryptPhone(phone, secret string) (string, error) {
	if phone == "" {
		return "", apperrors.ErrPhoneRequired
	}

	block, err := aes.NewCipher(phoneKey(secret))
	if err != nil {
		return "", fmt.Errorf("failed to init cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("failed to init GCM: %w", err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := gcm.Seal(nonce, nonce, []byte(phone), nil)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

// GenerateSecureToken creates a cryptographically secure random token.
func GenerateSecureToken(length int) (string, error) {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// DecryptPhone reverses EncryptPhone. No API endpoint exposes it; it exists so
// the encryption scheme stays verifiable.
func DecryptPhone(encrypted, secret string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(encrypted)
	if err != nil {
		return "", fmt.Errorf("failed to decode phone: %w", err)
	}

	block, err := aes.NewCipher(phoneKey(secret))
	if err != nil {
		return "", fmt.Errorf("failed to init cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("failed to init GCM: %w", err)
	}

	if len(raw) < gcm.NonceSize() {
		return "", fmt.Errorf("encrypted phone too short")
	}
	nonce, sealed := raw[:gcm.NonceSize()], raw[gcm.NonceSize():]

	phone, err := gcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt phone: %w", err)
	}
	return string(phone), nil
}
