package apperrors

import "errors"

// Domain outcomes. Services return these as values; the HTTP layer owns the
// single mapping from outcome to status code.
var (
	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("not authorized")

	ErrValidation = errors.New("validation error")

	// user-specific outcomes
	ErrEmailExists              = errors.New("email already exists")
	ErrPhoneRequired            = errors.New("phone is required")
	ErrInvalidCredentials       = errors.New("invalid email or password")
	ErrPasswordChangeNotAllowed = errors.New("password cannot be updated")

	// auth-specific outcomes
	ErrInvalidToken = errors.New("invalid token")
)
