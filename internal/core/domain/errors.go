package domain

import "errors"

var (
	// ErrValidation marks a request with missing or malformed required input.
	ErrValidation = errors.New("invalid input")

	// ErrInvalidCredentials covers both unknown username and wrong password so
	// the two cases are indistinguishable to a caller.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken covers every access-token verification failure: expired,
	// malformed, or bad signature. Callers never learn which.
	ErrInvalidToken = errors.New("invalid token")

	// ErrSessionNotFound means a presented refresh token is not the one
	// currently stored for any user (already rotated or logged out).
	ErrSessionNotFound = errors.New("session not recognized")

	ErrForbidden = errors.New("access forbidden")

	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")

	ErrProductNotFound  = errors.New("product not found")
	ErrCartLineNotFound = errors.New("cart line not found")
	ErrOrderNotFound    = errors.New("order not found")
)
