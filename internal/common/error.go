// Package common defines shared constants and sentinel errors used across
// client and server layers of AMail. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorValidation   = errors.New("validation error")

	// Mask derivation errors.
	ErrorInvalidPhrase = errors.New("phrase too short")
	ErrorInvalidState  = errors.New("rolling state is empty")

	// Value transfer errors.
	ErrorValueMismatch     = errors.New("attached value does not match amount")
	ErrorInsufficientFunds = errors.New("insufficient funds")
	ErrorTransferFailed    = errors.New("transfer failed")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
)
