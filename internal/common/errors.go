// Package common defines shared constants and sentinel errors used across
// client and server layers of VoltDrive. Callers should use errors.Is to
// match these values; services wrap them with a human-readable message via
// fmt.Errorf("%w: ...").
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")

	// Input errors. ErrConflict is reported for a duplicate email.
	ErrValidation = errors.New("validation error")
	ErrConflict   = errors.New("already exists")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrMissingToken = errors.New("missing token")

	// Token lifecycle errors.
	ErrTokenExpired = errors.New("token expired")
)
