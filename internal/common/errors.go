// Package common defines shared constants and sentinel errors used across
// the SyncHub server layers. Callers should use errors.Is to match these
// values; lower layers wrap them with context via fmt.Errorf("...: %w").
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound    = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal   = errors.New("internal error")
	ErrorValidation = errors.New("validation error")

	// Authentication errors. ErrInvalidToken and ErrTokenExpired are the
	// causes; the guard reports both wrapped in ErrUnauthenticated.
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Authorization errors.
	ErrForbidden   = errors.New("forbidden")
	ErrReservedTag = errors.New("reserved tag")
)
