// internal/services/errors.go
package services

import "errors"

// Error taxonomy shared by every service. Handlers translate these into
// localized responses; failures of the backing source are wrapped with
// ErrBackend so callers can tell them apart from bad input.
var (
	ErrAuthRequired       = errors.New("authentication required")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountLocked      = errors.New("account temporarily locked")
	ErrAccountDisabled    = errors.New("account suspended or banned")
	ErrBackend            = errors.New("backend failure")
)
