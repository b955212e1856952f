package domain

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrValidation        = errors.New("invalid input")
	ErrQuotaExceeded     = errors.New("quota exceeded")
	ErrPremiumRequired   = errors.New("premium subscription required")
	ErrUpstream          = errors.New("completion service failure")
	ErrMalformedResponse = errors.New("invalid response format")
	ErrConflict          = errors.New("duplicate operation")
)
