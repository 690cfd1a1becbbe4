package domain

import "errors"

// Error taxonomy for the settlement engine. Validation errors are expected
// and user-correctable; ErrUnauthorized and ErrInvalidTransition are hard
// stops; ErrUnavailable is a retryable store failure.
var (
	ErrInvalidAmount      = errors.New("amount must be a positive number")
	ErrBelowMinimum       = errors.New("amount is below the platform minimum")
	ErrInsufficientFunds  = errors.New("amount exceeds available balance")
	ErrInvalidDestination = errors.New("payout destination not found or not owned by expert")
	ErrUnauthorized       = errors.New("caller is not allowed to perform this operation")
	ErrInvalidTransition  = errors.New("status transition not permitted")
	ErrInvalidReference   = errors.New("transaction reference must be at least 3 characters")
	ErrNotFound           = errors.New("record not found")
	ErrUnavailable        = errors.New("store unavailable, retry later")
)
