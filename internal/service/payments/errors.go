package payments

import "errors"

var (
	ErrPaymentNotFound = errors.New("payment not found")

	ErrBookingNotFound = errors.New("booking not found")

	// ErrInvalidIPN is returned for notifications that are unsigned, unknown or inconsistent
	ErrInvalidIPN = errors.New("invalid payment notification")

	ErrAccessDenied = errors.New("access denied")

	ErrInvalidInput = errors.New("invalid input data")

	ErrInternal = errors.New("service: internal error")
)
