package bookings

import "errors"

var (
	ErrBookingNotFound = errors.New("booking not found")

	ErrAccessDenied = errors.New("access denied")

	ErrCannotCancel = errors.New("booking cannot be cancelled")

	// ErrInvalidTransition is returned when the requested status does not follow the lifecycle
	ErrInvalidTransition = errors.New("booking status transition not allowed")

	ErrInvalidInput = errors.New("invalid input data")

	ErrInternal = errors.New("service: internal error")
)
