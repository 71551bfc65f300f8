package get_available_hours

import "errors"

var (
	ErrServiceNotFound = errors.New("get_available_hours: service not found")

	// ErrDateTooFarInFuture is returned when the date exceeds advanceBookingDays
	ErrDateTooFarInFuture = errors.New("get_available_hours: date is too far in the future")

	ErrInvalidInput = errors.New("get_available_hours: invalid input data")
	ErrInternal     = errors.New("get_available_hours: internal error")
)
