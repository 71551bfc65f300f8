package create_booking

import "errors"

var (
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrServiceUnavailable is returned when the provider disabled the service
	ErrServiceUnavailable = errors.New("create_booking: service is not available for rent")

	ErrDateTooFarInFuture = errors.New("create_booking: date is too far in the future")

	// ErrOutsideOpeningHours is returned when an hourly rental leaves the provider's window
	ErrOutsideOpeningHours = errors.New("create_booking: outside opening hours")

	// ErrTooLateToBook is returned when the start violates minBookingNoticeMinutes
	ErrTooLateToBook = errors.New("create_booking: too late to book this period")

	// ErrConflict is returned when the period is no longer free
	ErrConflict = errors.New("create_booking: period is not available")

	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInvalidDuration always comes wrapped together with ErrInvalidInput
	ErrInvalidDuration = errors.New("create_booking: invalid rental duration")

	ErrInternal = errors.New("create_booking: internal error")
)
