package initiate_payment

import "errors"

var (
	ErrBookingNotFound = errors.New("initiate_payment: booking not found")

	ErrAccessDenied = errors.New("initiate_payment: access denied")

	// ErrAlreadyPaid is returned when the booking is settled
	ErrAlreadyPaid = errors.New("initiate_payment: booking already paid")

	// ErrNotPayable is returned for cancelled, rejected or finished bookings
	ErrNotPayable = errors.New("initiate_payment: booking cannot be paid")

	ErrInternal = errors.New("initiate_payment: internal error")
)
