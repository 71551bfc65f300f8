package get_availability_calendar

import "errors"

var (
	ErrServiceNotFound = errors.New("get_availability_calendar: service not found")
	ErrInvalidInput    = errors.New("get_availability_calendar: invalid input data")
	ErrInternal        = errors.New("get_availability_calendar: internal error")
)
