package calculate_price

import "errors"

var (
	ErrServiceNotFound = errors.New("calculate_price: service not found")

	// ErrInvalidInput is returned for malformed requests and durations below one unit
	ErrInvalidInput = errors.New("calculate_price: invalid input data")

	ErrInternal = errors.New("calculate_price: internal error")
)
