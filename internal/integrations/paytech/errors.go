package paytech

import "errors"

var (
	// ErrInternal is returned when the request cannot be built or sent
	ErrInternal = errors.New("paytech client: internal error")

	// ErrInvalidResponse is returned when PayTech answers with an unexpected payload or status
	ErrInvalidResponse = errors.New("paytech client: invalid response")

	// ErrRejected is returned when PayTech refuses the payment request
	ErrRejected = errors.New("paytech client: payment request rejected")

	// ErrInvalidSignature is returned when an IPN does not carry our hashed credentials
	ErrInvalidSignature = errors.New("paytech client: invalid ipn signature")

	// ErrUnknownEvent is returned for IPN event types we do not handle
	ErrUnknownEvent = errors.New("paytech client: unknown ipn event")
)
