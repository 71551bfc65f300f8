package catalog

import "errors"

var (
	ErrServiceNotFound = errors.New("service not found")

	ErrAccessDenied = errors.New("access denied")

	ErrInvalidInput = errors.New("invalid input data")

	ErrTooManyImages = errors.New("too many images")

	ErrUnsupportedImage = errors.New("unsupported image type")

	ErrImageNotFound = errors.New("image not attached to service")

	ErrInternal = errors.New("service: internal error")
)
