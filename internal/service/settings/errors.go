package settings

import "errors"

var (
	ErrSettingsNotFound = errors.New("settings not found")

	ErrServiceNotFound = errors.New("service not found")

	ErrAccessDenied = errors.New("access denied")

	ErrInvalidInput = errors.New("invalid input data")

	ErrInternal = errors.New("service: internal error")
)
