package notifications

import "errors"

var (
	ErrNotificationNotFound = errors.New("notification not found")

	ErrUserNotFound = errors.New("recipient not found")

	ErrAccessDenied = errors.New("access denied")

	ErrInvalidInput = errors.New("invalid input data")

	ErrInternal = errors.New("service: internal error")
)
