package users

import "errors"

var (
	ErrUserNotFound = errors.New("user not found")

	ErrEmailTaken = errors.New("email already registered")

	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrNotVerified = errors.New("account not verified")

	ErrInactive = errors.New("account disabled")

	ErrInvalidOTP = errors.New("invalid or expired code")

	ErrTooManyAttempts = errors.New("too many attempts")

	ErrOTPCooldown = errors.New("code requested too recently")

	ErrUnauthorized = errors.New("invalid or revoked token")

	ErrAccessDenied = errors.New("access denied")

	ErrInvalidInput = errors.New("invalid input data")

	ErrInternal = errors.New("service: internal error")
)
