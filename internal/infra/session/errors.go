package session

import "errors"

var (
	ErrSessionNotFound = errors.New("session.store: session not found")
	ErrStore           = errors.New("session.store: redis operation failed")

	ErrOTPNotFound        = errors.New("session.store: otp expired or missing")
	ErrOTPInvalid         = errors.New("session.store: otp does not match")
	ErrOTPTooManyAttempts = errors.New("session.store: too many otp attempts")
	ErrOTPCooldown        = errors.New("session.store: otp resent too early")
)
