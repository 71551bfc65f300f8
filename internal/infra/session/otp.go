package session

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	otpKeyPrefix      = "agro:otp:"
	otpAttemptsPrefix = "agro:otp_attempts:"
	otpCooldownPrefix = "agro:otp_cooldown:"
)

// OTPPurpose separates codes issued for different flows
type OTPPurpose string

const (
	OTPVerifyAccount OTPPurpose = "verify"
	OTPResetPassword OTPPurpose = "reset"
)

// SaveOTP stores a code for email, replacing any previous one and resetting attempts.
// It fails with ErrOTPCooldown while the previous code is younger than cooldown.
func (s *Store) SaveOTP(ctx context.Context, purpose OTPPurpose, email, code string, ttl, cooldown time.Duration) error {
	suffix := otpSuffix(purpose, email)

	if cooldown > 0 {
		ok, err := s.client.SetNX(ctx, otpCooldownPrefix+suffix, 1, cooldown).Result()
		if err != nil {
			return fmt.Errorf("%w: SaveOTP - cooldown: %v", ErrStore, err)
		}
		if !ok {
			return ErrOTPCooldown
		}
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, otpKeyPrefix+suffix, code, ttl)
	pipe.Del(ctx, otpAttemptsPrefix+suffix)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: SaveOTP - exec: %v", ErrStore, err)
	}
	return nil
}

// VerifyOTP checks code and consumes it on success. Every wrong code counts as an attempt;
// after maxAttempts the code is burnt.
func (s *Store) VerifyOTP(ctx context.Context, purpose OTPPurpose, email, code string, maxAttempts int) error {
	suffix := otpSuffix(purpose, email)

	stored, err := s.client.Get(ctx, otpKeyPrefix+suffix).Result()
	if errors.Is(err, redis.Nil) {
		return ErrOTPNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: VerifyOTP - get: %v", ErrStore, err)
	}

	if subtle.ConstantTimeCompare([]byte(stored), []byte(code)) == 1 {
		if err := s.client.Del(ctx, otpKeyPrefix+suffix, otpAttemptsPrefix+suffix, otpCooldownPrefix+suffix).Err(); err != nil {
			return fmt.Errorf("%w: VerifyOTP - consume: %v", ErrStore, err)
		}
		return nil
	}

	attempts, err := s.client.Incr(ctx, otpAttemptsPrefix+suffix).Result()
	if err != nil {
		return fmt.Errorf("%w: VerifyOTP - incr: %v", ErrStore, err)
	}
	if ttl, err := s.client.TTL(ctx, otpKeyPrefix+suffix).Result(); err == nil && ttl > 0 {
		s.client.Expire(ctx, otpAttemptsPrefix+suffix, ttl)
	}

	if maxAttempts > 0 && attempts >= int64(maxAttempts) {
		s.client.Del(ctx, otpKeyPrefix+suffix, otpAttemptsPrefix+suffix)
		return ErrOTPTooManyAttempts
	}
	return ErrOTPInvalid
}

func otpSuffix(purpose OTPPurpose, email string) string {
	return string(purpose) + ":" + email
}
