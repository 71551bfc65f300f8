package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/agroboost/AgroBoost-RentalService/pkg/types"
)

// ErrInvalidSettings is returned when provider settings are out of bounds
var ErrInvalidSettings = errors.New("invalid provider settings")

// ProviderSettings are the rental rules of a provider.
// Resolution order:
// 1. Service-specific (provider_id, service_id)
// 2. Provider-wide (provider_id, NULL)
// 3. Defaults
type ProviderSettings struct {
	ID                      int64
	ProviderID              int64
	ServiceID               *int64 // NULL = all services of the provider
	Capacity                int
	AdvanceBookingDays      int // 0 = unlimited
	MinBookingNoticeMinutes int
	OpenTime                types.TimeString
	CloseTime               types.TimeString
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// DefaultSettings returns the settings used when nothing is stored
func DefaultSettings(providerID int64) *ProviderSettings {
	open, _ := types.NewTimeStringFromString(DefaultOpenTime)
	closing, _ := types.NewTimeStringFromString(DefaultCloseTime)
	return &ProviderSettings{
		ProviderID:              providerID,
		Capacity:                DefaultCapacity,
		AdvanceBookingDays:      DefaultAdvanceBookingDays,
		MinBookingNoticeMinutes: DefaultMinBookingNoticeMinutes,
		OpenTime:                open,
		CloseTime:               closing,
	}
}

// IsProviderWide returns true if the settings apply to every service of the provider
func (s *ProviderSettings) IsProviderWide() bool {
	return s.ServiceID == nil
}

// IsServiceSpecific returns true if the settings target one service
func (s *ProviderSettings) IsServiceSpecific() bool {
	return s.ServiceID != nil
}

// HasAdvanceBookingLimit returns true if there's a limit on how far ahead bookings can be made
func (s *ProviderSettings) HasAdvanceBookingLimit() bool {
	return s.AdvanceBookingDays > 0
}

// SupportsParallelRentals returns true if more than one unit can be rented at once
func (s *ProviderSettings) SupportsParallelRentals() bool {
	return s.Capacity > 1
}

// LatestBookableDate returns the last date open for booking, or "" when unlimited
func (s *ProviderSettings) LatestBookableDate(today types.Date) types.Date {
	if !s.HasAdvanceBookingLimit() {
		return ""
	}
	return today.AddDays(s.AdvanceBookingDays)
}

// Validate checks bounds and the hourly window
func (s *ProviderSettings) Validate() error {
	if s.Capacity < MinCapacity || s.Capacity > MaxCapacity {
		return fmt.Errorf("%w: capacity must be between %d and %d", ErrInvalidSettings, MinCapacity, MaxCapacity)
	}
	if s.AdvanceBookingDays < MinAdvanceBookingDays || s.AdvanceBookingDays > MaxAdvanceBookingDays {
		return fmt.Errorf("%w: advanceBookingDays must be between %d and %d", ErrInvalidSettings, MinAdvanceBookingDays, MaxAdvanceBookingDays)
	}
	if s.MinBookingNoticeMinutes < MinBookingNoticeMinutes || s.MinBookingNoticeMinutes > MaxBookingNoticeMinutes {
		return fmt.Errorf("%w: minBookingNoticeMinutes must be between %d and %d", ErrInvalidSettings, MinBookingNoticeMinutes, MaxBookingNoticeMinutes)
	}
	if err := s.OpenTime.Validate(); err != nil {
		return fmt.Errorf("%w: openTime: %v", ErrInvalidSettings, err)
	}
	if err := s.CloseTime.Validate(); err != nil {
		return fmt.Errorf("%w: closeTime: %v", ErrInvalidSettings, err)
	}
	if !s.OpenTime.IsBefore(s.CloseTime) {
		return fmt.Errorf("%w: openTime must be before closeTime", ErrInvalidSettings)
	}
	return nil
}
