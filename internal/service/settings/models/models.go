package models

import (
	"github.com/agroboost/AgroBoost-RentalService/internal/domain"
	"github.com/agroboost/AgroBoost-RentalService/pkg/types"
)

// UpdateSettingsRequest replaces the settings stored at (ProviderID, ServiceID)
type UpdateSettingsRequest struct {
	Actor                   domain.Actor
	ProviderID              int64
	ServiceID               *int64
	Capacity                int
	AdvanceBookingDays      int
	MinBookingNoticeMinutes int
	OpenTime                string
	CloseTime               string
}

// ToDomainSettings parses the request; time errors surface through Validate
func (r *UpdateSettingsRequest) ToDomainSettings() (*domain.ProviderSettings, error) {
	open, err := types.NewTimeStringFromString(r.OpenTime)
	if err != nil {
		return nil, err
	}
	closing, err := types.NewTimeStringFromString(r.CloseTime)
	if err != nil {
		return nil, err
	}
	return &domain.ProviderSettings{
		ProviderID:              r.ProviderID,
		ServiceID:               r.ServiceID,
		Capacity:                r.Capacity,
		AdvanceBookingDays:      r.AdvanceBookingDays,
		MinBookingNoticeMinutes: r.MinBookingNoticeMinutes,
		OpenTime:                open,
		CloseTime:               closing,
	}, nil
}

type SettingsResponse struct {
	ID                      *int64 `json:"id,omitempty"`
	ProviderID              int64  `json:"providerId"`
	ServiceID               *int64 `json:"serviceId,omitempty"`
	Capacity                int    `json:"capacity"`
	AdvanceBookingDays      int    `json:"advanceBookingDays"`
	MinBookingNoticeMinutes int    `json:"minBookingNoticeMinutes"`
	OpenTime                string `json:"openTime"`
	CloseTime               string `json:"closeTime"`
	// IsDefault is true when nothing is stored and the platform defaults apply
	IsDefault bool `json:"isDefault"`
}

// ProviderSettingsResponse is the provider-wide row plus the per-service overrides
type ProviderSettingsResponse struct {
	ProviderWide SettingsResponse   `json:"providerWide"`
	Services     []SettingsResponse `json:"services"`
}

func FromDomainSettings(s *domain.ProviderSettings) SettingsResponse {
	resp := SettingsResponse{
		ProviderID:              s.ProviderID,
		ServiceID:               s.ServiceID,
		Capacity:                s.Capacity,
		AdvanceBookingDays:      s.AdvanceBookingDays,
		MinBookingNoticeMinutes: s.MinBookingNoticeMinutes,
		OpenTime:                s.OpenTime.String(),
		CloseTime:               s.CloseTime.String(),
		IsDefault:               s.ID == 0,
	}
	if s.ID != 0 {
		id := s.ID
		resp.ID = &id
	}
	return resp
}
