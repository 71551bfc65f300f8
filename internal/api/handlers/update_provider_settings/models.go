package update_provider_settings

import (
	"github.com/agroboost/AgroBoost-RentalService/internal/domain"
	"github.com/agroboost/AgroBoost-RentalService/internal/service/settings/models"
)

// UpdateProviderSettingsRequest HTTP request model; serviceId scopes the settings to one service
type UpdateProviderSettingsRequest struct {
	ServiceID               *int64 `json:"serviceId,omitempty"`
	Capacity                int    `json:"capacity"`
	AdvanceBookingDays      int    `json:"advanceBookingDays"`
	MinBookingNoticeMinutes int    `json:"minBookingNoticeMinutes"`
	OpenTime                string `json:"openTime"`
	CloseTime               string `json:"closeTime"`
}

func (r *UpdateProviderSettingsRequest) ToServiceRequest(actor domain.Actor, providerID int64) *models.UpdateSettingsRequest {
	defaults := domain.DefaultSettings(providerID)
	req := &models.UpdateSettingsRequest{
		Actor:                   actor,
		ProviderID:              providerID,
		ServiceID:               r.ServiceID,
		Capacity:                r.Capacity,
		AdvanceBookingDays:      r.AdvanceBookingDays,
		MinBookingNoticeMinutes: r.MinBookingNoticeMinutes,
		OpenTime:                r.OpenTime,
		CloseTime:               r.CloseTime,
	}
	if req.OpenTime == "" {
		req.OpenTime = defaults.OpenTime.String()
	}
	if req.CloseTime == "" {
		req.CloseTime = defaults.CloseTime.String()
	}
	return req
}
