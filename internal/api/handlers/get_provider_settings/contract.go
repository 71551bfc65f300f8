package get_provider_settings

import (
	"context"

	"github.com/agroboost/AgroBoost-RentalService/internal/service/settings/models"
)

type SettingsService interface {
	GetProviderSettings(ctx context.Context, providerID int64) (*models.ProviderSettingsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
