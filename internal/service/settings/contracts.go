package settings

import (
	"context"

	"github.com/agroboost/AgroBoost-RentalService/internal/domain"
)

type SettingsRepository interface {
	Resolve(ctx context.Context, providerID int64, serviceID *int64) (*domain.ProviderSettings, error)
	ListByProvider(ctx context.Context, providerID int64) ([]*domain.ProviderSettings, error)
	Upsert(ctx context.Context, s *domain.ProviderSettings) (*domain.ProviderSettings, error)
	Delete(ctx context.Context, providerID int64, serviceID *int64) error
}

type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
