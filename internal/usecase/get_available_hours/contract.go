package get_available_hours

import (
	"context"
	"time"

	"github.com/agroboost/AgroBoost-RentalService/internal/domain"
	"github.com/agroboost/AgroBoost-RentalService/pkg/types"
)

type BookingRepository interface {
	Find(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

type BlockRepository interface {
	Find(ctx context.Context, serviceID int64, from, to types.Date) ([]*domain.AvailabilityBlock, error)
}

type MaintenanceRepository interface {
	FindBlocking(ctx context.Context, serviceID int64, from, to types.Date) ([]*domain.Maintenance, error)
}

type SettingsResolver interface {
	Resolve(ctx context.Context, providerID int64, serviceID *int64) (*domain.ProviderSettings, error)
}

// TimeProvider returns the current time (tests pin it)
type TimeProvider interface {
	Now() time.Time
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type RealTimeProvider struct{}

func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
