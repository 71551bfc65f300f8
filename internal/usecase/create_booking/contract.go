package create_booking

import (
	"context"
	"time"

	"github.com/agroboost/AgroBoost-RentalService/internal/domain"
	"github.com/agroboost/AgroBoost-RentalService/pkg/types"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	// Find locks the matching rows when called inside a transaction
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

// SettingsResolver returns the provider settings in force, falling back to defaults
type SettingsResolver interface {
	Resolve(ctx context.Context, providerID int64, serviceID *int64) (*domain.ProviderSettings, error)
}

// PaymentInitiator starts the payment of a freshly created booking
type PaymentInitiator interface {
	ForBooking(ctx context.Context, booking *domain.Booking) (domain.PaymentOutcome, error)
}

type Notifier interface {
	Notify(ctx context.Context, userID int64, kind domain.NotificationType, title, message string) error
}

type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

type Metrics interface {
	IncBookingCreated(bookingType string)
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
