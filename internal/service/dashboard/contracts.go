package dashboard

import (
	"context"

	"github.com/agroboost/AgroBoost-RentalService/internal/domain"
)

type UserRepository interface {
	CountByRole(ctx context.Context) (map[domain.Role]int, error)
}

type ServiceRepository interface {
	Count(ctx context.Context, providerID *int64) (total int, available int, err error)
}

type BookingRepository interface {
	CountByStatus(ctx context.Context, providerID *int64) (map[domain.BookingStatus]int, error)
	Revenue(ctx context.Context, providerID *int64) (float64, error)
	Find(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

type MaintenanceRepository interface {
	CountByStatus(ctx context.Context, providerID *int64) (map[domain.MaintenanceStatus]int, error)
}

type NotificationRepository interface {
	CountUnread(ctx context.Context, userID *int64) (int, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
