package bookings

import (
	"context"

	"github.com/agroboost/AgroBoost-RentalService/internal/domain"
)

// BookingRepository is the storage used by the service
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, int, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	Cancel(ctx context.Context, id int64, status domain.BookingStatus, reason string) error
}

// Notifier informs users about changes to their bookings
type Notifier interface {
	Notify(ctx context.Context, userID int64, kind domain.NotificationType, title, message string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
