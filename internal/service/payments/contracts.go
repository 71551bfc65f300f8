package payments

import (
	"context"

	"github.com/agroboost/AgroBoost-RentalService/internal/domain"
	"github.com/agroboost/AgroBoost-RentalService/internal/integrations/paytech"
)

type PaymentRepository interface {
	GetByReference(ctx context.Context, reference string) (*domain.Payment, error)
	GetLatestByBooking(ctx context.Context, bookingID int64) (*domain.Payment, error)
	List(ctx context.Context, filter domain.PaymentFilter) ([]*domain.Payment, int, error)
	UpdateStatus(ctx context.Context, id int64, status domain.PaymentStatus) error
}

type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	UpdatePayment(ctx context.Context, id int64, paymentStatus domain.PaymentState, status *domain.BookingStatus) error
}

// IPNVerifier authenticates PayTech notifications
type IPNVerifier interface {
	VerifyIPN(ipn paytech.IPN) error
}

type Notifier interface {
	Notify(ctx context.Context, userID int64, kind domain.NotificationType, title, message string) error
}

type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
