package initiate_payment

import (
	"context"

	"github.com/agroboost/AgroBoost-RentalService/internal/domain"
	"github.com/agroboost/AgroBoost-RentalService/internal/integrations/paytech"
)

type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	UpdatePayment(ctx context.Context, id int64, paymentStatus domain.PaymentState, status *domain.BookingStatus) error
}

type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error)
	SetCheckout(ctx context.Context, id int64, token, paymentURL string) error
	UpdateStatus(ctx context.Context, id int64, status domain.PaymentStatus) error
}

// Gateway opens a hosted checkout page
type Gateway interface {
	RequestPayment(ctx context.Context, p paytech.PaymentRequest) (*paytech.PaymentResponse, error)
}

type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type Metrics interface {
	IncPaymentOutcome(status string)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
