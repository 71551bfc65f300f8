package initiate_payment

import (
	"context"

	"github.com/agroboost/AgroBoost-RentalService/internal/domain"
)

type InitiatePaymentUseCase interface {
	Execute(ctx context.Context, actor domain.Actor, bookingID int64) (domain.PaymentOutcome, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
