package payments

import (
	"context"
	"net/url"

	"github.com/agroboost/AgroBoost-RentalService/internal/domain"
	"github.com/agroboost/AgroBoost-RentalService/internal/service/payments/models"
)

type PaymentService interface {
	HandleIPN(ctx context.Context, form url.Values) error
	GetBookingStatus(ctx context.Context, actor domain.Actor, bookingID int64) (*models.BookingPaymentStatusResponse, error)
	List(ctx context.Context, actor domain.Actor, req *models.ListPaymentsRequest) (*models.PaymentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
