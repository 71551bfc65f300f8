package cancel_booking

import (
	"github.com/agroboost/AgroBoost-RentalService/internal/domain"
	"github.com/agroboost/AgroBoost-RentalService/internal/service/bookings/models"
)

// CancelBookingRequest HTTP request model; the body is optional
type CancelBookingRequest struct {
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

func (r *CancelBookingRequest) ToServiceRequest(actor domain.Actor) *models.CancelBookingRequest {
	reason := ""
	if r.CancellationReason != nil {
		reason = *r.CancellationReason
	}

	return &models.CancelBookingRequest{
		Actor:              actor,
		CancellationReason: reason,
	}
}
