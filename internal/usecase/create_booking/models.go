package create_booking

import (
	"github.com/agroboost/AgroBoost-RentalService/internal/domain"
	"github.com/agroboost/AgroBoost-RentalService/internal/service/bookings/models"
	"github.com/agroboost/AgroBoost-RentalService/pkg/types"
)

// Request creates a booking. Daily requests use StartDate/EndDate,
// hourly ones BookingDate/StartTime/Duration.
type Request struct {
	UserID      int64
	ServiceID   int64
	Type        string
	StartDate   types.Date
	EndDate     types.Date
	BookingDate types.Date
	StartTime   types.TimeString
	Duration    int
	Notes       *string
}

// ToBookingRequest drops the fields that do not belong to the request's type
func (r *Request) ToBookingRequest() domain.BookingRequest {
	req := domain.BookingRequest{Type: domain.BookingType(r.Type)}
	if req.Type == domain.BookingTypeHourly {
		req.BookingDate = r.BookingDate
		req.StartTime = r.StartTime
		req.Duration = r.Duration
		return req
	}
	req.StartDate = r.StartDate
	req.EndDate = r.EndDate
	return req
}

// Response carries the created booking and the explicit payment outcome
type Response struct {
	Booking *models.BookingResponse `json:"booking"`
	Payment domain.PaymentOutcome   `json:"payment"`
}

// ConflictError lists the dates that made a daily request fail
type ConflictError struct {
	Dates []types.Date
}

func (e *ConflictError) Error() string {
	return ErrConflict.Error()
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}
