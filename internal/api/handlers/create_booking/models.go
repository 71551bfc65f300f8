package create_booking

import (
	createBooking "github.com/agroboost/AgroBoost-RentalService/internal/usecase/create_booking"
	"github.com/agroboost/AgroBoost-RentalService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ServiceID   int64            `json:"serviceId"`
	BookingType string           `json:"bookingType"`
	StartDate   string           `json:"startDate,omitempty"`
	EndDate     string           `json:"endDate,omitempty"`
	BookingDate string           `json:"bookingDate,omitempty"`
	StartTime   types.TimeString `json:"startTime"`
	Duration    int              `json:"duration,omitempty"`
	Notes       *string          `json:"notes,omitempty"`
}

// ConflictResponse lists the dates that are no longer free
type ConflictResponse struct {
	Code             string   `json:"code"`
	Message          string   `json:"message"`
	UnavailableDates []string `json:"unavailableDates"`
}

// ToUseCaseRequest binds the request to the authenticated caller
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) *createBooking.Request {
	return &createBooking.Request{
		UserID:      userID,
		ServiceID:   r.ServiceID,
		Type:        r.BookingType,
		StartDate:   types.Date(r.StartDate),
		EndDate:     types.Date(r.EndDate),
		BookingDate: types.Date(r.BookingDate),
		StartTime:   r.StartTime,
		Duration:    r.Duration,
		Notes:       r.Notes,
	}
}

func dateStrings(dates []types.Date) []string {
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, d.String())
	}
	return out
}
