package calculate_price

import (
	"github.com/agroboost/AgroBoost-RentalService/internal/domain"
	"github.com/agroboost/AgroBoost-RentalService/pkg/types"
)

// Request is a price quote for a service
type Request struct {
	ServiceID   int64            `json:"serviceId"`
	Type        string           `json:"bookingType"`
	StartDate   types.Date       `json:"startDate,omitempty"`
	EndDate     types.Date       `json:"endDate,omitempty"`
	BookingDate types.Date       `json:"bookingDate,omitempty"`
	StartTime   types.TimeString `json:"startTime"`
	Duration    int              `json:"duration,omitempty"`
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

type Response struct {
	ServiceID   int64  `json:"serviceId"`
	ServiceName string `json:"serviceName"`
	BookingType string `json:"bookingType"`
	Currency    string `json:"currency"`
	domain.PriceCalculation
}
