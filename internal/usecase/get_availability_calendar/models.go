package get_availability_calendar

import (
	"github.com/agroboost/AgroBoost-RentalService/internal/domain"
	"github.com/agroboost/AgroBoost-RentalService/pkg/types"
)

// Request selects a month of a service; a zero Year/Month means the current month.
// SelectedStart/SelectedEnd echo the caller's pending selection into the grid;
// Clicked, when set, is applied to that selection first.
type Request struct {
	ServiceID     int64
	Year          int
	Month         int
	SelectedStart types.Date
	SelectedEnd   types.Date
	Clicked       types.Date
}

// SelectionView is the selection after the click, if any
type SelectionView struct {
	StartDate types.Date `json:"startDate,omitempty"`
	EndDate   types.Date `json:"endDate,omitempty"`
	IsFree    bool       `json:"isFree"`
}

// Reservation is the public view of a booking in the calendar
type Reservation struct {
	ID        int64      `json:"id"`
	Type      string     `json:"bookingType"`
	StartDate types.Date `json:"startDate"`
	EndDate   types.Date `json:"endDate"`
	StartTime *string    `json:"startTime,omitempty"`
	Duration  *int       `json:"durationHours,omitempty"`
	Status    string     `json:"status"`
}

type Response struct {
	ServiceID        int64                `json:"serviceId"`
	Year             int                  `json:"year"`
	Month            int                  `json:"month"`
	Capacity         int                  `json:"capacity"`
	UnavailableDates []types.Date         `json:"unavailableDates"`
	Reservations     []Reservation        `json:"reservations"`
	Days             []domain.CalendarDay `json:"days"`
	Selection        *SelectionView       `json:"selection,omitempty"`
}

func fromDomainBooking(b *domain.Booking) Reservation {
	r := Reservation{
		ID:        b.ID,
		Type:      string(b.Type),
		StartDate: b.StartDate,
		EndDate:   b.EndDate,
		Status:    string(b.Status),
	}
	if b.IsHourly() {
		start := b.StartTime.String()
		hours := b.DurationHours
		r.StartTime = &start
		r.Duration = &hours
	}
	return r
}
