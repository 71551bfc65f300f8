package domain

import (
	"time"

	"github.com/agroboost/AgroBoost-RentalService/pkg/types"
)

// BookingType tells how a rental is priced and scheduled
type BookingType string

const (
	BookingTypeDaily  BookingType = "daily"
	BookingTypeHourly BookingType = "hourly"
)

// Valid reports whether t is a known booking type
func (t BookingType) Valid() bool {
	return t == BookingTypeDaily || t == BookingTypeHourly
}

// BookingStatus represents the lifecycle state of a booking
type BookingStatus string

const (
	StatusPending             BookingStatus = "pending"
	StatusConfirmed           BookingStatus = "confirmed"
	StatusInProgress          BookingStatus = "in_progress"
	StatusCompleted           BookingStatus = "completed"
	StatusCancelledByUser     BookingStatus = "cancelled_by_user"
	StatusCancelledByProvider BookingStatus = "cancelled_by_provider"
	StatusRejected            BookingStatus = "rejected"
)

// ParseBookingStatus validates s against the known statuses
func ParseBookingStatus(s string) (BookingStatus, bool) {
	for _, status := range AllBookingStatuses {
		if string(status) == s {
			return status, true
		}
	}
	return "", false
}

// PaymentState is the settlement state tracked on a booking
type PaymentState string

const (
	PaymentStateUnpaid    PaymentState = "unpaid"
	PaymentStatePending   PaymentState = "pending"
	PaymentStatePaid      PaymentState = "paid"
	PaymentStateFailed    PaymentState = "failed"
	PaymentStateSimulated PaymentState = "simulated"
)

// IsSettled reports whether the booking counts as paid
func (s PaymentState) IsSettled() bool {
	return s == PaymentStatePaid || s == PaymentStateSimulated
}

// Booking is a rental of a service.
// Hourly bookings keep StartDate == EndDate == booking date.
type Booking struct {
	ID            int64
	UserID        int64
	ServiceID     int64
	ProviderID    int64
	Type          BookingType
	StartDate     types.Date
	EndDate       types.Date
	StartTime     types.TimeString // hourly only
	DurationHours int              // hourly only
	Price         PriceCalculation
	Status        BookingStatus
	PaymentStatus PaymentState

	// Denormalized for history
	ServiceName string
	Notes       *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true while the booking holds capacity
func (b *Booking) IsActive() bool {
	for _, s := range InactiveStatuses {
		if b.Status == s {
			return false
		}
	}
	return true
}

// CanBeCancelled returns true if the booking can still be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsCancelled returns true if the booking was cancelled by either side
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelledByUser || b.Status == StatusCancelledByProvider
}

// IsHourly returns true for hourly rentals
func (b *Booking) IsHourly() bool {
	return b.Type == BookingTypeHourly
}

// CoversDate reports whether the booking occupies date
func (b *Booking) CoversDate(date types.Date) bool {
	return date.Between(b.StartDate, b.EndDate)
}

// EndTime returns the end of an hourly booking
func (b *Booking) EndTime() (types.TimeString, error) {
	return b.StartTime.AddMinutes(b.DurationHours * 60)
}

// OverlapsHours reports a strict overlap between an hourly booking and [start, end).
// Touching intervals do not overlap.
func (b *Booking) OverlapsHours(start, end types.TimeString) bool {
	if !b.IsHourly() {
		return false
	}
	bookingEnd, err := b.EndTime()
	if err != nil {
		return false
	}
	return b.StartTime.IsBefore(end) && bookingEnd.IsAfter(start)
}

var statusTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:    {StatusConfirmed, StatusRejected, StatusCancelledByProvider},
	StatusConfirmed:  {StatusInProgress, StatusCompleted, StatusCancelledByProvider},
	StatusInProgress: {StatusCompleted},
}

// CanTransitionTo reports whether a provider or admin may move the booking to next
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range statusTransitions[b.Status] {
		if allowed == next {
			return true
		}
	}
	return false
}

// BookingsFilter selects bookings for list endpoints and conflict checks
type BookingsFilter struct {
	UserID     *int64
	ProviderID *int64
	ServiceID  *int64
	Status     *BookingStatus
	// From/To keep bookings whose date range intersects [From, To]
	From            *types.Date
	To              *types.Date
	IncludeInactive bool
	Page            Page
}
