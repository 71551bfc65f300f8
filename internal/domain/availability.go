package domain

import (
	"sort"
	"time"

	"github.com/agroboost/AgroBoost-RentalService/pkg/types"
)

// AvailabilityBlock withdraws a service from rental for a date range
type AvailabilityBlock struct {
	ID         int64
	ServiceID  int64
	ProviderID int64
	StartDate  types.Date
	EndDate    types.Date
	Reason     string
	CreatedAt  time.Time
}

// CoversDate reports whether the block includes date
func (b *AvailabilityBlock) CoversDate(date types.Date) bool {
	return date.Between(b.StartDate, b.EndDate)
}

// Occupancy gathers everything that can make a service unavailable
type Occupancy struct {
	Capacity     int
	Blocks       []*AvailabilityBlock
	Maintenances []*Maintenance
	Bookings     []*Booking
}

// IsWithdrawn reports whether a block or an ongoing maintenance covers date
func (o Occupancy) IsWithdrawn(date types.Date) bool {
	for _, b := range o.Blocks {
		if b.CoversDate(date) {
			return true
		}
	}
	for _, m := range o.Maintenances {
		if m.IsBlocking() && m.CoversDate(date) {
			return true
		}
	}
	return false
}

// DailyLoad counts active daily bookings covering date
func (o Occupancy) DailyLoad(date types.Date) int {
	count := 0
	for _, b := range o.Bookings {
		if b.IsActive() && !b.IsHourly() && b.CoversDate(date) {
			count++
		}
	}
	return count
}

// HourlyLoad counts active hourly bookings on date
func (o Occupancy) HourlyLoad(date types.Date) int {
	count := 0
	for _, b := range o.Bookings {
		if b.IsActive() && b.IsHourly() && b.StartDate == date {
			count++
		}
	}
	return count
}

// IsUnavailable reports whether date cannot take a daily rental
func (o Occupancy) IsUnavailable(date types.Date) bool {
	if o.IsWithdrawn(date) {
		return true
	}
	return o.DailyLoad(date)+o.HourlyLoad(date) >= o.capacity()
}

// UnavailableDates lists the unavailable dates of [from, to] in order
func (o Occupancy) UnavailableDates(from, to types.Date) []types.Date {
	dates := make([]types.Date, 0)
	for _, d := range types.DaysInRange(from, to) {
		if o.IsUnavailable(d) {
			dates = append(dates, d)
		}
	}
	return dates
}

// ConflictingDates returns the dates of [start, end] already unavailable
func (o Occupancy) ConflictingDates(start, end types.Date) []types.Date {
	return o.UnavailableDates(start, end)
}

// FreeUnits returns how many units stay free for the whole of [start, end) on date.
// Hourly bookings count only while they run, so the result is capacity minus the
// peak number of units in use at any moment of the window.
func (o Occupancy) FreeUnits(date types.Date, start, end types.TimeString) int {
	if o.IsWithdrawn(date) {
		return 0
	}

	overlapping := make([]*Booking, 0)
	for _, b := range o.Bookings {
		if b.IsActive() && b.StartDate == date && b.OverlapsHours(start, end) {
			overlapping = append(overlapping, b)
		}
	}

	// the peak is reached at the window start or at a booking start inside it
	points := []types.TimeString{start}
	for _, b := range overlapping {
		if b.StartTime.IsAfter(start) {
			points = append(points, b.StartTime)
		}
	}

	peak := 0
	for _, p := range points {
		running := 0
		for _, b := range overlapping {
			bookingEnd, err := b.EndTime()
			if err != nil {
				continue
			}
			if !b.StartTime.IsAfter(p) && bookingEnd.IsAfter(p) {
				running++
			}
		}
		if running > peak {
			peak = running
		}
	}

	free := o.capacity() - o.DailyLoad(date) - peak
	if free < 0 {
		return 0
	}
	return free
}

// BookingsInRange returns the bookings intersecting [from, to], earliest first
func (o Occupancy) BookingsInRange(from, to types.Date) []*Booking {
	result := make([]*Booking, 0)
	for _, b := range o.Bookings {
		if b.IsActive() && types.RangesOverlap(b.StartDate, b.EndDate, from, to) {
			result = append(result, b)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].StartDate < result[j].StartDate
	})
	return result
}

func (o Occupancy) capacity() int {
	if o.Capacity < MinCapacity {
		return MinCapacity
	}
	return o.Capacity
}
