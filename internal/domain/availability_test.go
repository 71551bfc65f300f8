package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agroboost/AgroBoost-RentalService/pkg/types"
)

func hourly(t *testing.T, date, start string, hours int, status BookingStatus) *Booking {
	return &Booking{
		Type:          BookingTypeHourly,
		StartDate:     types.Date(date),
		EndDate:       types.Date(date),
		StartTime:     mustTime(t, start),
		DurationHours: hours,
		Status:        status,
	}
}

func daily(start, end string, status BookingStatus) *Booking {
	return &Booking{
		Type:      BookingTypeDaily,
		StartDate: types.Date(start),
		EndDate:   types.Date(end),
		Status:    status,
	}
}

func TestOccupancyUnavailableDates(t *testing.T) {
	occ := Occupancy{
		Capacity: 1,
		Blocks: []*AvailabilityBlock{
			{StartDate: "2024-03-01", EndDate: "2024-03-02"},
		},
		Maintenances: []*Maintenance{
			{StartDate: "2024-03-05", EndDate: "2024-03-05", Status: MaintenanceScheduled},
			{StartDate: "2024-03-06", EndDate: "2024-03-06", Status: MaintenanceCompleted},
		},
		Bookings: []*Booking{
			daily("2024-03-10", "2024-03-11", StatusConfirmed),
			daily("2024-03-20", "2024-03-21", StatusCancelledByUser),
		},
	}

	got := occ.UnavailableDates("2024-03-01", "2024-03-31")

	assert.Equal(t, []types.Date{"2024-03-01", "2024-03-02", "2024-03-05", "2024-03-10", "2024-03-11"}, got)
}

func TestOccupancyCapacity(t *testing.T) {
	occ := Occupancy{
		Capacity: 2,
		Bookings: []*Booking{
			daily("2024-03-10", "2024-03-12", StatusPending),
			hourly(t, "2024-03-11", "08:00", 2, StatusConfirmed),
		},
	}

	assert.False(t, occ.IsUnavailable("2024-03-10"))
	assert.True(t, occ.IsUnavailable("2024-03-11"))
	assert.False(t, occ.IsUnavailable("2024-03-12"))
	assert.Equal(t, []types.Date{"2024-03-11"}, occ.ConflictingDates("2024-03-09", "2024-03-13"))
}

func TestOccupancyFreeUnits(t *testing.T) {
	occ := Occupancy{
		Capacity: 2,
		Bookings: []*Booking{
			hourly(t, "2024-03-11", "08:00", 2, StatusConfirmed),
			hourly(t, "2024-03-11", "09:00", 1, StatusRejected),
		},
	}

	assert.Equal(t, 1, occ.FreeUnits("2024-03-11", mustTime(t, "09:00"), mustTime(t, "10:00")))
	assert.Equal(t, 2, occ.FreeUnits("2024-03-11", mustTime(t, "10:00"), mustTime(t, "11:00")), "touching intervals do not overlap")
	assert.Equal(t, 2, occ.FreeUnits("2024-03-11", mustTime(t, "07:00"), mustTime(t, "08:00")))

	occ.Bookings = append(occ.Bookings, daily("2024-03-11", "2024-03-11", StatusConfirmed))
	assert.Equal(t, 0, occ.FreeUnits("2024-03-11", mustTime(t, "09:00"), mustTime(t, "10:00")))

	occ.Blocks = []*AvailabilityBlock{{StartDate: "2024-03-12", EndDate: "2024-03-12"}}
	assert.Equal(t, 0, occ.FreeUnits("2024-03-12", mustTime(t, "09:00"), mustTime(t, "10:00")))
}

func TestOccupancyFreeUnitsUsesPeakLoad(t *testing.T) {
	occ := Occupancy{
		Capacity: 2,
		Bookings: []*Booking{
			hourly(t, "2024-03-11", "08:00", 1, StatusConfirmed),
			hourly(t, "2024-03-11", "10:00", 1, StatusConfirmed),
		},
	}

	// never more than one unit in use between 08:00 and 11:00
	assert.Equal(t, 1, occ.FreeUnits("2024-03-11", mustTime(t, "08:00"), mustTime(t, "11:00")))
	assert.Equal(t, 2, occ.FreeUnits("2024-03-11", mustTime(t, "09:00"), mustTime(t, "10:00")))

	occ.Bookings = append(occ.Bookings, hourly(t, "2024-03-11", "10:30", 2, StatusPending))
	assert.Equal(t, 0, occ.FreeUnits("2024-03-11", mustTime(t, "08:00"), mustTime(t, "11:00")))
	assert.Equal(t, 1, occ.FreeUnits("2024-03-11", mustTime(t, "08:00"), mustTime(t, "10:30")))
}

func TestOccupancyBookingsInRange(t *testing.T) {
	occ := Occupancy{
		Bookings: []*Booking{
			daily("2024-03-25", "2024-04-02", StatusConfirmed),
			daily("2024-02-27", "2024-03-01", StatusPending),
			daily("2024-02-01", "2024-02-05", StatusConfirmed),
			daily("2024-03-10", "2024-03-10", StatusCancelledByProvider),
		},
	}

	got := occ.BookingsInRange("2024-03-01", "2024-03-31")

	if assert.Len(t, got, 2) {
		assert.Equal(t, types.Date("2024-02-27"), got[0].StartDate)
		assert.Equal(t, types.Date("2024-03-25"), got[1].StartDate)
	}
}

func TestBookingCanTransitionTo(t *testing.T) {
	b := &Booking{Status: StatusPending}
	assert.True(t, b.CanTransitionTo(StatusConfirmed))
	assert.True(t, b.CanTransitionTo(StatusRejected))
	assert.False(t, b.CanTransitionTo(StatusCompleted))

	b.Status = StatusCompleted
	assert.False(t, b.CanTransitionTo(StatusConfirmed))
}
