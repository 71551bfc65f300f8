package domain

import "github.com/agroboost/AgroBoost-RentalService/pkg/types"

// HourSlot is a one-hour window of an hourly rental day
type HourSlot struct {
	StartTime       types.TimeString
	DurationMinutes int
	AvailableUnits  int
	TotalUnits      int
}

// IsFull returns true if no unit is left
func (s *HourSlot) IsFull() bool {
	return s.AvailableUnits <= 0
}

// IsPartiallyAvailable returns true if some but not all units are free
func (s *HourSlot) IsPartiallyAvailable() bool {
	return s.AvailableUnits > 0 && s.AvailableUnits < s.TotalUnits
}

// OccupancyRate returns the occupancy rate as a percentage (0-100)
func (s *HourSlot) OccupancyRate() float64 {
	if s.TotalUnits == 0 {
		return 0
	}
	occupied := s.TotalUnits - s.AvailableUnits
	return float64(occupied) / float64(s.TotalUnits) * 100
}
