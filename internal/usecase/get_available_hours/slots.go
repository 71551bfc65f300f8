package get_available_hours

import (
	"time"

	"github.com/agroboost/AgroBoost-RentalService/internal/domain"
	"github.com/agroboost/AgroBoost-RentalService/pkg/types"
)

// generateHours lists the start of every whole hour inside [open, close).
// For today, hours starting before now + notice are dropped.
func generateHours(settings *domain.ProviderSettings, date types.Date, now time.Time) ([]types.TimeString, error) {
	today := types.DateOf(now)
	if date.Before(today) {
		return []types.TimeString{}, nil
	}

	all := make([]types.TimeString, 0)
	current := settings.OpenTime
	for current.IsBefore(settings.CloseTime) {
		end, err := current.AddMinutes(domain.HourlySlotMinutes)
		if err != nil {
			return nil, err
		}
		if end.IsAfter(settings.CloseTime) {
			break
		}
		all = append(all, current)
		current = end
	}

	if date != today {
		return all, nil
	}

	minAllowed, err := types.NewTimeString(now).AddMinutes(settings.MinBookingNoticeMinutes)
	if err != nil {
		// notice reaches past midnight
		return []types.TimeString{}, nil
	}

	available := make([]types.TimeString, 0, len(all))
	for _, hour := range all {
		if !hour.IsBefore(minAllowed) {
			available = append(available, hour)
		}
	}
	return available, nil
}

// countFreeUnits evaluates each hour against the occupancy of the day
func countFreeUnits(hours []types.TimeString, date types.Date, occupancy domain.Occupancy, capacity int) []domain.HourSlot {
	result := make([]domain.HourSlot, 0, len(hours))
	for _, start := range hours {
		end, err := start.AddMinutes(domain.HourlySlotMinutes)
		if err != nil {
			continue
		}
		result = append(result, domain.HourSlot{
			StartTime:       start,
			DurationMinutes: domain.HourlySlotMinutes,
			AvailableUnits:  occupancy.FreeUnits(date, start, end),
			TotalUnits:      capacity,
		})
	}
	return result
}
