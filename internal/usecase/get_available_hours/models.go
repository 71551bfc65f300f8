package get_available_hours

import (
	"github.com/agroboost/AgroBoost-RentalService/internal/domain"
	"github.com/agroboost/AgroBoost-RentalService/pkg/types"
)

type Request struct {
	ServiceID int64
	Date      types.Date
}

// Slot is one bookable hour with its remaining units
type Slot struct {
	StartTime       types.TimeString `json:"startTime"`
	EndTime         types.TimeString `json:"endTime"`
	DurationMinutes int              `json:"durationMinutes"`
	AvailableUnits  int              `json:"availableUnits"`
	TotalUnits      int              `json:"totalUnits"`
}

type Response struct {
	ServiceID int64            `json:"serviceId"`
	Date      types.Date       `json:"date"`
	OpenTime  types.TimeString `json:"openTime"`
	CloseTime types.TimeString `json:"closeTime"`
	Slots     []Slot           `json:"slots"`
}

func fromDomainSlot(s domain.HourSlot) Slot {
	end, _ := s.StartTime.AddMinutes(s.DurationMinutes)
	return Slot{
		StartTime:       s.StartTime,
		EndTime:         end,
		DurationMinutes: s.DurationMinutes,
		AvailableUnits:  s.AvailableUnits,
		TotalUnits:      s.TotalUnits,
	}
}
