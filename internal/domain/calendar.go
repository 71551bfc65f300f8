package domain

import (
	"time"

	"github.com/agroboost/AgroBoost-RentalService/pkg/types"
)

// DayState is the display state of a calendar day
type DayState string

const (
	DayStatePast        DayState = "past"
	DayStateUnavailable DayState = "unavailable"
	DayStateSelected    DayState = "selected"
	DayStateAvailable   DayState = "available"
)

// CalendarDay is one cell of the month grid
type CalendarDay struct {
	Date          types.Date `json:"date"`
	Day           int        `json:"day"`
	Weekday       int        `json:"weekday"`
	IsPast        bool       `json:"isPast"`
	IsUnavailable bool       `json:"isUnavailable"`
	IsSelected    bool       `json:"isSelected"`
	IsDisabled    bool       `json:"isDisabled"`
	State         DayState   `json:"state"`
}

// Selection is an inclusive range of selected dates; End may be empty
type Selection struct {
	Start types.Date
	End   types.Date
}

// Contains reports whether date is selected.
// Dates compare as ISO strings. Without an end only the start itself is selected.
func (s Selection) Contains(date types.Date) bool {
	if s.Start.IsZero() {
		return false
	}
	if s.End.IsZero() {
		return date == s.Start
	}
	return date >= s.Start && date <= s.End
}

// Calendar is the month view of a service's availability
type Calendar struct {
	Year        int
	Month       time.Month
	Today       types.Date
	Selection   Selection
	unavailable map[types.Date]struct{}
}

// NewCalendar builds a month view; today must already be in the platform timezone
func NewCalendar(year int, month time.Month, today types.Date, unavailable []types.Date, selection Selection) *Calendar {
	set := make(map[types.Date]struct{}, len(unavailable))
	for _, d := range unavailable {
		set[d] = struct{}{}
	}
	return &Calendar{
		Year:        year,
		Month:       month,
		Today:       today,
		Selection:   selection,
		unavailable: set,
	}
}

// IsUnavailable reports whether date is in the unavailable set
func (c *Calendar) IsUnavailable(date types.Date) bool {
	_, ok := c.unavailable[date]
	return ok
}

// Day evaluates a single date. Precedence: past > unavailable > selected > available.
func (c *Calendar) Day(date types.Date) CalendarDay {
	day := CalendarDay{
		Date:          date,
		Day:           date.Day(),
		Weekday:       int(date.Weekday()),
		IsPast:        date < c.Today,
		IsUnavailable: c.IsUnavailable(date),
		IsSelected:    c.Selection.Contains(date),
	}
	day.IsDisabled = day.IsPast || day.IsUnavailable

	switch {
	case day.IsPast:
		day.State = DayStatePast
	case day.IsUnavailable:
		day.State = DayStateUnavailable
	case day.IsSelected:
		day.State = DayStateSelected
	default:
		day.State = DayStateAvailable
	}
	return day
}

// Days returns the grid of the whole month
func (c *Calendar) Days() []CalendarDay {
	first, last := types.MonthRange(c.Year, c.Month)
	dates := types.DaysInRange(first, last)

	days := make([]CalendarDay, 0, len(dates))
	for _, d := range dates {
		days = append(days, c.Day(d))
	}
	return days
}

// Select applies a click on date and reports whether it changed the selection.
// Disabled dates are ignored. A click starts a new range unless a start is pending
// and date does not precede it, in which case it closes the range.
func (c *Calendar) Select(date types.Date) bool {
	if !date.Valid() || c.Day(date).IsDisabled {
		return false
	}

	switch {
	case c.Selection.Start.IsZero() || !c.Selection.End.IsZero():
		c.Selection = Selection{Start: date}
	case date < c.Selection.Start:
		c.Selection = Selection{Start: date}
	default:
		c.Selection.End = date
	}
	return true
}

// SelectionIsFree reports whether no day of the current selection is unavailable
func (c *Calendar) SelectionIsFree() bool {
	end := c.Selection.End
	if end.IsZero() {
		end = c.Selection.Start
	}
	for _, d := range types.DaysInRange(c.Selection.Start, end) {
		if c.IsUnavailable(d) {
			return false
		}
	}
	return true
}
