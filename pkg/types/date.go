package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"math"
	"time"
)

// DateLayout is the fixed-width ISO calendar date format
const DateLayout = "2006-01-02"

const millisPerDay = 86400000

// ErrInvalidDate is returned when a value is not a YYYY-MM-DD date
var ErrInvalidDate = errors.New("invalid date format, expected YYYY-MM-DD")

// Date is an ISO calendar date (YYYY-MM-DD).
//
// The format is fixed-width, so lexicographic comparison of two valid Dates
// matches chronological order. Range checks rely on that and compare strings.
type Date string

// ParseDate validates s and returns it as a Date
func ParseDate(s string) (Date, error) {
	if len(s) != len(DateLayout) {
		return "", ErrInvalidDate
	}
	if _, err := time.Parse(DateLayout, s); err != nil {
		return "", ErrInvalidDate
	}
	return Date(s), nil
}

// DateOf returns the calendar date of t in t's location
func DateOf(t time.Time) Date {
	return Date(t.Format(DateLayout))
}

// Today returns the current calendar date in loc (midnight-normalised)
func Today(now time.Time, loc *time.Location) Date {
	if loc == nil {
		loc = time.UTC
	}
	return DateOf(now.In(loc))
}

// NewDate builds a Date from its parts, normalising overflow like time.Date
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// IsZero reports whether the date is empty
func (d Date) IsZero() bool {
	return d == ""
}

// Valid reports whether the date parses
func (d Date) Valid() bool {
	_, err := ParseDate(string(d))
	return err == nil
}

// Time returns midnight UTC of the date; an invalid date yields the zero time
func (d Date) Time() time.Time {
	t, err := time.Parse(DateLayout, string(d))
	if err != nil {
		return time.Time{}
	}
	return t
}

// AddDays shifts the date by n calendar days
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

// Before reports whether d < other
func (d Date) Before(other Date) bool {
	return d < other
}

// After reports whether d > other
func (d Date) After(other Date) bool {
	return d > other
}

// Between reports whether start <= d <= end
func (d Date) Between(start, end Date) bool {
	return d >= start && d <= end
}

// Year returns the year component
func (d Date) Year() int {
	return d.Time().Year()
}

// Month returns the month component
func (d Date) Month() time.Month {
	return d.Time().Month()
}

// Day returns the day-of-month component
func (d Date) Day() int {
	return d.Time().Day()
}

// Weekday returns the day of the week
func (d Date) Weekday() time.Weekday {
	return d.Time().Weekday()
}

func (d Date) String() string {
	return string(d)
}

// InclusiveDayCount returns ceil((end-start)/1 day) + 1 computed on UTC midnights.
// Both boundary dates count. An unparsable boundary yields 0, an inverted range yields <= 0.
func InclusiveDayCount(start, end Date) int {
	if !start.Valid() || !end.Valid() {
		return 0
	}
	diffMillis := end.Time().Sub(start.Time()).Milliseconds()
	return int(math.Ceil(float64(diffMillis)/millisPerDay)) + 1
}

// DaysInRange lists every date of [start, end]. An inverted range yields nil.
func DaysInRange(start, end Date) []Date {
	if !start.Valid() || !end.Valid() || end.Before(start) {
		return nil
	}
	days := make([]Date, 0, InclusiveDayCount(start, end))
	for d := start; !d.After(end); d = d.AddDays(1) {
		days = append(days, d)
	}
	return days
}

// MonthRange returns the first and last date of a month
func MonthRange(year int, month time.Month) (Date, Date) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return DateOf(first), DateOf(last)
}

// RangesOverlap reports whether [aStart, aEnd] and [bStart, bEnd] share at least one day
func RangesOverlap(aStart, aEnd, bStart, bEnd Date) bool {
	return aStart <= bEnd && bStart <= aEnd
}

// Value implements driver.Valuer
func (d Date) Value() (driver.Value, error) {
	if d == "" {
		return nil, nil
	}
	return string(d), nil
}

// Scan implements sql.Scanner for DATE columns
func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*d = ""
		return nil
	case time.Time:
		*d = Date(v.Format(DateLayout))
		return nil
	case string:
		return d.scanString(v)
	case []byte:
		return d.scanString(string(v))
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidDate, src)
	}
}

func (d *Date) scanString(s string) error {
	if len(s) > len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
