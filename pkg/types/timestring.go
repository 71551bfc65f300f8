package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

const timeLayout = "15:04"

var (
	// ErrInvalidTimeString is returned when a value is not a valid HH:MM time
	ErrInvalidTimeString = errors.New("invalid time string format")

	// ErrTimeOverflow is returned when arithmetic leaves the 00:00-24:00 day
	ErrTimeOverflow = errors.New("time string overflows the day")
)

// TimeString is a wall-clock time of day in HH:MM format.
// 24:00 is accepted as the end of the day so that intervals ending at midnight can be expressed.
type TimeString struct {
	minutes int
	valid   bool
}

// NewTimeString builds a TimeString from the hour and minute of t
func NewTimeString(t time.Time) TimeString {
	return TimeString{minutes: t.Hour()*60 + t.Minute(), valid: true}
}

// NewTimeStringFromMinutes builds a TimeString from minutes since midnight
func NewTimeStringFromMinutes(minutes int) (TimeString, error) {
	if minutes < 0 || minutes > 24*60 {
		return TimeString{}, ErrTimeOverflow
	}
	return TimeString{minutes: minutes, valid: true}, nil
}

// NewTimeStringFromString parses "HH:MM"
func NewTimeStringFromString(s string) (TimeString, error) {
	if s == "24:00" {
		return TimeString{minutes: 24 * 60, valid: true}, nil
	}
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return TimeString{}, ErrInvalidTimeString
	}
	return NewTimeString(t), nil
}

// IsZero reports whether the value was never set
func (t TimeString) IsZero() bool {
	return !t.valid
}

// Validate checks that the value is within the day
func (t TimeString) Validate() error {
	if !t.valid {
		return ErrInvalidTimeString
	}
	if t.minutes < 0 || t.minutes > 24*60 {
		return ErrTimeOverflow
	}
	return nil
}

// Minutes returns minutes since midnight
func (t TimeString) Minutes() int {
	return t.minutes
}

// AddMinutes shifts the time, failing when the result leaves the day
func (t TimeString) AddMinutes(m int) (TimeString, error) {
	return NewTimeStringFromMinutes(t.minutes + m)
}

// IsBefore reports whether t is strictly earlier than other
func (t TimeString) IsBefore(other TimeString) bool {
	return t.minutes < other.minutes
}

// IsAfter reports whether t is strictly later than other
func (t TimeString) IsAfter(other TimeString) bool {
	return t.minutes > other.minutes
}

// Equal reports whether both values denote the same minute
func (t TimeString) Equal(other TimeString) bool {
	return t.minutes == other.minutes
}

func (t TimeString) String() string {
	if !t.valid {
		return ""
	}
	return fmt.Sprintf("%02d:%02d", t.minutes/60, t.minutes%60)
}

// MarshalJSON encodes the value as "HH:MM" or null
func (t TimeString) MarshalJSON() ([]byte, error) {
	if !t.valid {
		return []byte("null"), nil
	}
	return []byte(`"` + t.String() + `"`), nil
}

// UnmarshalJSON decodes "HH:MM"; null and "" leave the value unset
func (t *TimeString) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" || s == `""` {
		*t = TimeString{}
		return nil
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return ErrInvalidTimeString
	}
	parsed, err := NewTimeStringFromString(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Value implements driver.Valuer
func (t TimeString) Value() (driver.Value, error) {
	if !t.valid {
		return nil, nil
	}
	return t.String(), nil
}

// Scan implements sql.Scanner for TEXT and TIME columns
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = TimeString{}
		return nil
	case string:
		return t.scanString(v)
	case []byte:
		return t.scanString(string(v))
	case time.Time:
		*t = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidTimeString, src)
	}
}

func (t *TimeString) scanString(s string) error {
	// TIME columns come back as HH:MM:SS
	if len(s) > 5 {
		s = s[:5]
	}
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
