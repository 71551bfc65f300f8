package domain

// Default provider settings, used when neither a service nor a provider-wide row exists
const (
	DefaultCapacity                = 1
	DefaultAdvanceBookingDays      = 0 // 0 = unlimited
	DefaultMinBookingNoticeMinutes = 0
	DefaultOpenTime                = "06:00"
	DefaultCloseTime               = "20:00"
)

// Business validation constants
const (
	MinCapacity                 = 1
	MaxCapacity                 = 100
	MinAdvanceBookingDays       = 0
	MaxAdvanceBookingDays       = 365
	MinBookingNoticeMinutes     = 0
	MaxBookingNoticeMinutes     = 10080 // 1 week
	MinHourlyDuration           = 1
	MaxHourlyDuration           = 24
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxServiceImages            = 5
	HourlySlotMinutes           = 60
	HoursPerWorkingDay          = 8
)

// Pagination defaults
const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Currency used for every amount on the platform
const DefaultCurrency = "XOF"

// InactiveStatuses bookings in these states no longer hold the equipment
var InactiveStatuses = []BookingStatus{
	StatusCancelledByUser,
	StatusCancelledByProvider,
	StatusRejected,
}

// ActiveStatuses bookings in these states occupy capacity
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
}

// AllBookingStatuses lists every booking status
var AllBookingStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
	StatusCancelledByUser,
	StatusCancelledByProvider,
	StatusRejected,
}
