package create_booking

import (
	"fmt"
	"time"

	"github.com/agroboost/AgroBoost-RentalService/internal/domain"
	"github.com/agroboost/AgroBoost-RentalService/pkg/types"
)

func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceId must be positive", ErrInvalidInput)
	}
	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}
	if domain.BookingType(req.Type) == domain.BookingTypeHourly {
		if req.Duration < domain.MinHourlyDuration || req.Duration > domain.MaxHourlyDuration {
			return fmt.Errorf("%w: %w: must be between %d and %d hours",
				ErrInvalidInput, ErrInvalidDuration, domain.MinHourlyDuration, domain.MaxHourlyDuration)
		}
	}
	return nil
}

// period is the date range and, for hourly rentals, the time window a request occupies
type period struct {
	start     types.Date
	end       types.Date
	startTime types.TimeString
	endTime   types.TimeString
}

// resolvePeriod applies the provider rules that depend on the current time and settings
func resolvePeriod(req domain.BookingRequest, settings *domain.ProviderSettings, now time.Time) (period, error) {
	today := types.DateOf(now)

	if req.Type == domain.BookingTypeDaily {
		p := period{start: req.StartDate, end: req.EndDate}
		if err := validateAdvance(p.end, today, settings); err != nil {
			return period{}, err
		}
		return p, nil
	}

	if !req.BookingDate.Valid() {
		return period{}, fmt.Errorf("%w: bookingDate must be YYYY-MM-DD", ErrInvalidInput)
	}
	if req.BookingDate.Before(today) {
		return period{}, fmt.Errorf("%w: %w", ErrInvalidInput, domain.ErrStartDateInPast)
	}
	if err := validateAdvance(req.BookingDate, today, settings); err != nil {
		return period{}, err
	}

	endTime, err := req.StartTime.AddMinutes(req.Duration * domain.HourlySlotMinutes)
	if err != nil {
		return period{}, fmt.Errorf("%w: rental ends after midnight", ErrOutsideOpeningHours)
	}
	if req.StartTime.IsBefore(settings.OpenTime) || endTime.IsAfter(settings.CloseTime) {
		return period{}, fmt.Errorf("%w: rentals run from %s to %s", ErrOutsideOpeningHours, settings.OpenTime, settings.CloseTime)
	}
	if err := validateNotice(req.BookingDate, req.StartTime, now, settings.MinBookingNoticeMinutes); err != nil {
		return period{}, err
	}

	return period{start: req.BookingDate, end: req.BookingDate, startTime: req.StartTime, endTime: endTime}, nil
}

func validateAdvance(last, today types.Date, settings *domain.ProviderSettings) error {
	latest := settings.LatestBookableDate(today)
	if !latest.IsZero() && last.After(latest) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, settings.AdvanceBookingDays)
	}
	return nil
}

// validateNotice only applies to rentals starting today
func validateNotice(date types.Date, start types.TimeString, now time.Time, noticeMinutes int) error {
	if date != types.DateOf(now) {
		return nil
	}
	minAllowed, err := types.NewTimeString(now).AddMinutes(noticeMinutes)
	if err != nil {
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, noticeMinutes)
	}
	if start.IsBefore(minAllowed) {
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, noticeMinutes)
	}
	return nil
}

// checkConflict re-evaluates availability on the locked rows
func checkConflict(occupancy domain.Occupancy, req domain.BookingRequest, p period) error {
	if req.Type == domain.BookingTypeHourly {
		if occupancy.FreeUnits(p.start, p.startTime, p.endTime) < 1 {
			return &ConflictError{Dates: []types.Date{p.start}}
		}
		return nil
	}
	if dates := occupancy.ConflictingDates(p.start, p.end); len(dates) > 0 {
		return &ConflictError{Dates: dates}
	}
	return nil
}
