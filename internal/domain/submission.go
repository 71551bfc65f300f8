package domain

import (
	"errors"
	"fmt"

	"github.com/agroboost/AgroBoost-RentalService/pkg/types"
)

// Booking request validation errors
var (
	ErrInvalidBookingType = errors.New("invalid booking type")
	ErrInvalidStartDate   = errors.New("invalid start date")
	ErrInvalidEndDate     = errors.New("invalid end date")
	ErrStartDateInPast    = errors.New("start date is in the past")
	ErrEndBeforeStart     = errors.New("end date is before start date")
	ErrMissingBookingDate = errors.New("booking date is required")
	ErrMissingStartTime   = errors.New("start time is required")
	ErrIllegalTransition  = errors.New("illegal submission transition")
)

// ValidateBookingRequest runs the checks done before a booking is submitted.
// Daily: start not in the past and end not before start. Hourly: date and start time present.
func ValidateBookingRequest(req BookingRequest, today types.Date) error {
	switch req.Type {
	case BookingTypeDaily:
		if !req.StartDate.Valid() {
			return ErrInvalidStartDate
		}
		if !req.EndDate.Valid() {
			return ErrInvalidEndDate
		}
		if req.StartDate < today {
			return ErrStartDateInPast
		}
		if req.EndDate < req.StartDate {
			return ErrEndBeforeStart
		}
	case BookingTypeHourly:
		if req.BookingDate.IsZero() {
			return ErrMissingBookingDate
		}
		if req.StartTime.IsZero() {
			return ErrMissingStartTime
		}
	default:
		return fmt.Errorf("%w: %q", ErrInvalidBookingType, req.Type)
	}
	return nil
}

// SubmissionState is a step of the booking submission flow
type SubmissionState string

const (
	SubmissionIdle       SubmissionState = "idle"
	SubmissionValidating SubmissionState = "validating"
	SubmissionSubmitting SubmissionState = "submitting"
	SubmissionSuccess    SubmissionState = "success"
	SubmissionFailure    SubmissionState = "failure"
)

var submissionTransitions = map[SubmissionState][]SubmissionState{
	SubmissionIdle:       {SubmissionValidating},
	SubmissionValidating: {SubmissionSubmitting, SubmissionFailure},
	SubmissionSubmitting: {SubmissionSuccess, SubmissionFailure},
	SubmissionFailure:    {SubmissionValidating},
}

// SubmissionFlow tracks idle -> validating -> submitting -> success|failure.
// A failed submission may be retried from validating.
type SubmissionFlow struct {
	state   SubmissionState
	err     error
	booking *Booking
	outcome PaymentOutcome
}

func NewSubmissionFlow() *SubmissionFlow {
	return &SubmissionFlow{state: SubmissionIdle}
}

func (f *SubmissionFlow) State() SubmissionState {
	return f.state
}

// Err returns the failure cause
func (f *SubmissionFlow) Err() error {
	return f.err
}

// Booking returns the booking created by a successful submission
func (f *SubmissionFlow) Booking() *Booking {
	return f.booking
}

// Outcome returns the payment outcome of a successful submission
func (f *SubmissionFlow) Outcome() PaymentOutcome {
	return f.outcome
}

// Validate moves to validating and runs ValidateBookingRequest; a failed check moves to failure
func (f *SubmissionFlow) Validate(req BookingRequest, today types.Date) error {
	if err := f.transition(SubmissionValidating); err != nil {
		return err
	}
	f.err = nil
	if err := ValidateBookingRequest(req, today); err != nil {
		_ = f.Fail(err)
		return err
	}
	return nil
}

// Submit moves from validating to submitting
func (f *SubmissionFlow) Submit() error {
	return f.transition(SubmissionSubmitting)
}

// Succeed records the created booking and its payment outcome
func (f *SubmissionFlow) Succeed(booking *Booking, outcome PaymentOutcome) error {
	if err := f.transition(SubmissionSuccess); err != nil {
		return err
	}
	f.booking = booking
	f.outcome = outcome
	return nil
}

// Fail records err and moves to failure
func (f *SubmissionFlow) Fail(err error) error {
	if tErr := f.transition(SubmissionFailure); tErr != nil {
		return tErr
	}
	f.err = err
	return nil
}

func (f *SubmissionFlow) transition(next SubmissionState) error {
	for _, allowed := range submissionTransitions[f.state] {
		if allowed == next {
			f.state = next
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, f.state, next)
}
