package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateBookingRequest(t *testing.T) {
	const today = "2024-03-10"

	tests := []struct {
		name string
		req  BookingRequest
		want error
	}{
		{"daily ok", dailyRequest("2024-03-10", "2024-03-12"), nil},
		{"daily single day", dailyRequest("2024-03-11", "2024-03-11"), nil},
		{"daily in past", dailyRequest("2024-03-09", "2024-03-12"), ErrStartDateInPast},
		{"daily inverted", dailyRequest("2024-03-12", "2024-03-11"), ErrEndBeforeStart},
		{"daily malformed", dailyRequest("12/03/2024", "2024-03-11"), ErrInvalidStartDate},
		{"hourly ok", BookingRequest{Type: BookingTypeHourly, BookingDate: "2024-03-11", StartTime: mustTime(t, "08:00"), Duration: 2}, nil},
		{"hourly missing date", BookingRequest{Type: BookingTypeHourly, StartTime: mustTime(t, "08:00")}, ErrMissingBookingDate},
		{"hourly missing time", BookingRequest{Type: BookingTypeHourly, BookingDate: "2024-03-11"}, ErrMissingStartTime},
		{"unknown type", BookingRequest{Type: "weekly"}, ErrInvalidBookingType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBookingRequest(tt.req, today)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSubmissionFlowHappyPath(t *testing.T) {
	flow := NewSubmissionFlow()
	assert.Equal(t, SubmissionIdle, flow.State())

	require.NoError(t, flow.Validate(dailyRequest("2024-03-10", "2024-03-11"), "2024-03-10"))
	assert.Equal(t, SubmissionValidating, flow.State())

	require.NoError(t, flow.Submit())
	assert.Equal(t, SubmissionSubmitting, flow.State())

	booking := &Booking{ID: 42}
	require.NoError(t, flow.Succeed(booking, RedirectOutcome("https://paytech.sn/payment/checkout/abc")))
	assert.Equal(t, SubmissionSuccess, flow.State())
	assert.Same(t, booking, flow.Booking())
	assert.Equal(t, OutcomeRedirect, flow.Outcome().Status)

	assert.ErrorIs(t, flow.Submit(), ErrIllegalTransition)
}

func TestSubmissionFlowValidationFailure(t *testing.T) {
	flow := NewSubmissionFlow()

	err := flow.Validate(dailyRequest("2024-03-01", "2024-03-02"), "2024-03-10")
	assert.ErrorIs(t, err, ErrStartDateInPast)
	assert.Equal(t, SubmissionFailure, flow.State())
	assert.ErrorIs(t, flow.Err(), ErrStartDateInPast)

	require.NoError(t, flow.Validate(dailyRequest("2024-03-10", "2024-03-11"), "2024-03-10"), "retry after failure")
	assert.NoError(t, flow.Err())
}

func TestSubmissionFlowIllegalTransitions(t *testing.T) {
	flow := NewSubmissionFlow()

	assert.ErrorIs(t, flow.Submit(), ErrIllegalTransition)
	assert.ErrorIs(t, flow.Succeed(nil, SimulatedOutcome()), ErrIllegalTransition)
	assert.ErrorIs(t, flow.Fail(errors.New("x")), ErrIllegalTransition)
	assert.Equal(t, SubmissionIdle, flow.State())
}
