package create_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/agroboost/AgroBoost-RentalService/internal/api/middleware"
	"github.com/agroboost/AgroBoost-RentalService/internal/domain"
	"github.com/agroboost/AgroBoost-RentalService/internal/service/bookings/models"
	createBooking "github.com/agroboost/AgroBoost-RentalService/internal/usecase/create_booking"
	"github.com/agroboost/AgroBoost-RentalService/pkg/logger"
	"github.com/agroboost/AgroBoost-RentalService/pkg/types"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*createBooking.Response), args.Error(1)
}

func newRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	ctx := middleware.WithActor(req.Context(), domain.Actor{UserID: 42, Role: domain.RoleProducteur}, "tok")
	return req.WithContext(ctx)
}

const dailyBody = `{"serviceId":3,"bookingType":"daily","startDate":"2025-03-10","endDate":"2025-03-12"}`

func TestHandler_Created(t *testing.T) {
	uc := new(mockUseCase)
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *createBooking.Request) bool {
		return req.UserID == 42 && req.ServiceID == 3 && req.StartDate == "2025-03-10" && req.Type == "daily"
	})).Return(&createBooking.Response{
		Booking: &models.BookingResponse{ID: 9, Status: "confirmed", PaymentStatus: "simulated"},
		Payment: domain.SimulatedOutcome(),
	}, nil).Once()

	rec := httptest.NewRecorder()
	NewHandler(uc, logger.NewNop()).Handle(rec, newRequest(dailyBody))

	require.Equal(t, http.StatusCreated, rec.Code)

	var body struct {
		Data struct {
			Booking struct {
				ID int64 `json:"id"`
			} `json:"booking"`
			Payment struct {
				Status string `json:"status"`
			} `json:"payment"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(9), body.Data.Booking.ID)
	assert.Equal(t, "simulated", body.Data.Payment.Status)
	uc.AssertExpectations(t)
}

func TestHandler_HourlyBodyMapping(t *testing.T) {
	uc := new(mockUseCase)
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *createBooking.Request) bool {
		return req.UserID == 42 && req.Type == "hourly" && req.BookingDate == "2025-03-10" &&
			req.StartTime.String() == "09:00" && req.Duration == 3 && req.Notes != nil && *req.Notes == "gate B"
	})).Return(&createBooking.Response{
		Booking: &models.BookingResponse{ID: 10, Status: "pending", PaymentStatus: "pending"},
		Payment: domain.SimulatedOutcome(),
	}, nil).Once()

	body := `{"serviceId":3,"bookingType":"hourly","bookingDate":"2025-03-10","startTime":"09:00","duration":3,"notes":"gate B"}`
	rec := httptest.NewRecorder()
	NewHandler(uc, logger.NewNop()).Handle(rec, newRequest(body))

	require.Equal(t, http.StatusCreated, rec.Code)
	uc.AssertExpectations(t)
}

func TestHandler_ConflictListsDates(t *testing.T) {
	uc := new(mockUseCase)
	uc.On("Execute", mock.Anything, mock.Anything).
		Return(nil, &createBooking.ConflictError{Dates: []types.Date{"2025-03-11"}}).Once()

	rec := httptest.NewRecorder()
	NewHandler(uc, logger.NewNop()).Handle(rec, newRequest(dailyBody))

	require.Equal(t, http.StatusConflict, rec.Code)
	var body ConflictResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "CONFLICT", body.Code)
	assert.Equal(t, []string{"2025-03-11"}, body.UnavailableDates)
}

func TestHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"service not found", createBooking.ErrServiceNotFound, http.StatusNotFound, msgServiceNotFound},
		{"service disabled", createBooking.ErrServiceUnavailable, http.StatusBadRequest, msgServiceUnavailable},
		{"too far", createBooking.ErrDateTooFarInFuture, http.StatusBadRequest, msgDateTooFar},
		{"outside hours", createBooking.ErrOutsideOpeningHours, http.StatusBadRequest, msgOutsideHours},
		{"notice", createBooking.ErrTooLateToBook, http.StatusBadRequest, msgTooLateToBook},
		{"past start", fmt.Errorf("%w: %w", createBooking.ErrInvalidInput, domain.ErrStartDateInPast), http.StatusBadRequest, msgStartDateInPast},
		{"inverted range", fmt.Errorf("%w: %w", createBooking.ErrInvalidInput, domain.ErrEndBeforeStart), http.StatusBadRequest, msgEndBeforeStart},
		{"duration", fmt.Errorf("%w: %w", createBooking.ErrInvalidInput, createBooking.ErrInvalidDuration), http.StatusBadRequest, msgInvalidDuration},
		{"internal", fmt.Errorf("%w: db down", createBooking.ErrInternal), http.StatusInternalServerError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(mockUseCase)
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err).Once()

			rec := httptest.NewRecorder()
			NewHandler(uc, logger.NewNop()).Handle(rec, newRequest(dailyBody))

			assert.Equal(t, tt.status, rec.Code)
			if tt.message != "" {
				assert.Contains(t, rec.Body.String(), tt.message)
			}
		})
	}
}

func TestHandler_InvalidBody(t *testing.T) {
	uc := new(mockUseCase)

	for _, body := range []string{``, `{"serviceId":"x"}`, `{"startTime":"25h"}`, `{"unknown":1}`} {
		rec := httptest.NewRecorder()
		NewHandler(uc, logger.NewNop()).Handle(rec, newRequest(body))
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
	uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}
