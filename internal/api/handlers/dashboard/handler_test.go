package dashboard

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/agroboost/AgroBoost-RentalService/internal/api/middleware"
	"github.com/agroboost/AgroBoost-RentalService/internal/domain"
	"github.com/agroboost/AgroBoost-RentalService/internal/service/dashboard"
	"github.com/agroboost/AgroBoost-RentalService/pkg/logger"
	"github.com/agroboost/AgroBoost-RentalService/pkg/types"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Stats(ctx context.Context, actor domain.Actor) (*dashboard.StatsResponse, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dashboard.StatsResponse), args.Error(1)
}

func (m *mockService) BookingsReport(ctx context.Context, actor domain.Actor, from, to types.Date, w io.Writer) error {
	args := m.Called(ctx, actor, from, to)
	if args.Error(0) == nil {
		_, _ = w.Write([]byte("PK-xlsx"))
	}
	return args.Error(0)
}

var provider = domain.Actor{UserID: 5, Role: domain.RoleProvider}

func newReportRequest(query string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/reports/bookings?"+query, nil)
	return req.WithContext(middleware.WithActor(req.Context(), provider, "tok"))
}

func TestHandler_BookingsReport(t *testing.T) {
	svc := new(mockService)
	svc.On("BookingsReport", mock.Anything, provider, types.Date("2026-01-01"), types.Date("2026-01-31")).
		Return(nil).Once()

	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).BookingsReport(rec, newReportRequest("from=2026-01-01&to=2026-01-31"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "reservations_2026-01-01_2026-01-31.xlsx")
	assert.Equal(t, "PK-xlsx", rec.Body.String())
	svc.AssertExpectations(t)
}

func TestHandler_BookingsReportErrors(t *testing.T) {
	t.Run("missing period", func(t *testing.T) {
		rec := httptest.NewRecorder()
		NewHandler(new(mockService), logger.NewNop()).BookingsReport(rec, newReportRequest("from=2026-01-01"))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"access denied", dashboard.ErrAccessDenied, http.StatusForbidden},
		{"inverted period", fmt.Errorf("%w: from after to", dashboard.ErrInvalidInput), http.StatusBadRequest},
		{"internal", dashboard.ErrInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockService)
			svc.On("BookingsReport", mock.Anything, provider, mock.Anything, mock.Anything).Return(tt.err).Once()

			rec := httptest.NewRecorder()
			NewHandler(svc, logger.NewNop()).BookingsReport(rec, newReportRequest("from=2026-01-31&to=2026-01-01"))

			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
		})
	}
}

func TestHandler_StatsRequiresActor(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/stats", nil)

	NewHandler(new(mockService), logger.NewNop()).Stats(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
