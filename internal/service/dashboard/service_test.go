package dashboard

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/agroboost/AgroBoost-RentalService/internal/domain"
	"github.com/agroboost/AgroBoost-RentalService/pkg/logger"
	"github.com/agroboost/AgroBoost-RentalService/pkg/types"
)

type mockRepos struct {
	mock.Mock
}

func (m *mockRepos) CountByRole(ctx context.Context) (map[domain.Role]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.Role]int), args.Error(1)
}

func (m *mockRepos) Count(ctx context.Context, providerID *int64) (int, int, error) {
	args := m.Called(ctx, providerID)
	return args.Int(0), args.Int(1), args.Error(2)
}

func (m *mockRepos) Revenue(ctx context.Context, providerID *int64) (float64, error) {
	args := m.Called(ctx, providerID)
	return args.Get(0).(float64), args.Error(1)
}

func (m *mockRepos) Find(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Booking), args.Error(1)
}

func (m *mockRepos) CountUnread(ctx context.Context, userID *int64) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

// bookingCounter and maintenanceCounter split CountByStatus, which both repositories declare
type bookingCounter struct {
	*mockRepos
	byStatus map[domain.BookingStatus]int
}

func (b bookingCounter) CountByStatus(ctx context.Context, providerID *int64) (map[domain.BookingStatus]int, error) {
	return b.byStatus, nil
}

type maintenanceCounter struct {
	byStatus map[domain.MaintenanceStatus]int
}

func (m maintenanceCounter) CountByStatus(ctx context.Context, providerID *int64) (map[domain.MaintenanceStatus]int, error) {
	return m.byStatus, nil
}

var (
	admin    = domain.Actor{UserID: 1, Role: domain.RoleAdmin}
	provider = domain.Actor{UserID: 20, Role: domain.RoleProvider}
	farmer   = domain.Actor{UserID: 30, Role: domain.RoleProducteur}
)

func newTestService(repos *mockRepos) *Service {
	bookings := bookingCounter{mockRepos: repos, byStatus: map[domain.BookingStatus]int{
		domain.StatusPending:   2,
		domain.StatusConfirmed: 3,
	}}
	maint := maintenanceCounter{byStatus: map[domain.MaintenanceStatus]int{domain.MaintenanceScheduled: 1}}
	return NewService(repos, repos, bookings, maint, repos, logger.NewNop())
}

func TestService_Stats(t *testing.T) {
	ctx := context.Background()

	t.Run("admin sees the platform", func(t *testing.T) {
		repos := new(mockRepos)
		repos.On("CountByRole", ctx).Return(map[domain.Role]int{domain.RoleProducteur: 12, domain.RoleProvider: 4}, nil).Once()
		repos.On("Count", ctx, (*int64)(nil)).Return(10, 8, nil).Once()
		repos.On("Revenue", ctx, (*int64)(nil)).Return(450000.0, nil).Once()
		repos.On("CountUnread", ctx, &admin.UserID).Return(2, nil).Once()

		resp, err := newTestService(repos).Stats(ctx, admin)
		require.NoError(t, err)
		assert.Equal(t, "platform", resp.Scope)
		assert.Equal(t, 12, resp.UsersByRole["producteur"])
		assert.Equal(t, 5, resp.BookingsTotal)
		assert.Equal(t, 0, resp.BookingsByStatus["rejected"])
		assert.Equal(t, 1, resp.MaintenancesByStatus["scheduled"])
		assert.Equal(t, 450000.0, resp.Revenue)
	})

	t.Run("provider is scoped", func(t *testing.T) {
		repos := new(mockRepos)
		repos.On("Count", ctx, &provider.UserID).Return(3, 3, nil).Once()
		repos.On("Revenue", ctx, &provider.UserID).Return(90000.0, nil).Once()
		repos.On("CountUnread", ctx, &provider.UserID).Return(0, nil).Once()

		resp, err := newTestService(repos).Stats(ctx, provider)
		require.NoError(t, err)
		assert.Equal(t, "provider", resp.Scope)
		assert.Nil(t, resp.UsersByRole)
		repos.AssertNotCalled(t, "CountByRole", mock.Anything)
	})

	t.Run("producteur denied", func(t *testing.T) {
		_, err := newTestService(new(mockRepos)).Stats(ctx, farmer)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("repository failure", func(t *testing.T) {
		repos := new(mockRepos)
		repos.On("Count", ctx, &provider.UserID).Return(0, 0, errors.New("db down")).Once()
		_, err := newTestService(repos).Stats(ctx, provider)
		assert.ErrorIs(t, err, ErrInternal)
	})
}

func TestService_BookingsReport(t *testing.T) {
	ctx := context.Background()
	from, to := types.Date("2024-03-01"), types.Date("2024-03-31")

	repos := new(mockRepos)
	repos.On("Find", ctx, mock.MatchedBy(func(f domain.BookingsFilter) bool {
		return *f.ProviderID == provider.UserID && *f.From == from && *f.To == to && f.IncludeInactive
	})).Return([]*domain.Booking{
		{ID: 5, ServiceName: "Tracteur", Type: domain.BookingTypeDaily, StartDate: "2024-03-10", EndDate: "2024-03-16",
			Status: domain.StatusConfirmed, PaymentStatus: domain.PaymentStatePaid,
			Price: domain.PriceCalculation{Duration: 7, PricePerUnit: 50000, Subtotal: 350000, DiscountPercentage: 10, DiscountAmount: 35000, TotalPrice: 315000}},
	}, nil).Once()

	var buf bytes.Buffer
	require.NoError(t, newTestService(repos).BookingsReport(ctx, provider, from, to, &buf))

	book, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer book.Close()

	assert.Equal(t, []string{bookingsSheet, summarySheet}, book.GetSheetList())
	service, err := book.GetCellValue(bookingsSheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "Tracteur", service)
	total, err := book.GetCellValue(bookingsSheet, "L2")
	require.NoError(t, err)
	assert.Equal(t, "315000", total)

	err = newTestService(new(mockRepos)).BookingsReport(ctx, provider, to, from, &buf)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
