package get_available_hours

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/agroboost/AgroBoost-RentalService/internal/domain"
	"github.com/agroboost/AgroBoost-RentalService/pkg/logger"
	"github.com/agroboost/AgroBoost-RentalService/pkg/types"
)

type mockRepos struct {
	mock.Mock
}

func (m *mockRepos) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Service), args.Error(1)
}

func (m *mockRepos) Resolve(ctx context.Context, providerID int64, serviceID *int64) (*domain.ProviderSettings, error) {
	args := m.Called(ctx, providerID, serviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProviderSettings), args.Error(1)
}

func (m *mockRepos) FindBlocking(ctx context.Context, serviceID int64, from, to types.Date) ([]*domain.Maintenance, error) {
	args := m.Called(ctx, serviceID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Maintenance), args.Error(1)
}

type mockBookingRepo struct {
	mock.Mock
}

func (m *mockBookingRepo) Find(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Booking), args.Error(1)
}

type mockBlockRepo struct {
	mock.Mock
}

func (m *mockBlockRepo) Find(ctx context.Context, serviceID int64, from, to types.Date) ([]*domain.AvailabilityBlock, error) {
	args := m.Called(ctx, serviceID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.AvailabilityBlock), args.Error(1)
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

func mustTime(t *testing.T, s string) types.TimeString {
	t.Helper()
	ts, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)
	return ts
}

func window(t *testing.T, open, close string, capacity int) *domain.ProviderSettings {
	s := domain.DefaultSettings(20)
	s.OpenTime = mustTime(t, open)
	s.CloseTime = mustTime(t, close)
	s.Capacity = capacity
	return s
}

var now = time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC)

func TestGenerateHours(t *testing.T) {
	settings := window(t, "08:00", "12:30", 1)

	hours, err := generateHours(settings, "2024-03-11", now)
	require.NoError(t, err)
	require.Len(t, hours, 4)
	assert.Equal(t, "08:00", hours[0].String())
	assert.Equal(t, "11:00", hours[3].String())

	settings.MinBookingNoticeMinutes = 60
	hours, err = generateHours(settings, "2024-03-10", now)
	require.NoError(t, err)
	require.Len(t, hours, 1)
	assert.Equal(t, "11:00", hours[0].String())

	hours, err = generateHours(settings, "2024-03-09", now)
	require.NoError(t, err)
	assert.Empty(t, hours)
}

func TestUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	date := types.Date("2024-03-11")
	tractor := &domain.Service{ID: 3, ProviderID: 20, Name: "Tracteur", PricePerDay: 50000, IsAvailable: true}

	newUseCase := func(repos *mockRepos, bookings *mockBookingRepo, blocks *mockBlockRepo) *UseCase {
		uc := NewUseCase(bookings, repos, blocks, repos, repos, time.UTC, logger.NewNop())
		uc.timeProvider = fixedClock{now: now}
		return uc
	}

	t.Run("counts free units per hour", func(t *testing.T) {
		repos, bookings, blocks := new(mockRepos), new(mockBookingRepo), new(mockBlockRepo)
		repos.On("GetByID", ctx, int64(3)).Return(tractor, nil).Once()
		repos.On("Resolve", ctx, int64(20), mock.Anything).Return(window(t, "08:00", "11:00", 2), nil).Once()
		bookings.On("Find", ctx, mock.Anything).Return([]*domain.Booking{
			{ID: 1, Type: domain.BookingTypeHourly, StartDate: date, EndDate: date, StartTime: mustTime(t, "08:00"), DurationHours: 2, Status: domain.StatusConfirmed},
			{ID: 2, Type: domain.BookingTypeHourly, StartDate: date, EndDate: date, StartTime: mustTime(t, "09:00"), DurationHours: 1, Status: domain.StatusPending},
			{ID: 3, Type: domain.BookingTypeHourly, StartDate: date, EndDate: date, StartTime: mustTime(t, "10:00"), DurationHours: 1, Status: domain.StatusRejected},
		}, nil).Once()
		blocks.On("Find", ctx, int64(3), date, date).Return([]*domain.AvailabilityBlock{}, nil).Once()
		repos.On("FindBlocking", ctx, int64(3), date, date).Return([]*domain.Maintenance{}, nil).Once()

		resp, err := newUseCase(repos, bookings, blocks).Execute(ctx, &Request{ServiceID: 3, Date: date})
		require.NoError(t, err)
		require.Len(t, resp.Slots, 3)
		assert.Equal(t, 1, resp.Slots[0].AvailableUnits)
		assert.Equal(t, 0, resp.Slots[1].AvailableUnits)
		assert.Equal(t, 2, resp.Slots[2].AvailableUnits)
		assert.Equal(t, "11:00", resp.Slots[2].EndTime.String())
	})

	t.Run("blocked day has no free unit", func(t *testing.T) {
		repos, bookings, blocks := new(mockRepos), new(mockBookingRepo), new(mockBlockRepo)
		repos.On("GetByID", ctx, int64(3)).Return(tractor, nil).Once()
		repos.On("Resolve", ctx, int64(20), mock.Anything).Return(window(t, "08:00", "10:00", 1), nil).Once()
		bookings.On("Find", ctx, mock.Anything).Return([]*domain.Booking{}, nil).Once()
		blocks.On("Find", ctx, int64(3), date, date).Return([]*domain.AvailabilityBlock{{ID: 1, StartDate: date, EndDate: date}}, nil).Once()
		repos.On("FindBlocking", ctx, int64(3), date, date).Return([]*domain.Maintenance{}, nil).Once()

		resp, err := newUseCase(repos, bookings, blocks).Execute(ctx, &Request{ServiceID: 3, Date: date})
		require.NoError(t, err)
		for _, slot := range resp.Slots {
			assert.Zero(t, slot.AvailableUnits)
		}
	})

	t.Run("too far ahead", func(t *testing.T) {
		settings := window(t, "08:00", "10:00", 1)
		settings.AdvanceBookingDays = 7
		repos := new(mockRepos)
		repos.On("GetByID", ctx, int64(3)).Return(tractor, nil).Once()
		repos.On("Resolve", ctx, int64(20), mock.Anything).Return(settings, nil).Once()

		_, err := newUseCase(repos, new(mockBookingRepo), new(mockBlockRepo)).Execute(ctx, &Request{ServiceID: 3, Date: "2024-03-30"})
		assert.ErrorIs(t, err, ErrDateTooFarInFuture)
	})

	t.Run("invalid date", func(t *testing.T) {
		_, err := newUseCase(new(mockRepos), new(mockBookingRepo), new(mockBlockRepo)).Execute(ctx, &Request{ServiceID: 3, Date: "11/03/2024"})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
