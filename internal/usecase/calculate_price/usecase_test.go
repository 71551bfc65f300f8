package calculate_price

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/agroboost/AgroBoost-RentalService/internal/domain"
	serviceRepo "github.com/agroboost/AgroBoost-RentalService/internal/infra/storage/service"
	"github.com/agroboost/AgroBoost-RentalService/pkg/logger"
	"github.com/agroboost/AgroBoost-RentalService/pkg/ptr"
	"github.com/agroboost/AgroBoost-RentalService/pkg/types"
)

type mockServiceRepo struct {
	mock.Mock
}

func (m *mockServiceRepo) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Service), args.Error(1)
}

func tractor() *domain.Service {
	return &domain.Service{ID: 3, ProviderID: 20, Name: "Tracteur", PricePerDay: 50000, IsAvailable: true}
}

func TestUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("weekly rental gets the 10 percent tier", func(t *testing.T) {
		repo := new(mockServiceRepo)
		repo.On("GetByID", ctx, int64(3)).Return(tractor(), nil).Once()

		resp, err := NewUseCase(repo, logger.NewNop()).Execute(ctx, &Request{
			ServiceID: 3, Type: "daily", StartDate: "2024-03-10", EndDate: "2024-03-16",
		})
		require.NoError(t, err)
		assert.Equal(t, 7, resp.Duration)
		assert.Equal(t, 350000.0, resp.Subtotal)
		assert.Equal(t, 10.0, resp.DiscountPercentage)
		assert.Equal(t, 315000.0, resp.TotalPrice)
		assert.Equal(t, "XOF", resp.Currency)
	})

	t.Run("hourly falls back to a working-day share", func(t *testing.T) {
		repo := new(mockServiceRepo)
		repo.On("GetByID", ctx, int64(3)).Return(tractor(), nil).Once()
		start, err := types.NewTimeStringFromString("08:00")
		require.NoError(t, err)

		resp, err := NewUseCase(repo, logger.NewNop()).Execute(ctx, &Request{
			ServiceID: 3, Type: "hourly", BookingDate: "2024-03-10", StartTime: start, Duration: 3,
		})
		require.NoError(t, err)
		assert.Equal(t, 6250.0, resp.PricePerUnit)
		assert.Equal(t, 18750.0, resp.TotalPrice)
		assert.Zero(t, resp.DiscountPercentage)
	})

	t.Run("explicit hourly rate wins", func(t *testing.T) {
		svc := tractor()
		svc.PricePerHour = ptr.Ptr(9000.0)
		repo := new(mockServiceRepo)
		repo.On("GetByID", ctx, int64(3)).Return(svc, nil).Once()

		resp, err := NewUseCase(repo, logger.NewNop()).Execute(ctx, &Request{
			ServiceID: 3, Type: "hourly", BookingDate: "2024-03-10", Duration: 2,
		})
		require.NoError(t, err)
		assert.Equal(t, 18000.0, resp.TotalPrice)
	})

	t.Run("inverted range is rejected before loading the service", func(t *testing.T) {
		repo := new(mockServiceRepo)
		_, err := NewUseCase(repo, logger.NewNop()).Execute(ctx, &Request{
			ServiceID: 3, Type: "daily", StartDate: "2024-03-16", EndDate: "2024-03-10",
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
		repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("invalid inputs", func(t *testing.T) {
		cases := []*Request{
			{ServiceID: 0, Type: "daily", StartDate: "2024-03-10", EndDate: "2024-03-10"},
			{ServiceID: 3, Type: "weekly"},
			{ServiceID: 3, Type: "daily", StartDate: "10/03/2024", EndDate: "2024-03-10"},
			{ServiceID: 3, Type: "hourly", BookingDate: "2024-03-10", Duration: 0},
			{ServiceID: 3, Type: "hourly", BookingDate: "2024-03-10", Duration: 25},
		}
		for _, req := range cases {
			_, err := NewUseCase(new(mockServiceRepo), logger.NewNop()).Execute(ctx, req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		}
	})

	t.Run("unknown service", func(t *testing.T) {
		repo := new(mockServiceRepo)
		repo.On("GetByID", ctx, int64(3)).Return(nil, serviceRepo.ErrServiceNotFound).Once()
		_, err := NewUseCase(repo, logger.NewNop()).Execute(ctx, &Request{
			ServiceID: 3, Type: "daily", StartDate: "2024-03-10", EndDate: "2024-03-10",
		})
		assert.ErrorIs(t, err, ErrServiceNotFound)
	})

	t.Run("repository failure", func(t *testing.T) {
		repo := new(mockServiceRepo)
		repo.On("GetByID", ctx, int64(3)).Return(nil, errors.New("db down")).Once()
		_, err := NewUseCase(repo, logger.NewNop()).Execute(ctx, &Request{
			ServiceID: 3, Type: "daily", StartDate: "2024-03-10", EndDate: "2024-03-10",
		})
		assert.ErrorIs(t, err, ErrInternal)
	})
}
