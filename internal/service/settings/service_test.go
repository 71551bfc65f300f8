package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/agroboost/AgroBoost-RentalService/internal/domain"
	serviceRepo "github.com/agroboost/AgroBoost-RentalService/internal/infra/storage/service"
	settingsRepo "github.com/agroboost/AgroBoost-RentalService/internal/infra/storage/settings"
	"github.com/agroboost/AgroBoost-RentalService/internal/service/settings/models"
	"github.com/agroboost/AgroBoost-RentalService/pkg/logger"
	"github.com/agroboost/AgroBoost-RentalService/pkg/ptr"
	"github.com/agroboost/AgroBoost-RentalService/pkg/types"
)

type mockSettingsRepo struct {
	mock.Mock
}

func (m *mockSettingsRepo) Resolve(ctx context.Context, providerID int64, serviceID *int64) (*domain.ProviderSettings, error) {
	args := m.Called(ctx, providerID, serviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProviderSettings), args.Error(1)
}

func (m *mockSettingsRepo) ListByProvider(ctx context.Context, providerID int64) ([]*domain.ProviderSettings, error) {
	args := m.Called(ctx, providerID)
	return args.Get(0).([]*domain.ProviderSettings), args.Error(1)
}

func (m *mockSettingsRepo) Upsert(ctx context.Context, s *domain.ProviderSettings) (*domain.ProviderSettings, error) {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProviderSettings), args.Error(1)
}

func (m *mockSettingsRepo) Delete(ctx context.Context, providerID int64, serviceID *int64) error {
	return m.Called(ctx, providerID, serviceID).Error(0)
}

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

func mustTime(t *testing.T, s string) types.TimeString {
	t.Helper()
	ts, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)
	return ts
}

func TestService_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("falls back to defaults", func(t *testing.T) {
		repo := new(mockSettingsRepo)
		svc := NewService(repo, new(mockServiceRepo), logger.NewNop())
		repo.On("Resolve", ctx, int64(2), ptr.Ptr(int64(3))).Return(nil, settingsRepo.ErrSettingsNotFound).Once()

		got, err := svc.Resolve(ctx, 2, ptr.Ptr(int64(3)))
		require.NoError(t, err)
		assert.Equal(t, domain.DefaultCapacity, got.Capacity)
		assert.Equal(t, "06:00", got.OpenTime.String())
		assert.Equal(t, "20:00", got.CloseTime.String())
	})

	t.Run("stored settings win", func(t *testing.T) {
		repo := new(mockSettingsRepo)
		svc := NewService(repo, new(mockServiceRepo), logger.NewNop())
		stored := &domain.ProviderSettings{ID: 4, ProviderID: 2, Capacity: 3}
		repo.On("Resolve", ctx, int64(2), (*int64)(nil)).Return(stored, nil).Once()

		got, err := svc.Resolve(ctx, 2, nil)
		require.NoError(t, err)
		assert.Equal(t, 3, got.Capacity)
	})
}

func TestService_GetProviderSettings(t *testing.T) {
	ctx := context.Background()
	repo := new(mockSettingsRepo)
	svc := NewService(repo, new(mockServiceRepo), logger.NewNop())

	repo.On("ListByProvider", ctx, int64(2)).Return([]*domain.ProviderSettings{
		{ID: 8, ProviderID: 2, ServiceID: ptr.Ptr(int64(5)), Capacity: 2, OpenTime: mustTime(t, "07:00"), CloseTime: mustTime(t, "18:00")},
	}, nil).Once()

	got, err := svc.GetProviderSettings(ctx, 2)
	require.NoError(t, err)
	assert.True(t, got.ProviderWide.IsDefault)
	require.Len(t, got.Services, 1)
	assert.Equal(t, 2, got.Services[0].Capacity)
	assert.False(t, got.Services[0].IsDefault)
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()
	provider := domain.Actor{UserID: 2, Role: domain.RoleProvider}

	valid := func() *models.UpdateSettingsRequest {
		return &models.UpdateSettingsRequest{
			Actor: provider, ProviderID: 2, Capacity: 3,
			AdvanceBookingDays: 30, OpenTime: "07:00", CloseTime: "19:00",
		}
	}

	t.Run("provider-wide", func(t *testing.T) {
		repo := new(mockSettingsRepo)
		svc := NewService(repo, new(mockServiceRepo), logger.NewNop())
		repo.On("Upsert", ctx, mock.AnythingOfType("*domain.ProviderSettings")).
			Return(&domain.ProviderSettings{
				ID: 11, ProviderID: 2, Capacity: 3, AdvanceBookingDays: 30,
				OpenTime: mustTime(t, "07:00"), CloseTime: mustTime(t, "19:00"),
			}, nil).Once()

		got, err := svc.Update(ctx, valid())
		require.NoError(t, err)
		assert.Equal(t, int64(11), *got.ID)
		assert.Equal(t, "07:00", got.OpenTime)
	})

	t.Run("other provider refused", func(t *testing.T) {
		svc := NewService(new(mockSettingsRepo), new(mockServiceRepo), logger.NewNop())
		req := valid()
		req.Actor = domain.Actor{UserID: 9, Role: domain.RoleProvider}

		_, err := svc.Update(ctx, req)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("closed window rejected", func(t *testing.T) {
		svc := NewService(new(mockSettingsRepo), new(mockServiceRepo), logger.NewNop())
		req := valid()
		req.OpenTime = "19:00"

		_, err := svc.Update(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("foreign service rejected", func(t *testing.T) {
		services := new(mockServiceRepo)
		svc := NewService(new(mockSettingsRepo), services, logger.NewNop())
		services.On("GetByID", ctx, int64(5)).Return(&domain.Service{ID: 5, ProviderID: 77}, nil).Once()
		req := valid()
		req.ServiceID = ptr.Ptr(int64(5))

		_, err := svc.Update(ctx, req)
		assert.ErrorIs(t, err, ErrServiceNotFound)
	})

	t.Run("missing service", func(t *testing.T) {
		services := new(mockServiceRepo)
		svc := NewService(new(mockSettingsRepo), services, logger.NewNop())
		services.On("GetByID", ctx, int64(5)).Return(nil, serviceRepo.ErrServiceNotFound).Once()
		req := valid()
		req.ServiceID = ptr.Ptr(int64(5))

		_, err := svc.Update(ctx, req)
		assert.ErrorIs(t, err, ErrServiceNotFound)
	})
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()
	repo := new(mockSettingsRepo)
	svc := NewService(repo, new(mockServiceRepo), logger.NewNop())
	admin := domain.Actor{UserID: 1, Role: domain.RoleAdmin}

	repo.On("Delete", ctx, int64(2), (*int64)(nil)).Return(settingsRepo.ErrSettingsNotFound).Once()
	assert.ErrorIs(t, svc.Delete(ctx, admin, 2, nil), ErrSettingsNotFound)
}
