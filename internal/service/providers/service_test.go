package providers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/agroboost/AgroBoost-RentalService/internal/domain"
	userRepo "github.com/agroboost/AgroBoost-RentalService/internal/infra/storage/user"
	"github.com/agroboost/AgroBoost-RentalService/pkg/logger"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) List(ctx context.Context, filter domain.UserFilter) ([]*domain.User, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*domain.User), args.Int(1), args.Error(2)
}

type mockServiceRepo struct {
	mock.Mock
}

func (m *mockServiceRepo) List(ctx context.Context, filter domain.ServiceFilter) ([]*domain.Service, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*domain.Service), args.Int(1), args.Error(2)
}

func TestService_List(t *testing.T) {
	ctx := context.Background()
	users := new(mockUserRepo)
	svc := NewService(users, new(mockServiceRepo), logger.NewNop())

	role := domain.RoleProvider
	users.On("List", ctx, domain.UserFilter{Role: &role, Search: "thiès", Page: domain.Page{}}).
		Return([]*domain.User{{ID: 20, FirstName: "Moussa", LastName: "Ndiaye", Role: role}}, 1, nil).Once()

	resp, err := svc.List(ctx, "thiès", domain.Page{})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
	assert.Equal(t, domain.DefaultPageLimit, resp.Limit)
	assert.Equal(t, "Moussa Ndiaye", resp.Providers[0].FullName)
}

func TestService_Get(t *testing.T) {
	ctx := context.Background()
	users := new(mockUserRepo)
	services := new(mockServiceRepo)
	svc := NewService(users, services, logger.NewNop())

	users.On("GetByID", ctx, int64(20)).Return(&domain.User{ID: 20, Role: domain.RoleProvider, IsActive: true}, nil).Once()
	services.On("List", ctx, mock.MatchedBy(func(f domain.ServiceFilter) bool { return *f.ProviderID == 20 })).
		Return([]*domain.Service{{ID: 3, ProviderID: 20, Name: "Tracteur"}}, 1, nil).Once()

	resp, err := svc.Get(ctx, 20)
	require.NoError(t, err)
	require.Len(t, resp.Services, 1)
	assert.Equal(t, "Tracteur", resp.Services[0].Name)

	users.On("GetByID", ctx, int64(30)).Return(&domain.User{ID: 30, Role: domain.RoleProducteur, IsActive: true}, nil).Once()
	_, err = svc.Get(ctx, 30)
	assert.ErrorIs(t, err, ErrProviderNotFound)

	users.On("GetByID", ctx, int64(40)).Return(nil, userRepo.ErrUserNotFound).Once()
	_, err = svc.Get(ctx, 40)
	assert.ErrorIs(t, err, ErrProviderNotFound)
}
