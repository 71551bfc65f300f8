package notifications

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/agroboost/AgroBoost-RentalService/internal/domain"
	notificationRepo "github.com/agroboost/AgroBoost-RentalService/internal/infra/storage/notification"
	userRepo "github.com/agroboost/AgroBoost-RentalService/internal/infra/storage/user"
	"github.com/agroboost/AgroBoost-RentalService/internal/service/notifications/models"
	"github.com/agroboost/AgroBoost-RentalService/pkg/logger"
	"github.com/agroboost/AgroBoost-RentalService/pkg/ptr"
)

type mockNotificationRepo struct {
	mock.Mock
}

func (m *mockNotificationRepo) Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error) {
	args := m.Called(ctx, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Notification), args.Error(1)
}

func (m *mockNotificationRepo) GetByID(ctx context.Context, id int64) (*domain.Notification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Notification), args.Error(1)
}

func (m *mockNotificationRepo) List(ctx context.Context, filter domain.NotificationFilter) ([]*domain.Notification, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*domain.Notification), args.Int(1), args.Error(2)
}

func (m *mockNotificationRepo) MarkRead(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockNotificationRepo) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockNotificationRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

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

type mockPusher struct {
	mock.Mock
}

func (m *mockPusher) Notify(ctx context.Context, chatID int64, title, message string) error {
	return m.Called(ctx, chatID, title, message).Error(0)
}

func newTestService() (*Service, *mockNotificationRepo, *mockUserRepo, *mockPusher) {
	repo := new(mockNotificationRepo)
	users := new(mockUserRepo)
	pusher := new(mockPusher)
	return NewService(repo, users, pusher, logger.NewNop()), repo, users, pusher
}

func TestService_Notify(t *testing.T) {
	ctx := context.Background()

	t.Run("stores and pushes to telegram", func(t *testing.T) {
		svc, repo, users, pusher := newTestService()
		users.On("GetByID", ctx, int64(7)).Return(&domain.User{ID: 7, TelegramChatID: ptr.Ptr(int64(99))}, nil).Once()
		repo.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
			return n.UserID == 7 && n.Type == domain.NotificationBookingStatus
		})).Return(&domain.Notification{ID: 1, UserID: 7}, nil).Once()
		pusher.On("Notify", ctx, int64(99), "Réservation", "Confirmée").Return(nil).Once()

		require.NoError(t, svc.Notify(ctx, 7, domain.NotificationBookingStatus, "Réservation", "Confirmée"))
		repo.AssertExpectations(t)
		pusher.AssertExpectations(t)
	})

	t.Run("push failure is not fatal", func(t *testing.T) {
		svc, repo, users, pusher := newTestService()
		users.On("GetByID", ctx, int64(7)).Return(&domain.User{ID: 7, TelegramChatID: ptr.Ptr(int64(99))}, nil).Once()
		repo.On("Create", ctx, mock.Anything).Return(&domain.Notification{ID: 1, UserID: 7}, nil).Once()
		pusher.On("Notify", ctx, int64(99), mock.Anything, mock.Anything).Return(errors.New("telegram down")).Once()

		assert.NoError(t, svc.Notify(ctx, 7, domain.NotificationPayment, "Paiement", "Reçu"))
	})

	t.Run("no chat id, no push", func(t *testing.T) {
		svc, repo, users, pusher := newTestService()
		users.On("GetByID", ctx, int64(7)).Return(&domain.User{ID: 7}, nil).Once()
		repo.On("Create", ctx, mock.Anything).Return(&domain.Notification{ID: 1, UserID: 7}, nil).Once()

		assert.NoError(t, svc.Notify(ctx, 7, domain.NotificationSystem, "Info", "Bienvenue"))
		pusher.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown recipient", func(t *testing.T) {
		svc, _, users, _ := newTestService()
		users.On("GetByID", ctx, int64(8)).Return(nil, userRepo.ErrUserNotFound).Once()
		assert.ErrorIs(t, svc.Notify(ctx, 8, domain.NotificationSystem, "Info", "x"), ErrUserNotFound)
	})
}

func TestService_Send(t *testing.T) {
	ctx := context.Background()
	admin := domain.Actor{UserID: 1, Role: domain.RoleAdmin}

	svc, _, _, _ := newTestService()
	_, err := svc.Send(ctx, domain.Actor{UserID: 2, Role: domain.RoleProvider}, &models.SendNotificationRequest{UserID: 7, Title: "a", Message: "b"})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.Send(ctx, admin, &models.SendNotificationRequest{UserID: 7, Title: "  ", Message: "b"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	svc, repo, users, _ := newTestService()
	users.On("GetByID", ctx, int64(7)).Return(&domain.User{ID: 7}, nil).Once()
	repo.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool { return n.Type == domain.NotificationSystem })).
		Return(&domain.Notification{ID: 4, UserID: 7, Type: domain.NotificationSystem, Title: "Maintenance"}, nil).Once()

	resp, err := svc.Send(ctx, admin, &models.SendNotificationRequest{UserID: 7, Title: "Maintenance", Message: "Arrêt ce soir"})
	require.NoError(t, err)
	assert.Equal(t, int64(4), resp.ID)
	assert.Equal(t, "system", resp.Type)
}

func TestService_MarkReadAndDelete(t *testing.T) {
	ctx := context.Background()
	owner := domain.Actor{UserID: 7, Role: domain.RoleProducteur}
	other := domain.Actor{UserID: 8, Role: domain.RoleProducteur}

	svc, repo, _, _ := newTestService()
	repo.On("GetByID", ctx, int64(3)).Return(&domain.Notification{ID: 3, UserID: 7}, nil)
	repo.On("MarkRead", ctx, int64(3)).Return(nil).Once()
	repo.On("GetByID", ctx, int64(404)).Return(nil, notificationRepo.ErrNotificationNotFound)

	assert.NoError(t, svc.MarkRead(ctx, owner, 3))
	assert.ErrorIs(t, svc.MarkRead(ctx, other, 3), ErrAccessDenied)
	assert.ErrorIs(t, svc.Delete(ctx, owner, 404), ErrNotificationNotFound)

	repo.On("MarkAllRead", ctx, int64(7)).Return(int64(5), nil).Once()
	n, err := svc.MarkAllRead(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)
}
