package users

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/agroboost/AgroBoost-RentalService/internal/domain"
	"github.com/agroboost/AgroBoost-RentalService/internal/infra/session"
	userRepo "github.com/agroboost/AgroBoost-RentalService/internal/infra/storage/user"
	"github.com/agroboost/AgroBoost-RentalService/internal/service/users/models"
	"github.com/agroboost/AgroBoost-RentalService/pkg/logger"
	"github.com/agroboost/AgroBoost-RentalService/pkg/ptr"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	args := m.Called(ctx, u)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
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

func (m *mockUserRepo) Update(ctx context.Context, u *domain.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUserRepo) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	return m.Called(ctx, id, passwordHash).Error(0)
}

func (m *mockUserRepo) SetVerified(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockUserRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockCodeSender struct {
	mock.Mock
}

func (m *mockCodeSender) Notify(ctx context.Context, chatID int64, title, message string) error {
	return m.Called(ctx, chatID, title, message).Error(0)
}

type fixture struct {
	svc    *Service
	repo   *mockUserRepo
	sender *mockCodeSender
	redis  *miniredis.Miniredis
	store  *session.Store
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	mr := miniredis.RunT(t)
	store := session.NewStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	repo := new(mockUserRepo)
	sender := new(mockCodeSender)

	svc := NewService(repo, store, NewTokenIssuer("test-secret", time.Hour), sender, Options{
		OTPTTL:         10 * time.Minute,
		OTPMaxAttempts: 3,
		OTPResend:      time.Minute,
		BcryptCost:     bcrypt.MinCost,
	}, logger.NewNop())

	return &fixture{svc: svc, repo: repo, sender: sender, redis: mr, store: store}
}

func (f *fixture) storedOTP(t *testing.T, purpose session.OTPPurpose, email string) string {
	t.Helper()
	code, err := f.redis.Get("agro:otp:" + string(purpose) + ":" + email)
	require.NoError(t, err)
	return code
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := hashPassword(password, bcrypt.MinCost)
	require.NoError(t, err)
	return h
}

func activeUser(t *testing.T) *domain.User {
	return &domain.User{
		ID:           7,
		Email:        "awa@example.sn",
		FirstName:    "Awa",
		LastName:     "Diop",
		Role:         domain.RoleProducteur,
		PasswordHash: hashed(t, "motdepasse"),
		IsVerified:   true,
		IsActive:     true,
	}
}

func TestService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("creates unverified account and stores a code", func(t *testing.T) {
		f := newFixture(t)
		f.repo.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Email == "awa@example.sn" && !u.IsVerified && u.IsActive && u.PasswordHash != "motdepasse"
		})).Return(&domain.User{ID: 7, Email: "awa@example.sn", Role: domain.RoleProducteur, IsActive: true}, nil).Once()

		resp, err := f.svc.Register(ctx, &models.RegisterRequest{
			Email: " Awa@Example.SN ", Password: "motdepasse", Role: "producteur",
		})

		require.NoError(t, err)
		assert.Equal(t, int64(7), resp.ID)
		assert.Len(t, f.storedOTP(t, session.OTPVerifyAccount, "awa@example.sn"), 6)
		f.repo.AssertExpectations(t)
	})

	t.Run("admin role is rejected", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.Register(ctx, &models.RegisterRequest{Email: "a@b.sn", Password: "motdepasse", Role: "admin"})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("short password", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.Register(ctx, &models.RegisterRequest{Email: "a@b.sn", Password: "court", Role: "prestataire"})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("duplicate email", func(t *testing.T) {
		f := newFixture(t)
		f.repo.On("Create", ctx, mock.Anything).Return(nil, userRepo.ErrEmailTaken).Once()
		_, err := f.svc.Register(ctx, &models.RegisterRequest{Email: "a@b.sn", Password: "motdepasse", Role: "prestataire"})
		assert.ErrorIs(t, err, ErrEmailTaken)
	})
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("success opens a session", func(t *testing.T) {
		f := newFixture(t)
		u := activeUser(t)
		f.repo.On("GetByEmail", ctx, u.Email).Return(u, nil).Once()

		resp, err := f.svc.Login(ctx, u.Email, "motdepasse")
		require.NoError(t, err)
		require.NotEmpty(t, resp.Token)

		actor, tokenID, err := f.svc.Authenticate(ctx, resp.Token)
		require.NoError(t, err)
		assert.Equal(t, domain.Actor{UserID: 7, Role: domain.RoleProducteur}, actor)

		require.NoError(t, f.svc.Logout(ctx, tokenID))
		_, _, err = f.svc.Authenticate(ctx, resp.Token)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	tests := []struct {
		name     string
		mutate   func(u *domain.User)
		password string
		wantErr  error
	}{
		{"wrong password", func(u *domain.User) {}, "mauvais-mdp", ErrInvalidCredentials},
		{"not verified", func(u *domain.User) { u.IsVerified = false }, "motdepasse", ErrNotVerified},
		{"disabled", func(u *domain.User) { u.IsActive = false }, "motdepasse", ErrInactive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			u := activeUser(t)
			tt.mutate(u)
			f.repo.On("GetByEmail", ctx, u.Email).Return(u, nil).Once()

			_, err := f.svc.Login(ctx, u.Email, tt.password)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("unknown email", func(t *testing.T) {
		f := newFixture(t)
		f.repo.On("GetByEmail", ctx, "x@y.sn").Return(nil, userRepo.ErrUserNotFound).Once()
		_, err := f.svc.Login(ctx, "x@y.sn", "motdepasse")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestService_VerifyOTP(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := activeUser(t)
	u.IsVerified = false
	u.TelegramChatID = ptr.Ptr(int64(555))

	f.repo.On("GetByEmail", ctx, u.Email).Return(u, nil)
	f.sender.On("Notify", ctx, int64(555), "Code de vérification", mock.Anything).Return(nil).Once()

	require.NoError(t, f.svc.ResendOTP(ctx, u.Email))
	assert.ErrorIs(t, f.svc.ResendOTP(ctx, u.Email), ErrOTPCooldown)

	code := f.storedOTP(t, session.OTPVerifyAccount, u.Email)

	_, err := f.svc.VerifyOTP(ctx, u.Email, "000000x")
	assert.ErrorIs(t, err, ErrInvalidOTP)

	f.repo.On("SetVerified", ctx, u.ID).Return(nil).Once()
	resp, err := f.svc.VerifyOTP(ctx, u.Email, code)
	require.NoError(t, err)
	assert.True(t, resp.User.IsVerified)

	// consumed
	_, err = f.svc.VerifyOTP(ctx, u.Email, code)
	assert.ErrorIs(t, err, ErrInvalidOTP)

	f.sender.AssertExpectations(t)
	f.repo.AssertExpectations(t)
}

func TestService_VerifyOTP_TooManyAttempts(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := activeUser(t)
	u.IsVerified = false
	f.repo.On("GetByEmail", ctx, u.Email).Return(u, nil)

	require.NoError(t, f.svc.ResendOTP(ctx, u.Email))

	_, err := f.svc.VerifyOTP(ctx, u.Email, "bad1")
	assert.ErrorIs(t, err, ErrInvalidOTP)
	_, err = f.svc.VerifyOTP(ctx, u.Email, "bad2")
	assert.ErrorIs(t, err, ErrInvalidOTP)
	_, err = f.svc.VerifyOTP(ctx, u.Email, "bad3")
	assert.ErrorIs(t, err, ErrTooManyAttempts)
}

func TestService_PasswordReset(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := activeUser(t)
	f.repo.On("GetByEmail", ctx, u.Email).Return(u, nil)

	login, err := f.svc.Login(ctx, u.Email, "motdepasse")
	require.NoError(t, err)

	require.NoError(t, f.svc.ForgotPassword(ctx, u.Email))
	code := f.storedOTP(t, session.OTPResetPassword, u.Email)

	f.repo.On("UpdatePassword", ctx, u.ID, mock.AnythingOfType("string")).Return(nil).Once()
	require.NoError(t, f.svc.ResetPassword(ctx, u.Email, code, "nouveau-mdp"))

	// previous sessions are revoked
	_, _, err = f.svc.Authenticate(ctx, login.Token)
	assert.ErrorIs(t, err, ErrUnauthorized)
	f.repo.AssertExpectations(t)
}

func TestService_ForgotPassword_UnknownEmail(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.repo.On("GetByEmail", ctx, "ghost@example.sn").Return(nil, userRepo.ErrUserNotFound).Once()

	assert.NoError(t, f.svc.ForgotPassword(ctx, "ghost@example.sn"))
}

func TestService_ChangePassword(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := activeUser(t)
	actor := domain.Actor{UserID: u.ID, Role: u.Role}
	f.repo.On("GetByID", ctx, u.ID).Return(u, nil)

	assert.ErrorIs(t, f.svc.ChangePassword(ctx, actor, "faux-mdp", "nouveau-mdp"), ErrInvalidCredentials)

	f.repo.On("UpdatePassword", ctx, u.ID, mock.AnythingOfType("string")).Return(nil).Once()
	assert.NoError(t, f.svc.ChangePassword(ctx, actor, "motdepasse", "nouveau-mdp"))
}

func TestService_AdminOperations(t *testing.T) {
	ctx := context.Background()
	admin := domain.Actor{UserID: 1, Role: domain.RoleAdmin}
	producer := domain.Actor{UserID: 7, Role: domain.RoleProducteur}

	t.Run("non admin cannot list", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.List(ctx, producer, &models.ListUsersRequest{})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("list filters by role", func(t *testing.T) {
		f := newFixture(t)
		role := domain.RoleProvider
		f.repo.On("List", ctx, domain.UserFilter{Role: &role, Page: domain.Page{Page: 2, Limit: 10}}).
			Return([]*domain.User{{ID: 3, Role: role}}, 11, nil).Once()

		resp, err := f.svc.List(ctx, admin, &models.ListUsersRequest{Role: ptr.Ptr("prestataire"), Page: domain.Page{Page: 2, Limit: 10}})
		require.NoError(t, err)
		assert.Equal(t, 11, resp.Total)
		assert.Equal(t, 2, resp.Page)
		assert.Len(t, resp.Users, 1)
	})

	t.Run("disabling an account revokes its sessions", func(t *testing.T) {
		f := newFixture(t)
		u := activeUser(t)
		f.repo.On("GetByEmail", ctx, u.Email).Return(u, nil).Once()
		login, err := f.svc.Login(ctx, u.Email, "motdepasse")
		require.NoError(t, err)

		stored := *u
		f.repo.On("GetByID", ctx, u.ID).Return(&stored, nil).Once()
		f.repo.On("Update", ctx, mock.MatchedBy(func(x *domain.User) bool { return !x.IsActive })).Return(nil).Once()

		resp, err := f.svc.Update(ctx, admin, u.ID, &models.AdminUpdateUserRequest{IsActive: ptr.Ptr(false)})
		require.NoError(t, err)
		assert.False(t, resp.IsActive)

		_, _, err = f.svc.Authenticate(ctx, login.Token)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("create is verified", func(t *testing.T) {
		f := newFixture(t)
		f.repo.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool { return u.IsVerified && u.Role == domain.RoleAdmin })).
			Return(&domain.User{ID: 9, Role: domain.RoleAdmin, IsVerified: true}, nil).Once()

		resp, err := f.svc.Create(ctx, admin, &models.CreateUserRequest{RegisterRequest: models.RegisterRequest{
			Email: "ops@agroboost.sn", Password: "motdepasse", Role: "admin",
		}})
		require.NoError(t, err)
		assert.True(t, resp.IsVerified)
	})

	t.Run("admin cannot delete self", func(t *testing.T) {
		f := newFixture(t)
		assert.ErrorIs(t, f.svc.Delete(ctx, admin, admin.UserID), ErrInvalidInput)
	})

	t.Run("delete", func(t *testing.T) {
		f := newFixture(t)
		f.repo.On("GetByID", ctx, int64(7)).Return(activeUser(t), nil).Once()
		f.repo.On("Delete", ctx, int64(7)).Return(nil).Once()
		assert.NoError(t, f.svc.Delete(ctx, admin, 7))
		f.repo.AssertExpectations(t)
	})
}
