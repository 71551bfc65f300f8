package catalog

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/agroboost/AgroBoost-RentalService/internal/domain"
	serviceRepo "github.com/agroboost/AgroBoost-RentalService/internal/infra/storage/service"
	"github.com/agroboost/AgroBoost-RentalService/internal/service/catalog/models"
	"github.com/agroboost/AgroBoost-RentalService/pkg/logger"
	"github.com/agroboost/AgroBoost-RentalService/pkg/ptr"
)

type mockServiceRepo struct {
	mock.Mock
}

func (m *mockServiceRepo) Create(ctx context.Context, s *domain.Service) (*domain.Service, error) {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Service), args.Error(1)
}

func (m *mockServiceRepo) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Service), args.Error(1)
}

func (m *mockServiceRepo) List(ctx context.Context, filter domain.ServiceFilter) ([]*domain.Service, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*domain.Service), args.Int(1), args.Error(2)
}

func (m *mockServiceRepo) Update(ctx context.Context, s *domain.Service) error {
	return m.Called(ctx, s).Error(0)
}

func (m *mockServiceRepo) SetImages(ctx context.Context, id int64, images []string) error {
	return m.Called(ctx, id, images).Error(0)
}

func (m *mockServiceRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockImageStore struct {
	mock.Mock
}

func (m *mockImageStore) Upload(ctx context.Context, subfolder, filename string, file io.Reader) (string, error) {
	args := m.Called(ctx, subfolder, filename, file)
	return args.String(0), args.Error(1)
}

func (m *mockImageStore) Delete(ctx context.Context, url string) error {
	return m.Called(ctx, url).Error(0)
}

var (
	owner    = domain.Actor{UserID: 20, Role: domain.RoleProvider}
	intruder = domain.Actor{UserID: 21, Role: domain.RoleProvider}
	farmer   = domain.Actor{UserID: 30, Role: domain.RoleProducteur}
	admin    = domain.Actor{UserID: 1, Role: domain.RoleAdmin}
)

func tractor() *domain.Service {
	return &domain.Service{ID: 3, ProviderID: owner.UserID, Name: "Tracteur", PricePerDay: 50000, IsAvailable: true, Images: []string{}}
}

func newTestService() (*Service, *mockServiceRepo, *mockImageStore) {
	repo := new(mockServiceRepo)
	images := new(mockImageStore)
	return NewService(repo, images, logger.NewNop()), repo, images
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("provider creates for self", func(t *testing.T) {
		svc, repo, _ := newTestService()
		repo.On("Create", ctx, mock.MatchedBy(func(s *domain.Service) bool {
			return s.ProviderID == owner.UserID && s.IsAvailable && s.Name == "Moissonneuse"
		})).Return(&domain.Service{ID: 9, ProviderID: owner.UserID, Name: "Moissonneuse", PricePerDay: 80000}, nil).Once()

		resp, err := svc.Create(ctx, owner, &models.CreateServiceRequest{
			ProviderID: ptr.Ptr(int64(999)), Name: " Moissonneuse ", PricePerDay: 80000,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(9), resp.ID)
		assert.Equal(t, []string{}, resp.Images)
	})

	t.Run("producteur cannot publish", func(t *testing.T) {
		svc, _, _ := newTestService()
		_, err := svc.Create(ctx, farmer, &models.CreateServiceRequest{Name: "x", PricePerDay: 1})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("admin needs provider id", func(t *testing.T) {
		svc, _, _ := newTestService()
		_, err := svc.Create(ctx, admin, &models.CreateServiceRequest{Name: "x", PricePerDay: 1})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("invalid prices", func(t *testing.T) {
		svc, _, _ := newTestService()
		_, err := svc.Create(ctx, owner, &models.CreateServiceRequest{Name: "x", PricePerDay: 0})
		assert.ErrorIs(t, err, ErrInvalidInput)
		_, err = svc.Create(ctx, owner, &models.CreateServiceRequest{Name: "x", PricePerDay: 10, PricePerHour: ptr.Ptr(-1.0)})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()

	svc, repo, _ := newTestService()
	repo.On("GetByID", ctx, int64(3)).Return(tractor(), nil)
	repo.On("Update", ctx, mock.MatchedBy(func(s *domain.Service) bool { return s.PricePerDay == 60000 })).Return(nil).Once()

	resp, err := svc.Update(ctx, owner, 3, &models.UpdateServiceRequest{PricePerDay: ptr.Ptr(60000.0)})
	require.NoError(t, err)
	assert.Equal(t, 60000.0, resp.PricePerDay)

	_, err = svc.Update(ctx, intruder, 3, &models.UpdateServiceRequest{})
	assert.ErrorIs(t, err, ErrAccessDenied)

	repo.On("GetByID", ctx, int64(404)).Return(nil, serviceRepo.ErrServiceNotFound).Once()
	_, err = svc.Update(ctx, admin, 404, &models.UpdateServiceRequest{})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestService_AddImages(t *testing.T) {
	ctx := context.Background()
	file := func(name, ct string) models.ImageFile {
		return models.ImageFile{Filename: name, ContentType: ct, Content: strings.NewReader("data")}
	}

	t.Run("uploads and stores urls", func(t *testing.T) {
		svc, repo, images := newTestService()
		repo.On("GetByID", ctx, int64(3)).Return(tractor(), nil).Once()
		images.On("Upload", ctx, "services/3", withExt(".jpg"), mock.Anything).Return("https://img/a.jpg", nil).Once()
		images.On("Upload", ctx, "services/3", withExt(".png"), mock.Anything).Return("https://img/b.png", nil).Once()
		repo.On("SetImages", ctx, int64(3), []string{"https://img/a.jpg", "https://img/b.png"}).Return(nil).Once()

		resp, err := svc.AddImages(ctx, owner, 3, []models.ImageFile{file("a.jpg", "image/jpeg"), file("b.png", "image/png")})
		require.NoError(t, err)
		assert.Len(t, resp.Images, 2)
	})

	t.Run("rejects non images", func(t *testing.T) {
		svc, _, _ := newTestService()
		_, err := svc.AddImages(ctx, owner, 3, []models.ImageFile{file("a.pdf", "application/pdf")})
		assert.ErrorIs(t, err, ErrUnsupportedImage)
	})

	t.Run("limit of five", func(t *testing.T) {
		svc, repo, _ := newTestService()
		full := tractor()
		full.Images = []string{"1", "2", "3", "4"}
		repo.On("GetByID", ctx, int64(3)).Return(full, nil).Once()

		_, err := svc.AddImages(ctx, owner, 3, []models.ImageFile{file("a.jpg", "image/jpeg"), file("b.jpg", "image/jpeg")})
		assert.ErrorIs(t, err, ErrTooManyImages)
	})

	t.Run("failed upload discards earlier ones", func(t *testing.T) {
		svc, repo, images := newTestService()
		repo.On("GetByID", ctx, int64(3)).Return(tractor(), nil).Once()
		images.On("Upload", ctx, "services/3", withExt(".jpg"), mock.Anything).Return("https://img/a.jpg", nil).Once()
		images.On("Upload", ctx, "services/3", withExt(".jpg"), mock.Anything).Return("", errors.New("quota")).Once()
		images.On("Delete", ctx, "https://img/a.jpg").Return(nil).Once()

		_, err := svc.AddImages(ctx, owner, 3, []models.ImageFile{file("a.jpg", "image/jpeg"), file("b.jpg", "image/jpeg")})
		assert.ErrorIs(t, err, ErrInternal)
		images.AssertExpectations(t)
	})
}

func TestService_RemoveImageAndDelete(t *testing.T) {
	ctx := context.Background()
	svc, repo, images := newTestService()

	withImages := tractor()
	withImages.Images = []string{"https://img/a.jpg", "https://img/b.jpg"}
	repo.On("GetByID", ctx, int64(3)).Return(withImages, nil).Once()
	repo.On("SetImages", ctx, int64(3), []string{"https://img/b.jpg"}).Return(nil).Once()
	images.On("Delete", ctx, "https://img/a.jpg").Return(nil).Once()

	resp, err := svc.RemoveImage(ctx, owner, 3, "https://img/a.jpg")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://img/b.jpg"}, resp.Images)

	repo.On("GetByID", ctx, int64(3)).Return(tractor(), nil).Once()
	_, err = svc.RemoveImage(ctx, owner, 3, "https://img/zzz.jpg")
	assert.ErrorIs(t, err, ErrImageNotFound)

	doomed := tractor()
	doomed.Images = []string{"https://img/b.jpg"}
	repo.On("GetByID", ctx, int64(3)).Return(doomed, nil).Once()
	repo.On("Delete", ctx, int64(3)).Return(nil).Once()
	images.On("Delete", ctx, "https://img/b.jpg").Return(errors.New("gone")).Once()

	assert.NoError(t, svc.Delete(ctx, admin, 3))
	repo.AssertExpectations(t)
}

func withExt(ext string) interface{} {
	return mock.MatchedBy(func(name string) bool {
		return strings.HasSuffix(name, ext) && len(name) > len(ext)+30
	})
}
