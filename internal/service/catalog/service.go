package catalog

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/agroboost/AgroBoost-RentalService/internal/domain"
	serviceRepo "github.com/agroboost/AgroBoost-RentalService/internal/infra/storage/service"
	"github.com/agroboost/AgroBoost-RentalService/internal/service/catalog/models"
)

// Service manages the equipment catalog
type Service struct {
	repo   ServiceRepository
	images ImageStore
	logger Logger
}

func NewService(repo ServiceRepository, images ImageStore, logger Logger) *Service {
	return &Service{repo: repo, images: images, logger: logger}
}

func (s *Service) List(ctx context.Context, req *models.ListServicesRequest) (*models.ServiceListResponse, error) {
	services, total, err := s.repo.List(ctx, req.ToDomainFilter())
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainServiceList(services, req.Page, total), nil
}

func (s *Service) Get(ctx context.Context, id int64) (*models.ServiceResponse, error) {
	svc, err := s.get(ctx, "Get", id)
	if err != nil {
		return nil, err
	}
	resp := models.FromDomainService(svc)
	return &resp, nil
}

func (s *Service) Create(ctx context.Context, actor domain.Actor, req *models.CreateServiceRequest) (*models.ServiceResponse, error) {
	providerID := actor.UserID
	switch {
	case actor.IsAdmin():
		if req.ProviderID == nil {
			return nil, fmt.Errorf("%w: providerId is required", ErrInvalidInput)
		}
		providerID = *req.ProviderID
	case !actor.IsProvider():
		s.logger.Warn("Create: user=%d with role %s cannot publish services", actor.UserID, actor.Role)
		return nil, ErrAccessDenied
	}

	svc := &domain.Service{
		ProviderID:   providerID,
		Name:         strings.TrimSpace(req.Name),
		Description:  req.Description,
		Category:     req.Category,
		PricePerDay:  req.PricePerDay,
		PricePerHour: req.PricePerHour,
		Location:     req.Location,
		IsAvailable:  true,
		Images:       []string{},
	}
	if req.IsAvailable != nil {
		svc.IsAvailable = *req.IsAvailable
	}
	if err := validate(svc); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, svc)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: service=%d created for provider=%d", created.ID, providerID)
	resp := models.FromDomainService(created)
	return &resp, nil
}

func (s *Service) Update(ctx context.Context, actor domain.Actor, id int64, req *models.UpdateServiceRequest) (*models.ServiceResponse, error) {
	svc, err := s.managed(ctx, "Update", actor, id)
	if err != nil {
		return nil, err
	}

	req.ApplyTo(svc)
	svc.Name = strings.TrimSpace(svc.Name)
	if err := validate(svc); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, svc); err != nil {
		return nil, s.repoError("Update", id, err)
	}

	s.logger.Info("Update: service=%d updated by user=%d", id, actor.UserID)
	resp := models.FromDomainService(svc)
	return &resp, nil
}

// Delete removes the service and, best effort, its pictures
func (s *Service) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	svc, err := s.managed(ctx, "Delete", actor, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.repoError("Delete", id, err)
	}

	for _, url := range svc.Images {
		if err := s.images.Delete(ctx, url); err != nil {
			s.logger.Warn("Delete: failed to remove image %s of service=%d: %v", url, id, err)
		}
	}

	s.logger.Info("Delete: service=%d deleted by user=%d", id, actor.UserID)
	return nil
}

// AddImages uploads pictures for a service, keeping at most domain.MaxServiceImages
func (s *Service) AddImages(ctx context.Context, actor domain.Actor, id int64, files []models.ImageFile) (*models.ServiceResponse, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no image", ErrInvalidInput)
	}
	for _, f := range files {
		if !strings.HasPrefix(f.ContentType, "image/") {
			s.logger.Warn("AddImages: rejected %s (%s)", f.Filename, f.ContentType)
			return nil, ErrUnsupportedImage
		}
	}

	svc, err := s.managed(ctx, "AddImages", actor, id)
	if err != nil {
		return nil, err
	}
	if len(svc.Images)+len(files) > domain.MaxServiceImages {
		s.logger.Warn("AddImages: service=%d would exceed %d images", id, domain.MaxServiceImages)
		return nil, ErrTooManyImages
	}

	subfolder := fmt.Sprintf("services/%d", id)
	uploaded := make([]string, 0, len(files))
	for _, f := range files {
		name := uuid.NewString() + strings.ToLower(path.Ext(f.Filename))
		url, err := s.images.Upload(ctx, subfolder, name, f.Content)
		if err != nil {
			s.logger.Error("AddImages: upload of %s failed: %v", f.Filename, err)
			s.discard(ctx, uploaded)
			return nil, fmt.Errorf("%w: AddImages - upload: %v", ErrInternal, err)
		}
		uploaded = append(uploaded, url)
	}

	images := append(append([]string{}, svc.Images...), uploaded...)
	if err := s.repo.SetImages(ctx, id, images); err != nil {
		s.discard(ctx, uploaded)
		return nil, s.repoError("AddImages", id, err)
	}
	svc.Images = images

	s.logger.Info("AddImages: %d image(s) added to service=%d", len(uploaded), id)
	resp := models.FromDomainService(svc)
	return &resp, nil
}

// RemoveImage detaches url from the service and deletes the file
func (s *Service) RemoveImage(ctx context.Context, actor domain.Actor, id int64, url string) (*models.ServiceResponse, error) {
	svc, err := s.managed(ctx, "RemoveImage", actor, id)
	if err != nil {
		return nil, err
	}

	images := make([]string, 0, len(svc.Images))
	for _, img := range svc.Images {
		if img != url {
			images = append(images, img)
		}
	}
	if len(images) == len(svc.Images) {
		return nil, ErrImageNotFound
	}

	if err := s.repo.SetImages(ctx, id, images); err != nil {
		return nil, s.repoError("RemoveImage", id, err)
	}
	if err := s.images.Delete(ctx, url); err != nil {
		s.logger.Warn("RemoveImage: failed to delete %s: %v", url, err)
	}
	svc.Images = images

	resp := models.FromDomainService(svc)
	return &resp, nil
}

func (s *Service) discard(ctx context.Context, urls []string) {
	for _, url := range urls {
		if err := s.images.Delete(ctx, url); err != nil {
			s.logger.Warn("discard: failed to delete %s: %v", url, err)
		}
	}
}

func (s *Service) managed(ctx context.Context, method string, actor domain.Actor, id int64) (*domain.Service, error) {
	svc, err := s.get(ctx, method, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanManageProvider(svc.ProviderID) {
		s.logger.Warn("%s: user=%d cannot manage service=%d", method, actor.UserID, id)
		return nil, ErrAccessDenied
	}
	return svc, nil
}

func (s *Service) get(ctx context.Context, method string, id int64) (*domain.Service, error) {
	svc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.repoError(method, id, err)
	}
	return svc, nil
}

func (s *Service) repoError(method string, id int64, err error) error {
	if errors.Is(err, serviceRepo.ErrServiceNotFound) {
		s.logger.Warn("%s: service=%d not found", method, id)
		return ErrServiceNotFound
	}
	s.logger.Error("%s: repository error for service=%d: %v", method, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
}

func validate(svc *domain.Service) error {
	switch {
	case svc.Name == "":
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	case svc.PricePerDay <= 0:
		return fmt.Errorf("%w: pricePerDay must be positive", ErrInvalidInput)
	case svc.PricePerHour != nil && *svc.PricePerHour <= 0:
		return fmt.Errorf("%w: pricePerHour must be positive", ErrInvalidInput)
	}
	return nil
}
