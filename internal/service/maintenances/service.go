package maintenances

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/agroboost/AgroBoost-RentalService/internal/domain"
	maintenanceRepo "github.com/agroboost/AgroBoost-RentalService/internal/infra/storage/maintenance"
	serviceRepo "github.com/agroboost/AgroBoost-RentalService/internal/infra/storage/service"
	"github.com/agroboost/AgroBoost-RentalService/internal/service/maintenances/models"
)

// Service manages maintenance periods. Scheduled and in-progress
// maintenances make the service unavailable for booking.
type Service struct {
	repo        MaintenanceRepository
	serviceRepo ServiceRepository
	logger      Logger
}

func NewService(repo MaintenanceRepository, serviceRepo ServiceRepository, logger Logger) *Service {
	return &Service{repo: repo, serviceRepo: serviceRepo, logger: logger}
}

// List returns every record to administrators and only their own to providers
func (s *Service) List(ctx context.Context, actor domain.Actor, req *models.ListMaintenancesRequest) (*models.MaintenanceListResponse, error) {
	filter := domain.MaintenanceFilter{ServiceID: req.ServiceID, Page: req.Page}
	switch {
	case actor.IsAdmin():
	case actor.IsProvider():
		filter.ProviderID = &actor.UserID
	default:
		return nil, ErrAccessDenied
	}

	if req.Status != nil {
		status := domain.MaintenanceStatus(*req.Status)
		if !status.Valid() {
			return nil, fmt.Errorf("%w: status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	list, total, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainMaintenanceList(list, req.Page, total), nil
}

func (s *Service) Get(ctx context.Context, actor domain.Actor, id int64) (*models.MaintenanceResponse, error) {
	m, err := s.managed(ctx, "Get", actor, id)
	if err != nil {
		return nil, err
	}
	resp := models.FromDomainMaintenance(m)
	return &resp, nil
}

func (s *Service) Create(ctx context.Context, actor domain.Actor, req *models.CreateMaintenanceRequest) (*models.MaintenanceResponse, error) {
	svc, err := s.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			return nil, ErrServiceNotFound
		}
		s.logger.Error("Create: service repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - service repository: %v", ErrInternal, err)
	}
	if !actor.CanManageProvider(svc.ProviderID) {
		s.logger.Warn("Create: user=%d cannot manage service=%d", actor.UserID, svc.ID)
		return nil, ErrAccessDenied
	}

	m := &domain.Maintenance{
		ServiceID:   svc.ID,
		ProviderID:  svc.ProviderID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Status:      domain.MaintenanceStatus(req.Status),
		Cost:        req.Cost,
	}
	if m.Status == "" {
		m.Status = domain.MaintenanceScheduled
	}
	if err := validate(m); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, m)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: maintenance=%d on service=%d from %s to %s", created.ID, svc.ID, m.StartDate, m.EndDate)
	resp := models.FromDomainMaintenance(created)
	return &resp, nil
}

func (s *Service) Update(ctx context.Context, actor domain.Actor, id int64, req *models.UpdateMaintenanceRequest) (*models.MaintenanceResponse, error) {
	m, err := s.managed(ctx, "Update", actor, id)
	if err != nil {
		return nil, err
	}

	req.ApplyTo(m)
	m.Title = strings.TrimSpace(m.Title)
	if err := validate(m); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, m); err != nil {
		return nil, s.repoError("Update", id, err)
	}

	s.logger.Info("Update: maintenance=%d now %s", id, m.Status)
	resp := models.FromDomainMaintenance(m)
	return &resp, nil
}

func (s *Service) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	if _, err := s.managed(ctx, "Delete", actor, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.repoError("Delete", id, err)
	}
	s.logger.Info("Delete: maintenance=%d deleted by user=%d", id, actor.UserID)
	return nil
}

func (s *Service) managed(ctx context.Context, method string, actor domain.Actor, id int64) (*domain.Maintenance, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.repoError(method, id, err)
	}
	if !actor.CanManageProvider(m.ProviderID) {
		s.logger.Warn("%s: user=%d denied access to maintenance=%d", method, actor.UserID, id)
		return nil, ErrAccessDenied
	}
	return m, nil
}

func (s *Service) repoError(method string, id int64, err error) error {
	if errors.Is(err, maintenanceRepo.ErrMaintenanceNotFound) {
		s.logger.Warn("%s: maintenance=%d not found", method, id)
		return ErrMaintenanceNotFound
	}
	s.logger.Error("%s: repository error for maintenance=%d: %v", method, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
}

func validate(m *domain.Maintenance) error {
	switch {
	case m.Title == "":
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	case !m.StartDate.Valid() || !m.EndDate.Valid():
		return fmt.Errorf("%w: dates must be YYYY-MM-DD", ErrInvalidInput)
	case m.EndDate.Before(m.StartDate):
		return fmt.Errorf("%w: endDate before startDate", ErrInvalidInput)
	case !m.Status.Valid():
		return fmt.Errorf("%w: status", ErrInvalidInput)
	case m.Cost < 0:
		return fmt.Errorf("%w: cost must not be negative", ErrInvalidInput)
	}
	return nil
}
