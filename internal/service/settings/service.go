package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/agroboost/AgroBoost-RentalService/internal/domain"
	serviceRepo "github.com/agroboost/AgroBoost-RentalService/internal/infra/storage/service"
	settingsRepo "github.com/agroboost/AgroBoost-RentalService/internal/infra/storage/settings"
	"github.com/agroboost/AgroBoost-RentalService/internal/service/settings/models"
)

// Service manages provider rental settings
type Service struct {
	settingsRepo SettingsRepository
	serviceRepo  ServiceRepository
	logger       Logger
}

func NewService(settingsRepo SettingsRepository, serviceRepo ServiceRepository, logger Logger) *Service {
	return &Service{
		settingsRepo: settingsRepo,
		serviceRepo:  serviceRepo,
		logger:       logger,
	}
}

// Resolve returns the settings in force for a service.
// Priority: service-specific > provider-wide > defaults.
func (s *Service) Resolve(ctx context.Context, providerID int64, serviceID *int64) (*domain.ProviderSettings, error) {
	settings, err := s.settingsRepo.Resolve(ctx, providerID, serviceID)
	if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
		s.logger.Info("Resolve: no settings stored for provider=%d service=%v, using defaults", providerID, serviceID)
		return domain.DefaultSettings(providerID), nil
	}
	if err != nil {
		s.logger.Error("Resolve: repository error for provider=%d: %v", providerID, err)
		return nil, fmt.Errorf("%w: Resolve - repository error: %v", ErrInternal, err)
	}
	return settings, nil
}

// GetProviderSettings returns the provider-wide settings (or defaults) and every service override
func (s *Service) GetProviderSettings(ctx context.Context, providerID int64) (*models.ProviderSettingsResponse, error) {
	s.logger.Info("GetProviderSettings: fetching settings for provider=%d", providerID)

	all, err := s.settingsRepo.ListByProvider(ctx, providerID)
	if err != nil {
		s.logger.Error("GetProviderSettings: repository error for provider=%d: %v", providerID, err)
		return nil, fmt.Errorf("%w: GetProviderSettings - repository error: %v", ErrInternal, err)
	}

	resp := &models.ProviderSettingsResponse{
		ProviderWide: models.FromDomainSettings(domain.DefaultSettings(providerID)),
		Services:     make([]models.SettingsResponse, 0, len(all)),
	}
	for _, settings := range all {
		if settings.IsProviderWide() {
			resp.ProviderWide = models.FromDomainSettings(settings)
			continue
		}
		resp.Services = append(resp.Services, models.FromDomainSettings(settings))
	}

	s.logger.Info("GetProviderSettings: provider=%d has %d service overrides", providerID, len(resp.Services))
	return resp, nil
}

// Update stores settings at the request's scope. Only the provider and administrators may do it.
func (s *Service) Update(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("Update: provider=%d service=%v by user=%d", req.ProviderID, req.ServiceID, req.Actor.UserID)

	if !req.Actor.CanManageProvider(req.ProviderID) {
		s.logger.Warn("Update: user=%d cannot manage provider=%d", req.Actor.UserID, req.ProviderID)
		return nil, ErrAccessDenied
	}

	settings, err := req.ToDomainSettings()
	if err != nil {
		s.logger.Warn("Update: invalid time window: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := settings.Validate(); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if req.ServiceID != nil {
		if err := s.checkServiceOwnership(ctx, req.ProviderID, *req.ServiceID); err != nil {
			return nil, err
		}
	}

	saved, err := s.settingsRepo.Upsert(ctx, settings)
	if err != nil {
		s.logger.Error("Update: repository error: %v", err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: saved settings id=%d for provider=%d", saved.ID, req.ProviderID)
	resp := models.FromDomainSettings(saved)
	return &resp, nil
}

// Delete removes the settings at a scope so that the next level applies again
func (s *Service) Delete(ctx context.Context, actor domain.Actor, providerID int64, serviceID *int64) error {
	s.logger.Info("Delete: provider=%d service=%v by user=%d", providerID, serviceID, actor.UserID)

	if !actor.CanManageProvider(providerID) {
		s.logger.Warn("Delete: user=%d cannot manage provider=%d", actor.UserID, providerID)
		return ErrAccessDenied
	}

	if err := s.settingsRepo.Delete(ctx, providerID, serviceID); err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			s.logger.Warn("Delete: nothing stored for provider=%d service=%v", providerID, serviceID)
			return ErrSettingsNotFound
		}
		s.logger.Error("Delete: repository error: %v", err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: removed settings for provider=%d service=%v", providerID, serviceID)
	return nil
}

func (s *Service) checkServiceOwnership(ctx context.Context, providerID, serviceID int64) error {
	service, err := s.serviceRepo.GetByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			s.logger.Warn("checkServiceOwnership: service id=%d not found", serviceID)
			return ErrServiceNotFound
		}
		s.logger.Error("checkServiceOwnership: failed to get service id=%d: %v", serviceID, err)
		return fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if service.ProviderID != providerID {
		s.logger.Warn("checkServiceOwnership: service id=%d belongs to provider=%d, not %d", serviceID, service.ProviderID, providerID)
		return ErrServiceNotFound
	}
	return nil
}
