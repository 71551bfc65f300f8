package providers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/agroboost/AgroBoost-RentalService/internal/domain"
	userRepo "github.com/agroboost/AgroBoost-RentalService/internal/infra/storage/user"
	catalogModels "github.com/agroboost/AgroBoost-RentalService/internal/service/catalog/models"
)

var (
	ErrProviderNotFound = errors.New("provider not found")
	ErrInternal         = errors.New("service: internal error")
)

// ProviderResponse is the public view of a prestataire
type ProviderResponse struct {
	ID        int64                           `json:"id"`
	FullName  string                          `json:"fullName"`
	Email     string                          `json:"email"`
	Phone     string                          `json:"phone"`
	Address   string                          `json:"address"`
	CreatedAt time.Time                       `json:"createdAt"`
	Services  []catalogModels.ServiceResponse `json:"services,omitempty"`
}

type ProviderListResponse struct {
	Providers []ProviderResponse
	Page      int
	Limit     int
	Total     int
}

// Service exposes the public provider directory
type Service struct {
	userRepo    UserRepository
	serviceRepo ServiceRepository
	logger      Logger
}

func NewService(userRepo UserRepository, serviceRepo ServiceRepository, logger Logger) *Service {
	return &Service{userRepo: userRepo, serviceRepo: serviceRepo, logger: logger}
}

func (s *Service) List(ctx context.Context, search string, page domain.Page) (*ProviderListResponse, error) {
	role := domain.RoleProvider
	users, total, err := s.userRepo.List(ctx, domain.UserFilter{Role: &role, Search: search, Page: page})
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	page = page.Normalize()
	resp := &ProviderListResponse{
		Providers: make([]ProviderResponse, 0, len(users)),
		Page:      page.Page,
		Limit:     page.Limit,
		Total:     total,
	}
	for _, u := range users {
		resp.Providers = append(resp.Providers, fromDomainUser(u))
	}
	return resp, nil
}

// Get returns a provider with its catalog
func (s *Service) Get(ctx context.Context, id int64) (*ProviderResponse, error) {
	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, ErrProviderNotFound
		}
		s.logger.Error("Get: user repository error for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}
	if !u.IsProvider() || !u.IsActive {
		s.logger.Warn("Get: user=%d is not an active provider", id)
		return nil, ErrProviderNotFound
	}

	services, _, err := s.serviceRepo.List(ctx, domain.ServiceFilter{
		ProviderID: &id,
		Page:       domain.Page{Page: 1, Limit: domain.MaxPageLimit},
	})
	if err != nil {
		s.logger.Error("Get: service repository error for provider=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Get - service repository: %v", ErrInternal, err)
	}

	resp := fromDomainUser(u)
	resp.Services = make([]catalogModels.ServiceResponse, 0, len(services))
	for _, svc := range services {
		resp.Services = append(resp.Services, catalogModels.FromDomainService(svc))
	}
	return &resp, nil
}

func fromDomainUser(u *domain.User) ProviderResponse {
	return ProviderResponse{
		ID:        u.ID,
		FullName:  u.FullName(),
		Email:     u.Email,
		Phone:     u.Phone,
		Address:   u.Address,
		CreatedAt: u.CreatedAt,
	}
}
