package availability

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/agroboost/AgroBoost-RentalService/internal/domain"
	availabilityRepo "github.com/agroboost/AgroBoost-RentalService/internal/infra/storage/availability"
	serviceRepo "github.com/agroboost/AgroBoost-RentalService/internal/infra/storage/service"
	"github.com/agroboost/AgroBoost-RentalService/pkg/types"
)

var (
	ErrBlockNotFound   = errors.New("availability block not found")
	ErrServiceNotFound = errors.New("service not found")
	ErrAccessDenied    = errors.New("access denied")
	ErrInvalidInput    = errors.New("invalid input data")
	ErrInternal        = errors.New("service: internal error")
)

const maxReasonLength = 500

type CreateBlockRequest struct {
	ServiceID int64      `json:"serviceId"`
	StartDate types.Date `json:"startDate"`
	EndDate   types.Date `json:"endDate"`
	Reason    string     `json:"reason"`
}

type BlockResponse struct {
	ID         int64     `json:"id"`
	ServiceID  int64     `json:"serviceId"`
	ProviderID int64     `json:"providerId"`
	StartDate  string    `json:"startDate"`
	EndDate    string    `json:"endDate"`
	Reason     string    `json:"reason"`
	CreatedAt  time.Time `json:"createdAt"`
}

func fromDomainBlock(b *domain.AvailabilityBlock) BlockResponse {
	return BlockResponse{
		ID:         b.ID,
		ServiceID:  b.ServiceID,
		ProviderID: b.ProviderID,
		StartDate:  b.StartDate.String(),
		EndDate:    b.EndDate.String(),
		Reason:     b.Reason,
		CreatedAt:  b.CreatedAt,
	}
}

// Service lets providers withdraw date ranges from rental
type Service struct {
	repo        BlockRepository
	serviceRepo ServiceRepository
	logger      Logger
}

func NewService(repo BlockRepository, serviceRepo ServiceRepository, logger Logger) *Service {
	return &Service{repo: repo, serviceRepo: serviceRepo, logger: logger}
}

func (s *Service) Create(ctx context.Context, actor domain.Actor, req *CreateBlockRequest) (*BlockResponse, error) {
	switch {
	case !req.StartDate.Valid() || !req.EndDate.Valid():
		return nil, fmt.Errorf("%w: dates must be YYYY-MM-DD", ErrInvalidInput)
	case req.EndDate.Before(req.StartDate):
		return nil, fmt.Errorf("%w: endDate before startDate", ErrInvalidInput)
	case len(req.Reason) > maxReasonLength:
		return nil, fmt.Errorf("%w: reason too long", ErrInvalidInput)
	}

	svc, err := s.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			return nil, ErrServiceNotFound
		}
		s.logger.Error("Create: service repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - service repository: %v", ErrInternal, err)
	}
	if !actor.CanManageProvider(svc.ProviderID) {
		s.logger.Warn("Create: user=%d cannot block service=%d", actor.UserID, svc.ID)
		return nil, ErrAccessDenied
	}

	created, err := s.repo.Create(ctx, &domain.AvailabilityBlock{
		ServiceID:  svc.ID,
		ProviderID: svc.ProviderID,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Reason:     strings.TrimSpace(req.Reason),
	})
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: block=%d on service=%d from %s to %s", created.ID, svc.ID, req.StartDate, req.EndDate)
	resp := fromDomainBlock(created)
	return &resp, nil
}

// List returns the blocks of a service, optionally restricted to [from, to]
func (s *Service) List(ctx context.Context, serviceID int64, from, to types.Date) ([]BlockResponse, error) {
	blocks, err := s.repo.Find(ctx, serviceID, from, to)
	if err != nil {
		s.logger.Error("List: repository error for service=%d: %v", serviceID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	resp := make([]BlockResponse, 0, len(blocks))
	for _, b := range blocks {
		resp = append(resp, fromDomainBlock(b))
	}
	return resp, nil
}

func (s *Service) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return s.repoError("Delete", id, err)
	}
	if !actor.CanManageProvider(b.ProviderID) {
		s.logger.Warn("Delete: user=%d denied access to block=%d", actor.UserID, id)
		return ErrAccessDenied
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.repoError("Delete", id, err)
	}
	s.logger.Info("Delete: block=%d removed", id)
	return nil
}

func (s *Service) repoError(method string, id int64, err error) error {
	if errors.Is(err, availabilityRepo.ErrBlockNotFound) {
		return ErrBlockNotFound
	}
	s.logger.Error("%s: repository error for block=%d: %v", method, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
}
