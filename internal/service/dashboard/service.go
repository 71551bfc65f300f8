package dashboard

import (
	"context"
	"errors"
	"fmt"

	"github.com/agroboost/AgroBoost-RentalService/internal/domain"
)

var (
	ErrAccessDenied = errors.New("access denied")
	ErrInvalidInput = errors.New("invalid input data")
	ErrInternal     = errors.New("service: internal error")
)

// StatsResponse is the dashboard payload. UsersByRole is only filled for administrators.
type StatsResponse struct {
	Scope                string         `json:"scope"`
	UsersByRole          map[string]int `json:"usersByRole,omitempty"`
	ServicesTotal        int            `json:"servicesTotal"`
	ServicesAvailable    int            `json:"servicesAvailable"`
	BookingsTotal        int            `json:"bookingsTotal"`
	BookingsByStatus     map[string]int `json:"bookingsByStatus"`
	Revenue              float64        `json:"revenue"`
	MaintenancesByStatus map[string]int `json:"maintenancesByStatus"`
	UnreadNotifications  int            `json:"unreadNotifications"`
}

// Service computes dashboard figures and exports
type Service struct {
	userRepo         UserRepository
	serviceRepo      ServiceRepository
	bookingRepo      BookingRepository
	maintenanceRepo  MaintenanceRepository
	notificationRepo NotificationRepository
	logger           Logger
}

func NewService(
	userRepo UserRepository,
	serviceRepo ServiceRepository,
	bookingRepo BookingRepository,
	maintenanceRepo MaintenanceRepository,
	notificationRepo NotificationRepository,
	logger Logger,
) *Service {
	return &Service{
		userRepo:         userRepo,
		serviceRepo:      serviceRepo,
		bookingRepo:      bookingRepo,
		maintenanceRepo:  maintenanceRepo,
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

// Stats returns platform-wide figures to administrators and own figures to providers
func (s *Service) Stats(ctx context.Context, actor domain.Actor) (*StatsResponse, error) {
	scope, err := scopeFor(actor)
	if err != nil {
		return nil, err
	}

	stats, err := s.collect(ctx, actor, scope)
	if err != nil {
		s.logger.Error("Stats: user=%d: %v", actor.UserID, err)
		return nil, fmt.Errorf("%w: Stats - %v", ErrInternal, err)
	}

	resp := &StatsResponse{
		Scope:                "platform",
		ServicesTotal:        stats.ServicesTotal,
		ServicesAvailable:    stats.ServicesAvailable,
		BookingsTotal:        stats.BookingsTotal,
		BookingsByStatus:     make(map[string]int, len(stats.BookingsByStatus)),
		Revenue:              stats.Revenue,
		MaintenancesByStatus: make(map[string]int, len(stats.MaintenancesByStatus)),
		UnreadNotifications:  stats.UnreadNotifications,
	}
	if scope.ProviderID != nil {
		resp.Scope = "provider"
	}
	if stats.UsersByRole != nil {
		resp.UsersByRole = make(map[string]int, len(stats.UsersByRole))
		for role, n := range stats.UsersByRole {
			resp.UsersByRole[string(role)] = n
		}
	}
	for _, status := range domain.AllBookingStatuses {
		resp.BookingsByStatus[string(status)] = stats.BookingsByStatus[status]
	}
	for status, n := range stats.MaintenancesByStatus {
		resp.MaintenancesByStatus[string(status)] = n
	}
	return resp, nil
}

func (s *Service) collect(ctx context.Context, actor domain.Actor, scope domain.StatsScope) (*domain.DashboardStats, error) {
	var (
		stats domain.DashboardStats
		err   error
	)

	if scope.ProviderID == nil {
		if stats.UsersByRole, err = s.userRepo.CountByRole(ctx); err != nil {
			return nil, fmt.Errorf("count users: %w", err)
		}
	}
	if stats.ServicesTotal, stats.ServicesAvailable, err = s.serviceRepo.Count(ctx, scope.ProviderID); err != nil {
		return nil, fmt.Errorf("count services: %w", err)
	}
	if stats.BookingsByStatus, err = s.bookingRepo.CountByStatus(ctx, scope.ProviderID); err != nil {
		return nil, fmt.Errorf("count bookings: %w", err)
	}
	for _, n := range stats.BookingsByStatus {
		stats.BookingsTotal += n
	}
	if stats.Revenue, err = s.bookingRepo.Revenue(ctx, scope.ProviderID); err != nil {
		return nil, fmt.Errorf("revenue: %w", err)
	}
	if stats.MaintenancesByStatus, err = s.maintenanceRepo.CountByStatus(ctx, scope.ProviderID); err != nil {
		return nil, fmt.Errorf("count maintenances: %w", err)
	}
	if stats.UnreadNotifications, err = s.notificationRepo.CountUnread(ctx, &actor.UserID); err != nil {
		return nil, fmt.Errorf("count notifications: %w", err)
	}
	return &stats, nil
}

func scopeFor(actor domain.Actor) (domain.StatsScope, error) {
	switch {
	case actor.IsAdmin():
		return domain.StatsScope{}, nil
	case actor.IsProvider():
		return domain.StatsScope{ProviderID: &actor.UserID}, nil
	default:
		return domain.StatsScope{}, ErrAccessDenied
	}
}
