package get_available_hours

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/agroboost/AgroBoost-RentalService/internal/domain"
	serviceRepo "github.com/agroboost/AgroBoost-RentalService/internal/infra/storage/service"
	"github.com/agroboost/AgroBoost-RentalService/pkg/types"
)

// UseCase lists the hourly slots of a service for one day
type UseCase struct {
	bookingRepo     BookingRepository
	serviceRepo     ServiceRepository
	blockRepo       BlockRepository
	maintenanceRepo MaintenanceRepository
	settings        SettingsResolver
	timeProvider    TimeProvider
	location        *time.Location
	logger          Logger
}

func NewUseCase(
	bookingRepo BookingRepository,
	serviceRepo ServiceRepository,
	blockRepo BlockRepository,
	maintenanceRepo MaintenanceRepository,
	settings SettingsResolver,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		bookingRepo:     bookingRepo,
		serviceRepo:     serviceRepo,
		blockRepo:       blockRepo,
		maintenanceRepo: maintenanceRepo,
		settings:        settings,
		timeProvider:    &RealTimeProvider{},
		location:        location,
		logger:          logger,
	}
}

func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableHours: service=%d, date=%s", req.ServiceID, req.Date)

	if req.ServiceID <= 0 {
		return nil, fmt.Errorf("%w: serviceId must be positive", ErrInvalidInput)
	}
	if !req.Date.Valid() {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}

	now := uc.timeProvider.Now().In(uc.location)

	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableHours: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableHours: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	settings, err := uc.settings.Resolve(ctx, service.ProviderID, &service.ID)
	if err != nil {
		uc.logger.Error("GetAvailableHours: failed to resolve settings of service id=%d: %v", service.ID, err)
		return nil, fmt.Errorf("%w: failed to resolve settings: %v", ErrInternal, err)
	}

	latest := settings.LatestBookableDate(types.DateOf(now))
	if !latest.IsZero() && req.Date.After(latest) {
		uc.logger.Warn("GetAvailableHours: date %s beyond %s", req.Date, latest)
		return nil, fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, settings.AdvanceBookingDays)
	}

	resp := &Response{
		ServiceID: service.ID,
		Date:      req.Date,
		OpenTime:  settings.OpenTime,
		CloseTime: settings.CloseTime,
		Slots:     []Slot{},
	}
	if !service.IsAvailable {
		return resp, nil
	}

	hours, err := generateHours(settings, req.Date, now)
	if err != nil {
		uc.logger.Error("GetAvailableHours: failed to generate hours: %v", err)
		return nil, fmt.Errorf("%w: failed to generate hours: %v", ErrInternal, err)
	}
	if len(hours) == 0 {
		return resp, nil
	}

	occupancy, err := uc.loadOccupancy(ctx, service.ID, settings.Capacity, req.Date)
	if err != nil {
		return nil, err
	}

	for _, slot := range countFreeUnits(hours, req.Date, occupancy, settings.Capacity) {
		resp.Slots = append(resp.Slots, fromDomainSlot(slot))
	}

	uc.logger.Info("GetAvailableHours: generated %d slots for service=%d, date=%s", len(resp.Slots), service.ID, req.Date)
	return resp, nil
}

func (uc *UseCase) loadOccupancy(ctx context.Context, serviceID int64, capacity int, date types.Date) (domain.Occupancy, error) {
	bookings, err := uc.bookingRepo.Find(ctx, domain.BookingsFilter{
		ServiceID: &serviceID,
		From:      &date,
		To:        &date,
	})
	if err != nil {
		uc.logger.Error("GetAvailableHours: failed to get bookings: %v", err)
		return domain.Occupancy{}, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	blocks, err := uc.blockRepo.Find(ctx, serviceID, date, date)
	if err != nil {
		uc.logger.Error("GetAvailableHours: failed to get availability blocks: %v", err)
		return domain.Occupancy{}, fmt.Errorf("%w: failed to get availability blocks: %v", ErrInternal, err)
	}

	maintenances, err := uc.maintenanceRepo.FindBlocking(ctx, serviceID, date, date)
	if err != nil {
		uc.logger.Error("GetAvailableHours: failed to get maintenances: %v", err)
		return domain.Occupancy{}, fmt.Errorf("%w: failed to get maintenances: %v", ErrInternal, err)
	}

	return domain.Occupancy{Capacity: capacity, Blocks: blocks, Maintenances: maintenances, Bookings: bookings}, nil
}
