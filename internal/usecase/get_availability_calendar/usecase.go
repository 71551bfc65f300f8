package get_availability_calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/agroboost/AgroBoost-RentalService/internal/domain"
	serviceRepo "github.com/agroboost/AgroBoost-RentalService/internal/infra/storage/service"
	"github.com/agroboost/AgroBoost-RentalService/pkg/types"
)

const (
	minYear = 2000
	maxYear = 2100
)

// UseCase builds the month view of a service's availability
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

// Execute returns the unavailable dates of the month, the reservations intersecting it
// and the day grid evaluated against today in the platform timezone
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	today := types.Today(uc.timeProvider.Now(), uc.location)
	if req.Year == 0 && req.Month == 0 {
		req.Year, req.Month = today.Year(), int(today.Month())
	}
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailabilityCalendar: validation failed: %v", err)
		return nil, err
	}

	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailabilityCalendar: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailabilityCalendar: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	settings, err := uc.settings.Resolve(ctx, service.ProviderID, &service.ID)
	if err != nil {
		uc.logger.Error("GetAvailabilityCalendar: failed to resolve settings of service id=%d: %v", service.ID, err)
		return nil, fmt.Errorf("%w: failed to resolve settings: %v", ErrInternal, err)
	}

	first, last := types.MonthRange(req.Year, time.Month(req.Month))
	occupancy, err := uc.loadOccupancy(ctx, service.ID, settings.Capacity, first, last)
	if err != nil {
		return nil, err
	}

	unavailable := occupancy.UnavailableDates(first, last)
	if !service.IsAvailable {
		unavailable = types.DaysInRange(first, last)
	}

	calendar := domain.NewCalendar(req.Year, time.Month(req.Month), today, unavailable,
		domain.Selection{Start: req.SelectedStart, End: req.SelectedEnd})
	if !req.Clicked.IsZero() && !calendar.Select(req.Clicked) {
		uc.logger.Warn("GetAvailabilityCalendar: click on disabled date %s ignored", req.Clicked)
	}

	booked := occupancy.BookingsInRange(first, last)
	reservations := make([]Reservation, 0, len(booked))
	for _, b := range booked {
		reservations = append(reservations, fromDomainBooking(b))
	}

	uc.logger.Info("GetAvailabilityCalendar: service=%d %04d-%02d: %d unavailable days, %d reservations",
		service.ID, req.Year, req.Month, len(unavailable), len(reservations))

	var selection *SelectionView
	if !calendar.Selection.Start.IsZero() {
		selection = &SelectionView{
			StartDate: calendar.Selection.Start,
			EndDate:   calendar.Selection.End,
			IsFree:    calendar.SelectionIsFree(),
		}
	}

	return &Response{
		ServiceID:        service.ID,
		Year:             req.Year,
		Month:            req.Month,
		Capacity:         settings.Capacity,
		UnavailableDates: unavailable,
		Reservations:     reservations,
		Days:             calendar.Days(),
		Selection:        selection,
	}, nil
}

func (uc *UseCase) loadOccupancy(ctx context.Context, serviceID int64, capacity int, from, to types.Date) (domain.Occupancy, error) {
	bookings, err := uc.bookingRepo.Find(ctx, domain.BookingsFilter{
		ServiceID: &serviceID,
		From:      &from,
		To:        &to,
	})
	if err != nil {
		uc.logger.Error("GetAvailabilityCalendar: failed to get bookings: %v", err)
		return domain.Occupancy{}, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	blocks, err := uc.blockRepo.Find(ctx, serviceID, from, to)
	if err != nil {
		uc.logger.Error("GetAvailabilityCalendar: failed to get availability blocks: %v", err)
		return domain.Occupancy{}, fmt.Errorf("%w: failed to get availability blocks: %v", ErrInternal, err)
	}

	maintenances, err := uc.maintenanceRepo.FindBlocking(ctx, serviceID, from, to)
	if err != nil {
		uc.logger.Error("GetAvailabilityCalendar: failed to get maintenances: %v", err)
		return domain.Occupancy{}, fmt.Errorf("%w: failed to get maintenances: %v", ErrInternal, err)
	}

	return domain.Occupancy{Capacity: capacity, Blocks: blocks, Maintenances: maintenances, Bookings: bookings}, nil
}

func validateRequest(req *Request) error {
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceId must be positive", ErrInvalidInput)
	}
	if req.Year < minYear || req.Year > maxYear {
		return fmt.Errorf("%w: year must be between %d and %d", ErrInvalidInput, minYear, maxYear)
	}
	if req.Month < 1 || req.Month > 12 {
		return fmt.Errorf("%w: month must be between 1 and 12", ErrInvalidInput)
	}
	if !req.SelectedStart.IsZero() && !req.SelectedStart.Valid() {
		return fmt.Errorf("%w: selectedStartDate must be YYYY-MM-DD", ErrInvalidInput)
	}
	if !req.SelectedEnd.IsZero() && !req.SelectedEnd.Valid() {
		return fmt.Errorf("%w: selectedEndDate must be YYYY-MM-DD", ErrInvalidInput)
	}
	return nil
}
