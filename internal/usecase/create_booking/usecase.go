package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/agroboost/AgroBoost-RentalService/internal/domain"
	serviceRepo "github.com/agroboost/AgroBoost-RentalService/internal/infra/storage/service"
	"github.com/agroboost/AgroBoost-RentalService/internal/service/bookings/models"
	"github.com/agroboost/AgroBoost-RentalService/pkg/types"
)

const msgPaymentNotStarted = "Votre réservation est enregistrée mais le paiement n'a pas pu être initié. Réessayez depuis vos réservations."

// UseCase creates a booking and starts its payment
type UseCase struct {
	bookingRepo     BookingRepository
	serviceRepo     ServiceRepository
	blockRepo       BlockRepository
	maintenanceRepo MaintenanceRepository
	settings        SettingsResolver
	payments        PaymentInitiator
	notifier        Notifier
	txManager       TransactionManager
	metrics         Metrics
	timeProvider    TimeProvider
	location        *time.Location
	logger          Logger
}

// NewUseCase builds the use case; location is the platform timezone that defines "today"
func NewUseCase(
	bookingRepo BookingRepository,
	serviceRepo ServiceRepository,
	blockRepo BlockRepository,
	maintenanceRepo MaintenanceRepository,
	settings SettingsResolver,
	payments PaymentInitiator,
	notifier Notifier,
	txManager TransactionManager,
	metrics Metrics,
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
		payments:        payments,
		notifier:        notifier,
		txManager:       txManager,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		location:        location,
		logger:          logger,
	}
}

// Execute validates the request, re-checks availability inside a serializable
// transaction, inserts the booking as pending/unpaid and initiates its payment.
// A payment that cannot start does not undo the booking: it comes back as an error outcome.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, service=%d, type=%s", req.UserID, req.ServiceID, req.Type)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now().In(uc.location)
	bookingReq := req.ToBookingRequest()

	flow := domain.NewSubmissionFlow()
	if err := flow.Validate(bookingReq, types.DateOf(now)); err != nil {
		uc.logger.Warn("CreateBooking: request rejected: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.IsAvailable {
		uc.logger.Warn("CreateBooking: service id=%d is disabled", service.ID)
		return nil, ErrServiceUnavailable
	}

	settings, err := uc.settings.Resolve(ctx, service.ProviderID, &service.ID)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to resolve settings of service id=%d: %v", service.ID, err)
		return nil, fmt.Errorf("%w: failed to resolve settings: %v", ErrInternal, err)
	}

	p, err := resolvePeriod(bookingReq, settings, now)
	if err != nil {
		uc.logger.Warn("CreateBooking: period rejected: %v", err)
		_ = flow.Fail(err)
		return nil, err
	}

	price := domain.CalculatePrice(bookingReq, service.Prices())
	if price.Duration < 1 {
		_ = flow.Fail(ErrInvalidInput)
		return nil, fmt.Errorf("%w: %w: the rental must last at least one unit", ErrInvalidInput, ErrInvalidDuration)
	}

	if err := flow.Submit(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	var created *domain.Booking
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		occupancy, err := uc.loadOccupancy(txCtx, service.ID, settings.Capacity, p.start, p.end)
		if err != nil {
			return err
		}

		if err := checkConflict(occupancy, bookingReq, p); err != nil {
			uc.logger.Warn("CreateBooking: service id=%d busy on %s..%s", service.ID, p.start, p.end)
			return err
		}

		booking := &domain.Booking{
			UserID:        req.UserID,
			ServiceID:     service.ID,
			ProviderID:    service.ProviderID,
			Type:          bookingReq.Type,
			StartDate:     p.start,
			EndDate:       p.end,
			Price:         price,
			Status:        domain.StatusPending,
			PaymentStatus: domain.PaymentStateUnpaid,
			ServiceName:   service.Name,
			Notes:         req.Notes,
		}
		if bookingReq.Type == domain.BookingTypeHourly {
			booking.StartTime = p.startTime
			booking.DurationHours = bookingReq.Duration
		}

		created, err = uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		_ = flow.Fail(err)
		return nil, err
	}

	uc.logger.Info("CreateBooking: created booking id=%d total=%.0f", created.ID, created.Price.TotalPrice)
	uc.metrics.IncBookingCreated(string(created.Type))
	uc.notifyProvider(ctx, created)

	outcome, err := uc.payments.ForBooking(ctx, created)
	if err != nil {
		uc.logger.Error("CreateBooking: payment of booking id=%d not started: %v", created.ID, err)
		outcome = domain.ErrorOutcome(msgPaymentNotStarted)
	}
	if err := flow.Succeed(created, outcome); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	return &Response{
		Booking: models.FromDomainBooking(flow.Booking()),
		Payment: flow.Outcome(),
	}, nil
}

func (uc *UseCase) loadOccupancy(ctx context.Context, serviceID int64, capacity int, from, to types.Date) (domain.Occupancy, error) {
	bookings, err := uc.bookingRepo.Find(ctx, domain.BookingsFilter{
		ServiceID: &serviceID,
		From:      &from,
		To:        &to,
	})
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
		return domain.Occupancy{}, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	blocks, err := uc.blockRepo.Find(ctx, serviceID, from, to)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get availability blocks: %v", err)
		return domain.Occupancy{}, fmt.Errorf("%w: failed to get availability blocks: %v", ErrInternal, err)
	}

	maintenances, err := uc.maintenanceRepo.FindBlocking(ctx, serviceID, from, to)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get maintenances: %v", err)
		return domain.Occupancy{}, fmt.Errorf("%w: failed to get maintenances: %v", ErrInternal, err)
	}

	return domain.Occupancy{
		Capacity:     capacity,
		Blocks:       blocks,
		Maintenances: maintenances,
		Bookings:     bookings,
	}, nil
}

func (uc *UseCase) notifyProvider(ctx context.Context, booking *domain.Booking) {
	if uc.notifier == nil {
		return
	}
	title := fmt.Sprintf("Nouvelle réservation #%d", booking.ID)
	message := fmt.Sprintf("« %s » est réservé du %s au %s pour %.0f %s.",
		booking.ServiceName, booking.StartDate, booking.EndDate, booking.Price.TotalPrice, domain.DefaultCurrency)
	if err := uc.notifier.Notify(ctx, booking.ProviderID, domain.NotificationBookingCreated, title, message); err != nil {
		uc.logger.Warn("CreateBooking: notify provider=%d of booking id=%d: %v", booking.ProviderID, booking.ID, err)
	}
}
