package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/agroboost/AgroBoost-RentalService/internal/domain"
	bookingRepo "github.com/agroboost/AgroBoost-RentalService/internal/infra/storage/booking"
	"github.com/agroboost/AgroBoost-RentalService/internal/service/bookings/models"
)

var statusLabels = map[domain.BookingStatus]string{
	domain.StatusPending:             "en attente",
	domain.StatusConfirmed:           "confirmée",
	domain.StatusInProgress:          "en cours",
	domain.StatusCompleted:           "terminée",
	domain.StatusCancelledByUser:     "annulée par le client",
	domain.StatusCancelledByProvider: "annulée par le prestataire",
	domain.StatusRejected:            "refusée",
}

// Service reads and updates existing bookings. Creation lives in the create_booking use case.
type Service struct {
	bookingRepo BookingRepository
	notifier    Notifier
	logger      Logger
}

func NewService(
	bookingRepo BookingRepository,
	notifier Notifier,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		notifier:    notifier,
		logger:      logger,
	}
}

// GetByID returns a booking visible to the actor: the renter, the provider or an administrator
func (s *Service) GetByID(ctx context.Context, id int64, actor domain.Actor) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, actor.UserID)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if !canView(booking, actor) {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", actor.UserID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// List returns the caller's bookings, or every booking for administrators
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("List: fetching bookings for user=%d role=%s", req.Actor.UserID, req.Actor.Role)

	filter := domain.BookingsFilter{
		ServiceID:       req.ServiceID,
		IncludeInactive: true,
		Page:            req.Page,
	}
	if !req.Actor.IsAdmin() {
		userID := req.Actor.UserID
		filter.UserID = &userID
	}
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("List: invalid status=%s for user=%d", *req.Status, req.Actor.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	bookings, total, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error for user=%d: %v", req.Actor.UserID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d of %d bookings for user=%d", len(bookings), total, req.Actor.UserID)
	return models.FromDomainBookingList(bookings, req.Page, total), nil
}

// GetProviderBookings lists bookings on a provider's equipment with optional filters.
// Only the provider itself and administrators may call it.
func (s *Service) GetProviderBookings(ctx context.Context, req *models.GetProviderBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := fmt.Sprintf("GetProviderBookings: fetching bookings for provider=%d, user=%d", req.ProviderID, req.Actor.UserID)
	if req.From != nil && req.To != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", *req.From, *req.To)
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	s.logger.Info(logMsg)

	if !req.Actor.CanManageProvider(req.ProviderID) {
		s.logger.Warn("GetProviderBookings: user=%d is not allowed on provider=%d", req.Actor.UserID, req.ProviderID)
		return nil, ErrAccessDenied
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetProviderBookings: invalid filter for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, total, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("GetProviderBookings: repository error for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: GetProviderBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetProviderBookings: fetched %d bookings for provider=%d", len(bookings), req.ProviderID)
	return models.FromDomainBookingList(bookings, req.Page, total), nil
}

// Cancel cancels a pending or confirmed booking.
// The renter cancels as cancelled_by_user, the provider or an administrator as cancelled_by_provider.
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, req.Actor.UserID)

	booking, err := s.getBooking(ctx, "Cancel", bookingID)
	if err != nil {
		return err
	}

	var cancelStatus domain.BookingStatus
	switch {
	case booking.UserID == req.Actor.UserID:
		cancelStatus = domain.StatusCancelledByUser
	case req.Actor.CanManageProvider(booking.ProviderID):
		cancelStatus = domain.StatusCancelledByProvider
	default:
		s.logger.Warn("Cancel: access denied for user=%d to cancel booking id=%d", req.Actor.UserID, bookingID)
		return ErrAccessDenied
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return ErrCannotCancel
	}

	if len(req.CancellationReason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: cancellation reason too long", ErrInvalidInput)
	}

	if err := s.bookingRepo.Cancel(ctx, bookingID, cancelStatus, req.CancellationReason); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found during cancellation", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// the other party learns about the cancellation
	recipient := booking.ProviderID
	if cancelStatus == domain.StatusCancelledByProvider {
		recipient = booking.UserID
	}
	s.notify(ctx, recipient, booking, cancelStatus)

	s.logger.Info("Cancel: successfully cancelled booking id=%d with status=%s", bookingID, cancelStatus)
	return nil
}

// UpdateStatus moves a booking along its lifecycle. Only the provider and administrators may do it.
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s by user=%d",
		bookingID, req.Status, req.Actor.UserID)

	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, bookingID)
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	booking, err := s.getBooking(ctx, "UpdateStatus", bookingID)
	if err != nil {
		return err
	}

	if !req.Actor.CanManageProvider(booking.ProviderID) {
		s.logger.Warn("UpdateStatus: user=%d cannot manage booking id=%d", req.Actor.UserID, bookingID)
		return ErrAccessDenied
	}

	if !booking.CanTransitionTo(newStatus) {
		s.logger.Warn("UpdateStatus: transition %s -> %s refused for booking id=%d", booking.Status, newStatus, bookingID)
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, newStatus)
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, newStatus); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateStatus: booking id=%d not found during update", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.notify(ctx, booking.UserID, booking, newStatus)

	s.logger.Info("UpdateStatus: successfully updated booking id=%d to status=%s", bookingID, newStatus)
	return nil
}

func (s *Service) getBooking(ctx context.Context, method string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", method, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", method, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
	}
	return booking, nil
}

// notify never fails the operation; a lost notification is only logged
func (s *Service) notify(ctx context.Context, userID int64, booking *domain.Booking, status domain.BookingStatus) {
	if s.notifier == nil {
		return
	}
	title := fmt.Sprintf("Réservation #%d %s", booking.ID, statusLabels[status])
	message := fmt.Sprintf("La réservation de « %s » du %s au %s est maintenant %s.",
		booking.ServiceName, booking.StartDate, booking.EndDate, statusLabels[status])
	if err := s.notifier.Notify(ctx, userID, domain.NotificationBookingStatus, title, message); err != nil {
		s.logger.Warn("notify: booking id=%d user=%d: %v", booking.ID, userID, err)
	}
}

func canView(booking *domain.Booking, actor domain.Actor) bool {
	return booking.UserID == actor.UserID || actor.CanManageProvider(booking.ProviderID)
}
