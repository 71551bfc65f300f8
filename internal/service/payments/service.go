package payments

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/url"

	"github.com/agroboost/AgroBoost-RentalService/internal/domain"
	bookingRepo "github.com/agroboost/AgroBoost-RentalService/internal/infra/storage/booking"
	paymentRepo "github.com/agroboost/AgroBoost-RentalService/internal/infra/storage/payment"
	"github.com/agroboost/AgroBoost-RentalService/internal/integrations/paytech"
	"github.com/agroboost/AgroBoost-RentalService/internal/service/payments/models"
	"github.com/agroboost/AgroBoost-RentalService/pkg/ptr"
)

// Service follows payments after checkout: IPN settlement, status and history
type Service struct {
	paymentRepo PaymentRepository
	bookingRepo BookingRepository
	verifier    IPNVerifier
	notifier    Notifier
	txManager   TransactionManager
	logger      Logger
}

func NewService(
	paymentRepo PaymentRepository,
	bookingRepo BookingRepository,
	verifier IPNVerifier,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		paymentRepo: paymentRepo,
		bookingRepo: bookingRepo,
		verifier:    verifier,
		notifier:    notifier,
		txManager:   txManager,
		logger:      logger,
	}
}

// HandleIPN settles a payment from a PayTech notification.
// Replayed notifications for a final payment are acknowledged without effect.
func (s *Service) HandleIPN(ctx context.Context, form url.Values) error {
	ipn := paytech.ParseIPN(form)
	s.logger.Info("HandleIPN: %s for ref=%s", ipn.TypeEvent, ipn.RefCommand)

	if s.verifier == nil {
		return fmt.Errorf("%w: notifications are disabled", ErrInvalidIPN)
	}
	if err := s.verifier.VerifyIPN(ipn); err != nil {
		s.logger.Warn("HandleIPN: rejected notification for ref=%s: %v", ipn.RefCommand, err)
		return fmt.Errorf("%w: %v", ErrInvalidIPN, err)
	}

	payment, err := s.paymentRepo.GetByReference(ctx, ipn.RefCommand)
	if err != nil {
		if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			s.logger.Warn("HandleIPN: unknown ref=%s", ipn.RefCommand)
			return ErrPaymentNotFound
		}
		s.logger.Error("HandleIPN: repository error: %v", err)
		return fmt.Errorf("%w: HandleIPN - repository error: %v", ErrInternal, err)
	}

	if payment.IsFinal() {
		s.logger.Info("HandleIPN: payment id=%d already %s, ignoring", payment.ID, payment.Status)
		return nil
	}
	if ipn.IsComplete() && ipn.ItemPrice <= 0 {
		s.logger.Warn("HandleIPN: completion without item_price for ref=%s", ipn.RefCommand)
		return fmt.Errorf("%w: missing amount", ErrInvalidIPN)
	}
	if ipn.IsComplete() && math.Abs(ipn.ItemPrice-payment.Amount) > 0.5 {
		s.logger.Warn("HandleIPN: amount mismatch for ref=%s: got %.2f want %.2f", ipn.RefCommand, ipn.ItemPrice, payment.Amount)
		return fmt.Errorf("%w: amount mismatch", ErrInvalidIPN)
	}

	var booking *domain.Booking
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err = s.bookingRepo.GetByID(txCtx, payment.BookingID)
		if err != nil {
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		if ipn.IsComplete() {
			if err := s.paymentRepo.UpdateStatus(txCtx, payment.ID, domain.PaymentCompleted); err != nil {
				return fmt.Errorf("%w: failed to complete payment: %v", ErrInternal, err)
			}
			var next *domain.BookingStatus
			if booking.Status == domain.StatusPending {
				next = ptr.Ptr(domain.StatusConfirmed)
			}
			if err := s.bookingRepo.UpdatePayment(txCtx, booking.ID, domain.PaymentStatePaid, next); err != nil {
				return fmt.Errorf("%w: failed to mark booking paid: %v", ErrInternal, err)
			}
			return nil
		}

		if err := s.paymentRepo.UpdateStatus(txCtx, payment.ID, domain.PaymentCancelled); err != nil {
			return fmt.Errorf("%w: failed to cancel payment: %v", ErrInternal, err)
		}
		if err := s.bookingRepo.UpdatePayment(txCtx, booking.ID, domain.PaymentStateFailed, nil); err != nil {
			return fmt.Errorf("%w: failed to mark booking unpaid: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("HandleIPN: settlement of ref=%s failed: %v", ipn.RefCommand, err)
		return err
	}

	if ipn.IsComplete() {
		s.logger.Info("HandleIPN: booking id=%d paid", booking.ID)
		s.notify(ctx, booking.UserID, "Paiement reçu",
			fmt.Sprintf("Votre paiement de %.0f %s pour « %s » a été reçu.", payment.Amount, payment.Currency, booking.ServiceName))
		s.notify(ctx, booking.ProviderID, "Réservation payée",
			fmt.Sprintf("La réservation #%d pour « %s » a été payée.", booking.ID, booking.ServiceName))
	} else {
		s.logger.Info("HandleIPN: payment of booking id=%d cancelled", booking.ID)
		s.notify(ctx, booking.UserID, "Paiement annulé",
			fmt.Sprintf("Le paiement de la réservation #%d n'a pas abouti. Vous pouvez réessayer.", booking.ID))
	}
	return nil
}

// GetBookingStatus returns the payment state of a booking and its last attempt
func (s *Service) GetBookingStatus(ctx context.Context, actor domain.Actor, bookingID int64) (*models.BookingPaymentStatusResponse, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetBookingStatus: booking repository error: %v", err)
		return nil, fmt.Errorf("%w: GetBookingStatus - booking repository: %v", ErrInternal, err)
	}
	if booking.UserID != actor.UserID && !actor.CanManageProvider(booking.ProviderID) {
		return nil, ErrAccessDenied
	}

	resp := &models.BookingPaymentStatusResponse{
		BookingID:     booking.ID,
		BookingStatus: string(booking.Status),
		PaymentStatus: string(booking.PaymentStatus),
		IsPaid:        booking.PaymentStatus.IsSettled(),
	}

	last, err := s.paymentRepo.GetLatestByBooking(ctx, bookingID)
	switch {
	case err == nil:
		p := models.FromDomainPayment(last)
		resp.LastPayment = &p
	case errors.Is(err, paymentRepo.ErrPaymentNotFound):
	default:
		s.logger.Error("GetBookingStatus: payment repository error: %v", err)
		return nil, fmt.Errorf("%w: GetBookingStatus - payment repository: %v", ErrInternal, err)
	}
	return resp, nil
}

// List returns every payment to administrators and their own to other users
func (s *Service) List(ctx context.Context, actor domain.Actor, req *models.ListPaymentsRequest) (*models.PaymentListResponse, error) {
	filter := domain.PaymentFilter{Page: req.Page}
	if !actor.IsAdmin() {
		filter.UserID = &actor.UserID
	}
	if req.Status != nil {
		status := domain.PaymentStatus(*req.Status)
		if !status.Valid() {
			return nil, fmt.Errorf("%w: status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	list, total, err := s.paymentRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainPaymentList(list, req.Page, total), nil
}

func (s *Service) notify(ctx context.Context, userID int64, title, message string) {
	if err := s.notifier.Notify(ctx, userID, domain.NotificationPayment, title, message); err != nil {
		s.logger.Warn("notify: user=%d: %v", userID, err)
	}
}
