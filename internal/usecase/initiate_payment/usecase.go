package initiate_payment

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/agroboost/AgroBoost-RentalService/internal/domain"
	bookingRepo "github.com/agroboost/AgroBoost-RentalService/internal/infra/storage/booking"
	"github.com/agroboost/AgroBoost-RentalService/internal/integrations/paytech"
	"github.com/agroboost/AgroBoost-RentalService/pkg/ptr"
)

// Mode selects how payments are processed
type Mode string

const (
	ModeLive      Mode = "live"
	ModeTest      Mode = "test"
	ModeSimulated Mode = "simulated"
)

// ParseMode validates a configured mode
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeLive, ModeTest, ModeSimulated:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown payment mode %q", s)
}

const msgGatewayUnavailable = "Le paiement n'a pas pu être initié. Vous pouvez réessayer depuis vos réservations."

// UseCase starts the payment of a booking and reports an explicit outcome
type UseCase struct {
	bookingRepo BookingRepository
	paymentRepo PaymentRepository
	gateway     Gateway
	mode        Mode
	currency    string
	txManager   TransactionManager
	metrics     Metrics
	logger      Logger
}

// NewUseCase builds the use case. gateway may be nil in simulated mode.
func NewUseCase(
	bookingRepo BookingRepository,
	paymentRepo PaymentRepository,
	gateway Gateway,
	mode Mode,
	currency string,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	if currency == "" {
		currency = domain.DefaultCurrency
	}
	return &UseCase{
		bookingRepo: bookingRepo,
		paymentRepo: paymentRepo,
		gateway:     gateway,
		mode:        mode,
		currency:    currency,
		txManager:   txManager,
		metrics:     metrics,
		logger:      logger,
	}
}

// Execute loads the booking, checks that actor may pay it and initiates the payment
func (uc *UseCase) Execute(ctx context.Context, actor domain.Actor, bookingID int64) (domain.PaymentOutcome, error) {
	booking, err := uc.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("InitiatePayment: booking id=%d not found", bookingID)
			return domain.PaymentOutcome{}, ErrBookingNotFound
		}
		uc.logger.Error("InitiatePayment: failed to get booking id=%d: %v", bookingID, err)
		return domain.PaymentOutcome{}, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	if booking.UserID != actor.UserID && !actor.IsAdmin() {
		uc.logger.Warn("InitiatePayment: user=%d cannot pay booking id=%d", actor.UserID, bookingID)
		return domain.PaymentOutcome{}, ErrAccessDenied
	}

	return uc.ForBooking(ctx, booking)
}

// ForBooking initiates the payment of an already loaded booking.
// Gateway failures are not errors: they come back as an error outcome.
func (uc *UseCase) ForBooking(ctx context.Context, booking *domain.Booking) (domain.PaymentOutcome, error) {
	if booking.PaymentStatus.IsSettled() {
		return domain.PaymentOutcome{}, ErrAlreadyPaid
	}
	if !booking.CanBeCancelled() {
		uc.logger.Warn("InitiatePayment: booking id=%d in status %s is not payable", booking.ID, booking.Status)
		return domain.PaymentOutcome{}, ErrNotPayable
	}

	uc.logger.Info("InitiatePayment: booking id=%d amount=%.0f %s mode=%s",
		booking.ID, booking.Price.TotalPrice, uc.currency, uc.mode)

	var (
		outcome domain.PaymentOutcome
		err     error
	)
	if uc.mode == ModeSimulated || uc.gateway == nil {
		outcome, err = uc.simulate(ctx, booking)
	} else {
		outcome, err = uc.checkout(ctx, booking)
	}
	if err != nil {
		return domain.PaymentOutcome{}, err
	}

	uc.metrics.IncPaymentOutcome(string(outcome.Status))
	return outcome, nil
}

// simulate settles the booking at once without calling the gateway
func (uc *UseCase) simulate(ctx context.Context, booking *domain.Booking) (domain.PaymentOutcome, error) {
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		if _, err := uc.paymentRepo.Create(txCtx, uc.newPayment(booking, domain.PaymentSimulated)); err != nil {
			return fmt.Errorf("%w: failed to create payment: %v", ErrInternal, err)
		}
		if err := uc.bookingRepo.UpdatePayment(txCtx, booking.ID, domain.PaymentStateSimulated, ptr.Ptr(domain.StatusConfirmed)); err != nil {
			return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		uc.logger.Error("InitiatePayment: simulated payment of booking id=%d failed: %v", booking.ID, err)
		return domain.PaymentOutcome{}, err
	}

	booking.PaymentStatus = domain.PaymentStateSimulated
	booking.Status = domain.StatusConfirmed
	uc.logger.Info("InitiatePayment: booking id=%d settled in simulated mode", booking.ID)
	return domain.SimulatedOutcome(), nil
}

func (uc *UseCase) checkout(ctx context.Context, booking *domain.Booking) (domain.PaymentOutcome, error) {
	payment, err := uc.paymentRepo.Create(ctx, uc.newPayment(booking, domain.PaymentPending))
	if err != nil {
		uc.logger.Error("InitiatePayment: failed to create payment for booking id=%d: %v", booking.ID, err)
		return domain.PaymentOutcome{}, fmt.Errorf("%w: failed to create payment: %v", ErrInternal, err)
	}

	resp, err := uc.gateway.RequestPayment(ctx, paytech.PaymentRequest{
		ItemName:    booking.ServiceName,
		ItemPrice:   booking.Price.TotalPrice,
		Currency:    uc.currency,
		RefCommand:  payment.Reference,
		CommandName: fmt.Sprintf("Réservation #%d - %s", booking.ID, booking.ServiceName),
		CustomField: strconv.FormatInt(booking.ID, 10),
	})
	if err != nil {
		uc.logger.Error("InitiatePayment: gateway rejected payment ref=%s: %v", payment.Reference, err)
		uc.markFailed(ctx, booking.ID, payment.ID)
		return domain.ErrorOutcome(msgGatewayUnavailable), nil
	}

	if err := uc.paymentRepo.SetCheckout(ctx, payment.ID, resp.Token, resp.RedirectURL); err != nil {
		uc.logger.Error("InitiatePayment: failed to store checkout of payment id=%d: %v", payment.ID, err)
		return domain.PaymentOutcome{}, fmt.Errorf("%w: failed to store checkout: %v", ErrInternal, err)
	}
	if err := uc.bookingRepo.UpdatePayment(ctx, booking.ID, domain.PaymentStatePending, nil); err != nil {
		uc.logger.Error("InitiatePayment: failed to mark booking id=%d pending: %v", booking.ID, err)
		return domain.PaymentOutcome{}, fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
	}

	booking.PaymentStatus = domain.PaymentStatePending
	uc.logger.Info("InitiatePayment: booking id=%d redirected to checkout ref=%s", booking.ID, payment.Reference)
	return domain.RedirectOutcome(resp.RedirectURL), nil
}

func (uc *UseCase) markFailed(ctx context.Context, bookingID, paymentID int64) {
	if err := uc.paymentRepo.UpdateStatus(ctx, paymentID, domain.PaymentFailed); err != nil {
		uc.logger.Error("InitiatePayment: failed to mark payment id=%d failed: %v", paymentID, err)
	}
	if err := uc.bookingRepo.UpdatePayment(ctx, bookingID, domain.PaymentStateFailed, nil); err != nil {
		uc.logger.Error("InitiatePayment: failed to mark booking id=%d payment failed: %v", bookingID, err)
	}
}

func (uc *UseCase) newPayment(booking *domain.Booking, status domain.PaymentStatus) *domain.Payment {
	return &domain.Payment{
		BookingID: booking.ID,
		UserID:    booking.UserID,
		Reference: uuid.NewString(),
		Amount:    booking.Price.TotalPrice,
		Currency:  uc.currency,
		Status:    status,
	}
}
