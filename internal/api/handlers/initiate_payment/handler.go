package initiate_payment

import (
	"errors"
	"net/http"

	"github.com/agroboost/AgroBoost-RentalService/internal/api/handlers"
	"github.com/agroboost/AgroBoost-RentalService/internal/api/middleware"
	initiatePayment "github.com/agroboost/AgroBoost-RentalService/internal/usecase/initiate_payment"
)

const (
	msgInvalidBookingID = "Identifiant de réservation invalide."
	msgNotFound         = "Réservation introuvable."
	msgForbidden        = "Vous ne pouvez payer que vos propres réservations."
	msgAlreadyPaid      = "Cette réservation est déjà payée."
	msgNotPayable       = "Cette réservation ne peut pas être payée."
)

// InitiatePaymentRequest HTTP request model
type InitiatePaymentRequest struct {
	BookingID int64 `json:"bookingId"`
}

type Handler struct {
	useCase InitiatePaymentUseCase
	logger  Logger
}

func NewHandler(useCase InitiatePaymentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/payments/initiate
// The body is always a discriminated outcome: redirect, simulated or error.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, handlers.MsgUnauthorized)
		return
	}

	var req InitiatePaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil || req.BookingID <= 0 {
		h.logger.Warn("POST /payments/initiate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	outcome, err := h.useCase.Execute(r.Context(), actor, req.BookingID)
	if err != nil {
		switch {
		case errors.Is(err, initiatePayment.ErrBookingNotFound):
			h.logger.Warn("POST /payments/initiate - Booking not found: booking_id=%d", req.BookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, initiatePayment.ErrAccessDenied):
			h.logger.Warn("POST /payments/initiate - Access denied: booking_id=%d, user_id=%d",
				req.BookingID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, initiatePayment.ErrAlreadyPaid):
			h.logger.Warn("POST /payments/initiate - Already paid: booking_id=%d", req.BookingID)
			handlers.RespondConflict(w, msgAlreadyPaid)

		case errors.Is(err, initiatePayment.ErrNotPayable):
			h.logger.Warn("POST /payments/initiate - Not payable: booking_id=%d", req.BookingID)
			handlers.RespondBadRequest(w, msgNotPayable)

		default:
			h.logger.Error("POST /payments/initiate - Failed to initiate payment: booking_id=%d, error=%v",
				req.BookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /payments/initiate - Payment initiated: booking_id=%d, outcome=%s", req.BookingID, outcome.Status)
	handlers.RespondData(w, http.StatusOK, outcome)
}
