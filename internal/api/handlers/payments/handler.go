package payments

import (
	"errors"
	"net/http"

	"github.com/agroboost/AgroBoost-RentalService/internal/api/handlers"
	"github.com/agroboost/AgroBoost-RentalService/internal/api/middleware"
	"github.com/agroboost/AgroBoost-RentalService/internal/service/payments"
	"github.com/agroboost/AgroBoost-RentalService/internal/service/payments/models"
)

const (
	msgInvalidBookingID = "Identifiant de réservation invalide."
	msgBookingNotFound  = "Réservation introuvable."
	msgPaymentNotFound  = "Paiement introuvable."
	msgInvalidIPN       = "Notification de paiement invalide."
	msgForbidden        = "Vous n'avez pas accès à ce paiement."
	msgInvalidStatus    = "Statut de paiement invalide."
)

const maxIPNBytes = 64 << 10

// Handler serves the /payments routes other than initiation
type Handler struct {
	service PaymentService
	logger  Logger
}

func NewHandler(service PaymentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// IPN POST /api/v1/payments/ipn
// Called by PayTech with a form body; authenticity comes from the hashed credentials.
func (h *Handler) IPN(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxIPNBytes)
	if err := r.ParseForm(); err != nil {
		h.logger.Warn("POST /payments/ipn - Invalid form: %v", err)
		handlers.RespondBadRequest(w, msgInvalidIPN)
		return
	}

	if err := h.service.HandleIPN(r.Context(), r.PostForm); err != nil {
		switch {
		case errors.Is(err, payments.ErrPaymentNotFound):
			h.logger.Warn("POST /payments/ipn - Unknown payment reference")
			handlers.RespondNotFound(w, msgPaymentNotFound)

		case errors.Is(err, payments.ErrInvalidIPN):
			h.logger.Warn("POST /payments/ipn - Rejected: %v", err)
			handlers.RespondForbidden(w, msgInvalidIPN)

		default:
			h.logger.Error("POST /payments/ipn - Failed to process notification: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondData(w, http.StatusOK, map[string]bool{"received": true})
}

// BookingStatus GET /api/v1/payments/bookings/{bookingId}/status
func (h *Handler) BookingStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, handlers.MsgUnauthorized)
		return
	}

	bookingID, err := handlers.PathID(r, "bookingId")
	if err != nil {
		h.logger.Warn("GET /payments/bookings/{id}/status - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	result, err := h.service.GetBookingStatus(r.Context(), actor, bookingID)
	if err != nil {
		switch {
		case errors.Is(err, payments.ErrBookingNotFound):
			h.logger.Warn("GET /payments/bookings/{id}/status - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, payments.ErrAccessDenied):
			h.logger.Warn("GET /payments/bookings/{id}/status - Access denied: booking_id=%d, user_id=%d",
				bookingID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /payments/bookings/{id}/status - Failed: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondData(w, http.StatusOK, result)
}

// List GET /api/v1/payments?status=&page=&limit=
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, handlers.MsgUnauthorized)
		return
	}

	page, err := handlers.ParsePage(r)
	if err != nil {
		h.logger.Warn("GET /payments - Invalid pagination: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidParams)
		return
	}

	result, err := h.service.List(r.Context(), actor, &models.ListPaymentsRequest{
		Status: handlers.QueryString(r, "status"),
		Page:   page,
	})
	if err != nil {
		switch {
		case errors.Is(err, payments.ErrAccessDenied):
			h.logger.Warn("GET /payments - Access denied: user_id=%d", actor.UserID)
			handlers.RespondForbidden(w, handlers.MsgForbidden)

		case errors.Is(err, payments.ErrInvalidInput):
			h.logger.Warn("GET /payments - Invalid status: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /payments - Failed to list payments: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondList(w, result.Payments, result.Page, result.Limit, result.Total)
}
