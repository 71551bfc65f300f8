package create_booking

import (
	"errors"
	"net/http"

	"github.com/agroboost/AgroBoost-RentalService/internal/api/handlers"
	"github.com/agroboost/AgroBoost-RentalService/internal/api/middleware"
	"github.com/agroboost/AgroBoost-RentalService/internal/domain"
	createBooking "github.com/agroboost/AgroBoost-RentalService/internal/usecase/create_booking"
)

const (
	msgInvalidBookingType = "Type de réservation invalide (daily ou hourly)."
	msgInvalidStartDate   = "La date de début est invalide."
	msgInvalidEndDate     = "La date de fin est invalide."
	msgStartDateInPast    = "La date de début ne peut pas être dans le passé."
	msgEndBeforeStart     = "La date de fin doit être postérieure ou égale à la date de début."
	msgMissingBookingDate = "La date de réservation est requise."
	msgMissingStartTime   = "L'heure de début est requise."
	msgInvalidDuration    = "La durée doit être comprise entre 1 et 24 heures."
	msgInvalidInput       = "Les données de réservation sont invalides."
	msgServiceNotFound    = "Service introuvable."
	msgServiceUnavailable = "Ce service n'est pas disponible à la location."
	msgDateTooFar         = "Cette date est trop éloignée pour être réservée."
	msgOutsideHours       = "La période choisie est en dehors des horaires d'ouverture."
	msgTooLateToBook      = "Il est trop tard pour réserver ce créneau."
	msgConflict           = "Certaines dates sélectionnées ne sont plus disponibles."
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, handlers.MsgUnauthorized)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(userID))
	if err != nil {
		var conflict *createBooking.ConflictError
		switch {
		case errors.As(err, &conflict):
			h.logger.Warn("POST /bookings - Conflict: user_id=%d, service_id=%d, dates=%v",
				userID, req.ServiceID, conflict.Dates)
			handlers.RespondJSON(w, http.StatusConflict, ConflictResponse{
				Code:             handlers.CodeConflict,
				Message:          msgConflict,
				UnavailableDates: dateStrings(conflict.Dates),
			})

		case errors.Is(err, createBooking.ErrConflict):
			h.logger.Warn("POST /bookings - Conflict: user_id=%d, service_id=%d", userID, req.ServiceID)
			handlers.RespondConflict(w, msgConflict)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrServiceUnavailable):
			h.logger.Warn("POST /bookings - Service disabled: service_id=%d", req.ServiceID)
			handlers.RespondBadRequest(w, msgServiceUnavailable)

		case errors.Is(err, createBooking.ErrDateTooFarInFuture):
			h.logger.Warn("POST /bookings - Date too far in future: user_id=%d, service_id=%d", userID, req.ServiceID)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createBooking.ErrOutsideOpeningHours):
			h.logger.Warn("POST /bookings - Outside opening hours: user_id=%d, service_id=%d", userID, req.ServiceID)
			handlers.RespondBadRequest(w, msgOutsideHours)

		case errors.Is(err, createBooking.ErrTooLateToBook):
			h.logger.Warn("POST /bookings - Too late to book: user_id=%d, service_id=%d", userID, req.ServiceID)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, validationMessage(err))

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, service_id=%d, error=%v",
				userID, req.ServiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: booking_id=%d, user_id=%d, payment=%s",
		result.Booking.ID, userID, result.Payment.Status)
	handlers.RespondData(w, http.StatusCreated, result)
}

func validationMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidBookingType):
		return msgInvalidBookingType
	case errors.Is(err, domain.ErrInvalidStartDate):
		return msgInvalidStartDate
	case errors.Is(err, domain.ErrInvalidEndDate):
		return msgInvalidEndDate
	case errors.Is(err, domain.ErrStartDateInPast):
		return msgStartDateInPast
	case errors.Is(err, domain.ErrEndBeforeStart):
		return msgEndBeforeStart
	case errors.Is(err, domain.ErrMissingBookingDate):
		return msgMissingBookingDate
	case errors.Is(err, domain.ErrMissingStartTime):
		return msgMissingStartTime
	case errors.Is(err, createBooking.ErrInvalidDuration):
		return msgInvalidDuration
	default:
		return msgInvalidInput
	}
}
