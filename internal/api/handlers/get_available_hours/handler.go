package get_available_hours

import (
	"errors"
	"net/http"

	"github.com/agroboost/AgroBoost-RentalService/internal/api/handlers"
	getAvailableHours "github.com/agroboost/AgroBoost-RentalService/internal/usecase/get_available_hours"
	"github.com/agroboost/AgroBoost-RentalService/pkg/types"
)

const (
	msgInvalidServiceID = "Identifiant de service invalide."
	msgInvalidDate      = "Date invalide, format attendu AAAA-MM-JJ."
	msgServiceNotFound  = "Service introuvable."
	msgDateTooFar       = "Cette date est trop éloignée pour être réservée."
)

type Handler struct {
	useCase GetAvailableHoursUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableHoursUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability/services/{serviceId}/hours?date=YYYY-MM-DD
// Public endpoint
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceID, err := handlers.PathID(r, "serviceId")
	if err != nil {
		h.logger.Warn("GET /availability/services/{id}/hours - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	date, err := types.ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /availability/services/{id}/hours - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableHours.Request{
		ServiceID: serviceID,
		Date:      date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableHours.ErrServiceNotFound):
			h.logger.Warn("GET /availability/services/{id}/hours - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableHours.ErrDateTooFarInFuture):
			h.logger.Warn("GET /availability/services/{id}/hours - Date too far: service_id=%d, date=%s", serviceID, date)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, getAvailableHours.ErrInvalidInput):
			h.logger.Warn("GET /availability/services/{id}/hours - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /availability/services/{id}/hours - Failed to get hours: service_id=%d, error=%v",
				serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability/services/{id}/hours - Hours retrieved: service_id=%d, date=%s, slots=%d",
		serviceID, date, len(result.Slots))
	handlers.RespondData(w, http.StatusOK, result)
}
