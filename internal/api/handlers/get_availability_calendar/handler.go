package get_availability_calendar

import (
	"errors"
	"net/http"

	"github.com/agroboost/AgroBoost-RentalService/internal/api/handlers"
	getCalendar "github.com/agroboost/AgroBoost-RentalService/internal/usecase/get_availability_calendar"
)

const (
	msgInvalidServiceID = "Identifiant de service invalide."
	msgInvalidMonth     = "Mois ou dates de sélection invalides."
	msgServiceNotFound  = "Service introuvable."
)

type Handler struct {
	useCase GetCalendarUseCase
	logger  Logger
}

func NewHandler(useCase GetCalendarUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability/services/{serviceId}
// Public endpoint
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceID, err := handlers.PathID(r, "serviceId")
	if err != nil {
		h.logger.Warn("GET /availability/services/{id} - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	req, err := ToUseCaseRequest(r, serviceID)
	if err != nil {
		h.logger.Warn("GET /availability/services/{id} - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMonth)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getCalendar.ErrServiceNotFound):
			h.logger.Warn("GET /availability/services/{id} - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getCalendar.ErrInvalidInput):
			h.logger.Warn("GET /availability/services/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidMonth)

		default:
			h.logger.Error("GET /availability/services/{id} - Failed to build calendar: service_id=%d, error=%v",
				serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability/services/{id} - Calendar built: service_id=%d, month=%d-%02d, unavailable=%d",
		serviceID, result.Year, result.Month, len(result.UnavailableDates))
	handlers.RespondData(w, http.StatusOK, result)
}
