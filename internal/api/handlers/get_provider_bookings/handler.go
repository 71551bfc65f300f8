package get_provider_bookings

import (
	"errors"
	"net/http"

	"github.com/agroboost/AgroBoost-RentalService/internal/api/handlers"
	"github.com/agroboost/AgroBoost-RentalService/internal/api/middleware"
	"github.com/agroboost/AgroBoost-RentalService/internal/service/bookings"
)

const (
	msgInvalidProviderID = "Identifiant de prestataire invalide."
	msgForbidden         = "Vous ne pouvez consulter que les réservations de vos propres équipements."
	msgInvalidStatus     = "Statut de réservation invalide."
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/providers/{providerId}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	providerID, err := handlers.PathID(r, "providerId")
	if err != nil {
		h.logger.Warn("GET /providers/{id}/bookings - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("GET /providers/{id}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, handlers.MsgUnauthorized)
		return
	}

	serviceReq, err := ToServiceRequest(r, providerID, actor)
	if err != nil {
		h.logger.Warn("GET /providers/{id}/bookings - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidParams)
		return
	}

	// the service checks that the caller manages this provider
	result, err := h.service.GetProviderBookings(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /providers/{id}/bookings - Access denied: provider_id=%d, user_id=%d",
				providerID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /providers/{id}/bookings - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /providers/{id}/bookings - Failed to get bookings: provider_id=%d, error=%v",
				providerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /providers/{id}/bookings - Bookings retrieved: provider_id=%d, count=%d",
		providerID, len(result.Bookings))
	handlers.RespondList(w, result.Bookings, result.Page, result.Limit, result.Total)
}
