package list_bookings

import (
	"errors"
	"net/http"

	"github.com/agroboost/AgroBoost-RentalService/internal/api/handlers"
	"github.com/agroboost/AgroBoost-RentalService/internal/api/middleware"
	"github.com/agroboost/AgroBoost-RentalService/internal/service/bookings"
	"github.com/agroboost/AgroBoost-RentalService/internal/service/bookings/models"
)

const msgInvalidStatus = "Statut de réservation invalide."

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

// Handle GET /api/v1/bookings?status=&serviceId=&page=&limit=
// Administrators see every booking, everyone else their own.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, handlers.MsgUnauthorized)
		return
	}

	page, err := handlers.ParsePage(r)
	if err != nil {
		h.logger.Warn("GET /bookings - Invalid pagination: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidParams)
		return
	}
	serviceID, err := handlers.QueryInt64(r, "serviceId")
	if err != nil {
		h.logger.Warn("GET /bookings - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidParams)
		return
	}

	result, err := h.service.List(r.Context(), &models.ListBookingsRequest{
		Actor:     actor,
		Status:    handlers.QueryString(r, "status"),
		ServiceID: serviceID,
		Page:      page,
	})
	if err != nil {
		if errors.Is(err, bookings.ErrInvalidInput) {
			h.logger.Warn("GET /bookings - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStatus)
			return
		}
		h.logger.Error("GET /bookings - Failed to list bookings: user_id=%d, error=%v", actor.UserID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /bookings - Bookings retrieved: user_id=%d, count=%d", actor.UserID, len(result.Bookings))
	handlers.RespondList(w, result.Bookings, result.Page, result.Limit, result.Total)
}
