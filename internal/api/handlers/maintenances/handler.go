package maintenances

import (
	"errors"
	"net/http"

	"github.com/agroboost/AgroBoost-RentalService/internal/api/handlers"
	"github.com/agroboost/AgroBoost-RentalService/internal/api/middleware"
	"github.com/agroboost/AgroBoost-RentalService/internal/domain"
	"github.com/agroboost/AgroBoost-RentalService/internal/service/maintenances"
	"github.com/agroboost/AgroBoost-RentalService/internal/service/maintenances/models"
)

const (
	msgInvalidID       = "Identifiant de maintenance invalide."
	msgInvalidInput    = "Maintenance invalide : titre requis, dates AAAA-MM-JJ dans l'ordre et statut connu."
	msgNotFound        = "Maintenance introuvable."
	msgServiceNotFound = "Service introuvable."
	msgForbidden       = "Vous ne pouvez gérer que la maintenance de vos propres équipements."
	msgDeleted         = "Maintenance supprimée."
)

// Handler serves the /maintenances routes
type Handler struct {
	service MaintenanceService
	logger  Logger
}

func NewHandler(service MaintenanceService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/maintenances?serviceId=&status=&page=&limit=
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, handlers.MsgUnauthorized)
		return
	}

	page, err := handlers.ParsePage(r)
	if err != nil {
		h.logger.Warn("GET /maintenances - Invalid pagination: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidParams)
		return
	}
	serviceID, err := handlers.QueryInt64(r, "serviceId")
	if err != nil {
		h.logger.Warn("GET /maintenances - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidParams)
		return
	}

	result, err := h.service.List(r.Context(), actor, &models.ListMaintenancesRequest{
		ServiceID: serviceID,
		Status:    handlers.QueryString(r, "status"),
		Page:      page,
	})
	if err != nil {
		h.respondError(w, "GET /maintenances", err)
		return
	}

	handlers.RespondList(w, result.Maintenances, result.Page, result.Limit, result.Total)
}

// Get GET /api/v1/maintenances/{maintenanceId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	actor, id, ok := h.actorAndID(w, r, "GET /maintenances/{id}")
	if !ok {
		return
	}

	result, err := h.service.Get(r.Context(), actor, id)
	if err != nil {
		h.respondError(w, "GET /maintenances/{id}", err)
		return
	}

	handlers.RespondData(w, http.StatusOK, result)
}

// Create POST /api/v1/maintenances
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, handlers.MsgUnauthorized)
		return
	}

	var req models.CreateMaintenanceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /maintenances - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), actor, &req)
	if err != nil {
		h.respondError(w, "POST /maintenances", err)
		return
	}

	h.logger.Info("POST /maintenances - Maintenance created: id=%d, service_id=%d", result.ID, result.ServiceID)
	handlers.RespondData(w, http.StatusCreated, result)
}

// Update PUT /api/v1/maintenances/{maintenanceId}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	actor, id, ok := h.actorAndID(w, r, "PUT /maintenances/{id}")
	if !ok {
		return
	}

	var req models.UpdateMaintenanceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /maintenances/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), actor, id, &req)
	if err != nil {
		h.respondError(w, "PUT /maintenances/{id}", err)
		return
	}

	h.logger.Info("PUT /maintenances/{id} - Maintenance updated: id=%d, status=%s", id, result.Status)
	handlers.RespondData(w, http.StatusOK, result)
}

// Delete DELETE /api/v1/maintenances/{maintenanceId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, id, ok := h.actorAndID(w, r, "DELETE /maintenances/{id}")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), actor, id); err != nil {
		h.respondError(w, "DELETE /maintenances/{id}", err)
		return
	}

	h.logger.Info("DELETE /maintenances/{id} - Maintenance deleted: id=%d", id)
	handlers.RespondMessage(w, http.StatusOK, msgDeleted)
}

func (h *Handler) actorAndID(w http.ResponseWriter, r *http.Request, route string) (domain.Actor, int64, bool) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, handlers.MsgUnauthorized)
		return actor, 0, false
	}
	id, err := handlers.PathID(r, "maintenanceId")
	if err != nil {
		h.logger.Warn("%s - Invalid maintenance ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return actor, 0, false
	}
	return actor, id, true
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, maintenances.ErrMaintenanceNotFound):
		h.logger.Warn("%s - Maintenance not found", route)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, maintenances.ErrServiceNotFound):
		h.logger.Warn("%s - Service not found", route)
		handlers.RespondNotFound(w, msgServiceNotFound)

	case errors.Is(err, maintenances.ErrAccessDenied):
		h.logger.Warn("%s - Access denied", route)
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, maintenances.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	default:
		h.logger.Error("%s - Internal error: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
