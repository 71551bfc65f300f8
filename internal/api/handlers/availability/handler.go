package availability

import (
	"context"
	"errors"
	"net/http"

	"github.com/agroboost/AgroBoost-RentalService/internal/api/handlers"
	"github.com/agroboost/AgroBoost-RentalService/internal/api/middleware"
	"github.com/agroboost/AgroBoost-RentalService/internal/domain"
	"github.com/agroboost/AgroBoost-RentalService/internal/service/availability"
	"github.com/agroboost/AgroBoost-RentalService/pkg/types"
)

const (
	msgInvalidBlockID   = "Identifiant d'indisponibilité invalide."
	msgInvalidServiceID = "Le paramètre serviceId est requis."
	msgInvalidInput     = "Période invalide : dates AAAA-MM-JJ, la fin ne peut pas précéder le début."
	msgNotFound         = "Indisponibilité introuvable."
	msgServiceNotFound  = "Service introuvable."
	msgForbidden        = "Vous ne pouvez gérer que les disponibilités de vos propres équipements."
	msgDeleted          = "Indisponibilité supprimée."
)

type BlockService interface {
	Create(ctx context.Context, actor domain.Actor, req *availability.CreateBlockRequest) (*availability.BlockResponse, error)
	List(ctx context.Context, serviceID int64, from, to types.Date) ([]availability.BlockResponse, error)
	Delete(ctx context.Context, actor domain.Actor, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Handler serves the provider-managed availability blocks
type Handler struct {
	service BlockService
	logger  Logger
}

func NewHandler(service BlockService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/availability?serviceId=&from=&to=
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	serviceID, err := handlers.QueryInt64(r, "serviceId")
	if err != nil || serviceID == nil {
		h.logger.Warn("GET /availability - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}
	from, err := handlers.QueryDate(r, "from")
	if err != nil {
		h.logger.Warn("GET /availability - Invalid from: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInput)
		return
	}
	to, err := handlers.QueryDate(r, "to")
	if err != nil {
		h.logger.Warn("GET /availability - Invalid to: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInput)
		return
	}

	blocks, err := h.service.List(r.Context(), *serviceID, from, to)
	if err != nil {
		h.respondError(w, "GET /availability", err)
		return
	}

	handlers.RespondData(w, http.StatusOK, blocks)
}

// Create POST /api/v1/availability
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, handlers.MsgUnauthorized)
		return
	}

	var req availability.CreateBlockRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidRequestBody)
		return
	}

	block, err := h.service.Create(r.Context(), actor, &req)
	if err != nil {
		h.respondError(w, "POST /availability", err)
		return
	}

	h.logger.Info("POST /availability - Block created: id=%d, service_id=%d, %s..%s",
		block.ID, block.ServiceID, block.StartDate, block.EndDate)
	handlers.RespondData(w, http.StatusCreated, block)
}

// Delete DELETE /api/v1/availability/{blockId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, handlers.MsgUnauthorized)
		return
	}

	id, err := handlers.PathID(r, "blockId")
	if err != nil {
		h.logger.Warn("DELETE /availability/{id} - Invalid block ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBlockID)
		return
	}

	if err := h.service.Delete(r.Context(), actor, id); err != nil {
		h.respondError(w, "DELETE /availability/{id}", err)
		return
	}

	h.logger.Info("DELETE /availability/{id} - Block deleted: id=%d", id)
	handlers.RespondMessage(w, http.StatusOK, msgDeleted)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, availability.ErrBlockNotFound):
		h.logger.Warn("%s - Block not found", route)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, availability.ErrServiceNotFound):
		h.logger.Warn("%s - Service not found", route)
		handlers.RespondNotFound(w, msgServiceNotFound)

	case errors.Is(err, availability.ErrAccessDenied):
		h.logger.Warn("%s - Access denied", route)
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, availability.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	default:
		h.logger.Error("%s - Internal error: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
