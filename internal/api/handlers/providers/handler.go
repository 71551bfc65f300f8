package providers

import (
	"context"
	"errors"
	"net/http"

	"github.com/agroboost/AgroBoost-RentalService/internal/api/handlers"
	"github.com/agroboost/AgroBoost-RentalService/internal/domain"
	"github.com/agroboost/AgroBoost-RentalService/internal/service/providers"
)

const (
	msgInvalidProviderID = "Identifiant de prestataire invalide."
	msgNotFound          = "Prestataire introuvable."
)

type ProviderService interface {
	List(ctx context.Context, search string, page domain.Page) (*providers.ProviderListResponse, error)
	Get(ctx context.Context, id int64) (*providers.ProviderResponse, error)
}

type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Handler serves the public provider directory
type Handler struct {
	service ProviderService
	logger  Logger
}

func NewHandler(service ProviderService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/providers?search=&page=&limit=
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page, err := handlers.ParsePage(r)
	if err != nil {
		h.logger.Warn("GET /providers - Invalid pagination: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidParams)
		return
	}

	result, err := h.service.List(r.Context(), r.URL.Query().Get("search"), page)
	if err != nil {
		h.logger.Error("GET /providers - Failed to list providers: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondList(w, result.Providers, result.Page, result.Limit, result.Total)
}

// Get GET /api/v1/providers/{providerId}, with the provider's services
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "providerId")
	if err != nil {
		h.logger.Warn("GET /providers/{id} - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	result, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, providers.ErrProviderNotFound) {
			h.logger.Warn("GET /providers/{id} - Provider not found: provider_id=%d", id)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("GET /providers/{id} - Failed to get provider: provider_id=%d, error=%v", id, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondData(w, http.StatusOK, result)
}
