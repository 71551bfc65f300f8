package get_provider_settings

import (
	"net/http"

	"github.com/agroboost/AgroBoost-RentalService/internal/api/handlers"
)

const msgInvalidProviderID = "Identifiant de prestataire invalide."

type Handler struct {
	service SettingsService
	logger  Logger
}

func NewHandler(service SettingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/providers/{providerId}/settings
// Public endpoint; providers without stored settings get the platform defaults.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	providerID, err := handlers.PathID(r, "providerId")
	if err != nil {
		h.logger.Warn("GET /providers/{id}/settings - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	result, err := h.service.GetProviderSettings(r.Context(), providerID)
	if err != nil {
		h.logger.Error("GET /providers/{id}/settings - Failed to get settings: provider_id=%d, error=%v",
			providerID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /providers/{id}/settings - Settings retrieved: provider_id=%d, overrides=%d",
		providerID, len(result.Services))
	handlers.RespondData(w, http.StatusOK, result)
}
