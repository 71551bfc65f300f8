package update_provider_settings

import (
	"errors"
	"net/http"

	"github.com/agroboost/AgroBoost-RentalService/internal/api/handlers"
	"github.com/agroboost/AgroBoost-RentalService/internal/api/middleware"
	"github.com/agroboost/AgroBoost-RentalService/internal/service/settings"
)

const (
	msgInvalidProviderID = "Identifiant de prestataire invalide."
	msgNotFound          = "Aucun paramétrage enregistré pour ce périmètre."
	msgServiceNotFound   = "Service introuvable pour ce prestataire."
	msgForbidden         = "Vous ne pouvez modifier que vos propres paramètres."
	msgInvalidData       = "Paramètres invalides : capacité d'au moins 1, délais positifs, ouverture avant fermeture."
	msgDeleted           = "Paramètres supprimés, les valeurs par défaut s'appliquent."
)

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

// Handle PUT /api/v1/providers/{providerId}/settings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	providerID, err := handlers.PathID(r, "providerId")
	if err != nil {
		h.logger.Warn("PUT /providers/{id}/settings - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, handlers.MsgUnauthorized)
		return
	}

	var req UpdateProviderSettingsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /providers/{id}/settings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), req.ToServiceRequest(actor, providerID))
	if err != nil {
		h.respondError(w, "PUT", providerID, actor.UserID, err)
		return
	}

	h.logger.Info("PUT /providers/{id}/settings - Settings updated: provider_id=%d, service_id=%v",
		providerID, req.ServiceID)
	handlers.RespondData(w, http.StatusOK, result)
}

// HandleDelete DELETE /api/v1/providers/{providerId}/settings?serviceId=
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	providerID, err := handlers.PathID(r, "providerId")
	if err != nil {
		h.logger.Warn("DELETE /providers/{id}/settings - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, handlers.MsgUnauthorized)
		return
	}

	serviceID, err := handlers.QueryInt64(r, "serviceId")
	if err != nil {
		h.logger.Warn("DELETE /providers/{id}/settings - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidParams)
		return
	}

	if err := h.service.Delete(r.Context(), actor, providerID, serviceID); err != nil {
		h.respondError(w, "DELETE", providerID, actor.UserID, err)
		return
	}

	h.logger.Info("DELETE /providers/{id}/settings - Settings deleted: provider_id=%d, service_id=%v",
		providerID, serviceID)
	handlers.RespondMessage(w, http.StatusOK, msgDeleted)
}

func (h *Handler) respondError(w http.ResponseWriter, method string, providerID, userID int64, err error) {
	switch {
	case errors.Is(err, settings.ErrAccessDenied):
		h.logger.Warn("%s /providers/{id}/settings - Access denied: provider_id=%d, user_id=%d", method, providerID, userID)
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, settings.ErrSettingsNotFound):
		h.logger.Warn("%s /providers/{id}/settings - Not found: provider_id=%d", method, providerID)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, settings.ErrServiceNotFound):
		h.logger.Warn("%s /providers/{id}/settings - Service not found: provider_id=%d", method, providerID)
		handlers.RespondNotFound(w, msgServiceNotFound)

	case errors.Is(err, settings.ErrInvalidInput):
		h.logger.Warn("%s /providers/{id}/settings - Invalid data: provider_id=%d, error=%v", method, providerID, err)
		handlers.RespondBadRequest(w, msgInvalidData)

	default:
		h.logger.Error("%s /providers/{id}/settings - Failed: provider_id=%d, error=%v", method, providerID, err)
		handlers.RespondInternalError(w)
	}
}
