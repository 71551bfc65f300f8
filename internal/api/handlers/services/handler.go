package services

import (
	"errors"
	"net/http"

	"github.com/agroboost/AgroBoost-RentalService/internal/api/handlers"
	"github.com/agroboost/AgroBoost-RentalService/internal/api/middleware"
	"github.com/agroboost/AgroBoost-RentalService/internal/domain"
	"github.com/agroboost/AgroBoost-RentalService/internal/service/catalog"
	"github.com/agroboost/AgroBoost-RentalService/internal/service/catalog/models"
)

const (
	msgInvalidServiceID = "Identifiant de service invalide."
	msgInvalidInput     = "Les informations du service sont invalides."
	msgNotFound         = "Service introuvable."
	msgForbidden        = "Vous ne pouvez modifier que vos propres services."
	msgTooManyImages    = "Un service ne peut pas avoir plus de 5 images."
	msgInvalidImages    = "Envoyez entre 1 et 5 images (JPEG, PNG, WebP ou GIF, 5 Mo maximum) dans le champ « images »."
	msgImageNotFound    = "Cette image n'appartient pas au service."
	msgDeleted          = "Service supprimé."
)

// RemoveImageRequest HTTP request model
type RemoveImageRequest struct {
	URL string `json:"url"`
}

// Handler serves the /services routes
type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/services?category=&providerId=&search=&available=&page=&limit=
// Public endpoint
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page, err := handlers.ParsePage(r)
	if err != nil {
		h.logger.Warn("GET /services - Invalid pagination: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidParams)
		return
	}
	providerID, err := handlers.QueryInt64(r, "providerId")
	if err != nil {
		h.logger.Warn("GET /services - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidParams)
		return
	}
	available, err := handlers.QueryBool(r, "available")
	if err != nil {
		h.logger.Warn("GET /services - Invalid available flag: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidParams)
		return
	}

	result, err := h.service.List(r.Context(), &models.ListServicesRequest{
		ProviderID: providerID,
		Category:   r.URL.Query().Get("category"),
		Search:     r.URL.Query().Get("search"),
		Available:  available,
		Page:       page,
	})
	if err != nil {
		h.respondError(w, "GET /services", err)
		return
	}

	handlers.RespondList(w, result.Services, result.Page, result.Limit, result.Total)
}

// Get GET /api/v1/services/{serviceId}
// Public endpoint
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "serviceId")
	if err != nil {
		h.logger.Warn("GET /services/{id} - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	result, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.respondError(w, "GET /services/{id}", err)
		return
	}

	handlers.RespondData(w, http.StatusOK, result)
}

// Create POST /api/v1/services
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, handlers.MsgUnauthorized)
		return
	}

	var req models.CreateServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /services - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), actor, &req)
	if err != nil {
		h.respondError(w, "POST /services", err)
		return
	}

	h.logger.Info("POST /services - Service created: service_id=%d, provider_id=%d", result.ID, result.ProviderID)
	handlers.RespondData(w, http.StatusCreated, result)
}

// Update PUT /api/v1/services/{serviceId}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	actor, id, ok := h.actorAndID(w, r, "PUT /services/{id}")
	if !ok {
		return
	}

	var req models.UpdateServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /services/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), actor, id, &req)
	if err != nil {
		h.respondError(w, "PUT /services/{id}", err)
		return
	}

	h.logger.Info("PUT /services/{id} - Service updated: service_id=%d", id)
	handlers.RespondData(w, http.StatusOK, result)
}

// Delete DELETE /api/v1/services/{serviceId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, id, ok := h.actorAndID(w, r, "DELETE /services/{id}")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), actor, id); err != nil {
		h.respondError(w, "DELETE /services/{id}", err)
		return
	}

	h.logger.Info("DELETE /services/{id} - Service deleted: service_id=%d", id)
	handlers.RespondMessage(w, http.StatusOK, msgDeleted)
}

// AddImages POST /api/v1/services/{serviceId}/images (multipart, field "images")
func (h *Handler) AddImages(w http.ResponseWriter, r *http.Request) {
	actor, id, ok := h.actorAndID(w, r, "POST /services/{id}/images")
	if !ok {
		return
	}

	images, opened, err := readImages(w, r)
	if err != nil {
		h.logger.Warn("POST /services/{id}/images - Invalid upload: service_id=%d, error=%v", id, err)
		if errors.Is(err, errTooManyImages) {
			handlers.RespondBadRequest(w, msgTooManyImages)
			return
		}
		handlers.RespondBadRequest(w, msgInvalidImages)
		return
	}
	defer closeAll(opened)

	result, err := h.service.AddImages(r.Context(), actor, id, images)
	if err != nil {
		h.respondError(w, "POST /services/{id}/images", err)
		return
	}

	h.logger.Info("POST /services/{id}/images - Images added: service_id=%d, count=%d", id, len(images))
	handlers.RespondData(w, http.StatusOK, result)
}

// RemoveImage DELETE /api/v1/services/{serviceId}/images
func (h *Handler) RemoveImage(w http.ResponseWriter, r *http.Request) {
	actor, id, ok := h.actorAndID(w, r, "DELETE /services/{id}/images")
	if !ok {
		return
	}

	var req RemoveImageRequest
	if err := handlers.DecodeJSON(r, &req); err != nil || req.URL == "" {
		h.logger.Warn("DELETE /services/{id}/images - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidRequestBody)
		return
	}

	result, err := h.service.RemoveImage(r.Context(), actor, id, req.URL)
	if err != nil {
		h.respondError(w, "DELETE /services/{id}/images", err)
		return
	}

	h.logger.Info("DELETE /services/{id}/images - Image removed: service_id=%d", id)
	handlers.RespondData(w, http.StatusOK, result)
}

func (h *Handler) actorAndID(w http.ResponseWriter, r *http.Request, route string) (domain.Actor, int64, bool) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, handlers.MsgUnauthorized)
		return actor, 0, false
	}
	id, err := handlers.PathID(r, "serviceId")
	if err != nil {
		h.logger.Warn("%s - Invalid service ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return actor, 0, false
	}
	return actor, id, true
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, catalog.ErrServiceNotFound):
		h.logger.Warn("%s - Service not found", route)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, catalog.ErrAccessDenied):
		h.logger.Warn("%s - Access denied", route)
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, catalog.ErrTooManyImages):
		h.logger.Warn("%s - Too many images", route)
		handlers.RespondBadRequest(w, msgTooManyImages)

	case errors.Is(err, catalog.ErrUnsupportedImage):
		h.logger.Warn("%s - Unsupported image", route)
		handlers.RespondBadRequest(w, msgInvalidImages)

	case errors.Is(err, catalog.ErrImageNotFound):
		h.logger.Warn("%s - Image not found", route)
		handlers.RespondNotFound(w, msgImageNotFound)

	case errors.Is(err, catalog.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	default:
		h.logger.Error("%s - Internal error: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
