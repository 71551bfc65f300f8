package users

import (
	"errors"
	"net/http"

	"github.com/agroboost/AgroBoost-RentalService/internal/api/handlers"
	"github.com/agroboost/AgroBoost-RentalService/internal/api/middleware"
	"github.com/agroboost/AgroBoost-RentalService/internal/domain"
	"github.com/agroboost/AgroBoost-RentalService/internal/service/users"
	"github.com/agroboost/AgroBoost-RentalService/internal/service/users/models"
)

const (
	msgInvalidUserID = "Identifiant d'utilisateur invalide."
	msgInvalidInput  = "Les informations saisies sont invalides."
	msgNotFound      = "Utilisateur introuvable."
	msgEmailTaken    = "Un compte existe déjà avec cette adresse e-mail."
	msgDeleted       = "Utilisateur supprimé."
)

// Handler serves the administrator's /users routes
type Handler struct {
	service UserService
	logger  Logger
}

func NewHandler(service UserService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/users?role=&search=&page=&limit=
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, handlers.MsgUnauthorized)
		return
	}

	page, err := handlers.ParsePage(r)
	if err != nil {
		h.logger.Warn("GET /users - Invalid pagination: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidParams)
		return
	}

	result, err := h.service.List(r.Context(), actor, &models.ListUsersRequest{
		Role:   handlers.QueryString(r, "role"),
		Search: r.URL.Query().Get("search"),
		Page:   page,
	})
	if err != nil {
		h.respondError(w, "GET /users", err)
		return
	}

	handlers.RespondList(w, result.Users, result.Page, result.Limit, result.Total)
}

// Get GET /api/v1/users/{userId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	actor, id, ok := h.actorAndID(w, r, "GET /users/{id}")
	if !ok {
		return
	}

	user, err := h.service.Get(r.Context(), actor, id)
	if err != nil {
		h.respondError(w, "GET /users/{id}", err)
		return
	}

	handlers.RespondData(w, http.StatusOK, user)
}

// Create POST /api/v1/users
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, handlers.MsgUnauthorized)
		return
	}

	var req CreateUserRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /users - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidRequestBody)
		return
	}

	user, err := h.service.Create(r.Context(), actor, req.ToServiceRequest())
	if err != nil {
		h.respondError(w, "POST /users", err)
		return
	}

	h.logger.Info("POST /users - User created: user_id=%d, role=%s, by=%d", user.ID, user.Role, actor.UserID)
	handlers.RespondData(w, http.StatusCreated, user)
}

// Update PUT /api/v1/users/{userId}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	actor, id, ok := h.actorAndID(w, r, "PUT /users/{id}")
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /users/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidRequestBody)
		return
	}

	user, err := h.service.Update(r.Context(), actor, id, req.ToServiceRequest())
	if err != nil {
		h.respondError(w, "PUT /users/{id}", err)
		return
	}

	h.logger.Info("PUT /users/{id} - User updated: user_id=%d, by=%d", id, actor.UserID)
	handlers.RespondData(w, http.StatusOK, user)
}

// Delete DELETE /api/v1/users/{userId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, id, ok := h.actorAndID(w, r, "DELETE /users/{id}")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), actor, id); err != nil {
		h.respondError(w, "DELETE /users/{id}", err)
		return
	}

	h.logger.Info("DELETE /users/{id} - User deleted: user_id=%d, by=%d", id, actor.UserID)
	handlers.RespondMessage(w, http.StatusOK, msgDeleted)
}

func (h *Handler) actorAndID(w http.ResponseWriter, r *http.Request, route string) (actor domain.Actor, id int64, ok bool) {
	actor, ok = middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, handlers.MsgUnauthorized)
		return actor, 0, false
	}
	id, err := handlers.PathID(r, "userId")
	if err != nil {
		h.logger.Warn("%s - Invalid user ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return actor, 0, false
	}
	return actor, id, true
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, users.ErrAccessDenied):
		h.logger.Warn("%s - Access denied", route)
		handlers.RespondForbidden(w, handlers.MsgForbidden)

	case errors.Is(err, users.ErrUserNotFound):
		h.logger.Warn("%s - User not found", route)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, users.ErrEmailTaken):
		h.logger.Warn("%s - Email taken", route)
		handlers.RespondConflict(w, msgEmailTaken)

	case errors.Is(err, users.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	default:
		h.logger.Error("%s - Internal error: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
