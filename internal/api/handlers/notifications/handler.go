package notifications

import (
	"errors"
	"net/http"

	"github.com/agroboost/AgroBoost-RentalService/internal/api/handlers"
	"github.com/agroboost/AgroBoost-RentalService/internal/api/middleware"
	"github.com/agroboost/AgroBoost-RentalService/internal/domain"
	"github.com/agroboost/AgroBoost-RentalService/internal/service/notifications"
	"github.com/agroboost/AgroBoost-RentalService/internal/service/notifications/models"
)

const (
	msgInvalidID     = "Identifiant de notification invalide."
	msgInvalidInput  = "Notification invalide : destinataire, titre et message requis."
	msgNotFound      = "Notification introuvable."
	msgUserNotFound  = "Destinataire introuvable."
	msgMarkedRead    = "Notification marquée comme lue."
	msgDeleted       = "Notification supprimée."
	msgAllMarkedRead = "Toutes les notifications ont été marquées comme lues."
)

// SendNotificationRequest HTTP request model
type SendNotificationRequest struct {
	UserID  int64  `json:"userId"`
	Type    string `json:"type"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// Handler serves the /notifications routes
type Handler struct {
	service NotificationService
	logger  Logger
}

func NewHandler(service NotificationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/notifications?unreadOnly=&page=&limit=
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, handlers.MsgUnauthorized)
		return
	}

	page, err := handlers.ParsePage(r)
	if err != nil {
		h.logger.Warn("GET /notifications - Invalid pagination: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidParams)
		return
	}
	unreadOnly, err := handlers.QueryBool(r, "unreadOnly")
	if err != nil {
		h.logger.Warn("GET /notifications - Invalid unreadOnly: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidParams)
		return
	}

	req := &models.ListNotificationsRequest{Page: page}
	if unreadOnly != nil {
		req.UnreadOnly = *unreadOnly
	}

	result, err := h.service.List(r.Context(), actor, req)
	if err != nil {
		h.respondError(w, "GET /notifications", err)
		return
	}

	handlers.RespondList(w, result.Notifications, result.Page, result.Limit, result.Total)
}

// Send POST /api/v1/notifications (admin)
func (h *Handler) Send(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, handlers.MsgUnauthorized)
		return
	}

	var req SendNotificationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /notifications - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidRequestBody)
		return
	}

	result, err := h.service.Send(r.Context(), actor, &models.SendNotificationRequest{
		UserID:  req.UserID,
		Type:    req.Type,
		Title:   req.Title,
		Message: req.Message,
	})
	if err != nil {
		h.respondError(w, "POST /notifications", err)
		return
	}

	h.logger.Info("POST /notifications - Notification sent: id=%d, user_id=%d", result.ID, result.UserID)
	handlers.RespondData(w, http.StatusCreated, result)
}

// MarkRead PUT /api/v1/notifications/{notificationId}/read
func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	actor, id, ok := h.actorAndID(w, r, "PUT /notifications/{id}/read")
	if !ok {
		return
	}

	if err := h.service.MarkRead(r.Context(), actor, id); err != nil {
		h.respondError(w, "PUT /notifications/{id}/read", err)
		return
	}

	handlers.RespondMessage(w, http.StatusOK, msgMarkedRead)
}

// MarkAllRead PUT /api/v1/notifications/read-all
func (h *Handler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, handlers.MsgUnauthorized)
		return
	}

	count, err := h.service.MarkAllRead(r.Context(), actor)
	if err != nil {
		h.respondError(w, "PUT /notifications/read-all", err)
		return
	}

	h.logger.Info("PUT /notifications/read-all - Marked read: user_id=%d, count=%d", actor.UserID, count)
	handlers.RespondData(w, http.StatusOK, map[string]interface{}{
		"message": msgAllMarkedRead,
		"updated": count,
	})
}

// Delete DELETE /api/v1/notifications/{notificationId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, id, ok := h.actorAndID(w, r, "DELETE /notifications/{id}")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), actor, id); err != nil {
		h.respondError(w, "DELETE /notifications/{id}", err)
		return
	}

	handlers.RespondMessage(w, http.StatusOK, msgDeleted)
}

func (h *Handler) actorAndID(w http.ResponseWriter, r *http.Request, route string) (domain.Actor, int64, bool) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, handlers.MsgUnauthorized)
		return actor, 0, false
	}
	id, err := handlers.PathID(r, "notificationId")
	if err != nil {
		h.logger.Warn("%s - Invalid notification ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return actor, 0, false
	}
	return actor, id, true
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, notifications.ErrNotificationNotFound):
		h.logger.Warn("%s - Notification not found", route)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, notifications.ErrUserNotFound):
		h.logger.Warn("%s - Recipient not found", route)
		handlers.RespondNotFound(w, msgUserNotFound)

	case errors.Is(err, notifications.ErrAccessDenied):
		h.logger.Warn("%s - Access denied", route)
		handlers.RespondForbidden(w, handlers.MsgForbidden)

	case errors.Is(err, notifications.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	default:
		h.logger.Error("%s - Internal error: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
