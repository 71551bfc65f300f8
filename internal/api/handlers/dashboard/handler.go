package dashboard

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/agroboost/AgroBoost-RentalService/internal/api/handlers"
	"github.com/agroboost/AgroBoost-RentalService/internal/api/middleware"
	"github.com/agroboost/AgroBoost-RentalService/internal/domain"
	"github.com/agroboost/AgroBoost-RentalService/internal/service/dashboard"
	"github.com/agroboost/AgroBoost-RentalService/pkg/types"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const (
	msgInvalidPeriod = "Période invalide : from et to au format AAAA-MM-JJ, from avant to."
	msgForbidden     = "Le tableau de bord est réservé aux administrateurs et prestataires."
)

type DashboardService interface {
	Stats(ctx context.Context, actor domain.Actor) (*dashboard.StatsResponse, error)
	BookingsReport(ctx context.Context, actor domain.Actor, from, to types.Date, w io.Writer) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type Handler struct {
	service DashboardService
	logger  Logger
}

func NewHandler(service DashboardService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Stats GET /api/v1/dashboard/stats
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, handlers.MsgUnauthorized)
		return
	}

	stats, err := h.service.Stats(r.Context(), actor)
	if err != nil {
		h.respondError(w, "GET /dashboard/stats", err)
		return
	}

	handlers.RespondData(w, http.StatusOK, stats)
}

// BookingsReport GET /api/v1/dashboard/reports/bookings?from=&to=
func (h *Handler) BookingsReport(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, handlers.MsgUnauthorized)
		return
	}

	from, err := types.ParseDate(r.URL.Query().Get("from"))
	if err != nil {
		h.logger.Warn("GET /dashboard/reports/bookings - Invalid from: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPeriod)
		return
	}
	to, err := types.ParseDate(r.URL.Query().Get("to"))
	if err != nil {
		h.logger.Warn("GET /dashboard/reports/bookings - Invalid to: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPeriod)
		return
	}

	// buffered so that a failure can still produce a JSON error
	var buf bytes.Buffer
	if err := h.service.BookingsReport(r.Context(), actor, from, to, &buf); err != nil {
		h.respondError(w, "GET /dashboard/reports/bookings", err)
		return
	}

	filename := fmt.Sprintf("reservations_%s_%s.xlsx", from, to)
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Warn("GET /dashboard/reports/bookings - Failed to send report: %v", err)
		return
	}

	h.logger.Info("GET /dashboard/reports/bookings - Report sent: user_id=%d, %s..%s", actor.UserID, from, to)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, dashboard.ErrAccessDenied):
		h.logger.Warn("%s - Access denied", route)
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, dashboard.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidPeriod)

	default:
		h.logger.Error("%s - Internal error: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
