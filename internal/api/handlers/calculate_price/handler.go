package calculate_price

import (
	"errors"
	"net/http"

	"github.com/agroboost/AgroBoost-RentalService/internal/api/handlers"
	calculatePrice "github.com/agroboost/AgroBoost-RentalService/internal/usecase/calculate_price"
)

const (
	msgInvalidQuote    = "Période de location invalide."
	msgServiceNotFound = "Service introuvable."
)

type Handler struct {
	useCase CalculatePriceUseCase
	logger  Logger
}

func NewHandler(useCase CalculatePriceUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/quote
// Public endpoint
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req calculatePrice.Request
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/quote - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, calculatePrice.ErrServiceNotFound):
			h.logger.Warn("POST /bookings/quote - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, calculatePrice.ErrInvalidInput):
			h.logger.Warn("POST /bookings/quote - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidQuote)

		default:
			h.logger.Error("POST /bookings/quote - Failed to calculate price: service_id=%d, error=%v", req.ServiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/quote - Price calculated: service_id=%d, total=%.0f", req.ServiceID, result.TotalPrice)
	handlers.RespondData(w, http.StatusOK, result)
}
