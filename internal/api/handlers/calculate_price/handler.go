package calculate_price

import (
	"net/http"

	"github.com/m04kA/SMC-HotelBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	"github.com/m04kA/SMC-HotelBookingService/internal/service/bookings/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректная дата, ожидается YYYY-MM-DD или RFC 3339"
)

type Handler struct {
	engine  PricingEngine
	metrics Metrics
	logger  Logger
}

func NewHandler(engine PricingEngine, metrics Metrics, logger Logger) *Handler {
	return &Handler{
		engine:  engine,
		metrics: metrics,
		logger:  logger,
	}
}

// Handle POST /api/v1/pricing/calculate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var body handlers.StayRequestBody
	if err := handlers.DecodeJSON(r, &body); err != nil {
		h.logger.Warn("POST /pricing/calculate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	stay, err := body.ToDomain()
	if err != nil {
		h.logger.Warn("POST /pricing/calculate - Invalid date: %v", err)
		handlers.RespondError(w, http.StatusBadRequest, string(domain.KindInvalidInput), msgInvalidDate)
		return
	}

	breakdown, err := h.engine.Compute(stay)
	if err != nil {
		if handlers.RespondDomainError(w, err) {
			h.logger.Warn("POST /pricing/calculate - Rejected: %v", err)
			h.metrics.RecordPriceComputed("rejected")
			return
		}
		h.logger.Error("POST /pricing/calculate - Failed to compute price: %v", err)
		h.metrics.RecordPriceComputed("error")
		handlers.RespondInternalError(w)
		return
	}

	h.metrics.RecordPriceComputed("ok")
	h.logger.Info("POST /pricing/calculate - nights=%d, total=%s %s",
		breakdown.Nights, breakdown.TotalAmount.StringFixed(2), breakdown.Currency)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainPricing(breakdown))
}
