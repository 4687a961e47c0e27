package advance_booking

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-HotelBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-HotelBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
)

type Handler struct {
	useCase AdvanceBookingUseCase
	logger  Logger
}

func NewHandler(useCase AdvanceBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/{action}
// action: confirm, checkin, checkout, cancel, no_show, refund
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	bookingID, err := handlers.ParseID(vars["bookingId"])
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/{action} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	event, err := domain.ParseBookingEvent(vars["action"])
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/{action} - %v", err)
		handlers.RespondDomainError(w, err)
		return
	}

	var req AdvanceBookingRequest
	if err := handlers.DecodeOptionalJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/%s - Invalid request body: %v", event, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	staffID, _ := middleware.GetStaffID(r.Context())

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(bookingID, staffID, event))
	if err != nil {
		if handlers.RespondDomainError(w, err) {
			h.logger.Warn("PATCH /bookings/{id}/%s - Rejected: booking_id=%d, staff_id=%d, error=%v",
				event, bookingID, staffID, err)
			return
		}
		h.logger.Error("PATCH /bookings/{id}/%s - Failed: booking_id=%d, staff_id=%d, error=%v",
			event, bookingID, staffID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PATCH /bookings/{id}/%s - Booking advanced successfully: booking_id=%d, status=%s, staff_id=%d",
		event, bookingID, result.Booking.Status, staffID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
