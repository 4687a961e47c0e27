package update_room_status

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-HotelBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-HotelBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-HotelBookingService/internal/service/rooms/models"
)

const (
	msgInvalidRoomID      = "некорректный ID номера"
	msgInvalidRequestBody = "некорректное тело запроса"
)

type Handler struct {
	service RoomService
	logger  Logger
}

func NewHandler(service RoomService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/rooms/{roomId}/status/{action}
// action: cleaning_complete, maintenance, out_of_order, resolve
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	roomID, err := handlers.ParseID(vars["roomId"])
	if err != nil {
		h.logger.Warn("PATCH /rooms/{id}/status - Invalid room ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRoomID)
		return
	}

	var req models.UpdateRoomStatusRequest
	if err := handlers.DecodeOptionalJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /rooms/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.Action = vars["action"]
	req.StaffID, _ = middleware.GetStaffID(r.Context())

	room, err := h.service.ApplyManualEvent(r.Context(), roomID, &req)
	if err != nil {
		if handlers.RespondDomainError(w, err) {
			h.logger.Warn("PATCH /rooms/{id}/status/%s - Rejected: room_id=%d, error=%v", req.Action, roomID, err)
			return
		}
		h.logger.Error("PATCH /rooms/{id}/status/%s - Failed: room_id=%d, error=%v", req.Action, roomID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PATCH /rooms/{id}/status/%s - Room status updated: room_id=%d, status=%s, staff_id=%d",
		req.Action, roomID, room.Status, req.StaffID)
	handlers.RespondJSON(w, http.StatusOK, room)
}
