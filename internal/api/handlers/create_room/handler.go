package create_room

import (
	"net/http"

	"github.com/m04kA/SMC-HotelBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-HotelBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-HotelBookingService/internal/service/rooms/models"
)

const msgInvalidRequestBody = "некорректное тело запроса"

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

// Handle POST /api/v1/rooms
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateRoomRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /rooms - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	staffID, _ := middleware.GetStaffID(r.Context())

	room, err := h.service.Create(r.Context(), &req)
	if err != nil {
		if handlers.RespondDomainError(w, err) {
			h.logger.Warn("POST /rooms - Rejected: number=%s, staff_id=%d, error=%v", req.Number, staffID, err)
			return
		}
		h.logger.Error("POST /rooms - Failed to create room: number=%s, error=%v", req.Number, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /rooms - Room created successfully: room_id=%d, kind=%s, staff_id=%d", room.ID, room.Kind, staffID)
	handlers.RespondJSON(w, http.StatusCreated, room)
}
