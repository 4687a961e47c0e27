package models

import (
	"time"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	bookingModels "github.com/m04kA/SMC-HotelBookingService/internal/service/bookings/models"
)

// Request модели

// CreateRoomRequest запрос на создание юнита
type CreateRoomRequest struct {
	Kind         string `json:"kind"` // room или bed
	ParentRoomID *int64 `json:"parentRoomId,omitempty"`
	Number       string `json:"number"`
}

// UpdateRoomStatusRequest ручное действие персонала над юнитом
type UpdateRoomStatusRequest struct {
	StaffID int64   `json:"-"`
	Action  string  `json:"-"`
	Reason  *string `json:"reason,omitempty"`
}

// Response модели

// RoomResponse ответ с данными юнита
type RoomResponse struct {
	ID           int64     `json:"id"`
	Kind         string    `json:"kind"`
	ParentRoomID *int64    `json:"parentRoomId,omitempty"`
	Number       string    `json:"number"`
	Status       string    `json:"status"`
	StatusReason *string   `json:"statusReason,omitempty"`
	Version      int       `json:"version"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	Beds           []RoomResponse                  `json:"beds,omitempty"`
	ActiveBookings []bookingModels.BookingResponse `json:"activeBookings,omitempty"`
}

// FromDomainRoom конвертирует domain модель в DTO
func FromDomainRoom(r *domain.Room) *RoomResponse {
	if r == nil {
		return nil
	}

	return &RoomResponse{
		ID:           r.ID,
		Kind:         string(r.Kind),
		ParentRoomID: r.ParentRoomID,
		Number:       r.Number,
		Status:       string(r.Status),
		StatusReason: r.StatusReason,
		Version:      r.Version,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// ToDomainRoom конвертирует запрос в новый юнит в статусе available
func (r *CreateRoomRequest) ToDomainRoom() *domain.Room {
	kind := domain.RoomKind(r.Kind)
	if r.Kind == "" {
		kind = domain.KindRoom
	}

	return &domain.Room{
		Kind:         kind,
		ParentRoomID: r.ParentRoomID,
		Number:       r.Number,
		Status:       domain.RoomAvailable,
	}
}
