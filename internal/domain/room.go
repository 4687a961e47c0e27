package domain

import "time"

// RoomKind тип юнита
type RoomKind string

const (
	KindRoom RoomKind = "room"
	KindBed  RoomKind = "bed" // кровать в общей комнате, ParentRoomID обязателен
)

// RoomStatus represents the operational status of a room or bed
type RoomStatus string

const (
	RoomAvailable   RoomStatus = "available"
	RoomOccupied    RoomStatus = "occupied"
	RoomMaintenance RoomStatus = "maintenance"
	RoomCleaning    RoomStatus = "cleaning"
	RoomOutOfOrder  RoomStatus = "out_of_order"
)

// Room юнит размещения: комната или кровать
type Room struct {
	ID           int64
	Kind         RoomKind
	ParentRoomID *int64
	Number       string
	Status       RoomStatus
	StatusReason *string

	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsBed returns true if the unit is a bed inside a room
func (r *Room) IsBed() bool {
	return r.Kind == KindBed
}

// BelongsTo returns true if the unit is the room itself or a bed inside it
func (r *Room) BelongsTo(roomID int64) bool {
	if r.IsBed() {
		return r.ParentRoomID != nil && *r.ParentRoomID == roomID
	}
	return r.ID == roomID
}

// IsValid returns true if the kind is one of the known values
func (k RoomKind) IsValid() bool {
	return k == KindRoom || k == KindBed
}

// IsValid returns true if the status is one of the known values
func (s RoomStatus) IsValid() bool {
	switch s {
	case RoomAvailable, RoomOccupied, RoomMaintenance, RoomCleaning, RoomOutOfOrder:
		return true
	}
	return false
}

// IsManualHold returns true if staff took the unit out of service
func (s RoomStatus) IsManualHold() bool {
	return s == RoomMaintenance || s == RoomOutOfOrder
}
