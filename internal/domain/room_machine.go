package domain

// RoomEvent событие, меняющее операционный статус юнита
type RoomEvent string

const (
	RoomEventCheckIn          RoomEvent = "check_in"
	RoomEventCheckOut         RoomEvent = "check_out"
	RoomEventCleaningComplete RoomEvent = "cleaning_complete"
	RoomEventMaintenance      RoomEvent = "maintenance"
	RoomEventOutOfOrder       RoomEvent = "out_of_order"
	RoomEventResolve          RoomEvent = "resolve"
)

// roomTransitions переходы, зависящие от текущего статуса
var roomTransitions = map[RoomStatus]map[RoomEvent]RoomStatus{
	RoomAvailable: {
		RoomEventCheckIn: RoomOccupied,
	},
	RoomOccupied: {
		RoomEventCheckOut: RoomCleaning,
	},
	RoomCleaning: {
		RoomEventCleaningComplete: RoomAvailable,
	},
	RoomMaintenance: {
		RoomEventResolve: RoomAvailable,
	},
	RoomOutOfOrder: {
		RoomEventResolve: RoomAvailable,
	},
}

// roomIncidentTransitions переходы, разрешенные из любого статуса
var roomIncidentTransitions = map[RoomEvent]RoomStatus{
	RoomEventMaintenance: RoomMaintenance,
	RoomEventOutOfOrder:  RoomOutOfOrder,
}

// ParseManualRoomEvent разбирает действие персонала над юнитом
// Заселение и выезд управляются только через бронирование
func ParseManualRoomEvent(raw string) (RoomEvent, error) {
	e := RoomEvent(raw)
	if e.IsManual() {
		return e, nil
	}
	return "", NewError(KindInvalidInput, "unknown room action %q", raw)
}

// IsManual returns true for events triggered by staff directly
func (e RoomEvent) IsManual() bool {
	switch e {
	case RoomEventCleaningComplete, RoomEventMaintenance, RoomEventOutOfOrder, RoomEventResolve:
		return true
	}
	return false
}

// Next возвращает статус юнита после события
// Заселение возможно только из available: юнит в cleaning после выезда в тот же день
// отклоняет check-in с room_unavailable, пока персонал не отметит cleaning_complete
func (s RoomStatus) Next(e RoomEvent) (RoomStatus, error) {
	if to, ok := roomIncidentTransitions[e]; ok {
		return to, nil
	}
	if to, ok := roomTransitions[s][e]; ok {
		return to, nil
	}
	if e == RoomEventCheckIn {
		return "", NewError(KindRoomUnavailable, "unit is %s, check-in requires %s", s, RoomAvailable)
	}
	return "", NewError(KindInvalidTransition, "cannot apply %s to unit in status %s", e, s)
}

// RoomEventFor возвращает событие юнита, которое вызывает событие бронирования
func RoomEventFor(e BookingEvent) (RoomEvent, bool) {
	switch e {
	case EventCheckIn:
		return RoomEventCheckIn, true
	case EventCheckOut:
		return RoomEventCheckOut, true
	}
	return "", false
}
