package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allRoomStatuses = []RoomStatus{RoomAvailable, RoomOccupied, RoomMaintenance, RoomCleaning, RoomOutOfOrder}

func TestRoomStatus_Next_Lifecycle(t *testing.T) {
	s := RoomAvailable

	s, err := s.Next(RoomEventCheckIn)
	require.NoError(t, err)
	assert.Equal(t, RoomOccupied, s)

	s, err = s.Next(RoomEventCheckOut)
	require.NoError(t, err)
	assert.Equal(t, RoomCleaning, s)

	s, err = s.Next(RoomEventCleaningComplete)
	require.NoError(t, err)
	assert.Equal(t, RoomAvailable, s)
}

func TestRoomStatus_Next_IncidentsFromAnyState(t *testing.T) {
	for _, from := range allRoomStatuses {
		got, err := from.Next(RoomEventMaintenance)
		require.NoError(t, err)
		assert.Equal(t, RoomMaintenance, got)

		got, err = from.Next(RoomEventOutOfOrder)
		require.NoError(t, err)
		assert.Equal(t, RoomOutOfOrder, got)
	}
}

func TestRoomStatus_Next_Resolve(t *testing.T) {
	for _, from := range []RoomStatus{RoomMaintenance, RoomOutOfOrder} {
		got, err := from.Next(RoomEventResolve)
		require.NoError(t, err)
		assert.Equal(t, RoomAvailable, got)
	}

	for _, from := range []RoomStatus{RoomAvailable, RoomOccupied, RoomCleaning} {
		_, err := from.Next(RoomEventResolve)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	}
}

func TestRoomStatus_Next_CheckInRequiresAvailable(t *testing.T) {
	for _, from := range []RoomStatus{RoomOccupied, RoomMaintenance, RoomCleaning, RoomOutOfOrder} {
		_, err := from.Next(RoomEventCheckIn)
		assert.ErrorIs(t, err, ErrRoomUnavailable, "from %s", from)
	}
}

func TestRoomStatus_Next_CheckOutRequiresOccupied(t *testing.T) {
	for _, from := range []RoomStatus{RoomAvailable, RoomMaintenance, RoomCleaning, RoomOutOfOrder} {
		_, err := from.Next(RoomEventCheckOut)
		assert.ErrorIs(t, err, ErrInvalidTransition, "from %s", from)
	}
}

func TestParseManualRoomEvent(t *testing.T) {
	for _, raw := range []string{"maintenance", "out_of_order", "resolve", "cleaning_complete"} {
		_, err := ParseManualRoomEvent(raw)
		assert.NoError(t, err, raw)
	}

	for _, raw := range []string{"check_in", "check_out", "out-of-order", ""} {
		_, err := ParseManualRoomEvent(raw)
		assert.ErrorIs(t, err, ErrInvalidInput, raw)
	}
}

func TestRoomEventFor(t *testing.T) {
	e, ok := RoomEventFor(EventCheckIn)
	assert.True(t, ok)
	assert.Equal(t, RoomEventCheckIn, e)

	e, ok = RoomEventFor(EventCheckOut)
	assert.True(t, ok)
	assert.Equal(t, RoomEventCheckOut, e)

	for _, be := range []BookingEvent{EventConfirm, EventCancel, EventNoShow, EventRefund} {
		_, ok := RoomEventFor(be)
		assert.False(t, ok, be)
	}
}

func TestRoom_BelongsTo(t *testing.T) {
	parent := int64(5)
	bed := &Room{ID: 51, Kind: KindBed, ParentRoomID: &parent}
	room := &Room{ID: 5, Kind: KindRoom}

	assert.True(t, bed.BelongsTo(5))
	assert.False(t, bed.BelongsTo(6))
	assert.True(t, room.BelongsTo(5))
	assert.False(t, room.BelongsTo(51))
}
