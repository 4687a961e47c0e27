package domain

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newBooking(status BookingStatus) *Booking {
	return &Booking{
		ID:            1,
		RoomID:        10,
		Status:        status,
		PaymentStatus: PaymentPending,
		CheckIn:       date(2026, 3, 10),
		CheckOut:      date(2026, 3, 13),
	}
}

var allEvents = []BookingEvent{EventConfirm, EventCheckIn, EventCheckOut, EventCancel, EventNoShow, EventRefund}

func TestBookingStatus_Next(t *testing.T) {
	tests := []struct {
		from  BookingStatus
		event BookingEvent
		to    BookingStatus
	}{
		{StatusPending, EventConfirm, StatusConfirmed},
		{StatusPending, EventCancel, StatusCancelled},
		{StatusConfirmed, EventCheckIn, StatusCheckedIn},
		{StatusConfirmed, EventCancel, StatusCancelled},
		{StatusConfirmed, EventNoShow, StatusNoShow},
		{StatusCheckedIn, EventCheckOut, StatusCheckedOut},
		{StatusCheckedOut, EventRefund, StatusRefunded},
		{StatusCancelled, EventRefund, StatusRefunded},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_"+string(tt.event), func(t *testing.T) {
			got, err := tt.from.Next(tt.event)
			require.NoError(t, err)
			assert.Equal(t, tt.to, got)
		})
	}
}

func TestBookingStatus_Next_RejectsSkips(t *testing.T) {
	rejected := []struct {
		from  BookingStatus
		event BookingEvent
	}{
		{StatusPending, EventCheckIn},
		{StatusPending, EventCheckOut},
		{StatusPending, EventNoShow},
		{StatusPending, EventRefund},
		{StatusConfirmed, EventCheckOut},
		{StatusCheckedIn, EventCancel},
		{StatusCheckedOut, EventCancel},
		{StatusNoShow, EventRefund},
		{StatusRefunded, EventRefund},
		{StatusCancelled, EventConfirm},
	}

	for _, tt := range rejected {
		_, err := tt.from.Next(tt.event)
		assert.ErrorIs(t, err, ErrInvalidTransition, "%s -> %s", tt.from, tt.event)
	}
}

func TestBooking_Transition_CheckInWindow(t *testing.T) {
	b := newBooking(StatusConfirmed)

	t.Run("first day", func(t *testing.T) {
		res, err := b.Transition(EventCheckIn, TransitionContext{Now: date(2026, 3, 10).Add(15 * time.Hour)})
		require.NoError(t, err)
		assert.Equal(t, StatusCheckedIn, res.To)
		assert.False(t, res.Overridden)
	})

	t.Run("last night", func(t *testing.T) {
		_, err := b.Transition(EventCheckIn, TransitionContext{Now: date(2026, 3, 12).Add(23 * time.Hour)})
		require.NoError(t, err)
	})

	t.Run("before stay", func(t *testing.T) {
		_, err := b.Transition(EventCheckIn, TransitionContext{Now: date(2026, 3, 9).Add(20 * time.Hour)})
		assert.ErrorIs(t, err, ErrOutOfWindow)
	})

	t.Run("checkout day is outside", func(t *testing.T) {
		_, err := b.Transition(EventCheckIn, TransitionContext{Now: date(2026, 3, 13).Add(time.Hour)})
		assert.ErrorIs(t, err, ErrOutOfWindow)
	})

	t.Run("override", func(t *testing.T) {
		res, err := b.Transition(EventCheckIn, TransitionContext{Now: date(2026, 3, 9), Override: true})
		require.NoError(t, err)
		assert.True(t, res.Overridden)
		assert.Equal(t, StatusCheckedIn, res.To)
	})
}

func TestBooking_Transition_OverrideDoesNotSkipStates(t *testing.T) {
	b := newBooking(StatusPending)

	_, err := b.Transition(EventCheckIn, TransitionContext{Now: date(2026, 3, 10), Override: true})

	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestBooking_Transition_NoShow(t *testing.T) {
	b := newBooking(StatusConfirmed)

	_, err := b.Transition(EventNoShow, TransitionContext{Now: date(2026, 3, 9)})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	res, err := b.Transition(EventNoShow, TransitionContext{Now: date(2026, 3, 11)})
	require.NoError(t, err)
	assert.Equal(t, StatusNoShow, res.To)
}

func TestBooking_Apply(t *testing.T) {
	now := date(2026, 3, 1)
	reason := "guest request"

	b := newBooking(StatusPending)
	res, err := b.Transition(EventCancel, TransitionContext{Now: now})
	require.NoError(t, err)
	require.NoError(t, b.Apply(res, now, &reason))

	assert.Equal(t, StatusCancelled, b.Status)
	require.NotNil(t, b.CancelledAt)
	assert.Equal(t, now, *b.CancelledAt)
	assert.Equal(t, &reason, b.CancellationReason)

	b.PaymentStatus = PaymentPaid
	res, err = b.Transition(EventRefund, TransitionContext{Now: now})
	require.NoError(t, err)
	require.NoError(t, b.Apply(res, now, nil))

	assert.Equal(t, StatusRefunded, b.Status)
	assert.Equal(t, PaymentRefunded, b.PaymentStatus)
}

func TestBooking_Transition_RefundRequiresPaidPayment(t *testing.T) {
	now := date(2026, 3, 1)

	for _, payment := range []PaymentStatus{PaymentPending, PaymentFailed, PaymentRefunded} {
		b := newBooking(StatusCancelled)
		b.PaymentStatus = payment

		_, err := b.Transition(EventRefund, TransitionContext{Now: now})
		assert.ErrorIs(t, err, ErrInvalidTransition, "payment %s", payment)
		assert.Equal(t, StatusCancelled, b.Status)
		assert.Equal(t, payment, b.PaymentStatus)
	}

	b := newBooking(StatusCheckedOut)
	b.PaymentStatus = PaymentPaid
	res, err := b.Transition(EventRefund, TransitionContext{Now: now})
	require.NoError(t, err)
	require.NoError(t, b.Apply(res, now, nil))
	assert.Equal(t, StatusRefunded, b.Status)
	assert.Equal(t, PaymentRefunded, b.PaymentStatus)
}

func TestBooking_Apply_RefundOfUnpaidBooking(t *testing.T) {
	b := newBooking(StatusCancelled)

	err := b.Apply(TransitionResult{From: StatusCancelled, To: StatusRefunded}, date(2026, 3, 1), nil)

	assert.Error(t, err)
	assert.Equal(t, PaymentPending, b.PaymentStatus)
}

func TestBooking_Apply_StaleResult(t *testing.T) {
	b := newBooking(StatusConfirmed)

	err := b.Apply(TransitionResult{From: StatusPending, To: StatusConfirmed}, time.Now(), nil)

	assert.Error(t, err)
	assert.Equal(t, StatusConfirmed, b.Status)
}

// Случайные последовательности событий не могут привести в checked_in, минуя confirmed
func TestBookingMachine_CheckedInAlwaysAfterConfirmed(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for run := 0; run < 2000; run++ {
		b := newBooking(StatusPending)
		visited := []BookingStatus{b.Status}

		for step := 0; step < 8; step++ {
			e := allEvents[rng.Intn(len(allEvents))]
			tc := TransitionContext{
				Now:      date(2026, 3, 8+rng.Intn(8)),
				Override: rng.Intn(2) == 0,
			}

			res, err := b.Transition(e, tc)
			if err != nil {
				continue
			}
			require.NoError(t, b.Apply(res, tc.Now, nil))
			visited = append(visited, b.Status)
		}

		for i, s := range visited {
			if s == StatusCheckedIn {
				require.Greater(t, i, 0)
				assert.Equal(t, StatusConfirmed, visited[i-1], "run %d: %v", run, visited)
			}
		}
	}
}

func TestParseBookingEvent(t *testing.T) {
	for _, e := range allEvents {
		got, err := ParseBookingEvent(string(e))
		require.NoError(t, err)
		assert.Equal(t, e, got)
	}

	_, err := ParseBookingEvent("teleport")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestPaymentStatus_CanTransitionTo(t *testing.T) {
	assert.True(t, PaymentPending.CanTransitionTo(PaymentPaid))
	assert.True(t, PaymentPending.CanTransitionTo(PaymentFailed))
	assert.True(t, PaymentFailed.CanTransitionTo(PaymentPaid))
	assert.True(t, PaymentPaid.CanTransitionTo(PaymentRefunded))
	assert.False(t, PaymentPending.CanTransitionTo(PaymentRefunded))
	assert.False(t, PaymentRefunded.CanTransitionTo(PaymentPaid))
}

func TestRangesOverlap(t *testing.T) {
	assert.True(t, RangesOverlap(date(2026, 3, 1), date(2026, 3, 5), date(2026, 3, 4), date(2026, 3, 6)))
	assert.True(t, RangesOverlap(date(2026, 3, 1), date(2026, 3, 5), date(2026, 3, 2), date(2026, 3, 3)))
	assert.False(t, RangesOverlap(date(2026, 3, 1), date(2026, 3, 5), date(2026, 3, 5), date(2026, 3, 7)))
	assert.False(t, RangesOverlap(date(2026, 3, 5), date(2026, 3, 7), date(2026, 3, 1), date(2026, 3, 5)))
}

func TestError_IsMatchesKind(t *testing.T) {
	err := NewError(KindRoomUnavailable, "room %d is booked", 7)
	wrapped := errors.Join(errors.New("create_booking"), err)

	assert.ErrorIs(t, wrapped, ErrRoomUnavailable)
	assert.NotErrorIs(t, wrapped, ErrOutOfWindow)

	de, ok := AsError(wrapped)
	require.True(t, ok)
	assert.Equal(t, KindRoomUnavailable, de.Kind)
	assert.Equal(t, "room_unavailable: room 7 is booked", de.Error())
}
