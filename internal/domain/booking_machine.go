package domain

import (
	"fmt"
	"time"
)

// BookingEvent событие жизненного цикла бронирования
type BookingEvent string

const (
	EventConfirm  BookingEvent = "confirm"
	EventCheckIn  BookingEvent = "checkin"
	EventCheckOut BookingEvent = "checkout"
	EventCancel   BookingEvent = "cancel"
	EventNoShow   BookingEvent = "no_show"
	EventRefund   BookingEvent = "refund"
)

// bookingTransitions явная таблица переходов: статус -> событие -> новый статус
// Отсутствие пары означает недопустимый переход
var bookingTransitions = map[BookingStatus]map[BookingEvent]BookingStatus{
	StatusPending: {
		EventConfirm: StatusConfirmed,
		EventCancel:  StatusCancelled,
	},
	StatusConfirmed: {
		EventCheckIn: StatusCheckedIn,
		EventCancel:  StatusCancelled,
		EventNoShow:  StatusNoShow,
	},
	StatusCheckedIn: {
		EventCheckOut: StatusCheckedOut,
	},
	StatusCheckedOut: {
		EventRefund: StatusRefunded,
	},
	StatusCancelled: {
		EventRefund: StatusRefunded,
	},
}

// ParseBookingEvent разбирает событие из строки (например, из URL)
func ParseBookingEvent(raw string) (BookingEvent, error) {
	e := BookingEvent(raw)
	switch e {
	case EventConfirm, EventCheckIn, EventCheckOut, EventCancel, EventNoShow, EventRefund:
		return e, nil
	}
	return "", NewError(KindInvalidInput, "unknown booking action %q", raw)
}

// Next возвращает статус после события по таблице переходов
func (s BookingStatus) Next(e BookingEvent) (BookingStatus, error) {
	if to, ok := bookingTransitions[s][e]; ok {
		return to, nil
	}
	return "", NewError(KindInvalidTransition, "cannot %s booking in status %s", e, s)
}

// TransitionContext внешние условия перехода
type TransitionContext struct {
	Now      time.Time
	Override bool // разрешение персонала заселить вне дат проживания
}

// TransitionResult итог проверки перехода
type TransitionResult struct {
	From       BookingStatus
	To         BookingStatus
	Overridden bool // переход выполнен в обход окна заезда
}

// Transition проверяет таблицу переходов и охранные условия события
// Бронирование не изменяется; применить результат можно через Apply
func (b *Booking) Transition(e BookingEvent, tc TransitionContext) (TransitionResult, error) {
	to, err := b.Status.Next(e)
	if err != nil {
		return TransitionResult{}, err
	}

	result := TransitionResult{From: b.Status, To: to}

	switch e {
	case EventCheckIn:
		if !b.InCheckInWindow(tc.Now) {
			if !tc.Override {
				return TransitionResult{}, NewError(KindOutOfWindow,
					"check-in allowed from %s until %s, today is %s",
					b.CheckIn.Format(DateFormat), b.CheckOut.Format(DateFormat), tc.Now.Format(DateFormat))
			}
			result.Overridden = true
		}
	case EventNoShow:
		if !tc.Now.After(b.CheckIn) {
			return TransitionResult{}, NewError(KindInvalidTransition,
				"no-show can be recorded only after check-in time %s", b.CheckIn.Format(time.RFC3339))
		}
	case EventRefund:
		// Возврат возможен только по оплаченному бронированию
		if !b.PaymentStatus.CanTransitionTo(PaymentRefunded) {
			return TransitionResult{}, NewError(KindInvalidTransition,
				"cannot refund booking with payment status %s", b.PaymentStatus)
		}
	}

	return result, nil
}

// InCheckInWindow проверяет, что дата now принадлежит [checkIn, checkOut)
func (b *Booking) InCheckInWindow(now time.Time) bool {
	today := truncateToDay(now.In(b.CheckIn.Location()))
	return !today.Before(truncateToDay(b.CheckIn)) && today.Before(truncateToDay(b.CheckOut))
}

// Apply переводит бронирование в новый статус и проставляет отметки времени
func (b *Booking) Apply(result TransitionResult, now time.Time, reason *string) error {
	if b.Status != result.From {
		return fmt.Errorf("booking %d: status changed from %s to %s", b.ID, result.From, b.Status)
	}

	b.Status = result.To
	switch result.To {
	case StatusConfirmed:
		b.ConfirmedAt = &now
	case StatusCheckedIn:
		b.CheckedInAt = &now
	case StatusCheckedOut:
		b.CheckedOutAt = &now
	case StatusCancelled:
		b.CancelledAt = &now
		b.CancellationReason = reason
	case StatusRefunded:
		if !b.PaymentStatus.CanTransitionTo(PaymentRefunded) {
			return fmt.Errorf("booking %d: payment status %s cannot become %s", b.ID, b.PaymentStatus, PaymentRefunded)
		}
		b.PaymentStatus = PaymentRefunded
	}

	return nil
}

// paymentTransitions допустимые переходы статуса оплаты
var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentPending: {PaymentPaid, PaymentFailed},
	PaymentFailed:  {PaymentPaid, PaymentPending},
	PaymentPaid:    {PaymentRefunded},
}

// CanTransitionTo returns true if the payment status may change to next
func (p PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	for _, allowed := range paymentTransitions[p] {
		if allowed == next {
			return true
		}
	}
	return false
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
