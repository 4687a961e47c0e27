package domain

import (
	"time"
)

// BookingStatus represents the lifecycle status of a booking
type BookingStatus string

const (
	StatusPending    BookingStatus = "pending"
	StatusConfirmed  BookingStatus = "confirmed"
	StatusCheckedIn  BookingStatus = "checked_in"
	StatusCheckedOut BookingStatus = "checked_out"
	StatusCancelled  BookingStatus = "cancelled"
	StatusNoShow     BookingStatus = "no_show"
	StatusRefunded   BookingStatus = "refunded"
)

// PaymentStatus независимая от жизненного цикла ось оплаты
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// Booking represents a guest reservation of a room or a bed
type Booking struct {
	ID     int64
	RoomID int64
	BedID  *int64 // если задан, бронируется кровать в комнате RoomID

	GuestName  string
	GuestEmail string
	GuestPhone *string
	GuestCount int

	CheckIn      time.Time
	CheckOut     time.Time
	MealPlan     MealPlan
	SeasonalTier SeasonalTier

	Status        BookingStatus
	PaymentStatus PaymentStatus
	Pricing       PricingBreakdown
	Notes         *string

	CancellationReason *string
	ConfirmedAt        *time.Time
	CheckedInAt        *time.Time
	CheckedOutAt       *time.Time
	CancelledAt        *time.Time

	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UnitID возвращает юнит, который занимает бронирование: кровать или комнату
func (b *Booking) UnitID() int64 {
	if b.BedID != nil {
		return *b.BedID
	}
	return b.RoomID
}

// IsActive returns true if the booking still holds its unit for its dates
func (b *Booking) IsActive() bool {
	return b.Status.IsActive()
}

// Overlaps returns true if the booking's stay intersects [checkIn, checkOut)
func (b *Booking) Overlaps(checkIn, checkOut time.Time) bool {
	return RangesOverlap(b.CheckIn, b.CheckOut, checkIn, checkOut)
}

// IsActive returns true for statuses that hold the unit
func (s BookingStatus) IsActive() bool {
	for _, active := range ActiveBookingStatuses {
		if s == active {
			return true
		}
	}
	return false
}

// IsTerminal returns true for statuses after which only a refund is possible
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCheckedOut || s == StatusCancelled || s == StatusNoShow || s == StatusRefunded
}

// IsValid returns true if the status is one of the known values
func (s BookingStatus) IsValid() bool {
	return s.IsActive() || s.IsTerminal()
}

// IsValid returns true if the payment status is one of the known values
func (p PaymentStatus) IsValid() bool {
	switch p {
	case PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

// RangesOverlap проверяет пересечение полуинтервалов [aIn, aOut) и [bIn, bOut)
// День выезда одного гостя может быть днем заезда другого
func RangesOverlap(aIn, aOut, bIn, bOut time.Time) bool {
	return aIn.Before(bOut) && bIn.Before(aOut)
}

// BookingFilter фильтр для выборки бронирований юнита
type BookingFilter struct {
	RoomID          *int64
	UnitID          *int64
	From            *time.Time // пересечение с [From, To)
	To              *time.Time
	IncludeInactive bool
}
