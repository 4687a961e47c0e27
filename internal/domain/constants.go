package domain

// Формат дат в API и логах
const DateFormat = "2006-01-02" // YYYY-MM-DD

// Значения тарифной сетки по умолчанию
const (
	DefaultCurrency                = "USD"
	DefaultLongStayThresholdNights = 7
	DefaultLongStayDiscountPct     = "10"
	DefaultWeekendSurchargeRate    = "25"
	DefaultHolidaySurchargeRate    = "50"
)

// Ограничения входных данных
const (
	MinGuestCount         = 1
	MaxGuestCount         = 20
	MaxStayNights         = 365
	MaxGuestNameLength    = 200
	MaxNotesLength        = 500
	MaxStatusReasonLength = 500
)

// ActiveBookingStatuses статусы, в которых бронирование удерживает юнит на свои даты
// Используется при проверке пересечений
var ActiveBookingStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCheckedIn,
}

// InactiveBookingStatuses статусы, освободившие юнит
var InactiveBookingStatuses = []BookingStatus{
	StatusCheckedOut,
	StatusCancelled,
	StatusNoShow,
	StatusRefunded,
}
