package advance_booking

import "github.com/m04kA/SMC-HotelBookingService/internal/domain"

// Request модель запроса на переход бронирования
type Request struct {
	BookingID int64
	Event     domain.BookingEvent
	StaffID   int64   // сотрудник, выполняющий действие
	Override  bool    // заселение вне дат проживания
	Reason    *string // причина отмены или обхода окна заезда
}

// Response результат перехода
type Response struct {
	Booking    *domain.Booking
	Room       *domain.Room // юнит, если переход изменил его статус
	Overridden bool
}
