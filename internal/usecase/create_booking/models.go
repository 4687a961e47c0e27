package create_booking

import "github.com/m04kA/SMC-HotelBookingService/internal/domain"

// Request модель запроса на создание бронирования
type Request struct {
	RoomID int64  // ID комнаты
	BedID  *int64 // ID кровати в комнате (опционально)

	GuestName  string
	GuestEmail string
	GuestPhone *string

	Stay  domain.StayRequest // Параметры проживания для расчета стоимости
	Notes *string            // Дополнительные заметки (опционально)
}
