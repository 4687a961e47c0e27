package bookings

import (
	"errors"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = domain.NewError(domain.KindNotFound, "booking not found")

	// ErrRoomNotFound возвращается, когда юнит не найден
	ErrRoomNotFound = domain.NewError(domain.KindNotFound, "room not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings.service: internal error")
)
