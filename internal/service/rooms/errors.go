package rooms

import (
	"errors"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
)

var (
	// ErrRoomNotFound возвращается, когда юнит не найден
	ErrRoomNotFound = domain.NewError(domain.KindNotFound, "room not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("rooms.service: internal error")
)
