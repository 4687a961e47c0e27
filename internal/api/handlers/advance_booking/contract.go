package advance_booking

import (
	"context"

	advanceBooking "github.com/m04kA/SMC-HotelBookingService/internal/usecase/advance_booking"
)

type AdvanceBookingUseCase interface {
	Execute(ctx context.Context, req *advanceBooking.Request) (*advanceBooking.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
