package advance_booking

import (
	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	"github.com/m04kA/SMC-HotelBookingService/internal/service/bookings/models"
	advanceBooking "github.com/m04kA/SMC-HotelBookingService/internal/usecase/advance_booking"
	"github.com/m04kA/SMC-HotelBookingService/pkg/ptr"
)

// AdvanceBookingRequest необязательное тело запроса
type AdvanceBookingRequest struct {
	Override bool    `json:"override,omitempty"` // заселение вне дат проживания
	Reason   *string `json:"reason,omitempty"`
}

// AdvanceBookingResponse HTTP response model
type AdvanceBookingResponse struct {
	models.BookingResponse
	RoomStatus *string `json:"roomStatus,omitempty"` // новый статус юнита, если он изменился
	Overridden bool    `json:"overridden,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *AdvanceBookingRequest) ToUseCaseRequest(bookingID, staffID int64, event domain.BookingEvent) *advanceBooking.Request {
	return &advanceBooking.Request{
		BookingID: bookingID,
		Event:     event,
		StaffID:   staffID,
		Override:  r.Override,
		Reason:    r.Reason,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *advanceBooking.Response) *AdvanceBookingResponse {
	result := &AdvanceBookingResponse{
		BookingResponse: *models.FromDomainBooking(resp.Booking),
		Overridden:      resp.Overridden,
	}
	if resp.Room != nil {
		result.RoomStatus = ptr.Ptr(string(resp.Room.Status))
	}
	return result
}
