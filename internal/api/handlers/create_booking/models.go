package create_booking

import (
	"github.com/m04kA/SMC-HotelBookingService/internal/api/handlers"
	createBooking "github.com/m04kA/SMC-HotelBookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	RoomID     int64   `json:"roomId"`
	BedID      *int64  `json:"bedId,omitempty"`
	GuestName  string  `json:"guestName"`
	GuestEmail string  `json:"guestEmail"`
	GuestPhone *string `json:"guestPhone,omitempty"`
	Notes      *string `json:"notes,omitempty"`

	handlers.StayRequestBody
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case (с парсингом дат)
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	stay, err := r.StayRequestBody.ToDomain()
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		RoomID:     r.RoomID,
		BedID:      r.BedID,
		GuestName:  r.GuestName,
		GuestEmail: r.GuestEmail,
		GuestPhone: r.GuestPhone,
		Stay:       stay,
		Notes:      r.Notes,
	}, nil
}
