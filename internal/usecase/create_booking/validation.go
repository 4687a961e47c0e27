package create_booking

import (
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
)

// validateRequest проверяет данные гостя и идентификаторы юнитов
// Параметры проживания проверяет движок расчета стоимости
func validateRequest(req *Request) error {
	if req.RoomID <= 0 {
		return domain.NewError(domain.KindInvalidInput, "roomId must be positive")
	}

	if req.BedID != nil && *req.BedID <= 0 {
		return domain.NewError(domain.KindInvalidInput, "bedId must be positive")
	}

	name := strings.TrimSpace(req.GuestName)
	if name == "" {
		return domain.NewError(domain.KindInvalidInput, "guestName is required")
	}
	if utf8.RuneCountInString(name) > domain.MaxGuestNameLength {
		return domain.NewError(domain.KindInvalidInput, "guestName exceeds %d characters", domain.MaxGuestNameLength)
	}

	if _, err := mail.ParseAddress(req.GuestEmail); err != nil {
		return domain.NewError(domain.KindInvalidInput, "guestEmail %q is not a valid address", req.GuestEmail)
	}

	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
		return domain.NewError(domain.KindInvalidInput, "notes exceed %d characters", domain.MaxNotesLength)
	}

	return nil
}

// validateUnit проверяет, что бронируемый юнит соответствует комнате
// Комнату, разделенную на кровати, нельзя забронировать целиком
func validateUnit(room *domain.Room, bed *domain.Room, beds []*domain.Room) error {
	if room.IsBed() {
		return domain.NewError(domain.KindInvalidInput, "unit %d is a bed, pass it as bedId", room.ID)
	}

	if bed == nil {
		if len(beds) > 0 {
			return domain.NewError(domain.KindInvalidInput, "room %d is split into %d beds, bedId is required", room.ID, len(beds))
		}
		return nil
	}

	if !bed.IsBed() || !bed.BelongsTo(room.ID) {
		return domain.NewError(domain.KindInvalidInput, "unit %d is not a bed of room %d", bed.ID, room.ID)
	}

	return nil
}
