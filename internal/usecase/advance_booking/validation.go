package advance_booking

import (
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
)

func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return domain.NewError(domain.KindInvalidInput, "bookingId must be positive")
	}

	if _, err := domain.ParseBookingEvent(string(req.Event)); err != nil {
		return err
	}

	if req.Reason != nil && utf8.RuneCountInString(*req.Reason) > domain.MaxStatusReasonLength {
		return domain.NewError(domain.KindInvalidInput, "reason exceeds %d characters", domain.MaxStatusReasonLength)
	}

	// Обход окна заезда фиксируется в журнале, поэтому причина обязательна
	if req.Override {
		if req.Event != domain.EventCheckIn {
			return domain.NewError(domain.KindInvalidInput, "override applies only to %s", domain.EventCheckIn)
		}
		if req.Reason == nil || strings.TrimSpace(*req.Reason) == "" {
			return domain.NewError(domain.KindInvalidInput, "override requires a reason")
		}
	}

	return nil
}
