package models

import (
	"time"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
)

// Денежные суммы отдаются строками с двумя знаками после запятой
const displayPlaces = 2

// Request модели

// UpdatePaymentStatusRequest запрос на смену статуса оплаты
type UpdatePaymentStatusRequest struct {
	StaffID int64  `json:"-"`
	Status  string `json:"status"`
}

// GetRoomBookingsRequest запрос на получение бронирований юнита
type GetRoomBookingsRequest struct {
	RoomID          int64
	IncludeInactive bool
}

// Response модели

// PricingResponse детализация стоимости для отображения
type PricingResponse struct {
	Nights                 int    `json:"nights"`
	AdjustedBaseRate       string `json:"adjustedBaseRate"`
	BaseAmount             string `json:"baseAmount"`
	MealAmount             string `json:"mealAmount"`
	WeekendSurchargeAmount string `json:"weekendSurchargeAmount"`
	HolidaySurchargeAmount string `json:"holidaySurchargeAmount"`
	Subtotal               string `json:"subtotal"`
	LongStayDiscountAmount string `json:"longStayDiscountAmount"`
	ManualDiscountAmount   string `json:"manualDiscountAmount"`
	DiscountedAmount       string `json:"discountedAmount"`
	TaxAmount              string `json:"taxAmount"`
	ServiceChargeAmount    string `json:"serviceChargeAmount"`
	TotalAmount            string `json:"totalAmount"`
	Currency               string `json:"currency"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID     int64  `json:"id"`
	RoomID int64  `json:"roomId"`
	BedID  *int64 `json:"bedId,omitempty"`

	GuestName  string  `json:"guestName"`
	GuestEmail string  `json:"guestEmail"`
	GuestPhone *string `json:"guestPhone,omitempty"`
	GuestCount int     `json:"guestCount"`

	CheckIn      string `json:"checkIn"`  // ISO 8601 format
	CheckOut     string `json:"checkOut"` // ISO 8601 format
	MealPlan     string `json:"mealPlan"`
	SeasonalTier string `json:"seasonalTier"`

	Status        string          `json:"status"`
	PaymentStatus string          `json:"paymentStatus"`
	Pricing       PricingResponse `json:"pricing"`
	Notes         *string         `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	ConfirmedAt        *string `json:"confirmedAt,omitempty"`
	CheckedInAt        *string `json:"checkedInAt,omitempty"`
	CheckedOutAt       *string `json:"checkedOutAt,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"`

	Version   int       `json:"version"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainPricing конвертирует расчет в DTO, округляя суммы только здесь
func FromDomainPricing(p domain.PricingBreakdown) PricingResponse {
	return PricingResponse{
		Nights:                 p.Nights,
		AdjustedBaseRate:       p.AdjustedBaseRate.StringFixed(displayPlaces),
		BaseAmount:             p.BaseAmount.StringFixed(displayPlaces),
		MealAmount:             p.MealAmount.StringFixed(displayPlaces),
		WeekendSurchargeAmount: p.WeekendSurchargeAmount.StringFixed(displayPlaces),
		HolidaySurchargeAmount: p.HolidaySurchargeAmount.StringFixed(displayPlaces),
		Subtotal:               p.Subtotal.StringFixed(displayPlaces),
		LongStayDiscountAmount: p.LongStayDiscountAmount.StringFixed(displayPlaces),
		ManualDiscountAmount:   p.ManualDiscountAmount.StringFixed(displayPlaces),
		DiscountedAmount:       p.DiscountedAmount.StringFixed(displayPlaces),
		TaxAmount:              p.TaxAmount.StringFixed(displayPlaces),
		ServiceChargeAmount:    p.ServiceChargeAmount.StringFixed(displayPlaces),
		TotalAmount:            p.TotalAmount.StringFixed(displayPlaces),
		Currency:               p.Currency,
	}
}

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:                 b.ID,
		RoomID:             b.RoomID,
		BedID:              b.BedID,
		GuestName:          b.GuestName,
		GuestEmail:         b.GuestEmail,
		GuestPhone:         b.GuestPhone,
		GuestCount:         b.GuestCount,
		CheckIn:            b.CheckIn.Format(time.RFC3339),
		CheckOut:           b.CheckOut.Format(time.RFC3339),
		MealPlan:           string(b.MealPlan),
		SeasonalTier:       string(b.SeasonalTier),
		Status:             string(b.Status),
		PaymentStatus:      string(b.PaymentStatus),
		Pricing:            FromDomainPricing(b.Pricing),
		Notes:              b.Notes,
		CancellationReason: b.CancellationReason,
		ConfirmedAt:        formatTime(b.ConfirmedAt),
		CheckedInAt:        formatTime(b.CheckedInAt),
		CheckedOutAt:       formatTime(b.CheckedOutAt),
		CancelledAt:        formatTime(b.CancelledAt),
		Version:            b.Version,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// ToDomainPaymentStatus конвертирует строку в domain.PaymentStatus с валидацией
func ToDomainPaymentStatus(status string) (domain.PaymentStatus, error) {
	s := domain.PaymentStatus(status)
	if !s.IsValid() {
		return "", domain.NewError(domain.KindInvalidInput, "unknown payment status %q", status)
	}
	return s, nil
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
