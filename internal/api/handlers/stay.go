package handlers

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
)

// StayRequestBody параметры проживания в теле запроса
// Денежные значения принимаются числом или строкой
type StayRequestBody struct {
	BaseRate              decimal.Decimal `json:"baseRate"`
	CheckIn               string          `json:"checkIn"`  // "2025-10-15" или RFC 3339
	CheckOut              string          `json:"checkOut"` // "2025-10-18" или RFC 3339
	GuestCount            int             `json:"guestCount"`
	MealPlan              string          `json:"mealPlan,omitempty"`     // по умолчанию none
	SeasonalTier          string          `json:"seasonalTier,omitempty"` // по умолчанию regular
	ApplyWeekendSurcharge bool            `json:"applyWeekendSurcharge"`
	ApplyHolidaySurcharge bool            `json:"applyHolidaySurcharge"`
	ManualDiscount        decimal.Decimal `json:"manualDiscount"`
	TaxRatePct            decimal.Decimal `json:"taxRatePct"`
	ServiceChargeRatePct  decimal.Decimal `json:"serviceChargeRatePct"`
}

// ToDomain конвертирует тело запроса в domain.StayRequest
func (b *StayRequestBody) ToDomain() (domain.StayRequest, error) {
	checkIn, err := ParseStayTime(b.CheckIn)
	if err != nil {
		return domain.StayRequest{}, fmt.Errorf("checkIn: %w", err)
	}
	checkOut, err := ParseStayTime(b.CheckOut)
	if err != nil {
		return domain.StayRequest{}, fmt.Errorf("checkOut: %w", err)
	}

	mealPlan := domain.MealPlan(b.MealPlan)
	if mealPlan == "" {
		mealPlan = domain.MealPlanNone
	}
	tier := domain.SeasonalTier(b.SeasonalTier)
	if tier == "" {
		tier = domain.SeasonRegular
	}

	return domain.StayRequest{
		BaseRate:              b.BaseRate,
		CheckIn:               checkIn,
		CheckOut:              checkOut,
		GuestCount:            b.GuestCount,
		MealPlan:              mealPlan,
		SeasonalTier:          tier,
		ApplyWeekendSurcharge: b.ApplyWeekendSurcharge,
		ApplyHolidaySurcharge: b.ApplyHolidaySurcharge,
		ManualDiscount:        b.ManualDiscount,
		TaxRatePct:            b.TaxRatePct,
		ServiceChargeRatePct:  b.ServiceChargeRatePct,
	}, nil
}
