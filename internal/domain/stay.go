package domain

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// MealPlan уровень питания
type MealPlan string

const (
	MealPlanNone      MealPlan = "none"
	MealPlanBreakfast MealPlan = "breakfast"
	MealPlanHalfBoard MealPlan = "half_board"
	MealPlanFullBoard MealPlan = "full_board"
)

// MealPlans все допустимые планы питания
var MealPlans = []MealPlan{MealPlanNone, MealPlanBreakfast, MealPlanHalfBoard, MealPlanFullBoard}

// IsValid returns true if the meal plan is one of the known values
func (m MealPlan) IsValid() bool {
	for _, p := range MealPlans {
		if m == p {
			return true
		}
	}
	return false
}

// SeasonalTier сезонный тарифный коридор
type SeasonalTier string

const (
	SeasonLow     SeasonalTier = "low"
	SeasonRegular SeasonalTier = "regular"
	SeasonHigh    SeasonalTier = "high"
	SeasonPeak    SeasonalTier = "peak"
)

// SeasonalTiers все допустимые сезоны
var SeasonalTiers = []SeasonalTier{SeasonLow, SeasonRegular, SeasonHigh, SeasonPeak}

// IsValid returns true if the tier is one of the known values
func (s SeasonalTier) IsValid() bool {
	for _, t := range SeasonalTiers {
		if s == t {
			return true
		}
	}
	return false
}

// StayRequest параметры проживания для расчета стоимости
type StayRequest struct {
	BaseRate              decimal.Decimal // цена за ночь
	CheckIn               time.Time
	CheckOut              time.Time
	GuestCount            int
	MealPlan              MealPlan
	SeasonalTier          SeasonalTier
	ApplyWeekendSurcharge bool
	ApplyHolidaySurcharge bool
	ManualDiscount        decimal.Decimal
	TaxRatePct            decimal.Decimal // 0-100
	ServiceChargeRatePct  decimal.Decimal // 0-100
}

// Nights количество ночей: ceil(checkOut - checkIn) в сутках
// Возвращает ErrInvalidDateRange, если ночей меньше одной
func (s StayRequest) Nights() (int, error) {
	if s.CheckIn.IsZero() || s.CheckOut.IsZero() {
		return 0, NewError(KindInvalidDateRange, "checkIn and checkOut are required")
	}

	nights := int(math.Ceil(s.CheckOut.Sub(s.CheckIn).Hours() / 24))
	if nights < 1 {
		return 0, NewError(KindInvalidDateRange, "checkOut %s must be after checkIn %s",
			s.CheckOut.Format(DateFormat), s.CheckIn.Format(DateFormat))
	}

	return nights, nil
}

// Validate проверяет входные данные, кроме диапазона дат (его проверяет Nights)
func (s StayRequest) Validate() error {
	hundred := decimal.NewFromInt(100)

	if s.BaseRate.IsNegative() {
		return NewError(KindInvalidInput, "baseRate must not be negative")
	}
	if s.GuestCount < MinGuestCount || s.GuestCount > MaxGuestCount {
		return NewError(KindInvalidInput, "guestCount must be in %d..%d", MinGuestCount, MaxGuestCount)
	}
	if !s.MealPlan.IsValid() {
		return NewError(KindInvalidInput, "unknown mealPlan %q", s.MealPlan)
	}
	if !s.SeasonalTier.IsValid() {
		return NewError(KindInvalidInput, "unknown seasonalTier %q", s.SeasonalTier)
	}
	if s.ManualDiscount.IsNegative() {
		return NewError(KindInvalidInput, "manualDiscount must not be negative")
	}
	if s.TaxRatePct.IsNegative() || s.TaxRatePct.GreaterThan(hundred) {
		return NewError(KindInvalidInput, "taxRatePct must be in 0..100")
	}
	if s.ServiceChargeRatePct.IsNegative() || s.ServiceChargeRatePct.GreaterThan(hundred) {
		return NewError(KindInvalidInput, "serviceChargeRatePct must be in 0..100")
	}

	return nil
}
