package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// RateTable тарифная сетка: сезонные коэффициенты, стоимость питания, надбавки и скидки
type RateTable struct {
	Currency                string
	SeasonalMultipliers     map[SeasonalTier]decimal.Decimal
	MealPlanCosts           map[MealPlan]decimal.Decimal // на гостя за ночь
	WeekendSurchargeRate    decimal.Decimal              // за ночь
	HolidaySurchargeRate    decimal.Decimal              // за ночь
	LongStayThresholdNights int                          // скидка при nights > threshold
	LongStayDiscountPct     decimal.Decimal
}

// DefaultRateTable возвращает тарифную сетку по умолчанию
// Каждый вызов создает новые map, вызывающий может их изменять
func DefaultRateTable() RateTable {
	return RateTable{
		Currency: DefaultCurrency,
		SeasonalMultipliers: map[SeasonalTier]decimal.Decimal{
			SeasonLow:     decimal.RequireFromString("0.85"),
			SeasonRegular: decimal.RequireFromString("1.00"),
			SeasonHigh:    decimal.RequireFromString("1.15"),
			SeasonPeak:    decimal.RequireFromString("1.30"),
		},
		MealPlanCosts: map[MealPlan]decimal.Decimal{
			MealPlanNone:      decimal.Zero,
			MealPlanBreakfast: decimal.RequireFromString("15"),
			MealPlanHalfBoard: decimal.RequireFromString("35"),
			MealPlanFullBoard: decimal.RequireFromString("55"),
		},
		WeekendSurchargeRate:    decimal.RequireFromString(DefaultWeekendSurchargeRate),
		HolidaySurchargeRate:    decimal.RequireFromString(DefaultHolidaySurchargeRate),
		LongStayThresholdNights: DefaultLongStayThresholdNights,
		LongStayDiscountPct:     decimal.RequireFromString(DefaultLongStayDiscountPct),
	}
}

// Validate проверяет, что для каждого сезона и плана питания задано неотрицательное значение
func (t RateTable) Validate() error {
	if t.Currency == "" {
		return fmt.Errorf("currency is required")
	}

	for _, tier := range SeasonalTiers {
		m, ok := t.SeasonalMultipliers[tier]
		if !ok {
			return fmt.Errorf("seasonal multiplier for %q is missing", tier)
		}
		if m.IsNegative() {
			return fmt.Errorf("seasonal multiplier for %q must not be negative", tier)
		}
	}
	for tier := range t.SeasonalMultipliers {
		if !tier.IsValid() {
			return fmt.Errorf("unknown seasonal tier %q", tier)
		}
	}

	for _, plan := range MealPlans {
		c, ok := t.MealPlanCosts[plan]
		if !ok {
			return fmt.Errorf("meal plan cost for %q is missing", plan)
		}
		if c.IsNegative() {
			return fmt.Errorf("meal plan cost for %q must not be negative", plan)
		}
	}
	for plan := range t.MealPlanCosts {
		if !plan.IsValid() {
			return fmt.Errorf("unknown meal plan %q", plan)
		}
	}

	if t.WeekendSurchargeRate.IsNegative() || t.HolidaySurchargeRate.IsNegative() {
		return fmt.Errorf("surcharge rates must not be negative")
	}
	if t.LongStayThresholdNights < 0 {
		return fmt.Errorf("long stay threshold must not be negative")
	}
	if t.LongStayDiscountPct.IsNegative() || t.LongStayDiscountPct.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("long stay discount pct must be in 0..100")
	}

	return nil
}
