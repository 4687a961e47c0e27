package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
)

// Engine считает стоимость проживания по тарифной сетке
// Не имеет изменяемого состояния и безопасен для параллельного использования
type Engine struct {
	rates domain.RateTable
}

// NewEngine создает движок расчета стоимости
func NewEngine(rates domain.RateTable) (*Engine, error) {
	if err := rates.Validate(); err != nil {
		return nil, fmt.Errorf("pricing: invalid rate table: %w", err)
	}

	// Копируем map, чтобы внешние изменения не влияли на расчеты
	multipliers := make(map[domain.SeasonalTier]decimal.Decimal, len(rates.SeasonalMultipliers))
	for k, v := range rates.SeasonalMultipliers {
		multipliers[k] = v
	}
	mealCosts := make(map[domain.MealPlan]decimal.Decimal, len(rates.MealPlanCosts))
	for k, v := range rates.MealPlanCosts {
		mealCosts[k] = v
	}
	rates.SeasonalMultipliers = multipliers
	rates.MealPlanCosts = mealCosts

	return &Engine{rates: rates}, nil
}

// Currency валюта расчетов
func (e *Engine) Currency() string {
	return e.rates.Currency
}

// Compute рассчитывает детализацию стоимости проживания
// Каждый этап использует результат предыдущего; промежуточные суммы не округляются
func (e *Engine) Compute(stay domain.StayRequest) (domain.PricingBreakdown, error) {
	// 1. Количество ночей
	nights, err := stay.Nights()
	if err != nil {
		return domain.PricingBreakdown{}, err
	}
	if nights > domain.MaxStayNights {
		return domain.PricingBreakdown{}, domain.NewError(domain.KindInvalidDateRange,
			"stay of %d nights exceeds %d", nights, domain.MaxStayNights)
	}

	if err := stay.Validate(); err != nil {
		return domain.PricingBreakdown{}, err
	}

	n := decimal.NewFromInt(int64(nights))

	// 2-3. Базовая стоимость с сезонным коэффициентом
	adjustedBaseRate := stay.BaseRate.Mul(e.rates.SeasonalMultipliers[stay.SeasonalTier])
	baseAmount := adjustedBaseRate.Mul(n)

	// 4. Питание: на гостя за ночь
	mealAmount := e.rates.MealPlanCosts[stay.MealPlan].
		Mul(n).
		Mul(decimal.NewFromInt(int64(stay.GuestCount)))

	// 5. Надбавки за выходные и праздники начисляются за каждую ночь
	weekendSurcharge := decimal.Zero
	if stay.ApplyWeekendSurcharge {
		weekendSurcharge = e.rates.WeekendSurchargeRate.Mul(n)
	}
	holidaySurcharge := decimal.Zero
	if stay.ApplyHolidaySurcharge {
		holidaySurcharge = e.rates.HolidaySurchargeRate.Mul(n)
	}

	// 6. Промежуточный итог
	subtotal := baseAmount.Add(mealAmount).Add(weekendSurcharge).Add(holidaySurcharge)

	// 7. Скидка за длительное проживание: строго больше порога
	longStayDiscount := decimal.Zero
	if nights > e.rates.LongStayThresholdNights {
		longStayDiscount = percentOf(subtotal, e.rates.LongStayDiscountPct)
	}

	// 8. Скидки не должны превышать промежуточный итог
	discounted := subtotal.Sub(longStayDiscount).Sub(stay.ManualDiscount)
	if discounted.IsNegative() {
		return domain.PricingBreakdown{}, domain.NewError(domain.KindNegativeAmount,
			"discounts (long stay %s, manual %s) exceed subtotal %s",
			longStayDiscount.String(), stay.ManualDiscount.String(), subtotal.String())
	}

	// 9. Налог и сервисный сбор считаются независимо от одной базы
	tax := percentOf(discounted, stay.TaxRatePct)
	serviceCharge := percentOf(discounted, stay.ServiceChargeRatePct)

	// 10. Итог
	total := discounted.Add(tax).Add(serviceCharge)

	return domain.PricingBreakdown{
		Nights:                 nights,
		AdjustedBaseRate:       adjustedBaseRate,
		BaseAmount:             baseAmount,
		MealAmount:             mealAmount,
		WeekendSurchargeAmount: weekendSurcharge,
		HolidaySurchargeAmount: holidaySurcharge,
		Subtotal:               subtotal,
		LongStayDiscountAmount: longStayDiscount,
		ManualDiscountAmount:   stay.ManualDiscount,
		DiscountedAmount:       discounted,
		TaxAmount:              tax,
		ServiceChargeAmount:    serviceCharge,
		TotalAmount:            total,
		Currency:               e.rates.Currency,
	}, nil
}

// percentOf возвращает pct% от amount без округления
// Shift(-2) делит на 100 точно, в отличие от Div
func percentOf(amount, pct decimal.Decimal) decimal.Decimal {
	return amount.Mul(pct).Shift(-2)
}
