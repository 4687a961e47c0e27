package domain

import "github.com/shopspring/decimal"

// PricingBreakdown детализированный расчет стоимости проживания
// Значения не округляются; округление выполняется только при отображении
type PricingBreakdown struct {
	Nights                 int
	AdjustedBaseRate       decimal.Decimal
	BaseAmount             decimal.Decimal
	MealAmount             decimal.Decimal
	WeekendSurchargeAmount decimal.Decimal
	HolidaySurchargeAmount decimal.Decimal
	Subtotal               decimal.Decimal
	LongStayDiscountAmount decimal.Decimal
	ManualDiscountAmount   decimal.Decimal
	DiscountedAmount       decimal.Decimal
	TaxAmount              decimal.Decimal
	ServiceChargeAmount    decimal.Decimal
	TotalAmount            decimal.Decimal
	Currency               string
}

// IsBalanced returns true if total == subtotal - discounts + tax + service charge
func (p PricingBreakdown) IsBalanced() bool {
	expected := p.Subtotal.
		Sub(p.LongStayDiscountAmount).
		Sub(p.ManualDiscountAmount).
		Add(p.TaxAmount).
		Add(p.ServiceChargeAmount)
	return p.TotalAmount.Equal(expected)
}
