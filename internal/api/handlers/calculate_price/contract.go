package calculate_price

import "github.com/m04kA/SMC-HotelBookingService/internal/domain"

type PricingEngine interface {
	Compute(stay domain.StayRequest) (domain.PricingBreakdown, error)
}

type Metrics interface {
	RecordPriceComputed(result string)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
