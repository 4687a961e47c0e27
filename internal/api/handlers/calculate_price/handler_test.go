package calculate_price

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-HotelBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	"github.com/m04kA/SMC-HotelBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-HotelBookingService/internal/service/pricing"
	"github.com/m04kA/SMC-HotelBookingService/pkg/logger"
)

type countingMetrics struct {
	results []string
}

func (m *countingMetrics) RecordPriceComputed(result string) {
	m.results = append(m.results, result)
}

func newHandler(t *testing.T) (*Handler, *countingMetrics) {
	t.Helper()
	engine, err := pricing.NewEngine(domain.DefaultRateTable())
	require.NoError(t, err)
	m := &countingMetrics{}
	return NewHandler(engine, m, logger.NewNop()), m
}

func post(h *Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/pricing/calculate", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_PeakLongStay(t *testing.T) {
	h, m := newHandler(t)

	rec := post(h, `{
		"baseRate": 100,
		"checkIn": "2026-07-01",
		"checkOut": "2026-07-11",
		"guestCount": 2,
		"mealPlan": "breakfast",
		"seasonalTier": "peak",
		"taxRatePct": "10",
		"serviceChargeRatePct": 5
	}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.PricingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 10, resp.Nights)
	assert.Equal(t, "1300.00", resp.BaseAmount)
	assert.Equal(t, "300.00", resp.MealAmount)
	assert.Equal(t, "1600.00", resp.Subtotal)
	assert.Equal(t, "160.00", resp.LongStayDiscountAmount)
	assert.Equal(t, "1440.00", resp.DiscountedAmount)
	assert.Equal(t, "144.00", resp.TaxAmount)
	assert.Equal(t, "72.00", resp.ServiceChargeAmount)
	assert.Equal(t, "1656.00", resp.TotalAmount)
	assert.Equal(t, "USD", resp.Currency)
	assert.Equal(t, []string{"ok"}, m.results)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode int
		wantKind string
	}{
		{
			name:     "same day",
			body:     `{"baseRate": 100, "checkIn": "2026-07-01", "checkOut": "2026-07-01", "guestCount": 1}`,
			wantCode: http.StatusBadRequest,
			wantKind: "invalid_date_range",
		},
		{
			name:     "discount above subtotal",
			body:     `{"baseRate": 100, "checkIn": "2026-07-01", "checkOut": "2026-07-02", "guestCount": 1, "manualDiscount": 500}`,
			wantCode: http.StatusUnprocessableEntity,
			wantKind: "negative_amount",
		},
		{
			name:     "unknown meal plan",
			body:     `{"baseRate": 100, "checkIn": "2026-07-01", "checkOut": "2026-07-02", "guestCount": 1, "mealPlan": "buffet"}`,
			wantCode: http.StatusBadRequest,
			wantKind: "invalid_input",
		},
		{
			name:     "bad date",
			body:     `{"baseRate": 100, "checkIn": "07/01/2026", "checkOut": "2026-07-02", "guestCount": 1}`,
			wantCode: http.StatusBadRequest,
			wantKind: "invalid_input",
		},
		{
			name:     "unknown field",
			body:     `{"price": 100}`,
			wantCode: http.StatusBadRequest,
			wantKind: "bad_request",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newHandler(t)

			rec := post(h, tt.body)
			assert.Equal(t, tt.wantCode, rec.Code)

			var resp handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantKind, resp.Code)
			assert.NotEmpty(t, resp.Message)
		})
	}
}
