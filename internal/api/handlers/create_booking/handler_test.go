package create_booking

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-HotelBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-HotelBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	"github.com/m04kA/SMC-HotelBookingService/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-HotelBookingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-HotelBookingService/pkg/logger"
)

type fakeUseCase struct {
	got *createBooking.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *createBooking.Request) (*domain.Booking, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Booking{
		ID:            7,
		RoomID:        req.RoomID,
		BedID:         req.BedID,
		GuestName:     req.GuestName,
		CheckIn:       req.Stay.CheckIn,
		CheckOut:      req.Stay.CheckOut,
		Status:        domain.StatusPending,
		PaymentStatus: domain.PaymentPending,
	}, nil
}

const validBody = `{
	"roomId": 3,
	"bedId": 31,
	"guestName": "Ada Lovelace",
	"guestEmail": "ada@example.com",
	"baseRate": "120.50",
	"checkIn": "2026-03-01",
	"checkOut": "2026-03-04T11:00:00Z",
	"guestCount": 1,
	"mealPlan": "half_board"
}`

func serve(uc *fakeUseCase, body string) *httptest.ResponseRecorder {
	h := NewHandler(uc, logger.NewNop())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	req = req.WithContext(middleware.WithStaffID(req.Context(), 5))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	uc := &fakeUseCase{}

	rec := serve(uc, validBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	require.NotNil(t, uc.got)
	assert.Equal(t, int64(3), uc.got.RoomID)
	assert.Equal(t, int64(31), *uc.got.BedID)
	assert.Equal(t, "120.5", uc.got.Stay.BaseRate.String())
	assert.Equal(t, domain.MealPlanHalfBoard, uc.got.Stay.MealPlan)
	assert.Equal(t, domain.SeasonRegular, uc.got.Stay.SeasonalTier)
	assert.Equal(t, 11, uc.got.Stay.CheckOut.Hour())

	var resp models.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "pending", resp.PaymentStatus)
	assert.Equal(t, "2026-03-01T00:00:00Z", resp.CheckIn)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		err      error
		wantCode int
		wantKind string
	}{
		{
			name:     "room unavailable",
			body:     validBody,
			err:      domain.NewError(domain.KindRoomUnavailable, "unit 31 is already booked"),
			wantCode: http.StatusConflict,
			wantKind: "room_unavailable",
		},
		{
			name:     "room not found",
			body:     validBody,
			err:      domain.NewError(domain.KindNotFound, "room 3 not found"),
			wantCode: http.StatusNotFound,
			wantKind: "not_found",
		},
		{
			name:     "invalid date range",
			body:     validBody,
			err:      domain.NewError(domain.KindInvalidDateRange, "checkOut must be after checkIn"),
			wantCode: http.StatusBadRequest,
			wantKind: "invalid_date_range",
		},
		{
			name:     "internal",
			body:     validBody,
			err:      errors.New("db is down"),
			wantCode: http.StatusInternalServerError,
			wantKind: "internal",
		},
		{
			name:     "malformed json",
			body:     `{"roomId": `,
			wantCode: http.StatusBadRequest,
			wantKind: "bad_request",
		},
		{
			name:     "bad date",
			body:     `{"roomId": 3, "checkIn": "tomorrow", "checkOut": "2026-03-04"}`,
			wantCode: http.StatusBadRequest,
			wantKind: "invalid_input",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeUseCase{err: tt.err}, tt.body)
			assert.Equal(t, tt.wantCode, rec.Code)

			var resp handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantKind, resp.Code)
		})
	}
}
