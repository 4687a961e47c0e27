package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-HotelBookingService/internal/api/handlers"
)

type contextKey string

const (
	staffIDKey contextKey = "staffID"

	// StaffIDHeader заголовок с ID сотрудника, выставляется шлюзом
	StaffIDHeader = "X-Staff-ID"

	msgMissingStaffID = "отсутствует заголовок X-Staff-ID"
	msgInvalidStaffID = "некорректный X-Staff-ID"
)

// Auth проверяет наличие X-Staff-ID и кладет его в контекст
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(StaffIDHeader)
		if raw == "" {
			handlers.RespondUnauthorized(w, msgMissingStaffID)
			return
		}

		staffID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || staffID <= 0 {
			handlers.RespondUnauthorized(w, msgInvalidStaffID)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithStaffID(r.Context(), staffID)))
	})
}

// WithStaffID кладет ID сотрудника в контекст
func WithStaffID(ctx context.Context, staffID int64) context.Context {
	return context.WithValue(ctx, staffIDKey, staffID)
}

// GetStaffID достает ID сотрудника из контекста
func GetStaffID(ctx context.Context) (int64, bool) {
	staffID, ok := ctx.Value(staffIDKey).(int64)
	return staffID, ok
}
