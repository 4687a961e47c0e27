package booking

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	"github.com/m04kA/SMC-HotelBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-HotelBookingService/pkg/ptr"
)

var (
	checkIn  = time.Date(2026, 3, 1, 14, 0, 0, 0, time.UTC)
	checkOut = time.Date(2026, 3, 11, 11, 0, 0, 0, time.UTC)
	created  = time.Date(2026, 2, 1, 9, 30, 0, 0, time.UTC)
)

func newMock(t *testing.T) (*Repository, *sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return NewRepository(db), db, mock
}

// inTx открывает транзакцию на моке и кладет её в контекст
func inTx(t *testing.T, db *sql.DB, mock sqlmock.Sqlmock) (context.Context, *sql.Tx) {
	t.Helper()
	mock.ExpectBegin()
	tx, err := db.Begin()
	require.NoError(t, err)
	return dbmetrics.WithTx(context.Background(), tx), tx
}

func bookingRow(id int64, bedID *int64, status string, version int) []driver.Value {
	var bed driver.Value
	if bedID != nil {
		bed = *bedID
	}
	return []driver.Value{
		id, int64(4), bed, "Ann Lee", "ann@example.com", nil, int64(2),
		checkIn, checkOut, "breakfast", "peak", status, "pending",
		int64(10), "130", "1300", "300", "0", "0", "1600", "160", "0", "1440", "144", "72", "1656",
		"USD", nil, nil, nil, nil, nil, nil,
		int64(version), created, created,
	}
}

func bookingRows(rows ...[]driver.Value) *sqlmock.Rows {
	result := sqlmock.NewRows(columns)
	for _, r := range rows {
		result.AddRow(r...)
	}
	return result
}

func newBooking() *domain.Booking {
	return &domain.Booking{
		RoomID:        4,
		BedID:         ptr.Ptr(int64(7)),
		GuestName:     "Ann Lee",
		GuestEmail:    "ann@example.com",
		GuestCount:    2,
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		MealPlan:      domain.MealPlanBreakfast,
		SeasonalTier:  domain.SeasonPeak,
		Status:        domain.StatusPending,
		PaymentStatus: domain.PaymentPending,
		Pricing: domain.PricingBreakdown{
			Nights:      10,
			TotalAmount: decimal.RequireFromString("1656"),
			Currency:    "USD",
		},
	}
}

func TestCreate(t *testing.T) {
	repo, _, mock := newMock(t)

	args := []driver.Value{int64(4), int64(7), int64(7)}
	for i := 0; i < 25; i++ {
		args = append(args, sqlmock.AnyArg())
	}

	mock.ExpectQuery(`INSERT INTO bookings \(room_id,bed_id,unit_id,`).
		WithArgs(args...).
		WillReturnRows(sqlmock.NewRows([]string{"id", "version", "created_at", "updated_at"}).
			AddRow(int64(31), int64(1), created, created))

	booking, err := repo.Create(context.Background(), newBooking())
	require.NoError(t, err)
	assert.Equal(t, int64(31), booking.ID)
	assert.Equal(t, 1, booking.Version)
	assert.Equal(t, created, booking.CreatedAt)
}

func TestCreate_ExclusionViolation(t *testing.T) {
	repo, _, mock := newMock(t)

	mock.ExpectQuery(`INSERT INTO bookings`).
		WillReturnError(&pq.Error{Code: "23P01", Constraint: "bookings_no_overlap"})

	_, err := repo.Create(context.Background(), newBooking())
	assert.ErrorIs(t, err, ErrOverlap)
}

func TestCreate_OtherError(t *testing.T) {
	repo, _, mock := newMock(t)

	mock.ExpectQuery(`INSERT INTO bookings`).WillReturnError(errors.New("connection refused"))

	_, err := repo.Create(context.Background(), newBooking())
	assert.ErrorIs(t, err, ErrExecQuery)
	assert.NotErrorIs(t, err, ErrOverlap)
}

func TestGetByID(t *testing.T) {
	repo, _, mock := newMock(t)

	mock.ExpectQuery(`FROM bookings WHERE id = \$1$`).
		WithArgs(int64(31)).
		WillReturnRows(bookingRows(bookingRow(31, nil, "confirmed", 2)))

	booking, err := repo.GetByID(context.Background(), 31)
	require.NoError(t, err)

	assert.Equal(t, int64(31), booking.ID)
	assert.Nil(t, booking.BedID)
	assert.Equal(t, int64(4), booking.UnitID())
	assert.Equal(t, domain.StatusConfirmed, booking.Status)
	assert.Equal(t, domain.MealPlanBreakfast, booking.MealPlan)
	assert.Equal(t, checkIn, booking.CheckIn)
	assert.True(t, booking.Pricing.TotalAmount.Equal(decimal.RequireFromString("1656")))
	assert.True(t, booking.Pricing.LongStayDiscountAmount.Equal(decimal.RequireFromString("160")))
	assert.Nil(t, booking.ConfirmedAt)
	assert.Equal(t, 2, booking.Version)
}

func TestGetByID_NotFound(t *testing.T) {
	repo, _, mock := newMock(t)

	mock.ExpectQuery(`FROM bookings WHERE id = \$1`).
		WithArgs(int64(99)).
		WillReturnRows(bookingRows())

	_, err := repo.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetByIDForUpdate_LocksOnlyInTransaction(t *testing.T) {
	repo, db, mock := newMock(t)

	// Вне транзакции блокировка не нужна
	mock.ExpectQuery(`FROM bookings WHERE id = \$1$`).
		WillReturnRows(bookingRows(bookingRow(31, nil, "pending", 1)))

	_, err := repo.GetByIDForUpdate(context.Background(), 31)
	require.NoError(t, err)

	txCtx, tx := inTx(t, db, mock)
	mock.ExpectQuery(`FROM bookings WHERE id = \$1 FOR UPDATE$`).
		WillReturnRows(bookingRows(bookingRow(31, nil, "pending", 1)))
	mock.ExpectCommit()

	_, err = repo.GetByIDForUpdate(txCtx, 31)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())
}

func TestGetByFilter(t *testing.T) {
	repo, _, mock := newMock(t)

	mock.ExpectQuery(`FROM bookings WHERE unit_id = \$1 AND status IN \(\$2,\$3,\$4\) ORDER BY check_in ASC, id ASC`).
		WithArgs(int64(7), "pending", "confirmed", "checked_in").
		WillReturnRows(bookingRows(
			bookingRow(1, ptr.Ptr(int64(7)), "confirmed", 2),
			bookingRow(2, ptr.Ptr(int64(7)), "pending", 1),
		))

	bookings, err := repo.GetByFilter(context.Background(), domain.BookingFilter{UnitID: ptr.Ptr(int64(7))})
	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Equal(t, int64(7), bookings[0].UnitID())
}

func TestGetByFilter_IncludeInactivePeriod(t *testing.T) {
	repo, _, mock := newMock(t)

	from := checkIn
	to := checkOut
	mock.ExpectQuery(`FROM bookings WHERE room_id = \$1 AND check_in < \$2 AND check_out > \$3 ORDER BY`).
		WithArgs(int64(4), to, from).
		WillReturnRows(bookingRows())

	bookings, err := repo.GetByFilter(context.Background(), domain.BookingFilter{
		RoomID:          ptr.Ptr(int64(4)),
		From:            &from,
		To:              &to,
		IncludeInactive: true,
	})
	require.NoError(t, err)
	assert.Empty(t, bookings)
}

func TestGetActiveOverlapping(t *testing.T) {
	repo, db, mock := newMock(t)

	txCtx, tx := inTx(t, db, mock)
	mock.ExpectQuery(`WHERE unit_id = \$1 AND status IN \(\$2,\$3,\$4\) AND check_in < \$5 AND check_out > \$6 ORDER BY check_in ASC FOR UPDATE$`).
		WithArgs(int64(4), "pending", "confirmed", "checked_in", checkOut, checkIn).
		WillReturnRows(bookingRows(bookingRow(1, nil, "confirmed", 2)))
	mock.ExpectRollback()

	bookings, err := repo.GetActiveOverlapping(txCtx, 4, checkIn, checkOut)
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	require.NoError(t, tx.Rollback())
}

func TestUpdateLifecycle(t *testing.T) {
	repo, _, mock := newMock(t)

	now := time.Date(2026, 3, 1, 15, 0, 0, 0, time.UTC)
	booking := newBooking()
	booking.ID = 31
	booking.Status = domain.StatusConfirmed
	booking.ConfirmedAt = &now

	mock.ExpectQuery(`UPDATE bookings SET status = \$1, .* version = version \+ 1, updated_at = NOW\(\) WHERE id = \$8 AND version = \$9 RETURNING id, room_id`).
		WithArgs("confirmed", "pending", nil, now, nil, nil, nil, int64(31), int64(1)).
		WillReturnRows(bookingRows(bookingRow(31, ptr.Ptr(int64(7)), "confirmed", 2)))

	updated, err := repo.UpdateLifecycle(context.Background(), booking, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Version)
	assert.Equal(t, domain.StatusConfirmed, updated.Status)
}

func TestUpdateLifecycle_VersionConflict(t *testing.T) {
	repo, _, mock := newMock(t)

	booking := newBooking()
	booking.ID = 31

	mock.ExpectQuery(`UPDATE bookings SET`).WillReturnRows(bookingRows())

	_, err := repo.UpdateLifecycle(context.Background(), booking, 1)
	assert.ErrorIs(t, err, ErrVersionConflict)
}

func TestUpdatePaymentStatus(t *testing.T) {
	repo, _, mock := newMock(t)

	mock.ExpectQuery(`UPDATE bookings SET payment_status = \$1, version = version \+ 1, updated_at = NOW\(\) WHERE id = \$2 AND version = \$3`).
		WithArgs("paid", int64(31), int64(3)).
		WillReturnRows(bookingRows(bookingRow(31, nil, "confirmed", 4)))

	updated, err := repo.UpdatePaymentStatus(context.Background(), 31, domain.PaymentPaid, 3)
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Version)

	mock.ExpectQuery(`UPDATE bookings SET payment_status`).WillReturnRows(bookingRows())

	_, err = repo.UpdatePaymentStatus(context.Background(), 31, domain.PaymentPaid, 3)
	assert.ErrorIs(t, err, ErrVersionConflict)
}
