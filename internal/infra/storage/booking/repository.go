package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	"github.com/m04kA/SMC-HotelBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-HotelBookingService/pkg/psqlbuilder"
)

// exclusionViolationCode нарушение EXCLUDE ограничения bookings_no_overlap
const exclusionViolationCode = "23P01"

var columns = []string{
	"id",
	"room_id",
	"bed_id",
	"guest_name",
	"guest_email",
	"guest_phone",
	"guest_count",
	"check_in",
	"check_out",
	"meal_plan",
	"seasonal_tier",
	"status",
	"payment_status",
	"nights",
	"adjusted_base_rate",
	"base_amount",
	"meal_amount",
	"weekend_surcharge_amount",
	"holiday_surcharge_amount",
	"subtotal",
	"long_stay_discount_amount",
	"manual_discount_amount",
	"discounted_amount",
	"tax_amount",
	"service_charge_amount",
	"total_amount",
	"currency",
	"notes",
	"cancellation_reason",
	"confirmed_at",
	"checked_in_at",
	"checked_out_at",
	"cancelled_at",
	"version",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция, использует её.
//
// Пересечение дат с активным бронированием того же юнита дополнительно
// отсекается EXCLUDE ограничением, в этом случае возвращается ErrOverlap
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	p := booking.Pricing
	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"room_id",
			"bed_id",
			"unit_id",
			"guest_name",
			"guest_email",
			"guest_phone",
			"guest_count",
			"check_in",
			"check_out",
			"meal_plan",
			"seasonal_tier",
			"status",
			"payment_status",
			"nights",
			"adjusted_base_rate",
			"base_amount",
			"meal_amount",
			"weekend_surcharge_amount",
			"holiday_surcharge_amount",
			"subtotal",
			"long_stay_discount_amount",
			"manual_discount_amount",
			"discounted_amount",
			"tax_amount",
			"service_charge_amount",
			"total_amount",
			"currency",
			"notes",
		).
		Values(
			booking.RoomID,
			booking.BedID,
			booking.UnitID(),
			booking.GuestName,
			booking.GuestEmail,
			booking.GuestPhone,
			booking.GuestCount,
			booking.CheckIn,
			booking.CheckOut,
			booking.MealPlan,
			booking.SeasonalTier,
			booking.Status,
			booking.PaymentStatus,
			p.Nights,
			p.AdjustedBaseRate,
			p.BaseAmount,
			p.MealAmount,
			p.WeekendSurchargeAmount,
			p.HolidaySurchargeAmount,
			p.Subtotal,
			p.LongStayDiscountAmount,
			p.ManualDiscountAmount,
			p.DiscountedAmount,
			p.TaxAmount,
			p.ServiceChargeAmount,
			p.TotalAmount,
			p.Currency,
			booking.Notes,
		).
		Suffix("RETURNING id, version, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&booking.Version,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if isExclusionViolation(err) {
			return nil, ErrOverlap
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.getByID(ctx, id, false)
}

// GetByIDForUpdate получает бронирование и блокирует строку до конца транзакции
// Вне транзакции работает как GetByID
func (r *Repository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.getByID(ctx, id, dbmetrics.IsInTransaction(ctx))
}

func (r *Repository) getByID(ctx context.Context, id int64, forUpdate bool) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From("bookings").
		Where(squirrel.Eq{"id": id})
	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	return booking, nil
}

// GetByFilter получает бронирования с фильтрацией по комнате, юниту и периоду
// Без IncludeInactive возвращаются только бронирования, удерживающие юнит
//
// Примеры использования:
//
// 1. Активные бронирования комнаты (включая кровати в ней):
//    filter := domain.BookingFilter{RoomID: &roomID}
//
// 2. Активные бронирования кровати, пересекающие период:
//    filter := domain.BookingFilter{UnitID: &bedID, From: &in, To: &out}
//
// 3. Вся история комнаты:
//    filter := domain.BookingFilter{RoomID: &roomID, IncludeInactive: true}
func (r *Repository) GetByFilter(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From("bookings")

	if filter.RoomID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"room_id": *filter.RoomID})
	}
	if filter.UnitID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"unit_id": *filter.UnitID})
	}

	// Полуинтервалы [check_in, check_out) и [From, To) пересекаются
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"check_in": *filter.To})
	}
	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.Gt{"check_out": *filter.From})
	}

	if !filter.IncludeInactive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": statusStrings(domain.ActiveBookingStatuses)})
	}

	selectBuilder = selectBuilder.OrderBy("check_in ASC", "id ASC")

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByFilter - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetActiveOverlapping получает активные бронирования юнита, пересекающие [checkIn, checkOut)
// Внутри транзакции строки блокируются (FOR UPDATE)
func (r *Repository) GetActiveOverlapping(ctx context.Context, unitID int64, checkIn, checkOut time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From("bookings").
		Where(squirrel.Eq{"unit_id": unitID}).
		Where(squirrel.Eq{"status": statusStrings(domain.ActiveBookingStatuses)}).
		Where(squirrel.Lt{"check_in": checkOut}).
		Where(squirrel.Gt{"check_out": checkIn}).
		OrderBy("check_in ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveOverlapping - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// UpdateLifecycle сохраняет статус, статус оплаты и отметки времени жизненного цикла
// Обновление выполняется только если версия не изменилась, версия увеличивается
func (r *Repository) UpdateLifecycle(ctx context.Context, booking *domain.Booking, expectedVersion int) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", booking.Status).
		Set("payment_status", booking.PaymentStatus).
		Set("cancellation_reason", booking.CancellationReason).
		Set("confirmed_at", booking.ConfirmedAt).
		Set("checked_in_at", booking.CheckedInAt).
		Set("checked_out_at", booking.CheckedOutAt).
		Set("cancelled_at", booking.CancelledAt).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": booking.ID, "version": expectedVersion}).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateLifecycle - build update query: %v", ErrBuildQuery, err)
	}

	updated, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrVersionConflict
	}
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateLifecycle - execute update: %w", ErrExecQuery, err)
	}

	return updated, nil
}

// UpdatePaymentStatus меняет статус оплаты с проверкой версии
func (r *Repository) UpdatePaymentStatus(ctx context.Context, id int64, status domain.PaymentStatus, expectedVersion int) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("payment_status", status).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "version": expectedVersion}).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpdatePaymentStatus - build update query: %v", ErrBuildQuery, err)
	}

	updated, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrVersionConflict
	}
	if err != nil {
		return nil, fmt.Errorf("%w: UpdatePaymentStatus - execute update: %w", ErrExecQuery, err)
	}

	return updated, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row scanner) (*domain.Booking, error) {
	var b domain.Booking
	var createdAt, updatedAt sql.NullTime
	p := &b.Pricing

	err := row.Scan(
		&b.ID,
		&b.RoomID,
		&b.BedID,
		&b.GuestName,
		&b.GuestEmail,
		&b.GuestPhone,
		&b.GuestCount,
		&b.CheckIn,
		&b.CheckOut,
		&b.MealPlan,
		&b.SeasonalTier,
		&b.Status,
		&b.PaymentStatus,
		&p.Nights,
		&p.AdjustedBaseRate,
		&p.BaseAmount,
		&p.MealAmount,
		&p.WeekendSurchargeAmount,
		&p.HolidaySurchargeAmount,
		&p.Subtotal,
		&p.LongStayDiscountAmount,
		&p.ManualDiscountAmount,
		&p.DiscountedAmount,
		&p.TaxAmount,
		&p.ServiceChargeAmount,
		&p.TotalAmount,
		&p.Currency,
		&b.Notes,
		&b.CancellationReason,
		&b.ConfirmedAt,
		&b.CheckedInAt,
		&b.CheckedOutAt,
		&b.CancelledAt,
		&b.Version,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}

// scanBookings вспомогательная функция для сканирования нескольких бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %w", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %w", ErrScanRow, err)
	}

	return bookings, nil
}

func statusStrings(statuses []domain.BookingStatus) []string {
	result := make([]string, len(statuses))
	for i, s := range statuses {
		result[i] = string(s)
	}
	return result
}

func isExclusionViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == exclusionViolationCode
}
