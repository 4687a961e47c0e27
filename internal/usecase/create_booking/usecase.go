package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-HotelBookingService/internal/infra/storage/booking"
	roomRepo "github.com/m04kA/SMC-HotelBookingService/internal/infra/storage/room"
	"github.com/m04kA/SMC-HotelBookingService/pkg/txmanager"
)

const metricEvent = "request"

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo BookingRepository
	roomRepo    RoomRepository
	pricing     PricingEngine
	txManager   TransactionManager
	metrics     Metrics
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	roomRepo RoomRepository,
	pricing PricingEngine,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		roomRepo:    roomRepo,
		pricing:     pricing,
		txManager:   txManager,
		metrics:     metrics,
		logger:      logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверка пересечений и вставка выполняются в одной сериализуемой транзакции,
// поэтому из двух параллельных запросов на пересекающиеся даты успешен только один
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Booking, error) {
	uc.logger.Info("CreateBooking: room=%d, bed=%s, checkIn=%s, checkOut=%s",
		req.RoomID, formatID(req.BedID), req.Stay.CheckIn.Format(domain.DateFormat), req.Stay.CheckOut.Format(domain.DateFormat))

	booking, err := uc.execute(ctx, req)
	if err != nil {
		uc.metrics.RecordBookingTransition(metricEvent, resultLabel(err))
		return nil, err
	}

	uc.metrics.RecordBookingTransition(metricEvent, "ok")
	uc.logger.Info("CreateBooking: successfully created booking id=%d, unit=%d, total=%s %s",
		booking.ID, booking.UnitID(), booking.Pricing.TotalAmount.StringFixed(2), booking.Pricing.Currency)

	return booking, nil
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*domain.Booking, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Расчет стоимости (заодно проверяет диапазон дат)
	pricing, err := uc.pricing.Compute(req.Stay)
	if err != nil {
		uc.logger.Warn("CreateBooking: pricing failed: %v", err)
		return nil, err
	}

	var result *domain.Booking

	// 3. Проверка и резервирование юнита в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Блокируем комнату и кровать
		room, err := uc.lockUnit(txCtx, req.RoomID)
		if err != nil {
			return err
		}

		var bed *domain.Room
		var beds []*domain.Room
		if req.BedID != nil {
			bed, err = uc.lockUnit(txCtx, *req.BedID)
			if err != nil {
				return err
			}
		} else {
			beds, err = uc.roomRepo.GetBeds(txCtx, room.ID)
			if err != nil {
				uc.logger.Error("CreateBooking: failed to get beds of room id=%d: %v", room.ID, err)
				return fmt.Errorf("%w: failed to get beds: %w", ErrInternal, err)
			}
		}

		if err := validateUnit(room, bed, beds); err != nil {
			uc.logger.Warn("CreateBooking: unit validation failed: %v", err)
			return err
		}

		booking := &domain.Booking{
			RoomID:        req.RoomID,
			BedID:         req.BedID,
			GuestName:     strings.TrimSpace(req.GuestName),
			GuestEmail:    req.GuestEmail,
			GuestPhone:    req.GuestPhone,
			GuestCount:    req.Stay.GuestCount,
			CheckIn:       req.Stay.CheckIn,
			CheckOut:      req.Stay.CheckOut,
			MealPlan:      req.Stay.MealPlan,
			SeasonalTier:  req.Stay.SeasonalTier,
			Status:        domain.StatusPending,
			PaymentStatus: domain.PaymentPending,
			Pricing:       pricing,
			Notes:         req.Notes,
		}

		// 3.2. Ищем активные бронирования юнита на пересекающиеся даты
		overlapping, err := uc.bookingRepo.GetActiveOverlapping(txCtx, booking.UnitID(), booking.CheckIn, booking.CheckOut)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get overlapping bookings: %v", err)
			return fmt.Errorf("%w: failed to get overlapping bookings: %w", ErrInternal, err)
		}
		if len(overlapping) > 0 {
			uc.logger.Warn("CreateBooking: unit %d already booked by %s", booking.UnitID(), bookingIDs(overlapping))
			return domain.NewError(domain.KindRoomUnavailable,
				"unit %d is already booked for overlapping dates (booking %s)", booking.UnitID(), bookingIDs(overlapping))
		}

		// 3.3. Кровать занята и бронированием всей комнаты, сделанным до деления на кровати
		if bed != nil {
			wholeRoom, err := uc.bookingRepo.GetActiveOverlapping(txCtx, room.ID, booking.CheckIn, booking.CheckOut)
			if err != nil {
				uc.logger.Error("CreateBooking: failed to get overlapping bookings of room id=%d: %v", room.ID, err)
				return fmt.Errorf("%w: failed to get overlapping bookings: %w", ErrInternal, err)
			}
			if len(wholeRoom) > 0 {
				uc.logger.Warn("CreateBooking: room %d is booked as a whole by %s", room.ID, bookingIDs(wholeRoom))
				return domain.NewError(domain.KindRoomUnavailable,
					"room %d is booked as a whole for overlapping dates (booking %s)", room.ID, bookingIDs(wholeRoom))
			}
		}

		// 3.4. Сохраняем бронирование в статусе pending
		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrOverlap) {
				uc.logger.Warn("CreateBooking: unit %d reserved concurrently", booking.UnitID())
				return domain.NewError(domain.KindRoomUnavailable,
					"unit %d is already booked for overlapping dates", booking.UnitID())
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		if txmanager.IsSerializationFailure(err) {
			uc.logger.Warn("CreateBooking: unit reservation kept conflicting after retries: %v", err)
			return nil, domain.NewError(domain.KindRoomUnavailable,
				"room %d is being booked concurrently, retry later", req.RoomID)
		}
		return nil, err
	}

	return result, nil
}

func (uc *UseCase) lockUnit(ctx context.Context, id int64) (*domain.Room, error) {
	room, err := uc.roomRepo.GetByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			uc.logger.Warn("CreateBooking: unit id=%d not found", id)
			return nil, domain.NewError(domain.KindNotFound, "room %d not found", id)
		}
		uc.logger.Error("CreateBooking: failed to get unit id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get room: %w", ErrInternal, err)
	}
	return room, nil
}

func resultLabel(err error) string {
	if de, ok := domain.AsError(err); ok {
		return string(de.Kind)
	}
	return "error"
}

func bookingIDs(bookings []*domain.Booking) string {
	ids := make([]string, len(bookings))
	for i, b := range bookings {
		ids[i] = fmt.Sprintf("%d", b.ID)
	}
	return strings.Join(ids, ", ")
}

func formatID(id *int64) string {
	if id == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *id)
}
