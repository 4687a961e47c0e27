package advance_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-HotelBookingService/internal/infra/storage/booking"
	roomRepo "github.com/m04kA/SMC-HotelBookingService/internal/infra/storage/room"
	"github.com/m04kA/SMC-HotelBookingService/pkg/ptr"
	"github.com/m04kA/SMC-HotelBookingService/pkg/txmanager"
)

// UseCase use case перехода бронирования по жизненному циклу
type UseCase struct {
	bookingRepo  BookingRepository
	roomRepo     RoomRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	metrics      Metrics
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	roomRepo RoomRepository,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		roomRepo:     roomRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		metrics:      metrics,
		logger:       logger,
	}
}

// Execute применяет одно событие к бронированию и сопутствующий переход юнита
// Оба изменения фиксируются в одной транзакции или не фиксируются вовсе
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("AdvanceBooking: booking=%d, event=%s, staff=%d, override=%t",
		req.BookingID, req.Event, req.StaffID, req.Override)

	resp, err := uc.execute(ctx, req)
	if err != nil {
		uc.metrics.RecordBookingTransition(string(req.Event), resultLabel(err))
		return nil, err
	}

	uc.metrics.RecordBookingTransition(string(req.Event), "ok")

	if resp.Overridden {
		uc.logger.Warn("AdvanceBooking: check-in window overridden: booking=%d, staff=%d, stay=%s..%s, reason=%q",
			resp.Booking.ID, req.StaffID,
			resp.Booking.CheckIn.Format(domain.DateFormat), resp.Booking.CheckOut.Format(domain.DateFormat),
			ptr.Value(req.Reason))
	}

	uc.logger.Info("AdvanceBooking: booking id=%d is now %s", resp.Booking.ID, resp.Booking.Status)

	return resp, nil
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("AdvanceBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	var resp *Response

	// 2. Переход бронирования и юнита в одной транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Блокируем бронирование
		booking, err := uc.bookingRepo.GetByIDForUpdate(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("AdvanceBooking: booking id=%d not found", req.BookingID)
				return domain.NewError(domain.KindNotFound, "booking %d not found", req.BookingID)
			}
			uc.logger.Error("AdvanceBooking: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
		}

		// 2.2. Проверяем переход по таблице и охранные условия
		result, err := booking.Transition(req.Event, domain.TransitionContext{Now: now, Override: req.Override})
		if err != nil {
			uc.logger.Warn("AdvanceBooking: transition rejected: booking=%d, status=%s, event=%s: %v",
				booking.ID, booking.Status, req.Event, err)
			return err
		}

		// 2.3. Сопутствующий переход юнита
		room, err := uc.advanceRoom(txCtx, booking, req.Event)
		if err != nil {
			return err
		}

		// 2.4. Сохраняем бронирование
		expectedVersion := booking.Version
		if err := booking.Apply(result, now, req.Reason); err != nil {
			return fmt.Errorf("%w: %w", ErrInternal, err)
		}

		updated, err := uc.bookingRepo.UpdateLifecycle(txCtx, booking, expectedVersion)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrVersionConflict) {
				uc.logger.Warn("AdvanceBooking: booking id=%d changed concurrently", booking.ID)
				return domain.NewError(domain.KindInvalidTransition, "booking %d was changed concurrently", booking.ID)
			}
			uc.logger.Error("AdvanceBooking: failed to update booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to update booking: %w", ErrInternal, err)
		}

		resp = &Response{Booking: updated, Room: room, Overridden: result.Overridden}
		return nil
	})
	if err != nil {
		if txmanager.IsSerializationFailure(err) {
			uc.logger.Warn("AdvanceBooking: booking id=%d kept conflicting after retries: %v", req.BookingID, err)
			return nil, domain.NewError(domain.KindInvalidTransition,
				"booking %d was changed concurrently, retry later", req.BookingID)
		}
		return nil, err
	}

	return resp, nil
}

// advanceRoom выполняет переход юнита, вызванный событием бронирования
// Возвращает nil, если событие не меняет статус юнита
func (uc *UseCase) advanceRoom(ctx context.Context, booking *domain.Booking, event domain.BookingEvent) (*domain.Room, error) {
	roomEvent, ok := domain.RoomEventFor(event)
	if !ok {
		return nil, nil
	}

	unitID := booking.UnitID()
	room, err := uc.roomRepo.GetByIDForUpdate(ctx, unitID)
	if err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			uc.logger.Error("AdvanceBooking: unit id=%d of booking id=%d not found", unitID, booking.ID)
			return nil, fmt.Errorf("%w: unit %d of booking %d not found", ErrInternal, unitID, booking.ID)
		}
		uc.logger.Error("AdvanceBooking: failed to get unit id=%d: %v", unitID, err)
		return nil, fmt.Errorf("%w: failed to get room: %w", ErrInternal, err)
	}

	// Выезд гостя не блокируется статусом юнита: если персонал вывел юнит
	// из работы или уже вернул его, статус не меняется
	if roomEvent == domain.RoomEventCheckOut && room.Status != domain.RoomOccupied {
		uc.logger.Info("AdvanceBooking: unit id=%d stays %s after checkout", room.ID, room.Status)
		return nil, nil
	}

	next, err := room.Status.Next(roomEvent)
	if err != nil {
		uc.logger.Warn("AdvanceBooking: unit id=%d rejected %s: %v", room.ID, roomEvent, err)
		return nil, err
	}

	updated, err := uc.roomRepo.UpdateStatus(ctx, room.ID, next, nil, room.Version)
	if err != nil {
		if errors.Is(err, roomRepo.ErrVersionConflict) {
			uc.logger.Warn("AdvanceBooking: unit id=%d changed concurrently", room.ID)
			return nil, domain.NewError(domain.KindRoomUnavailable, "unit %d was changed concurrently", room.ID)
		}
		uc.logger.Error("AdvanceBooking: failed to update unit id=%d: %v", room.ID, err)
		return nil, fmt.Errorf("%w: failed to update room: %w", ErrInternal, err)
	}

	uc.logger.Info("AdvanceBooking: unit id=%d %s -> %s", room.ID, room.Status, updated.Status)

	return updated, nil
}

func resultLabel(err error) string {
	if de, ok := domain.AsError(err); ok {
		return string(de.Kind)
	}
	return "error"
}
