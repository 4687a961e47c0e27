package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-HotelBookingService/internal/infra/storage/booking"
	roomRepo "github.com/m04kA/SMC-HotelBookingService/internal/infra/storage/room"
	"github.com/m04kA/SMC-HotelBookingService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo BookingRepository
	roomRepo    RoomRepository
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	roomRepo RoomRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		roomRepo:    roomRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetByRoom получает бронирования комнаты или кровати
// Для комнаты возвращаются и бронирования ее кроватей
func (s *Service) GetByRoom(ctx context.Context, req *models.GetRoomBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetByRoom: fetching bookings for room=%d, includeInactive=%t", req.RoomID, req.IncludeInactive)

	room, err := s.roomRepo.GetByID(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			s.logger.Warn("GetByRoom: room id=%d not found", req.RoomID)
			return nil, ErrRoomNotFound
		}
		s.logger.Error("GetByRoom: repository error for room id=%d: %v", req.RoomID, err)
		return nil, fmt.Errorf("%w: GetByRoom - repository error: %w", ErrInternal, err)
	}

	bookings, err := s.bookingRepo.GetByFilter(ctx, UnitFilter(room, req.IncludeInactive))
	if err != nil {
		s.logger.Error("GetByRoom: repository error for room id=%d: %v", req.RoomID, err)
		return nil, fmt.Errorf("%w: GetByRoom - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("GetByRoom: successfully fetched %d bookings for room=%d", len(bookings), req.RoomID)
	return models.FromDomainBookingList(bookings), nil
}

// UpdatePaymentStatus меняет статус оплаты бронирования
// Статус оплаты не зависит от жизненного цикла, кроме перехода refund
func (s *Service) UpdatePaymentStatus(ctx context.Context, bookingID int64, req *models.UpdatePaymentStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdatePaymentStatus: booking id=%d to %s by staff=%d", bookingID, req.Status, req.StaffID)

	status, err := models.ToDomainPaymentStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdatePaymentStatus: invalid status=%s for booking id=%d", req.Status, bookingID)
		return nil, err
	}

	var updated *domain.Booking
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.GetByIDForUpdate(txCtx, bookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				s.logger.Warn("UpdatePaymentStatus: booking id=%d not found", bookingID)
				return ErrBookingNotFound
			}
			s.logger.Error("UpdatePaymentStatus: repository error for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: UpdatePaymentStatus - repository error: %w", ErrInternal, err)
		}

		if !booking.PaymentStatus.CanTransitionTo(status) {
			s.logger.Warn("UpdatePaymentStatus: booking id=%d payment %s -> %s rejected",
				bookingID, booking.PaymentStatus, status)
			return domain.NewError(domain.KindInvalidTransition,
				"payment status cannot change from %s to %s", booking.PaymentStatus, status)
		}

		updated, err = s.bookingRepo.UpdatePaymentStatus(txCtx, bookingID, status, booking.Version)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrVersionConflict) {
				s.logger.Warn("UpdatePaymentStatus: booking id=%d changed concurrently", bookingID)
				return domain.NewError(domain.KindInvalidTransition, "booking %d was changed concurrently", bookingID)
			}
			s.logger.Error("UpdatePaymentStatus: repository error for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: UpdatePaymentStatus - repository error: %w", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("UpdatePaymentStatus: booking id=%d payment is now %s", bookingID, updated.PaymentStatus)
	return models.FromDomainBooking(updated), nil
}

// UnitFilter строит фильтр активных (или всех) бронирований юнита
// Кровать фильтруется по самому юниту, комната по room_id вместе с кроватями
func UnitFilter(room *domain.Room, includeInactive bool) domain.BookingFilter {
	id := room.ID
	filter := domain.BookingFilter{IncludeInactive: includeInactive}
	if room.IsBed() {
		filter.UnitID = &id
	} else {
		filter.RoomID = &id
	}
	return filter
}
