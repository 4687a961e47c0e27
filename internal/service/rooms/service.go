package rooms

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	roomRepo "github.com/m04kA/SMC-HotelBookingService/internal/infra/storage/room"
	"github.com/m04kA/SMC-HotelBookingService/internal/service/bookings"
	bookingModels "github.com/m04kA/SMC-HotelBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-HotelBookingService/internal/service/rooms/models"
)

const maxRoomNumberLength = 64

// Service сервис для работы с комнатами и кроватями
type Service struct {
	roomRepo    RoomRepository
	bookingRepo BookingRepository
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса юнитов
func NewService(
	roomRepo RoomRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		roomRepo:    roomRepo,
		bookingRepo: bookingRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// Create создает комнату или кровать в существующей комнате
func (s *Service) Create(ctx context.Context, req *models.CreateRoomRequest) (*models.RoomResponse, error) {
	s.logger.Info("CreateRoom: kind=%s, number=%s", req.Kind, req.Number)

	room := req.ToDomainRoom()
	room.Number = strings.TrimSpace(room.Number)
	if err := validateRoom(room); err != nil {
		s.logger.Warn("CreateRoom: validation failed: %v", err)
		return nil, err
	}

	var created *domain.Room
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if room.IsBed() {
			if err := s.lockParentForBed(txCtx, *room.ParentRoomID); err != nil {
				return err
			}
		}

		var err error
		created, err = s.roomRepo.Create(txCtx, room)
		if err != nil {
			if errors.Is(err, roomRepo.ErrDuplicateNumber) {
				s.logger.Warn("CreateRoom: number %s already exists", room.Number)
				return domain.NewError(domain.KindInvalidInput, "room number %q already exists", room.Number)
			}
			s.logger.Error("CreateRoom: repository error: %v", err)
			return fmt.Errorf("%w: CreateRoom - repository error: %w", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("CreateRoom: successfully created %s id=%d", created.Kind, created.ID)
	return models.FromDomainRoom(created), nil
}

// GetByID получает юнит с его статусом, кроватями и активными бронированиями
func (s *Service) GetByID(ctx context.Context, id int64) (*models.RoomResponse, error) {
	s.logger.Info("GetRoom: fetching room id=%d", id)

	room, err := s.roomRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			s.logger.Warn("GetRoom: room id=%d not found", id)
			return nil, ErrRoomNotFound
		}
		s.logger.Error("GetRoom: repository error for room id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetRoom - repository error: %w", ErrInternal, err)
	}

	resp := models.FromDomainRoom(room)

	if !room.IsBed() {
		beds, err := s.roomRepo.GetBeds(ctx, room.ID)
		if err != nil {
			s.logger.Error("GetRoom: failed to get beds of room id=%d: %v", id, err)
			return nil, fmt.Errorf("%w: GetRoom - repository error: %w", ErrInternal, err)
		}
		for _, bed := range beds {
			resp.Beds = append(resp.Beds, *models.FromDomainRoom(bed))
		}
	}

	active, err := s.bookingRepo.GetByFilter(ctx, bookings.UnitFilter(room, false))
	if err != nil {
		s.logger.Error("GetRoom: failed to get bookings of room id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetRoom - repository error: %w", ErrInternal, err)
	}
	resp.ActiveBookings = bookingModels.FromDomainBookingList(active).Bookings

	s.logger.Info("GetRoom: room id=%d is %s with %d active bookings", id, room.Status, len(active))
	return resp, nil
}

// ApplyManualEvent применяет действие персонала: обслуживание, неисправность,
// устранение или завершение уборки
func (s *Service) ApplyManualEvent(ctx context.Context, id int64, req *models.UpdateRoomStatusRequest) (*models.RoomResponse, error) {
	s.logger.Info("UpdateRoomStatus: room id=%d action=%s by staff=%d", id, req.Action, req.StaffID)

	event, err := domain.ParseManualRoomEvent(req.Action)
	if err != nil {
		s.logger.Warn("UpdateRoomStatus: %v", err)
		return nil, err
	}
	if req.Reason != nil && utf8.RuneCountInString(*req.Reason) > domain.MaxStatusReasonLength {
		return nil, domain.NewError(domain.KindInvalidInput, "reason exceeds %d characters", domain.MaxStatusReasonLength)
	}

	var updated *domain.Room
	var from domain.RoomStatus
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		room, err := s.roomRepo.GetByIDForUpdate(txCtx, id)
		if err != nil {
			if errors.Is(err, roomRepo.ErrRoomNotFound) {
				s.logger.Warn("UpdateRoomStatus: room id=%d not found", id)
				return ErrRoomNotFound
			}
			s.logger.Error("UpdateRoomStatus: repository error for room id=%d: %v", id, err)
			return fmt.Errorf("%w: UpdateRoomStatus - repository error: %w", ErrInternal, err)
		}

		next, err := room.Status.Next(event)
		if err != nil {
			s.logger.Warn("UpdateRoomStatus: room id=%d in %s rejected %s", id, room.Status, event)
			return err
		}

		// Причина хранится только пока юнит выведен из работы
		var reason *string
		if next.IsManualHold() {
			reason = req.Reason
		}

		from = room.Status
		updated, err = s.roomRepo.UpdateStatus(txCtx, id, next, reason, room.Version)
		if err != nil {
			if errors.Is(err, roomRepo.ErrVersionConflict) {
				s.logger.Warn("UpdateRoomStatus: room id=%d changed concurrently", id)
				return domain.NewError(domain.KindInvalidTransition, "room %d was changed concurrently", id)
			}
			s.logger.Error("UpdateRoomStatus: repository error for room id=%d: %v", id, err)
			return fmt.Errorf("%w: UpdateRoomStatus - repository error: %w", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("UpdateRoomStatus: room id=%d %s -> %s by staff=%d", id, from, updated.Status, req.StaffID)
	return models.FromDomainRoom(updated), nil
}

// lockParentForBed блокирует комнату, в которую добавляется кровать
// Пока комната забронирована целиком, делить её на кровати нельзя:
// бронирования кроватей не пересекаются с бронированием комнаты по unit_id
func (s *Service) lockParentForBed(ctx context.Context, parentID int64) error {
	parent, err := s.roomRepo.GetByIDForUpdate(ctx, parentID)
	if err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			s.logger.Warn("CreateRoom: parent room id=%d not found", parentID)
			return domain.NewError(domain.KindInvalidInput, "parent room %d not found", parentID)
		}
		s.logger.Error("CreateRoom: repository error for parent room id=%d: %v", parentID, err)
		return fmt.Errorf("%w: CreateRoom - repository error: %w", ErrInternal, err)
	}
	if parent.IsBed() {
		return domain.NewError(domain.KindInvalidInput, "unit %d is a bed and cannot contain beds", parent.ID)
	}

	active, err := s.bookingRepo.GetByFilter(ctx, domain.BookingFilter{UnitID: &parent.ID})
	if err != nil {
		s.logger.Error("CreateRoom: failed to get bookings of room id=%d: %v", parent.ID, err)
		return fmt.Errorf("%w: CreateRoom - repository error: %w", ErrInternal, err)
	}
	if len(active) > 0 {
		s.logger.Warn("CreateRoom: room id=%d has %d active whole-room bookings", parent.ID, len(active))
		return domain.NewError(domain.KindRoomUnavailable,
			"room %d has active whole-room bookings and cannot be split into beds", parent.ID)
	}
	return nil
}

func validateRoom(room *domain.Room) error {
	if !room.Kind.IsValid() {
		return domain.NewError(domain.KindInvalidInput, "unknown room kind %q", room.Kind)
	}
	if room.Number == "" {
		return domain.NewError(domain.KindInvalidInput, "number is required")
	}
	if utf8.RuneCountInString(room.Number) > maxRoomNumberLength {
		return domain.NewError(domain.KindInvalidInput, "number exceeds %d characters", maxRoomNumberLength)
	}
	if room.IsBed() && room.ParentRoomID == nil {
		return domain.NewError(domain.KindInvalidInput, "parentRoomId is required for a bed")
	}
	if !room.IsBed() && room.ParentRoomID != nil {
		return domain.NewError(domain.KindInvalidInput, "parentRoomId is allowed only for a bed")
	}
	return nil
}
