package booking

import (
	"context"
	"fmt"
	"strconv"

	"meeting-manager/core/utils"
	"meeting-manager/feature/booking/models"
	"meeting-manager/feature/booking/reconcile"
	"meeting-manager/feature/notify"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Dispatcher delivers a reservation event notification. Satisfied by
// *notify.Notifier.
type Dispatcher interface {
	Send(ctx context.Context, res models.Reservation, action notify.Action) (bool, string)
}

// Service orchestrates the booking operations: list endpoints, bulk-sync
// reconciliation, and post-commit notification dispatch.
type Service struct {
	db           *gorm.DB
	logger       *zap.Logger
	rooms        *reconcile.Rooms
	reservations *reconcile.Reservations
	settings     *SettingStore
	dispatcher   Dispatcher
}

// NewService creates a booking service.
func NewService(db *gorm.DB, logger *zap.Logger, dispatcher Dispatcher) *Service {
	return &Service{
		db:           db,
		logger:       logger,
		rooms:        reconcile.NewRooms(db, logger),
		reservations: reconcile.NewReservations(db, logger),
		settings:     NewSettingStore(db),
		dispatcher:   dispatcher,
	}
}

// Settings exposes the setting store.
func (s *Service) Settings() *SettingStore {
	return s.settings
}

// ListRooms returns all rooms in response shape.
func (s *Service) ListRooms(ctx context.Context) ([]models.RoomView, error) {
	var rooms []models.Room
	if err := s.db.WithContext(ctx).Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to load rooms: %w", err)
	}

	views := make([]models.RoomView, 0, len(rooms))
	for _, room := range rooms {
		views = append(views, models.RoomView{
			ID:          strconv.FormatUint(uint64(room.ID), 10),
			Name:        room.Name,
			Capacity:    room.Capacity,
			Description: room.Description,
			Equipment:   room.Equipment,
			Status:      room.Status,
		})
	}
	return views, nil
}

// ListReservations returns all reservations in response shape, with room
// names resolved and timestamps rendered in local time.
func (s *Service) ListReservations(ctx context.Context) ([]models.ReservationView, error) {
	var reservations []models.Reservation
	if err := s.db.WithContext(ctx).Preload("Room").Find(&reservations).Error; err != nil {
		return nil, fmt.Errorf("failed to load reservations: %w", err)
	}

	views := make([]models.ReservationView, 0, len(reservations))
	for _, res := range reservations {
		views = append(views, models.ReservationView{
			ID:         res.ID,
			Room:       strconv.FormatUint(uint64(res.RoomID), 10),
			Date:       res.DateString(),
			Start:      res.StartTime,
			End:        res.EndTime,
			Title:      res.Title,
			Booker:     res.Booker,
			Department: res.Department,
			RoomID:     res.RoomID,
			RoomName:   res.Room.Name,
			CreatedAt:  res.CreatedAt.Local().Format("2006-01-02 15:04:05"),
		})
	}
	return views, nil
}

// ListSettings returns all settings as a key/value map.
func (s *Service) ListSettings(ctx context.Context) (map[string]string, error) {
	return s.settings.All(ctx)
}

// SaveRooms reconciles the room table against the given snapshot.
func (s *Service) SaveRooms(ctx context.Context, records []models.RoomRecord) error {
	return s.rooms.Apply(ctx, records)
}

// SaveReservations reconciles the reservation table against the given
// snapshot and flushes the queued notifications after the transaction has
// committed. Dispatch failures are logged and never returned: persistence
// success must not be confused with notification success.
func (s *Service) SaveReservations(ctx context.Context, records []models.ReservationRecord) error {
	events, err := s.reservations.Apply(ctx, records)
	if err != nil {
		return err
	}

	for _, ev := range events {
		ok, reason := s.dispatcher.Send(ctx, ev.Reservation, ev.Action)
		if !ok {
			s.logger.Warn("notification dispatch failed",
				zap.String("action", string(ev.Action)),
				zap.Uint("reservation_id", ev.Reservation.ID),
				zap.String("reason", reason))
		}
	}
	return nil
}

// SaveSettings upserts settings from either payload form: a flat
// {key: value} object or {settings: [{key, value}, ...]}.
func (s *Service) SaveSettings(ctx context.Context, data map[string]any) error {
	if raw, ok := data["settings"]; ok {
		items, ok := raw.([]any)
		if !ok {
			return fmt.Errorf("settings must be an array")
		}
		for _, item := range items {
			entry, ok := item.(map[string]any)
			if !ok {
				return fmt.Errorf("settings entries must be objects")
			}
			key := utils.ToString(entry["key"])
			if key == "" {
				return fmt.Errorf("settings entries must have a key")
			}
			if err := s.settings.Set(ctx, key, utils.ToString(entry["value"])); err != nil {
				return err
			}
		}
		return nil
	}

	for key, value := range data {
		if err := s.settings.Set(ctx, key, utils.ToString(value)); err != nil {
			return err
		}
	}
	return nil
}
