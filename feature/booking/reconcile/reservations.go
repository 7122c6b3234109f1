package reconcile

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"meeting-manager/core/utils"
	"meeting-manager/feature/booking/models"
	"meeting-manager/feature/notify"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Reservations reconciles the reservation table against a client-supplied
// snapshot and collects the notification events the sync implies.
type Reservations struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewReservations creates a reservation reconciler.
func NewReservations(db *gorm.DB, logger *zap.Logger) *Reservations {
	return &Reservations{db: db, logger: logger}
}

// reservationRow is a validated, normalized reservation record. rec keeps
// the raw payload for the change detector, which compares untrimmed values.
type reservationRow struct {
	id     RecordID
	roomID uint
	date   datatypes.Date
	start  string
	end    string
	rec    models.ReservationRecord
}

func (r reservationRow) updates() map[string]any {
	return map[string]any{
		"room_id":    r.roomID,
		"date":       r.date,
		"start_time": r.start,
		"end_time":   r.end,
		"title":      r.rec.Title,
		"booker":     r.rec.Booker,
		"department": r.rec.Department,
	}
}

func (r reservationRow) entity() models.Reservation {
	return models.Reservation{
		RoomID:     r.roomID,
		Date:       r.date,
		StartTime:  r.start,
		EndTime:    r.end,
		Title:      r.rec.Title,
		Booker:     r.rec.Booker,
		Department: r.rec.Department,
	}
}

// Apply replaces the stored reservation set with the given snapshot.
//
// Rows with a known numeric id are updated in place; the change detector
// decides whether an edit notification is due. Rows with an unknown or
// missing id are created. Rows absent from the snapshot are deleted.
// The returned events are snapshots queued during the transaction; the
// caller flushes them only after Apply returns without error, so a
// notification failure can never be mistaken for a persistence failure.
func (r *Reservations) Apply(ctx context.Context, records []models.ReservationRecord) ([]Event, error) {
	var rooms []models.Room
	if err := r.db.WithContext(ctx).Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to load rooms: %w", err)
	}
	roomsByID := make(map[uint]models.Room, len(rooms))
	for _, room := range rooms {
		roomsByID[room.ID] = room
	}

	rows, err := prepareReservations(records, roomsByID)
	if err != nil {
		return nil, err
	}

	var existingCount int64
	if err := r.db.WithContext(ctx).Model(&models.Reservation{}).Count(&existingCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count reservations: %w", err)
	}
	if existingCount > 0 && float64(len(rows)) < float64(existingCount)*0.5 {
		r.logger.Warn("possible bulk delete detected",
			zap.Int64("existing", existingCount),
			zap.Int("incoming", len(rows)))
		return nil, &SafetyCheckError{Entity: "reservation", Existing: int(existingCount), Incoming: len(rows)}
	}

	var events []Event
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing []models.Reservation
		if err := tx.Find(&existing).Error; err != nil {
			return fmt.Errorf("failed to load reservations: %w", err)
		}
		byID := make(map[uint]models.Reservation, len(existing))
		for _, res := range existing {
			byID[res.ID] = res
		}

		received := make(map[uint]struct{}, len(rows))

		for _, row := range rows {
			if row.id.Kind == IDNumeric {
				id := row.id.Value
				received[id] = struct{}{}

				if cur, ok := byID[id]; ok {
					changed, reason := DetectChange(cur, row.rec, row.roomID)

					// The update is applied unconditionally; change
					// detection only gates the notification.
					if err := tx.Model(&models.Reservation{}).Where("id = ?", id).Updates(row.updates()).Error; err != nil {
						return fmt.Errorf("failed to update reservation %d: %w", id, err)
					}

					// Keep the index current so a later row carrying the
					// same id compares against what this write stored.
					updated := cur
					updated.RoomID = row.roomID
					updated.Room = roomsByID[row.roomID]
					updated.Date = row.date
					updated.StartTime = row.start
					updated.EndTime = row.end
					updated.Title = row.rec.Title
					updated.Booker = row.rec.Booker
					updated.Department = row.rec.Department
					byID[id] = updated

					if changed {
						events = append(events, Event{Action: notify.ActionEdit, Reservation: updated})
						r.logger.Info("reservation changed, edit notification queued",
							zap.Uint("id", id), zap.String("reason", reason))
					} else {
						r.logger.Debug("reservation unchanged, no notification", zap.Uint("id", id))
					}
					continue
				}

				// Unknown id: the client invented it, honor it on create.
				res := row.entity()
				res.ID = id
				if err := tx.Create(&res).Error; err != nil {
					return fmt.Errorf("failed to create reservation %d: %w", id, err)
				}
				res.Room = roomsByID[res.RoomID]
				byID[id] = res
				events = append(events, Event{Action: notify.ActionCreate, Reservation: res})
				r.logger.Info("created reservation", zap.Uint("id", res.ID))
				continue
			}

			res := row.entity()
			if err := tx.Create(&res).Error; err != nil {
				return fmt.Errorf("failed to create reservation: %w", err)
			}
			received[res.ID] = struct{}{}
			res.Room = roomsByID[res.RoomID]
			events = append(events, Event{Action: notify.ActionCreate, Reservation: res})
			r.logger.Info("created reservation", zap.Uint("id", res.ID))
		}

		var deletions []uint
		for id := range byID {
			if _, ok := received[id]; !ok {
				deletions = append(deletions, id)
			}
		}
		if len(deletions) == 0 {
			return nil
		}
		sort.Slice(deletions, func(i, j int) bool { return deletions[i] < deletions[j] })

		// Snapshot before deleting so the notification still has the row.
		for _, id := range deletions {
			res := byID[id]
			res.Room = roomsByID[res.RoomID]
			events = append(events, Event{Action: notify.ActionDelete, Reservation: res})
		}
		if err := tx.Delete(&models.Reservation{}, deletions).Error; err != nil {
			return fmt.Errorf("failed to delete reservations: %w", err)
		}
		r.logger.Warn("deleted reservations", zap.Int("count", len(deletions)))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return events, nil
}

// prepareReservations validates and normalizes the payload. The whole batch
// fails on the first bad record, with a 1-based index in the message.
func prepareReservations(records []models.ReservationRecord, roomsByID map[uint]models.Room) ([]reservationRow, error) {
	rows := make([]reservationRow, 0, len(records))
	for i, rec := range records {
		idx := i + 1

		if strings.TrimSpace(rec.Title) == "" {
			return nil, &ValidationError{Entity: "reservation", Index: idx, Message: "title must not be empty"}
		}
		if strings.TrimSpace(rec.Booker) == "" {
			return nil, &ValidationError{Entity: "reservation", Index: idx, Message: "booker must not be empty"}
		}
		if rec.Date == "" {
			return nil, &ValidationError{Entity: "reservation", Index: idx, Message: "date must not be empty"}
		}
		startStr, endStr := rec.StartValue(), rec.EndValue()
		if startStr == "" || endStr == "" {
			return nil, &ValidationError{Entity: "reservation", Index: idx, Message: "start and end times must not be empty"}
		}
		roomID := utils.ToInt(rec.Room)
		if roomID <= 0 {
			return nil, &ValidationError{Entity: "reservation", Index: idx, Message: "room must not be empty"}
		}

		date, err := models.ParseDate(rec.Date)
		if err != nil {
			return nil, &ValidationError{Entity: "reservation", Index: idx, Message: "invalid date format, expected YYYY-MM-DD"}
		}
		start, err := time.Parse("15:04", startStr)
		if err != nil {
			return nil, &ValidationError{Entity: "reservation", Index: idx, Message: "invalid time format, expected HH:MM"}
		}
		end, err := time.Parse("15:04", endStr)
		if err != nil {
			return nil, &ValidationError{Entity: "reservation", Index: idx, Message: "invalid time format, expected HH:MM"}
		}
		if !start.Before(end) {
			return nil, &ValidationError{Entity: "reservation", Index: idx, Message: "start time must be before end time"}
		}
		if _, ok := roomsByID[uint(roomID)]; !ok {
			return nil, &ValidationError{Entity: "reservation", Index: idx, Message: "room does not exist"}
		}

		rows = append(rows, reservationRow{
			id:     ClassifyID(rec.ID),
			roomID: uint(roomID),
			date:   date,
			start:  start.Format("15:04"),
			end:    end.Format("15:04"),
			rec:    rec,
		})
	}
	return rows, nil
}
