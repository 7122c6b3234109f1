package reconcile

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"meeting-manager/core/utils"
	"meeting-manager/feature/booking/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Rooms reconciles the room table against a client-supplied snapshot.
type Rooms struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewRooms creates a room reconciler.
func NewRooms(db *gorm.DB, logger *zap.Logger) *Rooms {
	return &Rooms{db: db, logger: logger}
}

// roomRow is a validated, normalized room record.
type roomRow struct {
	id          RecordID
	name        string
	capacity    int
	description string
	equipment   string
	status      string
}

func (r roomRow) updates() map[string]any {
	return map[string]any{
		"name":        r.name,
		"capacity":    r.capacity,
		"description": r.description,
		"equipment":   r.equipment,
		"status":      r.status,
	}
}

func (r roomRow) entity() models.Room {
	return models.Room{
		Name:        r.name,
		Capacity:    r.capacity,
		Description: r.description,
		Equipment:   r.equipment,
		Status:      r.status,
	}
}

// Apply replaces the stored room set with the given snapshot.
//
// Records with a numeric id are upserted by primary key; placeholder ids
// fall back to an exact name match; records without an id always create.
// Rooms absent from the snapshot are deleted, unless any of them still has
// reservations, in which case the whole batch fails. All writes happen in
// one transaction.
func (r *Rooms) Apply(ctx context.Context, records []models.RoomRecord) error {
	rows, err := prepareRooms(records)
	if err != nil {
		return err
	}

	// Safety check runs before the transaction opens: a snapshot shrinking
	// the room set by more than half is treated as an accidental mass
	// deletion.
	var existingCount int64
	if err := r.db.WithContext(ctx).Model(&models.Room{}).Count(&existingCount).Error; err != nil {
		return fmt.Errorf("failed to count rooms: %w", err)
	}
	if existingCount > 0 && float64(len(rows)) < float64(existingCount)*0.5 {
		r.logger.Warn("possible bulk delete detected",
			zap.Int64("existing", existingCount),
			zap.Int("incoming", len(rows)))
		return &SafetyCheckError{Entity: "room", Existing: int(existingCount), Incoming: len(rows)}
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing []models.Room
		if err := tx.Find(&existing).Error; err != nil {
			return fmt.Errorf("failed to load rooms: %w", err)
		}

		byID := make(map[uint]models.Room, len(existing))
		byName := make(map[string]models.Room, len(existing))
		for _, room := range existing {
			byID[room.ID] = room
			byName[room.Name] = room
		}

		received := make(map[uint]struct{}, len(rows))

		// byName must track every row the loop writes: a placeholder later
		// in the batch can reference a name created or renamed moments
		// earlier.
		for _, row := range rows {
			switch row.id.Kind {
			case IDNumeric:
				id := row.id.Value
				received[id] = struct{}{}
				if cur, ok := byID[id]; ok {
					if err := tx.Model(&models.Room{}).Where("id = ?", id).Updates(row.updates()).Error; err != nil {
						return fmt.Errorf("failed to update room %d: %w", id, err)
					}
					if cur.Name != row.name {
						delete(byName, cur.Name)
					}
					r.logger.Info("updated room", zap.Uint("id", id), zap.String("name", row.name))
				} else {
					room := row.entity()
					room.ID = id
					if err := tx.Create(&room).Error; err != nil {
						return fmt.Errorf("failed to create room %d: %w", id, err)
					}
					r.logger.Info("created room", zap.Uint("id", id), zap.String("name", row.name))
				}
				written := row.entity()
				written.ID = id
				byName[row.name] = written

			case IDPlaceholder:
				if cur, ok := byName[row.name]; ok {
					received[cur.ID] = struct{}{}
					if err := tx.Model(&models.Room{}).Where("id = ?", cur.ID).Updates(row.updates()).Error; err != nil {
						return fmt.Errorf("failed to update room %d: %w", cur.ID, err)
					}
					written := row.entity()
					written.ID = cur.ID
					byName[row.name] = written
					r.logger.Info("updated room by name", zap.Uint("id", cur.ID), zap.String("name", row.name))
				} else {
					room := row.entity()
					if err := tx.Create(&room).Error; err != nil {
						return fmt.Errorf("failed to create room: %w", err)
					}
					received[room.ID] = struct{}{}
					byName[row.name] = room
					r.logger.Info("created room", zap.Uint("id", room.ID), zap.String("name", row.name))
				}

			default:
				room := row.entity()
				if err := tx.Create(&room).Error; err != nil {
					return fmt.Errorf("failed to create room: %w", err)
				}
				received[room.ID] = struct{}{}
				byName[row.name] = room
				r.logger.Info("created room", zap.Uint("id", room.ID), zap.String("name", row.name))
			}
		}

		var candidates []uint
		for id := range byID {
			if _, ok := received[id]; !ok {
				candidates = append(candidates, id)
			}
		}
		if len(candidates) == 0 {
			return nil
		}
		sort.Slice(candidates, func(i, j int) bool { return candidates[i] < candidates[j] })

		// Deletion policy: refuse, never cascade. One referenced candidate
		// fails the whole batch, including candidates without reservations.
		var referenced []uint
		if err := tx.Model(&models.Reservation{}).
			Where("room_id IN ?", candidates).
			Distinct().
			Pluck("room_id", &referenced).Error; err != nil {
			return fmt.Errorf("failed to check room references: %w", err)
		}
		if len(referenced) > 0 {
			names := make([]string, 0, len(referenced))
			for _, id := range referenced {
				names = append(names, byID[id].Name)
			}
			sort.Strings(names)
			return &ReferenceError{Rooms: names}
		}

		if err := tx.Delete(&models.Room{}, candidates).Error; err != nil {
			return fmt.Errorf("failed to delete rooms: %w", err)
		}
		deleted := make([]string, 0, len(candidates))
		for _, id := range candidates {
			deleted = append(deleted, byID[id].Name)
		}
		r.logger.Warn("deleted rooms", zap.Strings("names", deleted))
		return nil
	})
}

// prepareRooms validates and normalizes the payload. The whole batch fails
// on the first bad record.
func prepareRooms(records []models.RoomRecord) ([]roomRow, error) {
	rows := make([]roomRow, 0, len(records))
	for i, rec := range records {
		name := strings.TrimSpace(rec.Name)
		if name == "" {
			return nil, &ValidationError{Entity: "room", Index: i + 1, Message: "name must not be empty"}
		}

		capacity, err := parseCapacity(rec.Capacity)
		if err != nil {
			return nil, &ValidationError{Entity: "room", Index: i + 1,
				Message: fmt.Sprintf("capacity of room %q is not a number", name)}
		}
		if capacity <= 0 {
			return nil, &ValidationError{Entity: "room", Index: i + 1,
				Message: fmt.Sprintf("capacity of room %q must be positive", name)}
		}

		status := strings.TrimSpace(rec.Status)
		if status == "" {
			status = models.StatusAvailable
		}

		rows = append(rows, roomRow{
			id:          ClassifyID(rec.ID),
			name:        name,
			capacity:    capacity,
			description: strings.TrimSpace(rec.Description),
			equipment:   strings.TrimSpace(rec.Equipment),
			status:      status,
		})
	}
	return rows, nil
}

func parseCapacity(raw any) (int, error) {
	switch v := raw.(type) {
	case nil:
		return 0, nil
	case string:
		return strconv.Atoi(strings.TrimSpace(v))
	default:
		return utils.ToInt(raw), nil
	}
}
