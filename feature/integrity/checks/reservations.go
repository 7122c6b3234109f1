package checks

import (
	"context"
	"fmt"
	"sort"
	"time"

	"meeting-manager/feature/booking/models"

	"gorm.io/gorm"
)

// OverlapIssue describes two reservations in the same room on the same day
// whose time windows intersect.
type OverlapIssue struct {
	RoomID   uint   `json:"room_id"`
	RoomName string `json:"room_name"`
	Date     string `json:"date"`
	FirstID  uint   `json:"first_id"`
	First    string `json:"first"`
	SecondID uint   `json:"second_id"`
	Second   string `json:"second"`
}

// RangeIssue describes a reservation whose time window is unparseable or
// inverted (start not before end).
type RangeIssue struct {
	ID     uint   `json:"id"`
	Date   string `json:"date"`
	Start  string `json:"start"`
	End    string `json:"end"`
	Detail string `json:"detail"`
}

// OrphanIssue describes a reservation referencing a room that no longer
// exists.
type OrphanIssue struct {
	ID     uint `json:"id"`
	RoomID uint `json:"room_id"`
}

type slot struct {
	id    uint
	start time.Time
	end   time.Time
	res   models.Reservation
}

// CheckOverlaps scans all reservations for double bookings. Reservations
// with unparseable times are skipped here; CheckTimeRanges reports those.
func CheckOverlaps(ctx context.Context, db *gorm.DB) ([]OverlapIssue, error) {
	var reservations []models.Reservation
	if err := db.WithContext(ctx).Preload("Room").Find(&reservations).Error; err != nil {
		return nil, fmt.Errorf("failed to load reservations: %w", err)
	}

	groups := make(map[string][]slot)
	for _, res := range reservations {
		start, err := time.Parse("15:04", res.StartTime)
		if err != nil {
			continue
		}
		end, err := time.Parse("15:04", res.EndTime)
		if err != nil {
			continue
		}
		key := fmt.Sprintf("%d/%s", res.RoomID, res.DateString())
		groups[key] = append(groups[key], slot{id: res.ID, start: start, end: end, res: res})
	}

	var issues []OverlapIssue
	for _, slots := range groups {
		sort.Slice(slots, func(i, j int) bool {
			if !slots[i].start.Equal(slots[j].start) {
				return slots[i].start.Before(slots[j].start)
			}
			return slots[i].id < slots[j].id
		})
		for i := 0; i < len(slots); i++ {
			for j := i + 1; j < len(slots); j++ {
				// Windows are half-open: back-to-back meetings do not clash.
				if !slots[j].start.Before(slots[i].end) {
					break
				}
				a, b := slots[i], slots[j]
				issues = append(issues, OverlapIssue{
					RoomID:   a.res.RoomID,
					RoomName: a.res.Room.Name,
					Date:     a.res.DateString(),
					FirstID:  a.id,
					First:    fmt.Sprintf("%s-%s", a.res.StartTime, a.res.EndTime),
					SecondID: b.id,
					Second:   fmt.Sprintf("%s-%s", b.res.StartTime, b.res.EndTime),
				})
			}
		}
	}

	sort.Slice(issues, func(i, j int) bool {
		if issues[i].FirstID != issues[j].FirstID {
			return issues[i].FirstID < issues[j].FirstID
		}
		return issues[i].SecondID < issues[j].SecondID
	})
	return issues, nil
}

// CheckTimeRanges reports reservations whose stored times do not parse or
// whose start is not strictly before the end.
func CheckTimeRanges(ctx context.Context, db *gorm.DB) ([]RangeIssue, error) {
	var reservations []models.Reservation
	if err := db.WithContext(ctx).Find(&reservations).Error; err != nil {
		return nil, fmt.Errorf("failed to load reservations: %w", err)
	}

	var issues []RangeIssue
	for _, res := range reservations {
		start, err := time.Parse("15:04", res.StartTime)
		if err != nil {
			issues = append(issues, RangeIssue{
				ID: res.ID, Date: res.DateString(), Start: res.StartTime, End: res.EndTime,
				Detail: "start time does not parse",
			})
			continue
		}
		end, err := time.Parse("15:04", res.EndTime)
		if err != nil {
			issues = append(issues, RangeIssue{
				ID: res.ID, Date: res.DateString(), Start: res.StartTime, End: res.EndTime,
				Detail: "end time does not parse",
			})
			continue
		}
		if !start.Before(end) {
			issues = append(issues, RangeIssue{
				ID: res.ID, Date: res.DateString(), Start: res.StartTime, End: res.EndTime,
				Detail: "start is not before end",
			})
		}
	}
	return issues, nil
}

// CheckOrphans reports reservations whose room no longer exists. The sync
// endpoints refuse to delete referenced rooms, so orphans indicate manual
// database edits.
func CheckOrphans(ctx context.Context, db *gorm.DB) ([]OrphanIssue, error) {
	var reservations []models.Reservation
	if err := db.WithContext(ctx).Find(&reservations).Error; err != nil {
		return nil, fmt.Errorf("failed to load reservations: %w", err)
	}

	var rooms []models.Room
	if err := db.WithContext(ctx).Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to load rooms: %w", err)
	}
	known := make(map[uint]bool, len(rooms))
	for _, room := range rooms {
		known[room.ID] = true
	}

	var issues []OrphanIssue
	for _, res := range reservations {
		if !known[res.RoomID] {
			issues = append(issues, OrphanIssue{ID: res.ID, RoomID: res.RoomID})
		}
	}
	return issues, nil
}
