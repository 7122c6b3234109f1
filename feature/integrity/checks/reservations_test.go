package checks_test

import (
	"context"
	"testing"

	"meeting-manager/core/database"
	"meeting-manager/feature/booking/models"
	"meeting-manager/feature/integrity/checks"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	assert.NoError(t, err)
	assert.NoError(t, models.Migrate(db))
	assert.NoError(t, db.Create(&models.Room{ID: 1, Name: "Board Room", Capacity: 12, Status: "available"}).Error)
	return db
}

func createReservation(t *testing.T, db *gorm.DB, id, roomID uint, date, start, end string) {
	t.Helper()
	d, err := models.ParseDate(date)
	assert.NoError(t, err)
	assert.NoError(t, db.Create(&models.Reservation{
		ID: id, RoomID: roomID, Date: d, StartTime: start, EndTime: end,
		Title: "Meeting", Booker: "Alice",
	}).Error)
}

func TestCheckOverlaps(t *testing.T) {
	db := openTestDB(t)
	createReservation(t, db, 1, 1, "2025-03-10", "09:00", "10:00")
	createReservation(t, db, 2, 1, "2025-03-10", "09:30", "10:30")

	issues, err := checks.CheckOverlaps(context.Background(), db)
	assert.NoError(t, err)
	assert.Len(t, issues, 1)
	assert.Equal(t, uint(1), issues[0].FirstID)
	assert.Equal(t, uint(2), issues[0].SecondID)
	assert.Equal(t, "Board Room", issues[0].RoomName)
	assert.Equal(t, "2025-03-10", issues[0].Date)
}

func TestCheckOverlapsBackToBack(t *testing.T) {
	// Half-open windows: a meeting starting exactly when another ends is
	// not a clash.
	db := openTestDB(t)
	createReservation(t, db, 1, 1, "2025-03-10", "09:00", "10:00")
	createReservation(t, db, 2, 1, "2025-03-10", "10:00", "11:00")

	issues, err := checks.CheckOverlaps(context.Background(), db)
	assert.NoError(t, err)
	assert.Empty(t, issues)
}

func TestCheckOverlapsDifferentRoomsAndDays(t *testing.T) {
	db := openTestDB(t)
	assert.NoError(t, db.Create(&models.Room{ID: 2, Name: "Huddle", Capacity: 4, Status: "available"}).Error)
	createReservation(t, db, 1, 1, "2025-03-10", "09:00", "10:00")
	createReservation(t, db, 2, 2, "2025-03-10", "09:00", "10:00")
	createReservation(t, db, 3, 1, "2025-03-11", "09:00", "10:00")

	issues, err := checks.CheckOverlaps(context.Background(), db)
	assert.NoError(t, err)
	assert.Empty(t, issues)
}

func TestCheckTimeRanges(t *testing.T) {
	db := openTestDB(t)
	createReservation(t, db, 1, 1, "2025-03-10", "09:00", "10:00")
	createReservation(t, db, 2, 1, "2025-03-10", "11:00", "10:00")
	createReservation(t, db, 3, 1, "2025-03-10", "9am", "10:00")

	issues, err := checks.CheckTimeRanges(context.Background(), db)
	assert.NoError(t, err)
	assert.Len(t, issues, 2)
	assert.Equal(t, uint(2), issues[0].ID)
	assert.Equal(t, "start is not before end", issues[0].Detail)
	assert.Equal(t, uint(3), issues[1].ID)
	assert.Equal(t, "start time does not parse", issues[1].Detail)
}

func TestCheckOrphans(t *testing.T) {
	db := openTestDB(t)
	createReservation(t, db, 1, 1, "2025-03-10", "09:00", "10:00")
	// Bypasses the API's reference check, as a manual database edit would.
	createReservation(t, db, 2, 99, "2025-03-10", "09:00", "10:00")

	issues, err := checks.CheckOrphans(context.Background(), db)
	assert.NoError(t, err)
	assert.Len(t, issues, 1)
	assert.Equal(t, uint(2), issues[0].ID)
	assert.Equal(t, uint(99), issues[0].RoomID)
}
