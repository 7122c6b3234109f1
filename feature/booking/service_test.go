package booking_test

import (
	"context"
	"testing"

	"meeting-manager/core/database"
	"meeting-manager/feature/booking"
	"meeting-manager/feature/booking/models"
	"meeting-manager/feature/notify"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupService(t *testing.T, disp *fakeDispatcher) (*booking.Service, *gorm.DB) {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	assert.NoError(t, err)
	assert.NoError(t, models.Migrate(db))
	return booking.NewService(db, zap.NewNop(), disp), db
}

func TestSaveReservationsDispatchesAfterCommit(t *testing.T) {
	disp := &fakeDispatcher{ok: true, reason: "ok"}
	svc, db := setupService(t, disp)
	assert.NoError(t, db.Create(&models.Room{ID: 1, Name: "Board Room", Capacity: 12, Status: "available"}).Error)

	err := svc.SaveReservations(context.Background(), []models.ReservationRecord{
		{Room: float64(1), Date: "2025-03-10", StartTime: "09:00", EndTime: "10:00", Title: "Standup", Booker: "Alice"},
		{Room: float64(1), Date: "2025-03-11", StartTime: "09:00", EndTime: "10:00", Title: "Retro", Booker: "Bob"},
	})
	assert.NoError(t, err)
	assert.Equal(t, []notify.Action{notify.ActionCreate, notify.ActionCreate}, disp.actions)
	assert.Equal(t, []string{"Standup", "Retro"}, disp.titles)
}

func TestSaveReservationsDispatchFailureIsSwallowed(t *testing.T) {
	disp := &fakeDispatcher{ok: false, reason: "request timeout (10s)"}
	svc, db := setupService(t, disp)
	assert.NoError(t, db.Create(&models.Room{ID: 1, Name: "Board Room", Capacity: 12, Status: "available"}).Error)

	err := svc.SaveReservations(context.Background(), []models.ReservationRecord{
		{Room: float64(1), Date: "2025-03-10", StartTime: "09:00", EndTime: "10:00", Title: "Standup", Booker: "Alice"},
	})

	// The row is saved even though every notification failed.
	assert.NoError(t, err)
	assert.Len(t, disp.actions, 1)

	var count int64
	assert.NoError(t, db.Model(&models.Reservation{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSaveReservationsNoDispatchOnFailure(t *testing.T) {
	disp := &fakeDispatcher{ok: true, reason: "ok"}
	svc, _ := setupService(t, disp)

	err := svc.SaveReservations(context.Background(), []models.ReservationRecord{
		{Room: float64(99), Date: "2025-03-10", StartTime: "09:00", EndTime: "10:00", Title: "Standup", Booker: "Alice"},
	})

	assert.Error(t, err)
	assert.Empty(t, disp.actions)
}

func TestSaveSettingsFlatForm(t *testing.T) {
	svc, _ := setupService(t, &fakeDispatcher{ok: true})

	err := svc.SaveSettings(context.Background(), map[string]any{
		"webhook_url": "https://example.com/hook",
		"debug_mode":  true,
	})
	assert.NoError(t, err)

	settings, err := svc.ListSettings(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "https://example.com/hook", settings["webhook_url"])
	assert.Equal(t, "true", settings["debug_mode"])
}

func TestSaveSettingsEnvelopeForm(t *testing.T) {
	svc, _ := setupService(t, &fakeDispatcher{ok: true})

	err := svc.SaveSettings(context.Background(), map[string]any{
		"settings": []any{
			map[string]any{"key": "webhook_url", "value": "https://example.com/hook"},
		},
	})
	assert.NoError(t, err)

	value, ok := svc.Settings().Lookup(context.Background(), "webhook_url")
	assert.True(t, ok)
	assert.Equal(t, "https://example.com/hook", value)
}

func TestSaveSettingsUpserts(t *testing.T) {
	svc, _ := setupService(t, &fakeDispatcher{ok: true})
	ctx := context.Background()

	assert.NoError(t, svc.SaveSettings(ctx, map[string]any{"webhook_url": "https://old.example.com"}))
	assert.NoError(t, svc.SaveSettings(ctx, map[string]any{"webhook_url": "https://new.example.com"}))

	settings, err := svc.ListSettings(ctx)
	assert.NoError(t, err)
	assert.Len(t, settings, 1)
	assert.Equal(t, "https://new.example.com", settings["webhook_url"])
}

func TestSaveSettingsRejectsBadEnvelope(t *testing.T) {
	svc, _ := setupService(t, &fakeDispatcher{ok: true})
	ctx := context.Background()

	err := svc.SaveSettings(ctx, map[string]any{"settings": "not an array"})
	assert.ErrorContains(t, err, "settings must be an array")

	err = svc.SaveSettings(ctx, map[string]any{"settings": []any{"not an object"}})
	assert.ErrorContains(t, err, "settings entries must be objects")

	err = svc.SaveSettings(ctx, map[string]any{"settings": []any{map[string]any{"value": "x"}}})
	assert.ErrorContains(t, err, "settings entries must have a key")
}

func TestListRoomsRendersStringIDs(t *testing.T) {
	svc, db := setupService(t, &fakeDispatcher{ok: true})
	assert.NoError(t, db.Create(&models.Room{ID: 7, Name: "Board Room", Capacity: 12, Status: "available"}).Error)

	rooms, err := svc.ListRooms(context.Background())
	assert.NoError(t, err)
	assert.Len(t, rooms, 1)
	assert.Equal(t, "7", rooms[0].ID)
}
