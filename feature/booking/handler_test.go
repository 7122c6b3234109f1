package booking_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"meeting-manager/core/database"
	"meeting-manager/feature/booking"
	"meeting-manager/feature/booking/models"
	"meeting-manager/feature/notify"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeDispatcher struct {
	actions []notify.Action
	titles  []string
	ok      bool
	reason  string
}

func (f *fakeDispatcher) Send(_ context.Context, res models.Reservation, action notify.Action) (bool, string) {
	f.actions = append(f.actions, action)
	f.titles = append(f.titles, res.Title)
	return f.ok, f.reason
}

func setupApp(t *testing.T) (*fiber.App, *gorm.DB, *fakeDispatcher) {
	t.Helper()

	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	assert.NoError(t, err)
	assert.NoError(t, models.Migrate(db))

	disp := &fakeDispatcher{ok: true, reason: "ok"}
	feature := booking.NewFeature(db, zap.NewNop(), disp)
	assert.Equal(t, "booking", feature.Name())
	assert.True(t, feature.IsEnabled())

	app := fiber.New()
	assert.NoError(t, feature.Load(app))
	return app, db, disp
}

func doJSON(t *testing.T, app *fiber.App, method, target, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	assert.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)

	var decoded map[string]any
	if len(raw) > 0 && raw[0] == '{' {
		assert.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp.StatusCode, decoded
}

func TestHandleLoadRooms(t *testing.T) {
	app, db, _ := setupApp(t)
	assert.NoError(t, db.Create(&models.Room{ID: 3, Name: "Board Room", Capacity: 12, Status: "available"}).Error)

	req := httptest.NewRequest("GET", "/rooms", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var rooms []models.RoomView
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&rooms))
	assert.Len(t, rooms, 1)
	// Ids are rendered as strings, matching what the frontend posts back.
	assert.Equal(t, "3", rooms[0].ID)
	assert.Equal(t, "Board Room", rooms[0].Name)
}

func TestHandleSaveRoomsRoundTrip(t *testing.T) {
	app, db, _ := setupApp(t)

	status, body := doJSON(t, app, "POST", "/rooms",
		`[{"id": "room_1709", "name": "Board Room", "capacity": "12", "equipment": "TV"}]`)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, body["success"])

	var rooms []models.Room
	assert.NoError(t, db.Find(&rooms).Error)
	assert.Len(t, rooms, 1)
	assert.Equal(t, 12, rooms[0].Capacity)
}

func TestHandleSaveRoomsMalformedBody(t *testing.T) {
	app, _, _ := setupApp(t)

	status, body := doJSON(t, app, "POST", "/rooms", `{"not": "an array"`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, false, body["success"])
}

func TestHandleSaveRoomsValidationError(t *testing.T) {
	app, _, _ := setupApp(t)

	status, body := doJSON(t, app, "POST", "/rooms", `[{"name": "", "capacity": 4}]`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["error"], "name must not be empty")
}

func TestHandleSaveRoomsSafetyCheck(t *testing.T) {
	app, db, _ := setupApp(t)
	for _, name := range []string{"A", "B", "C", "D"} {
		assert.NoError(t, db.Create(&models.Room{Name: name, Capacity: 4, Status: "available"}).Error)
	}

	status, body := doJSON(t, app, "POST", "/rooms", `[{"name": "A", "capacity": 4}]`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "BULK_DELETE_DETECTED", body["code"])
}

func TestHandleSaveReservationsBareArray(t *testing.T) {
	app, db, disp := setupApp(t)
	assert.NoError(t, db.Create(&models.Room{ID: 1, Name: "Board Room", Capacity: 12, Status: "available"}).Error)

	status, body := doJSON(t, app, "POST", "/reservations",
		`[{"room": 1, "date": "2025-03-10", "start_time": "09:00", "end_time": "10:00", "title": "Standup", "booker": "Alice"}]`)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, body["success"])

	assert.Equal(t, []notify.Action{notify.ActionCreate}, disp.actions)
	assert.Equal(t, []string{"Standup"}, disp.titles)
}

func TestHandleSaveReservationsEnvelope(t *testing.T) {
	app, db, disp := setupApp(t)
	assert.NoError(t, db.Create(&models.Room{ID: 1, Name: "Board Room", Capacity: 12, Status: "available"}).Error)

	status, body := doJSON(t, app, "POST", "/reservations",
		`{"reservations": [{"room": "1", "date": "2025-03-10", "start": "09:00", "end": "10:00", "title": "Standup", "booker": "Alice"}]}`)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, body["success"])
	assert.Len(t, disp.actions, 1)
}

func TestHandleSaveReservationsMalformedBody(t *testing.T) {
	app, _, disp := setupApp(t)

	status, body := doJSON(t, app, "POST", "/reservations", `{"rows": []}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, false, body["success"])
	assert.Empty(t, disp.actions)
}

func TestHandleLoadReservations(t *testing.T) {
	app, db, _ := setupApp(t)
	assert.NoError(t, db.Create(&models.Room{ID: 1, Name: "Board Room", Capacity: 12, Status: "available"}).Error)

	date, err := models.ParseDate("2025-03-10")
	assert.NoError(t, err)
	assert.NoError(t, db.Create(&models.Reservation{
		ID: 1, RoomID: 1, Date: date, StartTime: "09:00", EndTime: "10:00",
		Title: "Standup", Booker: "Alice",
	}).Error)

	req := httptest.NewRequest("GET", "/reservations", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var views []models.ReservationView
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&views))
	assert.Len(t, views, 1)
	assert.Equal(t, "2025-03-10", views[0].Date)
	assert.Equal(t, "Board Room", views[0].RoomName)
	assert.Equal(t, "09:00", views[0].Start)
}

func TestHandleSettingsRoundTrip(t *testing.T) {
	app, _, _ := setupApp(t)

	status, body := doJSON(t, app, "POST", "/settings", `{"webhook_url": "https://example.com/hook", "debug_mode": false}`)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, body["success"])

	req := httptest.NewRequest("GET", "/settings", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	defer resp.Body.Close()

	var settings map[string]string
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&settings))
	assert.Equal(t, "https://example.com/hook", settings["webhook_url"])
	assert.Equal(t, "false", settings["debug_mode"])
}

func TestHandleSaveSettingsMalformedBody(t *testing.T) {
	app, _, _ := setupApp(t)

	status, body := doJSON(t, app, "POST", "/settings", `[1, 2, 3]`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, false, body["success"])
}
