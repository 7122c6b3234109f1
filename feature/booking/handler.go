package booking

import (
	"encoding/json"
	"errors"

	"meeting-manager/core/logger"
	"meeting-manager/feature/booking/models"
	"meeting-manager/feature/booking/reconcile"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the booking feature.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the booking routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/rooms", h.HandleLoadRooms)
	app.Post("/rooms", h.HandleSaveRooms)
	app.Get("/reservations", h.HandleLoadReservations)
	app.Post("/reservations", h.HandleSaveReservations)
	app.Get("/settings", h.HandleLoadSettings)
	app.Post("/settings", h.HandleSaveSettings)
}

// HandleLoadRooms returns all rooms.
// @Summary List Rooms
// @Description Get all meeting rooms.
// @Tags booking
// @Produce json
// @Success 200 {array} models.RoomView "Rooms"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /rooms [get]
func (h *Handler) HandleLoadRooms(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	rooms, err := h.service.ListRooms(c.Context())
	if err != nil {
		l.Error("Failed to load rooms", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(rooms)
}

// HandleLoadReservations returns all reservations.
// @Summary List Reservations
// @Description Get all reservations with resolved room names.
// @Tags booking
// @Produce json
// @Success 200 {array} models.ReservationView "Reservations"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /reservations [get]
func (h *Handler) HandleLoadReservations(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	reservations, err := h.service.ListReservations(c.Context())
	if err != nil {
		l.Error("Failed to load reservations", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(reservations)
}

// HandleLoadSettings returns all settings as a key/value object.
// @Summary List Settings
// @Description Get all settings.
// @Tags booking
// @Produce json
// @Success 200 {object} map[string]string "Settings"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /settings [get]
func (h *Handler) HandleLoadSettings(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	settings, err := h.service.ListSettings(c.Context())
	if err != nil {
		l.Error("Failed to load settings", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(settings)
}

// HandleSaveRooms reconciles the room set against the posted snapshot.
// @Summary Save Rooms
// @Description Replace the room set with the posted snapshot (bulk sync).
// @Tags booking
// @Accept json
// @Produce json
// @Param rooms body []models.RoomRecord true "Full room snapshot"
// @Success 200 {object} map[string]interface{} "Result"
// @Failure 400 {object} map[string]interface{} "Validation or safety failure"
// @Failure 500 {object} map[string]interface{} "Internal Server Error"
// @Router /rooms [post]
func (h *Handler) HandleSaveRooms(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var records []models.RoomRecord
	if err := json.Unmarshal(c.Body(), &records); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "invalid payload: expected an array of rooms",
		})
	}

	if err := h.service.SaveRooms(c.Context(), records); err != nil {
		return h.respondSyncError(c, l, err)
	}

	l.Info("Rooms saved", zap.Int("count", len(records)))
	return c.JSON(fiber.Map{"success": true, "message": "rooms saved"})
}

// HandleSaveReservations reconciles the reservation set against the posted
// snapshot. The body is either a bare array or {"reservations": [...]}.
// @Summary Save Reservations
// @Description Replace the reservation set with the posted snapshot (bulk sync).
// @Tags booking
// @Accept json
// @Produce json
// @Param reservations body []models.ReservationRecord true "Full reservation snapshot"
// @Success 200 {object} map[string]interface{} "Result"
// @Failure 400 {object} map[string]interface{} "Validation or safety failure"
// @Failure 500 {object} map[string]interface{} "Internal Server Error"
// @Router /reservations [post]
func (h *Handler) HandleSaveReservations(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	body := c.Body()
	var records []models.ReservationRecord
	if err := json.Unmarshal(body, &records); err != nil {
		var payload models.ReservationPayload
		if err := json.Unmarshal(body, &payload); err != nil || payload.Reservations == nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"error":   "invalid payload: expected an array or an object with a reservations key",
			})
		}
		records = payload.Reservations
	}

	if err := h.service.SaveReservations(c.Context(), records); err != nil {
		return h.respondSyncError(c, l, err)
	}

	l.Info("Reservations saved", zap.Int("count", len(records)))
	return c.JSON(fiber.Map{"success": true, "message": "reservations saved"})
}

// HandleSaveSettings upserts settings.
// @Summary Save Settings
// @Description Upsert settings from {key: value} or {settings: [{key, value}]} payloads.
// @Tags booking
// @Accept json
// @Produce json
// @Param settings body map[string]interface{} true "Settings payload"
// @Success 200 {object} map[string]interface{} "Result"
// @Failure 400 {object} map[string]interface{} "Invalid payload"
// @Failure 500 {object} map[string]interface{} "Internal Server Error"
// @Router /settings [post]
func (h *Handler) HandleSaveSettings(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var data map[string]any
	if err := json.Unmarshal(c.Body(), &data); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "invalid payload: expected a JSON object",
		})
	}

	if err := h.service.SaveSettings(c.Context(), data); err != nil {
		l.Error("Failed to save settings", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"success": true})
}

// respondSyncError maps reconciliation errors onto the HTTP contract:
// validation, safety-check and reference failures are 400 (the safety
// check additionally carries its code), everything else is 500.
func (h *Handler) respondSyncError(c *fiber.Ctx, l *zap.Logger, err error) error {
	var vErr *reconcile.ValidationError
	var sErr *reconcile.SafetyCheckError
	var rErr *reconcile.ReferenceError

	switch {
	case errors.As(err, &vErr):
		l.Warn("Sync rejected by validation", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   vErr.Error(),
		})
	case errors.As(err, &sErr):
		l.Warn("Sync rejected by safety check", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   sErr.Error(),
			"code":    sErr.Code(),
		})
	case errors.As(err, &rErr):
		l.Warn("Sync rejected by reference check", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   rErr.Error(),
		})
	default:
		l.Error("Sync failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}
}
