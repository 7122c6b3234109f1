package integrity

import (
	"meeting-manager/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for integrity checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the integrity routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/integrity")
	group.Get("/", h.HandleIntegrityCheck)
	group.Get("/overlaps", h.HandleOverlapCheck)
	group.Get("/ranges", h.HandleRangeCheck)
	group.Get("/orphans", h.HandleOrphanCheck)
}

// HandleIntegrityCheck triggers all integrity checks.
// @Summary Run All Integrity Checks
// @Description Performs all available integrity checks (Overlaps, Ranges, Orphans).
// @Tags integrity
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Combined Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity [get]
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering all integrity checks")

	ctx := c.Context()
	report := make(map[string]interface{})

	if overlaps, err := h.service.CheckOverlaps(ctx); err != nil {
		report["overlaps"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["overlaps"] = map[string]interface{}{"status": "ok", "issues": overlaps}
	}

	if ranges, err := h.service.CheckTimeRanges(ctx); err != nil {
		report["ranges"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["ranges"] = map[string]interface{}{"status": "ok", "issues": ranges}
	}

	if orphans, err := h.service.CheckOrphans(ctx); err != nil {
		report["orphans"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["orphans"] = map[string]interface{}{"status": "ok", "issues": orphans}
	}

	return c.JSON(report)
}

// HandleOverlapCheck checks for double bookings.
// @Summary Check Overlaps
// @Description Finds reservations in the same room and day with intersecting time windows.
// @Tags integrity
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Overlap Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/overlaps [get]
func (h *Handler) HandleOverlapCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	issues, err := h.service.CheckOverlaps(c.Context())
	if err != nil {
		l.Error("Overlap check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if len(issues) > 0 {
		l.Warn("Double bookings detected", zap.Int("count", len(issues)))
	}

	return c.JSON(fiber.Map{
		"status": "checked",
		"issues": issues,
	})
}

// HandleRangeCheck checks reservation time windows.
// @Summary Check Time Ranges
// @Description Finds reservations with unparseable or inverted time windows.
// @Tags integrity
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Range Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/ranges [get]
func (h *Handler) HandleRangeCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	issues, err := h.service.CheckTimeRanges(c.Context())
	if err != nil {
		l.Error("Range check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"status": "checked",
		"issues": issues,
	})
}

// HandleOrphanCheck checks for reservations without a room.
// @Summary Check Orphans
// @Description Finds reservations referencing rooms that no longer exist.
// @Tags integrity
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Orphan Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/orphans [get]
func (h *Handler) HandleOrphanCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	issues, err := h.service.CheckOrphans(c.Context())
	if err != nil {
		l.Error("Orphan check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if len(issues) > 0 {
		l.Warn("Orphaned reservations detected", zap.Int("count", len(issues)))
	}

	return c.JSON(fiber.Map{
		"status": "checked",
		"issues": issues,
	})
}
