package booking

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature wires the booking service into the application loader.
type Feature struct {
	db      *gorm.DB
	service *Service
	handler *Handler
}

// NewFeature creates the booking feature.
func NewFeature(db *gorm.DB, logger *zap.Logger, dispatcher Dispatcher) *Feature {
	service := NewService(db, logger, dispatcher)
	return &Feature{
		db:      db,
		service: service,
		handler: NewHandler(service),
	}
}

// Name returns the feature name.
func (f *Feature) Name() string { return "booking" }

// IsEnabled reports whether the feature can run. The booking feature is
// useless without a database.
func (f *Feature) IsEnabled() bool { return f.db != nil }

// Load registers the booking routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}

// Service exposes the booking service for CLI commands.
func (f *Feature) Service() *Service { return f.service }
