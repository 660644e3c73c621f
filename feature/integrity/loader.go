package integrity

import (
	"asset-verifier/feature/assets"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new integrity feature.
func NewFeature(source assets.Source, logger *zap.Logger, db *gorm.DB, defaults assets.Config) *Feature {
	service := NewService(source, logger, db)
	handler := NewHandler(service, defaults)
	return &Feature{
		service: service,
		handler: handler,
	}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "integrity"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
