// Package settings exposes the runtime-editable integration settings. A
// saved change rebuilds the external clients so it applies immediately.
package settings

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/QuickFix-Booking/QuickFix-Booking/internal/auth"
	"github.com/QuickFix-Booking/QuickFix-Booking/internal/config"
	"github.com/QuickFix-Booking/QuickFix-Booking/internal/db/controller/appsettings"
	"github.com/QuickFix-Booking/QuickFix-Booking/internal/laravel"
	"github.com/QuickFix-Booking/QuickFix-Booking/internal/supabase"
	"github.com/QuickFix-Booking/QuickFix-Booking/internal/web/handler"
)

const (
	// Path is the base path of the settings endpoints.
	Path = "/api/settings"
)

var validate = validator.New() //nolint:gochecknoglobals

// Service is the settings handler service.
type Service struct {
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the settings handler.
var Handler = Service{} //nolint:gochecknoglobals

// Init initializes the settings handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.db = db

	admin := auth.RequireAdmin(cfg.Admin.JWTSecret)

	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RootPath, admin, s.Get)
		router.Post(handler.RootPath, admin, s.Save)
		router.Post("/test", admin, s.Test)
	})

	return nil
}

// Test probes the configured Supabase endpoint.
func (s *Service) Test(c *fiber.Ctx) error {
	if err := supabase.Engine.Client().Test(); err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{"success": true})
}

// Get returns the effective settings.
func (s *Service) Get(c *fiber.Ctx) error {
	return c.JSON(appsettings.Resolve(s.db, s.cfg))
}

// Save merges the submitted fields into the stored settings record and
// reinitializes the external clients.
func (s *Service) Save(c *fiber.Ctx) error {
	if s.cfg.Integration.SettingsReadOnly {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "settings are read-only",
		})
	}

	var incoming appsettings.Settings
	if err := c.BodyParser(&incoming); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	if err := validate.Struct(incoming); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	current := appsettings.Resolve(s.db, s.cfg)
	current.Merge(incoming)

	if err := current.Save(s.db); err != nil {
		log.Error().Err(err).Msg("failed to save settings")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal server error",
		})
	}

	// apply the change to the external clients without a restart
	supabase.Open(s.db, s.cfg)
	laravel.Open(s.db, s.cfg)

	return c.JSON(current)
}
