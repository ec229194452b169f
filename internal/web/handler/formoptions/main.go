// Package formoptions exposes the brand/device type/model taxonomy used by
// the intake form. Reading is public, editing requires an admin session.
package formoptions

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/QuickFix-Booking/QuickFix-Booking/internal/auth"
	"github.com/QuickFix-Booking/QuickFix-Booking/internal/config"
	"github.com/QuickFix-Booking/QuickFix-Booking/internal/db/controller/formoption"
	"github.com/QuickFix-Booking/QuickFix-Booking/internal/web/handler"
)

const (
	// Path is the base path of the form option endpoints.
	Path = "/api/form-options"
)

// Service is the form options handler service.
type Service struct {
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the form options handler.
var Handler = Service{} //nolint:gochecknoglobals

// Init initializes the form options handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.db = db

	admin := auth.RequireAdmin(cfg.Admin.JWTSecret)

	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RootPath, s.Get)
		router.Post(handler.RootPath, admin, s.Mutate)
		// DELETE carries the same action body as POST, for clients that
		// express removals as deletes
		router.Delete(handler.RootPath, admin, s.Mutate)
	})

	return nil
}

// Get returns the current taxonomy.
func (s *Service) Get(c *fiber.Ctx) error {
	hierarchy, err := formoption.Get(s.db)
	if err != nil {
		log.Error().Err(err).Msg("failed to load form options")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal server error",
		})
	}

	return c.JSON(hierarchy)
}

type mutation struct {
	Type string `json:"type"`
	Data struct {
		Brand      string `json:"brand"`
		DeviceType string `json:"deviceType"`
		Model      string `json:"model"`
	} `json:"data"`
}

// Mutate applies one taxonomy change and returns the refreshed hierarchy.
// Removing a brand or device type cascades to its children.
func (s *Service) Mutate(c *fiber.Ctx) error {
	var body mutation
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	var (
		hierarchy *formoption.Hierarchy
		err       error
		data      = body.Data
	)

	switch body.Type {
	case "addBrand":
		hierarchy, err = formoption.AddBrand(s.db, data.Brand)
	case "removeBrand":
		hierarchy, err = formoption.RemoveBrand(s.db, data.Brand)
	case "addDeviceType":
		hierarchy, err = formoption.AddDeviceType(s.db, data.Brand, data.DeviceType)
	case "removeDeviceType":
		hierarchy, err = formoption.RemoveDeviceType(s.db, data.Brand, data.DeviceType)
	case "addModel":
		hierarchy, err = formoption.AddModel(s.db, data.Brand, data.DeviceType, data.Model)
	case "removeModel":
		hierarchy, err = formoption.RemoveModel(s.db, data.Brand, data.DeviceType, data.Model)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "unknown mutation type",
		})
	}

	if err != nil {
		if errors.Is(err, formoption.ErrValueEmpty) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		log.Error().Err(err).Str("type", body.Type).Msg("form option mutation failed")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal server error",
		})
	}

	return c.JSON(hierarchy)
}
