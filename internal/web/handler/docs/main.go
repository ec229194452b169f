// Package docs renders the HTML documentation page for the HTTP API.
package docs

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/QuickFix-Booking/QuickFix-Booking/internal/config"
	"github.com/QuickFix-Booking/QuickFix-Booking/internal/web/handler"
)

const (
	// Path is the path of the documentation page.
	Path = "/docs"
)

// Service is the docs handler service.
type Service struct {
	cfg *config.Config
}

// Handler is the docs handler.
var Handler = Service{} //nolint:gochecknoglobals

// Init initializes the docs handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg

	app.Get(Path, s.Get)

	return nil
}

// Get renders the documentation page.
func (s *Service) Get(c *fiber.Ctx) error {
	return c.Render("docs", fiber.Map{
		"title": s.cfg.Title,
	})
}
