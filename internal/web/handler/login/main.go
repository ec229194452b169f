// Package login provides the admin authentication endpoints. A successful
// login sets a signed session cookie; there is no server-side session state.
package login

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/QuickFix-Booking/QuickFix-Booking/internal/auth"
	"github.com/QuickFix-Booking/QuickFix-Booking/internal/config"
	"github.com/QuickFix-Booking/QuickFix-Booking/internal/db/models"
	"github.com/QuickFix-Booking/QuickFix-Booking/internal/web/handler"
)

const (
	// Path is the base path of the authentication endpoints.
	Path = "/api/auth"
)

// Service is the login handler service.
type Service struct {
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the login handler.
var Handler = Service{} //nolint:gochecknoglobals

// Init initializes the login handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.db = db

	app.Route(Path, func(router fiber.Router) {
		router.Post("/login", s.Login)
		router.Post("/logout", s.Logout)
		router.Get("/verify", s.Verify)
	})

	return nil
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login verifies the credentials and sets the session cookie.
func (s *Service) Login(c *fiber.Ctx) error {
	var creds credentials
	if err := c.BodyParser(&creds); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	var user models.User
	result := s.db.Where("email = ?", creds.Email).First(&user)
	if result.Error != nil || !user.Active || !user.VerifyPassword(creds.Password) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "invalid email or password",
		})
	}

	token, err := auth.GenerateToken(s.cfg.Admin.JWTSecret, user.Email)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate session token")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal server error",
		})
	}

	cookie := &fiber.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		MaxAge:   int(auth.TokenExpiry.Seconds()),
		Secure:   !s.cfg.DevMode,
		HTTPOnly: true,
		SameSite: "Lax",
	}
	c.Cookie(cookie)

	return c.JSON(fiber.Map{
		"success": true,
		"user":    fiber.Map{"email": user.Email, "role": "admin"},
	})
}

// Logout clears the session cookie.
func (s *Service) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		MaxAge:   -1,
		HTTPOnly: true,
		SameSite: "Lax",
	})

	return c.JSON(fiber.Map{"success": true})
}

// Verify reports whether the current session cookie is valid.
func (s *Service) Verify(c *fiber.Ctx) error {
	token := c.Cookies(auth.CookieName)
	if token == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"authenticated": false,
		})
	}

	claims, err := auth.ValidateToken(s.cfg.Admin.JWTSecret, token)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"authenticated": false,
		})
	}

	return c.JSON(fiber.Map{
		"authenticated": true,
		"user":          fiber.Map{"email": claims.Email, "role": claims.Role},
	})
}
