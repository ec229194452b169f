// Package requests exposes the repair request endpoints. Submitting and
// listing are public, mutations require an admin session. Reads prefer the
// external store when it is reachable and fall back to the local database.
package requests

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/QuickFix-Booking/QuickFix-Booking/internal/auth"
	"github.com/QuickFix-Booking/QuickFix-Booking/internal/booking"
	"github.com/QuickFix-Booking/QuickFix-Booking/internal/config"
	"github.com/QuickFix-Booking/QuickFix-Booking/internal/db/controller/appsettings"
	"github.com/QuickFix-Booking/QuickFix-Booking/internal/db/controller/request"
	"github.com/QuickFix-Booking/QuickFix-Booking/internal/db/models"
	"github.com/QuickFix-Booking/QuickFix-Booking/internal/laravel"
	"github.com/QuickFix-Booking/QuickFix-Booking/internal/supabase"
	"github.com/QuickFix-Booking/QuickFix-Booking/internal/web/handler"
)

const (
	// Path is the base path of the repair request endpoints.
	Path = "/api/requests"
)

// requestView is the submission response shape: the stored record with the
// per-destination sync outcomes embedded.
type requestView struct {
	*models.RepairRequest
	SupabaseSynced  bool            `json:"supabaseSynced"`
	LaravelSynced   bool            `json:"laravelSynced"`
	LaravelResponse json.RawMessage `json:"laravelResponse,omitempty"`
}

// Service is the requests handler service.
type Service struct {
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the requests handler.
var Handler = Service{} //nolint:gochecknoglobals

// Init initializes the requests handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.db = db

	admin := auth.RequireAdmin(cfg.Admin.JWTSecret)

	app.Route(Path, func(router fiber.Router) {
		router.Post(handler.RootPath, s.Submit)
		router.Get(handler.RootPath, s.List)
		router.Delete(handler.RootPath, admin, s.BulkDelete)
		router.Get("/:id", admin, s.Get)
		router.Patch("/:id", admin, s.Update)
		router.Delete("/:id", admin, s.Delete)
	})

	return nil
}

// Submit accepts a new booking from the public intake form.
func (s *Service) Submit(c *fiber.Ctx) error {
	var form booking.Form
	if err := c.BodyParser(&form); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	submission, err := booking.Submit(c.Context(), booking.Deps{
		DB:        s.db,
		Store:     supabase.Engine.Client(),
		Forwarder: laravel.Engine.Client(),
		Settings:  appsettings.Resolve(s.db, s.cfg),
		Forward:   s.cfg.Integration.ForwardBookings,
	}, form)
	if err != nil {
		if errors.Is(err, booking.ErrInvalidForm) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		log.Error().Err(err).Msg("booking submission failed")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal server error",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"request": requestView{
			RepairRequest:   submission.Request,
			SupabaseSynced:  submission.SupabaseSynced,
			LaravelSynced:   submission.LaravelSynced,
			LaravelResponse: submission.LaravelResponse,
		},
	})
}

// List returns all requests, preferring the external store.
func (s *Service) List(c *fiber.Ctx) error {
	if rows, ok := supabase.Engine.Client().List(c.Context()); ok {
		return c.JSON(fiber.Map{"requests": rows, "source": "supabase"})
	}

	local, err := request.List(s.db)
	if err != nil {
		log.Error().Err(err).Msg("failed to list requests")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal server error",
		})
	}

	return c.JSON(fiber.Map{"requests": local, "source": "local"})
}

// Get returns a single request by id from either store.
func (s *Service) Get(c *fiber.Ctx) error {
	id := c.Params("id")

	record, err := request.Get(s.db, id)
	if err == nil {
		return c.JSON(record)
	}

	if !errors.Is(err, request.ErrRequestNotFound) {
		log.Error().Err(err).Str("id", id).Msg("failed to get request")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal server error",
		})
	}

	if row, ok := supabase.Engine.Client().Get(c.Context(), id); ok {
		return c.JSON(row)
	}

	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error": "request not found",
	})
}

type partialBody struct {
	CustomerName *string `json:"customer_name"`
	Phone        *string `json:"phone"`
	Email        *string `json:"email"`
	Address      *string `json:"address"`
	Brand        *string `json:"brand"`
	DeviceType   *string `json:"device_type"`
	Model        *string `json:"model"`
	Message      *string `json:"message"`
	Status       *string `json:"status"`
}

func (b *partialBody) toPartial() request.Partial {
	partial := request.Partial{
		CustomerName: b.CustomerName,
		Phone:        b.Phone,
		Email:        b.Email,
		Address:      b.Address,
		Brand:        b.Brand,
		DeviceType:   b.DeviceType,
		Model:        b.Model,
		Message:      b.Message,
	}

	if b.Status != nil {
		status := models.Status(*b.Status)
		partial.Status = &status
	}

	return partial
}

// toFields maps the present members onto a PostgREST update body.
func (b *partialBody) toFields() map[string]any {
	fields := map[string]any{}

	set := func(key string, value *string) {
		if value != nil {
			fields[key] = *value
		}
	}

	set("customer_name", b.CustomerName)
	set("phone", b.Phone)
	set("email", b.Email)
	set("brand", b.Brand)
	set("device_type", b.DeviceType)
	set("model", b.Model)
	set("message", b.Message)
	set("status", b.Status)

	return fields
}

// Update merges the provided fields into a request in either store.
func (s *Service) Update(c *fiber.Ctx) error {
	id := c.Params("id")

	var body partialBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	if body.Status != nil && !models.Status(*body.Status).Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": request.ErrInvalidStatus.Error(),
		})
	}

	record, err := request.Update(s.db, id, body.toPartial())
	if err == nil {
		return c.JSON(record)
	}

	if !errors.Is(err, request.ErrRequestNotFound) {
		log.Error().Err(err).Str("id", id).Msg("failed to update request")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal server error",
		})
	}

	if row, ok := supabase.Engine.Client().Update(c.Context(), id, body.toFields()); ok {
		return c.JSON(row)
	}

	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error": "request not found",
	})
}

// Delete removes a request from both stores. Missing in both is a 404.
func (s *Service) Delete(c *fiber.Ctx) error {
	id := c.Params("id")

	localFound, err := request.Delete(s.db, id)
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to delete request")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal server error",
		})
	}

	externalFound := supabase.Engine.Client().Remove(c.Context(), id)

	if !localFound && !externalFound {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "request not found",
		})
	}

	return c.JSON(fiber.Map{"success": true})
}

type bulkDeleteBody struct {
	IDs []string `json:"ids"`
}

// BulkDelete removes a set of requests, reporting per-id failures without
// rolling back prior deletions.
func (s *Service) BulkDelete(c *fiber.Ctx) error {
	var body bulkDeleteBody
	if err := c.BodyParser(&body); err != nil || len(body.IDs) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "ids are required",
		})
	}

	client := supabase.Engine.Client()

	deleted := 0
	failedIDs := []string{}

	for _, id := range body.IDs {
		localFound, err := request.Delete(s.db, id)
		externalFound := client.Remove(c.Context(), id)

		if err != nil || (!localFound && !externalFound) {
			failedIDs = append(failedIDs, id)
			continue
		}

		deleted++
	}

	return c.JSON(fiber.Map{
		"success":      len(failedIDs) == 0,
		"deletedCount": deleted,
		"failedIds":    failedIDs,
	})
}
