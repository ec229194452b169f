// Package integration exposes the machine-to-machine API guarded by the
// shared integration key. It serves the local store only; external systems
// consuming this API are expected to be the ones holding the external store.
package integration

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/QuickFix-Booking/QuickFix-Booking/internal/auth"
	"github.com/QuickFix-Booking/QuickFix-Booking/internal/config"
	"github.com/QuickFix-Booking/QuickFix-Booking/internal/db/controller/appsettings"
	"github.com/QuickFix-Booking/QuickFix-Booking/internal/db/controller/request"
	"github.com/QuickFix-Booking/QuickFix-Booking/internal/db/models"
	"github.com/QuickFix-Booking/QuickFix-Booking/internal/web/handler"
)

const (
	// Path is the base path of the integration endpoints.
	Path = "/api/integration"

	defaultLimit = 100
	maxLimit     = 100
)

// Service is the integration handler service.
type Service struct {
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the integration handler.
var Handler = Service{} //nolint:gochecknoglobals

// Init initializes the integration handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.db = db

	keyGuard := auth.RequireAPIKey(func() string {
		return appsettings.Resolve(s.db, s.cfg).LaravelAPIKey
	})

	app.Route(Path, func(router fiber.Router) {
		router.Use(keyGuard)
		router.Get("/requests", s.List)
		router.Post("/requests", s.Create)
		router.Get("/stats", s.Stats)
	})

	return nil
}

// parseTime accepts RFC3339 timestamps and plain dates.
func parseTime(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}

	if ts, err := time.Parse(time.RFC3339, value); err == nil {
		return ts, nil
	}

	return time.Parse("2006-01-02", value)
}

// parseEndTime parses like parseTime but extends a plain date to the end of
// that day so the bound is inclusive.
func parseEndTime(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}

	if ts, err := time.Parse(time.RFC3339, value); err == nil {
		return ts, nil
	}

	ts, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, err
	}

	return ts.Add(24*time.Hour - time.Millisecond), nil
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"error":   msg,
	})
}

// List returns requests matching the query filters with pagination metadata.
func (s *Service) List(c *fiber.Ctx) error {
	filter := request.Filter{
		Limit:  defaultLimit,
		Offset: c.QueryInt("offset", 0),
	}

	if status := c.Query("status"); status != "" {
		if !models.Status(status).Valid() {
			return badRequest(c, "invalid status filter")
		}

		filter.Status = models.Status(status)
	}

	var err error

	if filter.From, err = parseTime(c.Query("from_date")); err != nil {
		return badRequest(c, "invalid from_date")
	}

	if filter.To, err = parseEndTime(c.Query("to_date")); err != nil {
		return badRequest(c, "invalid to_date")
	}

	if limit := c.QueryInt("limit", defaultLimit); limit > 0 {
		filter.Limit = limit
	}

	if filter.Limit > maxLimit {
		filter.Limit = maxLimit
	}

	if filter.Offset < 0 {
		filter.Offset = 0
	}

	rows, total, err := request.ListFiltered(s.db, filter)
	if err != nil {
		log.Error().Err(err).Msg("integration list failed")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "internal server error",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    rows,
		"meta": fiber.Map{
			"total":    total,
			"count":    len(rows),
			"limit":    filter.Limit,
			"offset":   filter.Offset,
			"has_more": int64(filter.Offset+len(rows)) < total,
		},
		"filters_applied": fiber.Map{
			"status":    c.Query("status"),
			"from_date": c.Query("from_date"),
			"to_date":   c.Query("to_date"),
		},
	})
}

type createBody struct {
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
	CustomerEmail string `json:"customer_email"`
	Address       string `json:"address"`
	DeviceBrand   string `json:"device_brand"`
	DeviceType    string `json:"device_type"`
	DeviceModel   string `json:"device_model"`
	Message       string `json:"message"`
}

// Create inserts a request on behalf of an external system.
func (s *Service) Create(c *fiber.Ctx) error {
	var body createBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	var missing []string

	for field, value := range map[string]string{
		"customer_name":  body.CustomerName,
		"customer_phone": body.CustomerPhone,
		"device_brand":   body.DeviceBrand,
		"device_type":    body.DeviceType,
		"device_model":   body.DeviceModel,
	} {
		if value == "" {
			missing = append(missing, field)
		}
	}

	if len(missing) > 0 {
		sort.Strings(missing)

		return badRequest(c, "missing required fields: "+strings.Join(missing, ", "))
	}

	record, err := request.Create(s.db, request.Fields{
		CustomerName: body.CustomerName,
		Phone:        body.CustomerPhone,
		Email:        body.CustomerEmail,
		Address:      body.Address,
		Brand:        body.DeviceBrand,
		DeviceType:   body.DeviceType,
		Model:        body.DeviceModel,
		Message:      body.Message,
	})
	if err != nil {
		log.Error().Err(err).Msg("integration create failed")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "internal server error",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    record,
	})
}

// periodStart maps a named period to its range start. Unknown periods are
// rejected; "all" and an empty period mean no lower bound.
func periodStart(period string, now time.Time) (time.Time, bool) {
	switch period {
	case "", "all":
		return time.Time{}, true
	case "today":
		year, month, day := now.Date()
		return time.Date(year, month, day, 0, 0, 0, 0, now.Location()), true
	case "week":
		return now.AddDate(0, 0, -7), true
	case "month":
		return now.AddDate(0, -1, 0), true
	case "year":
		return now.AddDate(-1, 0, 0), true
	}

	return time.Time{}, false
}

// Stats returns aggregate counts for a named period or a custom range.
func (s *Service) Stats(c *fiber.Ctx) error {
	from, ok := periodStart(c.Query("period"), time.Now())
	if !ok {
		return badRequest(c, "invalid period")
	}

	var (
		to  time.Time
		err error
	)

	if from.IsZero() {
		if from, err = parseTime(c.Query("from_date")); err != nil {
			return badRequest(c, "invalid from_date")
		}
	}

	if to, err = parseEndTime(c.Query("to_date")); err != nil {
		return badRequest(c, "invalid to_date")
	}

	stats, err := request.GetStats(s.db, from, to)
	if err != nil {
		log.Error().Err(err).Msg("integration stats failed")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "internal server error",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    stats,
	})
}
