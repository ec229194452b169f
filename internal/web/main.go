// Package web hosts the fiber application and registers all HTTP handlers.
package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/QuickFix-Booking/QuickFix-Booking/internal/config"
	fiberlogger "github.com/QuickFix-Booking/QuickFix-Booking/internal/logger/adapter/fiber"
	"github.com/QuickFix-Booking/QuickFix-Booking/internal/web/handler"
	"github.com/QuickFix-Booking/QuickFix-Booking/internal/web/handler/docs"
	"github.com/QuickFix-Booking/QuickFix-Booking/internal/web/handler/formoptions"
	"github.com/QuickFix-Booking/QuickFix-Booking/internal/web/handler/integration"
	"github.com/QuickFix-Booking/QuickFix-Booking/internal/web/handler/login"
	"github.com/QuickFix-Booking/QuickFix-Booking/internal/web/handler/requests"
	"github.com/QuickFix-Booking/QuickFix-Booking/internal/web/handler/settings"
)

// CheckAlivePath answers load balancer health probes.
const CheckAlivePath = "/checkalive"

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
	db           *gorm.DB
}

// Start starts the web service on the given address.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan bool)

	go func() {
		if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("fiber listen error: %v", err)
		}

		doneFiber <- true
	}()

	<-doneFiber // wait for fiber to stop

	return nil
}

// WaitShutdown waits for graceful shutdown of the web service.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	// Graceful shutdown for reverse proxies: set status to fail, so checkalive returns fail.
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	// stop fiber http server
	serverShutdown := make(chan struct{})

	go func() {
		log.Info().Msg("stopping http server ...")

		err := s.App.Shutdown()
		if err != nil {
			log.Error().Err(err).Msg("")
		}

		serverShutdown <- struct{}{}
	}()

	<-serverShutdown
	log.Info().Msg("http server was stopped ... good bye...")
}

// errorHandler renders every unhandled error as a JSON body so API clients
// never receive an HTML error page.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
	}

	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}

// New creates a new web service with the given configuration.
func New(cfg *config.Config, db *gorm.DB) *Service {
	if cfg == nil {
		panic("config cannot be nil")
	}

	if db == nil {
		panic("db cannot be nil")
	}

	httpFS := http.FS(templateEmbedFS{embeddedTemplates})
	templateEngine := html.NewFileSystem(httpFS, ".gohtml")

	// in debug mode, use local filesystem for templates
	if cfg.DevMode {
		templateEngine = html.New("./internal/web/templates", ".gohtml")
		templateEngine.ShouldReload = true

		log.Warn().Msg("debug mode enabled: using local filesystem for templates")
	}

	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        cfg.Title,
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
			Views:          templateEngine,
			ErrorHandler:   errorHandler,
		},
	)

	// access logging
	app.Use(fiberlogger.New(fiberlogger.Config{
		Config:        cfg.Log,
		CheckAliveURI: CheckAlivePath,
	}))

	service := &Service{
		cfg: cfg,
		App: app,
		db:  db,
	}
	service.alive.Store(true)

	app.Get(CheckAlivePath, func(c *fiber.Ctx) error {
		if !service.alive.Load() {
			return c.SendStatus(fiber.StatusServiceUnavailable)
		}

		return c.SendString("ok")
	})

	// init handlers (they register their own routes)
	handlers := map[string]handler.Service{
		"login":       &login.Handler,
		"requests":    &requests.Handler,
		"formoptions": &formoptions.Handler,
		"settings":    &settings.Handler,
		"integration": &integration.Handler,
		"docs":        &docs.Handler,
	}

	for name, h := range handlers {
		if err := h.Init(app, cfg, db); err != nil {
			log.Fatal().Err(err).Str("handler", name).Msg("handler init failed")
		}
	}

	// redirect root to the API documentation
	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect(docs.Path)
	})

	return service
}
