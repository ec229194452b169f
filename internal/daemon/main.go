// Package daemon wires the database, seed data, external clients and the web
// service into the running application.
package daemon

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/QuickFix-Booking/QuickFix-Booking/internal/config"
	"github.com/QuickFix-Booking/QuickFix-Booking/internal/db/dsn"
	"github.com/QuickFix-Booking/QuickFix-Booking/internal/db/models"
	"github.com/QuickFix-Booking/QuickFix-Booking/internal/laravel"
	"github.com/QuickFix-Booking/QuickFix-Booking/internal/supabase"
	"github.com/QuickFix-Booking/QuickFix-Booking/internal/web"
)

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	webService web.Service
}

// Start starts the Daemon's web service and blocks until shutdown.
func (d *Daemon) Start() error {
	go d.webService.WaitShutdown()

	return d.webService.Start(fmt.Sprintf(":%d", d.cfg.Webserver.Port))
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) *Daemon {
	if cfg == nil {
		log.Fatal().Msg("config is nil")
		return nil
	}

	var dbDriver gorm.Dialector

	switch cfg.DB.GormEngine {
	case "mysql":
		dbDriver = gormmysql.Open(dsn.Create(cfg))
	default:
		dbDriver = sqlite.Open(cfg.DB.SQLitePath)
	}

	db, err := gorm.Open(dbDriver, &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}

	if err = db.AutoMigrate(
		&models.User{},
		&models.Setting{},
		&models.RepairRequest{},
		&models.FormOption{},
	); err != nil {
		panic("failed to migrate database")
	}

	seed(cfg, db)

	// initialize external clients from the effective settings
	supabase.Open(db, cfg)
	laravel.Open(db, cfg)

	return &Daemon{
		cfg:        cfg,
		webService: *web.New(cfg, db),
	}
}
