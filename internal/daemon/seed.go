package daemon

import (
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/QuickFix-Booking/QuickFix-Booking/internal/config"
	"github.com/QuickFix-Booking/QuickFix-Booking/internal/db/controller/appsettings"
	"github.com/QuickFix-Booking/QuickFix-Booking/internal/db/controller/formoption"
	"github.com/QuickFix-Booking/QuickFix-Booking/internal/db/models"
)

func seed(cfg *config.Config, db *gorm.DB) {
	// Create the admin account when the user table is empty
	var count int64

	db.Model(&models.User{}).Count(&count)
	if count == 0 {
		db.Create(
			&models.User{
				Email:    cfg.Admin.Email,
				Password: models.HashPassword(cfg.Admin.Password),
				Active:   true,
			},
		)
	}

	if err := formoption.Seed(db); err != nil {
		log.Error().Err(err).Msg("failed to seed form options")
	}

	// Persist the configuration defaults as the initial settings record
	settings := appsettings.Settings{}
	if err := settings.Load(db); err != nil {
		settings = appsettings.Defaults(cfg)
		if err := settings.Save(db); err != nil {
			log.Error().Err(err).Msg("failed to seed app settings")
		}
	}
}
