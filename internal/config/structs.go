package config

import (
	"time"

	"github.com/QuickFix-Booking/QuickFix-Booking/internal/logger"
)

// Session settings.
type Session struct {
	ExpiryTime time.Duration
}

// Config overall data structure.
type Config struct {
	DevMode     bool // enable dev mode for development
	DB          DB
	Log         logger.Log
	Title       string
	Webserver   Webserver
	Admin       Admin
	Store       Store
	Integration Integration
}

// Webserver implement webserver settings.
type Webserver struct {
	CleanPath      bool    // use clean path middleware to allow multi slash requests
	DisableRecover bool    // disable recover middleware
	Domain         string  // domain name for the webserver
	Port           int     // listening port for the webserver
	ShutDownTime   int     // wait time for shutdown
	URL            string  // base url for the webserver
	Session        Session // session settings
}

// Admin holds the single configured admin identity.
type Admin struct {
	Email     string // admin login email
	Password  string // initial admin password, hashed at seed time
	JWTSecret string // secret for signing the admin session token
}

// Store identifies this deployment/tenant towards external systems.
type Store struct {
	ID   string // e.g. "store-3"
	Name string // display name of the store
	Code string // short store code, e.g. "QPF-S3"
}

// Integration holds the default external integration endpoints. These are
// the startup defaults; the effective values live in the app settings
// record and can be changed at runtime unless SettingsReadOnly is set.
type Integration struct {
	SupabaseURL      string
	SupabaseAnonKey  string
	LaravelAPIURL    string
	LaravelAPIKey    string
	ForwardBookings  bool // forward bookings to the Laravel backend
	SettingsReadOnly bool // reject settings writes (non-writable deployments)
}
