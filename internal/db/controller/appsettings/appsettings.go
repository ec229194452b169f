// Package appsettings stores the runtime-editable application settings
// (external integration endpoints and store identity) as a single JSON
// record in the settings table.
package appsettings

import (
	"encoding/json"

	"gorm.io/gorm"

	"github.com/QuickFix-Booking/QuickFix-Booking/internal/config"
	"github.com/QuickFix-Booking/QuickFix-Booking/internal/db/controller/setting"
)

const (
	// SettingKeyApp is the key used to store the app settings record.
	SettingKeyApp = "app_settings"
)

type (
	// Settings represents the runtime configuration record. It is a single
	// shared mutable record; concurrent writers are not coordinated and
	// last write wins.
	Settings struct {
		SupabaseURL     string `form:"supabase_url"      json:"supabaseUrl"     validate:"omitempty,url"`
		SupabaseAnonKey string `form:"supabase_anon_key" json:"supabaseAnonKey"`
		LaravelAPIURL   string `form:"laravel_api_url"   json:"laravelApiUrl"   validate:"omitempty,url"`
		LaravelAPIKey   string `form:"laravel_api_key"   json:"laravelApiKey"`
		StoreID         string `form:"store_id"          json:"storeId"`
		StoreName       string `form:"store_name"        json:"storeName"`
		StoreCode       string `form:"store_code"        json:"storeCode"`
	}
)

// Defaults builds a Settings record from the static configuration.
func Defaults(cfg *config.Config) Settings {
	return Settings{
		SupabaseURL:     cfg.Integration.SupabaseURL,
		SupabaseAnonKey: cfg.Integration.SupabaseAnonKey,
		LaravelAPIURL:   cfg.Integration.LaravelAPIURL,
		LaravelAPIKey:   cfg.Integration.LaravelAPIKey,
		StoreID:         cfg.Store.ID,
		StoreName:       cfg.Store.Name,
		StoreCode:       cfg.Store.Code,
	}
}

// Load loads the app settings from the database.
func (s *Settings) Load(db *gorm.DB) error {
	// Retrieve the setting from the database
	rec, err := setting.Get(db, SettingKeyApp)
	if err != nil {
		return err
	}

	// Unmarshal the JSON blob into the struct
	return json.Unmarshal(rec.Value, s)
}

// Save saves the app settings to the database.
func (s *Settings) Save(db *gorm.DB) error {
	// Marshal the struct to JSON
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}

	// Save or update the setting in the database
	_, err = setting.Set(db, SettingKeyApp, data)

	return err
}

// Merge overlays the non-empty fields of other onto s. Partial settings
// writes from the dashboard only carry the fields being changed.
func (s *Settings) Merge(other Settings) {
	if other.SupabaseURL != "" {
		s.SupabaseURL = other.SupabaseURL
	}
	if other.SupabaseAnonKey != "" {
		s.SupabaseAnonKey = other.SupabaseAnonKey
	}
	if other.LaravelAPIURL != "" {
		s.LaravelAPIURL = other.LaravelAPIURL
	}
	if other.LaravelAPIKey != "" {
		s.LaravelAPIKey = other.LaravelAPIKey
	}
	if other.StoreID != "" {
		s.StoreID = other.StoreID
	}
	if other.StoreName != "" {
		s.StoreName = other.StoreName
	}
	if other.StoreCode != "" {
		s.StoreCode = other.StoreCode
	}
}

// Resolve returns the effective settings: the stored record if present,
// otherwise the configuration defaults.
func Resolve(db *gorm.DB, cfg *config.Config) Settings {
	s := Settings{}
	if err := s.Load(db); err != nil {
		return Defaults(cfg)
	}

	return s
}
