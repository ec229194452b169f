package settings

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/QuickFix-Booking/QuickFix-Booking/internal/auth"
	"github.com/QuickFix-Booking/QuickFix-Booking/internal/config"
	"github.com/QuickFix-Booking/QuickFix-Booking/internal/db/controller/appsettings"
	"github.com/QuickFix-Booking/QuickFix-Booking/internal/db/models"
)

const testSecret = "test-secret"

func setupApp(t *testing.T, readOnly bool) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Setting{}))

	cfg := &config.Config{}
	cfg.Admin.JWTSecret = testSecret
	cfg.Store.ID = "store-3"
	cfg.Store.Name = "Quick Phone Fix N More - Germantown"
	cfg.Store.Code = "QPF-S3"
	cfg.Integration.SettingsReadOnly = readOnly

	app := fiber.New()
	svc := Service{}
	require.NoError(t, svc.Init(app, cfg, db))

	return app, db
}

func adminCookie(t *testing.T) *http.Cookie {
	t.Helper()

	token, err := auth.GenerateToken(testSecret, "admin@qpx.com")
	require.NoError(t, err)

	return &http.Cookie{Name: auth.CookieName, Value: token}
}

func TestGetRequiresSession(t *testing.T) {
	app, _ := setupApp(t, false)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/settings/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGetReturnsDefaults(t *testing.T) {
	app, _ := setupApp(t, false)

	req := httptest.NewRequest(http.MethodGet, "/api/settings/", nil)
	req.AddCookie(adminCookie(t))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var settings appsettings.Settings
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&settings))
	assert.Equal(t, "store-3", settings.StoreID)
	assert.Equal(t, "QPF-S3", settings.StoreCode)
}

func postSettings(t *testing.T, app *fiber.App, payload map[string]string) *http.Response {
	t.Helper()

	var body bytes.Buffer
	require.NoError(t, json.NewEncoder(&body).Encode(payload))

	req := httptest.NewRequest(http.MethodPost, "/api/settings/", &body)
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(adminCookie(t))

	resp, err := app.Test(req)
	require.NoError(t, err)

	return resp
}

func TestSaveMergesPartialUpdate(t *testing.T) {
	app, db := setupApp(t, false)

	resp := postSettings(t, app, map[string]string{
		"supabaseUrl":     "https://example.supabase.co",
		"supabaseAnonKey": "anon-key",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	stored := appsettings.Settings{}
	require.NoError(t, stored.Load(db))
	assert.Equal(t, "https://example.supabase.co", stored.SupabaseURL)
	// fields absent from the payload keep their previous values
	assert.Equal(t, "store-3", stored.StoreID)
}

func TestSaveInvalidURL(t *testing.T) {
	app, _ := setupApp(t, false)

	resp := postSettings(t, app, map[string]string{"supabaseUrl": "not a url"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestConnectionTestUnconfigured(t *testing.T) {
	app, _ := setupApp(t, false)

	req := httptest.NewRequest(http.MethodPost, "/api/settings/test", nil)
	req.AddCookie(adminCookie(t))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestSaveReadOnly(t *testing.T) {
	app, db := setupApp(t, true)

	resp := postSettings(t, app, map[string]string{"storeName": "Other Store"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// nothing was stored
	stored := appsettings.Settings{}
	assert.Error(t, stored.Load(db))
}
