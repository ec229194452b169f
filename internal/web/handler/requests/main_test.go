package requests

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
	"github.com/QuickFix-Booking/QuickFix-Booking/internal/db/controller/request"
	"github.com/QuickFix-Booking/QuickFix-Booking/internal/db/models"
)

const testSecret = "test-secret"

func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.RepairRequest{}, &models.Setting{}))

	cfg := &config.Config{}
	cfg.Admin.JWTSecret = testSecret
	cfg.Store.ID = "store-3"

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

func jsonRequest(t *testing.T, method, target string, payload any) *http.Request {
	t.Helper()

	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}

	req := httptest.NewRequest(method, target, &body)
	req.Header.Set("Content-Type", "application/json")

	return req
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	return body
}

func validSubmission() map[string]string {
	return map[string]string{
		"customerName": "Jane Doe",
		"phone":        "555-0100",
		"email":        "jane@example.com",
		"address":      "123 Main St, New York, NY",
		"brand":        "Apple",
		"deviceType":   "iPhone",
		"model":        "iPhone 14",
		"message":      "Cracked screen",
	}
}

func TestSubmit(t *testing.T) {
	app, db := setupApp(t)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/requests/", validSubmission()))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, true, body["success"])

	record, ok := body["request"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "New", record["status"])
	assert.Equal(t, "123 Main St, New York, NY", record["address"])
	assert.Equal(t, false, record["supabaseSynced"])
	assert.Equal(t, false, record["laravelSynced"])

	stored, err := request.List(db)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "Jane Doe", stored[0].CustomerName)
	assert.Equal(t, "123 Main St, New York, NY", stored[0].Address)
}

func TestSubmitInvalid(t *testing.T) {
	app, db := setupApp(t)

	payload := validSubmission()
	payload["phone"] = ""

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/requests/", payload))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	stored, err := request.List(db)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestAdminRoutesRequireSession(t *testing.T) {
	app, _ := setupApp(t)

	testCases := []struct {
		method string
		target string
	}{
		{http.MethodDelete, "/api/requests/"},
		{http.MethodGet, "/api/requests/REQ-x"},
		{http.MethodPatch, "/api/requests/REQ-x"},
		{http.MethodDelete, "/api/requests/REQ-x"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.method+" "+testCase.target, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(testCase.method, testCase.target, nil))
			require.NoError(t, err)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestList(t *testing.T) {
	app, db := setupApp(t)

	_, err := request.Create(db, request.Fields{
		CustomerName: "Jane Doe", Phone: "555-0100",
		Brand: "Apple", DeviceType: "iPhone", Model: "iPhone 14",
	})
	require.NoError(t, err)

	// listing is public, no session cookie needed
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/requests/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "local", body["source"])

	rows, ok := body["requests"].([]any)
	require.True(t, ok)
	assert.Len(t, rows, 1)
}

func TestGet(t *testing.T) {
	app, db := setupApp(t)

	created, err := request.Create(db, request.Fields{
		CustomerName: "Jane Doe", Phone: "555-0100",
		Brand: "Apple", DeviceType: "iPhone", Model: "iPhone 14",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/requests/"+created.ID, nil)
	req.AddCookie(adminCookie(t))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, created.ID, body["id"])
}

func TestGetMissing(t *testing.T) {
	app, _ := setupApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/requests/REQ-missing", nil)
	req.AddCookie(adminCookie(t))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUpdate(t *testing.T) {
	app, db := setupApp(t)

	created, err := request.Create(db, request.Fields{
		CustomerName: "Jane Doe", Phone: "555-0100",
		Brand: "Apple", DeviceType: "iPhone", Model: "iPhone 14",
	})
	require.NoError(t, err)

	req := jsonRequest(t, http.MethodPatch, "/api/requests/"+created.ID,
		map[string]string{"status": "In Progress"})
	req.AddCookie(adminCookie(t))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	stored, err := request.Get(db, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, stored.Status)
	// untouched fields survive a partial update
	assert.Equal(t, "Jane Doe", stored.CustomerName)
}

func TestUpdateInvalidStatus(t *testing.T) {
	app, db := setupApp(t)

	created, err := request.Create(db, request.Fields{
		CustomerName: "Jane Doe", Phone: "555-0100",
		Brand: "Apple", DeviceType: "iPhone", Model: "iPhone 14",
	})
	require.NoError(t, err)

	req := jsonRequest(t, http.MethodPatch, "/api/requests/"+created.ID,
		map[string]string{"status": "Bogus"})
	req.AddCookie(adminCookie(t))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDelete(t *testing.T) {
	app, db := setupApp(t)

	created, err := request.Create(db, request.Fields{
		CustomerName: "Jane Doe", Phone: "555-0100",
		Brand: "Apple", DeviceType: "iPhone", Model: "iPhone 14",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodDelete, "/api/requests/"+created.ID, nil)
	req.AddCookie(adminCookie(t))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	_, err = request.Get(db, created.ID)
	assert.ErrorIs(t, err, request.ErrRequestNotFound)
}

func TestDeleteMissing(t *testing.T) {
	app, _ := setupApp(t)

	req := httptest.NewRequest(http.MethodDelete, "/api/requests/REQ-missing", nil)
	req.AddCookie(adminCookie(t))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestBulkDelete(t *testing.T) {
	app, db := setupApp(t)

	first, err := request.Create(db, request.Fields{
		CustomerName: "Jane Doe", Phone: "555-0100",
		Brand: "Apple", DeviceType: "iPhone", Model: "iPhone 14",
	})
	require.NoError(t, err)

	second, err := request.Create(db, request.Fields{
		CustomerName: "John Doe", Phone: "555-0101",
		Brand: "Samsung", DeviceType: "Galaxy Phone", Model: "Galaxy S24",
	})
	require.NoError(t, err)

	req := jsonRequest(t, http.MethodDelete, "/api/requests/",
		map[string][]string{"ids": {first.ID, second.ID, "REQ-missing"}})
	req.AddCookie(adminCookie(t))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, float64(2), body["deletedCount"])
	assert.Equal(t, []any{"REQ-missing"}, body["failedIds"])

	remaining, err := request.List(db)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestBulkDeleteEmptyBody(t *testing.T) {
	app, _ := setupApp(t)

	req := jsonRequest(t, http.MethodDelete, "/api/requests/", map[string][]string{"ids": {}})
	req.AddCookie(adminCookie(t))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
