// Package supabase wraps the Supabase PostgREST API for the repair_requests
// table. Absence of configuration is not an error state for callers: every
// operation reports a plain ok flag and callers treat "not configured"
// identically to "call failed", falling back to the local store.
package supabase

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/QuickFix-Booking/QuickFix-Booking/internal/config"
	"github.com/QuickFix-Booking/QuickFix-Booking/internal/db/controller/appsettings"
)

const (
	defaultTimeout = 10 * time.Second

	requestsTable = "repair_requests"
)

// Row mirrors a repair_requests row in the external store. Optional fields
// are pointers so the wire format carries explicit nulls, matching what the
// table expects.
type Row struct {
	ID           string  `json:"id,omitempty"`
	CustomerName string  `json:"customer_name"`
	Phone        string  `json:"phone"`
	Email        *string `json:"email"`
	Brand        string  `json:"brand"`
	DeviceType   string  `json:"device_type"`
	Model        string  `json:"model"`
	Message      *string `json:"message"`
	Status       string  `json:"status"`
	CreatedAt    string  `json:"created_at,omitempty"`
}

// NullableString maps an optional form field to its wire representation.
func NullableString(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}

// Client is a PostgREST client bound to one URL/key pair.
type Client struct {
	url  string
	key  string
	http *resty.Client
}

// New creates a client for the given Supabase project URL and anon key.
// An empty URL or key yields an unconfigured client whose operations all
// report ok=false.
func New(url, key string) *Client {
	c := &Client{url: strings.TrimRight(url, "/"), key: key}

	if c.Configured() {
		c.http = resty.New().
			SetBaseURL(c.url + "/rest/v1").
			SetTimeout(defaultTimeout).
			SetHeader("apikey", key).
			SetHeader("Authorization", "Bearer "+key).
			SetHeader("Content-Type", "application/json")
	}

	return c
}

// Configured reports whether the client has a usable URL and key.
func (c *Client) Configured() bool {
	return c != nil && c.url != "" && c.key != ""
}

// Insert writes a new row and returns the server-assigned record.
func (c *Client) Insert(ctx context.Context, row Row) (*Row, bool) {
	if !c.Configured() {
		return nil, false
	}

	var rows []Row

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Prefer", "return=representation").
		SetBody([]Row{row}).
		SetResult(&rows).
		Post("/" + requestsTable)
	if err != nil {
		log.Error().Err(err).Msg("supabase insert failed")
		return nil, false
	}

	if !resp.IsSuccess() || len(rows) == 0 {
		log.Error().Int("status", resp.StatusCode()).Bytes("body", resp.Body()).
			Msg("supabase insert rejected")
		return nil, false
	}

	return &rows[0], true
}

// List returns all rows ordered by creation time descending.
func (c *Client) List(ctx context.Context) ([]Row, bool) {
	if !c.Configured() {
		return nil, false
	}

	var rows []Row

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("select", "*").
		SetQueryParam("order", "created_at.desc").
		SetResult(&rows).
		Get("/" + requestsTable)
	if err != nil {
		log.Error().Err(err).Msg("supabase list failed")
		return nil, false
	}

	if !resp.IsSuccess() {
		log.Error().Int("status", resp.StatusCode()).Msg("supabase list rejected")
		return nil, false
	}

	return rows, true
}

// Get returns a single row by id.
func (c *Client) Get(ctx context.Context, id string) (*Row, bool) {
	if !c.Configured() {
		return nil, false
	}

	var rows []Row

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("select", "*").
		SetQueryParam("id", "eq."+id).
		SetResult(&rows).
		Get("/" + requestsTable)
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("supabase get failed")
		return nil, false
	}

	if !resp.IsSuccess() || len(rows) == 0 {
		return nil, false
	}

	return &rows[0], true
}

// Update patches the given fields on a row and returns the updated record.
func (c *Client) Update(ctx context.Context, id string, fields map[string]any) (*Row, bool) {
	if !c.Configured() {
		return nil, false
	}

	var rows []Row

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Prefer", "return=representation").
		SetQueryParam("id", "eq."+id).
		SetBody(fields).
		SetResult(&rows).
		Patch("/" + requestsTable)
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("supabase update failed")
		return nil, false
	}

	if !resp.IsSuccess() || len(rows) == 0 {
		log.Error().Int("status", resp.StatusCode()).Str("id", id).
			Msg("supabase update rejected")
		return nil, false
	}

	return &rows[0], true
}

// Remove deletes a row by id.
func (c *Client) Remove(ctx context.Context, id string) bool {
	if !c.Configured() {
		return false
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("id", "eq."+id).
		Delete("/" + requestsTable)
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("supabase remove failed")
		return false
	}

	return resp.IsSuccess()
}

// Test verifies the connection by listing with a bounded context.
func (c *Client) Test() error {
	if !c.Configured() {
		return ErrClientNotConfigured
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	if _, ok := c.List(ctx); !ok {
		return ErrConnectionFailed
	}

	return nil
}

// engine caches the client for the current configuration. A settings change
// produces a new client instance rather than mutating a shared one.
type engine struct {
	mu     sync.Mutex
	client *Client
}

// Engine is the process-wide supabase client engine.
var Engine engine //nolint:gochecknoglobals

// Open (re)initializes the engine from the current app settings. The cached
// client is kept when URL and key are unchanged.
func Open(db *gorm.DB, cfg *config.Config) {
	settings := appsettings.Resolve(db, cfg)

	Engine.mu.Lock()
	defer Engine.mu.Unlock()

	current := Engine.client
	if current != nil && current.url == strings.TrimRight(settings.SupabaseURL, "/") &&
		current.key == settings.SupabaseAnonKey {
		return
	}

	Engine.client = New(settings.SupabaseURL, settings.SupabaseAnonKey)
}

// Client returns the current cached client. It may be unconfigured; callers
// rely on the ok flags rather than checking for nil.
func (e *engine) Client() *Client {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.client
}
