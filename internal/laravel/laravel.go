// Package laravel forwards accepted bookings to the central Laravel API.
// Forwarding is best effort: a failure is logged and reported in the
// submission result, it never blocks the booking itself.
package laravel

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/QuickFix-Booking/QuickFix-Booking/internal/config"
	"github.com/QuickFix-Booking/QuickFix-Booking/internal/db/controller/appsettings"
)

const defaultTimeout = 10 * time.Second

// Payload is the booking record as the Laravel API expects it. The store
// identity fields tell the central system which shop the booking belongs to.
type Payload struct {
	StoreID          string `json:"store_id"`
	StoreName        string `json:"store_name"`
	StoreCode        string `json:"store_code"`
	CustomerName     string `json:"customer_name"`
	CustomerPhone    string `json:"customer_phone"`
	CustomerEmail    string `json:"customer_email,omitempty"`
	CustomerAddress  string `json:"customer_address,omitempty"`
	DeviceBrand      string `json:"device_brand"`
	DeviceType       string `json:"device_type"`
	DeviceModel      string `json:"device_model"`
	IssueDescription string `json:"issue_description,omitempty"`
	Status           string `json:"status"`
	Source           string `json:"source"`
	SubmittedAt      string `json:"submitted_at"`
}

// Result reports the outcome of one forwarding attempt. Response carries the
// remote body verbatim so callers can surface it without reinterpreting it.
type Result struct {
	Forwarded bool
	Response  json.RawMessage
}

// Client posts bookings to one Laravel endpoint.
type Client struct {
	url  string
	key  string
	http *resty.Client
}

// New creates a client for the given API URL and key. An empty URL or key
// yields an unconfigured client; Forward on it reports Forwarded=false.
func New(url, key string) *Client {
	c := &Client{url: strings.TrimRight(url, "/"), key: key}

	if c.Configured() {
		c.http = resty.New().
			SetTimeout(defaultTimeout).
			SetHeader("Content-Type", "application/json").
			SetHeader("Accept", "application/json").
			SetHeader("X-API-Key", key)
	}

	return c
}

// Configured reports whether the client has a usable URL and key.
func (c *Client) Configured() bool {
	return c != nil && c.url != "" && c.key != ""
}

// Forward posts the payload to the bookings endpoint.
func (c *Client) Forward(ctx context.Context, payload Payload) Result {
	if !c.Configured() {
		return Result{}
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(payload).
		Post(c.url + "/bookings")
	if err != nil {
		log.Error().Err(err).Msg("laravel forward failed")
		return Result{}
	}

	if !resp.IsSuccess() {
		log.Error().Int("status", resp.StatusCode()).Bytes("body", resp.Body()).
			Msg("laravel forward rejected")
		return Result{Response: rawBody(resp.Body())}
	}

	return Result{Forwarded: true, Response: rawBody(resp.Body())}
}

// rawBody keeps the remote body when it is valid JSON, nil otherwise.
func rawBody(body []byte) json.RawMessage {
	if json.Valid(body) {
		return body
	}

	return nil
}

type engine struct {
	mu     sync.Mutex
	client *Client
}

// Engine is the process-wide Laravel client engine.
var Engine engine //nolint:gochecknoglobals

// Open (re)initializes the engine from the current app settings, keeping the
// cached client when URL and key are unchanged.
func Open(db *gorm.DB, cfg *config.Config) {
	settings := appsettings.Resolve(db, cfg)

	Engine.mu.Lock()
	defer Engine.mu.Unlock()

	current := Engine.client
	if current != nil && current.url == strings.TrimRight(settings.LaravelAPIURL, "/") &&
		current.key == settings.LaravelAPIKey {
		return
	}

	Engine.client = New(settings.LaravelAPIURL, settings.LaravelAPIKey)
}

// Client returns the current cached client, possibly unconfigured.
func (e *engine) Client() *Client {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.client
}
