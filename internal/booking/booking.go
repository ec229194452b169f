// Package booking orchestrates a booking submission across the configured
// destinations. The external store is the primary destination when it is
// configured; the local database is the fallback so no booking is lost when
// the external write fails. Forwarding to the central API happens regardless
// of which store took the write.
package booking

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/QuickFix-Booking/QuickFix-Booking/internal/db/controller/appsettings"
	"github.com/QuickFix-Booking/QuickFix-Booking/internal/db/controller/request"
	"github.com/QuickFix-Booking/QuickFix-Booking/internal/db/models"
	"github.com/QuickFix-Booking/QuickFix-Booking/internal/laravel"
	"github.com/QuickFix-Booking/QuickFix-Booking/internal/supabase"
)

var validate = validator.New() //nolint:gochecknoglobals

// Form is one booking submission as received from the intake form.
type Form struct {
	CustomerName string `json:"customerName" validate:"required"`
	Phone        string `json:"phone" validate:"required"`
	Email        string `json:"email" validate:"omitempty,email"`
	Address      string `json:"address"`
	Brand        string `json:"brand" validate:"required"`
	DeviceType   string `json:"deviceType" validate:"required"`
	Model        string `json:"model" validate:"required"`
	Message      string `json:"message"`
}

// Store is the external persistence destination.
type Store interface {
	Configured() bool
	Insert(ctx context.Context, row supabase.Row) (*supabase.Row, bool)
}

// Forwarder delivers accepted bookings to the central API.
type Forwarder interface {
	Configured() bool
	Forward(ctx context.Context, payload laravel.Payload) laravel.Result
}

// Deps carries the destinations for one submission. Store and Forwarder are
// resolved per request so settings changes take effect without a restart.
type Deps struct {
	DB        *gorm.DB
	Store     Store
	Forwarder Forwarder
	Settings  appsettings.Settings
	Forward   bool
}

// Submission is the outcome of one accepted booking. Request is the canonical
// record: the external row when the external write succeeded, the local row
// otherwise. The sync flags are independent of each other.
type Submission struct {
	Request         *models.RepairRequest
	SupabaseSynced  bool
	LaravelSynced   bool
	LaravelResponse json.RawMessage
}

// Submit validates the form and writes it to every configured destination.
// A validation failure returns before anything is written.
func Submit(ctx context.Context, deps Deps, form Form) (*Submission, error) {
	if err := validate.Struct(form); err != nil {
		return nil, errors.Wrap(ErrInvalidForm, err.Error())
	}

	submission := &Submission{}

	if deps.Store != nil && deps.Store.Configured() {
		row, ok := deps.Store.Insert(ctx, supabase.Row{
			CustomerName: form.CustomerName,
			Phone:        form.Phone,
			Email:        supabase.NullableString(form.Email),
			Brand:        form.Brand,
			DeviceType:   form.DeviceType,
			Model:        form.Model,
			Message:      supabase.NullableString(form.Message),
			Status:       string(models.StatusNew),
		})
		if ok {
			submission.SupabaseSynced = true
			submission.Request = fromRow(row)
		}
	}

	if deps.Forward && deps.Forwarder != nil && deps.Forwarder.Configured() {
		result := deps.Forwarder.Forward(ctx, laravel.Payload{
			StoreID:          deps.Settings.StoreID,
			StoreName:        deps.Settings.StoreName,
			StoreCode:        deps.Settings.StoreCode,
			CustomerName:     form.CustomerName,
			CustomerPhone:    form.Phone,
			CustomerEmail:    form.Email,
			CustomerAddress:  form.Address,
			DeviceBrand:      form.Brand,
			DeviceType:       form.DeviceType,
			DeviceModel:      form.Model,
			IssueDescription: form.Message,
			Status:           string(models.StatusNew),
			Source:           "booking_form",
			SubmittedAt:      time.Now().UTC().Format(time.RFC3339),
		})
		submission.LaravelSynced = result.Forwarded
		submission.LaravelResponse = result.Response
	}

	if !submission.SupabaseSynced {
		record, err := request.Create(deps.DB, request.Fields{
			CustomerName: form.CustomerName,
			Phone:        form.Phone,
			Email:        form.Email,
			Address:      form.Address,
			Brand:        form.Brand,
			DeviceType:   form.DeviceType,
			Model:        form.Model,
			Message:      form.Message,
		})
		if err != nil {
			return nil, errors.Wrap(err, "local fallback write failed")
		}

		submission.Request = record
	}

	return submission, nil
}

// fromRow converts an external row into the local record shape so the API
// response is uniform regardless of which store holds the booking.
func fromRow(row *supabase.Row) *models.RepairRequest {
	createdAt, err := time.Parse(time.RFC3339, row.CreatedAt)
	if err != nil {
		createdAt = time.Now().UTC()
	}

	record := &models.RepairRequest{
		ID:           row.ID,
		CustomerName: row.CustomerName,
		Phone:        row.Phone,
		Brand:        row.Brand,
		DeviceType:   row.DeviceType,
		Model:        row.Model,
		Status:       models.Status(row.Status),
		CreatedAt:    createdAt,
	}

	if row.Email != nil {
		record.Email = *row.Email
	}

	if row.Message != nil {
		record.Message = *row.Message
	}

	return record
}
