package booking

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/QuickFix-Booking/QuickFix-Booking/internal/db/controller/appsettings"
	"github.com/QuickFix-Booking/QuickFix-Booking/internal/db/controller/request"
	"github.com/QuickFix-Booking/QuickFix-Booking/internal/db/models"
	"github.com/QuickFix-Booking/QuickFix-Booking/internal/laravel"
	"github.com/QuickFix-Booking/QuickFix-Booking/internal/supabase"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.RepairRequest{}))

	return db
}

type fakeStore struct {
	configured bool
	ok         bool
	inserted   []supabase.Row
}

func (f *fakeStore) Configured() bool { return f.configured }

func (f *fakeStore) Insert(_ context.Context, row supabase.Row) (*supabase.Row, bool) {
	f.inserted = append(f.inserted, row)

	if !f.ok {
		return nil, false
	}

	row.ID = "ext-1"
	row.CreatedAt = "2024-06-01T10:00:00Z"

	return &row, true
}

type fakeForwarder struct {
	configured bool
	ok         bool
	payloads   []laravel.Payload
}

func (f *fakeForwarder) Configured() bool { return f.configured }

func (f *fakeForwarder) Forward(_ context.Context, payload laravel.Payload) laravel.Result {
	f.payloads = append(f.payloads, payload)

	if !f.ok {
		return laravel.Result{Response: []byte(`{"message":"rejected"}`)}
	}

	return laravel.Result{Forwarded: true, Response: []byte(`{"id":7}`)}
}

func validForm() Form {
	return Form{
		CustomerName: "Jane Doe",
		Phone:        "555-0100",
		Email:        "jane@example.com",
		Address:      "123 Main St, New York, NY",
		Brand:        "Apple",
		DeviceType:   "iPhone",
		Model:        "iPhone 14",
		Message:      "Cracked screen",
	}
}

func testSettings() appsettings.Settings {
	return appsettings.Settings{
		StoreID:   "store-3",
		StoreName: "Quick Phone Fix N More - Germantown",
		StoreCode: "QPF-S3",
	}
}

func TestSubmitLocalOnly(t *testing.T) {
	db := setupTestDB(t)

	submission, err := Submit(context.Background(), Deps{
		DB:        db,
		Store:     &fakeStore{},
		Forwarder: &fakeForwarder{},
		Settings:  testSettings(),
		Forward:   true,
	}, validForm())
	require.NoError(t, err)

	assert.False(t, submission.SupabaseSynced)
	assert.False(t, submission.LaravelSynced)
	require.NotNil(t, submission.Request)
	assert.Equal(t, models.StatusNew, submission.Request.Status)

	stored, err := request.Get(db, submission.Request.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", stored.CustomerName)
}

func TestSubmitKeepsAddress(t *testing.T) {
	db := setupTestDB(t)
	forwarder := &fakeForwarder{configured: true, ok: true}

	submission, err := Submit(context.Background(), Deps{
		DB:        db,
		Store:     &fakeStore{},
		Forwarder: forwarder,
		Settings:  testSettings(),
		Forward:   true,
	}, validForm())
	require.NoError(t, err)

	stored, err := request.Get(db, submission.Request.ID)
	require.NoError(t, err)
	assert.Equal(t, "123 Main St, New York, NY", stored.Address)

	require.Len(t, forwarder.payloads, 1)
	assert.Equal(t, "123 Main St, New York, NY", forwarder.payloads[0].CustomerAddress)
}

func TestSubmitExternalSuccess(t *testing.T) {
	db := setupTestDB(t)
	store := &fakeStore{configured: true, ok: true}

	submission, err := Submit(context.Background(), Deps{
		DB:       db,
		Store:    store,
		Settings: testSettings(),
	}, validForm())
	require.NoError(t, err)

	assert.True(t, submission.SupabaseSynced)
	assert.Equal(t, "ext-1", submission.Request.ID)
	require.Len(t, store.inserted, 1)
	assert.Equal(t, "New", store.inserted[0].Status)

	// external write succeeded, so nothing lands in the local store
	local, err := request.List(db)
	require.NoError(t, err)
	assert.Empty(t, local)
}

func TestSubmitExternalFailureFallsBackLocally(t *testing.T) {
	db := setupTestDB(t)
	store := &fakeStore{configured: true, ok: false}

	submission, err := Submit(context.Background(), Deps{
		DB:       db,
		Store:    store,
		Settings: testSettings(),
	}, validForm())
	require.NoError(t, err)

	assert.False(t, submission.SupabaseSynced)
	require.NotNil(t, submission.Request)

	local, err := request.List(db)
	require.NoError(t, err)
	require.Len(t, local, 1)
	assert.Equal(t, submission.Request.ID, local[0].ID)
}

func TestSubmitForwarding(t *testing.T) {
	testCases := []struct {
		name           string
		forward        bool
		forwarder      *fakeForwarder
		expectedSynced bool
		expectedCalls  int
	}{
		{
			name:           "forwarding succeeds",
			forward:        true,
			forwarder:      &fakeForwarder{configured: true, ok: true},
			expectedSynced: true,
			expectedCalls:  1,
		},
		{
			name:           "forwarding fails",
			forward:        true,
			forwarder:      &fakeForwarder{configured: true, ok: false},
			expectedSynced: false,
			expectedCalls:  1,
		},
		{
			name:           "forwarding disabled",
			forward:        false,
			forwarder:      &fakeForwarder{configured: true, ok: true},
			expectedSynced: false,
			expectedCalls:  0,
		},
		{
			name:           "forwarder not configured",
			forward:        true,
			forwarder:      &fakeForwarder{configured: false},
			expectedSynced: false,
			expectedCalls:  0,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			db := setupTestDB(t)

			submission, err := Submit(context.Background(), Deps{
				DB:        db,
				Store:     &fakeStore{configured: true, ok: true},
				Forwarder: testCase.forwarder,
				Settings:  testSettings(),
				Forward:   testCase.forward,
			}, validForm())
			require.NoError(t, err)

			assert.Equal(t, testCase.expectedSynced, submission.LaravelSynced)
			assert.Len(t, testCase.forwarder.payloads, testCase.expectedCalls)

			if testCase.expectedCalls > 0 {
				payload := testCase.forwarder.payloads[0]
				assert.Equal(t, "store-3", payload.StoreID)
				assert.Equal(t, "QPF-S3", payload.StoreCode)
				assert.Equal(t, "booking_form", payload.Source)
			}
		})
	}
}

func TestSubmitForwardFailureDoesNotBlockBooking(t *testing.T) {
	db := setupTestDB(t)

	submission, err := Submit(context.Background(), Deps{
		DB:        db,
		Store:     &fakeStore{configured: true, ok: true},
		Forwarder: &fakeForwarder{configured: true, ok: false},
		Settings:  testSettings(),
		Forward:   true,
	}, validForm())
	require.NoError(t, err)

	assert.True(t, submission.SupabaseSynced)
	assert.False(t, submission.LaravelSynced)
	require.NotNil(t, submission.Request)
	assert.JSONEq(t, `{"message":"rejected"}`, string(submission.LaravelResponse))
}

func TestSubmitValidation(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(*Form)
	}{
		{
			name:   "missing phone",
			mutate: func(f *Form) { f.Phone = "" },
		},
		{
			name:   "missing customer name",
			mutate: func(f *Form) { f.CustomerName = "" },
		},
		{
			name:   "missing model",
			mutate: func(f *Form) { f.Model = "" },
		},
		{
			name:   "malformed email",
			mutate: func(f *Form) { f.Email = "not-an-email" },
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			db := setupTestDB(t)
			store := &fakeStore{configured: true, ok: true}
			forwarder := &fakeForwarder{configured: true, ok: true}

			form := validForm()
			testCase.mutate(&form)

			_, err := Submit(context.Background(), Deps{
				DB:        db,
				Store:     store,
				Forwarder: forwarder,
				Settings:  testSettings(),
				Forward:   true,
			}, form)
			require.ErrorIs(t, err, ErrInvalidForm)

			// a rejected form must not reach any destination
			assert.Empty(t, store.inserted)
			assert.Empty(t, forwarder.payloads)

			local, listErr := request.List(db)
			require.NoError(t, listErr)
			assert.Empty(t, local)
		})
	}
}

func TestSubmitOptionalFieldsOmitted(t *testing.T) {
	db := setupTestDB(t)
	store := &fakeStore{configured: true, ok: true}

	form := validForm()
	form.Email = ""
	form.Message = ""

	_, err := Submit(context.Background(), Deps{
		DB:       db,
		Store:    store,
		Settings: testSettings(),
	}, form)
	require.NoError(t, err)

	require.Len(t, store.inserted, 1)
	assert.Nil(t, store.inserted[0].Email)
	assert.Nil(t, store.inserted[0].Message)
}
