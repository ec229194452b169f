// Package request provides CRUD operations for repair requests. This is the
// canonical local store; absence of a target id is reported through
// sentinel errors or found flags, never as a fatal failure.
package request

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/QuickFix-Booking/QuickFix-Booking/internal/db/models"
	"github.com/QuickFix-Booking/QuickFix-Booking/internal/uniuri"
)

const (
	idQueryPattern = "id = ?"

	// requestIDLen is the random part length of generated request IDs.
	requestIDLen = 10
)

var (
	// ErrRequestNotFound is returned when a repair request is not found.
	ErrRequestNotFound = errors.New("repair request not found")
	// ErrInvalidStatus is returned when an unknown status value is given.
	ErrInvalidStatus = errors.New("invalid repair request status")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// NewID generates a new opaque request identifier.
func NewID() string {
	return "REQ-" + uniuri.NewLen(requestIDLen)
}

// Fields carries the customer-submitted booking fields for creation.
type Fields struct {
	CustomerName string
	Phone        string
	Email        string
	Address      string
	Brand        string
	DeviceType   string
	Model        string
	Message      string
}

// Partial carries an optional subset of fields for updates. Nil members are
// left untouched on the stored record.
type Partial struct {
	CustomerName *string
	Phone        *string
	Email        *string
	Address      *string
	Brand        *string
	DeviceType   *string
	Model        *string
	Message      *string
	Status       *models.Status
}

// List returns all repair requests ordered by creation time descending.
func List(db *gorm.DB) ([]models.RepairRequest, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var requests []models.RepairRequest
	result := db.Order("created_at DESC").Find(&requests)
	if result.Error != nil {
		return nil, result.Error
	}

	return requests, nil
}

// Get retrieves a repair request by its id.
func Get(db *gorm.DB, id string) (*models.RepairRequest, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var req models.RepairRequest
	result := db.Where(idQueryPattern, id).First(&req)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, result.Error
	}

	return &req, nil
}

// Create inserts a new repair request with a fresh id and "New" status.
func Create(db *gorm.DB, fields Fields) (*models.RepairRequest, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	req := &models.RepairRequest{
		ID:           NewID(),
		CustomerName: fields.CustomerName,
		Phone:        fields.Phone,
		Email:        fields.Email,
		Address:      fields.Address,
		Brand:        fields.Brand,
		DeviceType:   fields.DeviceType,
		Model:        fields.Model,
		Message:      fields.Message,
		Status:       models.StatusNew,
	}

	result := db.Create(req)
	if result.Error != nil {
		return nil, result.Error
	}

	return req, nil
}

// Update merges only the provided fields into an existing request.
func Update(db *gorm.DB, id string, partial Partial) (*models.RepairRequest, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if partial.Status != nil && !partial.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	req, err := Get(db, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if partial.CustomerName != nil {
		updates["customer_name"] = *partial.CustomerName
	}
	if partial.Phone != nil {
		updates["phone"] = *partial.Phone
	}
	if partial.Email != nil {
		updates["email"] = *partial.Email
	}
	if partial.Address != nil {
		updates["address"] = *partial.Address
	}
	if partial.Brand != nil {
		updates["brand"] = *partial.Brand
	}
	if partial.DeviceType != nil {
		updates["device_type"] = *partial.DeviceType
	}
	if partial.Model != nil {
		updates["model"] = *partial.Model
	}
	if partial.Message != nil {
		updates["message"] = *partial.Message
	}
	if partial.Status != nil {
		updates["status"] = *partial.Status
	}

	if len(updates) == 0 {
		return req, nil
	}

	result := db.Model(req).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}

	return Get(db, id)
}

// UpdateStatus is a restricted form of Update changing only the status.
func UpdateStatus(db *gorm.DB, id string, status models.Status) (*models.RepairRequest, error) {
	return Update(db, id, Partial{Status: &status})
}

// Delete removes a repair request by id. The returned bool reports whether
// the id existed; deleting an unknown id is not an error.
func Delete(db *gorm.DB, id string) (bool, error) {
	if db == nil {
		return false, ErrDBNil
	}

	result := db.Where(idQueryPattern, id).Delete(&models.RepairRequest{})
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

// BulkDelete removes each id independently and aggregates per-id outcomes.
// Prior successes are not rolled back when a later id fails.
func BulkDelete(db *gorm.DB, ids []string) (deletedCount int, failedIDs []string, err error) {
	if db == nil {
		return 0, nil, ErrDBNil
	}

	failedIDs = []string{}

	for _, id := range ids {
		found, delErr := Delete(db, id)
		if delErr != nil || !found {
			failedIDs = append(failedIDs, id)
			continue
		}
		deletedCount++
	}

	return deletedCount, failedIDs, nil
}

// Filter narrows List results for the integration API.
type Filter struct {
	Status models.Status
	From   time.Time
	To     time.Time
	Limit  int
	Offset int
}

// ListFiltered returns requests matching the filter plus the total number
// of matches before pagination.
func ListFiltered(db *gorm.DB, filter Filter) ([]models.RepairRequest, int64, error) {
	if db == nil {
		return nil, 0, ErrDBNil
	}

	query := db.Model(&models.RepairRequest{})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if !filter.From.IsZero() {
		query = query.Where("created_at >= ?", filter.From)
	}
	if !filter.To.IsZero() {
		query = query.Where("created_at <= ?", filter.To)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at DESC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var requests []models.RepairRequest
	if err := query.Find(&requests).Error; err != nil {
		return nil, 0, err
	}

	return requests, total, nil
}

// Stats aggregates request counts for the integration stats endpoint.
type Stats struct {
	Total       int64            `json:"total_requests"`
	New         int64            `json:"new"`
	InProgress  int64            `json:"in_progress"`
	Completed   int64            `json:"completed"`
	OnHold      int64            `json:"on_hold"`
	Brands      map[string]int64 `json:"brands"`
	DeviceTypes map[string]int64 `json:"device_types"`
}

// GetStats computes aggregate counts for requests created within the given
// range. Zero range bounds are ignored.
func GetStats(db *gorm.DB, from, to time.Time) (*Stats, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	query := db.Model(&models.RepairRequest{})
	if !from.IsZero() {
		query = query.Where("created_at >= ?", from)
	}
	if !to.IsZero() {
		query = query.Where("created_at <= ?", to)
	}

	var requests []models.RepairRequest
	if err := query.Find(&requests).Error; err != nil {
		return nil, err
	}

	stats := &Stats{
		Brands:      map[string]int64{},
		DeviceTypes: map[string]int64{},
	}

	for _, req := range requests {
		stats.Total++

		switch req.Status {
		case models.StatusNew:
			stats.New++
		case models.StatusInProgress:
			stats.InProgress++
		case models.StatusCompleted:
			stats.Completed++
		case models.StatusOnHold:
			stats.OnHold++
		}

		stats.Brands[req.Brand]++
		stats.DeviceTypes[req.DeviceType]++
	}

	return stats, nil
}
