// Package formoption manages the brand -> device type -> model taxonomy
// that populates the intake form's choices.
package formoption

import (
	"errors"

	"gorm.io/gorm"

	"github.com/QuickFix-Booking/QuickFix-Booking/internal/db/models"
)

var (
	// ErrValueEmpty is returned when an option value or parent is empty.
	ErrValueEmpty = errors.New("form option value cannot be empty")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Hierarchy is the materialized taxonomy view the intake form consumes.
// Models are keyed by "brand-deviceType".
type Hierarchy struct {
	Brands      []string            `json:"brands"`
	DeviceTypes map[string][]string `json:"deviceTypes"`
	Models      map[string][]string `json:"models"`
}

// Get returns the materialized hierarchy derived by grouping the flat
// option records.
func Get(db *gorm.DB) (*Hierarchy, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var options []models.FormOption
	if err := db.Order("id").Find(&options).Error; err != nil {
		return nil, err
	}

	h := &Hierarchy{
		Brands:      []string{},
		DeviceTypes: map[string][]string{},
		Models:      map[string][]string{},
	}

	for _, opt := range options {
		switch opt.Kind {
		case models.KindBrand:
			h.Brands = append(h.Brands, opt.Value)
		case models.KindDeviceType:
			if opt.Brand != "" {
				h.DeviceTypes[opt.Brand] = append(h.DeviceTypes[opt.Brand], opt.Value)
			}
		case models.KindModel:
			if opt.Brand != "" && opt.DeviceType != "" {
				key := opt.Brand + "-" + opt.DeviceType
				h.Models[key] = append(h.Models[key], opt.Value)
			}
		}
	}

	return h, nil
}

// exists reports whether an identical option record is already present.
// Adds are idempotent: adding the same value twice is a no-op.
func exists(db *gorm.DB, kind models.OptionKind, value, brand, deviceType string) (bool, error) {
	var count int64
	err := db.Model(&models.FormOption{}).
		Where("kind = ? AND value = ? AND brand = ? AND device_type = ?", kind, value, brand, deviceType).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func add(db *gorm.DB, kind models.OptionKind, value, brand, deviceType string) (*Hierarchy, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if value == "" {
		return nil, ErrValueEmpty
	}

	found, err := exists(db, kind, value, brand, deviceType)
	if err != nil {
		return nil, err
	}

	if !found {
		opt := models.FormOption{
			Kind:       kind,
			Value:      value,
			Brand:      brand,
			DeviceType: deviceType,
		}
		if err := db.Create(&opt).Error; err != nil {
			return nil, err
		}
	}

	return Get(db)
}

// AddBrand appends a new brand and returns the refreshed hierarchy.
func AddBrand(db *gorm.DB, brand string) (*Hierarchy, error) {
	return add(db, models.KindBrand, brand, "", "")
}

// AddDeviceType appends a new device type under a brand.
func AddDeviceType(db *gorm.DB, brand, deviceType string) (*Hierarchy, error) {
	if brand == "" {
		return nil, ErrValueEmpty
	}

	return add(db, models.KindDeviceType, deviceType, brand, "")
}

// AddModel appends a new model under a brand and device type.
func AddModel(db *gorm.DB, brand, deviceType, model string) (*Hierarchy, error) {
	if brand == "" || deviceType == "" {
		return nil, ErrValueEmpty
	}

	return add(db, models.KindModel, model, brand, deviceType)
}

// RemoveBrand removes the brand record and every device type and model
// whose parent chain includes it.
func RemoveBrand(db *gorm.DB, brand string) (*Hierarchy, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if brand == "" {
		return nil, ErrValueEmpty
	}

	err := db.Where("(kind = ? AND value = ?) OR brand = ?", models.KindBrand, brand, brand).
		Delete(&models.FormOption{}).Error
	if err != nil {
		return nil, err
	}

	return Get(db)
}

// RemoveDeviceType removes the device type record and every model under it.
func RemoveDeviceType(db *gorm.DB, brand, deviceType string) (*Hierarchy, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if brand == "" || deviceType == "" {
		return nil, ErrValueEmpty
	}

	err := db.Where(
		"(kind = ? AND value = ? AND brand = ?) OR (kind = ? AND brand = ? AND device_type = ?)",
		models.KindDeviceType, deviceType, brand,
		models.KindModel, brand, deviceType,
	).Delete(&models.FormOption{}).Error
	if err != nil {
		return nil, err
	}

	return Get(db)
}

// RemoveModel removes only the exact brand/deviceType/model triple.
func RemoveModel(db *gorm.DB, brand, deviceType, model string) (*Hierarchy, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if brand == "" || deviceType == "" || model == "" {
		return nil, ErrValueEmpty
	}

	err := db.Where("kind = ? AND value = ? AND brand = ? AND device_type = ?",
		models.KindModel, model, brand, deviceType).
		Delete(&models.FormOption{}).Error
	if err != nil {
		return nil, err
	}

	return Get(db)
}
