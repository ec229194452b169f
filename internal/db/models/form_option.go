package models

import (
	"time"
)

// OptionKind represents the taxonomy level of a form option.
type OptionKind string

const (
	// KindBrand is a top-level brand option.
	KindBrand OptionKind = "brand"
	// KindDeviceType is a device type option, parented by a brand.
	KindDeviceType OptionKind = "device_type"
	// KindModel is a model option, parented by a brand and a device type.
	KindModel OptionKind = "model"
)

// FormOption is a flat taxonomy entry used to populate the intake form's
// choices. A device_type row carries its parent Brand; a model row carries
// both parent Brand and DeviceType. Options are only added and removed,
// never updated in place.
type FormOption struct {
	ID         uint64     `gorm:"primaryKey"`
	Kind       OptionKind `gorm:"type:varchar(20);not null;index"`
	Value      string     `gorm:"size:100;not null"`
	Brand      string     `gorm:"size:100;index"`
	DeviceType string     `gorm:"size:100"`
	CreatedAt  time.Time
}
