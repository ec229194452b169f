package formoption

import (
	"gorm.io/gorm"

	"github.com/QuickFix-Booking/QuickFix-Booking/internal/db/models"
)

type seedEntry struct {
	kind       models.OptionKind
	value      string
	brand      string
	deviceType string
}

// defaultOptions is the taxonomy a fresh deployment starts with.
var defaultOptions = []seedEntry{ //nolint:gochecknoglobals
	// Brands
	{models.KindBrand, "Apple", "", ""},
	{models.KindBrand, "Samsung", "", ""},
	{models.KindBrand, "Google", "", ""},
	{models.KindBrand, "OnePlus", "", ""},
	{models.KindBrand, "Xiaomi", "", ""},

	// Device types for Apple
	{models.KindDeviceType, "iPhone", "Apple", ""},
	{models.KindDeviceType, "iPad", "Apple", ""},
	{models.KindDeviceType, "MacBook", "Apple", ""},
	{models.KindDeviceType, "Apple Watch", "Apple", ""},

	// Device types for Samsung
	{models.KindDeviceType, "Galaxy S Series", "Samsung", ""},
	{models.KindDeviceType, "Galaxy A Series", "Samsung", ""},
	{models.KindDeviceType, "Galaxy Tab", "Samsung", ""},
	{models.KindDeviceType, "Galaxy Watch", "Samsung", ""},

	// Device types for Google
	{models.KindDeviceType, "Pixel Phone", "Google", ""},
	{models.KindDeviceType, "Pixel Tablet", "Google", ""},
	{models.KindDeviceType, "Pixel Watch", "Google", ""},

	// Device types for OnePlus
	{models.KindDeviceType, "OnePlus Phone", "OnePlus", ""},
	{models.KindDeviceType, "OnePlus Watch", "OnePlus", ""},

	// Device types for Xiaomi
	{models.KindDeviceType, "Xiaomi Phone", "Xiaomi", ""},
	{models.KindDeviceType, "Redmi Phone", "Xiaomi", ""},

	// Models for Apple iPhone
	{models.KindModel, "iPhone 15 Pro Max", "Apple", "iPhone"},
	{models.KindModel, "iPhone 15 Pro", "Apple", "iPhone"},
	{models.KindModel, "iPhone 15", "Apple", "iPhone"},
	{models.KindModel, "iPhone 14 Pro Max", "Apple", "iPhone"},
	{models.KindModel, "iPhone 14 Pro", "Apple", "iPhone"},
	{models.KindModel, "iPhone 14", "Apple", "iPhone"},
	{models.KindModel, "iPhone 13", "Apple", "iPhone"},
	{models.KindModel, "iPhone 12", "Apple", "iPhone"},
	{models.KindModel, "iPhone SE", "Apple", "iPhone"},

	// Models for Apple iPad
	{models.KindModel, `iPad Pro 12.9"`, "Apple", "iPad"},
	{models.KindModel, `iPad Pro 11"`, "Apple", "iPad"},
	{models.KindModel, "iPad Air", "Apple", "iPad"},
	{models.KindModel, "iPad Mini", "Apple", "iPad"},
	{models.KindModel, "iPad (10th Gen)", "Apple", "iPad"},

	// Models for Apple MacBook
	{models.KindModel, `MacBook Pro 16"`, "Apple", "MacBook"},
	{models.KindModel, `MacBook Pro 14"`, "Apple", "MacBook"},
	{models.KindModel, "MacBook Air M2", "Apple", "MacBook"},
	{models.KindModel, "MacBook Air M1", "Apple", "MacBook"},

	// Models for Apple Watch
	{models.KindModel, "Apple Watch Ultra 2", "Apple", "Apple Watch"},
	{models.KindModel, "Apple Watch Series 9", "Apple", "Apple Watch"},
	{models.KindModel, "Apple Watch SE", "Apple", "Apple Watch"},

	// Models for Samsung Galaxy S Series
	{models.KindModel, "Galaxy S24 Ultra", "Samsung", "Galaxy S Series"},
	{models.KindModel, "Galaxy S24+", "Samsung", "Galaxy S Series"},
	{models.KindModel, "Galaxy S24", "Samsung", "Galaxy S Series"},
	{models.KindModel, "Galaxy S23 Ultra", "Samsung", "Galaxy S Series"},
	{models.KindModel, "Galaxy S23", "Samsung", "Galaxy S Series"},

	// Models for Samsung Galaxy A Series
	{models.KindModel, "Galaxy A54", "Samsung", "Galaxy A Series"},
	{models.KindModel, "Galaxy A34", "Samsung", "Galaxy A Series"},
	{models.KindModel, "Galaxy A14", "Samsung", "Galaxy A Series"},

	// Models for Google Pixel
	{models.KindModel, "Pixel 8 Pro", "Google", "Pixel Phone"},
	{models.KindModel, "Pixel 8", "Google", "Pixel Phone"},
	{models.KindModel, "Pixel 7 Pro", "Google", "Pixel Phone"},
	{models.KindModel, "Pixel 7a", "Google", "Pixel Phone"},
}

// Seed inserts the default taxonomy if the table is empty.
func Seed(db *gorm.DB) error {
	if db == nil {
		return ErrDBNil
	}

	var count int64
	if err := db.Model(&models.FormOption{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return nil
	}

	options := make([]models.FormOption, 0, len(defaultOptions))
	for _, entry := range defaultOptions {
		options = append(options, models.FormOption{
			Kind:       entry.kind,
			Value:      entry.value,
			Brand:      entry.brand,
			DeviceType: entry.deviceType,
		})
	}

	return db.Create(&options).Error
}
