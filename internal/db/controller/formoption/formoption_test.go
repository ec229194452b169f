package formoption

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/QuickFix-Booking/QuickFix-Booking/internal/db/models"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	err = db.AutoMigrate(&models.FormOption{})
	require.NoError(t, err, "failed to migrate test database")

	return db
}

func TestSeedAndGet(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, Seed(db))

	h, err := Get(db)
	require.NoError(t, err)

	assert.Contains(t, h.Brands, "Apple")
	assert.Contains(t, h.Brands, "Samsung")
	assert.Contains(t, h.DeviceTypes["Apple"], "iPhone")
	assert.Contains(t, h.Models["Apple-iPhone"], "iPhone 14")
	assert.Contains(t, h.Models["Samsung-Galaxy S Series"], "Galaxy S24 Ultra")
}

func TestSeedIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, Seed(db))
	require.NoError(t, Seed(db))

	h, err := Get(db)
	require.NoError(t, err)
	assert.Len(t, h.Brands, 5)
}

func TestAddBrand(t *testing.T) {
	db := setupTestDB(t)

	h, err := AddBrand(db, "Sony")
	require.NoError(t, err)
	assert.Contains(t, h.Brands, "Sony")
}

func TestAddIsIdempotent(t *testing.T) {
	db := setupTestDB(t)

	_, err := AddBrand(db, "Sony")
	require.NoError(t, err)

	h, err := AddBrand(db, "Sony")
	require.NoError(t, err)

	count := 0
	for _, b := range h.Brands {
		if b == "Sony" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestAddDeviceTypeAndModel(t *testing.T) {
	db := setupTestDB(t)

	_, err := AddBrand(db, "Sony")
	require.NoError(t, err)

	h, err := AddDeviceType(db, "Sony", "Xperia")
	require.NoError(t, err)
	assert.Contains(t, h.DeviceTypes["Sony"], "Xperia")

	h, err = AddModel(db, "Sony", "Xperia", "Xperia 1 V")
	require.NoError(t, err)
	assert.Contains(t, h.Models["Sony-Xperia"], "Xperia 1 V")
}

func TestAddRejectsEmptyValues(t *testing.T) {
	db := setupTestDB(t)

	_, err := AddBrand(db, "")
	require.ErrorIs(t, err, ErrValueEmpty)

	_, err = AddDeviceType(db, "", "Xperia")
	require.ErrorIs(t, err, ErrValueEmpty)

	_, err = AddModel(db, "Sony", "", "Xperia 1 V")
	require.ErrorIs(t, err, ErrValueEmpty)
}

func TestRemoveBrandCascades(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, Seed(db))

	h, err := RemoveBrand(db, "Apple")
	require.NoError(t, err)

	assert.NotContains(t, h.Brands, "Apple")
	assert.NotContains(t, h.DeviceTypes, "Apple")
	assert.NotContains(t, h.Models, "Apple-iPhone")
	assert.NotContains(t, h.Models, "Apple-iPad")

	// other brands' hierarchies untouched
	assert.Contains(t, h.Brands, "Samsung")
	assert.Contains(t, h.DeviceTypes["Samsung"], "Galaxy S Series")
	assert.Contains(t, h.Models["Samsung-Galaxy S Series"], "Galaxy S24")
}

func TestRemoveDeviceTypeCascades(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, Seed(db))

	h, err := RemoveDeviceType(db, "Apple", "iPhone")
	require.NoError(t, err)

	assert.NotContains(t, h.DeviceTypes["Apple"], "iPhone")
	assert.NotContains(t, h.Models, "Apple-iPhone")

	// sibling device types survive
	assert.Contains(t, h.DeviceTypes["Apple"], "iPad")
	assert.Contains(t, h.Models["Apple-iPad"], "iPad Air")
}

func TestRemoveModelExactTripleOnly(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, Seed(db))

	h, err := RemoveModel(db, "Apple", "iPhone", "iPhone 14")
	require.NoError(t, err)

	assert.NotContains(t, h.Models["Apple-iPhone"], "iPhone 14")
	assert.Contains(t, h.Models["Apple-iPhone"], "iPhone 14 Pro")
	assert.Contains(t, h.DeviceTypes["Apple"], "iPhone")
}

func TestNilDB(t *testing.T) {
	_, err := Get(nil)
	require.ErrorIs(t, err, ErrDBNil)

	_, err = AddBrand(nil, "Sony")
	require.ErrorIs(t, err, ErrDBNil)

	require.ErrorIs(t, Seed(nil), ErrDBNil)
}
