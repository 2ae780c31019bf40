package database_test

import (
	"testing"

	"github.com/carbonledger/carbonledger/internal/database"
	"github.com/carbonledger/carbonledger/internal/models"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

func TestSeedPopulatesReferenceData(t *testing.T) {
	db := setupTestDB(t)

	if err := database.Seed(db); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}

	var unitCount, typeCount, factorCount, actionCount int64
	db.Model(&models.Unit{}).Count(&unitCount)
	db.Model(&models.ActivityType{}).Count(&typeCount)
	db.Model(&models.EmissionFactor{}).Count(&factorCount)
	db.Model(&models.ActionLibrary{}).Count(&actionCount)

	if unitCount == 0 || typeCount != 7 || factorCount == 0 || actionCount != 3 {
		t.Errorf("Unexpected seed counts: units=%d types=%d factors=%d actions=%d",
			unitCount, typeCount, factorCount, actionCount)
	}

	// Every activity type must have a default unit so quick entry works
	var types []models.ActivityType
	db.Find(&types)
	for _, at := range types {
		if at.DefaultUnitID == nil {
			t.Errorf("Activity type %q has no default unit", at.Code)
		}
	}
}

// TestSeedIsIdempotent: a second run adds nothing.
func TestSeedIsIdempotent(t *testing.T) {
	db := setupTestDB(t)

	if err := database.Seed(db); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}
	var before int64
	db.Model(&models.EmissionFactor{}).Count(&before)

	if err := database.Seed(db); err != nil {
		t.Fatalf("Second seed failed: %v", err)
	}
	var after int64
	db.Model(&models.EmissionFactor{}).Count(&after)

	if before != after {
		t.Errorf("Seed not idempotent: %d then %d factors", before, after)
	}
}
