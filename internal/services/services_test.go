package services_test

import (
	"testing"
	"time"

	"github.com/carbonledger/carbonledger/internal/database"
	"github.com/carbonledger/carbonledger/internal/models"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory SQLite database for testing
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

// fixtures is the minimal tenant setup most service tests need: one org,
// one user, one facility and the electricity reference chain.
type fixtures struct {
	Org      models.Organization
	User     models.User
	Facility models.Facility
	KWh      models.Unit
	Elec     models.ActivityType
	Factor   models.EmissionFactor
}

func setupFixtures(t *testing.T, db *gorm.DB) *fixtures {
	t.Helper()

	f := &fixtures{}

	f.Org = models.Organization{Name: "Acme Corp"}
	if err := db.Create(&f.Org).Error; err != nil {
		t.Fatalf("Failed to create org: %v", err)
	}

	f.User = models.User{Email: "user@acme.test", PasswordHash: "x", OrgID: &f.Org.OrgID}
	if err := db.Create(&f.User).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	f.Facility = models.Facility{OrgID: f.Org.OrgID, Name: "HQ"}
	if err := db.Create(&f.Facility).Error; err != nil {
		t.Fatalf("Failed to create facility: %v", err)
	}

	f.KWh = models.Unit{Code: "kWh", Description: "kilowatt hour"}
	if err := db.Create(&f.KWh).Error; err != nil {
		t.Fatalf("Failed to create unit: %v", err)
	}

	f.Elec = models.ActivityType{Code: "electricity", Label: "Electricity", Scope: 2, DefaultUnitID: &f.KWh.UnitID}
	if err := db.Create(&f.Elec).Error; err != nil {
		t.Fatalf("Failed to create activity type: %v", err)
	}

	f.Factor = models.EmissionFactor{
		Source:   "eGRID",
		Category: "Electricity",
		Unit:     "kgCO2e/kWh",
		Factor:   dec("0.4"),
		Year:     2024,
	}
	if err := db.Create(&f.Factor).Error; err != nil {
		t.Fatalf("Failed to create emission factor: %v", err)
	}

	return f
}

// addActivity inserts a log row directly, bypassing factor resolution, for
// tests that only care about aggregation.
func addActivity(t *testing.T, db *gorm.DB, f *fixtures, date string, label, quantity, co2e string) models.ActivityLog {
	t.Helper()

	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		t.Fatalf("Bad test date %q: %v", date, err)
	}
	act := models.ActivityLog{
		FacilityID:   f.Facility.FacilityID,
		FactorID:     f.Factor.FactorID,
		ActivityType: label,
		Quantity:     dec(quantity),
		Unit:         "kWh",
		ActivityDate: day,
		CO2eKg:       dec(co2e),
	}
	if err := db.Create(&act).Error; err != nil {
		t.Fatalf("Failed to create activity: %v", err)
	}
	return act
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	day, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("Bad test date %q: %v", s, err)
	}
	return day
}
