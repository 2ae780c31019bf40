//go:build integration

package integration_test

import (
	"context"
	"testing"
	"time"

	"github.com/carbonledger/carbonledger/internal/config"
	"github.com/carbonledger/carbonledger/internal/database"
	"github.com/carbonledger/carbonledger/internal/models"
	"github.com/carbonledger/carbonledger/internal/services"
	"github.com/carbonledger/carbonledger/internal/types"
	"github.com/shopspring/decimal"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

// TestWithPostgreSQL runs the core service flows against a real PostgreSQL
// container, exercising the decimal column types sqlite approximates.
func TestWithPostgreSQL(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("carbonledger_test"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("Failed to start PostgreSQL container: %v", err)
	}
	defer func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	}()

	host, err := pgContainer.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}
	port, err := pgContainer.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}

	cfg := &config.Config{
		DBType:            "postgres",
		DBHost:            host,
		DBPort:            port.Port(),
		DBDatabase:        "carbonledger_test",
		DBUser:            "testuser",
		DBPassword:        "testpass",
		DBConnectionLimit: 5,
	}

	db, err := database.Connect(cfg)
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
	if err := database.Seed(db); err != nil {
		t.Fatalf("Failed to seed: %v", err)
	}

	t.Run("ActivityLifecycle", func(t *testing.T) {
		testActivityLifecycle(t, db)
	})
	t.Run("TargetProgress", func(t *testing.T) {
		testTargetProgress(t, db)
	})
}

func createTenant(t *testing.T, db *gorm.DB, orgName, email string) (*models.User, *models.Facility) {
	t.Helper()

	org := models.Organization{Name: orgName}
	if err := db.Create(&org).Error; err != nil {
		t.Fatalf("Failed to create org: %v", err)
	}
	user := models.User{Email: email, PasswordHash: "x", OrgID: &org.OrgID}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	fac := models.Facility{OrgID: org.OrgID, Name: "HQ"}
	if err := db.Create(&fac).Error; err != nil {
		t.Fatalf("Failed to create facility: %v", err)
	}
	return &user, &fac
}

func flexDec(t *testing.T, s string) types.FlexDecimal {
	t.Helper()
	var fd types.FlexDecimal
	if err := fd.UnmarshalJSON([]byte(s)); err != nil {
		t.Fatalf("Bad flex decimal %q: %v", s, err)
	}
	return fd
}

func testActivityLifecycle(t *testing.T, db *gorm.DB) {
	user, fac := createTenant(t, db, "Integration Org", "it@example.test")

	act, err := services.CreateActivity(db, user, services.ActivityInput{
		FacilityID:   fac.FacilityID,
		ActivityType: "electricity",
		Quantity:     flexDec(t, "123.456"),
		ActivityDate: "2025-03-10",
	})
	if err != nil {
		t.Fatalf("CreateActivity failed: %v", err)
	}

	// Round-trip through the numeric(18,6) column keeps the exact value
	var stored models.ActivityLog
	if err := db.First(&stored, "activity_id = ?", act.ActivityID).Error; err != nil {
		t.Fatalf("Failed to reload activity: %v", err)
	}
	if !stored.CO2eKg.Equal(act.CO2eKg) {
		t.Errorf("CO2e changed across storage: %s vs %s", stored.CO2eKg, act.CO2eKg)
	}

	rows, err := services.ListActivities(db, *user.OrgID, nil)
	if err != nil {
		t.Fatalf("ListActivities failed: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("Expected 1 activity, got %d", len(rows))
	}

	if err := services.DeleteActivity(db, *user.OrgID, act.ActivityID); err != nil {
		t.Errorf("DeleteActivity failed: %v", err)
	}
}

func testTargetProgress(t *testing.T, db *gorm.DB) {
	user, fac := createTenant(t, db, "Target Org", "target@example.test")

	day, _ := time.Parse("2006-01-02", "2024-06-01")
	act := models.ActivityLog{
		FacilityID:   fac.FacilityID,
		FactorID:     1,
		ActivityType: "Electricity",
		Quantity:     decimal.RequireFromString("2500"),
		Unit:         "kWh",
		ActivityDate: day,
		CO2eKg:       decimal.RequireFromString("1000"),
	}
	if err := db.Create(&act).Error; err != nil {
		t.Fatalf("Failed to create activity: %v", err)
	}

	target, err := services.CreateTarget(db, user, services.TargetInput{
		BaselineYear:     2024,
		TargetYear:       2030,
		ReductionPercent: flexDec(t, "30"),
	})
	if err != nil {
		t.Fatalf("CreateTarget failed: %v", err)
	}

	progress, err := services.TargetProgress(db, *user.OrgID, target.TargetID)
	if err != nil {
		t.Fatalf("TargetProgress failed: %v", err)
	}
	if progress.RequiredEmissions != 700 {
		t.Errorf("Expected required 700, got %v", progress.RequiredEmissions)
	}
}
