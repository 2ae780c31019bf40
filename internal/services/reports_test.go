package services_test

import (
	"testing"

	"github.com/carbonledger/carbonledger/internal/models"
	"github.com/carbonledger/carbonledger/internal/services"
)

func TestSummaryAggregation(t *testing.T) {
	db := setupTestDB(t)
	f := setupFixtures(t, db)

	addActivity(t, db, f, "2025-01-10", "Electricity", "100", "40")
	addActivity(t, db, f, "2025-01-20", "Electricity", "200", "80")
	addActivity(t, db, f, "2025-02-05", "Diesel", "10", "102")

	result, err := services.Summary(db, f.Org.OrgID, services.SummaryFilter{Period: "monthly"})
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}

	if result.ActivityCount != 3 {
		t.Errorf("Expected 3 activities, got %d", result.ActivityCount)
	}
	if result.TotalCO2eKg != 222 {
		t.Errorf("Expected total 222, got %v", result.TotalCO2eKg)
	}

	if len(result.ByPeriod) != 2 {
		t.Fatalf("Expected 2 periods, got %d", len(result.ByPeriod))
	}
	if result.ByPeriod[0].Period != "2025-01" || result.ByPeriod[0].CO2eKg != 120 {
		t.Errorf("Unexpected first period: %+v", result.ByPeriod[0])
	}
	if result.ByPeriod[1].Period != "2025-02" || result.ByPeriod[1].CO2eKg != 102 {
		t.Errorf("Unexpected second period: %+v", result.ByPeriod[1])
	}

	// Raw quantities are per label, independent of co2e
	if len(result.RawQuantities) != 2 {
		t.Fatalf("Expected 2 labels, got %d", len(result.RawQuantities))
	}
	if result.RawQuantities[1].ActivityType != "Electricity" || result.RawQuantities[1].Quantity != 300 {
		t.Errorf("Unexpected electricity quantity: %+v", result.RawQuantities[1])
	}
}

func TestSummaryYearlyPeriod(t *testing.T) {
	db := setupTestDB(t)
	f := setupFixtures(t, db)

	addActivity(t, db, f, "2024-06-01", "Electricity", "100", "40")
	addActivity(t, db, f, "2025-06-01", "Electricity", "100", "40")

	result, err := services.Summary(db, f.Org.OrgID, services.SummaryFilter{Period: "yearly"})
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if len(result.ByPeriod) != 2 {
		t.Fatalf("Expected 2 years, got %d", len(result.ByPeriod))
	}
	if result.ByPeriod[0].Period != "2024" {
		t.Errorf("Expected key 2024, got %q", result.ByPeriod[0].Period)
	}
}

func TestSummaryScopeFilter(t *testing.T) {
	db := setupTestDB(t)
	f := setupFixtures(t, db)

	gal := models.Unit{Code: "gal"}
	if err := db.Create(&gal).Error; err != nil {
		t.Fatalf("Failed to create unit: %v", err)
	}
	diesel := models.ActivityType{Code: "diesel", Label: "Diesel", Scope: 1, DefaultUnitID: &gal.UnitID}
	if err := db.Create(&diesel).Error; err != nil {
		t.Fatalf("Failed to create activity type: %v", err)
	}

	elec := addActivity(t, db, f, "2025-01-10", "Electricity", "100", "40")
	elec.ActivityTypeID = &f.Elec.ActivityTypeID
	db.Save(&elec)

	dsl := addActivity(t, db, f, "2025-01-11", "Diesel", "10", "102")
	dsl.ActivityTypeID = &diesel.ActivityTypeID
	db.Save(&dsl)

	scope := 2
	result, err := services.Summary(db, f.Org.OrgID, services.SummaryFilter{Scope: &scope})
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if result.ActivityCount != 1 {
		t.Errorf("Expected 1 scope-2 activity, got %d", result.ActivityCount)
	}
	if result.TotalCO2eKg != 40 {
		t.Errorf("Expected total 40, got %v", result.TotalCO2eKg)
	}
}

func TestSummaryFacilityFilterAndTenantScope(t *testing.T) {
	db := setupTestDB(t)
	f := setupFixtures(t, db)

	other := models.Facility{OrgID: f.Org.OrgID, Name: "Warehouse"}
	if err := db.Create(&other).Error; err != nil {
		t.Fatalf("Failed to create facility: %v", err)
	}

	addActivity(t, db, f, "2025-01-10", "Electricity", "100", "40")
	warehouseAct := models.ActivityLog{
		FacilityID:   other.FacilityID,
		FactorID:     f.Factor.FactorID,
		ActivityType: "Electricity",
		Quantity:     dec("50"),
		Unit:         "kWh",
		ActivityDate: mustDate(t, "2025-01-12"),
		CO2eKg:       dec("20"),
	}
	if err := db.Create(&warehouseAct).Error; err != nil {
		t.Fatalf("Failed to create activity: %v", err)
	}

	result, err := services.Summary(db, f.Org.OrgID, services.SummaryFilter{FacilityID: &other.FacilityID})
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if result.TotalCO2eKg != 20 {
		t.Errorf("Expected 20 for the warehouse only, got %v", result.TotalCO2eKg)
	}

	// A different org sees nothing at all
	result, err = services.Summary(db, f.Org.OrgID+100, services.SummaryFilter{})
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if result.ActivityCount != 0 {
		t.Errorf("Expected empty summary for foreign org, got %d rows", result.ActivityCount)
	}
}
