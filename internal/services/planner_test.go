package services_test

import (
	"testing"

	"github.com/carbonledger/carbonledger/internal/models"
	"github.com/carbonledger/carbonledger/internal/services"
)

func TestEvaluateSlidersWeights(t *testing.T) {
	// 0.10*50 + 0.50*20 + 0.30*10 = 18% of 1000 = 180
	result := services.EvaluateSliders(dec("1000"), services.SliderInput{
		LedRetrofitPct: flexDec(t, "50"),
		SolarSharePct:  flexDec(t, "20"),
		FleetHybridPct: flexDec(t, "10"),
	})

	if result.CombinedReductionPct != 18 {
		t.Errorf("Expected combined 18%%, got %v", result.CombinedReductionPct)
	}
	if result.EstimatedSavingsKg != 180 {
		t.Errorf("Expected savings 180, got %v", result.EstimatedSavingsKg)
	}
}

// TestEvaluateSlidersCap: the combined reduction never exceeds 100%.
func TestEvaluateSlidersCap(t *testing.T) {
	result := services.EvaluateSliders(dec("1000"), services.SliderInput{
		LedRetrofitPct: flexDec(t, "1000"),
		SolarSharePct:  flexDec(t, "1000"),
		FleetHybridPct: flexDec(t, "1000"),
	})

	if result.CombinedReductionPct != 100 {
		t.Errorf("Expected cap at 100%%, got %v", result.CombinedReductionPct)
	}
	if result.EstimatedSavingsKg != 1000 {
		t.Errorf("Expected savings equal to baseline, got %v", result.EstimatedSavingsKg)
	}
}

func TestApplyActionAndImpact(t *testing.T) {
	db := setupTestDB(t)
	f := setupFixtures(t, db)

	addActivity(t, db, f, "2024-06-01", "Electricity", "2500", "1000")

	lib, err := services.CreateLibraryAction(db, services.LibraryActionInput{
		Code:                 "led_retrofit",
		Name:                 "LED retrofit",
		ExpectedReductionPct: flexDec(t, "10"),
	})
	if err != nil {
		t.Fatalf("CreateLibraryAction failed: %v", err)
	}

	oa, err := services.ApplyAction(db, &f.User, services.ApplyActionInput{
		ActionID: lib.ActionID,
		Year:     2026,
	})
	if err != nil {
		t.Fatalf("ApplyAction failed: %v", err)
	}
	if oa.Status != "planned" {
		t.Errorf("Expected status planned, got %q", oa.Status)
	}

	impact, err := services.Impact(db, f.Org.OrgID)
	if err != nil {
		t.Fatalf("Impact failed: %v", err)
	}
	if impact.BaselineEmissionsKg != 1000 {
		t.Errorf("Expected baseline 1000, got %v", impact.BaselineEmissionsKg)
	}
	if impact.TotalReductionKg != 100 {
		t.Errorf("Expected reduction 100 (10%%), got %v", impact.TotalReductionKg)
	}
	if impact.ProjectedAfterActionsKg != 900 {
		t.Errorf("Expected projected 900, got %v", impact.ProjectedAfterActionsKg)
	}
}

func TestApplyActionUnknownID(t *testing.T) {
	db := setupTestDB(t)
	f := setupFixtures(t, db)

	_, err := services.ApplyAction(db, &f.User, services.ApplyActionInput{ActionID: 9999})
	if err == nil {
		t.Error("Expected error for unknown action_id")
	}
}

func TestApplyActionForeignFacility(t *testing.T) {
	db := setupTestDB(t)
	f := setupFixtures(t, db)

	lib, err := services.CreateLibraryAction(db, services.LibraryActionInput{
		Code:                 "solar_ppa",
		Name:                 "Solar PPA",
		ExpectedReductionPct: flexDec(t, "50"),
	})
	if err != nil {
		t.Fatalf("CreateLibraryAction failed: %v", err)
	}

	otherOrg := models.Organization{Name: "Rival Inc"}
	if err := db.Create(&otherOrg).Error; err != nil {
		t.Fatalf("Failed to create org: %v", err)
	}
	otherFac := models.Facility{OrgID: otherOrg.OrgID, Name: "Rival plant"}
	if err := db.Create(&otherFac).Error; err != nil {
		t.Fatalf("Failed to create facility: %v", err)
	}

	_, err = services.ApplyAction(db, &f.User, services.ApplyActionInput{
		ActionID:   lib.ActionID,
		FacilityID: &otherFac.FacilityID,
	})
	if err == nil {
		t.Error("Expected error applying to a foreign facility")
	}
}
