package services_test

import (
	"testing"

	"github.com/carbonledger/carbonledger/internal/services"
)

func TestCreateTargetSnapshotsBaseline(t *testing.T) {
	db := setupTestDB(t)
	f := setupFixtures(t, db)

	addActivity(t, db, f, "2024-02-01", "Electricity", "1500", "600")
	addActivity(t, db, f, "2024-11-20", "Electricity", "1000", "400")
	// Outside the baseline year
	addActivity(t, db, f, "2025-01-05", "Electricity", "9000", "3600")

	target, err := services.CreateTarget(db, &f.User, services.TargetInput{
		BaselineYear:     2024,
		TargetYear:       2030,
		ReductionPercent: flexDec(t, "30"),
	})
	if err != nil {
		t.Fatalf("CreateTarget failed: %v", err)
	}
	if !target.BaselineCO2eKg.Equal(dec("1000")) {
		t.Errorf("Expected baseline snapshot 1000, got %s", target.BaselineCO2eKg)
	}
}

// TestTargetProgressBoundary: baseline 1000 with a 30% reduction requires
// 700. Being exactly at 700 still counts as on track.
func TestTargetProgressBoundary(t *testing.T) {
	cases := []struct {
		name    string
		co2e    string
		onTrack bool
	}{
		{"below required", "650", true},
		{"exactly required", "700", true},
		{"above required", "750", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db := setupTestDB(t)
			f := setupFixtures(t, db)

			addActivity(t, db, f, "2024-06-01", "Electricity", "2500", "1000")

			target, err := services.CreateTarget(db, &f.User, services.TargetInput{
				BaselineYear:     2024,
				TargetYear:       2026,
				ReductionPercent: flexDec(t, "30"),
			})
			if err != nil {
				t.Fatalf("CreateTarget failed: %v", err)
			}

			addActivity(t, db, f, "2026-06-01", "Electricity", "1", tc.co2e)

			progress, err := services.TargetProgress(db, f.Org.OrgID, target.TargetID)
			if err != nil {
				t.Fatalf("TargetProgress failed: %v", err)
			}
			if progress.RequiredEmissions != 700 {
				t.Errorf("Expected required 700, got %v", progress.RequiredEmissions)
			}
			if progress.OnTrack != tc.onTrack {
				t.Errorf("Expected on_track=%v at %s, got %v", tc.onTrack, tc.co2e, progress.OnTrack)
			}
		})
	}
}

// TestTargetBaselineIsFrozen: activity logged into the baseline year after
// target creation does not change the stored snapshot.
func TestTargetBaselineIsFrozen(t *testing.T) {
	db := setupTestDB(t)
	f := setupFixtures(t, db)

	addActivity(t, db, f, "2024-06-01", "Electricity", "2500", "1000")

	target, err := services.CreateTarget(db, &f.User, services.TargetInput{
		BaselineYear:     2024,
		TargetYear:       2030,
		ReductionPercent: flexDec(t, "50"),
	})
	if err != nil {
		t.Fatalf("CreateTarget failed: %v", err)
	}

	addActivity(t, db, f, "2024-12-31", "Electricity", "1000", "400")

	progress, err := services.TargetProgress(db, f.Org.OrgID, target.TargetID)
	if err != nil {
		t.Fatalf("TargetProgress failed: %v", err)
	}
	if progress.BaselineCO2eKg != 1000 {
		t.Errorf("Expected frozen baseline 1000, got %v", progress.BaselineCO2eKg)
	}
}

func TestTargetProgressCrossTenant(t *testing.T) {
	db := setupTestDB(t)
	f := setupFixtures(t, db)

	target, err := services.CreateTarget(db, &f.User, services.TargetInput{
		BaselineYear:     2024,
		TargetYear:       2030,
		ReductionPercent: flexDec(t, "30"),
	})
	if err != nil {
		t.Fatalf("CreateTarget failed: %v", err)
	}

	if _, err := services.TargetProgress(db, f.Org.OrgID+1, target.TargetID); err == nil {
		t.Error("Expected not-found error across tenants")
	}
}
