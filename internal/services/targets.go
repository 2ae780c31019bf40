package services

import (
	"time"

	"github.com/carbonledger/carbonledger/internal/models"
	"github.com/carbonledger/carbonledger/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TargetInput is the payload for creating a reduction target.
type TargetInput struct {
	BaselineYear     int               `json:"baseline_year"`
	TargetYear       int               `json:"target_year"`
	ReductionPercent types.FlexDecimal `json:"reduction_percent"`
}

// ProgressResult compares a target year's actual total with the reduced
// baseline.
type ProgressResult struct {
	BaselineCO2eKg    float64 `json:"baseline_co2e_kg"`
	CurrentEmissions  float64 `json:"current_emissions"`
	RequiredEmissions float64 `json:"required_emissions"`
	OnTrack           bool    `json:"on_track"`
}

// YearTotal sums the organization's cached co2e for one calendar year, in
// decimal.
func YearTotal(db *gorm.DB, orgID uint64, year int) (decimal.Decimal, error) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)

	var rows []models.ActivityLog
	err := db.
		Joins("JOIN facility ON facility.facility_id = activity_log.facility_id").
		Where("facility.org_id = ?", orgID).
		Where("activity_log.activity_date >= ? AND activity_log.activity_date < ?", start, end).
		Find(&rows).Error
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.CO2eKg)
	}
	return total, nil
}

// CreateTarget snapshots the baseline year's total onto the target row. The
// snapshot is frozen: later factor or activity edits do not refresh it.
func CreateTarget(db *gorm.DB, user *models.User, in TargetInput) (*models.Target, error) {
	if user.OrgID == nil {
		return nil, types.BadRequest("user is not attached to an organization")
	}
	if in.BaselineYear == 0 || in.TargetYear == 0 {
		return nil, types.BadRequest("baseline_year and target_year are required")
	}
	if !in.ReductionPercent.Valid() {
		return nil, types.BadRequest("reduction_percent must be numeric")
	}

	baseline, err := YearTotal(db, *user.OrgID, in.BaselineYear)
	if err != nil {
		return nil, err
	}

	target := models.Target{
		OrgID:            *user.OrgID,
		BaselineYear:     in.BaselineYear,
		BaselineCO2eKg:   baseline,
		TargetYear:       in.TargetYear,
		ReductionPercent: in.ReductionPercent.Decimal,
		CreatedBy:        user.UserID,
	}
	if err := db.Create(&target).Error; err != nil {
		return nil, err
	}
	return &target, nil
}

// ListTargets returns the organization's targets, newest first.
func ListTargets(db *gorm.DB, orgID uint64) ([]models.Target, error) {
	var rows []models.Target
	if err := db.Where("org_id = ?", orgID).Order("target_id DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// TargetProgress recomputes the target year's actual total and compares it
// against required = baseline x (1 - reduction/100).
func TargetProgress(db *gorm.DB, orgID, targetID uint64) (*ProgressResult, error) {
	var target models.Target
	err := db.First(&target, "target_id = ? AND org_id = ?", targetID, orgID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, types.NotFound("target not found")
		}
		return nil, err
	}

	current, err := YearTotal(db, orgID, target.TargetYear)
	if err != nil {
		return nil, err
	}

	hundred := decimal.NewFromInt(100)
	required := target.BaselineCO2eKg.Mul(
		decimal.NewFromInt(1).Sub(target.ReductionPercent.Div(hundred)))

	return &ProgressResult{
		BaselineCO2eKg:    target.BaselineCO2eKg.InexactFloat64(),
		CurrentEmissions:  current.InexactFloat64(),
		RequiredEmissions: required.InexactFloat64(),
		OnTrack:           current.LessThanOrEqual(required),
	}, nil
}
