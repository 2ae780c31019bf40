package services

import (
	"github.com/carbonledger/carbonledger/internal/models"
	"github.com/carbonledger/carbonledger/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Fixed slider weights for the quick what-if estimator. These are a product
// business rule, not a physical model.
var (
	ledRetrofitWeight = decimal.NewFromFloat(0.10)
	solarShareWeight  = decimal.NewFromFloat(0.50)
	fleetHybridWeight = decimal.NewFromFloat(0.30)
)

// LibraryActionInput is the payload for adding a mitigation action to the
// shared catalog.
type LibraryActionInput struct {
	Code                 string            `json:"code"`
	Name                 string            `json:"name"`
	Description          string            `json:"description"`
	ExpectedReductionPct types.FlexDecimal `json:"expected_reduction_pct"`
	DefaultCapexUsd      types.FlexDecimal `json:"default_capex_usd"`
	DefaultLifeYears     types.FlexDecimal `json:"default_life_years"`
}

// ApplyActionInput is the payload for an org adopting a library action.
type ApplyActionInput struct {
	ActionID     uint64            `json:"action_id"`
	FacilityID   *uint64           `json:"facility_id"`
	CustomParams models.JSON       `json:"custom_params"`
	Capex        types.FlexDecimal `json:"capex"`
	Year         int               `json:"year"`
}

// ActionImpact is the per-action row in the impact report.
type ActionImpact struct {
	Action      string  `json:"action"`
	ExpectedPct float64 `json:"expected_pct"`
	ReductionKg float64 `json:"reduction_kg"`
}

// ImpactResult is the percentage-library impact model: each adopted action
// reduces the all-time baseline by its expected percentage.
type ImpactResult struct {
	BaselineEmissionsKg      float64        `json:"baseline_emissions_kg"`
	TotalReductionKg         float64        `json:"total_reduction_kg"`
	ProjectedAfterActionsKg  float64        `json:"projected_after_actions_kg"`
	Actions                  []ActionImpact `json:"actions"`
}

// SliderInput is the payload for the quick what-if estimator.
type SliderInput struct {
	LedRetrofitPct types.FlexDecimal `json:"led_retrofit_pct"`
	SolarSharePct  types.FlexDecimal `json:"solar_share_pct"`
	FleetHybridPct types.FlexDecimal `json:"fleet_hybrid_pct"`
}

// SliderResult is the what-if estimator output.
type SliderResult struct {
	BaselineEmissionsKg  float64 `json:"baseline_emissions_kg"`
	CombinedReductionPct float64 `json:"combined_reduction_pct"`
	EstimatedSavingsKg   float64 `json:"estimated_savings_kg"`
}

// OrgTotalCO2e sums the organization's all-time cached co2e in decimal.
func OrgTotalCO2e(db *gorm.DB, orgID uint64) (decimal.Decimal, error) {
	var rows []models.ActivityLog
	err := db.
		Joins("JOIN facility ON facility.facility_id = activity_log.facility_id").
		Where("facility.org_id = ?", orgID).
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

// ListLibrary returns the shared action catalog.
func ListLibrary(db *gorm.DB) ([]models.ActionLibrary, error) {
	var rows []models.ActionLibrary
	if err := db.Order("action_id").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// CreateLibraryAction adds a catalog entry.
func CreateLibraryAction(db *gorm.DB, in LibraryActionInput) (*models.ActionLibrary, error) {
	if in.Code == "" || in.Name == "" {
		return nil, types.BadRequest("code and name are required")
	}
	if !in.ExpectedReductionPct.Valid() {
		return nil, types.BadRequest("expected_reduction_pct must be numeric")
	}

	action := models.ActionLibrary{
		Code:                 in.Code,
		Name:                 in.Name,
		Description:          in.Description,
		ExpectedReductionPct: in.ExpectedReductionPct.Decimal,
		DefaultCapexUsd:      in.DefaultCapexUsd.Decimal,
		DefaultLifeYears:     in.DefaultLifeYears.Decimal,
	}
	if err := db.Create(&action).Error; err != nil {
		return nil, err
	}
	return &action, nil
}

// ApplyAction records an organization's adoption of a library action.
func ApplyAction(db *gorm.DB, user *models.User, in ApplyActionInput) (*models.OrgAction, error) {
	if user.OrgID == nil {
		return nil, types.BadRequest("user is not attached to an organization")
	}

	var lib models.ActionLibrary
	if err := db.First(&lib, "action_id = ?", in.ActionID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, types.BadRequest("unknown action_id")
		}
		return nil, err
	}
	if in.FacilityID != nil {
		if _, err := tenantFacility(db, *user.OrgID, *in.FacilityID); err != nil {
			return nil, err
		}
	}

	oa := models.OrgAction{
		OrgID:        *user.OrgID,
		ActionID:     in.ActionID,
		FacilityID:   in.FacilityID,
		CustomParams: in.CustomParams,
		EstCapexUsd:  in.Capex.Decimal,
		PlannedYear:  in.Year,
		Status:       "planned",
	}
	if err := db.Create(&oa).Error; err != nil {
		return nil, err
	}
	return &oa, nil
}

// Impact evaluates the percentage-library model over the org's adopted
// actions against its all-time total.
func Impact(db *gorm.DB, orgID uint64) (*ImpactResult, error) {
	var actions []models.OrgAction
	err := db.Preload("Action").Where("org_id = ?", orgID).Find(&actions).Error
	if err != nil {
		return nil, err
	}

	baseline, err := OrgTotalCO2e(db, orgID)
	if err != nil {
		return nil, err
	}

	hundred := decimal.NewFromInt(100)
	totalReduction := decimal.Zero
	breakdown := make([]ActionImpact, 0, len(actions))

	for _, a := range actions {
		if a.Action == nil {
			continue
		}
		pct := a.Action.ExpectedReductionPct.Div(hundred)
		reduction := baseline.Mul(pct)
		totalReduction = totalReduction.Add(reduction)

		breakdown = append(breakdown, ActionImpact{
			Action:      a.Action.Name,
			ExpectedPct: a.Action.ExpectedReductionPct.InexactFloat64(),
			ReductionKg: reduction.InexactFloat64(),
		})
	}

	return &ImpactResult{
		BaselineEmissionsKg:     baseline.InexactFloat64(),
		TotalReductionKg:        totalReduction.InexactFloat64(),
		ProjectedAfterActionsKg: baseline.Sub(totalReduction).InexactFloat64(),
		Actions:                 breakdown,
	}, nil
}

// EvaluateSliders applies the fixed linear combination of the three slider
// percentages, capped at a 100% combined reduction. The arithmetic is kept
// exactly as shipped.
func EvaluateSliders(baseline decimal.Decimal, in SliderInput) SliderResult {
	combined := ledRetrofitWeight.Mul(in.LedRetrofitPct.Decimal).
		Add(solarShareWeight.Mul(in.SolarSharePct.Decimal)).
		Add(fleetHybridWeight.Mul(in.FleetHybridPct.Decimal))

	hundred := decimal.NewFromInt(100)
	if combined.GreaterThan(hundred) {
		combined = hundred
	}

	savings := baseline.Mul(combined).Div(hundred)
	return SliderResult{
		BaselineEmissionsKg:  baseline.InexactFloat64(),
		CombinedReductionPct: combined.InexactFloat64(),
		EstimatedSavingsKg:   savings.InexactFloat64(),
	}
}
