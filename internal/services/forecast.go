package services

import (
	"sort"
	"strings"

	"github.com/carbonledger/carbonledger/internal/models"
	"github.com/carbonledger/carbonledger/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ScenarioInput is the payload for creating a forecast scenario.
type ScenarioInput struct {
	Name              string            `json:"name"`
	Description       string            `json:"description"`
	AnnualGrowthPct   types.FlexDecimal `json:"annual_growth_pct"`
	RenewableSharePct types.FlexDecimal `json:"renewable_share_pct"`
	StartYear         int               `json:"start_year"`
	EndYear           int               `json:"end_year"`
}

// YearProjection holds the projected physical quantities for one year.
type YearProjection struct {
	Year       int                `json:"year"`
	Quantities map[string]float64 `json:"quantities"`
}

// ForecastResult is the on-demand projection for a stored scenario.
type ForecastResult struct {
	ScenarioID   uint64           `json:"scenario_id"`
	Name         string           `json:"name"`
	BaselineYear int              `json:"baseline_year"`
	Projections  []YearProjection `json:"projections"`
}

// CreateScenario stores forecast parameters; nothing is projected yet.
func CreateScenario(db *gorm.DB, user *models.User, in ScenarioInput) (*models.ForecastScenario, error) {
	if user.OrgID == nil {
		return nil, types.BadRequest("user is not attached to an organization")
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, types.BadRequest("name is required")
	}
	if in.StartYear == 0 || in.EndYear == 0 {
		return nil, types.BadRequest("start_year and end_year are required")
	}
	if in.StartYear > in.EndYear {
		return nil, types.BadRequest("start_year must not be after end_year")
	}

	scen := models.ForecastScenario{
		OrgID:             *user.OrgID,
		Name:              strings.TrimSpace(in.Name),
		Description:       in.Description,
		AnnualGrowthPct:   in.AnnualGrowthPct.Decimal,
		RenewableSharePct: in.RenewableSharePct.Decimal,
		StartYear:         in.StartYear,
		EndYear:           in.EndYear,
		CreatedBy:         user.UserID,
	}
	if err := db.Create(&scen).Error; err != nil {
		return nil, err
	}
	return &scen, nil
}

// ListScenarios returns the organization's scenarios, newest first.
func ListScenarios(db *gorm.DB, orgID uint64) ([]models.ForecastScenario, error) {
	var rows []models.ForecastScenario
	if err := db.Where("org_id = ?", orgID).Order("scenario_id DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// HistoricalBaseline groups the org's logged quantities by year and
// activity-type label: {year: {label: total quantity}}.
func HistoricalBaseline(db *gorm.DB, orgID uint64) (map[int]map[string]decimal.Decimal, error) {
	var rows []models.ActivityLog
	err := db.
		Joins("JOIN facility ON facility.facility_id = activity_log.facility_id").
		Where("facility.org_id = ?", orgID).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	baseline := make(map[int]map[string]decimal.Decimal)
	for _, r := range rows {
		year := r.ActivityDate.Year()
		if baseline[year] == nil {
			baseline[year] = make(map[string]decimal.Decimal)
		}
		baseline[year][r.ActivityType] = baseline[year][r.ActivityType].Add(r.Quantity)
	}
	return baseline, nil
}

// Project applies compound annual growth to baseline quantities over the
// scenario's year range. The "electricity" label is the one special case:
// its projected quantity is additionally discounted by the renewable share.
// Growth applies to physical quantities, not to CO2e.
func Project(scen *models.ForecastScenario, baseYear int, baseData map[string]decimal.Decimal) []YearProjection {
	one := decimal.NewFromInt(1)
	hundred := decimal.NewFromInt(100)
	growth := one.Add(scen.AnnualGrowthPct.Div(hundred))
	renewableKeep := one.Sub(scen.RenewableSharePct.Div(hundred))

	labels := make([]string, 0, len(baseData))
	for label := range baseData {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	var projections []YearProjection
	for year := scen.StartYear; year <= scen.EndYear; year++ {
		factor := growth.Pow(decimal.NewFromInt(int64(year - scen.StartYear)))

		quantities := make(map[string]float64, len(labels))
		for _, label := range labels {
			q := baseData[label].Mul(factor)
			if strings.EqualFold(label, "electricity") {
				q = q.Mul(renewableKeep)
			}
			quantities[label] = q.InexactFloat64()
		}
		projections = append(projections, YearProjection{Year: year, Quantities: quantities})
	}
	return projections
}

// RunScenario loads a scenario (org-scoped) and projects from the most
// recent year that has historical data.
func RunScenario(db *gorm.DB, orgID, scenarioID uint64) (*ForecastResult, error) {
	var scen models.ForecastScenario
	err := db.First(&scen, "scenario_id = ? AND org_id = ?", scenarioID, orgID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, types.NotFound("scenario not found")
		}
		return nil, err
	}

	baseline, err := HistoricalBaseline(db, orgID)
	if err != nil {
		return nil, err
	}
	if len(baseline) == 0 {
		return nil, types.BadRequest("no historical activity data to forecast")
	}

	baseYear := 0
	for year := range baseline {
		if year > baseYear {
			baseYear = year
		}
	}

	return &ForecastResult{
		ScenarioID:   scen.ScenarioID,
		Name:         scen.Name,
		BaselineYear: baseYear,
		Projections:  Project(&scen, baseYear, baseline[baseYear]),
	}, nil
}
