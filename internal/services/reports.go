package services

import (
	"sort"

	"github.com/carbonledger/carbonledger/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SummaryFilter narrows the report to one facility, one scope, or a period
// granularity ("monthly" or "yearly").
type SummaryFilter struct {
	FacilityID *uint64
	Scope      *int
	Period     string
}

// FacilityTotal is the per-facility CO2e aggregate.
type FacilityTotal struct {
	FacilityID uint64  `json:"facility_id"`
	CO2eKg     float64 `json:"co2e_kg"`
}

// PeriodTotal is the per-period CO2e aggregate, keyed YYYY or YYYY-MM.
type PeriodTotal struct {
	Period string  `json:"period"`
	CO2eKg float64 `json:"co2e_kg"`
}

// TypeQuantity sums raw quantities per activity-type label, independent of
// CO2e. Useful when an old row never resolved a factor.
type TypeQuantity struct {
	ActivityType string  `json:"activity_type"`
	Quantity     float64 `json:"quantity"`
}

// SummaryResult is the full report payload. Values are floats because this
// is the serialization boundary; all accumulation happens in decimal.
type SummaryResult struct {
	FacilityID    *uint64         `json:"facility_id"`
	Scope         *int            `json:"scope"`
	Period        string          `json:"period"`
	ActivityCount int             `json:"activity_count"`
	TotalCO2eKg   float64         `json:"total_co2e_kg"`
	ByFacility    []FacilityTotal `json:"by_facility"`
	ByPeriod      []PeriodTotal   `json:"by_period"`
	RawQuantities []TypeQuantity  `json:"raw_quantities"`
}

// Summary folds the organization's activity logs into total, per-facility,
// per-period and per-type aggregates.
func Summary(db *gorm.DB, orgID uint64, filter SummaryFilter) (*SummaryResult, error) {
	period := filter.Period
	if period != "yearly" {
		period = "monthly"
	}

	q := db.
		Joins("JOIN facility ON facility.facility_id = activity_log.facility_id").
		Where("facility.org_id = ?", orgID)

	if filter.FacilityID != nil {
		q = q.Where("activity_log.facility_id = ?", *filter.FacilityID)
	}
	if filter.Scope != nil {
		q = q.
			Joins("JOIN activity_type ON activity_type.activity_type_id = activity_log.activity_type_id").
			Where("activity_type.scope = ?", *filter.Scope)
	}

	var rows []models.ActivityLog
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}

	total := decimal.Zero
	byFacility := make(map[uint64]decimal.Decimal)
	byPeriod := make(map[string]decimal.Decimal)
	byType := make(map[string]decimal.Decimal)

	for _, r := range rows {
		byType[r.ActivityType] = byType[r.ActivityType].Add(r.Quantity)

		total = total.Add(r.CO2eKg)
		byFacility[r.FacilityID] = byFacility[r.FacilityID].Add(r.CO2eKg)

		key := r.ActivityDate.Format("2006")
		if period == "monthly" {
			key = r.ActivityDate.Format("2006-01")
		}
		byPeriod[key] = byPeriod[key].Add(r.CO2eKg)
	}

	result := &SummaryResult{
		FacilityID:    filter.FacilityID,
		Scope:         filter.Scope,
		Period:        period,
		ActivityCount: len(rows),
		TotalCO2eKg:   total.InexactFloat64(),
		ByFacility:    make([]FacilityTotal, 0, len(byFacility)),
		ByPeriod:      make([]PeriodTotal, 0, len(byPeriod)),
		RawQuantities: make([]TypeQuantity, 0, len(byType)),
	}

	for fid, v := range byFacility {
		result.ByFacility = append(result.ByFacility, FacilityTotal{FacilityID: fid, CO2eKg: v.InexactFloat64()})
	}
	sort.Slice(result.ByFacility, func(i, j int) bool {
		return result.ByFacility[i].FacilityID < result.ByFacility[j].FacilityID
	})

	for k, v := range byPeriod {
		result.ByPeriod = append(result.ByPeriod, PeriodTotal{Period: k, CO2eKg: v.InexactFloat64()})
	}
	sort.Slice(result.ByPeriod, func(i, j int) bool {
		return result.ByPeriod[i].Period < result.ByPeriod[j].Period
	})

	for t, v := range byType {
		result.RawQuantities = append(result.RawQuantities, TypeQuantity{ActivityType: t, Quantity: v.InexactFloat64()})
	}
	sort.Slice(result.RawQuantities, func(i, j int) bool {
		return result.RawQuantities[i].ActivityType < result.RawQuantities[j].ActivityType
	})

	return result, nil
}
