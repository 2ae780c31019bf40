package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ForecastScenario holds growth parameters only; projections are computed on
// demand from historical activity data, never stored.
type ForecastScenario struct {
	ScenarioID uint64 `gorm:"primaryKey;autoIncrement" json:"scenario_id"`
	OrgID      uint64 `gorm:"not null;index" json:"org_id"`

	Name        string `gorm:"size:128;not null" json:"name"`
	Description string `gorm:"size:512" json:"description"`

	AnnualGrowthPct   decimal.Decimal `gorm:"type:decimal(6,3)" json:"annual_growth_pct"`
	RenewableSharePct decimal.Decimal `gorm:"type:decimal(6,3)" json:"renewable_share_pct"`

	StartYear int `gorm:"not null" json:"start_year"`
	EndYear   int `gorm:"not null" json:"end_year"`

	CreatedBy uint64    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides the table name for ForecastScenario
func (ForecastScenario) TableName() string {
	return "forecast_scenario"
}
