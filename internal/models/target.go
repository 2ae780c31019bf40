package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Target stores a reduction goal. BaselineCO2eKg is a snapshot of the org's
// total for the baseline year, computed once at creation and never refreshed.
type Target struct {
	TargetID         uint64          `gorm:"primaryKey;autoIncrement" json:"target_id"`
	OrgID            uint64          `gorm:"not null;index" json:"org_id"`
	BaselineYear     int             `gorm:"not null" json:"baseline_year"`
	BaselineCO2eKg   decimal.Decimal `gorm:"column:baseline_co2e_kg;type:decimal(18,6)" json:"baseline_co2e_kg"`
	TargetYear       int             `gorm:"not null" json:"target_year"`
	ReductionPercent decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"reduction_percent"`

	CreatedBy uint64    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides the table name for Target
func (Target) TableName() string {
	return "target"
}
