package models

import (
	"github.com/shopspring/decimal"
)

// ActionLibrary is shared reference data: a catalog of mitigation actions
// with percentage-based impact estimates.
type ActionLibrary struct {
	ActionID    uint64 `gorm:"primaryKey;autoIncrement" json:"action_id"`
	Code        string `gorm:"size:64;not null;uniqueIndex" json:"code"`
	Name        string `gorm:"size:128;not null" json:"name"`
	Description string `gorm:"size:512" json:"description"`

	ExpectedReductionPct decimal.Decimal `gorm:"type:decimal(6,3)" json:"expected_reduction_pct"`
	DefaultCapexUsd      decimal.Decimal `gorm:"type:decimal(18,2)" json:"default_capex_usd"`
	DefaultLifeYears     decimal.Decimal `gorm:"type:decimal(6,2)" json:"default_life_years"`
}

// TableName overrides the table name for ActionLibrary
func (ActionLibrary) TableName() string {
	return "action_library"
}

// OrgAction is an organization's adoption of a library action.
type OrgAction struct {
	OrgActionID uint64  `gorm:"primaryKey;autoIncrement" json:"org_action_id"`
	OrgID       uint64  `gorm:"not null;index" json:"org_id"`
	ActionID    uint64  `gorm:"not null" json:"action_id"`
	FacilityID  *uint64 `json:"facility_id"`

	CustomParams JSON            `gorm:"type:json" json:"custom_params"` // free-form knobs, e.g. {"fleet_pct":25}
	EstReductionKg decimal.Decimal `gorm:"column:est_reduction_kg;type:decimal(18,6)" json:"est_reduction_kg"`
	EstCapexUsd    decimal.Decimal `gorm:"type:decimal(18,2)" json:"est_capex_usd"`
	PlannedYear    int             `json:"planned_year"`
	Status         string          `gorm:"size:24" json:"status"` // planned | in_progress | done

	Action   *ActionLibrary `gorm:"foreignKey:ActionID" json:"-"`
	Facility *Facility      `gorm:"foreignKey:FacilityID" json:"-"`
}

// TableName overrides the table name for OrgAction
func (OrgAction) TableName() string {
	return "org_action"
}
