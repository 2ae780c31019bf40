package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ActivityLog is one logged quantity of activity at a facility. CO2eKg is
// frozen at creation time (quantity x factor); it is never recomputed when
// the factor table changes later.
type ActivityLog struct {
	ActivityID uint64 `gorm:"primaryKey;autoIncrement" json:"activity_id"`

	FacilityID uint64 `gorm:"not null;index" json:"facility_id"`
	FactorID   uint64 `gorm:"not null" json:"factor_id"`

	ActivityType string          `gorm:"size:128" json:"activity_type"` // denormalized label for fast reporting
	Quantity     decimal.Decimal `gorm:"type:decimal(14,6)" json:"quantity"`
	Unit         string          `gorm:"size:64" json:"unit"` // denormalized unit code
	ActivityDate time.Time       `gorm:"type:date;index" json:"activity_date"`

	ActivityTypeID *uint64 `json:"activity_type_id"`
	UnitID         *uint64 `json:"unit_id"`

	Notes  string          `gorm:"size:512" json:"notes"`
	CO2eKg decimal.Decimal `gorm:"column:co2e_kg;type:decimal(18,6)" json:"co2e_kg"`

	Facility       *Facility       `gorm:"foreignKey:FacilityID" json:"-"`
	Factor         *EmissionFactor `gorm:"foreignKey:FactorID" json:"-"`
	ActivityTypeFK *ActivityType   `gorm:"foreignKey:ActivityTypeID" json:"-"`
	UnitFK         *Unit           `gorm:"foreignKey:UnitID" json:"-"`
}

// TableName overrides the table name for ActivityLog
func (ActivityLog) TableName() string {
	return "activity_log"
}
