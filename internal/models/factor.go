package models

import (
	"github.com/shopspring/decimal"
)

// EmissionFactor is shared reference data: kg CO2e emitted per unit of
// activity. Multiple rows may share category+unit across years and sources;
// the resolver picks the most recent year.
type EmissionFactor struct {
	FactorID uint64          `gorm:"primaryKey;autoIncrement" json:"factor_id"`
	Source   string          `gorm:"size:128" json:"source"`   // e.g. DEFRA, EPA eGRID
	Category string          `gorm:"size:128;index" json:"category"` // e.g. Electricity, Diesel
	Unit     string          `gorm:"size:64" json:"unit"`      // e.g. kgCO2e/kWh
	Factor   decimal.Decimal `gorm:"type:decimal(14,6)" json:"factor"`
	Year     int             `json:"year"`
}

// TableName overrides the table name for EmissionFactor
func (EmissionFactor) TableName() string {
	return "emission_factor"
}
