package models

// Unit is shared reference data for measurement units ('kWh', 'therm', ...).
type Unit struct {
	UnitID      uint64 `gorm:"primaryKey;autoIncrement" json:"unit_id"`
	Code        string `gorm:"size:32;not null;uniqueIndex" json:"code"`
	Description string `gorm:"size:255" json:"description"`
}

// TableName overrides the table name for Unit
func (Unit) TableName() string {
	return "unit"
}

// ActivityType is shared reference data mapping an emission category to a
// GHG Protocol scope and a default unit.
type ActivityType struct {
	ActivityTypeID uint64  `gorm:"primaryKey;autoIncrement" json:"activity_type_id"`
	Code           string  `gorm:"size:64;not null;uniqueIndex" json:"code"`
	Label          string  `gorm:"size:128;not null" json:"label"`
	Scope          int     `json:"scope"` // 1, 2 or 3
	DefaultUnitID  *uint64 `json:"default_unit_id"`

	DefaultUnit *Unit `gorm:"foreignKey:DefaultUnitID" json:"-"`
}

// TableName overrides the table name for ActivityType
func (ActivityType) TableName() string {
	return "activity_type"
}
