package models

// Organization is the tenant boundary. Every facility, target, scenario,
// action and upload belongs to exactly one organization.
type Organization struct {
	OrgID    uint64 `gorm:"primaryKey;autoIncrement" json:"org_id"`
	Name     string `gorm:"size:255;not null;uniqueIndex" json:"name"`
	Industry string `gorm:"size:128" json:"industry"`
	Address  string `gorm:"type:text" json:"address"`
	Size     string `gorm:"size:64" json:"size"` // e.g. "1-50", "51-200"

	Users      []User     `gorm:"foreignKey:OrgID" json:"-"`
	Facilities []Facility `gorm:"foreignKey:OrgID" json:"-"`
}

// TableName overrides the table name for Organization
func (Organization) TableName() string {
	return "organization"
}
