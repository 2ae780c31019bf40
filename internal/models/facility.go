package models

// Facility is a physical site owned by one organization. Activity logs hang
// off facilities, which is how tenant scoping reaches them.
type Facility struct {
	FacilityID     uint64 `gorm:"primaryKey;autoIncrement" json:"facility_id"`
	OrgID          uint64 `gorm:"not null;index" json:"org_id"`
	Name           string `gorm:"size:255" json:"name"`
	Location       string `gorm:"type:text" json:"location"`
	GridRegionCode string `gorm:"size:64" json:"grid_region_code"`

	Organization *Organization `gorm:"foreignKey:OrgID" json:"-"`
	Activities   []ActivityLog `gorm:"foreignKey:FacilityID" json:"-"`
}

// TableName overrides the table name for Facility
func (Facility) TableName() string {
	return "facility"
}
