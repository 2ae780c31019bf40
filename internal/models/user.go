package models

// User is an account holder. OrgID stays null until the user creates or
// joins an organization.
type User struct {
	UserID       uint64  `gorm:"primaryKey;autoIncrement" json:"user_id"`
	Email        string  `gorm:"size:255;not null;uniqueIndex" json:"email"`
	PasswordHash string  `gorm:"size:255;not null" json:"-"`
	FullName     string  `gorm:"size:255" json:"full_name"`
	Role         string  `gorm:"size:64;default:member" json:"role"`
	OrgID        *uint64 `gorm:"index" json:"org_id"`

	Organization *Organization `gorm:"foreignKey:OrgID" json:"-"`
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "user"
}
