package models

import (
	"time"
)

// UploadedFile records a file stored on the local filesystem under the
// organization's upload directory.
type UploadedFile struct {
	FileID       uint64    `gorm:"primaryKey;autoIncrement" json:"file_id"`
	OrgID        uint64    `gorm:"not null;index" json:"org_id"`
	UserID       uint64    `json:"user_id"`
	Purpose      string    `gorm:"size:32;not null" json:"purpose"` // 'energy','fuel','shipping','factors','other'
	StoragePath  string    `gorm:"size:512;not null" json:"storage_path"`
	OriginalName string    `gorm:"size:255;not null" json:"original_name"`
	ContentType  string    `gorm:"size:128" json:"content_type"`
	UploadedAt   time.Time `gorm:"autoCreateTime" json:"uploaded_at"`
}

// TableName overrides the table name for UploadedFile
func (UploadedFile) TableName() string {
	return "uploaded_file"
}
