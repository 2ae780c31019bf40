package services

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/carbonledger/carbonledger/internal/models"
	"github.com/carbonledger/carbonledger/internal/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BuildStoragePath creates the org's upload directory if needed and returns
// a collision-free destination path for an uploaded file. The original name
// is kept only in the database row.
func BuildStoragePath(uploadDir string, orgID uint64, originalName string) (string, error) {
	orgDir := filepath.Join(uploadDir, fmt.Sprintf("org_%d", orgID))
	if err := os.MkdirAll(orgDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload dir: %w", err)
	}
	return filepath.Join(orgDir, uuid.NewString()+filepath.Ext(originalName)), nil
}

// RecordUpload persists the metadata row for a stored file.
func RecordUpload(db *gorm.DB, user *models.User, purpose, storagePath, originalName, contentType string) (*models.UploadedFile, error) {
	rec := models.UploadedFile{
		OrgID:        *user.OrgID,
		UserID:       user.UserID,
		Purpose:      purpose,
		StoragePath:  storagePath,
		OriginalName: originalName,
		ContentType:  contentType,
	}
	if err := db.Create(&rec).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListUploads returns the organization's uploads, newest first.
func ListUploads(db *gorm.DB, orgID uint64) ([]models.UploadedFile, error) {
	var rows []models.UploadedFile
	err := db.Where("org_id = ?", orgID).Order("uploaded_at DESC").Order("file_id DESC").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// DeleteUpload removes the row and best-effort unlinks the file on disk.
func DeleteUpload(db *gorm.DB, orgID, fileID uint64) error {
	var rec models.UploadedFile
	err := db.First(&rec, "file_id = ? AND org_id = ?", fileID, orgID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return types.NotFound("file not found")
		}
		return err
	}

	if rec.StoragePath != "" {
		// Orphaned files are tolerated; the row is the source of truth.
		_ = os.Remove(rec.StoragePath)
	}

	return db.Delete(&rec).Error
}
