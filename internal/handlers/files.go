package handlers

import (
	"github.com/carbonledger/carbonledger/internal/config"
	"github.com/carbonledger/carbonledger/internal/services"
	"github.com/carbonledger/carbonledger/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// FileHandler handles evidence and import file uploads
type FileHandler struct {
	DB  *gorm.DB
	Cfg *config.Config
}

// Upload handles POST /api/files/upload. The file lands under the org's
// directory with a generated name, the original name is kept in the row.
// @Summary Upload a file
// @Tags Files
// @Accept multipart/form-data
// @Produce json
// @Success 201 {object} models.UploadedFile
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /files/upload [post]
func (h *FileHandler) Upload(c *fiber.Ctx) error {
	user := currentUser(c)
	if user.OrgID == nil {
		return utils.BadRequestResponse(c, "user is not attached to an organization")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return utils.BadRequestResponse(c, "file is required")
	}
	purpose := c.FormValue("purpose", "evidence")

	dest, err := services.BuildStoragePath(h.Cfg.UploadDir, *user.OrgID, fileHeader.Filename)
	if err != nil {
		return serviceError(c, err)
	}
	if err := c.SaveFile(fileHeader, dest); err != nil {
		return serviceError(c, err)
	}

	rec, err := services.RecordUpload(h.DB, user, purpose, dest, fileHeader.Filename, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(rec)
}

// List handles GET /api/files
func (h *FileHandler) List(c *fiber.Ctx) error {
	user := currentUser(c)
	if user.OrgID == nil {
		return c.JSON([]struct{}{})
	}

	rows, err := services.ListUploads(h.DB, *user.OrgID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(rows)
}

// Delete handles DELETE /api/files/:id
// @Summary Delete an uploaded file
// @Tags Files
// @Produce json
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /files/{id} [delete]
func (h *FileHandler) Delete(c *fiber.Ctx) error {
	user := currentUser(c)
	id, err := parseIDParam(c, "id")
	if err != nil {
		return serviceError(c, err)
	}
	if user.OrgID == nil {
		return utils.NotFoundResponse(c, "file not found")
	}

	if err := services.DeleteUpload(h.DB, *user.OrgID, id); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}
