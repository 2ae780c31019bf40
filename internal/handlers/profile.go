package handlers

import (
	"github.com/carbonledger/carbonledger/internal/models"
	"github.com/carbonledger/carbonledger/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ProfileHandler handles the account and organization profile
type ProfileHandler struct {
	DB *gorm.DB
}

// ProfileUpdate is the payload for PUT /api/profile/me. All fields are
// optional, empty strings leave the stored value unchanged.
type ProfileUpdate struct {
	FullName    string `json:"full_name"`
	OrgName     string `json:"org_name"`
	OrgIndustry string `json:"org_industry"`
	OrgAddress  string `json:"org_address"`
	OrgSize     string `json:"org_size"`
}

func profilePayload(user *models.User, org *models.Organization) fiber.Map {
	out := fiber.Map{
		"user": fiber.Map{
			"user_id":   user.UserID,
			"email":     user.Email,
			"full_name": user.FullName,
			"role":      user.Role,
		},
		"organization": nil,
	}
	if org != nil {
		out["organization"] = fiber.Map{
			"org_id":   org.OrgID,
			"name":     org.Name,
			"industry": org.Industry,
			"address":  org.Address,
			"size":     org.Size,
		}
	}
	return out
}

// Me handles GET /api/profile/me
// @Summary Get the current user's profile
// @Tags Profile
// @Produce json
// @Router /profile/me [get]
func (h *ProfileHandler) Me(c *fiber.Ctx) error {
	user := currentUser(c)

	var org *models.Organization
	if user.OrgID != nil {
		var row models.Organization
		if err := h.DB.First(&row, "org_id = ?", *user.OrgID).Error; err == nil {
			org = &row
		}
	}
	return c.JSON(profilePayload(user, org))
}

// Update handles PUT /api/profile/me. Updating org fields when the user has
// no organization creates one and attaches the user as admin.
// @Summary Update the current user's profile
// @Tags Profile
// @Accept json
// @Produce json
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /profile/me [put]
func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	user := currentUser(c)

	var input ProfileUpdate
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequestResponse(c, "invalid payload")
	}

	var org *models.Organization
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if input.FullName != "" {
			user.FullName = input.FullName
			if err := tx.Model(&models.User{}).
				Where("user_id = ?", user.UserID).
				Update("full_name", input.FullName).Error; err != nil {
				return err
			}
		}

		wantsOrg := input.OrgName != "" || input.OrgIndustry != "" || input.OrgAddress != "" || input.OrgSize != ""
		if !wantsOrg && user.OrgID == nil {
			return nil
		}

		var row models.Organization
		if user.OrgID != nil {
			if err := tx.First(&row, "org_id = ?", *user.OrgID).Error; err != nil {
				return err
			}
		} else {
			row = models.Organization{Name: input.OrgName}
			if row.Name == "" {
				return nil
			}
		}

		if input.OrgName != "" {
			row.Name = input.OrgName
		}
		if input.OrgIndustry != "" {
			row.Industry = input.OrgIndustry
		}
		if input.OrgAddress != "" {
			row.Address = input.OrgAddress
		}
		if input.OrgSize != "" {
			row.Size = input.OrgSize
		}

		if err := tx.Save(&row).Error; err != nil {
			return err
		}
		if user.OrgID == nil {
			user.OrgID = &row.OrgID
			user.Role = "admin"
			if err := tx.Model(&models.User{}).
				Where("user_id = ?", user.UserID).
				Updates(map[string]any{"org_id": row.OrgID, "role": "admin"}).Error; err != nil {
				return err
			}
		}
		org = &row
		return nil
	})
	if err != nil {
		return serviceError(c, err)
	}

	if org == nil && user.OrgID != nil {
		var row models.Organization
		if err := h.DB.First(&row, "org_id = ?", *user.OrgID).Error; err == nil {
			org = &row
		}
	}
	return c.JSON(profilePayload(user, org))
}
