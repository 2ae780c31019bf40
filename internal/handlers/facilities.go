package handlers

import (
	"strings"

	"github.com/carbonledger/carbonledger/internal/models"
	"github.com/carbonledger/carbonledger/internal/types"
	"github.com/carbonledger/carbonledger/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// FacilityHandler handles org-scoped facility CRUD
type FacilityHandler struct {
	DB *gorm.DB
}

type facilityPayload struct {
	Name           string `json:"name"`
	Location       string `json:"location"`
	GridRegionCode string `json:"grid_region_code"`
}

// List handles GET /api/facilities
// @Summary List the organization's facilities
// @Tags Facilities
// @Produce json
// @Success 200 {array} models.Facility
// @Router /facilities [get]
func (h *FacilityHandler) List(c *fiber.Ctx) error {
	user := currentUser(c)
	if user.OrgID == nil {
		return c.JSON([]models.Facility{})
	}

	var rows []models.Facility
	if err := h.DB.Where("org_id = ?", *user.OrgID).Order("facility_id").Find(&rows).Error; err != nil {
		return serviceError(c, err)
	}
	return c.JSON(rows)
}

// Create handles POST /api/facilities
// @Summary Create a facility
// @Tags Facilities
// @Accept json
// @Produce json
// @Success 201 {object} models.Facility
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /facilities [post]
func (h *FacilityHandler) Create(c *fiber.Ctx) error {
	user := currentUser(c)
	if user.OrgID == nil {
		return utils.BadRequestResponse(c, "user is not attached to an organization")
	}

	var payload facilityPayload
	if err := c.BodyParser(&payload); err != nil {
		return utils.BadRequestResponse(c, "invalid payload")
	}
	if strings.TrimSpace(payload.Name) == "" {
		return utils.BadRequestResponse(c, "name is required")
	}

	facility := models.Facility{
		OrgID:          *user.OrgID,
		Name:           strings.TrimSpace(payload.Name),
		Location:       payload.Location,
		GridRegionCode: payload.GridRegionCode,
	}
	if err := h.DB.Create(&facility).Error; err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(facility)
}

// Get handles GET /api/facilities/:id
func (h *FacilityHandler) Get(c *fiber.Ctx) error {
	facility, err := h.load(c)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(facility)
}

// Update handles PUT /api/facilities/:id. Only supplied non-empty fields
// overwrite existing values.
func (h *FacilityHandler) Update(c *fiber.Ctx) error {
	facility, err := h.load(c)
	if err != nil {
		return serviceError(c, err)
	}

	var payload facilityPayload
	if err := c.BodyParser(&payload); err != nil {
		return utils.BadRequestResponse(c, "invalid payload")
	}
	if strings.TrimSpace(payload.Name) != "" {
		facility.Name = strings.TrimSpace(payload.Name)
	}
	if payload.Location != "" {
		facility.Location = payload.Location
	}
	if payload.GridRegionCode != "" {
		facility.GridRegionCode = payload.GridRegionCode
	}

	if err := h.DB.Save(facility).Error; err != nil {
		return serviceError(c, err)
	}
	return c.JSON(facility)
}

// Delete handles DELETE /api/facilities/:id. Activity logs for the facility
// go with it, in one transaction.
func (h *FacilityHandler) Delete(c *fiber.Ctx) error {
	facility, err := h.load(c)
	if err != nil {
		return serviceError(c, err)
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("facility_id = ?", facility.FacilityID).Delete(&models.ActivityLog{}).Error; err != nil {
			return err
		}
		return tx.Delete(facility).Error
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"deleted": facility.FacilityID})
}

// load fetches the facility from the :id param, scoped to the caller's org.
func (h *FacilityHandler) load(c *fiber.Ctx) (*models.Facility, error) {
	user := currentUser(c)
	id, err := parseIDParam(c, "id")
	if err != nil {
		return nil, err
	}
	if user.OrgID == nil {
		return nil, types.NotFound("facility not found")
	}

	var facility models.Facility
	dbErr := h.DB.First(&facility, "facility_id = ? AND org_id = ?", id, *user.OrgID).Error
	if dbErr != nil {
		if dbErr == gorm.ErrRecordNotFound {
			return nil, types.NotFound("facility not found")
		}
		return nil, dbErr
	}
	return &facility, nil
}
