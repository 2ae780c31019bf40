package handlers

import (
	"strconv"

	"github.com/carbonledger/carbonledger/internal/models"
	"github.com/carbonledger/carbonledger/internal/services"
	"github.com/carbonledger/carbonledger/internal/types"
	"github.com/carbonledger/carbonledger/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ActivityHandler handles activity logging and deletion
type ActivityHandler struct {
	DB *gorm.DB
}

// Create handles POST /api/activities
// @Summary Log an activity and compute its CO2e
// @Tags Activities
// @Accept json
// @Produce json
// @Success 201 {object} models.ActivityLog
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /activities [post]
func (h *ActivityHandler) Create(c *fiber.Ctx) error {
	var input services.ActivityInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequestResponse(c, "invalid payload")
	}

	activity, err := services.CreateActivity(h.DB, currentUser(c), input)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(activity)
}

// Quick handles POST /api/activities/quick/:facility_id. The payload is an
// arbitrary mapping of activity-type code to quantity; one log row is
// created per non-empty value.
// @Summary Quick metrics entry
// @Tags Activities
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /activities/quick/{facility_id} [post]
func (h *ActivityHandler) Quick(c *fiber.Ctx) error {
	facilityID, err := parseIDParam(c, "facility_id")
	if err != nil {
		return serviceError(c, err)
	}

	var values map[string]types.FlexDecimal
	if err := c.BodyParser(&values); err != nil {
		return utils.BadRequestResponse(c, "invalid payload")
	}

	created, err := services.QuickMetrics(h.DB, currentUser(c), facilityID, values)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"facility_id": facilityID,
		"created":     created,
	})
}

// Types handles GET /api/activities/types, the reference list the entry
// forms populate from.
func (h *ActivityHandler) Types(c *fiber.Ctx) error {
	var rows []models.ActivityType
	if err := h.DB.Order("activity_type_id").Find(&rows).Error; err != nil {
		return serviceError(c, err)
	}
	return c.JSON(rows)
}

// List handles GET /api/activities?facility_id=
func (h *ActivityHandler) List(c *fiber.Ctx) error {
	user := currentUser(c)
	if user.OrgID == nil {
		return c.JSON([]struct{}{})
	}

	var facilityID *uint64
	if raw := c.Query("facility_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return utils.BadRequestResponse(c, "invalid facility_id")
		}
		facilityID = &id
	}

	rows, err := services.ListActivities(h.DB, *user.OrgID, facilityID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(rows)
}

// Delete handles DELETE /api/activities/:id
func (h *ActivityHandler) Delete(c *fiber.Ctx) error {
	user := currentUser(c)
	id, err := parseIDParam(c, "id")
	if err != nil {
		return serviceError(c, err)
	}
	if user.OrgID == nil {
		return utils.NotFoundResponse(c, "activity not found")
	}

	if err := services.DeleteActivity(h.DB, *user.OrgID, id); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"deleted": id})
}
