package handlers

import (
	"github.com/carbonledger/carbonledger/internal/services"
	"github.com/carbonledger/carbonledger/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// TargetHandler handles reduction targets
type TargetHandler struct {
	DB *gorm.DB
}

// Create handles POST /api/targets. The baseline total is snapshotted onto
// the target at creation time.
// @Summary Create a reduction target
// @Tags Targets
// @Accept json
// @Produce json
// @Success 201 {object} models.Target
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /targets [post]
func (h *TargetHandler) Create(c *fiber.Ctx) error {
	var input services.TargetInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequestResponse(c, "invalid payload")
	}

	target, err := services.CreateTarget(h.DB, currentUser(c), input)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(target)
}

// List handles GET /api/targets
func (h *TargetHandler) List(c *fiber.Ctx) error {
	user := currentUser(c)
	if user.OrgID == nil {
		return c.JSON([]struct{}{})
	}

	rows, err := services.ListTargets(h.DB, *user.OrgID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(rows)
}

// Progress handles GET /api/targets/progress/:id
// @Summary Progress toward a target
// @Tags Targets
// @Produce json
// @Success 200 {object} services.ProgressResult
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /targets/progress/{id} [get]
func (h *TargetHandler) Progress(c *fiber.Ctx) error {
	user := currentUser(c)
	id, err := parseIDParam(c, "id")
	if err != nil {
		return serviceError(c, err)
	}
	if user.OrgID == nil {
		return utils.NotFoundResponse(c, "target not found")
	}

	result, err := services.TargetProgress(h.DB, *user.OrgID, id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(result)
}
