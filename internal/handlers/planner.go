package handlers

import (
	"github.com/carbonledger/carbonledger/internal/services"
	"github.com/carbonledger/carbonledger/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// PlannerHandler handles the mitigation action catalog and impact estimates
type PlannerHandler struct {
	DB *gorm.DB
}

// Library handles GET /api/planner/library. The catalog is shared across
// organizations.
// @Summary List the mitigation action catalog
// @Tags Planner
// @Produce json
// @Success 200 {array} models.ActionLibrary
// @Router /planner/library [get]
func (h *PlannerHandler) Library(c *fiber.Ctx) error {
	rows, err := services.ListLibrary(h.DB)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(rows)
}

// CreateLibraryAction handles POST /api/planner/library
func (h *PlannerHandler) CreateLibraryAction(c *fiber.Ctx) error {
	var input services.LibraryActionInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequestResponse(c, "invalid payload")
	}

	action, err := services.CreateLibraryAction(h.DB, input)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"action_id": action.ActionID})
}

// Apply handles POST /api/planner/apply
// @Summary Adopt a catalog action for the organization
// @Tags Planner
// @Accept json
// @Produce json
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /planner/apply [post]
func (h *PlannerHandler) Apply(c *fiber.Ctx) error {
	var input services.ApplyActionInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequestResponse(c, "invalid payload")
	}

	oa, err := services.ApplyAction(h.DB, currentUser(c), input)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"org_action_id": oa.OrgActionID,
		"status":        oa.Status,
	})
}

// Impact handles GET /api/planner/impact
func (h *PlannerHandler) Impact(c *fiber.Ctx) error {
	user := currentUser(c)
	if user.OrgID == nil {
		return utils.BadRequestResponse(c, "user is not attached to an organization")
	}

	result, err := services.Impact(h.DB, *user.OrgID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(result)
}

// Evaluate handles POST /api/planner/evaluate, the three-slider what-if
// estimator against the org's all-time total.
// @Summary Evaluate the what-if reduction sliders
// @Tags Planner
// @Accept json
// @Produce json
// @Success 200 {object} services.SliderResult
// @Router /planner/evaluate [post]
func (h *PlannerHandler) Evaluate(c *fiber.Ctx) error {
	user := currentUser(c)
	if user.OrgID == nil {
		return utils.BadRequestResponse(c, "user is not attached to an organization")
	}

	var input services.SliderInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequestResponse(c, "invalid payload")
	}

	baseline, err := services.OrgTotalCO2e(h.DB, *user.OrgID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(services.EvaluateSliders(baseline, input))
}
