package handlers

import (
	"github.com/carbonledger/carbonledger/internal/services"
	"github.com/carbonledger/carbonledger/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ForecastHandler handles scenarios and on-demand projections
type ForecastHandler struct {
	DB *gorm.DB
}

// CreateScenario handles POST /api/forecast/scenario
// @Summary Create a forecast scenario
// @Tags Forecast
// @Accept json
// @Produce json
// @Success 201 {object} models.ForecastScenario
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /forecast/scenario [post]
func (h *ForecastHandler) CreateScenario(c *fiber.Ctx) error {
	var input services.ScenarioInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequestResponse(c, "invalid payload")
	}

	scen, err := services.CreateScenario(h.DB, currentUser(c), input)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"scenario_id": scen.ScenarioID})
}

// ListScenarios handles GET /api/forecast/scenarios
func (h *ForecastHandler) ListScenarios(c *fiber.Ctx) error {
	user := currentUser(c)
	if user.OrgID == nil {
		return c.JSON([]struct{}{})
	}

	rows, err := services.ListScenarios(h.DB, *user.OrgID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(rows)
}

// RunScenario handles GET /api/forecast/scenario/:id. Projections are
// computed from the most recent historical year on every call.
// @Summary Run a forecast scenario
// @Tags Forecast
// @Produce json
// @Success 200 {object} services.ForecastResult
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /forecast/scenario/{id} [get]
func (h *ForecastHandler) RunScenario(c *fiber.Ctx) error {
	user := currentUser(c)
	id, err := parseIDParam(c, "id")
	if err != nil {
		return serviceError(c, err)
	}
	if user.OrgID == nil {
		return utils.NotFoundResponse(c, "scenario not found")
	}

	result, err := services.RunScenario(h.DB, *user.OrgID, id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(result)
}
