package handlers

import (
	"strconv"

	"github.com/carbonledger/carbonledger/internal/services"
	"github.com/carbonledger/carbonledger/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ReportHandler handles emissions aggregation
type ReportHandler struct {
	DB *gorm.DB
}

// Summary handles GET /api/reports/summary?facility_id&scope&period
// @Summary Aggregate the organization's emissions
// @Tags Reports
// @Produce json
// @Param facility_id query int false "Limit to one facility"
// @Param scope query int false "GHG scope filter (1, 2 or 3)"
// @Param period query string false "monthly or yearly"
// @Success 200 {object} services.SummaryResult
// @Router /reports/summary [get]
func (h *ReportHandler) Summary(c *fiber.Ctx) error {
	user := currentUser(c)
	if user.OrgID == nil {
		return utils.BadRequestResponse(c, "user is not attached to an organization")
	}

	filter := services.SummaryFilter{Period: c.Query("period", "monthly")}

	if raw := c.Query("facility_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return utils.BadRequestResponse(c, "invalid facility_id")
		}
		filter.FacilityID = &id
	}
	if raw := c.Query("scope"); raw != "" {
		scope, err := strconv.Atoi(raw)
		if err != nil || scope < 1 || scope > 3 {
			return utils.BadRequestResponse(c, "invalid scope")
		}
		filter.Scope = &scope
	}

	result, err := services.Summary(h.DB, *user.OrgID, filter)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(result)
}
