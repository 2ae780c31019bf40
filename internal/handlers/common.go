package handlers

import (
	"strconv"

	"github.com/carbonledger/carbonledger/internal/models"
	"github.com/carbonledger/carbonledger/internal/types"
	"github.com/carbonledger/carbonledger/internal/utils"
	"github.com/gofiber/fiber/v2"
)

// currentUser returns the user resolved by the auth middleware.
func currentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals("user").(*models.User)
	return user
}

// parseIDParam extracts a positive integer path parameter.
func parseIDParam(c *fiber.Ctx, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, types.BadRequest("invalid %s", name)
	}
	return id, nil
}

// serviceError maps service-layer errors onto the standard JSON error body.
// Unknown errors surface as 500.
func serviceError(c *fiber.Ctx, err error) error {
	if apiErr, ok := err.(*types.APIError); ok {
		return utils.ErrorResponse(c, apiErr.Message, apiErr.Code)
	}
	return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError)
}
