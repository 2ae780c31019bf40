package handlers

import (
	"strings"

	"github.com/carbonledger/carbonledger/internal/models"
	"github.com/carbonledger/carbonledger/internal/services"
	"github.com/carbonledger/carbonledger/internal/types"
	"github.com/carbonledger/carbonledger/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// FactorHandler handles the shared emission-factor table
type FactorHandler struct {
	DB *gorm.DB
}

type factorPayload struct {
	Source   string            `json:"source"`
	Category string            `json:"category"`
	Unit     string            `json:"unit"`
	Factor   types.FlexDecimal `json:"factor"`
	Year     int               `json:"year"`
}

// List handles GET /api/factors
// @Summary List emission factors
// @Tags Factors
// @Produce json
// @Success 200 {array} models.EmissionFactor
// @Router /factors [get]
func (h *FactorHandler) List(c *fiber.Ctx) error {
	var rows []models.EmissionFactor
	if err := h.DB.Order("category").Order("year DESC").Find(&rows).Error; err != nil {
		return serviceError(c, err)
	}
	return c.JSON(rows)
}

// Create handles POST /api/factors
// @Summary Create an emission factor
// @Tags Factors
// @Accept json
// @Produce json
// @Success 201 {object} models.EmissionFactor
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /factors [post]
func (h *FactorHandler) Create(c *fiber.Ctx) error {
	var payload factorPayload
	if err := c.BodyParser(&payload); err != nil {
		return utils.BadRequestResponse(c, "invalid payload")
	}
	if !payload.Factor.Valid() {
		return utils.BadRequestResponse(c, "factor must be numeric")
	}
	if strings.TrimSpace(payload.Category) == "" || strings.TrimSpace(payload.Unit) == "" {
		return utils.BadRequestResponse(c, "category and unit are required")
	}

	source := strings.TrimSpace(payload.Source)
	if source == "" {
		source = "manual"
	}

	factor := models.EmissionFactor{
		Source:   source,
		Category: strings.TrimSpace(payload.Category),
		Unit:     strings.TrimSpace(payload.Unit),
		Factor:   payload.Factor.Decimal,
		Year:     payload.Year,
	}
	if err := h.DB.Create(&factor).Error; err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(factor)
}

// Import handles POST /api/factors/import (multipart CSV upload). Malformed
// rows are skipped, not fatal; the response counts persisted rows only.
// @Summary Bulk import emission factors from CSV
// @Tags Factors
// @Accept mpfd
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /factors/import [post]
func (h *FactorHandler) Import(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return utils.BadRequestResponse(c, "file is required")
	}
	if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".csv") {
		return utils.BadRequestResponse(c, "must upload CSV")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return serviceError(c, err)
	}
	defer file.Close()

	imported, err := services.ImportFactors(h.DB, file)
	if err != nil {
		return utils.BadRequestResponse(c, "could not parse CSV")
	}
	return c.JSON(fiber.Map{"imported": imported})
}

// Export handles GET /api/factors/export, streaming the table back in the
// import format.
func (h *FactorHandler) Export(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="emission_factors.csv"`)

	var buf strings.Builder
	if err := services.ExportFactorsCSV(h.DB, &buf); err != nil {
		return serviceError(c, err)
	}
	return c.SendString(buf.String())
}
