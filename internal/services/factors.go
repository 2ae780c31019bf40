package services

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/carbonledger/carbonledger/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ComputeCO2e derives the cached emission value for an activity:
// co2e_kg = quantity x factor. All arithmetic stays in decimal; conversion
// to float happens only at the JSON boundary.
func ComputeCO2e(quantity decimal.Decimal, factor *models.EmissionFactor) decimal.Decimal {
	return quantity.Mul(factor.Factor)
}

// unitMatches reports whether a factor's unit string serves a unit code.
// Factor units are stored as rates ("kgCO2e/kWh"); the activity carries the
// bare denominator code ("kWh"). Equality is checked against the whole
// string and against the part after the last '/', case-insensitively.
func unitMatches(factorUnit, unitCode string) bool {
	if strings.EqualFold(factorUnit, unitCode) {
		return true
	}
	if i := strings.LastIndex(factorUnit, "/"); i >= 0 {
		return strings.EqualFold(factorUnit[i+1:], unitCode)
	}
	return false
}

// ResolveFactor selects the emission factor for a category label and unit
// code: exact case-insensitive category match, unit match per unitMatches,
// ties broken by newest year then highest factor_id. Returns nil when no
// factor matches.
func ResolveFactor(db *gorm.DB, category, unitCode string) (*models.EmissionFactor, error) {
	var candidates []models.EmissionFactor
	err := db.
		Where("LOWER(category) = ?", strings.ToLower(strings.TrimSpace(category))).
		Order("year DESC").
		Order("factor_id DESC").
		Find(&candidates).Error
	if err != nil {
		return nil, err
	}

	for i := range candidates {
		if unitMatches(candidates[i].Unit, unitCode) {
			return &candidates[i], nil
		}
	}
	return nil, nil
}

// ResolveFactorByID fetches an explicitly chosen factor.
func ResolveFactorByID(db *gorm.DB, factorID uint64) (*models.EmissionFactor, error) {
	var f models.EmissionFactor
	if err := db.First(&f, "factor_id = ?", factorID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &f, nil
}

// ParseFactorsCSV reads rows in the import format
// (source,category,unit,factor,year). Rows with a non-numeric factor or a
// missing category/unit are skipped, not treated as a hard failure.
func ParseFactorsCSV(r io.Reader) (rows []models.EmissionFactor, skipped int, err error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, 0, err
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}

	field := func(record []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			skipped++
			continue
		}

		category := field(record, "category")
		unit := field(record, "unit")
		factorVal, ferr := decimal.NewFromString(field(record, "factor"))
		if category == "" || unit == "" || ferr != nil {
			skipped++
			continue
		}

		source := field(record, "source")
		if source == "" {
			source = "CSV"
		}
		year, _ := strconv.Atoi(field(record, "year"))

		rows = append(rows, models.EmissionFactor{
			Source:   source,
			Category: category,
			Unit:     unit,
			Factor:   factorVal,
			Year:     year,
		})
	}

	return rows, skipped, nil
}

// ImportFactors parses a CSV stream and persists the well-formed rows.
// Returns the number of rows imported.
func ImportFactors(db *gorm.DB, r io.Reader) (int, error) {
	rows, _, err := ParseFactorsCSV(r)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	if err := db.Create(&rows).Error; err != nil {
		return 0, err
	}
	return len(rows), nil
}

// ExportFactorsCSV streams the factor table in the import format.
func ExportFactorsCSV(db *gorm.DB, w io.Writer) error {
	var factors []models.EmissionFactor
	if err := db.Order("category").Order("year DESC").Find(&factors).Error; err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"source", "category", "unit", "factor", "year"}); err != nil {
		return err
	}
	for _, f := range factors {
		record := []string{
			f.Source,
			f.Category,
			f.Unit,
			f.Factor.String(),
			strconv.Itoa(f.Year),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
