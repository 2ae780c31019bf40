package data

import (
	_ "embed"
)

// Starter emission factors, same column layout as the /api/factors/import CSV.
// Conservative placeholder values; official EPA eGRID / DEFRA tables are
// expected to be imported over these.
//
//go:embed seed/emission_factors.csv
var SeedEmissionFactorsCSV string
