package database

import (
	"fmt"
	"log"
	"strings"

	"github.com/carbonledger/carbonledger/data"
	"github.com/carbonledger/carbonledger/internal/models"
	"github.com/carbonledger/carbonledger/internal/services"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Seed inserts shared reference data: units, activity types, starter
// emission factors and the action library. Idempotent; rows are only added
// when missing.
func Seed(db *gorm.DB) error {
	if err := seedUnits(db); err != nil {
		return fmt.Errorf("seed units: %w", err)
	}
	if err := seedActivityTypes(db); err != nil {
		return fmt.Errorf("seed activity types: %w", err)
	}
	if err := seedEmissionFactors(db); err != nil {
		return fmt.Errorf("seed emission factors: %w", err)
	}
	if err := seedActionLibrary(db); err != nil {
		return fmt.Errorf("seed action library: %w", err)
	}
	return nil
}

func seedUnits(db *gorm.DB) error {
	units := []models.Unit{
		{Code: "kWh", Description: "Kilowatt-hour"},
		{Code: "MWh", Description: "Megawatt-hour"},
		{Code: "therm", Description: "Therm (natural gas)"},
		{Code: "gal", Description: "US gallon"},
		{Code: "L", Description: "Liter"},
		{Code: "kg", Description: "Kilogram"},
		{Code: "ton-mile", Description: "Ton-mile of freight"},
		{Code: "km", Description: "Kilometer"},
		{Code: "mi", Description: "Mile"},
	}
	for _, u := range units {
		var existing models.Unit
		err := db.First(&existing, "code = ?", u.Code).Error
		if err == gorm.ErrRecordNotFound {
			if err := db.Create(&u).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
	}
	return nil
}

func seedActivityTypes(db *gorm.DB) error {
	types := []struct {
		Code     string
		Label    string
		Scope    int
		UnitCode string
	}{
		{"electricity", "Electricity", 2, "kWh"},
		{"natural_gas", "NaturalGas", 1, "therm"},
		{"diesel", "Diesel", 1, "gal"},
		{"gasoline", "Gasoline", 1, "gal"},
		{"freight_truck", "Freight_Truck", 3, "ton-mile"},
		{"waste", "Waste Disposal", 3, "kg"},
		{"water", "Water Usage", 3, "L"},
	}

	for _, t := range types {
		var existing models.ActivityType
		err := db.First(&existing, "code = ?", t.Code).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}

		var unit models.Unit
		if err := db.First(&unit, "code = ?", t.UnitCode).Error; err != nil {
			return err
		}
		row := models.ActivityType{
			Code:          t.Code,
			Label:         t.Label,
			Scope:         t.Scope,
			DefaultUnitID: &unit.UnitID,
		}
		if err := db.Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}

func seedEmissionFactors(db *gorm.DB) error {
	rows, skipped, err := services.ParseFactorsCSV(strings.NewReader(data.SeedEmissionFactorsCSV))
	if err != nil {
		return err
	}
	if skipped > 0 {
		log.Printf("Seed factors: %d malformed rows skipped", skipped)
	}

	for _, f := range rows {
		var existing models.EmissionFactor
		err := db.First(&existing,
			"source = ? AND category = ? AND unit = ? AND year = ?",
			f.Source, f.Category, f.Unit, f.Year).Error
		if err == gorm.ErrRecordNotFound {
			if err := db.Create(&f).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
	}
	return nil
}

func seedActionLibrary(db *gorm.DB) error {
	actions := []models.ActionLibrary{
		{
			Code:                 "led_retrofit",
			Name:                 "LED Lighting Retrofit",
			Description:          "Replace facility lighting with LED fixtures",
			ExpectedReductionPct: decimal.NewFromInt(10),
			DefaultCapexUsd:      decimal.NewFromInt(25000),
			DefaultLifeYears:     decimal.NewFromInt(10),
		},
		{
			Code:                 "solar_ppa",
			Name:                 "On-site Solar / PPA",
			Description:          "Shift purchased electricity to solar generation",
			ExpectedReductionPct: decimal.NewFromInt(50),
			DefaultCapexUsd:      decimal.NewFromInt(250000),
			DefaultLifeYears:     decimal.NewFromInt(25),
		},
		{
			Code:                 "fleet_hybrid",
			Name:                 "Fleet Hybridization",
			Description:          "Replace fleet vehicles with hybrid models",
			ExpectedReductionPct: decimal.NewFromInt(30),
			DefaultCapexUsd:      decimal.NewFromInt(120000),
			DefaultLifeYears:     decimal.NewFromInt(8),
		},
	}
	for _, a := range actions {
		var existing models.ActionLibrary
		err := db.First(&existing, "code = ?", a.Code).Error
		if err == gorm.ErrRecordNotFound {
			if err := db.Create(&a).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
	}
	return nil
}
