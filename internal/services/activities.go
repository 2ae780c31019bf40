package services

import (
	"strings"
	"time"

	"github.com/carbonledger/carbonledger/internal/models"
	"github.com/carbonledger/carbonledger/internal/types"
	"gorm.io/gorm"
)

// ActivityInput is the payload for creating one activity log entry.
type ActivityInput struct {
	FacilityID     uint64            `json:"facility_id"`
	ActivityTypeID *uint64           `json:"activity_type_id"`
	ActivityType   string            `json:"activity_type"` // free-text label fallback
	UnitID         *uint64           `json:"unit_id"`
	FactorID       *uint64           `json:"factor_id"`
	Quantity       types.FlexDecimal `json:"quantity"`
	ActivityDate   string            `json:"activity_date"` // YYYY-MM-DD, defaults to today
	Notes          string            `json:"notes"`
}

// QuickEntry is one row created by the quick-metrics endpoint.
type QuickEntry struct {
	ActivityID uint64 `json:"activity_id"`
	Type       string `json:"type"`
	Quantity   string `json:"quantity"`
	Unit       string `json:"unit"`
	CO2eKg     string `json:"co2e_kg"`
}

// parseActivityDate accepts an ISO date string, defaulting to today.
func parseActivityDate(val string) (time.Time, error) {
	if strings.TrimSpace(val) == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse("2006-01-02", strings.TrimSpace(val))
	if err != nil {
		return time.Time{}, types.BadRequest("invalid date format (YYYY-MM-DD expected)")
	}
	return t, nil
}

// tenantFacility loads a facility only if it belongs to the organization.
func tenantFacility(db *gorm.DB, orgID, facilityID uint64) (*models.Facility, error) {
	var fac models.Facility
	err := db.First(&fac, "facility_id = ? AND org_id = ?", facilityID, orgID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, types.NotFound("facility not found")
		}
		return nil, err
	}
	return &fac, nil
}

// resolveActivityType finds a type by id, or by case-insensitive label.
func resolveActivityType(db *gorm.DB, typeID *uint64, label string) (*models.ActivityType, error) {
	var row models.ActivityType
	var err error
	if typeID != nil {
		err = db.First(&row, "activity_type_id = ?", *typeID).Error
	} else {
		err = db.First(&row, "LOWER(label) = ?", strings.ToLower(strings.TrimSpace(label))).Error
	}
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, types.BadRequest("unknown activity type")
		}
		return nil, err
	}
	return &row, nil
}

// resolveUnit finds a unit by id, falling back to the type's default unit.
func resolveUnit(db *gorm.DB, unitID *uint64, typeRow *models.ActivityType) (*models.Unit, error) {
	id := unitID
	if id == nil {
		id = typeRow.DefaultUnitID
	}
	if id == nil {
		return nil, types.BadRequest("no valid unit available")
	}
	var unit models.Unit
	if err := db.First(&unit, "unit_id = ?", *id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, types.BadRequest("invalid unit_id")
		}
		return nil, err
	}
	return &unit, nil
}

// resolveFactorForActivity applies the factor selection rule: an explicit id
// wins; otherwise auto-select by category label and unit code. No resolvable
// factor is a hard failure, so reports never carry null co2e.
func resolveFactorForActivity(db *gorm.DB, factorID *uint64, label, unitCode string) (*models.EmissionFactor, error) {
	if factorID != nil {
		f, err := ResolveFactorByID(db, *factorID)
		if err != nil {
			return nil, err
		}
		if f == nil {
			return nil, types.BadRequest("invalid factor_id")
		}
		return f, nil
	}
	f, err := ResolveFactor(db, label, unitCode)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, types.BadRequest("no emission factor found for %q (%s)", label, unitCode)
	}
	return f, nil
}

// CreateActivity validates the payload, resolves references and the emission
// factor, computes co2e_kg and persists the row.
func CreateActivity(db *gorm.DB, user *models.User, in ActivityInput) (*models.ActivityLog, error) {
	if user.OrgID == nil {
		return nil, types.BadRequest("user is not attached to an organization")
	}
	if in.FacilityID == 0 {
		return nil, types.BadRequest("facility_id is required")
	}
	if _, err := tenantFacility(db, *user.OrgID, in.FacilityID); err != nil {
		return nil, err
	}
	if !in.Quantity.Valid() {
		return nil, types.BadRequest("quantity must be numeric")
	}

	actDate, err := parseActivityDate(in.ActivityDate)
	if err != nil {
		return nil, err
	}

	typeRow, err := resolveActivityType(db, in.ActivityTypeID, in.ActivityType)
	if err != nil {
		return nil, err
	}
	unitRow, err := resolveUnit(db, in.UnitID, typeRow)
	if err != nil {
		return nil, err
	}
	factorRow, err := resolveFactorForActivity(db, in.FactorID, typeRow.Label, unitRow.Code)
	if err != nil {
		return nil, err
	}

	activity := models.ActivityLog{
		FacilityID:     in.FacilityID,
		FactorID:       factorRow.FactorID,
		ActivityType:   typeRow.Label,
		Quantity:       in.Quantity.Decimal,
		Unit:           unitRow.Code,
		ActivityDate:   actDate,
		ActivityTypeID: &typeRow.ActivityTypeID,
		UnitID:         &unitRow.UnitID,
		Notes:          in.Notes,
		CO2eKg:         ComputeCO2e(in.Quantity.Decimal, factorRow),
	}

	if err := db.Create(&activity).Error; err != nil {
		return nil, err
	}
	return &activity, nil
}

// QuickMetrics creates one activity per non-empty activity-type code in the
// payload, dated today. Zero and empty values are skipped; submitting no
// usable value at all is a validation error.
func QuickMetrics(db *gorm.DB, user *models.User, facilityID uint64, values map[string]types.FlexDecimal) ([]QuickEntry, error) {
	if user.OrgID == nil {
		return nil, types.BadRequest("user is not attached to an organization")
	}
	if _, err := tenantFacility(db, *user.OrgID, facilityID); err != nil {
		return nil, err
	}

	var created []QuickEntry
	err := db.Transaction(func(tx *gorm.DB) error {
		for code, val := range values {
			if !val.Valid() || val.Decimal.IsZero() {
				continue
			}

			var typeRow models.ActivityType
			if err := tx.First(&typeRow, "code = ?", code).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return types.BadRequest("unknown quick metric type %q", code)
				}
				return err
			}
			unitRow, err := resolveUnit(tx, nil, &typeRow)
			if err != nil {
				if _, ok := err.(*types.APIError); ok {
					return types.BadRequest("no default unit defined for quick metric %q", code)
				}
				return err
			}
			factorRow, err := resolveFactorForActivity(tx, nil, typeRow.Label, unitRow.Code)
			if err != nil {
				return err
			}

			today, _ := parseActivityDate("")
			co2e := ComputeCO2e(val.Decimal, factorRow)
			act := models.ActivityLog{
				FacilityID:     facilityID,
				FactorID:       factorRow.FactorID,
				ActivityType:   typeRow.Label,
				Quantity:       val.Decimal,
				Unit:           unitRow.Code,
				ActivityDate:   today,
				ActivityTypeID: &typeRow.ActivityTypeID,
				UnitID:         &unitRow.UnitID,
				CO2eKg:         co2e,
			}
			if err := tx.Create(&act).Error; err != nil {
				return err
			}

			created = append(created, QuickEntry{
				ActivityID: act.ActivityID,
				Type:       typeRow.Label,
				Quantity:   val.Decimal.String(),
				Unit:       unitRow.Code,
				CO2eKg:     co2e.String(),
			})
		}

		if len(created) == 0 {
			return types.BadRequest("no valid quick metrics submitted")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// ListActivities returns the organization's activity logs, newest first,
// optionally limited to one facility.
func ListActivities(db *gorm.DB, orgID uint64, facilityID *uint64) ([]models.ActivityLog, error) {
	q := db.
		Joins("JOIN facility ON facility.facility_id = activity_log.facility_id").
		Where("facility.org_id = ?", orgID).
		Order("activity_log.activity_date DESC").
		Order("activity_log.activity_id DESC")
	if facilityID != nil {
		q = q.Where("activity_log.facility_id = ?", *facilityID)
	}

	var rows []models.ActivityLog
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// DeleteActivity removes one activity, scoped through its facility's org.
func DeleteActivity(db *gorm.DB, orgID, activityID uint64) error {
	var act models.ActivityLog
	err := db.
		Joins("JOIN facility ON facility.facility_id = activity_log.facility_id").
		Where("activity_log.activity_id = ? AND facility.org_id = ?", activityID, orgID).
		First(&act).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return types.NotFound("activity not found")
		}
		return err
	}
	return db.Delete(&act).Error
}
