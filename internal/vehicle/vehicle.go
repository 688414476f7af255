// Package vehicle provides vehicle lifecycle operations.
package vehicle

import (
	"errors"

	"github.com/minefleet/minefleet/internal/apperr"
	"github.com/minefleet/minefleet/internal/models"
	"github.com/minefleet/minefleet/internal/refdata"
	"gorm.io/gorm"
)

// CreateOpts holds parameters for registering a vehicle. CompanyID and
// VehicleTypeID of zero mean "use the default", resolved via refdata.
type CreateOpts struct {
	PlateNumber     string
	VIN             string
	CompanyID       uint
	VehicleTypeID   uint
	CurrentQuarryID *uint
}

// Patch is a presence-aware partial update. Nil fields are left
// unchanged. ClearCurrentQuarry sets current_quarry_id to NULL and wins
// over CurrentQuarryID.
type Patch struct {
	PlateNumber        *string
	VIN                *string
	Status             *string
	CompanyID          *uint
	VehicleTypeID      *uint
	CurrentQuarryID    *uint
	ClearCurrentQuarry bool
}

// updates compiles the patch into a column map for gorm Updates.
func (p Patch) updates() map[string]interface{} {
	u := make(map[string]interface{})
	if p.PlateNumber != nil {
		u["plate_number"] = *p.PlateNumber
	}
	if p.VIN != nil {
		// An empty VIN stores as NULL, same as Create, so cleared VINs
		// never collide under the unique index.
		if *p.VIN == "" {
			u["vin"] = nil
		} else {
			u["vin"] = *p.VIN
		}
	}
	if p.Status != nil {
		u["status"] = *p.Status
	}
	if p.CompanyID != nil {
		u["company_id"] = *p.CompanyID
	}
	if p.VehicleTypeID != nil {
		u["vehicle_type_id"] = *p.VehicleTypeID
	}
	if p.ClearCurrentQuarry {
		u["current_quarry_id"] = nil
	} else if p.CurrentQuarryID != nil {
		u["current_quarry_id"] = *p.CurrentQuarryID
	}
	return u
}

// Create registers a vehicle. Plate number is required and globally
// unique; a duplicate plate or VIN surfaces as a conflict.
func Create(gdb *gorm.DB, opts CreateOpts) (*models.Vehicle, error) {
	if opts.PlateNumber == "" {
		return nil, apperr.Validationf("plate_number is required")
	}

	companyID := opts.CompanyID
	if companyID == 0 {
		company, err := refdata.DefaultCompany(gdb)
		if err != nil {
			return nil, err
		}
		companyID = company.ID
	}
	typeID := opts.VehicleTypeID
	if typeID == 0 {
		vt, err := refdata.DefaultVehicleType(gdb)
		if err != nil {
			return nil, err
		}
		typeID = vt.ID
	}

	v := models.Vehicle{
		CompanyID:       companyID,
		VehicleTypeID:   typeID,
		CurrentQuarryID: opts.CurrentQuarryID,
		PlateNumber:     opts.PlateNumber,
		Status:          "active",
	}
	if opts.VIN != "" {
		v.VIN = &opts.VIN
	}

	err := gdb.Transaction(func(tx *gorm.DB) error {
		if opts.CompanyID != 0 {
			if err := mustExist(tx, &models.Company{}, opts.CompanyID, "company"); err != nil {
				return err
			}
		}
		if opts.VehicleTypeID != 0 {
			if err := mustExist(tx, &models.VehicleType{}, opts.VehicleTypeID, "vehicle type"); err != nil {
				return err
			}
		}
		if opts.CurrentQuarryID != nil {
			if err := mustExist(tx, &models.Quarry{}, *opts.CurrentQuarryID, "quarry"); err != nil {
				return err
			}
		}
		return tx.Create(&v).Error
	})
	if err != nil {
		if apperr.KindOf(err) != 0 {
			return nil, err
		}
		return nil, apperr.Translate(err, "vehicle: create")
	}
	return &v, nil
}

// Get retrieves a vehicle by id.
func Get(gdb *gorm.DB, id uint) (*models.Vehicle, error) {
	var v models.Vehicle
	if err := gdb.First(&v, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("vehicle %d not found", id)
		}
		return nil, apperr.Translate(err, "vehicle: get")
	}
	return &v, nil
}

// List returns all vehicles. The fleet roster is config-scale; a full
// scan is fine here, unlike the telemetry table.
func List(gdb *gorm.DB) ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	if err := gdb.Order("id ASC").Find(&vehicles).Error; err != nil {
		return nil, apperr.Translate(err, "vehicle: list")
	}
	return vehicles, nil
}

// Update applies a partial update. Only supplied fields change; the id
// is immutable. Foreign keys are not re-validated here; the store FK
// constraints still reject dangling refs.
func Update(gdb *gorm.DB, id uint, patch Patch) error {
	u := patch.updates()
	err := gdb.Transaction(func(tx *gorm.DB) error {
		if err := mustExist(tx, &models.Vehicle{}, id, "vehicle"); err != nil {
			return err
		}
		// An empty patch still 404s on an unknown id, it just writes nothing.
		if len(u) == 0 {
			return nil
		}
		return tx.Model(&models.Vehicle{}).Where("id = ?", id).Updates(u).Error
	})
	if err != nil {
		if apperr.KindOf(err) != 0 {
			return err
		}
		return apperr.Translate(err, "vehicle: update")
	}
	return nil
}

// Delete removes a vehicle. Deletion is restricted: a vehicle with
// telemetry or shift assignments cannot be removed, because those rows
// are audit history.
func Delete(gdb *gorm.DB, id uint) error {
	err := gdb.Transaction(func(tx *gorm.DB) error {
		if err := mustExist(tx, &models.Vehicle{}, id, "vehicle"); err != nil {
			return err
		}

		var readings int64
		if err := tx.Model(&models.TelematicsReading{}).Where("vehicle_id = ?", id).Count(&readings).Error; err != nil {
			return err
		}
		if readings > 0 {
			return apperr.Conflictf("vehicle %d has %d telemetry readings", id, readings)
		}

		var assignments int64
		if err := tx.Model(&models.VehicleShiftAssignment{}).Where("vehicle_id = ?", id).Count(&assignments).Error; err != nil {
			return err
		}
		if assignments > 0 {
			return apperr.Conflictf("vehicle %d has %d shift assignments", id, assignments)
		}

		return tx.Delete(&models.Vehicle{}, id).Error
	})
	if err != nil {
		if apperr.KindOf(err) != 0 {
			return err
		}
		return apperr.Translate(err, "vehicle: delete")
	}
	return nil
}

// mustExist fails with NotFound when no row of the model has this id.
func mustExist(tx *gorm.DB, model interface{}, id uint, what string) error {
	var count int64
	if err := tx.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return apperr.NotFoundf("%s %d not found", what, id)
	}
	return nil
}
