// Package driver provides driver lifecycle operations: roster CRUD,
// quarry assignments, and medical fitness checks.
package driver

import (
	"errors"
	"time"

	"github.com/minefleet/minefleet/internal/apperr"
	"github.com/minefleet/minefleet/internal/models"
	"github.com/minefleet/minefleet/internal/refdata"
	"gorm.io/gorm"
)

// CreateOpts holds parameters for hiring a driver. CompanyID of zero
// means "use the default company", resolved via refdata.
type CreateOpts struct {
	FullName        string
	LicenseNumber   string
	LicenseCategory string
	CompanyID       uint
	DateOfBirth     *time.Time
}

// Patch is a presence-aware partial update; nil fields are left unchanged.
type Patch struct {
	FullName        *string
	LicenseNumber   *string
	LicenseCategory *string
	Status          *string
	CompanyID       *uint
}

// updates compiles the patch into a column map for gorm Updates.
func (p Patch) updates() map[string]interface{} {
	u := make(map[string]interface{})
	if p.FullName != nil {
		u["full_name"] = *p.FullName
	}
	if p.LicenseNumber != nil {
		u["license_number"] = *p.LicenseNumber
	}
	if p.LicenseCategory != nil {
		u["license_category"] = *p.LicenseCategory
	}
	if p.Status != nil {
		u["status"] = *p.Status
	}
	if p.CompanyID != nil {
		u["company_id"] = *p.CompanyID
	}
	return u
}

// Create hires a driver. Full name is required; the company defaults to
// the singleton default company when omitted.
func Create(gdb *gorm.DB, opts CreateOpts) (*models.Driver, error) {
	if opts.FullName == "" {
		return nil, apperr.Validationf("full_name is required")
	}

	companyID := opts.CompanyID
	if companyID == 0 {
		company, err := refdata.DefaultCompany(gdb)
		if err != nil {
			return nil, err
		}
		companyID = company.ID
	}

	d := models.Driver{
		CompanyID:       companyID,
		FullName:        opts.FullName,
		LicenseNumber:   opts.LicenseNumber,
		LicenseCategory: opts.LicenseCategory,
		Status:          "active",
		DateOfBirth:     opts.DateOfBirth,
	}
	err := gdb.Transaction(func(tx *gorm.DB) error {
		if opts.CompanyID != 0 {
			if err := mustExist(tx, &models.Company{}, opts.CompanyID, "company"); err != nil {
				return err
			}
		}
		return tx.Create(&d).Error
	})
	if err != nil {
		if apperr.KindOf(err) != 0 {
			return nil, err
		}
		return nil, apperr.Translate(err, "driver: create")
	}
	return &d, nil
}

// Get retrieves a driver by id.
func Get(gdb *gorm.DB, id uint) (*models.Driver, error) {
	var d models.Driver
	if err := gdb.First(&d, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("driver %d not found", id)
		}
		return nil, apperr.Translate(err, "driver: get")
	}
	return &d, nil
}

// List returns all drivers.
func List(gdb *gorm.DB) ([]models.Driver, error) {
	var drivers []models.Driver
	if err := gdb.Order("id ASC").Find(&drivers).Error; err != nil {
		return nil, apperr.Translate(err, "driver: list")
	}
	return drivers, nil
}

// Update applies a partial update. Only supplied fields change.
func Update(gdb *gorm.DB, id uint, patch Patch) error {
	u := patch.updates()
	err := gdb.Transaction(func(tx *gorm.DB) error {
		if err := mustExist(tx, &models.Driver{}, id, "driver"); err != nil {
			return err
		}
		// An empty patch still 404s on an unknown id, it just writes nothing.
		if len(u) == 0 {
			return nil
		}
		return tx.Model(&models.Driver{}).Where("id = ?", id).Updates(u).Error
	})
	if err != nil {
		if apperr.KindOf(err) != 0 {
			return err
		}
		return apperr.Translate(err, "driver: update")
	}
	return nil
}

// Delete removes a driver. Restricted while assignment, medical, shift,
// or telemetry history exists; those rows are audit data.
func Delete(gdb *gorm.DB, id uint) error {
	err := gdb.Transaction(func(tx *gorm.DB) error {
		if err := mustExist(tx, &models.Driver{}, id, "driver"); err != nil {
			return err
		}

		dependents := []struct {
			model interface{}
			what  string
		}{
			{&models.DriverAssignment{}, "assignments"},
			{&models.MedicalCheck{}, "medical checks"},
			{&models.VehicleShiftAssignment{}, "shift assignments"},
			{&models.TelematicsReading{}, "telemetry readings"},
		}
		for _, dep := range dependents {
			var count int64
			if err := tx.Model(dep.model).Where("driver_id = ?", id).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return apperr.Conflictf("driver %d has %d %s", id, count, dep.what)
			}
		}

		return tx.Delete(&models.Driver{}, id).Error
	})
	if err != nil {
		if apperr.KindOf(err) != 0 {
			return err
		}
		return apperr.Translate(err, "driver: delete")
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
