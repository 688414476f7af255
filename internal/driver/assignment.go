package driver

import (
	"errors"
	"time"

	"github.com/minefleet/minefleet/internal/apperr"
	"github.com/minefleet/minefleet/internal/models"
	"gorm.io/gorm"
)

// AssignOpts holds parameters for placing a driver at a quarry.
type AssignOpts struct {
	DriverID  uint
	QuarryID  uint
	StartDate time.Time
	EndDate   *time.Time
}

// Assign records a driver-to-quarry placement. The schema deliberately
// does not reject overlapping open assignments for one driver; whether
// to enforce that is a pending product decision.
func Assign(gdb *gorm.DB, opts AssignOpts) (*models.DriverAssignment, error) {
	if opts.DriverID == 0 {
		return nil, apperr.Validationf("driver_id is required")
	}
	if opts.QuarryID == 0 {
		return nil, apperr.Validationf("quarry_id is required")
	}
	if opts.StartDate.IsZero() {
		opts.StartDate = time.Now().UTC()
	}
	if opts.EndDate != nil && opts.EndDate.Before(opts.StartDate) {
		return nil, apperr.Validationf("end_date precedes start_date")
	}

	a := models.DriverAssignment{
		DriverID:  opts.DriverID,
		QuarryID:  opts.QuarryID,
		StartDate: opts.StartDate,
		EndDate:   opts.EndDate,
	}
	err := gdb.Transaction(func(tx *gorm.DB) error {
		if err := mustExist(tx, &models.Driver{}, opts.DriverID, "driver"); err != nil {
			return err
		}
		if err := mustExist(tx, &models.Quarry{}, opts.QuarryID, "quarry"); err != nil {
			return err
		}
		return tx.Create(&a).Error
	})
	if err != nil {
		if apperr.KindOf(err) != 0 {
			return nil, err
		}
		return nil, apperr.Translate(err, "driver: assign")
	}
	return &a, nil
}

// EndAssignment closes an assignment at the given date.
func EndAssignment(gdb *gorm.DB, id uint, end time.Time) error {
	err := gdb.Transaction(func(tx *gorm.DB) error {
		var a models.DriverAssignment
		if err := tx.First(&a, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFoundf("assignment %d not found", id)
			}
			return err
		}
		if end.Before(a.StartDate) {
			return apperr.Validationf("end_date precedes start_date")
		}
		return tx.Model(&a).Update("end_date", end).Error
	})
	if err != nil {
		if apperr.KindOf(err) != 0 {
			return err
		}
		return apperr.Translate(err, "driver: end assignment")
	}
	return nil
}

// ListAssignments returns a driver's assignment history, newest first.
func ListAssignments(gdb *gorm.DB, driverID uint) ([]models.DriverAssignment, error) {
	var assignments []models.DriverAssignment
	if err := gdb.Where("driver_id = ?", driverID).Order("start_date DESC, id DESC").Find(&assignments).Error; err != nil {
		return nil, apperr.Translate(err, "driver: list assignments")
	}
	return assignments, nil
}
