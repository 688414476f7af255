package driver

import (
	"time"

	"github.com/minefleet/minefleet/internal/apperr"
	"github.com/minefleet/minefleet/internal/models"
	"gorm.io/gorm"
)

// Medical check results.
const (
	ResultFit   = "fit"
	ResultUnfit = "unfit"
)

// MedicalCheckOpts holds parameters for recording a fitness check.
type MedicalCheckOpts struct {
	DriverID      uint
	ShiftID       uint
	CheckTime     time.Time
	Result        string
	HeartRate     int
	BloodPressure string
	Notes         string
}

// RecordMedicalCheck stores a fitness check against a driver and shift.
func RecordMedicalCheck(gdb *gorm.DB, opts MedicalCheckOpts) (*models.MedicalCheck, error) {
	if opts.DriverID == 0 {
		return nil, apperr.Validationf("driver_id is required")
	}
	if opts.ShiftID == 0 {
		return nil, apperr.Validationf("shift_id is required")
	}
	if opts.Result != ResultFit && opts.Result != ResultUnfit {
		return nil, apperr.Validationf("result must be %q or %q", ResultFit, ResultUnfit)
	}
	if opts.CheckTime.IsZero() {
		opts.CheckTime = time.Now().UTC()
	}

	mc := models.MedicalCheck{
		DriverID:      opts.DriverID,
		ShiftID:       opts.ShiftID,
		CheckTime:     opts.CheckTime,
		Result:        opts.Result,
		HeartRate:     opts.HeartRate,
		BloodPressure: opts.BloodPressure,
		Notes:         opts.Notes,
	}
	err := gdb.Transaction(func(tx *gorm.DB) error {
		if err := mustExist(tx, &models.Driver{}, opts.DriverID, "driver"); err != nil {
			return err
		}
		if err := mustExist(tx, &models.Shift{}, opts.ShiftID, "shift"); err != nil {
			return err
		}
		return tx.Create(&mc).Error
	})
	if err != nil {
		if apperr.KindOf(err) != 0 {
			return nil, err
		}
		return nil, apperr.Translate(err, "driver: record medical check")
	}
	return &mc, nil
}

// ListMedicalChecks returns a driver's checks, newest first.
func ListMedicalChecks(gdb *gorm.DB, driverID uint) ([]models.MedicalCheck, error) {
	var checks []models.MedicalCheck
	if err := gdb.Where("driver_id = ?", driverID).Order("check_time DESC, id DESC").Find(&checks).Error; err != nil {
		return nil, apperr.Translate(err, "driver: list medical checks")
	}
	return checks, nil
}
