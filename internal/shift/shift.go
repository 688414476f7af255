// Package shift provides shift scheduling and vehicle-shift pairings.
package shift

import (
	"errors"
	"time"

	"github.com/minefleet/minefleet/internal/apperr"
	"github.com/minefleet/minefleet/internal/models"
	"gorm.io/gorm"
)

// CreateOpts holds parameters for scheduling a shift.
type CreateOpts struct {
	QuarryID  uint
	ShiftDate time.Time
	StartTime time.Time
	EndTime   time.Time
}

// Create schedules a shift at a quarry. The end must come after the
// start and both must fall on the shift date.
func Create(gdb *gorm.DB, opts CreateOpts) (*models.Shift, error) {
	if opts.QuarryID == 0 {
		return nil, apperr.Validationf("quarry_id is required")
	}
	if opts.ShiftDate.IsZero() {
		return nil, apperr.Validationf("shift_date is required")
	}
	if opts.StartTime.IsZero() || opts.EndTime.IsZero() {
		return nil, apperr.Validationf("start_time and end_time are required")
	}
	if !opts.EndTime.After(opts.StartTime) {
		return nil, apperr.Validationf("end_time must be after start_time")
	}
	if !sameDay(opts.StartTime, opts.ShiftDate) || !sameDay(opts.EndTime, opts.ShiftDate) {
		return nil, apperr.Validationf("start_time and end_time must fall on shift_date")
	}

	s := models.Shift{
		QuarryID:  opts.QuarryID,
		ShiftDate: opts.ShiftDate,
		StartTime: opts.StartTime,
		EndTime:   opts.EndTime,
	}
	err := gdb.Transaction(func(tx *gorm.DB) error {
		if err := mustExist(tx, &models.Quarry{}, opts.QuarryID, "quarry"); err != nil {
			return err
		}
		return tx.Create(&s).Error
	})
	if err != nil {
		if apperr.KindOf(err) != 0 {
			return nil, err
		}
		return nil, apperr.Translate(err, "shift: create")
	}
	return &s, nil
}

func sameDay(ts, day time.Time) bool {
	y1, m1, d1 := ts.UTC().Date()
	y2, m2, d2 := day.UTC().Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// Get retrieves a shift by id.
func Get(gdb *gorm.DB, id uint) (*models.Shift, error) {
	var s models.Shift
	if err := gdb.First(&s, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("shift %d not found", id)
		}
		return nil, apperr.Translate(err, "shift: get")
	}
	return &s, nil
}

// List returns shifts, optionally filtered by quarry, newest date first.
func List(gdb *gorm.DB, quarryID uint) ([]models.Shift, error) {
	q := gdb.Model(&models.Shift{})
	if quarryID != 0 {
		q = q.Where("quarry_id = ?", quarryID)
	}
	var shifts []models.Shift
	if err := q.Order("shift_date DESC, start_time DESC").Find(&shifts).Error; err != nil {
		return nil, apperr.Translate(err, "shift: list")
	}
	return shifts, nil
}

// AssignOpts holds parameters for pairing a vehicle and driver on a shift.
type AssignOpts struct {
	VehicleID uint
	DriverID  uint
	ShiftID   uint
	QuarryID  uint
	StartTime time.Time
	EndTime   *time.Time
}

// AssignVehicle records a vehicle/driver/shift/quarry pairing for one
// working period. All four refs must resolve.
func AssignVehicle(gdb *gorm.DB, opts AssignOpts) (*models.VehicleShiftAssignment, error) {
	required := []struct {
		id   uint
		name string
	}{
		{opts.VehicleID, "vehicle_id"},
		{opts.DriverID, "driver_id"},
		{opts.ShiftID, "shift_id"},
		{opts.QuarryID, "quarry_id"},
	}
	for _, r := range required {
		if r.id == 0 {
			return nil, apperr.Validationf("%s is required", r.name)
		}
	}
	if opts.StartTime.IsZero() {
		opts.StartTime = time.Now().UTC()
	}
	if opts.EndTime != nil && opts.EndTime.Before(opts.StartTime) {
		return nil, apperr.Validationf("end_time precedes start_time")
	}

	a := models.VehicleShiftAssignment{
		VehicleID: opts.VehicleID,
		DriverID:  opts.DriverID,
		ShiftID:   opts.ShiftID,
		QuarryID:  opts.QuarryID,
		StartTime: opts.StartTime,
		EndTime:   opts.EndTime,
	}
	err := gdb.Transaction(func(tx *gorm.DB) error {
		checks := []struct {
			model interface{}
			id    uint
			what  string
		}{
			{&models.Vehicle{}, opts.VehicleID, "vehicle"},
			{&models.Driver{}, opts.DriverID, "driver"},
			{&models.Shift{}, opts.ShiftID, "shift"},
			{&models.Quarry{}, opts.QuarryID, "quarry"},
		}
		for _, c := range checks {
			if err := mustExist(tx, c.model, c.id, c.what); err != nil {
				return err
			}
		}
		return tx.Create(&a).Error
	})
	if err != nil {
		if apperr.KindOf(err) != 0 {
			return nil, err
		}
		return nil, apperr.Translate(err, "shift: assign vehicle")
	}
	return &a, nil
}

// EndVehicleAssignment closes a pairing at the given time.
func EndVehicleAssignment(gdb *gorm.DB, id uint, end time.Time) error {
	err := gdb.Transaction(func(tx *gorm.DB) error {
		var a models.VehicleShiftAssignment
		if err := tx.First(&a, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFoundf("vehicle shift assignment %d not found", id)
			}
			return err
		}
		if end.Before(a.StartTime) {
			return apperr.Validationf("end_time precedes start_time")
		}
		return tx.Model(&a).Update("end_time", end).Error
	})
	if err != nil {
		if apperr.KindOf(err) != 0 {
			return err
		}
		return apperr.Translate(err, "shift: end vehicle assignment")
	}
	return nil
}

// ListVehicleAssignments returns the pairings for one shift.
func ListVehicleAssignments(gdb *gorm.DB, shiftID uint) ([]models.VehicleShiftAssignment, error) {
	var assignments []models.VehicleShiftAssignment
	if err := gdb.Where("shift_id = ?", shiftID).Order("start_time ASC, id ASC").Find(&assignments).Error; err != nil {
		return nil, apperr.Translate(err, "shift: list vehicle assignments")
	}
	return assignments, nil
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
