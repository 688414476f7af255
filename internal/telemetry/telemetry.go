// Package telemetry records vehicle samples and serves the bounded
// newest-first query per vehicle. The table is append-only: nothing
// updates a reading after insert.
package telemetry

import (
	"time"

	"github.com/minefleet/minefleet/internal/apperr"
	"github.com/minefleet/minefleet/internal/models"
	"gorm.io/gorm"
)

// MaxQueryLimit caps how many readings one query returns.
const MaxQueryLimit = 100

// RecordOpts holds one telemetry sample. Only the vehicle is required;
// position, speed, and linkage fields stay NULL when absent. Coordinate
// and speed ranges are deliberately not validated.
type RecordOpts struct {
	VehicleID            uint
	DriverID             *uint
	ShiftID              *uint
	Timestamp            time.Time
	Latitude             *float64
	Longitude            *float64
	SpeedKmh             *float64
	DriverHealthStatusID *uint
	RawPayload           string
}

// Record appends a reading. The timestamp defaults to the write time.
func Record(gdb *gorm.DB, opts RecordOpts) (*models.TelematicsReading, error) {
	if opts.VehicleID == 0 {
		return nil, apperr.Validationf("vehicle_id is required")
	}
	if opts.Timestamp.IsZero() {
		opts.Timestamp = time.Now().UTC()
	}

	r := models.TelematicsReading{
		VehicleID:            opts.VehicleID,
		DriverID:             opts.DriverID,
		ShiftID:              opts.ShiftID,
		Timestamp:            opts.Timestamp,
		Latitude:             opts.Latitude,
		Longitude:            opts.Longitude,
		SpeedKmh:             opts.SpeedKmh,
		DriverHealthStatusID: opts.DriverHealthStatusID,
		RawPayload:           opts.RawPayload,
	}
	err := gdb.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Vehicle{}).Where("id = ?", opts.VehicleID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return apperr.NotFoundf("vehicle %d not found", opts.VehicleID)
		}
		return tx.Create(&r).Error
	})
	if err != nil {
		if apperr.KindOf(err) != 0 {
			return nil, err
		}
		return nil, apperr.Translate(err, "telemetry: record")
	}
	return &r, nil
}

// ListByVehicle returns up to limit readings for a vehicle, newest
// first. Timestamp ties break by id descending so the order is stable.
// Vehicle existence is not checked: an unknown vehicle yields an empty
// slice, not an error. Limit is clamped to MaxQueryLimit.
func ListByVehicle(gdb *gorm.DB, vehicleID uint, limit int) ([]models.TelematicsReading, error) {
	if limit <= 0 || limit > MaxQueryLimit {
		limit = MaxQueryLimit
	}

	readings := make([]models.TelematicsReading, 0, limit)
	if err := gdb.Where("vehicle_id = ?", vehicleID).
		Order("timestamp DESC, id DESC").
		Limit(limit).
		Find(&readings).Error; err != nil {
		return nil, apperr.Translate(err, "telemetry: list by vehicle")
	}
	return readings, nil
}

// PurgeOlderThan deletes readings with a timestamp before cutoff and
// returns how many were removed. Used by the retention sweeper.
func PurgeOlderThan(gdb *gorm.DB, cutoff time.Time) (int64, error) {
	res := gdb.Where("timestamp < ?", cutoff).Delete(&models.TelematicsReading{})
	if res.Error != nil {
		return 0, apperr.Translate(res.Error, "telemetry: purge")
	}
	return res.RowsAffected, nil
}
