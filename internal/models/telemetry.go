package models

import "time"

// DriverHealthStatus is a reference table classifying the health flag
// attached to telemetry readings.
type DriverHealthStatus struct {
	ID          uint   `gorm:"primaryKey"`
	Code        string `gorm:"size:50;uniqueIndex;not null"`
	Description string `gorm:"size:255"`
}

// TelematicsReading is one timestamped sample from a vehicle. Rows are
// append-only; nothing updates them after insert. The composite
// (vehicle_id, timestamp) index serves the newest-first per-vehicle query.
type TelematicsReading struct {
	ID                   uint      `gorm:"primaryKey"`
	VehicleID            uint      `gorm:"not null;index:idx_vehicle_time,priority:1"`
	DriverID             *uint     `gorm:"index"`
	ShiftID              *uint     `gorm:"index"`
	Timestamp            time.Time `gorm:"not null;index:idx_vehicle_time,priority:2"`
	Latitude             *float64
	Longitude            *float64
	SpeedKmh             *float64
	DriverHealthStatusID *uint
	RawPayload           string `gorm:"type:text"`

	Vehicle            Vehicle             `gorm:"foreignKey:VehicleID"`
	Driver             *Driver             `gorm:"foreignKey:DriverID"`
	Shift              *Shift              `gorm:"foreignKey:ShiftID"`
	DriverHealthStatus *DriverHealthStatus `gorm:"foreignKey:DriverHealthStatusID"`
}
