package models

import "time"

// Shift is a working period at a quarry.
type Shift struct {
	ID        uint      `gorm:"primaryKey"`
	QuarryID  uint      `gorm:"not null;index"`
	ShiftDate time.Time `gorm:"not null"`
	StartTime time.Time `gorm:"not null"`
	EndTime   time.Time `gorm:"not null"`

	Quarry        Quarry         `gorm:"foreignKey:QuarryID"`
	MedicalChecks []MedicalCheck `gorm:"foreignKey:ShiftID"`
}

// VehicleShiftAssignment pairs a vehicle with a driver for one shift at
// a quarry. EndTime is NULL while the pairing is active.
type VehicleShiftAssignment struct {
	ID        uint      `gorm:"primaryKey"`
	VehicleID uint      `gorm:"not null;index"`
	DriverID  uint      `gorm:"not null;index"`
	ShiftID   uint      `gorm:"not null;index"`
	QuarryID  uint      `gorm:"not null;index"`
	StartTime time.Time `gorm:"not null"`
	EndTime   *time.Time

	Vehicle Vehicle `gorm:"foreignKey:VehicleID"`
	Driver  Driver  `gorm:"foreignKey:DriverID"`
	Shift   Shift   `gorm:"foreignKey:ShiftID"`
	Quarry  Quarry  `gorm:"foreignKey:QuarryID"`
}
