package models

import "time"

// Driver is an operator employed by a company.
type Driver struct {
	ID              uint   `gorm:"primaryKey"`
	CompanyID       uint   `gorm:"not null;index"`
	FullName        string `gorm:"size:255;not null"`
	LicenseNumber   string `gorm:"size:100"`
	LicenseCategory string `gorm:"size:10"`
	Status          string `gorm:"size:20;not null;default:active"`
	DateOfBirth     *time.Time

	Company       Company            `gorm:"foreignKey:CompanyID"`
	Assignments   []DriverAssignment `gorm:"foreignKey:DriverID"`
	MedicalChecks []MedicalCheck     `gorm:"foreignKey:DriverID"`
}

// DriverAssignment is a historical record placing a driver at a quarry
// over a date interval. EndDate is NULL while the assignment is open.
type DriverAssignment struct {
	ID        uint      `gorm:"primaryKey"`
	DriverID  uint      `gorm:"not null;index"`
	QuarryID  uint      `gorm:"not null;index"`
	StartDate time.Time `gorm:"not null"`
	EndDate   *time.Time

	Driver Driver `gorm:"foreignKey:DriverID"`
	Quarry Quarry `gorm:"foreignKey:QuarryID"`
}

// MedicalCheck records a fitness check taken before or during a shift.
type MedicalCheck struct {
	ID            uint      `gorm:"primaryKey"`
	DriverID      uint      `gorm:"not null;index"`
	ShiftID       uint      `gorm:"not null;index"`
	CheckTime     time.Time `gorm:"not null"`
	Result        string    `gorm:"size:20;not null"` // fit / unfit
	HeartRate     int
	BloodPressure string `gorm:"size:20"`
	Notes         string `gorm:"type:text"`

	Driver Driver `gorm:"foreignKey:DriverID"`
	Shift  Shift  `gorm:"foreignKey:ShiftID"`
}
