package models

// VehicleType is a reference table classifying vehicles.
//
// Code works the same way as Company.Code: the auto-provisioned default
// type is keyed by code "default" under a unique index.
type VehicleType struct {
	ID             uint    `gorm:"primaryKey"`
	Code           *string `gorm:"size:32;uniqueIndex"`
	Name           string  `gorm:"size:100;not null"`
	Description    string  `gorm:"type:text"`
	MaxSpeedKmh    int
	MaxPayloadTons float64

	Vehicles []Vehicle `gorm:"foreignKey:VehicleTypeID"`
}

// Vehicle is a fleet unit. Plate numbers are globally unique; VINs are
// unique when present (NULL VINs do not collide).
type Vehicle struct {
	ID              uint    `gorm:"primaryKey"`
	CompanyID       uint    `gorm:"not null;index"`
	VehicleTypeID   uint    `gorm:"not null;index"`
	CurrentQuarryID *uint   `gorm:"index"`
	PlateNumber     string  `gorm:"size:50;uniqueIndex;not null"`
	VIN             *string `gorm:"size:100;uniqueIndex"`
	Status          string  `gorm:"size:20;not null;default:active"`

	Company       Company     `gorm:"foreignKey:CompanyID"`
	VehicleType   VehicleType `gorm:"foreignKey:VehicleTypeID"`
	CurrentQuarry *Quarry     `gorm:"foreignKey:CurrentQuarryID"`
}
