package models

// Company owns quarries, vehicles, and drivers.
//
// Code is a reserved marker: the auto-provisioned default company carries
// code "default" and a unique index keeps it a singleton. User-created
// companies leave it NULL.
type Company struct {
	ID                 uint    `gorm:"primaryKey"`
	Code               *string `gorm:"size:32;uniqueIndex"`
	Name               string  `gorm:"size:255;not null"`
	RegistrationNumber string  `gorm:"size:50"`
	Country            string  `gorm:"size:100"`
	City               string  `gorm:"size:100"`
	Status             string  `gorm:"size:20;not null;default:active"`

	Quarries []Quarry  `gorm:"foreignKey:CompanyID"`
	Vehicles []Vehicle `gorm:"foreignKey:CompanyID"`
	Drivers  []Driver  `gorm:"foreignKey:CompanyID"`
}

// Quarry is a mining site operated by a company.
type Quarry struct {
	ID        uint   `gorm:"primaryKey"`
	CompanyID uint   `gorm:"not null;index"`
	Name      string `gorm:"size:255;not null"`
	Location  string `gorm:"size:255"`
	Status    string `gorm:"size:20;not null;default:active"`

	Company Company `gorm:"foreignKey:CompanyID"`
	Shifts  []Shift `gorm:"foreignKey:QuarryID"`
}
