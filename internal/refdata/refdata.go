// Package refdata resolves and manages reference entities: companies,
// quarries, vehicle types, and driver health statuses.
//
// The default company and default vehicle type are singleton rows keyed
// by a reserved code under a unique index. Resolution is an insert-or-fetch
// inside one transaction, so concurrent first-time callers cannot produce
// duplicate defaults: at most one insert wins, everyone reads the same row.
package refdata

import (
	"github.com/minefleet/minefleet/internal/apperr"
	"github.com/minefleet/minefleet/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultCode marks the auto-provisioned default rows.
const DefaultCode = "default"

// Sentinel values for the default rows.
const (
	DefaultCompanyName     = "Default Mining Company"
	DefaultVehicleTypeName = "Default Truck"

	defaultMaxSpeedKmh    = 60
	defaultMaxPayloadTons = 40.0
)

// DefaultCompany returns the default company, creating it if it does not
// exist yet. The returned row is always persisted. Failures are store
// failures: a create request that fell back to the default cannot proceed.
func DefaultCompany(gdb *gorm.DB) (*models.Company, error) {
	var out models.Company
	err := gdb.Transaction(func(tx *gorm.DB) error {
		code := DefaultCode
		row := models.Company{
			Code:    &code,
			Name:    DefaultCompanyName,
			Country: "N/A",
			City:    "N/A",
			Status:  "active",
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "code"}},
			DoNothing: true,
		}).Create(&row).Error; err != nil {
			return err
		}
		return tx.Where("code = ?", DefaultCode).First(&out).Error
	})
	if err != nil {
		return nil, &apperr.Error{Kind: apperr.Unavailable, Msg: "refdata: resolve default company", Err: err}
	}
	return &out, nil
}

// DefaultVehicleType returns the default vehicle type, creating it if it
// does not exist yet. Same contract as DefaultCompany.
func DefaultVehicleType(gdb *gorm.DB) (*models.VehicleType, error) {
	var out models.VehicleType
	err := gdb.Transaction(func(tx *gorm.DB) error {
		code := DefaultCode
		row := models.VehicleType{
			Code:           &code,
			Name:           DefaultVehicleTypeName,
			Description:    "Generic mining truck",
			MaxSpeedKmh:    defaultMaxSpeedKmh,
			MaxPayloadTons: defaultMaxPayloadTons,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "code"}},
			DoNothing: true,
		}).Create(&row).Error; err != nil {
			return err
		}
		return tx.Where("code = ?", DefaultCode).First(&out).Error
	})
	if err != nil {
		return nil, &apperr.Error{Kind: apperr.Unavailable, Msg: "refdata: resolve default vehicle type", Err: err}
	}
	return &out, nil
}

// EnsureDefaults seeds the default company at startup. The vehicle type
// default is provisioned lazily on first use.
func EnsureDefaults(gdb *gorm.DB) error {
	_, err := DefaultCompany(gdb)
	return err
}
