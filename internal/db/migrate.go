package db

import (
	"fmt"

	"github.com/minefleet/minefleet/internal/models"
	"gorm.io/gorm"
)

// AllModels returns every persistent entity type for migration, parents
// before children so FK constraints can be created in one pass.
func AllModels() []interface{} {
	return []interface{}{
		&models.Company{},
		&models.Quarry{},
		&models.VehicleType{},
		&models.Vehicle{},
		&models.Driver{},
		&models.DriverAssignment{},
		&models.Shift{},
		&models.MedicalCheck{},
		&models.DriverHealthStatus{},
		&models.VehicleShiftAssignment{},
		&models.TelematicsReading{},
	}
}

// AutoMigrate creates or updates all tables.
func AutoMigrate(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("db: auto-migrate: %w", err)
	}
	return nil
}
