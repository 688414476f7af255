package refdata

import (
	"errors"

	"github.com/minefleet/minefleet/internal/apperr"
	"github.com/minefleet/minefleet/internal/models"
	"gorm.io/gorm"
)

// CompanyOpts holds parameters for creating a company.
type CompanyOpts struct {
	Name               string
	RegistrationNumber string
	Country            string
	City               string
}

// CreateCompany creates a company. Name is required; status starts "active".
func CreateCompany(gdb *gorm.DB, opts CompanyOpts) (*models.Company, error) {
	if opts.Name == "" {
		return nil, apperr.Validationf("name is required")
	}
	company := models.Company{
		Name:               opts.Name,
		RegistrationNumber: opts.RegistrationNumber,
		Country:            opts.Country,
		City:               opts.City,
		Status:             "active",
	}
	if err := gdb.Create(&company).Error; err != nil {
		return nil, apperr.Translate(err, "refdata: create company")
	}
	return &company, nil
}

// GetCompany retrieves a company by id.
func GetCompany(gdb *gorm.DB, id uint) (*models.Company, error) {
	var company models.Company
	if err := gdb.First(&company, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("company %d not found", id)
		}
		return nil, apperr.Translate(err, "refdata: get company")
	}
	return &company, nil
}

// ListCompanies returns all companies.
func ListCompanies(gdb *gorm.DB) ([]models.Company, error) {
	var companies []models.Company
	if err := gdb.Order("id ASC").Find(&companies).Error; err != nil {
		return nil, apperr.Translate(err, "refdata: list companies")
	}
	return companies, nil
}

// QuarryOpts holds parameters for creating a quarry.
type QuarryOpts struct {
	CompanyID uint
	Name      string
	Location  string
}

// CreateQuarry creates a quarry under an existing company.
func CreateQuarry(gdb *gorm.DB, opts QuarryOpts) (*models.Quarry, error) {
	if opts.Name == "" {
		return nil, apperr.Validationf("name is required")
	}
	if opts.CompanyID == 0 {
		return nil, apperr.Validationf("company_id is required")
	}
	quarry := models.Quarry{
		CompanyID: opts.CompanyID,
		Name:      opts.Name,
		Location:  opts.Location,
		Status:    "active",
	}
	err := gdb.Transaction(func(tx *gorm.DB) error {
		ok, err := rowExists(tx, &models.Company{}, opts.CompanyID)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.NotFoundf("company %d not found", opts.CompanyID)
		}
		return tx.Create(&quarry).Error
	})
	if err != nil {
		if apperr.KindOf(err) != 0 {
			return nil, err
		}
		return nil, apperr.Translate(err, "refdata: create quarry")
	}
	return &quarry, nil
}

// GetQuarry retrieves a quarry by id.
func GetQuarry(gdb *gorm.DB, id uint) (*models.Quarry, error) {
	var quarry models.Quarry
	if err := gdb.First(&quarry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("quarry %d not found", id)
		}
		return nil, apperr.Translate(err, "refdata: get quarry")
	}
	return &quarry, nil
}

// ListQuarries returns all quarries, optionally filtered by company.
func ListQuarries(gdb *gorm.DB, companyID uint) ([]models.Quarry, error) {
	q := gdb.Model(&models.Quarry{})
	if companyID != 0 {
		q = q.Where("company_id = ?", companyID)
	}
	var quarries []models.Quarry
	if err := q.Order("id ASC").Find(&quarries).Error; err != nil {
		return nil, apperr.Translate(err, "refdata: list quarries")
	}
	return quarries, nil
}

// VehicleTypeOpts holds parameters for creating a vehicle type.
type VehicleTypeOpts struct {
	Name           string
	Description    string
	MaxSpeedKmh    int
	MaxPayloadTons float64
}

// CreateVehicleType creates a vehicle type. Name is required.
func CreateVehicleType(gdb *gorm.DB, opts VehicleTypeOpts) (*models.VehicleType, error) {
	if opts.Name == "" {
		return nil, apperr.Validationf("name is required")
	}
	vt := models.VehicleType{
		Name:           opts.Name,
		Description:    opts.Description,
		MaxSpeedKmh:    opts.MaxSpeedKmh,
		MaxPayloadTons: opts.MaxPayloadTons,
	}
	if err := gdb.Create(&vt).Error; err != nil {
		return nil, apperr.Translate(err, "refdata: create vehicle type")
	}
	return &vt, nil
}

// ListVehicleTypes returns all vehicle types.
func ListVehicleTypes(gdb *gorm.DB) ([]models.VehicleType, error) {
	var types []models.VehicleType
	if err := gdb.Order("id ASC").Find(&types).Error; err != nil {
		return nil, apperr.Translate(err, "refdata: list vehicle types")
	}
	return types, nil
}

// HealthStatusOpts holds parameters for creating a driver health status.
type HealthStatusOpts struct {
	Code        string
	Description string
}

// CreateHealthStatus creates a health-status code. Codes are unique, so a
// duplicate surfaces as a conflict.
func CreateHealthStatus(gdb *gorm.DB, opts HealthStatusOpts) (*models.DriverHealthStatus, error) {
	if opts.Code == "" {
		return nil, apperr.Validationf("code is required")
	}
	hs := models.DriverHealthStatus{Code: opts.Code, Description: opts.Description}
	if err := gdb.Create(&hs).Error; err != nil {
		return nil, apperr.Translate(err, "refdata: create health status")
	}
	return &hs, nil
}

// ListHealthStatuses returns all health-status codes.
func ListHealthStatuses(gdb *gorm.DB) ([]models.DriverHealthStatus, error) {
	var statuses []models.DriverHealthStatus
	if err := gdb.Order("id ASC").Find(&statuses).Error; err != nil {
		return nil, apperr.Translate(err, "refdata: list health statuses")
	}
	return statuses, nil
}

// rowExists reports whether a row of the given model with this id exists.
func rowExists(tx *gorm.DB, model interface{}, id uint) (bool, error) {
	var count int64
	if err := tx.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
