package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/minefleet/minefleet/internal/apperr"
	"github.com/minefleet/minefleet/internal/refdata"
)

func handleListCompanies(opts Options) gin.HandlerFunc {
	return func(c *gin.Context) {
		companies, err := refdata.ListCompanies(opts.DB)
		if err != nil {
			writeError(c, err)
			return
		}
		out := make([]gin.H, 0, len(companies))
		for _, co := range companies {
			out = append(out, gin.H{
				"id":                  co.ID,
				"name":                co.Name,
				"registration_number": co.RegistrationNumber,
				"country":             co.Country,
				"city":                co.City,
				"status":              co.Status,
			})
		}
		c.JSON(http.StatusOK, out)
	}
}

func handleCreateCompany(opts Options) gin.HandlerFunc {
	type request struct {
		Name               string `json:"name"`
		RegistrationNumber string `json:"registration_number"`
		Country            string `json:"country"`
		City               string `json:"city"`
	}
	return func(c *gin.Context) {
		var req request
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, apperr.Validationf("invalid request body"))
			return
		}
		co, err := refdata.CreateCompany(opts.DB, refdata.CompanyOpts{
			Name:               req.Name,
			RegistrationNumber: req.RegistrationNumber,
			Country:            req.Country,
			City:               req.City,
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"id": co.ID, "name": co.Name})
	}
}

func handleListQuarries(opts Options) gin.HandlerFunc {
	return func(c *gin.Context) {
		companyID, err := queryUint(c, "company_id")
		if err != nil {
			writeError(c, err)
			return
		}
		quarries, err := refdata.ListQuarries(opts.DB, companyID)
		if err != nil {
			writeError(c, err)
			return
		}
		out := make([]gin.H, 0, len(quarries))
		for _, q := range quarries {
			out = append(out, gin.H{
				"id":         q.ID,
				"company_id": q.CompanyID,
				"name":       q.Name,
				"location":   q.Location,
			})
		}
		c.JSON(http.StatusOK, out)
	}
}

func handleCreateQuarry(opts Options) gin.HandlerFunc {
	type request struct {
		CompanyID uint   `json:"company_id"`
		Name      string `json:"name"`
		Location  string `json:"location"`
	}
	return func(c *gin.Context) {
		var req request
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, apperr.Validationf("invalid request body"))
			return
		}
		q, err := refdata.CreateQuarry(opts.DB, refdata.QuarryOpts{
			CompanyID: req.CompanyID,
			Name:      req.Name,
			Location:  req.Location,
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"id": q.ID, "name": q.Name, "company_id": q.CompanyID})
	}
}

func handleListVehicleTypes(opts Options) gin.HandlerFunc {
	return func(c *gin.Context) {
		types, err := refdata.ListVehicleTypes(opts.DB)
		if err != nil {
			writeError(c, err)
			return
		}
		out := make([]gin.H, 0, len(types))
		for _, vt := range types {
			out = append(out, gin.H{
				"id":               vt.ID,
				"name":             vt.Name,
				"description":      vt.Description,
				"max_speed_kmh":    vt.MaxSpeedKmh,
				"max_payload_tons": vt.MaxPayloadTons,
			})
		}
		c.JSON(http.StatusOK, out)
	}
}

func handleCreateVehicleType(opts Options) gin.HandlerFunc {
	type request struct {
		Name           string  `json:"name"`
		Description    string  `json:"description"`
		MaxSpeedKmh    int     `json:"max_speed_kmh"`
		MaxPayloadTons float64 `json:"max_payload_tons"`
	}
	return func(c *gin.Context) {
		var req request
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, apperr.Validationf("invalid request body"))
			return
		}
		vt, err := refdata.CreateVehicleType(opts.DB, refdata.VehicleTypeOpts{
			Name:           req.Name,
			Description:    req.Description,
			MaxSpeedKmh:    req.MaxSpeedKmh,
			MaxPayloadTons: req.MaxPayloadTons,
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"id": vt.ID, "name": vt.Name})
	}
}

func handleListHealthStatuses(opts Options) gin.HandlerFunc {
	return func(c *gin.Context) {
		statuses, err := refdata.ListHealthStatuses(opts.DB)
		if err != nil {
			writeError(c, err)
			return
		}
		out := make([]gin.H, 0, len(statuses))
		for _, hs := range statuses {
			out = append(out, gin.H{
				"id":          hs.ID,
				"code":        hs.Code,
				"description": hs.Description,
			})
		}
		c.JSON(http.StatusOK, out)
	}
}

func handleCreateHealthStatus(opts Options) gin.HandlerFunc {
	type request struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	}
	return func(c *gin.Context) {
		var req request
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, apperr.Validationf("invalid request body"))
			return
		}
		hs, err := refdata.CreateHealthStatus(opts.DB, refdata.HealthStatusOpts{
			Code:        req.Code,
			Description: req.Description,
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"id": hs.ID, "code": hs.Code})
	}
}
