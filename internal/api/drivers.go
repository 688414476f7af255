package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/minefleet/minefleet/internal/apperr"
	"github.com/minefleet/minefleet/internal/driver"
	"github.com/minefleet/minefleet/internal/models"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

type driverResponse struct {
	ID              uint   `json:"id"`
	FullName        string `json:"full_name"`
	LicenseNumber   string `json:"license_number"`
	LicenseCategory string `json:"license_category"`
	Status          string `json:"status"`
	CompanyID       uint   `json:"company_id"`
}

func driverJSON(d *models.Driver) driverResponse {
	return driverResponse{
		ID:              d.ID,
		FullName:        d.FullName,
		LicenseNumber:   d.LicenseNumber,
		LicenseCategory: d.LicenseCategory,
		Status:          d.Status,
		CompanyID:       d.CompanyID,
	}
}

func handleListDrivers(opts Options) gin.HandlerFunc {
	return func(c *gin.Context) {
		drivers, err := driver.List(opts.DB)
		if err != nil {
			writeError(c, err)
			return
		}
		out := make([]driverResponse, 0, len(drivers))
		for i := range drivers {
			out = append(out, driverJSON(&drivers[i]))
		}
		c.JSON(http.StatusOK, out)
	}
}

func handleCreateDriver(opts Options) gin.HandlerFunc {
	type request struct {
		FullName        string `json:"full_name"`
		LicenseNumber   string `json:"license_number"`
		LicenseCategory string `json:"license_category"`
		CompanyID       uint   `json:"company_id"`
		DateOfBirth     string `json:"date_of_birth"`
	}
	return func(c *gin.Context) {
		var req request
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, apperr.Validationf("invalid request body"))
			return
		}

		createOpts := driver.CreateOpts{
			FullName:        req.FullName,
			LicenseNumber:   req.LicenseNumber,
			LicenseCategory: req.LicenseCategory,
			CompanyID:       req.CompanyID,
		}
		if req.DateOfBirth != "" {
			dob, err := time.Parse(dateLayout, req.DateOfBirth)
			if err != nil {
				writeError(c, apperr.Validationf("date_of_birth must be YYYY-MM-DD"))
				return
			}
			createOpts.DateOfBirth = &dob
		}

		d, err := driver.Create(opts.DB, createOpts)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"id": d.ID, "full_name": d.FullName})
	}
}

func handleGetDriver(opts Options) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := pathID(c)
		if err != nil {
			writeError(c, err)
			return
		}
		d, err := driver.Get(opts.DB, id)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, driverJSON(d))
	}
}

func handleUpdateDriver(opts Options) gin.HandlerFunc {
	type request struct {
		FullName        *string `json:"full_name"`
		LicenseNumber   *string `json:"license_number"`
		LicenseCategory *string `json:"license_category"`
		Status          *string `json:"status"`
		CompanyID       *uint   `json:"company_id"`
	}
	return func(c *gin.Context) {
		id, err := pathID(c)
		if err != nil {
			writeError(c, err)
			return
		}
		var req request
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, apperr.Validationf("invalid request body"))
			return
		}

		patch := driver.Patch{
			FullName:        req.FullName,
			LicenseNumber:   req.LicenseNumber,
			LicenseCategory: req.LicenseCategory,
			Status:          req.Status,
			CompanyID:       req.CompanyID,
		}
		if err := driver.Update(opts.DB, id, patch); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Driver updated"})
	}
}

func handleDeleteDriver(opts Options) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := pathID(c)
		if err != nil {
			writeError(c, err)
			return
		}
		if err := driver.Delete(opts.DB, id); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Driver deleted"})
	}
}

func handleAssignDriver(opts Options) gin.HandlerFunc {
	type request struct {
		QuarryID  uint   `json:"quarry_id"`
		StartDate string `json:"start_date"`
		EndDate   string `json:"end_date"`
	}
	return func(c *gin.Context) {
		id, err := pathID(c)
		if err != nil {
			writeError(c, err)
			return
		}
		var req request
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, apperr.Validationf("invalid request body"))
			return
		}

		assignOpts := driver.AssignOpts{DriverID: id, QuarryID: req.QuarryID}
		if req.StartDate != "" {
			start, err := time.Parse(dateLayout, req.StartDate)
			if err != nil {
				writeError(c, apperr.Validationf("start_date must be YYYY-MM-DD"))
				return
			}
			assignOpts.StartDate = start
		}
		if req.EndDate != "" {
			end, err := time.Parse(dateLayout, req.EndDate)
			if err != nil {
				writeError(c, apperr.Validationf("end_date must be YYYY-MM-DD"))
				return
			}
			assignOpts.EndDate = &end
		}

		a, err := driver.Assign(opts.DB, assignOpts)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"id": a.ID, "driver_id": a.DriverID, "quarry_id": a.QuarryID})
	}
}

func handleRecordMedicalCheck(opts Options) gin.HandlerFunc {
	type request struct {
		DriverID      uint   `json:"driver_id"`
		ShiftID       uint   `json:"shift_id"`
		CheckTime     string `json:"check_time"`
		Result        string `json:"result"`
		HeartRate     int    `json:"heart_rate"`
		BloodPressure string `json:"blood_pressure"`
		Notes         string `json:"notes"`
	}
	return func(c *gin.Context) {
		var req request
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, apperr.Validationf("invalid request body"))
			return
		}

		checkOpts := driver.MedicalCheckOpts{
			DriverID:      req.DriverID,
			ShiftID:       req.ShiftID,
			Result:        req.Result,
			HeartRate:     req.HeartRate,
			BloodPressure: req.BloodPressure,
			Notes:         req.Notes,
		}
		if req.CheckTime != "" {
			ts, err := time.Parse(time.RFC3339, req.CheckTime)
			if err != nil {
				writeError(c, apperr.Validationf("check_time must be RFC 3339"))
				return
			}
			checkOpts.CheckTime = ts
		}

		mc, err := driver.RecordMedicalCheck(opts.DB, checkOpts)
		if err != nil {
			writeError(c, err)
			return
		}

		if mc.Result == driver.ResultUnfit && opts.Notifier.Enabled() {
			d, err := driver.Get(opts.DB, mc.DriverID)
			if err == nil {
				err = opts.Notifier.UnfitDriver(d, mc)
			}
			if err != nil && opts.Log != nil {
				opts.Log.Warn("unfit alert not delivered", zap.Uint("driver_id", mc.DriverID), zap.Error(err))
			}
		}

		c.JSON(http.StatusCreated, gin.H{"id": mc.ID, "result": mc.Result})
	}
}

func handleListMedicalChecks(opts Options) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := pathID(c)
		if err != nil {
			writeError(c, err)
			return
		}
		checks, err := driver.ListMedicalChecks(opts.DB, id)
		if err != nil {
			writeError(c, err)
			return
		}
		out := make([]gin.H, 0, len(checks))
		for _, mc := range checks {
			out = append(out, gin.H{
				"id":             mc.ID,
				"shift_id":       mc.ShiftID,
				"check_time":     mc.CheckTime.Format(time.RFC3339),
				"result":         mc.Result,
				"heart_rate":     mc.HeartRate,
				"blood_pressure": mc.BloodPressure,
				"notes":          mc.Notes,
			})
		}
		c.JSON(http.StatusOK, out)
	}
}
