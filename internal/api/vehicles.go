package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/minefleet/minefleet/internal/apperr"
	"github.com/minefleet/minefleet/internal/models"
	"github.com/minefleet/minefleet/internal/vehicle"
)

type vehicleResponse struct {
	ID              uint   `json:"id"`
	PlateNumber     string `json:"plate_number"`
	Status          string `json:"status"`
	CompanyID       uint   `json:"company_id"`
	VehicleTypeID   uint   `json:"vehicle_type_id"`
	CurrentQuarryID *uint  `json:"current_quarry_id"`
}

func vehicleJSON(v *models.Vehicle) vehicleResponse {
	return vehicleResponse{
		ID:              v.ID,
		PlateNumber:     v.PlateNumber,
		Status:          v.Status,
		CompanyID:       v.CompanyID,
		VehicleTypeID:   v.VehicleTypeID,
		CurrentQuarryID: v.CurrentQuarryID,
	}
}

func handleListVehicles(opts Options) gin.HandlerFunc {
	return func(c *gin.Context) {
		vehicles, err := vehicle.List(opts.DB)
		if err != nil {
			writeError(c, err)
			return
		}
		out := make([]vehicleResponse, 0, len(vehicles))
		for i := range vehicles {
			out = append(out, vehicleJSON(&vehicles[i]))
		}
		c.JSON(http.StatusOK, out)
	}
}

func handleCreateVehicle(opts Options) gin.HandlerFunc {
	type request struct {
		PlateNumber     string `json:"plate_number"`
		VIN             string `json:"vin"`
		CompanyID       uint   `json:"company_id"`
		VehicleTypeID   uint   `json:"vehicle_type_id"`
		CurrentQuarryID *uint  `json:"current_quarry_id"`
	}
	return func(c *gin.Context) {
		var req request
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, apperr.Validationf("invalid request body"))
			return
		}

		v, err := vehicle.Create(opts.DB, vehicle.CreateOpts{
			PlateNumber:     req.PlateNumber,
			VIN:             req.VIN,
			CompanyID:       req.CompanyID,
			VehicleTypeID:   req.VehicleTypeID,
			CurrentQuarryID: req.CurrentQuarryID,
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"id":              v.ID,
			"plate_number":    v.PlateNumber,
			"company_id":      v.CompanyID,
			"vehicle_type_id": v.VehicleTypeID,
		})
	}
}

func handleGetVehicle(opts Options) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := pathID(c)
		if err != nil {
			writeError(c, err)
			return
		}
		v, err := vehicle.Get(opts.DB, id)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, vehicleJSON(v))
	}
}

func handleUpdateVehicle(opts Options) gin.HandlerFunc {
	type request struct {
		PlateNumber     *string      `json:"plate_number"`
		VIN             *string      `json:"vin"`
		Status          *string      `json:"status"`
		CompanyID       *uint        `json:"company_id"`
		VehicleTypeID   *uint        `json:"vehicle_type_id"`
		CurrentQuarryID optionalUint `json:"current_quarry_id"`
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

		patch := vehicle.Patch{
			PlateNumber:   req.PlateNumber,
			VIN:           req.VIN,
			Status:        req.Status,
			CompanyID:     req.CompanyID,
			VehicleTypeID: req.VehicleTypeID,
		}
		if req.CurrentQuarryID.set {
			if req.CurrentQuarryID.valid {
				patch.CurrentQuarryID = &req.CurrentQuarryID.value
			} else {
				patch.ClearCurrentQuarry = true
			}
		}
		if err := vehicle.Update(opts.DB, id, patch); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Vehicle updated"})
	}
}

func handleDeleteVehicle(opts Options) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := pathID(c)
		if err != nil {
			writeError(c, err)
			return
		}
		if err := vehicle.Delete(opts.DB, id); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Vehicle deleted"})
	}
}
