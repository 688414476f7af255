package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/minefleet/minefleet/internal/apperr"
)

// registerRoutes sets up the JSON API on the gin router.
func registerRoutes(router *gin.Engine, opts Options) {
	router.GET("/", handleHealth)

	api := router.Group("/api")

	// Drivers.
	api.GET("/drivers", handleListDrivers(opts))
	api.POST("/drivers", handleCreateDriver(opts))
	api.GET("/drivers/:id", handleGetDriver(opts))
	api.PUT("/drivers/:id", handleUpdateDriver(opts))
	api.DELETE("/drivers/:id", handleDeleteDriver(opts))
	api.POST("/drivers/:id/assignments", handleAssignDriver(opts))
	api.GET("/drivers/:id/medical-checks", handleListMedicalChecks(opts))
	api.POST("/medical-checks", handleRecordMedicalCheck(opts))

	// Vehicles and telemetry.
	api.GET("/vehicles", handleListVehicles(opts))
	api.POST("/vehicles", handleCreateVehicle(opts))
	api.GET("/vehicles/:id", handleGetVehicle(opts))
	api.PUT("/vehicles/:id", handleUpdateVehicle(opts))
	api.DELETE("/vehicles/:id", handleDeleteVehicle(opts))
	api.GET("/vehicles/:id/telemetry", handleVehicleTelemetry(opts))
	api.POST("/telemetry", handleRecordTelemetry(opts))

	// Reference tables.
	api.GET("/companies", handleListCompanies(opts))
	api.POST("/companies", handleCreateCompany(opts))
	api.GET("/quarries", handleListQuarries(opts))
	api.POST("/quarries", handleCreateQuarry(opts))
	api.GET("/vehicle-types", handleListVehicleTypes(opts))
	api.POST("/vehicle-types", handleCreateVehicleType(opts))
	api.GET("/health-statuses", handleListHealthStatuses(opts))
	api.POST("/health-statuses", handleCreateHealthStatus(opts))

	// Shifts.
	api.GET("/shifts", handleListShifts(opts))
	api.POST("/shifts", handleCreateShift(opts))
	api.GET("/shifts/:id/assignments", handleListShiftAssignments(opts))
	api.POST("/shifts/:id/assignments", handleAssignVehicleToShift(opts))
}

func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"message":  "Mining fleet backend is running",
		"api_root": "/api",
	})
}

// pathID parses the :id path parameter. A non-numeric id resolves to
// nothing, so it reports NotFound like any other unknown id.
func pathID(c *gin.Context) (uint, error) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, apperr.NotFoundf("invalid id %q", raw)
	}
	return uint(id), nil
}

// queryUint parses an optional numeric query parameter; absent means 0.
func queryUint(c *gin.Context, name string) (uint, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, apperr.Validationf("%s must be numeric", name)
	}
	return uint(v), nil
}
