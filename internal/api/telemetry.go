package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/minefleet/minefleet/internal/apperr"
	"github.com/minefleet/minefleet/internal/telemetry"
)

func handleVehicleTelemetry(opts Options) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := pathID(c)
		if err != nil {
			writeError(c, err)
			return
		}
		readings, err := telemetry.ListByVehicle(opts.DB, id, opts.TelemetryLimit)
		if err != nil {
			writeError(c, err)
			return
		}
		out := make([]gin.H, 0, len(readings))
		for _, r := range readings {
			out = append(out, gin.H{
				"id":        r.ID,
				"timestamp": r.Timestamp.Format(time.RFC3339),
				"latitude":  r.Latitude,
				"longitude": r.Longitude,
				"speed_kmh": r.SpeedKmh,
			})
		}
		c.JSON(http.StatusOK, out)
	}
}

func handleRecordTelemetry(opts Options) gin.HandlerFunc {
	type request struct {
		VehicleID            uint     `json:"vehicle_id"`
		DriverID             *uint    `json:"driver_id"`
		ShiftID              *uint    `json:"shift_id"`
		Timestamp            string   `json:"timestamp"`
		Latitude             *float64 `json:"latitude"`
		Longitude            *float64 `json:"longitude"`
		SpeedKmh             *float64 `json:"speed_kmh"`
		DriverHealthStatusID *uint    `json:"driver_health_status_id"`
		RawPayload           string   `json:"raw_payload"`
	}
	return func(c *gin.Context) {
		var req request
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, apperr.Validationf("invalid request body"))
			return
		}

		recordOpts := telemetry.RecordOpts{
			VehicleID:            req.VehicleID,
			DriverID:             req.DriverID,
			ShiftID:              req.ShiftID,
			Latitude:             req.Latitude,
			Longitude:            req.Longitude,
			SpeedKmh:             req.SpeedKmh,
			DriverHealthStatusID: req.DriverHealthStatusID,
			RawPayload:           req.RawPayload,
		}
		if req.Timestamp != "" {
			ts, err := time.Parse(time.RFC3339, req.Timestamp)
			if err != nil {
				writeError(c, apperr.Validationf("timestamp must be RFC 3339"))
				return
			}
			recordOpts.Timestamp = ts
		}

		r, err := telemetry.Record(opts.DB, recordOpts)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"id": r.ID})
	}
}
