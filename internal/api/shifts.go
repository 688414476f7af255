package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/minefleet/minefleet/internal/apperr"
	"github.com/minefleet/minefleet/internal/shift"
)

func handleListShifts(opts Options) gin.HandlerFunc {
	return func(c *gin.Context) {
		quarryID, err := queryUint(c, "quarry_id")
		if err != nil {
			writeError(c, err)
			return
		}
		shifts, err := shift.List(opts.DB, quarryID)
		if err != nil {
			writeError(c, err)
			return
		}
		out := make([]gin.H, 0, len(shifts))
		for _, s := range shifts {
			out = append(out, gin.H{
				"id":         s.ID,
				"quarry_id":  s.QuarryID,
				"shift_date": s.ShiftDate.Format(dateLayout),
				"start_time": s.StartTime.Format(time.RFC3339),
				"end_time":   s.EndTime.Format(time.RFC3339),
			})
		}
		c.JSON(http.StatusOK, out)
	}
}

func handleCreateShift(opts Options) gin.HandlerFunc {
	type request struct {
		QuarryID  uint   `json:"quarry_id"`
		ShiftDate string `json:"shift_date"`
		StartTime string `json:"start_time"`
		EndTime   string `json:"end_time"`
	}
	return func(c *gin.Context) {
		var req request
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, apperr.Validationf("invalid request body"))
			return
		}

		day, err := time.Parse(dateLayout, req.ShiftDate)
		if err != nil {
			writeError(c, apperr.Validationf("shift_date must be YYYY-MM-DD"))
			return
		}
		start, err := time.Parse(time.RFC3339, req.StartTime)
		if err != nil {
			writeError(c, apperr.Validationf("start_time must be RFC 3339"))
			return
		}
		end, err := time.Parse(time.RFC3339, req.EndTime)
		if err != nil {
			writeError(c, apperr.Validationf("end_time must be RFC 3339"))
			return
		}

		s, err := shift.Create(opts.DB, shift.CreateOpts{
			QuarryID:  req.QuarryID,
			ShiftDate: day,
			StartTime: start,
			EndTime:   end,
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"id": s.ID, "quarry_id": s.QuarryID})
	}
}

func handleListShiftAssignments(opts Options) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := pathID(c)
		if err != nil {
			writeError(c, err)
			return
		}
		assignments, err := shift.ListVehicleAssignments(opts.DB, id)
		if err != nil {
			writeError(c, err)
			return
		}
		out := make([]gin.H, 0, len(assignments))
		for _, a := range assignments {
			row := gin.H{
				"id":         a.ID,
				"vehicle_id": a.VehicleID,
				"driver_id":  a.DriverID,
				"shift_id":   a.ShiftID,
				"quarry_id":  a.QuarryID,
				"start_time": a.StartTime.Format(time.RFC3339),
				"end_time":   nil,
			}
			if a.EndTime != nil {
				row["end_time"] = a.EndTime.Format(time.RFC3339)
			}
			out = append(out, row)
		}
		c.JSON(http.StatusOK, out)
	}
}

func handleAssignVehicleToShift(opts Options) gin.HandlerFunc {
	type request struct {
		VehicleID uint   `json:"vehicle_id"`
		DriverID  uint   `json:"driver_id"`
		QuarryID  uint   `json:"quarry_id"`
		StartTime string `json:"start_time"`
		EndTime   string `json:"end_time"`
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

		assignOpts := shift.AssignOpts{
			VehicleID: req.VehicleID,
			DriverID:  req.DriverID,
			ShiftID:   id,
			QuarryID:  req.QuarryID,
		}
		if req.StartTime != "" {
			start, err := time.Parse(time.RFC3339, req.StartTime)
			if err != nil {
				writeError(c, apperr.Validationf("start_time must be RFC 3339"))
				return
			}
			assignOpts.StartTime = start
		}
		if req.EndTime != "" {
			end, err := time.Parse(time.RFC3339, req.EndTime)
			if err != nil {
				writeError(c, apperr.Validationf("end_time must be RFC 3339"))
				return
			}
			assignOpts.EndTime = &end
		}

		a, err := shift.AssignVehicle(opts.DB, assignOpts)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"id": a.ID, "vehicle_id": a.VehicleID, "shift_id": a.ShiftID})
	}
}
