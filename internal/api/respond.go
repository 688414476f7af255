package api

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/minefleet/minefleet/internal/apperr"
)

// writeError maps a classified error onto an HTTP status. Validation,
// NotFound, and Conflict messages are safe to echo; store failures get
// a generic body and are attached to the context for the logger.
func writeError(c *gin.Context, err error) {
	switch apperr.KindOf(err) {
	case apperr.Validation:
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case apperr.NotFound:
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
	case apperr.Conflict:
		c.JSON(http.StatusConflict, gin.H{"message": err.Error()})
	case apperr.Unavailable:
		c.Error(err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "store unavailable"})
	default:
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
	}
}

// optionalUint is a tri-state JSON field: absent, null, or a value.
// UnmarshalJSON only runs when the key is present, which is what lets a
// patch distinguish "leave unchanged" from "set to NULL".
type optionalUint struct {
	set   bool
	valid bool
	value uint
}

func (o *optionalUint) UnmarshalJSON(b []byte) error {
	o.set = true
	if string(b) == "null" {
		return nil
	}
	if err := json.Unmarshal(b, &o.value); err != nil {
		return err
	}
	o.valid = true
	return nil
}
