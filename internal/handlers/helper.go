package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ParseIDParam reads a numeric path parameter. On failure it writes the
// 400 response itself and returns ok=false.
func ParseIDParam(c *gin.Context, param string) (uint, bool) {
	idStr := c.Param(param)
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid " + param,
			Details: "must be a positive integer",
		})
		return 0, false
	}
	return uint(id), true
}
