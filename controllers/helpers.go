package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// restaurantID reads the tenant scope set by the auth middleware.
func restaurantID(c *gin.Context) string {
	value, _ := c.Get("restaurant_id")
	rid, _ := value.(string)
	return rid
}

func uintParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}
