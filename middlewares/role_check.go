package middlewares

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"dinehall/utils"
)

// RequireRoles gates a route group to the listed staff roles.
func RequireRoles(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}

	return func(c *gin.Context) {
		roleValue, _ := c.Get("role")
		role, _ := roleValue.(string)
		if !allowed[role] {
			utils.RespondError(c, http.StatusForbidden, errors.New("you do not have permission"))
			c.Abort()
			return
		}
		c.Next()
	}
}
