package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/project-tracker-api/internal/constants"
	apierrors "github.com/yukikurage/project-tracker-api/internal/errors"
)

// RequireIDParam parses the ":id" path parameter and rejects malformed ids
func RequireIDParam() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil || id == 0 {
			apierrors.BadRequest(c, "Invalid id")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyResourceID, id)
		c.Next()
	}
}

// GetResourceID retrieves the id parsed by RequireIDParam
func GetResourceID(c *gin.Context) (uint64, bool) {
	id, exists := c.Get(constants.ContextKeyResourceID)
	if !exists {
		return 0, false
	}
	v, ok := id.(uint64)
	return v, ok
}
