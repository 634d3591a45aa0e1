package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/taskflow/internal/constants"
	apierrors "github.com/yukikurage/taskflow/internal/errors"
	"github.com/yukikurage/taskflow/internal/utils"
)

// RequireID parses the :id route parameter and stores it in the context
func RequireID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := utils.ParseID(c.Param("id"))
		if err != nil {
			apierrors.BadRequest(c, "Invalid ID")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyID, id)
		c.Next()
	}
}

// GetID retrieves the ID parsed by RequireID
func GetID(c *gin.Context) (uint64, bool) {
	value, exists := c.Get(constants.ContextKeyID)
	if !exists {
		return 0, false
	}
	id, ok := value.(uint64)
	return id, ok
}
