// internal/middleware/recovery.go
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/storefront-backend/internal/utils"
)

// Recovery is the last line of defence: anything that panics in a handler is
// logged and answered with a generic 500.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered interface{}) {
		logrus.WithFields(logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"request_id": c.GetString("request_id"),
			"panic":      recovered,
		}).Error("Server error")

		utils.InternalErrorResponse(c)
		c.Abort()
	})
}
