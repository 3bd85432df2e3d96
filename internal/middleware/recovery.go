package middleware

import (
	"fmt"
	"io"
	"net/http"

	"github.com/chachabrian/delivery-backend/internal/logger"
	"github.com/gin-gonic/gin"
)

// Recovery turns a panic into a 500 JSON response.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		logger.Log.Errorw("panic recovered",
			"request_id", RequestID(c),
			"path", c.Request.URL.Path,
			"error", recovered,
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"message": "Something went wrong!",
			"error":   fmt.Sprint(recovered),
		})
	})
}
