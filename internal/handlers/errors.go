package handlers

import (
	"github.com/chachabrian/delivery-backend/internal/logger"
	"github.com/gin-gonic/gin"
)

// respondError writes {message, error}. The error field is left out when err is nil.
func respondError(c *gin.Context, status int, message string, err error) {
	body := gin.H{"message": message}
	if err != nil {
		body["error"] = err.Error()
		if status >= 500 {
			logger.Log.Errorw(message, "path", c.Request.URL.Path, "status", status, "error", err)
		}
	}
	c.JSON(status, body)
}
