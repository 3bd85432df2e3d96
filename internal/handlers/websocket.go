package handlers

import (
	"net/http"
	"strconv"

	"github.com/chachabrian/delivery-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// WebSocketHandler subscribes a user or rider to shipment events.
// The subscriber is named by the role and id query parameters.
func WebSocketHandler(hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.Query("role")
		if role != services.RoleUser && role != services.RoleRider {
			respondError(c, http.StatusBadRequest, "role must be user or rider", nil)
			return
		}

		id, err := strconv.ParseUint(c.Query("id"), 10, 64)
		if err != nil || id == 0 {
			respondError(c, http.StatusBadRequest, "id must be a positive integer", nil)
			return
		}

		services.HandleWebSocket(hub, c.Writer, c.Request, uint(id), role)
	}
}
