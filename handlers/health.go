package handlers

import (
	"net/http"

	"doclink/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports liveness plus the last Redis check.
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm DocLink", "redis": utils.GetHealthStatus()})
}
