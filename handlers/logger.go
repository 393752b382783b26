package handlers

import (
	"net/http"

	"doclink/middleware"
	"doclink/services/client"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// getLogger retrieves the request logger set by middleware.RequestLogger.
func getLogger(c *gin.Context) *zap.Logger {
	if l, exists := c.Get("logger"); exists {
		if logger, ok := l.(*zap.Logger); ok {
			return logger
		}
	}
	return zap.L()
}

// currentClient returns the bound client or aborts the request.
func currentClient(c *gin.Context) (*client.Client, bool) {
	cl := middleware.CurrentClient(c)
	if cl == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "client not bound"})
		return nil, false
	}
	return cl, true
}
