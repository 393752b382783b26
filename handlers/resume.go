package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ResumeHandler runs the client's refresh-on-resume subscriptions. Refresh
// failures are reported but never fatal.
func ResumeHandler(c *gin.Context) {
	cl, ok := currentClient(c)
	if !ok {
		return
	}
	if err := cl.Resumer.Resume(c.Request.Context()); err != nil {
		getLogger(c).Debug("Resume refresh incomplete", zap.Error(err))
		c.JSON(http.StatusOK, gin.H{"refreshed": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"refreshed": true})
}
