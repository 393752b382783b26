package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ScreenHandler answers whether the client may open the screen at ?path=.
func ScreenHandler(c *gin.Context) {
	cl, ok := currentClient(c)
	if !ok {
		return
	}
	path := c.Query("path")
	if path == "" {
		path = "/"
	}
	d := cl.Guard.AuthorizePath(c.Request.Context(), path)
	c.JSON(http.StatusOK, gin.H{
		"path":     path,
		"allow":    d.Allow,
		"redirect": d.Redirect,
		"notFound": d.NotFound,
	})
}
