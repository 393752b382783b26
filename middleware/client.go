// File: middleware/client.go
package middleware

import (
	"net/http"

	"doclink/services/client"
	"doclink/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const clientKey = "client"

// cookieMaxAge keeps the client id for a year; the session itself expires sooner.
const cookieMaxAge = 365 * 24 * 60 * 60

// ClientMiddleware binds the request to the browser's client, assigning a new
// client id cookie when the request carries none or a malformed one.
func ClientMiddleware(reg *client.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(utils.ClientCookieName)
		if err != nil || !validClientID(id) {
			id = uuid.New().String()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(utils.ClientCookieName, id, cookieMaxAge, "/", "", false, true)
		}

		cl, err := reg.Get(c.Request.Context(), id)
		if err != nil {
			zap.L().Error("Failed to bind client", zap.String("clientId", id), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, utils.ErrorResponse{Message: "Internal server error"})
			return
		}
		c.Set(clientKey, cl)
		c.Next()
	}
}

// CurrentClient returns the client bound by ClientMiddleware.
func CurrentClient(c *gin.Context) *client.Client {
	if v, ok := c.Get(clientKey); ok {
		if cl, ok := v.(*client.Client); ok {
			return cl
		}
	}
	return nil
}

func validClientID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
