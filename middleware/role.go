package middleware

import (
	"net/http"

	"doclink/services/guard"
	"doclink/utils"

	"github.com/gin-gonic/gin"
)

// RequireRole gates a route group with the client's guard. Unauthenticated
// clients get 401 and a redirect to the login screen; clients with another
// role get 403 and a redirect to their own dashboard.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		cl := CurrentClient(c)
		if cl == nil {
			utils.JSONRedirect(c, http.StatusUnauthorized, "Please login first", guard.LoginPath)
			return
		}
		d := cl.Guard.Authorize(c.Request.Context(), role)
		if d.Allow {
			c.Next()
			return
		}
		if d.Redirect == guard.LoginPath {
			utils.JSONRedirect(c, http.StatusUnauthorized, "Please login first", d.Redirect)
			return
		}
		utils.JSONRedirect(c, http.StatusForbidden, "You don't have permission to access this page", d.Redirect)
	}
}
