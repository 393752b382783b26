package handlers

import (
	"net/http"

	"doclink/models"
	"doclink/services/guard"
	"doclink/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LoginHandler authenticates the client and returns its landing path.
func LoginHandler(c *gin.Context) {
	cl, ok := currentClient(c)
	if !ok {
		return
	}
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Email and password are required", err.Error())
		return
	}

	sess, landing, err := cl.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	getLogger(c).Info("Login succeeded", zap.String("userId", sess.UserID.String()), zap.String("role", sess.Role))
	c.JSON(http.StatusOK, gin.H{"redirect": landing, "role": sess.Role, "userId": sess.UserID})
}

// LogoutHandler tears the session down.
func LogoutHandler(c *gin.Context) {
	cl, ok := currentClient(c)
	if !ok {
		return
	}
	if err := cl.Logout(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"redirect": guard.LoginPath})
}

// SessionHandler reports the current session without the token.
func SessionHandler(c *gin.Context) {
	cl, ok := currentClient(c)
	if !ok {
		return
	}
	sess, err := cl.Store.Current(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"authenticated": sess.Authenticated(), "session": sess})
}
