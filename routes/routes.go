package routes

import (
	"time"

	"doclink/handlers"
	"doclink/middleware"
	"doclink/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.Health)
}

// RegisterSessionRoutes registers login, logout, screen checks and resume.
func RegisterSessionRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	api.POST("/auth/login", hb.Login)
	api.POST("/auth/logout", hb.Logout)
	api.GET("/auth/session", hb.Session)
	api.GET("/screens", hb.Screen)
	api.POST("/resume", hb.Resume)
	api.GET("/doctors", hb.ListDoctors)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(utils.ErrorHandler())
	r.Use(middleware.RequestLogger(hb.Logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     hb.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: !allowsAny(hb.AllowedOrigins),
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware(hb.MaxRequestsPerMin))

	RegisterHealthRoute(r, hb)

	api := r.Group("/api")
	api.Use(middleware.ClientMiddleware(hb.Registry))
	RegisterSessionRoutes(api, hb)
	RegisterPatientRoutes(api, hb)
	RegisterDoctorRoutes(api, hb)
	RegisterAdminRoutes(api, hb)
}

func allowsAny(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
