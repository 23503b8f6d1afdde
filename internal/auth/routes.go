package auth

import "github.com/gin-gonic/gin"

// RegisterRoutes registers auth and admin user-management routes
func RegisterRoutes(r *gin.Engine, handler *Handler, service *Service) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", handler.Register)
		authGroup.POST("/login", handler.Login)
		authGroup.GET("/me", service.RequireAuth(), handler.Me)
	}

	adminGroup := r.Group("/admin/users", service.RequireAuth())
	{
		adminGroup.GET("", handler.ListUsers)
		adminGroup.PUT("/:id/ban", handler.ToggleBan)
	}
}
