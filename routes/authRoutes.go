package routes

import (
	"pothole-ambulance-be/controllers"
	"pothole-ambulance-be/middlewares"

	"github.com/gin-gonic/gin"
)

// AuthRoutes sets up the authentication routes
func AuthRoutes(r *gin.Engine) {
	auth := r.Group("/api/auth")
	{
		auth.POST("/register", controllers.RegisterCitizen)
		auth.POST("/login", controllers.Login)
		auth.POST("/admin/create-user", middlewares.AuthMiddleware(), middlewares.RequireRole("admin"), controllers.AdminCreateUser)
		auth.GET("/users", middlewares.AuthMiddleware(), middlewares.RequireRole("admin"), controllers.GetUsers)
	}
}
