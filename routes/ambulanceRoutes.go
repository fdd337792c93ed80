package routes

import (
	"pothole-ambulance-be/controllers"
	"pothole-ambulance-be/middlewares"

	"github.com/gin-gonic/gin"
)

// AmbulanceRoutes sets up the crew-facing routes
func AmbulanceRoutes(r *gin.Engine) {
	ambulance := r.Group("/api/ambulance")
	ambulance.Use(middlewares.AuthMiddleware(), middlewares.RequireRole("ambulance"))
	{
		ambulance.GET("/tasks", controllers.GetPriorityTasks)
	}
}
