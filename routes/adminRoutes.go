package routes

import (
	"pothole-ambulance-be/controllers"
	"pothole-ambulance-be/middlewares"

	"github.com/gin-gonic/gin"
)

// AdminRoutes sets up the admin management routes
func AdminRoutes(r *gin.Engine) {
	admin := r.Group("/api/admin")
	admin.Use(middlewares.AuthMiddleware(), middlewares.RequireRole("admin"))
	{
		admin.GET("/view-citizens", controllers.GetCitizens)
		admin.GET("/view-ambulances", controllers.GetAmbulances)
		admin.GET("/view-issues", controllers.GetIssues)
		admin.GET("/dashboard-stats", controllers.GetAdminDashboardStats)

		admin.POST("/create-ambulance", controllers.CreateAmbulance)
		admin.PUT("/ambulances/:id/status", controllers.ToggleAmbulanceStatus)
		admin.PUT("/ambulances/:id/reset-password", controllers.ResetAmbulancePassword)

		admin.DELETE("/issues/:id", controllers.AdminDeleteIssue)
	}
}
