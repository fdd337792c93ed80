package routes

import (
	"pothole-ambulance-be/controllers"
	"pothole-ambulance-be/middlewares"

	"github.com/gin-gonic/gin"
)

// IssueRoutes sets up the issue reporting, voting, and lifecycle routes
func IssueRoutes(r *gin.Engine) {
	issue := r.Group("/api/issues")
	issue.Use(middlewares.AuthMiddleware())
	{
		issue.GET("", controllers.GetAllIssues)
		issue.GET("/check-nearby", controllers.CheckNearby)
		issue.GET("/map", controllers.GetIssuesForMap)
		issue.GET("/votes/my-votes", controllers.GetMyVotes)
		issue.GET("/dashboard", middlewares.RequireRole("admin"), controllers.GetDashboard)
		issue.GET("/:id", controllers.GetIssueDetails)

		issue.POST("/report", middlewares.RequireRole("citizen"), middlewares.ReportRateLimiter(10), controllers.ReportIssue)
		issue.POST("/:id/vote", middlewares.RequireRole("citizen"), controllers.CastVote)

		issue.PUT("/:id/claim", middlewares.RequireRole("ambulance"), controllers.ClaimIssue)
		issue.PUT("/:id/resolve", middlewares.RequireRole("ambulance"), controllers.ResolveIssue)
	}
}
