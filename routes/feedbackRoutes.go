package routes

import (
	"pothole-ambulance-be/controllers"
	"pothole-ambulance-be/middlewares"

	"github.com/gin-gonic/gin"
)

// FeedbackRoutes sets up the citizen rating routes
func FeedbackRoutes(r *gin.Engine) {
	feedback := r.Group("/api/feedback")
	feedback.Use(middlewares.AuthMiddleware())
	{
		feedback.POST("/issues/:issueId/feedback", middlewares.RequireRole("citizen"), controllers.SubmitFeedback)
		feedback.GET("/issues/:issueId/feedback/check", middlewares.RequireRole("citizen"), controllers.CheckFeedbackEligibility)
		feedback.GET("/issues/:issueId/feedback", controllers.GetIssueFeedback)

		feedback.GET("/ambulance/:ambulanceId/feedback", middlewares.RequireRole("ambulance", "admin"), controllers.GetAmbulanceFeedback)
		feedback.GET("/ambulance/:ambulanceId/rating", controllers.GetAmbulanceRating)

		feedback.PUT("/verify/:feedbackId", middlewares.RequireRole("admin"), controllers.VerifyFeedback)
		feedback.GET("/unverified", middlewares.RequireRole("admin"), controllers.GetUnverifiedFeedback)
	}
}
