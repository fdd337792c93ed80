package routes

import (
	"pothole-ambulance-be/controllers"

	"github.com/gin-gonic/gin"
)

// FileRoutes sets up the stored photo download route. Downloads are
// unauthenticated so photo URLs stay shareable.
func FileRoutes(r *gin.Engine) {
	files := r.Group("/api/files")
	{
		files.GET("/:id", controllers.ServeFile)
	}
}
