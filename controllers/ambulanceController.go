package controllers

import (
	"context"
	"net/http"
	"time"

	"pothole-ambulance-be/services"

	"github.com/gin-gonic/gin"
)

// GetPriorityTasks returns the crew work queue, ranked by the live
// dispatch score. Recomputed in full on every call.
func GetPriorityTasks(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tasks, err := services.RankTasks(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, tasks)
}
