package controllers

import (
	"net/http"

	"pothole-ambulance-be/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ServeFile streams a stored photo back to the client.
func ServeFile(c *gin.Context) {
	fileID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file ID"})
		return
	}

	stream, contentType, length, err := services.OpenImage(fileID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		return
	}
	defer stream.Close()

	c.DataFromReader(http.StatusOK, length, contentType, stream, nil)
}
