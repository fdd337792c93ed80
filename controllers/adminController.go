package controllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"pothole-ambulance-be/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GetCitizens lists citizen accounts with report/vote activity.
func GetCitizens(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	citizens, err := services.ListCitizens(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, citizens)
}

// GetAmbulances lists crew accounts with units and workload.
func GetAmbulances(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	ambulances, err := services.ListAmbulances(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, ambulances)
}

// GetIssues is the admin issue listing: the scored feed without the
// citizen pagination defaults.
func GetIssues(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	issues, err := services.ListIssuesWithScores(ctx, c.Query("status"), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, issues)
}

// GetAdminDashboardStats returns the dashboard counters.
func GetAdminDashboardStats(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stats, err := services.GetDashboardStats(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// CreateAmbulance creates a crew account plus its unit.
func CreateAmbulance(c *gin.Context) {
	var input struct {
		FullName     string  `json:"full_name" binding:"required,max=100"`
		Email        string  `json:"email" binding:"required,email"`
		Password     string  `json:"password" binding:"required,min=6"`
		VehiclePlate string  `json:"vehicle_plate" binding:"required"`
		VehicleType  string  `json:"vehicle_type"`
		Hospital     *string `json:"hospital"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	user, err := services.CreateAmbulanceAccount(ctx, services.CreateAmbulanceInput{
		FullName:     input.FullName,
		Email:        input.Email,
		Password:     input.Password,
		VehiclePlate: input.VehiclePlate,
		VehicleType:  input.VehicleType,
		Hospital:     input.Hospital,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Ambulance account created successfully",
		"user":    user,
	})
}

// ToggleAmbulanceStatus activates or deactivates a crew account.
func ToggleAmbulanceStatus(c *gin.Context) {
	ambulanceID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ambulance ID"})
		return
	}

	var input struct {
		IsActive *bool `json:"is_active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := services.ToggleAmbulanceStatus(ctx, ambulanceID, *input.IsActive); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message := "Ambulance deactivated successfully"
	if *input.IsActive {
		message = "Ambulance activated successfully"
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
}

// ResetAmbulancePassword sets a new password on a crew account.
func ResetAmbulancePassword(c *gin.Context) {
	ambulanceID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ambulance ID"})
		return
	}

	var input struct {
		NewPassword string `json:"new_password" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := services.ResetAmbulancePassword(ctx, ambulanceID, input.NewPassword); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password reset successfully"})
}

// AdminDeleteIssue removes an issue and its votes and sub reports.
func AdminDeleteIssue(c *gin.Context) {
	issueID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := services.DeleteIssue(ctx, issueID); err != nil {
		if errors.Is(err, services.ErrIssueNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Issue deleted successfully"})
}
