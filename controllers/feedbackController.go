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

// SubmitFeedback records a citizen rating for a resolved issue.
func SubmitFeedback(c *gin.Context) {
	citizenID, ok := currentUserID(c)
	if !ok {
		return
	}

	issueID, err := primitive.ObjectIDFromHex(c.Param("issueId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue ID"})
		return
	}

	var input struct {
		Rating        int     `json:"rating" binding:"required"`
		AfterPhotoURL *string `json:"after_photo_url"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	feedback, err := services.SubmitFeedback(ctx, issueID, citizenID, input.Rating, input.AfterPhotoURL)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidRating):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrIssueNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrIssueNotResolved),
			errors.Is(err, services.ErrNoAssignedCrew),
			errors.Is(err, services.ErrDuplicateFeedback):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"message":  "Feedback submitted successfully",
		"feedback": feedback,
	})
}

// CheckFeedbackEligibility reports whether the caller may rate an issue.
func CheckFeedbackEligibility(c *gin.Context) {
	citizenID, ok := currentUserID(c)
	if !ok {
		return
	}

	issueID, err := primitive.ObjectIDFromHex(c.Param("issueId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	eligibility, err := services.CanSubmitFeedback(ctx, issueID, citizenID)
	if err != nil {
		if errors.Is(err, services.ErrIssueNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, eligibility)
}

// GetIssueFeedback returns the feedback for one issue, if any.
func GetIssueFeedback(c *gin.Context) {
	issueID, err := primitive.ObjectIDFromHex(c.Param("issueId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	feedback, err := services.GetIssueFeedback(ctx, issueID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, feedback)
}

// GetAmbulanceFeedback returns a crew's feedback history.
func GetAmbulanceFeedback(c *gin.Context) {
	ambulanceID, err := primitive.ObjectIDFromHex(c.Param("ambulanceId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ambulance ID"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	feedbackPage, err := services.GetAmbulanceFeedback(ctx, ambulanceID, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, feedbackPage)
}

// GetAmbulanceRating returns a crew's rolled-up citizen rating.
func GetAmbulanceRating(c *gin.Context) {
	ambulanceID, err := primitive.ObjectIDFromHex(c.Param("ambulanceId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ambulance ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stats, err := services.GetAmbulanceRating(ctx, ambulanceID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// VerifyFeedback marks a feedback row as officially verified.
func VerifyFeedback(c *gin.Context) {
	adminID, ok := currentUserID(c)
	if !ok {
		return
	}

	feedbackID, err := primitive.ObjectIDFromHex(c.Param("feedbackId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid feedback ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	feedback, err := services.VerifyFeedback(ctx, feedbackID, adminID)
	if err != nil {
		if errors.Is(err, services.ErrIssueNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Feedback not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Feedback verified successfully",
		"feedback": feedback,
	})
}

// GetUnverifiedFeedback lists feedback awaiting verification.
func GetUnverifiedFeedback(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	feedbackPage, err := services.GetUnverifiedFeedback(ctx, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, feedbackPage)
}
