package controllers

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"pothole-ambulance-be/config"
	"pothole-ambulance-be/models"
	"pothole-ambulance-be/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// readUploadedImage pulls the optional "image" form file and stores it,
// returning the public URL. The URL must be known before any issue or
// vote row is written so a failed upload never leaves half-written state.
func readUploadedImage(c *gin.Context, owner primitive.ObjectID) (*string, error) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return nil, nil // no image attached
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, services.MaxImageSize+1))
	if err != nil {
		return nil, err
	}

	stored, err := services.UploadImage(data, fileHeader.Header.Get("Content-Type"), fileHeader.Filename, owner)
	if err != nil {
		return nil, err
	}
	return &stored.URL, nil
}

// ReportIssue handles a citizen pothole report: either a new issue or a
// merge into a nearby master.
func ReportIssue(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	latStr := c.PostForm("lat")
	lonStr := c.PostForm("lon")
	description := c.PostForm("description")

	if latStr == "" || lonStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Location coordinates are required"})
		return
	}
	if description == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Description is required"})
		return
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil || lat < -90 || lat > 90 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid latitude"})
		return
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil || lon < -180 || lon > 180 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid longitude"})
		return
	}

	photoURL, err := readUploadedImage(c, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := services.ReportIssue(ctx, userID, services.ReportInput{
		Lat:           lat,
		Lon:           lon,
		Description:   description,
		IsDuplicate:   c.PostForm("isDuplicate") == "true",
		MasterIssueID: c.PostForm("masterIssueId"),
		PhotoURL:      photoURL,
	})
	if err != nil {
		if errors.Is(err, services.ErrIssueNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Master issue not found"})
			return
		}
		log.Println("Report error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, result)
}

// CastVote records a signed vote and returns the recomputed weight.
func CastVote(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	issueID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue ID"})
		return
	}

	var input struct {
		VoteValue int `json:"voteValue" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := services.CastVote(ctx, issueID, userID, input.VoteValue)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetMyVotes returns the caller's live vote set.
func GetMyVotes(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	votes, err := services.GetUserVotes(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve votes"})
		return
	}
	c.JSON(http.StatusOK, votes)
}

// CheckNearby runs the fixed-radius duplicate pre-check.
func CheckNearby(c *gin.Context) {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid latitude"})
		return
	}
	lon, err := strconv.ParseFloat(c.Query("lon"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid longitude"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	issue, found, err := services.FindNearby(ctx, lat, lon)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if !found {
		c.JSON(http.StatusOK, gin.H{"nearbyFound": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"nearbyFound": true, "existingIssue": issue})
}

// GetAllIssues returns the paginated citizen feed with vote scores.
func GetAllIssues(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	issues, err := services.ListIssuesWithScores(ctx, c.Query("status"), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, issues)
}

// GetIssueDetails returns one issue with votes, voters, and photos.
func GetIssueDetails(c *gin.Context) {
	issueID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	issue, err := services.GetIssueWithScore(ctx, issueID)
	if err != nil {
		if errors.Is(err, services.ErrIssueNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, issue)
}

// GetIssuesForMap returns unresolved issues for the map view.
func GetIssuesForMap(c *gin.Context) {
	issueCollection := config.GetCollection("issues")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	findOptions := options.Find().
		SetSort(bson.D{{Key: "weight", Value: -1}}).
		SetLimit(100)

	cursor, err := issueCollection.Find(ctx, bson.M{"status": bson.M{"$ne": models.StatusResolved}}, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer cursor.Close(ctx)

	issues := []models.Issue{}
	if err := cursor.All(ctx, &issues); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, issues)
}

// GetDashboard returns admin dashboard stats plus the hottest unresolved
// issues.
func GetDashboard(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stats, err := services.GetDashboardStats(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	hotSpots, err := services.GetHotSpots(ctx, 5)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats, "hotSpots": hotSpots})
}

// ClaimIssue atomically assigns a pending issue to the calling crew.
func ClaimIssue(c *gin.Context) {
	crewID, ok := currentUserID(c)
	if !ok {
		return
	}

	issueID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	issue, err := services.Claim(ctx, issueID, crewID)
	if err != nil {
		if errors.Is(err, services.ErrIssueNotAvailable) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, issue)
}

// ResolveIssue closes an assigned issue with proof-of-work photo and
// comment.
func ResolveIssue(c *gin.Context) {
	crewID, ok := currentUserID(c)
	if !ok {
		return
	}

	issueID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue ID"})
		return
	}

	photoURL, err := readUploadedImage(c, crewID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if photoURL == nil {
		// Clients may resolve with an already-hosted photo URL instead
		// of a fresh upload.
		if fallback := c.PostForm("photo_url"); fallback != "" {
			photoURL = &fallback
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	issue, err := services.Resolve(ctx, issueID, crewID, photoURL, c.PostForm("comment"))
	if err != nil {
		if errors.Is(err, services.ErrResolveConflict) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, issue)
}
