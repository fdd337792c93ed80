package services

import (
	"context"
	"math"
	"time"

	"pothole-ambulance-be/config"
	"pothole-ambulance-be/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MeanRating is the arithmetic mean of the ratings, rounded to one
// decimal. Zero when there are no ratings.
func MeanRating(ratings []int) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	mean := float64(sum) / float64(len(ratings))
	return math.Round(mean*10) / 10
}

// SubmitFeedback records a citizen's rating of a resolved issue's crew
// and rolls the crew's average forward. One feedback per (issue, citizen).
func SubmitFeedback(ctx context.Context, issueID, citizenID primitive.ObjectID, rating int, afterPhotoURL *string) (*models.Feedback, error) {
	if !models.ValidRating(rating) {
		return nil, ErrInvalidRating
	}

	issueCollection := config.GetCollection("issues")
	feedbackCollection := config.GetCollection("feedback")

	var issue models.Issue
	err := issueCollection.FindOne(ctx, bson.M{"_id": issueID}).Decode(&issue)
	if err == mongo.ErrNoDocuments {
		return nil, ErrIssueNotFound
	}
	if err != nil {
		return nil, err
	}

	if issue.Status != models.StatusResolved {
		return nil, ErrIssueNotResolved
	}
	if issue.AmbulanceID == nil {
		return nil, ErrNoAssignedCrew
	}

	count, err := feedbackCollection.CountDocuments(ctx, bson.M{"issueId": issueID, "citizenId": citizenID})
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateFeedback
	}

	feedback := models.Feedback{
		ID:            primitive.NewObjectID(),
		IssueID:       issueID,
		CitizenID:     citizenID,
		AmbulanceID:   *issue.AmbulanceID,
		CitizenRating: rating,
		AfterPhotoURL: afterPhotoURL,
		RDOVerified:   false,
		CreatedAt:     time.Now(),
	}

	if _, err := feedbackCollection.InsertOne(ctx, feedback); err != nil {
		return nil, err
	}

	if err := UpdateAmbulanceRating(ctx, *issue.AmbulanceID); err != nil {
		return nil, err
	}

	return &feedback, nil
}

// UpdateAmbulanceRating recomputes a crew's average rating from all of
// its feedback and stores it on the unit.
func UpdateAmbulanceRating(ctx context.Context, ambulanceID primitive.ObjectID) error {
	feedbackCollection := config.GetCollection("feedback")
	unitCollection := config.GetCollection("ambulance_units")

	cursor, err := feedbackCollection.Find(ctx, bson.M{"ambulanceId": ambulanceID})
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	var feedbacks []models.Feedback
	if err := cursor.All(ctx, &feedbacks); err != nil {
		return err
	}

	ratings := make([]int, 0, len(feedbacks))
	for _, f := range feedbacks {
		if models.ValidRating(f.CitizenRating) {
			ratings = append(ratings, f.CitizenRating)
		}
	}

	_, err = unitCollection.UpdateOne(ctx,
		bson.M{"driverId": ambulanceID},
		bson.M{"$set": bson.M{
			"averageRating": MeanRating(ratings),
			"totalRatings":  len(ratings),
		}},
	)
	return err
}

// FeedbackEligibility explains whether a citizen may rate an issue yet.
type FeedbackEligibility struct {
	CanSubmit       bool    `json:"canSubmit"`
	Reason          string  `json:"reason,omitempty"`
	AmbulanceID     string  `json:"ambulance_id,omitempty"`
	ResolutionPhoto *string `json:"resolution_photo,omitempty"`
}

// CanSubmitFeedback checks the feedback preconditions without writing.
func CanSubmitFeedback(ctx context.Context, issueID, citizenID primitive.ObjectID) (*FeedbackEligibility, error) {
	issueCollection := config.GetCollection("issues")
	feedbackCollection := config.GetCollection("feedback")

	var issue models.Issue
	err := issueCollection.FindOne(ctx, bson.M{"_id": issueID}).Decode(&issue)
	if err == mongo.ErrNoDocuments {
		return nil, ErrIssueNotFound
	}
	if err != nil {
		return nil, err
	}

	if issue.Status != models.StatusResolved {
		return &FeedbackEligibility{CanSubmit: false, Reason: "Issue not resolved yet"}, nil
	}
	if issue.ResolutionPhoto == nil {
		return &FeedbackEligibility{CanSubmit: false, Reason: "Resolution photo not available"}, nil
	}
	if issue.AmbulanceID == nil {
		return &FeedbackEligibility{CanSubmit: false, Reason: "No ambulance was assigned to this issue"}, nil
	}

	count, err := feedbackCollection.CountDocuments(ctx, bson.M{"issueId": issueID, "citizenId": citizenID})
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return &FeedbackEligibility{CanSubmit: false, Reason: "You have already submitted feedback for this issue"}, nil
	}

	return &FeedbackEligibility{
		CanSubmit:       true,
		AmbulanceID:     issue.AmbulanceID.Hex(),
		ResolutionPhoto: issue.ResolutionPhoto,
	}, nil
}

// GetIssueFeedback returns the feedback row for an issue, if any.
func GetIssueFeedback(ctx context.Context, issueID primitive.ObjectID) (*models.Feedback, error) {
	feedbackCollection := config.GetCollection("feedback")

	var feedback models.Feedback
	err := feedbackCollection.FindOne(ctx, bson.M{"issueId": issueID}).Decode(&feedback)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &feedback, nil
}

// FeedbackPage is a paginated slice of feedback rows.
type FeedbackPage struct {
	Feedbacks []models.Feedback `json:"feedbacks"`
	Total     int64             `json:"total"`
	Page      int               `json:"page"`
	Limit     int               `json:"limit"`
}

func pagedFeedback(ctx context.Context, filter bson.M, page, limit int, ascending bool) (*FeedbackPage, error) {
	feedbackCollection := config.GetCollection("feedback")

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	total, err := feedbackCollection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, err
	}

	order := -1
	if ascending {
		order = 1
	}
	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: order}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := feedbackCollection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	feedbacks := []models.Feedback{}
	if err := cursor.All(ctx, &feedbacks); err != nil {
		return nil, err
	}

	return &FeedbackPage{Feedbacks: feedbacks, Total: total, Page: page, Limit: limit}, nil
}

// GetAmbulanceFeedback returns a crew's feedback history, newest first.
func GetAmbulanceFeedback(ctx context.Context, ambulanceID primitive.ObjectID, page, limit int) (*FeedbackPage, error) {
	return pagedFeedback(ctx, bson.M{"ambulanceId": ambulanceID}, page, limit, false)
}

// GetUnverifiedFeedback returns feedback awaiting RDO verification,
// oldest first.
func GetUnverifiedFeedback(ctx context.Context, page, limit int) (*FeedbackPage, error) {
	return pagedFeedback(ctx, bson.M{"rdoVerified": false}, page, limit, true)
}

// RatingStats is a crew's rolled-up citizen rating.
type RatingStats struct {
	AverageRating float64 `json:"average_rating"`
	TotalRatings  int     `json:"total_ratings"`
}

// GetAmbulanceRating computes a crew's rating stats from the feedback rows.
func GetAmbulanceRating(ctx context.Context, ambulanceID primitive.ObjectID) (*RatingStats, error) {
	feedbackCollection := config.GetCollection("feedback")

	cursor, err := feedbackCollection.Find(ctx, bson.M{"ambulanceId": ambulanceID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var feedbacks []models.Feedback
	if err := cursor.All(ctx, &feedbacks); err != nil {
		return nil, err
	}

	ratings := make([]int, 0, len(feedbacks))
	for _, f := range feedbacks {
		if models.ValidRating(f.CitizenRating) {
			ratings = append(ratings, f.CitizenRating)
		}
	}

	return &RatingStats{AverageRating: MeanRating(ratings), TotalRatings: len(ratings)}, nil
}

// VerifyFeedback marks a feedback row as officially verified by an admin.
func VerifyFeedback(ctx context.Context, feedbackID, adminID primitive.ObjectID) (*models.Feedback, error) {
	feedbackCollection := config.GetCollection("feedback")

	now := time.Now()
	var feedback models.Feedback
	err := feedbackCollection.FindOneAndUpdate(ctx,
		bson.M{"_id": feedbackID},
		bson.M{"$set": bson.M{
			"rdoVerified": true,
			"verifiedAt":  now,
			"verifiedBy":  adminID,
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&feedback)
	if err == mongo.ErrNoDocuments {
		return nil, ErrIssueNotFound
	}
	if err != nil {
		return nil, err
	}
	return &feedback, nil
}
