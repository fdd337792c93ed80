package services

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"pothole-ambulance-be/config"
	"pothole-ambulance-be/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultNearbyRadiusMeters = 50

// NearbyRadiusMeters returns the fixed duplicate-detection radius.
// External policy, configured via NEARBY_RADIUS_METERS.
func NearbyRadiusMeters() float64 {
	if v := os.Getenv("NEARBY_RADIUS_METERS"); v != "" {
		if radius, err := strconv.ParseFloat(v, 64); err == nil && radius > 0 {
			return radius
		}
	}
	return defaultNearbyRadiusMeters
}

// VoteResult is what a vote cast returns to the citizen: the raw ledger
// outcome plus the freshly recomputed weight. If persisting the weight
// failed the vote still stands and WeightStale is set.
type VoteResult struct {
	Result      string `json:"result"`
	NewWeight   int    `json:"new_weight"`
	WeightStale bool   `json:"weight_stale,omitempty"`
}

// upsertVote atomically replaces the (issue, user) vote row with value.
// The unique compound index guarantees at most one live row per pair, so
// concurrent upserts from different users never interfere and re-votes
// from the same user serialize to last-committed-wins.
func upsertVote(ctx context.Context, issueID, userID primitive.ObjectID, value int) (*mongo.UpdateResult, error) {
	voteCollection := config.GetCollection("votes")

	now := time.Now()
	return voteCollection.UpdateOne(ctx,
		bson.M{"issue": issueID, "user": userID},
		bson.M{
			"$set":         bson.M{"value": value, "updatedAt": now},
			"$setOnInsert": bson.M{"createdAt": now},
		},
		options.Update().SetUpsert(true),
	)
}

// CastVote records a signed vote and synchronously recomputes the issue's
// weight. A re-vote with the same value is a no-op; a changed value is an
// atomic swap, never a double count.
func CastVote(ctx context.Context, issueID, userID primitive.ObjectID, value int) (*VoteResult, error) {
	if !models.ValidVoteValue(value) {
		return nil, ErrInvalidVoteValue
	}

	issueCollection := config.GetCollection("issues")
	count, err := issueCollection.CountDocuments(ctx, bson.M{"_id": issueID})
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrIssueNotFound
	}

	updateResult, err := upsertVote(ctx, issueID, userID, value)
	if err != nil {
		return nil, err
	}

	result := "unchanged"
	switch {
	case updateResult.UpsertedCount > 0:
		result = "created"
	case updateResult.ModifiedCount > 0:
		result = "updated"
	}

	// The vote is durably recorded at this point. A failed recompute
	// leaves the weight stale until the next trigger; it is surfaced,
	// not rolled back.
	weight, err := RecomputeWeight(ctx, issueID)
	if err != nil {
		log.Printf("weight recompute failed for issue %s after vote: %v", issueID.Hex(), err)
		return &VoteResult{Result: result, NewWeight: weight, WeightStale: true}, nil
	}

	return &VoteResult{Result: result, NewWeight: weight}, nil
}

// UserVote is one entry of a citizen's vote history.
type UserVote struct {
	IssueID primitive.ObjectID `json:"issue_id"`
	Value   int                `json:"vote_value"`
}

// GetUserVotes returns all live votes cast by a user. Pure read.
func GetUserVotes(ctx context.Context, userID primitive.ObjectID) ([]UserVote, error) {
	voteCollection := config.GetCollection("votes")

	cursor, err := voteCollection.Find(ctx, bson.M{"user": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var votes []models.Vote
	if err := cursor.All(ctx, &votes); err != nil {
		return nil, err
	}

	userVotes := make([]UserVote, 0, len(votes))
	for _, v := range votes {
		userVotes = append(userVotes, UserVote{IssueID: v.Issue, Value: v.Value})
	}
	return userVotes, nil
}

// FindNearby looks for a non-resolved issue within the configured radius
// of the given coordinates. Used as the duplicate pre-check before a new
// report becomes its own issue.
func FindNearby(ctx context.Context, lat, lon float64) (*models.Issue, bool, error) {
	issueCollection := config.GetCollection("issues")

	point := models.GeoPoint{Longitude: lon, Latitude: lat}
	filter := bson.M{
		"status": bson.M{"$ne": models.StatusResolved},
		"location": bson.M{
			"$nearSphere": bson.M{
				"$geometry":    point.GeoJSON(),
				"$maxDistance": NearbyRadiusMeters(),
			},
		},
	}

	var issue models.Issue
	err := issueCollection.FindOne(ctx, filter).Decode(&issue)
	if err == mongo.ErrNoDocuments {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &issue, true, nil
}

// ReportInput carries a validated citizen report.
type ReportInput struct {
	Lat           float64
	Lon           float64
	Description   string
	IsDuplicate   bool
	MasterIssueID string
	PhotoURL      *string
}

// ReportResult is the report endpoint's wire shape: either a freshly
// created issue or the id of the master the report was merged into.
type ReportResult struct {
	Status  string        `json:"status"`
	Issue   *models.Issue `json:"issue,omitempty"`
	IssueID string        `json:"issueId,omitempty"`
}

// ReportIssue creates a new issue from a citizen report, or merges it
// into an existing master as a SubReport plus one implicit upvote. Both
// paths finish with a synchronous weight recompute.
func ReportIssue(ctx context.Context, userID primitive.ObjectID, input ReportInput) (*ReportResult, error) {
	if input.IsDuplicate && input.MasterIssueID != "" {
		masterID, err := primitive.ObjectIDFromHex(input.MasterIssueID)
		if err != nil {
			return nil, ErrIssueNotFound
		}
		return mergeReport(ctx, userID, masterID, input)
	}
	return createIssue(ctx, userID, input)
}

func mergeReport(ctx context.Context, userID, masterID primitive.ObjectID, input ReportInput) (*ReportResult, error) {
	issueCollection := config.GetCollection("issues")
	subReportCollection := config.GetCollection("sub_reports")

	count, err := issueCollection.CountDocuments(ctx, bson.M{"_id": masterID})
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrIssueNotFound
	}

	// The duplicate sighting counts as one upvote on the master.
	if _, err := upsertVote(ctx, masterID, userID, models.Upvote); err != nil {
		return nil, err
	}

	if _, err := RecomputeWeight(ctx, masterID); err != nil {
		log.Printf("weight recompute failed for merged issue %s: %v", masterID.Hex(), err)
	}

	subReport := models.SubReport{
		ID:            primitive.NewObjectID(),
		MasterIssueID: masterID,
		ReporterID:    userID,
		PhotoURL:      input.PhotoURL,
		Comment:       input.Description,
		CreatedAt:     time.Now(),
	}
	if _, err := subReportCollection.InsertOne(ctx, subReport); err != nil {
		return nil, err
	}

	return &ReportResult{Status: "merged", IssueID: masterID.Hex()}, nil
}

func createIssue(ctx context.Context, userID primitive.ObjectID, input ReportInput) (*ReportResult, error) {
	issueCollection := config.GetCollection("issues")
	subReportCollection := config.GetCollection("sub_reports")

	now := time.Now()
	issue := models.Issue{
		ID:          primitive.NewObjectID(),
		Description: input.Description,
		Location:    models.GeoPoint{Longitude: input.Lon, Latitude: input.Lat},
		Status:      models.StatusPending,
		Weight:      models.MinWeight,
		CreatedBy:   userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := issueCollection.InsertOne(ctx, issue); err != nil {
		return nil, err
	}

	// The reporter's own upvote seeds the vote set.
	if _, err := upsertVote(ctx, issue.ID, userID, models.Upvote); err != nil {
		return nil, err
	}

	weight, err := RecomputeWeight(ctx, issue.ID)
	if err != nil {
		log.Printf("initial weight recompute failed for issue %s: %v", issue.ID.Hex(), err)
		weight = issue.Weight
	}
	issue.Weight = weight

	if input.PhotoURL != nil {
		subReport := models.SubReport{
			ID:            primitive.NewObjectID(),
			MasterIssueID: issue.ID,
			ReporterID:    userID,
			PhotoURL:      input.PhotoURL,
			Comment:       input.Description,
			CreatedAt:     now,
		}
		if _, err := subReportCollection.InsertOne(ctx, subReport); err != nil {
			return nil, err
		}
	}

	return &ReportResult{Status: "created", Issue: &issue}, nil
}

// IssueWithScore is an issue enriched with its live vote tally and the
// photo evidence collected from sub reports.
type IssueWithScore struct {
	models.Issue
	VoteScore  int64                `json:"vote_score"`
	TotalVotes int64                `json:"total_votes"`
	Voters     []primitive.ObjectID `json:"voters,omitempty"`
	Photos     []string             `json:"photos"`
	PhotoCount int                  `json:"photo_count"`
	FirstPhoto *string              `json:"first_photo,omitempty"`
}

func issuePhotos(ctx context.Context, issueID primitive.ObjectID) ([]string, error) {
	subReportCollection := config.GetCollection("sub_reports")

	cursor, err := subReportCollection.Find(ctx, bson.M{"masterIssueId": issueID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var subReports []models.SubReport
	if err := cursor.All(ctx, &subReports); err != nil {
		return nil, err
	}

	photos := make([]string, 0, len(subReports))
	for _, sr := range subReports {
		if sr.PhotoURL != nil && *sr.PhotoURL != "" {
			photos = append(photos, *sr.PhotoURL)
		}
	}
	return photos, nil
}

func scoreIssue(ctx context.Context, issue models.Issue, withVoters bool) (IssueWithScore, error) {
	voteCollection := config.GetCollection("votes")

	cursor, err := voteCollection.Find(ctx, bson.M{"issue": issue.ID})
	if err != nil {
		return IssueWithScore{}, err
	}
	defer cursor.Close(ctx)

	var votes []models.Vote
	if err := cursor.All(ctx, &votes); err != nil {
		return IssueWithScore{}, err
	}

	upvotes, downvotes := TallyVotes(votes)
	scored := IssueWithScore{
		Issue:      issue,
		VoteScore:  upvotes - downvotes,
		TotalVotes: upvotes + downvotes,
	}
	if withVoters {
		for _, v := range votes {
			scored.Voters = append(scored.Voters, v.User)
		}
	}

	photos, err := issuePhotos(ctx, issue.ID)
	if err != nil {
		return IssueWithScore{}, err
	}
	scored.Photos = photos
	scored.PhotoCount = len(photos)
	if len(photos) > 0 {
		scored.FirstPhoto = &photos[0]
	}
	return scored, nil
}

// ListIssuesWithScores returns the paginated citizen feed, newest first,
// optionally filtered by status.
func ListIssuesWithScores(ctx context.Context, status string, page, limit int) ([]IssueWithScore, error) {
	issueCollection := config.GetCollection("issues")

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	filter := bson.M{}
	if status != "" && status != "all" {
		filter["status"] = status
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := issueCollection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var issues []models.Issue
	if err := cursor.All(ctx, &issues); err != nil {
		return nil, err
	}

	scored := make([]IssueWithScore, 0, len(issues))
	for _, issue := range issues {
		s, err := scoreIssue(ctx, issue, false)
		if err != nil {
			return nil, err
		}
		scored = append(scored, s)
	}
	return scored, nil
}

// GetIssueWithScore returns one issue with its vote tally, voter list,
// and photo evidence.
func GetIssueWithScore(ctx context.Context, issueID primitive.ObjectID) (*IssueWithScore, error) {
	issueCollection := config.GetCollection("issues")

	var issue models.Issue
	err := issueCollection.FindOne(ctx, bson.M{"_id": issueID}).Decode(&issue)
	if err == mongo.ErrNoDocuments {
		return nil, ErrIssueNotFound
	}
	if err != nil {
		return nil, err
	}

	scored, err := scoreIssue(ctx, issue, true)
	if err != nil {
		return nil, err
	}
	return &scored, nil
}

// DeleteIssue removes an issue and cascades its votes and sub reports.
// Admin only.
func DeleteIssue(ctx context.Context, issueID primitive.ObjectID) error {
	issueCollection := config.GetCollection("issues")
	voteCollection := config.GetCollection("votes")
	subReportCollection := config.GetCollection("sub_reports")

	result, err := issueCollection.DeleteOne(ctx, bson.M{"_id": issueID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrIssueNotFound
	}

	if _, err := voteCollection.DeleteMany(ctx, bson.M{"issue": issueID}); err != nil {
		return err
	}
	_, err = subReportCollection.DeleteMany(ctx, bson.M{"masterIssueId": issueID})
	return err
}
