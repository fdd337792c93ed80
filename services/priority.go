package services

import (
	"context"
	"time"

	"pothole-ambulance-be/config"
	"pothole-ambulance-be/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ComputeWeight converts an issue's vote counts and age into the bounded
// priority weight. Every 2 upvotes raise the priority by 1, every 3
// downvotes lower it by 1, and the age bucket adds a bonus for fresh
// issues and a penalty for stale ones. The result is clamped to
// [MinWeight, MaxWeight] and depends on nothing but its inputs.
func ComputeWeight(createdAt time.Time, upvotes, downvotes int, now time.Time) int {
	weight := 1

	weight += upvotes / 2
	weight -= downvotes / 3

	ageHours := now.Sub(createdAt).Hours()
	switch {
	case ageHours < 6:
		weight += 2
	case ageHours < 24:
		weight += 1
	case ageHours <= 72:
		// no adjustment
	case ageHours <= 168:
		weight -= 1
	default:
		weight -= 2
	}

	if weight > models.MaxWeight {
		weight = models.MaxWeight
	}
	if weight < models.MinWeight {
		weight = models.MinWeight
	}
	return weight
}

// TallyVotes splits a vote set into up and down counts. The ledger holds
// at most one row per (issue, user), so a re-vote never adds a row: the
// same value leaves the tallies untouched and a flip moves exactly one
// count across.
func TallyVotes(votes []models.Vote) (upvotes, downvotes int64) {
	for _, v := range votes {
		switch v.Value {
		case models.Upvote:
			upvotes++
		case models.Downvote:
			downvotes++
		}
	}
	return upvotes, downvotes
}

// CountIssueVotes reads the live vote set for an issue from the ledger.
func CountIssueVotes(ctx context.Context, issueID primitive.ObjectID) (upvotes, downvotes int64, err error) {
	voteCollection := config.GetCollection("votes")

	upvotes, err = voteCollection.CountDocuments(ctx, bson.M{"issue": issueID, "value": models.Upvote})
	if err != nil {
		return 0, 0, err
	}
	downvotes, err = voteCollection.CountDocuments(ctx, bson.M{"issue": issueID, "value": models.Downvote})
	if err != nil {
		return 0, 0, err
	}
	return upvotes, downvotes, nil
}

// RecomputeWeight recalculates an issue's weight from the current vote set
// and persists it. Called synchronously after creation, every vote cast,
// and every duplicate merge. If the persist fails after the vote was
// already recorded the weight is simply stale until the next trigger; the
// caller decides how to surface that.
func RecomputeWeight(ctx context.Context, issueID primitive.ObjectID) (int, error) {
	issueCollection := config.GetCollection("issues")

	var issue struct {
		CreatedAt time.Time `bson:"createdAt"`
	}
	err := issueCollection.FindOne(ctx, bson.M{"_id": issueID}).Decode(&issue)
	if err != nil {
		return 0, err
	}

	upvotes, downvotes, err := CountIssueVotes(ctx, issueID)
	if err != nil {
		return 0, err
	}

	weight := ComputeWeight(issue.CreatedAt, int(upvotes), int(downvotes), time.Now())

	_, err = issueCollection.UpdateOne(ctx, bson.M{"_id": issueID}, bson.M{
		"$set": bson.M{"weight": weight, "updatedAt": time.Now()},
	})
	if err != nil {
		return weight, err
	}
	return weight, nil
}
