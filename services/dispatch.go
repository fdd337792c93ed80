package services

import (
	"context"
	"math"
	"sort"
	"time"

	"pothole-ambulance-be/config"
	"pothole-ambulance-be/models"

	"go.mongodb.org/mongo-driver/bson"
)

// RankedIssue is a pending issue annotated with its live dispatch score.
type RankedIssue struct {
	models.Issue
	Upvotes       int64 `json:"upvotes"`
	Downvotes     int64 `json:"downvotes"`
	PriorityScore int   `json:"priorityScore"`
}

// PriorityScore computes the live dispatch ranking score:
//
//	round(upvotes - 2*downvotes + weight * (hoursOpen / 24))
//
// This deliberately differs from the stored weight: it weighs net vote
// sign harder and grows with how long the issue has sat open. Issues
// younger than an hour are scored as one hour old.
func PriorityScore(weight int, upvotes, downvotes int64, createdAt, now time.Time) int {
	hoursOpen := now.Sub(createdAt).Hours()
	if hoursOpen < 1 {
		hoursOpen = 1
	}
	score := float64(upvotes) - 2*float64(downvotes) + float64(weight)*(hoursOpen/24)
	// Half values always round up, so -1.5 becomes -1, not -2.
	return int(math.Floor(score + 0.5))
}

// SortRanked orders tasks by descending priority score. Equal scores are
// broken by creation time ascending, oldest first.
func SortRanked(tasks []RankedIssue) {
	sort.Slice(tasks, func(i, j int) bool {
		if tasks[i].PriorityScore != tasks[j].PriorityScore {
			return tasks[i].PriorityScore > tasks[j].PriorityScore
		}
		return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
	})
}

// RankTasks returns the crew work queue: pending issues only, scored live
// from the vote ledger on every call. No caching; crew polling volume is
// low enough that correctness wins.
func RankTasks(ctx context.Context) ([]RankedIssue, error) {
	issueCollection := config.GetCollection("issues")

	cursor, err := issueCollection.Find(ctx, bson.M{"status": models.StatusPending})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var issues []models.Issue
	if err := cursor.All(ctx, &issues); err != nil {
		return nil, err
	}

	now := time.Now()
	tasks := make([]RankedIssue, 0, len(issues))
	for _, issue := range issues {
		upvotes, downvotes, err := CountIssueVotes(ctx, issue.ID)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, RankedIssue{
			Issue:         issue,
			Upvotes:       upvotes,
			Downvotes:     downvotes,
			PriorityScore: PriorityScore(issue.Weight, upvotes, downvotes, issue.CreatedAt, now),
		})
	}

	SortRanked(tasks)
	return tasks, nil
}
