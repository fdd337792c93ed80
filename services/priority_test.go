package services

import (
	"testing"
	"time"

	"pothole-ambulance-be/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// replaceVote applies a vote with the ledger's semantics: at most one
// row per user, last value wins.
func replaceVote(votes []models.Vote, user primitive.ObjectID, value int) []models.Vote {
	for i := range votes {
		if votes[i].User == user {
			votes[i].Value = value
			return votes
		}
	}
	return append(votes, models.Vote{User: user, Value: value})
}

func TestComputeWeight(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		age       time.Duration
		upvotes   int
		downvotes int
		want      int
	}{
		{"fresh report no votes", 0, 0, 0, 3},
		{"fresh report one upvote", time.Hour, 1, 0, 3},
		{"day-old with support", 30 * time.Hour, 4, 0, 3},
		{"stale and contested", 200 * time.Hour, 10, 9, 1},
		{"clamped at maximum", time.Hour, 100, 0, 10},
		{"clamped at minimum", 200 * time.Hour, 0, 30, 1},
		{"six hour boundary", 6 * time.Hour, 4, 0, 4},
		{"one day boundary", 24 * time.Hour, 4, 0, 3},
		{"three day boundary", 72 * time.Hour, 4, 0, 3},
		{"one week boundary", 168 * time.Hour, 4, 0, 2},
		{"past one week", 169 * time.Hour, 4, 0, 1},
		{"downvotes in threes", 2 * time.Hour, 0, 5, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeWeight(now.Add(-tt.age), tt.upvotes, tt.downvotes, now)
			if got != tt.want {
				t.Errorf("ComputeWeight(age=%v, up=%d, down=%d) = %d, want %d",
					tt.age, tt.upvotes, tt.downvotes, got, tt.want)
			}
		})
	}
}

func TestTallyVotes(t *testing.T) {
	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()
	carol := primitive.NewObjectID()

	tests := []struct {
		name     string
		votes    []models.Vote
		wantUp   int64
		wantDown int64
	}{
		{"empty ledger", nil, 0, 0},
		{"single upvote", []models.Vote{{User: alice, Value: models.Upvote}}, 1, 0},
		{"single downvote", []models.Vote{{User: alice, Value: models.Downvote}}, 0, 1},
		{"mixed", []models.Vote{
			{User: alice, Value: models.Upvote},
			{User: bob, Value: models.Downvote},
			{User: carol, Value: models.Upvote},
		}, 2, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			up, down := TallyVotes(tt.votes)
			if up != tt.wantUp || down != tt.wantDown {
				t.Errorf("TallyVotes = (%d, %d), want (%d, %d)", up, down, tt.wantUp, tt.wantDown)
			}
		})
	}
}

func TestRevoteNeverDoubleCounts(t *testing.T) {
	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()

	ledger := replaceVote(nil, alice, models.Upvote)
	ledger = replaceVote(ledger, bob, models.Upvote)

	up, down := TallyVotes(ledger)
	if up != 2 || down != 0 {
		t.Fatalf("after two upvotes: TallyVotes = (%d, %d), want (2, 0)", up, down)
	}

	// Re-voting the same value replaces the row in place: no new row,
	// tallies unchanged.
	ledger = replaceVote(ledger, alice, models.Upvote)
	if len(ledger) != 2 {
		t.Fatalf("same-value re-vote grew the ledger to %d rows, want 2", len(ledger))
	}
	up, down = TallyVotes(ledger)
	if up != 2 || down != 0 {
		t.Errorf("after same-value re-vote: TallyVotes = (%d, %d), want (2, 0)", up, down)
	}

	// A flip moves exactly one count across: up drops by one, down rises
	// by one, the total stays put.
	ledger = replaceVote(ledger, alice, models.Downvote)
	if len(ledger) != 2 {
		t.Fatalf("flip grew the ledger to %d rows, want 2", len(ledger))
	}
	upAfter, downAfter := TallyVotes(ledger)
	if upAfter != up-1 || downAfter != down+1 {
		t.Errorf("after flip: TallyVotes = (%d, %d), want (%d, %d)", upAfter, downAfter, up-1, down+1)
	}
	if upAfter+downAfter != up+down {
		t.Errorf("flip changed the total vote count: %d, want %d", upAfter+downAfter, up+down)
	}
}

func TestComputeWeightDeterministic(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	createdAt := now.Add(-36 * time.Hour)

	first := ComputeWeight(createdAt, 7, 2, now)
	for i := 0; i < 10; i++ {
		if got := ComputeWeight(createdAt, 7, 2, now); got != first {
			t.Fatalf("ComputeWeight not deterministic: got %d, want %d", got, first)
		}
	}
}

func TestComputeWeightAlwaysInRange(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	for up := 0; up <= 40; up += 5 {
		for down := 0; down <= 40; down += 5 {
			for _, age := range []time.Duration{0, 12 * time.Hour, 100 * time.Hour, 500 * time.Hour} {
				got := ComputeWeight(now.Add(-age), up, down, now)
				if got < 1 || got > 10 {
					t.Errorf("ComputeWeight(age=%v, up=%d, down=%d) = %d, out of range [1,10]",
						age, up, down, got)
				}
			}
		}
	}
}
