package services

import (
	"testing"
	"time"

	"pothole-ambulance-be/models"
)

func TestPriorityScore(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		weight    int
		upvotes   int64
		downvotes int64
		age       time.Duration
		want      int
	}{
		{"one day open", 5, 10, 2, 24 * time.Hour, 11},
		{"half day rounds up", 1, 0, 0, 12 * time.Hour, 1},
		{"just reported uses one hour floor", 4, 0, 0, 5 * time.Minute, 0},
		{"downvotes count double", 1, 0, 3, 24 * time.Hour, -5},
		{"negative half rounds up", 1, 0, 1, 12 * time.Hour, -1},
		{"long open high weight", 10, 6, 0, 48 * time.Hour, 26},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PriorityScore(tt.weight, tt.upvotes, tt.downvotes, now.Add(-tt.age), now)
			if got != tt.want {
				t.Errorf("PriorityScore(w=%d, up=%d, down=%d, age=%v) = %d, want %d",
					tt.weight, tt.upvotes, tt.downvotes, tt.age, got, tt.want)
			}
		})
	}
}

func TestSortRanked(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	task := func(desc string, score int, createdAt time.Time) RankedIssue {
		return RankedIssue{
			Issue:         models.Issue{Description: desc, CreatedAt: createdAt},
			PriorityScore: score,
		}
	}

	tasks := []RankedIssue{
		task("low", 2, base),
		task("high", 9, base),
		task("tie-newer", 5, base.Add(time.Hour)),
		task("tie-older", 5, base),
	}

	SortRanked(tasks)

	wantOrder := []string{"high", "tie-older", "tie-newer", "low"}
	for i, want := range wantOrder {
		if tasks[i].Description != want {
			t.Errorf("position %d: got %q, want %q", i, tasks[i].Description, want)
		}
	}
}
