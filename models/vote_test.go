package models

import "testing"

func TestValidVoteValue(t *testing.T) {
	tests := []struct {
		value int
		want  bool
	}{
		{Upvote, true},
		{Downvote, true},
		{0, false},
		{2, false},
		{-2, false},
	}

	for _, tt := range tests {
		if got := ValidVoteValue(tt.value); got != tt.want {
			t.Errorf("ValidVoteValue(%d) = %v, want %v", tt.value, got, tt.want)
		}
	}
}
