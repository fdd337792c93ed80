package models

import "testing"

func TestValidTransition(t *testing.T) {
	tests := []struct {
		from IssueStatus
		to   IssueStatus
		want bool
	}{
		{StatusPending, StatusAssigned, true},
		{StatusAssigned, StatusResolved, true},
		{StatusPending, StatusResolved, false},
		{StatusAssigned, StatusPending, false},
		{StatusResolved, StatusPending, false},
		{StatusResolved, StatusAssigned, false},
		{StatusPending, StatusPending, false},
		{StatusDelayed, StatusAssigned, false},
		{StatusPending, StatusDelayed, false},
	}

	for _, tt := range tests {
		if got := ValidTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("ValidTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}
