package services

import (
	"testing"

	"pothole-ambulance-be/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestClaimFilterRequiresPending(t *testing.T) {
	issueID := primitive.NewObjectID()

	filter := claimFilter(issueID)

	if got := filter["_id"]; got != issueID {
		t.Errorf("filter _id = %v, want %v", got, issueID)
	}
	if got := filter["status"]; got != models.StatusPending {
		t.Errorf("filter status = %v, want %v", got, models.StatusPending)
	}
	if len(filter) != 2 {
		t.Errorf("filter has %d conditions, want 2: %v", len(filter), filter)
	}
}

func TestResolveFilterRequiresClaimingCrew(t *testing.T) {
	issueID := primitive.NewObjectID()
	crewID := primitive.NewObjectID()

	filter := resolveFilter(issueID, crewID)

	if got := filter["_id"]; got != issueID {
		t.Errorf("filter _id = %v, want %v", got, issueID)
	}
	if got := filter["status"]; got != models.StatusAssigned {
		t.Errorf("filter status = %v, want %v", got, models.StatusAssigned)
	}
	if got := filter["ambulanceId"]; got != crewID {
		t.Errorf("filter ambulanceId = %v, want %v", got, crewID)
	}
	if len(filter) != 3 {
		t.Errorf("filter has %d conditions, want 3: %v", len(filter), filter)
	}
}
