package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Feedback is a citizen's rating of a resolved issue's repair crew.
// One feedback row exists per (issue, citizen).
type Feedback struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	IssueID       primitive.ObjectID  `bson:"issueId" json:"issue_id"`
	CitizenID     primitive.ObjectID  `bson:"citizenId" json:"citizen_id"`
	AmbulanceID   primitive.ObjectID  `bson:"ambulanceId" json:"ambulance_id"`
	CitizenRating int                 `bson:"citizenRating" json:"citizen_rating"`
	AfterPhotoURL *string             `bson:"afterPhotoUrl,omitempty" json:"after_photo_url,omitempty"`
	RDOVerified   bool                `bson:"rdoVerified" json:"rdo_verified"`
	VerifiedBy    *primitive.ObjectID `bson:"verifiedBy,omitempty" json:"verified_by,omitempty"`
	VerifiedAt    *time.Time          `bson:"verifiedAt,omitempty" json:"verified_at,omitempty"`
	CreatedAt     time.Time           `bson:"createdAt" json:"createdAt"`
}

// ValidRating reports whether r is in the accepted [1,5] range.
func ValidRating(r int) bool {
	return r >= 1 && r <= 5
}
