package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// IssueStatus enum
type IssueStatus string

const (
	StatusPending  IssueStatus = "pending"
	StatusAssigned IssueStatus = "assigned"
	StatusResolved IssueStatus = "resolved"
	// StatusDelayed is a display-only bucket used by dashboards for old
	// pending issues; it is never written to the store.
	StatusDelayed IssueStatus = "delayed"
)

const (
	// MinWeight and MaxWeight bound the persisted priority weight.
	MinWeight = 1
	MaxWeight = 10
)

// ValidTransition reports whether the issue lifecycle allows moving from
// one stored status to another. Transitions are monotonic:
// pending -> assigned -> resolved, nothing else.
func ValidTransition(from, to IssueStatus) bool {
	switch from {
	case StatusPending:
		return to == StatusAssigned
	case StatusAssigned:
		return to == StatusResolved
	default:
		return false
	}
}

// Issue represents a reported road hazard
type Issue struct {
	ID                primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Description       string              `bson:"description" json:"description"`
	Location          GeoPoint            `bson:"location" json:"location"`
	Status            IssueStatus         `bson:"status" json:"status"`
	Weight            int                 `bson:"weight" json:"weight"`
	CreatedBy         primitive.ObjectID  `bson:"createdBy" json:"createdBy"`
	AmbulanceID       *primitive.ObjectID `bson:"ambulanceId,omitempty" json:"ambulanceId,omitempty"`
	AssignedAt        *time.Time          `bson:"assignedAt,omitempty" json:"assignedAt,omitempty"`
	ResolvedAt        *time.Time          `bson:"resolvedAt,omitempty" json:"resolvedAt,omitempty"`
	ResolutionPhoto   *string             `bson:"resolutionPhoto,omitempty" json:"resolutionPhoto,omitempty"`
	ResolutionComment *string             `bson:"resolutionComment,omitempty" json:"resolutionComment,omitempty"`
	CreatedAt         time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// SubReport is a citizen's duplicate sighting merged into an existing
// issue. It carries no weight of its own; it is evidence on the master.
type SubReport struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MasterIssueID primitive.ObjectID `bson:"masterIssueId" json:"masterIssueId"`
	ReporterID    primitive.ObjectID `bson:"reporterId" json:"reporterId"`
	PhotoURL      *string            `bson:"photoUrl,omitempty" json:"photoUrl,omitempty"`
	Comment       string             `bson:"comment" json:"comment"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}

// EnsureIssueIndexes creates the 2dsphere index backing the nearby query
func EnsureIssueIndexes(collection *mongo.Collection) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys: bson.D{{Key: "location", Value: "2dsphere"}},
	}

	_, err := collection.Indexes().CreateOne(ctx, indexModel)
	return err
}
