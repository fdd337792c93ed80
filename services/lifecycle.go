package services

import (
	"context"
	"log"
	"time"

	"pothole-ambulance-be/config"
	"pothole-ambulance-be/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// claimFilter matches an issue only while it is still pending. Two
// concurrent claimants race on this condition and exactly one wins.
func claimFilter(issueID primitive.ObjectID) bson.M {
	return bson.M{"_id": issueID, "status": models.StatusPending}
}

// resolveFilter matches an issue only while it is assigned to the given
// crew, so a wrong-crew resolve or a double resolve matches nothing.
func resolveFilter(issueID, crewID primitive.ObjectID) bson.M {
	return bson.M{"_id": issueID, "status": models.StatusAssigned, "ambulanceId": crewID}
}

// Claim atomically assigns a pending issue to a crew. The update filter
// includes the pending status, so of two concurrent claimants exactly one
// matches the row; the loser gets ErrIssueNotAvailable and no partial
// assignment ever exists.
func Claim(ctx context.Context, issueID, crewID primitive.ObjectID) (*models.Issue, error) {
	issueCollection := config.GetCollection("issues")
	unitCollection := config.GetCollection("ambulance_units")

	now := time.Now()
	update := bson.M{"$set": bson.M{
		"status":      models.StatusAssigned,
		"ambulanceId": crewID,
		"assignedAt":  now,
		"updatedAt":   now,
	}}

	var issue models.Issue
	err := issueCollection.FindOneAndUpdate(ctx,
		claimFilter(issueID),
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&issue)
	if err == mongo.ErrNoDocuments {
		return nil, ErrIssueNotAvailable
	}
	if err != nil {
		return nil, err
	}

	// The claim is committed at this point. A failed availability update
	// leaves the unit flag stale; reporting an error here would make the
	// crew believe the claim failed while the issue is already theirs.
	_, err = unitCollection.UpdateOne(ctx,
		bson.M{"driverId": crewID},
		bson.M{"$set": bson.M{"isAvailable": false}},
	)
	if err != nil {
		log.Printf("availability update failed for crew %s after claim: %v", crewID.Hex(), err)
	}

	return &issue, nil
}

// Resolve closes an assigned issue. Only the claiming crew may resolve,
// and only from the assigned status; the conditional filter makes a
// second resolve (or a wrong-crew resolve) a conflict with no partial
// mutation. Resolution photo and comment are set exactly once here.
func Resolve(ctx context.Context, issueID, crewID primitive.ObjectID, photoURL *string, comment string) (*models.Issue, error) {
	issueCollection := config.GetCollection("issues")
	unitCollection := config.GetCollection("ambulance_units")

	now := time.Now()
	set := bson.M{
		"status":            models.StatusResolved,
		"resolutionComment": comment,
		"resolvedAt":        now,
		"updatedAt":         now,
	}
	if photoURL != nil {
		set["resolutionPhoto"] = *photoURL
	}

	var issue models.Issue
	err := issueCollection.FindOneAndUpdate(ctx,
		resolveFilter(issueID, crewID),
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&issue)
	if err == mongo.ErrNoDocuments {
		return nil, ErrResolveConflict
	}
	if err != nil {
		return nil, err
	}

	// Crew becomes eligible for new claims again. Like the claim path,
	// the resolution is already committed, so a failed flag update is
	// logged rather than surfaced as a failure.
	_, err = unitCollection.UpdateOne(ctx,
		bson.M{"driverId": crewID},
		bson.M{"$set": bson.M{"isAvailable": true}},
	)
	if err != nil {
		log.Printf("availability update failed for crew %s after resolve: %v", crewID.Hex(), err)
	}

	return &issue, nil
}
