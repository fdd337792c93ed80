package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"pothole-ambulance-be/config"
	"pothole-ambulance-be/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DashboardStats are the admin dashboard counters.
type DashboardStats struct {
	TotalCitizens   int64 `json:"total_citizens"`
	TotalAmbulances int64 `json:"total_ambulances"`
	TotalIssues     int64 `json:"total_issues"`
	PendingIssues   int64 `json:"pending_issues"`
	ResolvedIssues  int64 `json:"resolved_issues"`
}

// GetDashboardStats counts users and issues by role and status.
func GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	userCollection := config.GetCollection("users")
	issueCollection := config.GetCollection("issues")

	stats := &DashboardStats{}
	var err error

	if stats.TotalCitizens, err = userCollection.CountDocuments(ctx, bson.M{"role": models.RoleCitizen}); err != nil {
		return nil, err
	}
	if stats.TotalAmbulances, err = userCollection.CountDocuments(ctx, bson.M{"role": models.RoleAmbulance}); err != nil {
		return nil, err
	}
	if stats.TotalIssues, err = issueCollection.CountDocuments(ctx, bson.M{}); err != nil {
		return nil, err
	}
	if stats.PendingIssues, err = issueCollection.CountDocuments(ctx, bson.M{"status": models.StatusPending}); err != nil {
		return nil, err
	}
	if stats.ResolvedIssues, err = issueCollection.CountDocuments(ctx, bson.M{"status": models.StatusResolved}); err != nil {
		return nil, err
	}
	return stats, nil
}

// GetHotSpots returns the highest-weight unresolved issues for the
// dashboard map.
func GetHotSpots(ctx context.Context, limit int) ([]models.Issue, error) {
	issueCollection := config.GetCollection("issues")

	if limit < 1 {
		limit = 5
	}
	findOptions := options.Find().
		SetSort(bson.D{{Key: "weight", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := issueCollection.Find(ctx, bson.M{"status": bson.M{"$ne": models.StatusResolved}}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	issues := []models.Issue{}
	if err := cursor.All(ctx, &issues); err != nil {
		return nil, err
	}
	return issues, nil
}

// CitizenSummary is one row of the admin citizen listing.
type CitizenSummary struct {
	ID              primitive.ObjectID `json:"id"`
	FullName        string             `json:"full_name"`
	Email           string             `json:"email"`
	CreatedAt       time.Time          `json:"created_at"`
	ReportCount     int64              `json:"report_count"`
	VoteCount       int64              `json:"vote_count"`
	IsVerified      bool               `json:"is_verified"`
	ReputationScore int                `json:"reputation_score"`
}

// ListCitizens returns every citizen with their report and vote activity.
func ListCitizens(ctx context.Context) ([]CitizenSummary, error) {
	userCollection := config.GetCollection("users")
	issueCollection := config.GetCollection("issues")
	voteCollection := config.GetCollection("votes")

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := userCollection.Find(ctx, bson.M{"role": models.RoleCitizen}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}

	citizens := make([]CitizenSummary, 0, len(users))
	for _, u := range users {
		reportCount, err := issueCollection.CountDocuments(ctx, bson.M{"createdBy": u.ID})
		if err != nil {
			return nil, err
		}
		voteCount, err := voteCollection.CountDocuments(ctx, bson.M{"user": u.ID})
		if err != nil {
			return nil, err
		}
		citizens = append(citizens, CitizenSummary{
			ID:              u.ID,
			FullName:        u.FullName,
			Email:           u.Email,
			CreatedAt:       u.CreatedAt,
			ReportCount:     reportCount,
			VoteCount:       voteCount,
			IsVerified:      u.IsVerified,
			ReputationScore: u.ReputationScore,
		})
	}
	return citizens, nil
}

// AmbulanceSummary is one row of the admin crew listing.
type AmbulanceSummary struct {
	ID             primitive.ObjectID `json:"id"`
	DriverName     string             `json:"driver_name"`
	Email          string             `json:"email"`
	CreatedAt      time.Time          `json:"created_at"`
	VehiclePlate   string             `json:"vehicle_plate"`
	VehicleType    string             `json:"vehicle_type"`
	Hospital       *string            `json:"hospital,omitempty"`
	IsAvailable    bool               `json:"is_available"`
	IsActive       bool               `json:"is_active"`
	AssignedIssues int64              `json:"assigned_issues"`
	ResolvedIssues int64              `json:"resolved_issues"`
}

// ListAmbulances returns every crew account with its unit and workload.
func ListAmbulances(ctx context.Context) ([]AmbulanceSummary, error) {
	userCollection := config.GetCollection("users")
	unitCollection := config.GetCollection("ambulance_units")
	issueCollection := config.GetCollection("issues")

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := userCollection.Find(ctx, bson.M{"role": models.RoleAmbulance}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}

	ambulances := make([]AmbulanceSummary, 0, len(users))
	for _, u := range users {
		summary := AmbulanceSummary{
			ID:         u.ID,
			DriverName: u.FullName,
			Email:      u.Email,
			CreatedAt:  u.CreatedAt,
			IsActive:   u.IsVerified,
		}

		var unit models.AmbulanceUnit
		err := unitCollection.FindOne(ctx, bson.M{"driverId": u.ID}).Decode(&unit)
		if err == nil {
			summary.VehiclePlate = unit.VehiclePlate
			summary.VehicleType = unit.VehicleType
			summary.Hospital = unit.Hospital
			summary.IsAvailable = unit.IsAvailable
		} else if err != mongo.ErrNoDocuments {
			return nil, err
		}

		if summary.AssignedIssues, err = issueCollection.CountDocuments(ctx, bson.M{
			"ambulanceId": u.ID,
			"status":      bson.M{"$ne": models.StatusResolved},
		}); err != nil {
			return nil, err
		}
		if summary.ResolvedIssues, err = issueCollection.CountDocuments(ctx, bson.M{
			"ambulanceId": u.ID,
			"status":      models.StatusResolved,
		}); err != nil {
			return nil, err
		}

		ambulances = append(ambulances, summary)
	}
	return ambulances, nil
}

// CreateAmbulanceInput carries an admin's new crew account request.
type CreateAmbulanceInput struct {
	FullName     string
	Email        string
	Password     string
	VehiclePlate string
	VehicleType  string
	Hospital     *string
}

// CreateAmbulanceAccount creates the crew user plus its unit. The plate
// must be unique; a clash fails before any user row is written.
func CreateAmbulanceAccount(ctx context.Context, input CreateAmbulanceInput) (*models.User, error) {
	userCollection := config.GetCollection("users")
	unitCollection := config.GetCollection("ambulance_units")

	plate := strings.ToUpper(strings.TrimSpace(input.VehiclePlate))

	count, err := unitCollection.CountDocuments(ctx, bson.M{"vehiclePlate": plate})
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("vehicle plate %s is already registered", plate)
	}

	now := time.Now()
	user := models.User{
		ID:              primitive.NewObjectID(),
		FullName:        input.FullName,
		Email:           input.Email,
		Password:        input.Password,
		Role:            models.RoleAmbulance,
		IsVerified:      true,
		ReputationScore: 100,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := user.HashPassword(); err != nil {
		return nil, err
	}

	if _, err := userCollection.InsertOne(ctx, user); err != nil {
		return nil, err
	}

	unit := models.AmbulanceUnit{
		ID:           primitive.NewObjectID(),
		DriverID:     user.ID,
		VehiclePlate: plate,
		VehicleType:  input.VehicleType,
		Hospital:     input.Hospital,
		IsAvailable:  true,
		CreatedAt:    now,
	}
	if _, err := unitCollection.InsertOne(ctx, unit); err != nil {
		// Keep account creation all-or-nothing: drop the user row if
		// the unit insert failed.
		_, _ = userCollection.DeleteOne(ctx, bson.M{"_id": user.ID})
		return nil, err
	}

	user.Password = ""
	return &user, nil
}

// ToggleAmbulanceStatus activates or deactivates a crew account.
func ToggleAmbulanceStatus(ctx context.Context, ambulanceID primitive.ObjectID, isActive bool) error {
	userCollection := config.GetCollection("users")

	result, err := userCollection.UpdateOne(ctx,
		bson.M{"_id": ambulanceID, "role": models.RoleAmbulance},
		bson.M{"$set": bson.M{"isVerified": isActive, "updatedAt": time.Now()}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("ambulance account not found")
	}
	return nil
}

// ResetAmbulancePassword sets a new password on a crew account.
func ResetAmbulancePassword(ctx context.Context, ambulanceID primitive.ObjectID, newPassword string) error {
	userCollection := config.GetCollection("users")

	user := models.User{Password: newPassword}
	if err := user.HashPassword(); err != nil {
		return err
	}

	result, err := userCollection.UpdateOne(ctx,
		bson.M{"_id": ambulanceID, "role": models.RoleAmbulance},
		bson.M{"$set": bson.M{"password": user.Password, "updatedAt": time.Now()}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("ambulance account not found")
	}
	return nil
}
