package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

// Role enum
type Role string

const (
	RoleCitizen   Role = "citizen"
	RoleAmbulance Role = "ambulance"
	RoleAdmin     Role = "admin"
)

// ValidRole reports whether r is a role an admin may assign.
func ValidRole(r Role) bool {
	return r == RoleCitizen || r == RoleAmbulance || r == RoleAdmin
}

type User struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName        string             `bson:"fullName" json:"full_name"`
	Email           string             `bson:"email" json:"email"`
	Password        string             `bson:"password,omitempty" json:"-"`
	Role            Role               `bson:"role" json:"role"`
	IsVerified      bool               `bson:"isVerified" json:"is_verified"`
	ReputationScore int                `bson:"reputationScore" json:"reputation_score"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func (u *User) HashPassword() error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashed)
	return nil
}

func (u *User) ComparePassword(candidate string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(candidate))
	return err == nil
}

// AmbulanceUnit is the repair crew vehicle record tied to a driver account.
// Hospital is optional; not every unit is hospital-affiliated.
type AmbulanceUnit struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DriverID      primitive.ObjectID `bson:"driverId" json:"driver_id"`
	VehiclePlate  string             `bson:"vehiclePlate" json:"vehicle_plate"`
	VehicleType   string             `bson:"vehicleType" json:"vehicle_type"`
	Hospital      *string            `bson:"hospital,omitempty" json:"hospital,omitempty"`
	IsAvailable   bool               `bson:"isAvailable" json:"is_available"`
	AverageRating float64            `bson:"averageRating" json:"average_rating"`
	TotalRatings  int                `bson:"totalRatings" json:"total_ratings"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}

// EnsureUserIndexes creates the unique email index
func EnsureUserIndexes(collection *mongo.Collection) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}

	_, err := collection.Indexes().CreateOne(ctx, indexModel)
	return err
}

// EnsureUnitIndexes creates the unique vehicle plate index
func EnsureUnitIndexes(collection *mongo.Collection) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "vehiclePlate", Value: 1}},
		Options: options.Index().SetUnique(true),
	}

	_, err := collection.Indexes().CreateOne(ctx, indexModel)
	return err
}
