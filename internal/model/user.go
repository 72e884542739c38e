package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// User represents an account holder. Exactly one User document exists per
// email; the users collection carries a unique index on the email field.
type User struct {
	ID             bson.ObjectID  `bson:"_id,omitempty"`
	Name           string         `bson:"name"`
	Email          string         `bson:"email"`
	HashedPassword string         `bson:"hashed_password"`
	Preferences    map[string]any `bson:"preferences,omitempty"`
	CreatedAt      time.Time      `bson:"created_at"`
	UpdatedAt      time.Time      `bson:"updated_at"`
}
