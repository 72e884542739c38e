package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Session holds the single active token for a user. At most one Session
// document exists per user_id, enforced by a unique index.
type Session struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	UserID    string        `bson:"user_id"`
	Token     string        `bson:"token"`
	CreatedAt time.Time     `bson:"created_at"`
	UpdatedAt time.Time     `bson:"updated_at"`
}
