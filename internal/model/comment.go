package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Comment is a free-text comment on a movie. The email field carries the
// authorial identity and is the sole basis for mutation authorization; it is
// not a live reference into the users collection.
type Comment struct {
	ID      bson.ObjectID `bson:"_id,omitempty"`
	MovieID bson.ObjectID `bson:"movie_id,omitempty"`
	Email   string        `bson:"email"`
	Text    string        `bson:"text"`
	Date    time.Time     `bson:"date"`
}
