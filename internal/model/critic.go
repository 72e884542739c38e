package model

// Critic is a transient aggregate produced by the activity report: a
// commenter's email paired with their comment count. It is never persisted.
type Critic struct {
	ID    string `bson:"_id"`
	Count int    `bson:"count"`
}

// Email returns the commenter identity the aggregation grouped on.
func (c Critic) Email() string {
	return c.ID
}
