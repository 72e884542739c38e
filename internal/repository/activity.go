package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readconcern"

	"github.com/witthawin/moviebase-api/internal/model"
)

// ActivityRepository is the read-only reporting side over the comments
// collection. It depends only on the stored comment shape, never on the
// comment store itself.
type ActivityRepository interface {
	MostActiveCommenters(ctx context.Context, limit int64) ([]model.Critic, error)
}

// defaultCriticLimit caps the report when the caller passes no usable limit.
const defaultCriticLimit = 20

type activityMongoRepository struct {
	// comments is opened with majority read concern: the report feeds
	// governance decisions and must not include writes that could still
	// be rolled back.
	comments *mongo.Collection
}

func NewActivityMongoRepository(db *mongo.Database) ActivityRepository {
	comments := db.Collection(
		commentCollection,
		options.Collection().SetReadConcern(readconcern.Majority()),
	)

	return &activityMongoRepository{comments: comments}
}

// MostActiveCommenters groups comments by author email and returns up to
// limit commenters ordered by descending count. Commenters with equal
// counts have no defined relative order.
func (r *activityMongoRepository) MostActiveCommenters(ctx context.Context, limit int64) ([]model.Critic, error) {
	if limit <= 0 {
		limit = defaultCriticLimit
	}

	cursor, err := r.comments.Aggregate(ctx, mostActivePipeline(limit))
	if err != nil {
		return nil, fmt.Errorf("aggregate commenters: %w", err)
	}
	defer cursor.Close(ctx)

	var critics []model.Critic
	if err := cursor.All(ctx, &critics); err != nil {
		return nil, fmt.Errorf("decode commenters: %w", err)
	}

	return critics, nil
}

// mostActivePipeline builds the $group/$sort/$limit stages for the report.
func mostActivePipeline(limit int64) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$email"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}}}},
		{{Key: "$limit", Value: limit}},
	}
}
