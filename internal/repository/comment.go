package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/witthawin/moviebase-api/internal/model"
)

// CommentRepository defines the database operations for comments. Mutations
// are authorized by authorial identity: the caller-supplied email must match
// the one stored on the comment.
type CommentRepository interface {
	GetComment(ctx context.Context, id string) (*model.Comment, error)
	AddComment(ctx context.Context, comment *model.Comment) (*model.Comment, error)
	UpdateCommentText(ctx context.Context, commentID, text, email string) error
	DeleteComment(ctx context.Context, commentID, email string) (bool, error)
}

const commentCollection = "comments"

type commentMongoRepository struct {
	db *mongo.Database
}

func NewCommentMongoRepository(db *mongo.Database) CommentRepository {
	return &commentMongoRepository{db: db}
}

func (r *commentMongoRepository) GetComment(ctx context.Context, id string) (*model.Comment, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("malformed comment id %q: %w", id, ErrInvalidArgument)
	}

	result := r.db.Collection(commentCollection).FindOne(ctx, bson.M{"_id": objectID})

	var comment model.Comment
	if err := result.Decode(&comment); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find comment: %w", err)
	}

	return &comment, nil
}

// AddComment inserts the comment and returns it unchanged. The identifier
// must already be allocated by the caller; identity generation is a
// boundary concern, not a store concern.
func (r *commentMongoRepository) AddComment(ctx context.Context, comment *model.Comment) (*model.Comment, error) {
	if comment.ID.IsZero() {
		return nil, fmt.Errorf("comment id is not set: %w", ErrInvalidArgument)
	}

	if _, err := r.db.Collection(commentCollection).InsertOne(ctx, comment); err != nil {
		return nil, fmt.Errorf("insert comment: %w", err)
	}

	return comment, nil
}

// UpdateCommentText sets the comment's text and refreshes its timestamp.
// The ownership check is folded into the mutation filter, so the update
// matches both _id and email in one atomic request; a comment cannot be
// deleted or reassigned between an authorization read and the write. When
// nothing matched, a follow-up existence count tells ErrNotFound apart from
// ErrDenied.
func (r *commentMongoRepository) UpdateCommentText(ctx context.Context, commentID, text, email string) error {
	objectID, err := bson.ObjectIDFromHex(commentID)
	if err != nil {
		return fmt.Errorf("malformed comment id %q: %w", commentID, ErrInvalidArgument)
	}

	update := bson.M{
		"$set": bson.M{
			"text": text,
			"date": time.Now(),
		},
	}

	result, err := r.db.Collection(commentCollection).UpdateOne(
		ctx,
		bson.M{"_id": objectID, "email": email},
		update,
	)
	if err != nil {
		return fmt.Errorf("update comment: %w", err)
	}

	if result.MatchedCount == 0 {
		return r.classifyMiss(ctx, objectID)
	}

	return nil
}

// DeleteComment removes the comment when the caller owns it, reporting
// whether a document was actually removed. An empty id is rejected before
// any lookup. Like UpdateCommentText, ownership rides in the delete filter.
func (r *commentMongoRepository) DeleteComment(ctx context.Context, commentID, email string) (bool, error) {
	if commentID == "" {
		return false, fmt.Errorf("comment id is empty: %w", ErrInvalidArgument)
	}

	objectID, err := bson.ObjectIDFromHex(commentID)
	if err != nil {
		return false, fmt.Errorf("malformed comment id %q: %w", commentID, ErrInvalidArgument)
	}

	result, err := r.db.Collection(commentCollection).DeleteOne(ctx, bson.M{"_id": objectID, "email": email})
	if err != nil {
		return false, fmt.Errorf("delete comment: %w", err)
	}

	if result.DeletedCount == 0 {
		return false, r.classifyMiss(ctx, objectID)
	}

	return true, nil
}

// classifyMiss decides why an owner-filtered mutation matched nothing: the
// comment is gone (ErrNotFound) or it exists under someone else's email
// (ErrDenied).
func (r *commentMongoRepository) classifyMiss(ctx context.Context, id bson.ObjectID) error {
	count, err := r.db.Collection(commentCollection).CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("count comment: %w", err)
	}

	if count == 0 {
		return ErrNotFound
	}

	return ErrDenied
}
