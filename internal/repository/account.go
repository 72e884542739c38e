package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/witthawin/moviebase-api/internal/model"
)

// AccountRepository defines the database operations for users and their
// sessions. Sessions live with the account store because their lifecycle is
// tied to the user's: one active token per user, cleaned up when the user
// goes away.
type AccountRepository interface {
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	UpsertSession(ctx context.Context, userID, token string) error
	GetSessionByUserID(ctx context.Context, userID string) (*model.Session, error)
	DeleteSessionsForUser(ctx context.Context, userID string) (bool, error)
	DeleteUser(ctx context.Context, email string) (bool, error)
	ReplaceUserPreferences(ctx context.Context, email string, preferences map[string]any) (bool, error)
}

const (
	userCollection    = "users"
	sessionCollection = "sessions"
)

type accountMongoRepository struct {
	db *mongo.Database
}

// NewAccountMongoRepository creates the account store and ensures the
// uniqueness constraints it relies on: users.email, and sessions.user_id so
// that concurrent session upserts for the same user cannot race into two
// documents.
func NewAccountMongoRepository(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) AccountRepository {
	userIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := db.Collection(userCollection).Indexes().CreateMany(ctx, userIndexes); err != nil {
		logger.Fatal().Err(err).Msg("failed to create user indexes")
	}

	sessionIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := db.Collection(sessionCollection).Indexes().CreateMany(ctx, sessionIndexes); err != nil {
		logger.Fatal().Err(err).Msg("failed to create session indexes")
	}

	return &accountMongoRepository{db: db}
}

// CreateUser inserts a new user. Duplicates are detected by the unique
// index at write time, not by a prior lookup, so there is no window between
// check and insert.
func (r *accountMongoRepository) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	result, err := r.db.Collection(userCollection).InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		user.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return user, nil
}

func (r *accountMongoRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	result := r.db.Collection(userCollection).FindOne(ctx, bson.M{"email": email})

	var user model.User
	if err := result.Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	return &user, nil
}

// UpsertSession stores the token for userID, replacing any previous one. A
// single upsert keeps the at-most-one-session invariant without a separate
// existence check.
func (r *accountMongoRepository) UpsertSession(ctx context.Context, userID, token string) error {
	now := time.Now()
	update := bson.M{
		"$set": bson.M{
			"token":      token,
			"updated_at": now,
		},
		"$setOnInsert": bson.M{
			"created_at": now,
		},
	}

	_, err := r.db.Collection(sessionCollection).UpdateOne(
		ctx,
		bson.M{"user_id": userID},
		update,
		options.UpdateOne().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}

	return nil
}

func (r *accountMongoRepository) GetSessionByUserID(ctx context.Context, userID string) (*model.Session, error) {
	result := r.db.Collection(sessionCollection).FindOne(ctx, bson.M{"user_id": userID})

	var session model.Session
	if err := result.Decode(&session); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find session: %w", err)
	}

	return &session, nil
}

// DeleteSessionsForUser removes the session for userID and reports whether
// one actually existed.
func (r *accountMongoRepository) DeleteSessionsForUser(ctx context.Context, userID string) (bool, error) {
	result, err := r.db.Collection(sessionCollection).DeleteOne(ctx, bson.M{"user_id": userID})
	if err != nil {
		return false, fmt.Errorf("delete sessions: %w", err)
	}

	return result.DeletedCount > 0, nil
}

// DeleteUser removes the user matching email, then that user's session as a
// best-effort cleanup. The two deletes are not transactional; a failed
// session cleanup is surfaced alongside the user-removal outcome.
func (r *accountMongoRepository) DeleteUser(ctx context.Context, email string) (bool, error) {
	user, err := r.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	result, err := r.db.Collection(userCollection).DeleteMany(ctx, bson.M{"email": email})
	if err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}

	if _, err := r.DeleteSessionsForUser(ctx, user.ID.Hex()); err != nil {
		return result.DeletedCount > 0, fmt.Errorf("cleanup sessions: %w", err)
	}

	return result.DeletedCount > 0, nil
}

// ReplaceUserPreferences swaps the preferences field wholesale; existing
// keys are never merged. A nil payload is rejected before any datastore
// call. A missing user is a no-op reported as not-updated, not an error.
func (r *accountMongoRepository) ReplaceUserPreferences(
	ctx context.Context,
	email string,
	preferences map[string]any,
) (bool, error) {
	if preferences == nil {
		return false, fmt.Errorf("preferences must not be nil: %w", ErrInvalidArgument)
	}

	update := bson.M{
		"$set": bson.M{
			"preferences": preferences,
			"updated_at":  time.Now(),
		},
	}

	result, err := r.db.Collection(userCollection).UpdateOne(ctx, bson.M{"email": email}, update)
	if err != nil {
		return false, fmt.Errorf("update preferences: %w", err)
	}

	return result.MatchedCount > 0, nil
}
