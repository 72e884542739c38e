package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/witthawin/moviebase-api/internal/model"
	"github.com/witthawin/moviebase-api/internal/repository"
)

// CommentUsecase defines the comment authoring and reporting use cases.
type CommentUsecase interface {
	GetComment(ctx context.Context, id string) (*model.Comment, error)
	PostComment(ctx context.Context, params PostCommentParams) (*model.Comment, error)
	EditComment(ctx context.Context, commentID, text, email string) error
	RemoveComment(ctx context.Context, commentID, email string) (bool, error)
	MostActiveCommenters(ctx context.Context, limit int64) ([]model.Critic, error)
}

// PostCommentParams defines the parameters for authoring a comment. Email
// is the authenticated caller's identity, not free input.
type PostCommentParams struct {
	Email   string
	MovieID string
	Text    string
}

var ErrEmptyCommentText = errors.New("comment text is empty")

type commentUsecase struct {
	commentRepo  repository.CommentRepository
	activityRepo repository.ActivityRepository
}

func NewCommentUsecase(
	commentRepo repository.CommentRepository,
	activityRepo repository.ActivityRepository,
) CommentUsecase {
	return &commentUsecase{
		commentRepo:  commentRepo,
		activityRepo: activityRepo,
	}
}

func (u *commentUsecase) GetComment(ctx context.Context, id string) (*model.Comment, error) {
	return u.commentRepo.GetComment(ctx, id)
}

// PostComment allocates the comment identifier and creation timestamp, then
// inserts. Identifier generation lives here at the boundary; the store
// rejects comments without one.
func (u *commentUsecase) PostComment(ctx context.Context, params PostCommentParams) (*model.Comment, error) {
	if params.Text == "" {
		return nil, ErrEmptyCommentText
	}

	comment := &model.Comment{
		ID:    bson.NewObjectID(),
		Email: params.Email,
		Text:  params.Text,
		Date:  time.Now(),
	}

	if params.MovieID != "" {
		movieID, err := bson.ObjectIDFromHex(params.MovieID)
		if err != nil {
			return nil, fmt.Errorf("malformed movie id %q: %w", params.MovieID, repository.ErrInvalidArgument)
		}
		comment.MovieID = movieID
	}

	return u.commentRepo.AddComment(ctx, comment)
}

func (u *commentUsecase) EditComment(ctx context.Context, commentID, text, email string) error {
	if text == "" {
		return ErrEmptyCommentText
	}

	return u.commentRepo.UpdateCommentText(ctx, commentID, text, email)
}

func (u *commentUsecase) RemoveComment(ctx context.Context, commentID, email string) (bool, error) {
	return u.commentRepo.DeleteComment(ctx, commentID, email)
}

func (u *commentUsecase) MostActiveCommenters(ctx context.Context, limit int64) ([]model.Critic, error) {
	return u.activityRepo.MostActiveCommenters(ctx, limit)
}
