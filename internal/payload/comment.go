package payload

import "time"

type PostCommentRequest struct {
	MovieID string `json:"movie_id"`
	Text    string `json:"text" validate:"required"`
}

type EditCommentRequest struct {
	Text string `json:"text" validate:"required"`
}

type CommentResponse struct {
	ID      string    `json:"id"`
	MovieID string    `json:"movie_id,omitempty"`
	Email   string    `json:"email"`
	Text    string    `json:"text"`
	Date    time.Time `json:"date"`
}

type CriticResponse struct {
	Email string `json:"email"`
	Count int    `json:"count"`
}
