package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/witthawin/moviebase-api/internal/model"
	"github.com/witthawin/moviebase-api/internal/payload"
	"github.com/witthawin/moviebase-api/internal/usecase"
)

func (h *Handler) GetComment(w http.ResponseWriter, r *http.Request) {
	commentID := chi.URLParam(r, "commentID")

	comment, err := h.commentUsecase.GetComment(r.Context(), commentID)
	if err != nil {
		h.respondUsecaseError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, newCommentResponse(comment))
}

func (h *Handler) PostComment(w http.ResponseWriter, r *http.Request) {
	var req payload.PostCommentRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	claims := sessionClaims(r.Context())

	comment, err := h.commentUsecase.PostComment(r.Context(), usecase.PostCommentParams{
		Email:   claims.Email,
		MovieID: req.MovieID,
		Text:    req.Text,
	})
	if err != nil {
		h.respondUsecaseError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, newCommentResponse(comment))
}

func (h *Handler) EditComment(w http.ResponseWriter, r *http.Request) {
	var req payload.EditCommentRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	commentID := chi.URLParam(r, "commentID")
	claims := sessionClaims(r.Context())

	if err := h.commentUsecase.EditComment(r.Context(), commentID, req.Text, claims.Email); err != nil {
		h.respondUsecaseError(w, err)
		return
	}

	h.respondJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) RemoveComment(w http.ResponseWriter, r *http.Request) {
	commentID := chi.URLParam(r, "commentID")
	claims := sessionClaims(r.Context())

	deleted, err := h.commentUsecase.RemoveComment(r.Context(), commentID, claims.Email)
	if err != nil {
		h.respondUsecaseError(w, err)
		return
	}

	if !deleted {
		h.respondError(w, http.StatusNotFound, "comment not found")
		return
	}

	h.respondJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) MostActiveCommenters(w http.ResponseWriter, r *http.Request) {
	var limit int64
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		limit = parsed
	}

	critics, err := h.commentUsecase.MostActiveCommenters(r.Context(), limit)
	if err != nil {
		h.respondUsecaseError(w, err)
		return
	}

	response := make([]payload.CriticResponse, 0, len(critics))
	for _, critic := range critics {
		response = append(response, payload.CriticResponse{
			Email: critic.Email(),
			Count: critic.Count,
		})
	}

	h.respondJSON(w, http.StatusOK, response)
}

func newCommentResponse(comment *model.Comment) payload.CommentResponse {
	response := payload.CommentResponse{
		ID:    comment.ID.Hex(),
		Email: comment.Email,
		Text:  comment.Text,
		Date:  comment.Date,
	}
	if !comment.MovieID.IsZero() {
		response.MovieID = comment.MovieID.Hex()
	}

	return response
}
