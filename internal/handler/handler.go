package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/witthawin/moviebase-api/internal/config"
	"github.com/witthawin/moviebase-api/internal/repository"
	"github.com/witthawin/moviebase-api/internal/usecase"
	"github.com/witthawin/moviebase-api/shared/auth"
	"github.com/witthawin/moviebase-api/shared/validation"
)

// Handler holds the HTTP glue around the account and comment use cases.
type Handler struct {
	logger         *zerolog.Logger
	validator      *validation.Validator
	jwtAuth        auth.JWTAuthenticator
	cfg            *config.Config
	accountUsecase usecase.AccountUsecase
	commentUsecase usecase.CommentUsecase
}

func New(
	logger *zerolog.Logger,
	validator *validation.Validator,
	jwtAuth auth.JWTAuthenticator,
	cfg *config.Config,
	accountUsecase usecase.AccountUsecase,
	commentUsecase usecase.CommentUsecase,
) *Handler {
	return &Handler{
		logger:         logger,
		validator:      validator,
		jwtAuth:        jwtAuth,
		cfg:            cfg,
		accountUsecase: accountUsecase,
		commentUsecase: commentUsecase,
	}
}

// Router builds the chi router for all routes.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/user/register", h.Register)
		r.Post("/user/login", h.Login)
		r.Get("/comment/{commentID}", h.GetComment)
		r.Get("/report/critics", h.MostActiveCommenters)

		r.Group(func(r chi.Router) {
			r.Use(h.requireAuth)

			r.Post("/user/logout", h.Logout)
			r.Delete("/user", h.DeleteAccount)
			r.Put("/user/preferences", h.UpdatePreferences)

			r.Post("/comment", h.PostComment)
			r.Put("/comment/{commentID}", h.EditComment)
			r.Delete("/comment/{commentID}", h.RemoveComment)
		})
	})

	return r
}

type errorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error().Err(err).Msg("failed to encode response body")
	}
}

func (h *Handler) respondError(w http.ResponseWriter, status int, message string, details ...string) {
	h.respondJSON(w, status, errorResponse{Error: message, Details: details})
}

// respondUsecaseError maps the outcome sentinels onto conventional HTTP
// statuses: absent is 404, a failed ownership check is 403, never the other
// way around.
func (h *Handler) respondUsecaseError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrInvalidArgument),
		errors.Is(err, usecase.ErrEmptyCommentText):
		h.respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, usecase.ErrUserAlreadyExists):
		h.respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, repository.ErrNotFound),
		errors.Is(err, usecase.ErrUserNotFound):
		h.respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, repository.ErrDenied):
		h.respondError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, usecase.ErrInvalidCredentials):
		h.respondError(w, http.StatusUnauthorized, err.Error())
	default:
		h.logger.Error().Err(err).Msg("unexpected error")
		h.respondError(w, http.StatusInternalServerError, "something went wrong")
	}
}

// decodeAndValidate parses the JSON body into req and runs the payload
// validation tags, writing a 400 itself when either step fails.
func (h *Handler) decodeAndValidate(w http.ResponseWriter, r *http.Request, req any) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		h.respondError(w, http.StatusBadRequest, "malformed request body")
		return false
	}

	if details := h.validator.Struct(req); details != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request", details...)
		return false
	}

	return true
}
