package handler

import (
	"net/http"

	"github.com/witthawin/moviebase-api/internal/payload"
	"github.com/witthawin/moviebase-api/internal/usecase"
)

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req payload.RegisterRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	session, err := h.accountUsecase.Register(r.Context(), usecase.RegisterParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.respondUsecaseError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, newAuthResponse(session))
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req payload.LoginRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	session, err := h.accountUsecase.Login(r.Context(), usecase.LoginParams{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.respondUsecaseError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, newAuthResponse(session))
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	claims := sessionClaims(r.Context())

	if err := h.accountUsecase.Logout(r.Context(), claims.UserID); err != nil {
		h.respondUsecaseError(w, err)
		return
	}

	h.respondJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	var req payload.DeleteAccountRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	claims := sessionClaims(r.Context())

	if err := h.accountUsecase.DeleteAccount(r.Context(), claims.Email, req.Password); err != nil {
		h.respondUsecaseError(w, err)
		return
	}

	h.respondJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	var req payload.UpdatePreferencesRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	claims := sessionClaims(r.Context())

	if err := h.accountUsecase.UpdatePreferences(r.Context(), claims.Email, req.Preferences); err != nil {
		h.respondUsecaseError(w, err)
		return
	}

	h.respondJSON(w, http.StatusNoContent, nil)
}

func newAuthResponse(session *usecase.AuthSession) payload.AuthResponse {
	return payload.AuthResponse{
		Token: session.Token,
		User: payload.UserResponse{
			ID:    session.User.ID.Hex(),
			Name:  session.User.Name,
			Email: session.User.Email,
		},
	}
}
