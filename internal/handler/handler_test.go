package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/witthawin/moviebase-api/internal/config"
	"github.com/witthawin/moviebase-api/internal/model"
	"github.com/witthawin/moviebase-api/internal/payload"
	"github.com/witthawin/moviebase-api/internal/repository"
	"github.com/witthawin/moviebase-api/internal/usecase"
	"github.com/witthawin/moviebase-api/shared/auth"
	"github.com/witthawin/moviebase-api/shared/validation"
)

// --- fakes ---

type fakeAccountUsecase struct {
	registerOut *usecase.AuthSession
	registerErr error
	loginOut    *usecase.AuthSession
	loginErr    error
	logoutErr   error
	deleteErr   error
	prefsErr    error

	prefsGot map[string]any
}

func (f *fakeAccountUsecase) Register(context.Context, usecase.RegisterParams) (*usecase.AuthSession, error) {
	return f.registerOut, f.registerErr
}

func (f *fakeAccountUsecase) Login(context.Context, usecase.LoginParams) (*usecase.AuthSession, error) {
	return f.loginOut, f.loginErr
}

func (f *fakeAccountUsecase) Logout(context.Context, string) error {
	return f.logoutErr
}

func (f *fakeAccountUsecase) DeleteAccount(context.Context, string, string) error {
	return f.deleteErr
}

func (f *fakeAccountUsecase) UpdatePreferences(_ context.Context, _ string, prefs map[string]any) error {
	f.prefsGot = prefs
	return f.prefsErr
}

type fakeCommentUsecase struct {
	getOut    *model.Comment
	getErr    error
	postOut   *model.Comment
	postErr   error
	editErr   error
	removeOut bool
	removeErr error

	criticsOut []model.Critic
	criticsErr error

	editEmail string
}

func (f *fakeCommentUsecase) GetComment(context.Context, string) (*model.Comment, error) {
	return f.getOut, f.getErr
}

func (f *fakeCommentUsecase) PostComment(context.Context, usecase.PostCommentParams) (*model.Comment, error) {
	return f.postOut, f.postErr
}

func (f *fakeCommentUsecase) EditComment(_ context.Context, _, _, email string) error {
	f.editEmail = email
	return f.editErr
}

func (f *fakeCommentUsecase) RemoveComment(context.Context, string, string) (bool, error) {
	return f.removeOut, f.removeErr
}

func (f *fakeCommentUsecase) MostActiveCommenters(context.Context, int64) ([]model.Critic, error) {
	return f.criticsOut, f.criticsErr
}

// --- helpers ---

func newTestHandler(t *testing.T, accounts usecase.AccountUsecase, comments usecase.CommentUsecase) *Handler {
	t.Helper()

	cfg := &config.Config{
		Token: config.TokenConfig{
			Secret:    "test-secret",
			Issuer:    "moviebase-test",
			ExpiresIn: time.Hour,
		},
	}

	validator, err := validation.NewValidator()
	require.NoError(t, err)

	logger := zerolog.Nop()
	jwtAuth := auth.NewJWTAuthenticator(cfg.Token.Issuer, cfg.Token.Issuer)

	return New(&logger, validator, jwtAuth, cfg, accounts, comments)
}

func bearerToken(t *testing.T, h *Handler, email string) string {
	t.Helper()

	now := time.Now()
	claims := auth.SessionClaims{
		UserID: "user-1",
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			Issuer:    h.cfg.Token.Issuer,
			Audience:  jwt.ClaimStrings{h.cfg.Token.Issuer},
		},
	}

	token, err := h.jwtAuth.GenerateToken(claims, h.cfg.Token.Secret)
	require.NoError(t, err)
	return "Bearer " + token
}

func doJSON(h *Handler, method, target, authz string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(method, target, &buf)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}

	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)
	return rec
}

// --- tests ---

func TestRegister_Created(t *testing.T) {
	accounts := &fakeAccountUsecase{
		registerOut: &usecase.AuthSession{
			User:  &model.User{ID: bson.NewObjectID(), Name: "Alice", Email: "a@x.com"},
			Token: "tok",
		},
	}
	h := newTestHandler(t, accounts, &fakeCommentUsecase{})

	rec := doJSON(h, http.MethodPost, "/api/v1/user/register", "", payload.RegisterRequest{
		Name:     "Alice",
		Email:    "a@x.com",
		Password: "correct horse",
	})

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp payload.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "tok", resp.Token)
	assert.Equal(t, "a@x.com", resp.User.Email)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	accounts := &fakeAccountUsecase{registerErr: usecase.ErrUserAlreadyExists}
	h := newTestHandler(t, accounts, &fakeCommentUsecase{})

	rec := doJSON(h, http.MethodPost, "/api/v1/user/register", "", payload.RegisterRequest{
		Name:     "Alice",
		Email:    "a@x.com",
		Password: "correct horse",
	})

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRegister_InvalidPayload(t *testing.T) {
	h := newTestHandler(t, &fakeAccountUsecase{}, &fakeCommentUsecase{})

	rec := doJSON(h, http.MethodPost, "/api/v1/user/register", "", payload.RegisterRequest{
		Name:  "Alice",
		Email: "not-an-email",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	accounts := &fakeAccountUsecase{loginErr: usecase.ErrInvalidCredentials}
	h := newTestHandler(t, accounts, &fakeCommentUsecase{})

	rec := doJSON(h, http.MethodPost, "/api/v1/user/login", "", payload.LoginRequest{
		Email:    "a@x.com",
		Password: "wrong horse",
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetComment_NotFound(t *testing.T) {
	comments := &fakeCommentUsecase{getErr: repository.ErrNotFound}
	h := newTestHandler(t, &fakeAccountUsecase{}, comments)

	rec := doJSON(h, http.MethodGet, "/api/v1/comment/"+bson.NewObjectID().Hex(), "", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEditComment_RequiresToken(t *testing.T) {
	h := newTestHandler(t, &fakeAccountUsecase{}, &fakeCommentUsecase{})

	rec := doJSON(h, http.MethodPut, "/api/v1/comment/"+bson.NewObjectID().Hex(), "",
		payload.EditCommentRequest{Text: "new text"})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestEditComment_UsesTokenIdentity(t *testing.T) {
	comments := &fakeCommentUsecase{}
	h := newTestHandler(t, &fakeAccountUsecase{}, comments)

	rec := doJSON(h, http.MethodPut, "/api/v1/comment/"+bson.NewObjectID().Hex(),
		bearerToken(t, h, "a@x.com"), payload.EditCommentRequest{Text: "new text"})

	assert.Equal(t, http.StatusNoContent, rec.Code)
	// The identity comes from the validated token, never from the payload.
	assert.Equal(t, "a@x.com", comments.editEmail)
}

func TestEditComment_Denied(t *testing.T) {
	comments := &fakeCommentUsecase{editErr: repository.ErrDenied}
	h := newTestHandler(t, &fakeAccountUsecase{}, comments)

	rec := doJSON(h, http.MethodPut, "/api/v1/comment/"+bson.NewObjectID().Hex(),
		bearerToken(t, h, "b@x.com"), payload.EditCommentRequest{Text: "new text"})

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRemoveComment_Deleted(t *testing.T) {
	comments := &fakeCommentUsecase{removeOut: true}
	h := newTestHandler(t, &fakeAccountUsecase{}, comments)

	rec := doJSON(h, http.MethodDelete, "/api/v1/comment/"+bson.NewObjectID().Hex(),
		bearerToken(t, h, "a@x.com"), nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRemoveComment_Absent(t *testing.T) {
	comments := &fakeCommentUsecase{removeErr: repository.ErrNotFound}
	h := newTestHandler(t, &fakeAccountUsecase{}, comments)

	rec := doJSON(h, http.MethodDelete, "/api/v1/comment/"+bson.NewObjectID().Hex(),
		bearerToken(t, h, "a@x.com"), nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdatePreferences_NullRejected(t *testing.T) {
	accounts := &fakeAccountUsecase{}
	h := newTestHandler(t, accounts, &fakeCommentUsecase{})

	rec := doJSON(h, http.MethodPut, "/api/v1/user/preferences",
		bearerToken(t, h, "a@x.com"), map[string]any{"preferences": nil})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, accounts.prefsGot)
}

func TestMostActiveCommenters_RankedBody(t *testing.T) {
	comments := &fakeCommentUsecase{criticsOut: []model.Critic{
		{ID: "a@x.com", Count: 3},
		{ID: "b@x.com", Count: 2},
		{ID: "c@x.com", Count: 1},
	}}
	h := newTestHandler(t, &fakeAccountUsecase{}, comments)

	rec := doJSON(h, http.MethodGet, "/api/v1/report/critics", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp []payload.CriticResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 3)
	assert.Equal(t, payload.CriticResponse{Email: "a@x.com", Count: 3}, resp[0])
	assert.Equal(t, payload.CriticResponse{Email: "c@x.com", Count: 1}, resp[2])
}

func TestMostActiveCommenters_BadLimit(t *testing.T) {
	h := newTestHandler(t, &fakeAccountUsecase{}, &fakeCommentUsecase{})

	rec := doJSON(h, http.MethodGet, "/api/v1/report/critics?limit=abc", "", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
