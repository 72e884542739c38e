package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/witthawin/moviebase-api/internal/config"
	"github.com/witthawin/moviebase-api/internal/model"
	"github.com/witthawin/moviebase-api/internal/repository"
	"github.com/witthawin/moviebase-api/shared/auth"
	"github.com/witthawin/moviebase-api/shared/security"
)

// AccountUsecase defines the account-related use cases built on top of the
// account store.
type AccountUsecase interface {
	Register(ctx context.Context, params RegisterParams) (*AuthSession, error)
	Login(ctx context.Context, params LoginParams) (*AuthSession, error)
	Logout(ctx context.Context, userID string) error
	DeleteAccount(ctx context.Context, email, password string) error
	UpdatePreferences(ctx context.Context, email string, preferences map[string]any) error
}

// RegisterParams defines the parameters for account creation.
type RegisterParams struct {
	Name     string
	Email    string
	Password string
}

// LoginParams defines the parameters for user login.
type LoginParams struct {
	Email    string
	Password string
}

// AuthSession pairs the authenticated user with their freshly issued token.
type AuthSession struct {
	User  *model.User
	Token string
}

var (
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

type accountUsecase struct {
	accountRepo repository.AccountRepository
	jwtAuth     auth.JWTAuthenticator
	cfg         *config.Config
}

func NewAccountUsecase(
	accountRepo repository.AccountRepository,
	jwtAuth auth.JWTAuthenticator,
	cfg *config.Config,
) AccountUsecase {
	return &accountUsecase{
		accountRepo: accountRepo,
		jwtAuth:     jwtAuth,
		cfg:         cfg,
	}
}

func (u *accountUsecase) Register(ctx context.Context, params RegisterParams) (*AuthSession, error) {
	hashedPassword, err := security.HashPassword(params.Password)
	if err != nil {
		return nil, err
	}

	user, err := u.accountRepo.CreateUser(ctx, &model.User{
		Name:           params.Name,
		Email:          params.Email,
		HashedPassword: hashedPassword,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}

	return u.openSession(ctx, user)
}

func (u *accountUsecase) Login(ctx context.Context, params LoginParams) (*AuthSession, error) {
	user, err := u.accountRepo.GetUserByEmail(ctx, params.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if ok, err := security.VerifyPassword(params.Password, user.HashedPassword); err != nil {
		return nil, err
	} else if !ok {
		return nil, ErrInvalidCredentials
	}

	return u.openSession(ctx, user)
}

// Logout drops the user's session. Logging out twice is harmless; an absent
// session is not an error.
func (u *accountUsecase) Logout(ctx context.Context, userID string) error {
	_, err := u.accountRepo.DeleteSessionsForUser(ctx, userID)
	return err
}

func (u *accountUsecase) DeleteAccount(ctx context.Context, email, password string) error {
	user, err := u.accountRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if ok, err := security.VerifyPassword(password, user.HashedPassword); err != nil {
		return err
	} else if !ok {
		return ErrInvalidCredentials
	}

	if _, err := u.accountRepo.DeleteUser(ctx, email); err != nil {
		return err
	}

	return nil
}

func (u *accountUsecase) UpdatePreferences(ctx context.Context, email string, preferences map[string]any) error {
	updated, err := u.accountRepo.ReplaceUserPreferences(ctx, email, preferences)
	if err != nil {
		return err
	}

	if !updated {
		return ErrUserNotFound
	}

	return nil
}

// openSession mints a session token and stores it, replacing the user's
// previous one.
func (u *accountUsecase) openSession(ctx context.Context, user *model.User) (*AuthSession, error) {
	token, err := u.generateToken(user)
	if err != nil {
		return nil, err
	}

	if err := u.accountRepo.UpsertSession(ctx, user.ID.Hex(), token); err != nil {
		return nil, err
	}

	return &AuthSession{User: user, Token: token}, nil
}

func (u *accountUsecase) generateToken(user *model.User) (string, error) {
	now := time.Now()
	claims := auth.SessionClaims{
		UserID: user.ID.Hex(),
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID.Hex(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(u.cfg.Token.ExpiresIn)),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    u.cfg.Token.Issuer,
			Audience:  jwt.ClaimStrings{u.cfg.Token.Issuer},
		},
	}

	return u.jwtAuth.GenerateToken(claims, u.cfg.Token.Secret)
}
