package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/communityhq/community-service/internal/core/entity"
	"github.com/communityhq/community-service/internal/core/port"
	"github.com/communityhq/community-service/internal/pkg/apperr"
	"github.com/communityhq/community-service/internal/pkg/applog"
)

// AuthService implements registration, login and bearer-token authentication
// on top of the user and session stores.
type AuthService struct {
	log        applog.AppLogger
	users      port.UserStore
	sessions   port.SessionStore
	validator  *validator.Validate
	sessionTTL time.Duration
}

func NewAuthService(log applog.AppLogger, users port.UserStore, sessions port.SessionStore, v *validator.Validate, sessionTTL time.Duration) *AuthService {
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	return &AuthService{log: log, users: users, sessions: sessions, validator: v, sessionTTL: sessionTTL}
}

// Register creates a new user with a bcrypt-hashed password.
func (as *AuthService) Register(ctx context.Context, req *RegisterRequest) error {
	if err := as.validator.Struct(req); err != nil {
		return invalidInput(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return apperr.NewInternalErr(apperr.WithMessage("failed to hash password"), apperr.WithCause(err))
	}

	user := &entity.User{
		Name:         req.Name,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := as.users.Create(ctx, user); err != nil {
		return passThrough(err, "failed to create user")
	}

	as.log.Info("Registered user", "name", user.Name)
	return nil
}

// Login verifies the credentials and opens a new session. Bad credentials are
// reported as unauthenticated without revealing which part was wrong.
func (as *AuthService) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	if err := as.validator.Struct(req); err != nil {
		return nil, invalidInput(err)
	}

	user, err := as.users.GetByName(ctx, req.Name)
	if err != nil {
		var ue *apperr.UserErr
		if errors.As(err, &ue) {
			return nil, apperr.NewUnauthenticatedErr(apperr.WithCause(err))
		}
		return nil, passThrough(err, "failed to load user")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperr.NewUnauthenticatedErr(apperr.WithCause(err))
	}

	session := &entity.Session{
		Token:     uuid.NewString(),
		UserName:  user.Name,
		ExpiresAt: time.Now().UTC().Add(as.sessionTTL),
	}
	if err := as.sessions.Put(ctx, session, as.sessionTTL); err != nil {
		return nil, passThrough(err, "failed to store session")
	}

	as.log.Info("Opened session", "name", user.Name)
	return &LoginResponse{Token: session.Token}, nil
}

// Authenticate resolves a bearer token to its session. An empty, unknown or
// expired token yields an unauthenticated error.
func (as *AuthService) Authenticate(ctx context.Context, token string) (*entity.Session, error) {
	if token == "" {
		return nil, apperr.NewUnauthenticatedErr()
	}

	session, err := as.sessions.Get(ctx, token)
	if err != nil {
		var ue *apperr.UserErr
		if errors.As(err, &ue) {
			return nil, apperr.NewUnauthenticatedErr(apperr.WithCause(err))
		}
		return nil, passThrough(err, "failed to load session")
	}

	if !session.ExpiresAt.IsZero() && time.Now().UTC().After(session.ExpiresAt) {
		return nil, apperr.NewUnauthenticatedErr(apperr.WithMessage("Session expired."))
	}
	return session, nil
}

// Logout closes the session for the given token. Logging out an already
// closed session is not an error.
func (as *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return apperr.NewUnauthenticatedErr()
	}
	if err := as.sessions.Delete(ctx, token); err != nil {
		var ue *apperr.UserErr
		if errors.As(err, &ue) {
			return nil
		}
		return passThrough(err, "failed to delete session")
	}
	return nil
}

// passThrough keeps already-categorized errors intact and wraps foreign
// failures as system-caused data store errors.
func passThrough(err error, msg string) error {
	var be apperr.BaseError
	if errors.As(err, &be) {
		return err
	}
	return apperr.NewDataStoreErr(apperr.WithMessage(msg), apperr.WithCause(err))
}

// invalidInput folds a validator error into the invalid-input condition,
// keeping the field detail in the internal message and the chain.
func invalidInput(err error) error {
	return apperr.NewInvalidInputErr(apperr.WithMessage(err.Error()), apperr.WithCause(err))
}
