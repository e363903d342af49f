package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/communityhq/community-service/internal/core/entity"
	"github.com/communityhq/community-service/internal/pkg/apperr"
)

type stubLogger struct{}

func (stubLogger) Info(string, ...any)  {}
func (stubLogger) Warn(string, ...any)  {}
func (stubLogger) Error(string, ...any) {}
func (stubLogger) Debug(string, ...any) {}
func (stubLogger) Trace(string, ...any) {}
func (stubLogger) Fatal(string, ...any) {}

type fakeUserStore struct {
	createErr error
	user      *entity.User
	getErr    error
}

func (f *fakeUserStore) Create(ctx context.Context, user *entity.User) error { return f.createErr }
func (f *fakeUserStore) GetByName(ctx context.Context, name string) (*entity.User, error) {
	return f.user, f.getErr
}

type fakeSessionStore struct {
	putErr    error
	session   *entity.Session
	getErr    error
	deleteErr error
	lastPut   *entity.Session
}

func (f *fakeSessionStore) Put(ctx context.Context, s *entity.Session, ttl time.Duration) error {
	f.lastPut = s
	return f.putErr
}
func (f *fakeSessionStore) Get(ctx context.Context, token string) (*entity.Session, error) {
	return f.session, f.getErr
}
func (f *fakeSessionStore) Delete(ctx context.Context, token string) error { return f.deleteErr }

func hashOf(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func newAuthService(users *fakeUserStore, sessions *fakeSessionStore) *AuthService {
	return NewAuthService(stubLogger{}, users, sessions, validator.New(), time.Hour)
}

func TestRegister_InvalidInput(t *testing.T) {
	svc := newAuthService(&fakeUserStore{}, &fakeSessionStore{})
	err := svc.Register(context.Background(), &RegisterRequest{Name: "ab", Password: "short"})

	var ue *apperr.UserErr
	require.ErrorAs(t, err, &ue)
	require.Equal(t, apperr.CodeInvalidInput, ue.Code())
}

func TestRegister_DuplicatePassesThroughUnchanged(t *testing.T) {
	dup := apperr.NewAlreadyExistsErr(apperr.WithMessage("user \"bob\" already registered"))
	svc := newAuthService(&fakeUserStore{createErr: dup}, &fakeSessionStore{})

	err := svc.Register(context.Background(), &RegisterRequest{Name: "bob", Password: "password123"})
	require.Same(t, error(dup), err)
}

func TestRegister_StoreFaultBecomesSystemErr(t *testing.T) {
	cause := errors.New("connection refused")
	svc := newAuthService(&fakeUserStore{createErr: cause}, &fakeSessionStore{})

	err := svc.Register(context.Background(), &RegisterRequest{Name: "bob", Password: "password123"})

	var se *apperr.SystemErr
	require.ErrorAs(t, err, &se)
	require.Equal(t, apperr.CodeDataStore, se.Code())
	require.Same(t, cause, se.Cause())
}

func TestLogin_SuccessOpensSession(t *testing.T) {
	users := &fakeUserStore{user: &entity.User{Name: "bob", PasswordHash: hashOf(t, "password123")}}
	sessions := &fakeSessionStore{}
	svc := newAuthService(users, sessions)

	resp, err := svc.Login(context.Background(), &LoginRequest{Name: "bob", Password: "password123"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	require.Equal(t, resp.Token, sessions.lastPut.Token)
	require.Equal(t, "bob", sessions.lastPut.UserName)
}

func TestLogin_UnknownUserAndWrongPassword(t *testing.T) {
	// unknown user: store reports not-found, caller sees unauthenticated
	users := &fakeUserStore{getErr: apperr.NewNotFoundErr()}
	svc := newAuthService(users, &fakeSessionStore{})
	_, err := svc.Login(context.Background(), &LoginRequest{Name: "ghost", Password: "password123"})

	var ue *apperr.UserErr
	require.ErrorAs(t, err, &ue)
	require.Equal(t, apperr.CodeUnauthenticated, ue.Code())

	// wrong password
	users = &fakeUserStore{user: &entity.User{Name: "bob", PasswordHash: hashOf(t, "password123")}}
	svc = newAuthService(users, &fakeSessionStore{})
	_, err = svc.Login(context.Background(), &LoginRequest{Name: "bob", Password: "wrong-password"})
	require.ErrorAs(t, err, &ue)
	require.Equal(t, apperr.CodeUnauthenticated, ue.Code())
}

func TestAuthenticate_TokenStates(t *testing.T) {
	var ue *apperr.UserErr

	// empty token
	svc := newAuthService(&fakeUserStore{}, &fakeSessionStore{})
	_, err := svc.Authenticate(context.Background(), "")
	require.ErrorAs(t, err, &ue)
	require.Equal(t, apperr.CodeUnauthenticated, ue.Code())

	// unknown token
	svc = newAuthService(&fakeUserStore{}, &fakeSessionStore{getErr: apperr.NewNotFoundErr()})
	_, err = svc.Authenticate(context.Background(), "t-unknown")
	require.ErrorAs(t, err, &ue)
	require.Equal(t, apperr.CodeUnauthenticated, ue.Code())

	// expired session
	expired := &entity.Session{Token: "t-old", UserName: "bob", ExpiresAt: time.Now().UTC().Add(-time.Minute)}
	svc = newAuthService(&fakeUserStore{}, &fakeSessionStore{session: expired})
	_, err = svc.Authenticate(context.Background(), "t-old")
	require.ErrorAs(t, err, &ue)
	require.Equal(t, apperr.CodeUnauthenticated, ue.Code())

	// live session
	live := &entity.Session{Token: "t-live", UserName: "bob", ExpiresAt: time.Now().UTC().Add(time.Hour)}
	svc = newAuthService(&fakeUserStore{}, &fakeSessionStore{session: live})
	got, err := svc.Authenticate(context.Background(), "t-live")
	require.NoError(t, err)
	require.Same(t, live, got)
}

func TestLogout(t *testing.T) {
	// deleting an unknown token is fine
	svc := newAuthService(&fakeUserStore{}, &fakeSessionStore{deleteErr: apperr.NewNotFoundErr()})
	require.NoError(t, svc.Logout(context.Background(), "t-gone"))

	// store fault surfaces as system-caused
	svc = newAuthService(&fakeUserStore{}, &fakeSessionStore{deleteErr: errors.New("redis down")})
	err := svc.Logout(context.Background(), "t-1")

	var se *apperr.SystemErr
	require.ErrorAs(t, err, &se)
}
