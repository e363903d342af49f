package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/require"

	"github.com/communityhq/community-service/internal/pkg/apperr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}
func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Trace(string, ...any) {}
func (nopLogger) Fatal(string, ...any) {}

func newTestApp(routeErr error) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: NewErrorHandler(nopLogger{})})
	app.Get("/boom", func(c fiber.Ctx) error {
		return routeErr
	})
	return app
}

func doBoom(t *testing.T, routeErr error) (int, map[string]*string) {
	t.Helper()
	app := newTestApp(routeErr)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/boom", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var envelope map[string]*string
	require.NoError(t, json.Unmarshal(body, &envelope))
	require.Len(t, envelope, 2)
	require.Contains(t, envelope, "errorcode")
	require.Contains(t, envelope, "errormsg")
	return resp.StatusCode, envelope
}

func TestErrorHandler_Unauthenticated(t *testing.T) {
	status, envelope := doBoom(t, apperr.NewUnauthenticatedErr())
	require.Equal(t, fiber.StatusUnauthorized, status)
	require.Equal(t, "error.unauthenticated", *envelope["errorcode"])
	require.Equal(t, "Not authenticated.", *envelope["errormsg"])
}

func TestErrorHandler_UserCodesToStatuses(t *testing.T) {
	status, _ := doBoom(t, apperr.NewNotFoundErr())
	require.Equal(t, fiber.StatusNotFound, status)

	status, _ = doBoom(t, apperr.NewAlreadyExistsErr())
	require.Equal(t, fiber.StatusConflict, status)

	status, _ = doBoom(t, apperr.NewInvalidInputErr())
	require.Equal(t, fiber.StatusBadRequest, status)

	status, _ = doBoom(t, apperr.NewUserErr(apperr.WithCode("error.post.forbidden")))
	require.Equal(t, fiber.StatusForbidden, status)
}

func TestErrorHandler_SystemInternalsFiltered(t *testing.T) {
	cause := errors.New("dial tcp 10.0.0.5:6379: connection refused")
	status, envelope := doBoom(t, apperr.NewDataStoreErr(
		apperr.WithMessage("redis SETNX user failed"),
		apperr.WithCause(cause),
	))

	require.Equal(t, fiber.StatusInternalServerError, status)
	require.Equal(t, "error.datastore", *envelope["errorcode"])
	// the internal message and cause never reach the client
	require.Equal(t, "Internal error.", *envelope["errormsg"])
}

func TestErrorHandler_ForeignError(t *testing.T) {
	status, envelope := doBoom(t, errors.New("some library exploded"))
	require.Equal(t, fiber.StatusInternalServerError, status)
	require.Equal(t, "error.internal", *envelope["errorcode"])
	require.Equal(t, "Internal error.", *envelope["errormsg"])
}

func TestErrorHandler_FiberError(t *testing.T) {
	status, _ := doBoom(t, fiber.ErrMethodNotAllowed)
	require.Equal(t, fiber.StatusMethodNotAllowed, status)
}
