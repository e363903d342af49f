package http

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/communityhq/community-service/internal/pkg/apperr"
	"github.com/communityhq/community-service/internal/pkg/applog"
	"github.com/communityhq/community-service/internal/pkg/metrics"
)

// errorResponse is the HTTP rendering of an error value: the same two-key
// envelope shape the error itself renders, carrying the code and the
// display-safe message.
type errorResponse struct {
	Errorcode *string `json:"errorcode"`
	Errormsg  *string `json:"errormsg"`
}

func newErrorResponse(code, msg string) errorResponse {
	var resp errorResponse
	if code != "" {
		resp.Errorcode = &code
	}
	if msg != "" {
		resp.Errormsg = &msg
	}
	return resp
}

// statusForUserCode picks the HTTP status for a user-caused error by its code.
func statusForUserCode(code string) int {
	switch code {
	case apperr.CodeUnauthenticated:
		return fiber.StatusUnauthorized
	case apperr.CodeNotFound:
		return fiber.StatusNotFound
	case apperr.CodeAlreadyExists:
		return fiber.StatusConflict
	case "error.post.forbidden":
		return fiber.StatusForbidden
	default:
		return fiber.StatusBadRequest
	}
}

// NewErrorHandler returns the central fiber error handler. It inspects the
// error's category to pick the status: user-caused errors answer 4xx with the
// error's own code and message, system-caused errors answer 500 with the code
// only, since their internals may carry sensitive detail. The full chain is
// logged either way.
func NewErrorHandler(log applog.AppLogger) func(fiber.Ctx, error) error {
	return func(c fiber.Ctx, err error) error {
		var ue *apperr.UserErr
		var se *apperr.SystemErr
		var fe *fiber.Error

		switch {
		case errors.As(err, &ue):
			metrics.App().ErrorsTotal.WithLabelValues(metrics.CategoryUser, ue.Code()).Inc()
			log.Debug("request failed", "path", c.Path(), "code", ue.Code(), "err", err)
			return c.Status(statusForUserCode(ue.Code())).JSON(newErrorResponse(ue.Code(), ue.Message()))

		case errors.As(err, &se):
			metrics.App().ErrorsTotal.WithLabelValues(metrics.CategorySystem, se.Code()).Inc()
			log.Error("request failed", "path", c.Path(), "code", se.Code(), "err", err)
			return c.Status(fiber.StatusInternalServerError).JSON(newErrorResponse(se.Code(), "Internal error."))

		case errors.As(err, &fe):
			metrics.App().ErrorsTotal.WithLabelValues(metrics.CategoryUser, "http").Inc()
			return c.Status(fe.Code).JSON(newErrorResponse("", fe.Message))

		default:
			metrics.App().ErrorsTotal.WithLabelValues(metrics.CategorySystem, apperr.CodeInternal).Inc()
			log.Error("request failed with uncategorized error", "path", c.Path(), "err", err)
			return c.Status(fiber.StatusInternalServerError).JSON(newErrorResponse(apperr.CodeInternal, "Internal error."))
		}
	}
}
