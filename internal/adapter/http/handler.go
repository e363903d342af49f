package http

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/communityhq/community-service/internal/core/entity"
	"github.com/communityhq/community-service/internal/core/usecase"
	"github.com/communityhq/community-service/internal/pkg/apperr"
)

const sessionLocal = "session"

// Handler exposes the community API over fiber. Handlers translate transport
// concerns only; every failure is raised as a taxonomy error and left for the
// central error handler to map.
type Handler struct {
	auth  *usecase.AuthService
	posts *usecase.PostService
}

func NewHandler(auth *usecase.AuthService, posts *usecase.PostService) *Handler {
	return &Handler{auth: auth, posts: posts}
}

// RequireSession is the bearer-token middleware guarding authenticated routes.
func (h *Handler) RequireSession(c fiber.Ctx) error {
	token := strings.TrimSpace(strings.TrimPrefix(c.Get(fiber.HeaderAuthorization), "Bearer"))

	session, err := h.auth.Authenticate(c.Context(), token)
	if err != nil {
		return err
	}

	c.Locals(sessionLocal, session)
	return c.Next()
}

func currentSession(c fiber.Ctx) *entity.Session {
	session, _ := c.Locals(sessionLocal).(*entity.Session)
	return session
}

func (h *Handler) Register(c fiber.Ctx) error {
	var req usecase.RegisterRequest
	if err := c.Bind().Body(&req); err != nil {
		return apperr.NewInvalidInputErr(apperr.WithMessage("malformed request body"), apperr.WithCause(err))
	}
	if err := h.auth.Register(c.Context(), &req); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusCreated)
}

func (h *Handler) Login(c fiber.Ctx) error {
	var req usecase.LoginRequest
	if err := c.Bind().Body(&req); err != nil {
		return apperr.NewInvalidInputErr(apperr.WithMessage("malformed request body"), apperr.WithCause(err))
	}

	resp, err := h.auth.Login(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

func (h *Handler) Logout(c fiber.Ctx) error {
	session := currentSession(c)
	if err := h.auth.Logout(c.Context(), session.Token); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) CreatePost(c fiber.Ctx) error {
	var req usecase.CreatePostRequest
	if err := c.Bind().Body(&req); err != nil {
		return apperr.NewInvalidInputErr(apperr.WithMessage("malformed request body"), apperr.WithCause(err))
	}

	post, err := h.posts.CreatePost(c.Context(), currentSession(c).UserName, &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

func (h *Handler) GetPost(c fiber.Ctx) error {
	post, err := h.posts.GetPost(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(post)
}

func (h *Handler) ListPosts(c fiber.Ctx) error {
	offset, err := queryInt(c, "offset")
	if err != nil {
		return err
	}
	limit, err := queryInt(c, "limit")
	if err != nil {
		return err
	}

	posts, err := h.posts.ListPosts(c.Context(), offset, limit)
	if err != nil {
		return err
	}
	return c.JSON(posts)
}

func (h *Handler) UpdatePost(c fiber.Ctx) error {
	var req usecase.UpdatePostRequest
	if err := c.Bind().Body(&req); err != nil {
		return apperr.NewInvalidInputErr(apperr.WithMessage("malformed request body"), apperr.WithCause(err))
	}

	post, err := h.posts.UpdatePost(c.Context(), currentSession(c).UserName, c.Params("id"), &req)
	if err != nil {
		return err
	}
	return c.JSON(post)
}

func (h *Handler) DeletePost(c fiber.Ctx) error {
	if err := h.posts.DeletePost(c.Context(), currentSession(c).UserName, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func queryInt(c fiber.Ctx, key string) (int64, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperr.NewInvalidInputErr(apperr.WithMessage("query parameter "+key+" must be an integer"), apperr.WithCause(err))
	}
	return n, nil
}
