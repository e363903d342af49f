package infra

import (
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/communityhq/community-service/internal/adapter/http"
	"github.com/communityhq/community-service/internal/pkg/applog"
	imetrics "github.com/communityhq/community-service/internal/pkg/metrics"
)

// InitServer builds the fiber application with the central error handler
// installed and a request counter middleware. Failed requests are counted by
// the error handler instead.
func InitServer(log applog.AppLogger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "community-service",
		ErrorHandler: http.NewErrorHandler(log),
	})

	app.Use(func(c fiber.Ctx) error {
		if err := c.Next(); err != nil {
			return err
		}
		imetrics.App().RequestsTotal.WithLabelValues(c.Method(), strconv.Itoa(c.Response().StatusCode())).Inc()
		return nil
	})
	return app
}

// InitRoutes registers the public API surface. On guarded routes
// RequireSession must be the first handler in the chain: fiber runs the
// handlers in registration order and only reaches the next one via c.Next().
func InitRoutes(server *fiber.App, h *http.Handler) {
	server.Get("/health", http.Health)

	api := server.Group("/api")
	api.Post("/register", h.Register)
	api.Post("/login", h.Login)
	api.Post("/logout", h.RequireSession, h.Logout)

	api.Get("/posts", h.ListPosts)
	api.Get("/posts/:id", h.GetPost)
	api.Post("/posts", h.RequireSession, h.CreatePost)
	api.Put("/posts/:id", h.RequireSession, h.UpdatePost)
	api.Delete("/posts/:id", h.RequireSession, h.DeletePost)
}
