package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/studentresult/srms-api/internal/config"
	"github.com/studentresult/srms-api/internal/handler"
	"github.com/studentresult/srms-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler    *handler.AuthHandler
	StudentHandler *handler.StudentHandler
	TeacherHandler *handler.TeacherHandler
	SubjectHandler *handler.SubjectHandler
	ClassHandler   *handler.ClassHandler
	MarksHandler   *handler.MarksHandler
	RecheckHandler *handler.RecheckHandler
	JWTMiddleware  fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))
	api.Get("/metrics", observability.MetricsHandler())

	// Use provided JWT middleware, or a no-op if nil
	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.AuthHandler != nil {
		deps.AuthHandler.Register(api.Group("/auth"))
	}

	if deps.StudentHandler != nil {
		deps.StudentHandler.Register(api.Group("/students", jwtMiddleware))
	}

	if deps.TeacherHandler != nil {
		deps.TeacherHandler.Register(api.Group("/teachers", jwtMiddleware))
	}

	if deps.SubjectHandler != nil {
		deps.SubjectHandler.Register(api.Group("/subjects", jwtMiddleware))
	}

	if deps.ClassHandler != nil {
		deps.ClassHandler.Register(api.Group("/classes", jwtMiddleware))
	}

	if deps.MarksHandler != nil {
		deps.MarksHandler.Register(api.Group("/marks", jwtMiddleware))
	}

	if deps.RecheckHandler != nil {
		deps.RecheckHandler.Register(api.Group("/rechecks", jwtMiddleware))
	}
}
