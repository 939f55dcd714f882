package handler

import (
	"bio-kids-puzzles/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// Handlers groups the HTTP handlers mounted by SetupRoutes
type Handlers struct {
	Levels   *LevelHandler
	Sessions *SessionHandler
	Health   *HealthHandler
}

// SetupRoutes mounts the API under /api and the health check at /health
func SetupRoutes(app *fiber.App, h Handlers, vm *middleware.ValidationMiddleware) {
	app.Get("/health", h.Health.Health)

	api := app.Group("/api")

	levels := api.Group("/levels")
	levels.Get("/", h.Levels.ListLevels)
	levels.Get("/:id", vm.ValidateLevelID(), h.Levels.GetLevel)
	levels.Post("/:id/sessions", vm.ValidateLevelID(), h.Sessions.StartSession)

	sessions := api.Group("/sessions")
	sessions.Get("/:sessionID", vm.ValidateSessionID(), h.Sessions.GetSession)
	sessions.Delete("/:sessionID", vm.ValidateSessionID(), h.Sessions.EndSession)
	sessions.Post("/:sessionID/answer", vm.ValidateSessionID(), h.Sessions.SubmitAnswer)
	sessions.Post("/:sessionID/advance", vm.ValidateSessionID(), h.Sessions.Advance)
	sessions.Post("/:sessionID/restart", vm.ValidateSessionID(), h.Sessions.Restart)
}
