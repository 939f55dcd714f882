package main

import (
	"fmt"
	"time"

	_ "bio-kids-puzzles/cmd/api/docs"
	"bio-kids-puzzles/internal/adapter"
	"bio-kids-puzzles/internal/cache"
	"bio-kids-puzzles/internal/config"
	"bio-kids-puzzles/internal/database"
	"bio-kids-puzzles/internal/domain"
	"bio-kids-puzzles/internal/handler"
	"bio-kids-puzzles/internal/middleware"
	"bio-kids-puzzles/internal/repository"
	"bio-kids-puzzles/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
)

// newLevelRepository builds the catalog named by catalog.source. The returned
// close func releases any database connection.
func newLevelRepository(cfg *config.Config) (domain.LevelRepository, func() error, error) {
	switch cfg.Catalog.Source {
	case config.CatalogSourceDatabase:
		db, err := database.NewSQLXOracleDB(cfg.GetDSN())
		if err != nil {
			return nil, nil, err
		}
		return repository.NewLevelDatabaseAdapter(db), db.Close, nil
	default:
		repo, err := repository.NewLevelFileRepository(cfg.Catalog.Path)
		if err != nil {
			return nil, nil, err
		}
		return repo, func() error { return nil }, nil
	}
}

// newSessionCache builds the cache named by session.store
func newSessionCache(cfg *config.Config) (domain.Cache, func() error, error) {
	switch cfg.Session.Store {
	case config.SessionStoreRedis:
		client, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		return adapter.NewRedisCacheAdapter(client), client.Close, nil
	default:
		return adapter.NewMemoryCacheAdapter(), func() error { return nil }, nil
	}
}

func newApp(cfg *config.Config, repo domain.LevelRepository, sessionCache domain.Cache) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "bio-kids-puzzles",
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
		BodyLimit:    64 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(middleware.RequestID())
	app.Use(middleware.RequestLogger())
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,X-Request-ID",
		MaxAge:       300,
	}))

	app.Get("/swagger/*", swagger.HandlerDefault)

	levelService := service.NewLevelService(repo)
	sessionStore := service.NewSessionStore(sessionCache, cfg.Session.TTL)
	sessionService := service.NewQuizSessionService(levelService, repo, sessionStore)

	vm := middleware.NewValidationMiddleware()
	handler.SetupRoutes(app, handler.Handlers{
		Levels:   handler.NewLevelHandler(levelService),
		Sessions: handler.NewSessionHandler(sessionService, vm.Validator()),
		Health:   handler.NewHealthHandler(sessionCache),
	}, vm)
	return app
}

func listenAddr(cfg *config.Config) string {
	return fmt.Sprintf(":%d", cfg.Server.Port)
}
