// @title Bio Kids Puzzles API
// @version 1.0
// @description Biology quiz levels for children: pick a level, answer its questions, earn stars.
// @host localhost:8090
// @BasePath /api
// @schemes http https
package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bio-kids-puzzles/internal/adapter"
	"bio-kids-puzzles/internal/config"
	"bio-kids-puzzles/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	repo, closeRepo, err := newLevelRepository(cfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize level catalog", zap.String("source", cfg.Catalog.Source), zap.Error(err))
	}
	defer closeRepo()
	appLogger.Info("Level catalog ready", zap.String("source", cfg.Catalog.Source))

	sessionCache, closeCache, err := newSessionCache(cfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize session store", zap.String("store", cfg.Session.Store), zap.Error(err))
	}
	defer closeCache()
	appLogger.Info("Session store ready", zap.String("store", cfg.Session.Store), zap.Duration("ttl", cfg.Session.TTL))

	app := newApp(cfg, repo, sessionCache)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Env))
		return app.Listen(listenAddr(cfg))
	})

	g.Go(func() error {
		<-gctx.Done()
		appLogger.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return app.ShutdownWithContext(shutdownCtx)
	})

	if mem, ok := sessionCache.(*adapter.MemoryCacheAdapter); ok {
		g.Go(func() error {
			mem.StartCleanup()
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			mem.StopCleanup()
			return nil
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		appLogger.Error("Server stopped with error", zap.Error(err))
		return
	}
	appLogger.Info("Server exited gracefully")
}
