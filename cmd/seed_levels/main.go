package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"bio-kids-puzzles/internal/config"
	"bio-kids-puzzles/internal/database"
	"bio-kids-puzzles/internal/logger"
	"bio-kids-puzzles/internal/repository"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	flags := pflag.NewFlagSet("seed_levels", pflag.ExitOnError)
	catalogPath := flags.StringP("file", "f", "", "YAML level catalog to load (default: the embedded catalog)")
	dryRun := flags.Bool("dry-run", false, "validate the catalog without touching the database")
	_ = flags.Parse(os.Args[1:])

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	l := logger.Get()
	defer logger.Sync()

	path := *catalogPath
	if path == "" {
		path = cfg.Catalog.Path
	}
	source, err := repository.NewLevelFileRepository(path)
	if err != nil {
		l.Fatal("Failed to load level catalog", zap.String("path", path), zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	levels, err := source.ListLevels(ctx)
	if err != nil {
		l.Fatal("Failed to list catalog levels", zap.Error(err))
	}
	l.Info("Catalog loaded", zap.Int("levels", len(levels)))
	if *dryRun {
		fmt.Printf("catalog OK: %d levels\n", len(levels))
		return
	}

	db, err := database.NewSQLXOracleDB(cfg.GetDSN())
	if err != nil {
		l.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	target := repository.NewLevelDatabaseAdapter(db)
	tm := repository.NewTransactionManagerAdapter(db)
	if err := seedLevels(ctx, tm, target, levels); err != nil {
		l.Fatal("Failed to seed levels", zap.Error(err))
	}
	if err := verifySeed(ctx, target, levels); err != nil {
		l.Fatal("Seeded catalog does not match source", zap.Error(err))
	}
	l.Info("Levels seeded", zap.Int("levels", len(levels)))
}
