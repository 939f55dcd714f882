package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"bio-kids-puzzles/internal/logger"

	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var embeddedMigrations embed.FS

// Migrations returns the schema migrations compiled into the binary
func Migrations() fs.FS {
	sub, err := fs.Sub(embeddedMigrations, "migrations")
	if err != nil {
		panic(err)
	}
	return sub
}

const (
	createMigrationTable = `CREATE TABLE schema_migrations (
    version    VARCHAR2(100) PRIMARY KEY,
    applied_at TIMESTAMP DEFAULT SYSTIMESTAMP NOT NULL
)`
	// ORA-00955: name is already used by an existing object
	oraNameInUse = "ORA-00955"
)

// DB is the subset of *sqlx.DB used to apply migrations
type DB interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

// RunMigrations applies every *.up.sql file in fsys that is not yet recorded
// in schema_migrations, in file name order. It returns the applied versions.
func RunMigrations(ctx context.Context, db DB, fsys fs.FS) ([]string, error) {
	if _, err := db.ExecContext(ctx, createMigrationTable); err != nil && !strings.Contains(err.Error(), oraNameInUse) {
		return nil, fmt.Errorf("could not create schema_migrations: %w", err)
	}

	var done []string
	if err := db.SelectContext(ctx, &done, "SELECT version FROM schema_migrations"); err != nil {
		return nil, fmt.Errorf("could not read applied migrations: %w", err)
	}
	appliedSet := make(map[string]struct{}, len(done))
	for _, v := range done {
		appliedSet[v] = struct{}{}
	}

	files, err := fs.Glob(fsys, "*.up.sql")
	if err != nil {
		return nil, fmt.Errorf("could not list migrations: %w", err)
	}
	sort.Strings(files)

	var applied []string
	for _, file := range files {
		version := strings.TrimSuffix(path.Base(file), ".up.sql")
		if _, ok := appliedSet[version]; ok {
			continue
		}

		content, err := fs.ReadFile(fsys, file)
		if err != nil {
			return applied, fmt.Errorf("could not read migration file %s: %w", file, err)
		}
		for _, stmt := range SplitStatements(string(content)) {
			if _, err := db.ExecContext(ctx, stmt); err != nil {
				return applied, fmt.Errorf("could not execute migration %s: %w", file, err)
			}
		}
		if _, err := db.ExecContext(ctx, "INSERT INTO schema_migrations (version) VALUES (:1)", version); err != nil {
			return applied, fmt.Errorf("could not record migration %s: %w", file, err)
		}

		logger.Get().Info("Executed migration", zap.String("version", version))
		applied = append(applied, version)
	}

	logger.Get().Info("Migrations completed successfully", zap.Int("applied", len(applied)))
	return applied, nil
}

// SplitStatements splits a SQL script on semicolons that end a line. Oracle
// drivers execute one statement per call and reject the trailing semicolon.
func SplitStatements(script string) []string {
	var (
		out []string
		cur strings.Builder
	)
	for _, line := range strings.Split(script, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "--") {
			continue
		}
		if strings.HasSuffix(trimmed, ";") {
			cur.WriteString(strings.TrimSuffix(trimmed, ";"))
			out = append(out, cur.String())
			cur.Reset()
			continue
		}
		cur.WriteString(trimmed)
		cur.WriteString("\n")
	}
	if rest := strings.TrimSpace(cur.String()); rest != "" {
		out = append(out, rest)
	}
	return out
}
