package main

import (
	"context"
	"fmt"

	"bio-kids-puzzles/internal/domain"

	"golang.org/x/sync/errgroup"
)

const verifyConcurrency = 4

// LevelWriter persists one level at a catalog position
type LevelWriter interface {
	SaveLevel(ctx context.Context, level *domain.Level, position int) error
}

// seedLevels replaces every level in one transaction, keeping source order
func seedLevels(ctx context.Context, tm domain.TransactionManager, w LevelWriter, levels []*domain.Level) error {
	return tm.WithTransaction(ctx, func(txCtx context.Context) error {
		for i, level := range levels {
			if err := w.SaveLevel(txCtx, level, i+1); err != nil {
				return err
			}
		}
		return nil
	})
}

// verifySeed reads every level back and compares it with its source
func verifySeed(ctx context.Context, repo domain.LevelRepository, levels []*domain.Level) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(verifyConcurrency)

	for _, want := range levels {
		g.Go(func() error {
			got, err := repo.FindLevel(gctx, want.ID)
			if err != nil {
				return fmt.Errorf("level %d: %w", want.ID, err)
			}
			if got.Title != want.Title || got.Locked != want.Locked || got.Difficulty != want.Difficulty {
				return fmt.Errorf("level %d: stored header differs from source", want.ID)
			}
			if got.QuestionCount() != want.QuestionCount() {
				return fmt.Errorf("level %d: stored %d questions, source has %d", want.ID, got.QuestionCount(), want.QuestionCount())
			}
			for i := range want.Questions {
				if got.Questions[i].CorrectOptionIndex != want.Questions[i].CorrectOptionIndex {
					return fmt.Errorf("level %d question %d: correct option differs", want.ID, i+1)
				}
			}
			return nil
		})
	}
	return g.Wait()
}
