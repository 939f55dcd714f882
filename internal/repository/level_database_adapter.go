package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"bio-kids-puzzles/internal/domain"
	"bio-kids-puzzles/internal/repository/models"
	"bio-kids-puzzles/internal/util"
)

const (
	selectLevelColumns    = "SELECT id, position, title, theme, difficulty, locked, created_at, updated_at FROM levels"
	selectQuestionColumns = "SELECT level_id, position, prompt, options, correct_option_index, explanation FROM level_questions"
)

// LevelDatabaseAdapter reads the level catalog from the levels and
// level_questions tables.
type LevelDatabaseAdapter struct {
	db DBTX
}

// NewLevelDatabaseAdapter creates a new instance of LevelDatabaseAdapter
func NewLevelDatabaseAdapter(db DBTX) *LevelDatabaseAdapter {
	return &LevelDatabaseAdapter{db: db}
}

// FindLevel implements domain.LevelRepository
func (r *LevelDatabaseAdapter) FindLevel(ctx context.Context, id int) (*domain.Level, error) {
	exec := GetExecutor(ctx, r.db)

	var row models.Level
	if err := exec.GetContext(ctx, &row, selectLevelColumns+" WHERE id = :1", id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewLevelNotFoundError(id)
		}
		return nil, domain.NewCatalogSourceError(fmt.Sprintf("failed to load level %d", id), err)
	}

	var questions []models.LevelQuestion
	if err := exec.SelectContext(ctx, &questions, selectQuestionColumns+" WHERE level_id = :1 ORDER BY position", id); err != nil {
		return nil, domain.NewCatalogSourceError(fmt.Sprintf("failed to load questions of level %d", id), err)
	}

	level := toDomainLevel(&row, questions)
	if err := level.Validate(); err != nil {
		return nil, domain.NewCatalogSourceError(fmt.Sprintf("level %d is invalid", id), err)
	}
	return level, nil
}

// ListLevels implements domain.LevelRepository. Levels come back in catalog
// position order.
func (r *LevelDatabaseAdapter) ListLevels(ctx context.Context) ([]*domain.Level, error) {
	exec := GetExecutor(ctx, r.db)

	var rows []models.Level
	if err := exec.SelectContext(ctx, &rows, selectLevelColumns+" ORDER BY position, id"); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []*domain.Level{}, nil
		}
		return nil, domain.NewCatalogSourceError("failed to list levels", err)
	}

	var questions []models.LevelQuestion
	if err := exec.SelectContext(ctx, &questions, selectQuestionColumns+" ORDER BY level_id, position"); err != nil {
		return nil, domain.NewCatalogSourceError("failed to list level questions", err)
	}

	byLevel := make(map[int64][]models.LevelQuestion, len(rows))
	for _, q := range questions {
		byLevel[q.LevelID] = append(byLevel[q.LevelID], q)
	}

	levels := make([]*domain.Level, 0, len(rows))
	for i := range rows {
		level := toDomainLevel(&rows[i], byLevel[rows[i].ID])
		if err := level.Validate(); err != nil {
			return nil, domain.NewCatalogSourceError(fmt.Sprintf("level %d is invalid", level.ID), err)
		}
		levels = append(levels, level)
	}
	return levels, nil
}

// SaveLevel replaces a level and its questions. position fixes the level's
// place in the catalog. Run it inside a transaction so the replacement is
// atomic.
func (r *LevelDatabaseAdapter) SaveLevel(ctx context.Context, level *domain.Level, position int) error {
	if err := level.Validate(); err != nil {
		return err
	}
	exec := GetExecutor(ctx, r.db)
	now := time.Now()

	if _, err := exec.ExecContext(ctx, "DELETE FROM level_questions WHERE level_id = :1", level.ID); err != nil {
		return fmt.Errorf("failed to delete questions of level %d: %w", level.ID, err)
	}
	if _, err := exec.ExecContext(ctx, "DELETE FROM levels WHERE id = :1", level.ID); err != nil {
		return fmt.Errorf("failed to delete level %d: %w", level.ID, err)
	}

	row := toModelLevel(level, position, now)
	_, err := exec.ExecContext(ctx,
		`INSERT INTO levels (id, position, title, theme, difficulty, locked, created_at, updated_at)
		 VALUES (:1, :2, :3, :4, :5, :6, :7, :8)`,
		row.ID, row.Position, row.Title, row.Theme, row.Difficulty, row.Locked, row.CreatedAt, row.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert level %d: %w", level.ID, err)
	}

	for i, q := range toModelQuestions(level) {
		_, err := exec.ExecContext(ctx,
			`INSERT INTO level_questions (level_id, position, prompt, options, correct_option_index, explanation)
			 VALUES (:1, :2, :3, :4, :5, :6)`,
			q.LevelID, q.Position, q.Prompt, q.Options, q.CorrectOptionIndex, q.Explanation)
		if err != nil {
			return fmt.Errorf("failed to insert question %d of level %d: %w", i+1, level.ID, err)
		}
	}
	return nil
}

func toDomainLevel(row *models.Level, questions []models.LevelQuestion) *domain.Level {
	level := &domain.Level{
		ID:         int(row.ID),
		Title:      row.Title,
		Theme:      row.Theme.String,
		Difficulty: domain.Difficulty(row.Difficulty),
		Locked:     row.Locked != 0,
		Questions:  make([]domain.Question, 0, len(questions)),
	}
	for _, q := range questions {
		level.Questions = append(level.Questions, domain.Question{
			Prompt:             q.Prompt,
			Options:            []string(q.Options),
			CorrectOptionIndex: int(q.CorrectOptionIndex),
			Explanation:        q.Explanation.String,
		})
	}
	return level
}

func toModelLevel(level *domain.Level, position int, now time.Time) *models.Level {
	var locked int64
	if level.Locked {
		locked = 1
	}
	return &models.Level{
		ID:         int64(level.ID),
		Position:   int64(position),
		Title:      level.Title,
		Theme:      util.StringToNullString(level.Theme),
		Difficulty: string(level.Difficulty),
		Locked:     locked,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func toModelQuestions(level *domain.Level) []models.LevelQuestion {
	out := make([]models.LevelQuestion, len(level.Questions))
	for i, q := range level.Questions {
		out[i] = models.LevelQuestion{
			LevelID:            int64(level.ID),
			Position:           int64(i + 1),
			Prompt:             q.Prompt,
			Options:            models.StringSlice(q.Options),
			CorrectOptionIndex: int64(q.CorrectOptionIndex),
			Explanation:        util.StringToNullString(q.Explanation),
		}
	}
	return out
}
