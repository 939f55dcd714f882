package service

import (
	"context"
	"errors"

	"bio-kids-puzzles/internal/domain"
	"bio-kids-puzzles/internal/dto"
	"bio-kids-puzzles/internal/logger"

	"go.uber.org/zap"
)

// LevelService exposes the level catalog and guards entry into a level
type LevelService interface {
	ListLevels(ctx context.Context) (*dto.LevelListResponse, error)
	GetLevel(ctx context.Context, levelID int) (*dto.LevelSummaryResponse, error)
	// OpenLevel returns the level only when it exists and is unlocked
	OpenLevel(ctx context.Context, levelID int) (*domain.Level, error)
}

type levelService struct {
	repo domain.LevelRepository
}

// NewLevelService creates a new instance of levelService
func NewLevelService(repo domain.LevelRepository) LevelService {
	return &levelService{repo: repo}
}

func (s *levelService) ListLevels(ctx context.Context) (*dto.LevelListResponse, error) {
	levels, err := s.repo.ListLevels(ctx)
	if err != nil {
		return nil, wrapRepoError("failed to list levels", err)
	}

	resp := &dto.LevelListResponse{Levels: make([]dto.LevelSummaryResponse, 0, len(levels))}
	for _, l := range levels {
		resp.Levels = append(resp.Levels, toLevelSummary(l))
	}
	return resp, nil
}

func (s *levelService) GetLevel(ctx context.Context, levelID int) (*dto.LevelSummaryResponse, error) {
	level, err := s.repo.FindLevel(ctx, levelID)
	if err != nil {
		return nil, wrapRepoError("failed to load level", err)
	}
	summary := toLevelSummary(level)
	return &summary, nil
}

func (s *levelService) OpenLevel(ctx context.Context, levelID int) (*domain.Level, error) {
	level, err := s.repo.FindLevel(ctx, levelID)
	if err != nil {
		return nil, wrapRepoError("failed to load level", err)
	}
	if level.Locked {
		logger.Get().Info("Refused to open locked level", zap.Int("level_id", levelID))
		return nil, domain.NewLevelLockedError(levelID)
	}
	return level, nil
}

// wrapRepoError passes domain errors through and wraps anything else as internal
func wrapRepoError(message string, err error) error {
	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		return err
	}
	return domain.NewInternalError(message, err)
}

func toLevelSummary(l *domain.Level) dto.LevelSummaryResponse {
	return dto.LevelSummaryResponse{
		ID:            l.ID,
		Title:         l.Title,
		Theme:         l.Theme,
		Difficulty:    string(l.Difficulty),
		Locked:        l.Locked,
		QuestionCount: l.QuestionCount(),
	}
}
