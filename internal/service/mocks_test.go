package service

import (
	"context"
	"fmt"
	"time"

	"bio-kids-puzzles/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockLevelRepository ---
type MockLevelRepository struct {
	mock.Mock
}

func (m *MockLevelRepository) FindLevel(ctx context.Context, id int) (*domain.Level, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Level), args.Error(1)
}

func (m *MockLevelRepository) ListLevels(ctx context.Context) ([]*domain.Level, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Level), args.Error(1)
}

// --- MockCache ---
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// testLevel builds a valid level with n three-option questions whose correct
// option is i%3
func testLevel(id, n int, locked bool) *domain.Level {
	level := &domain.Level{
		ID:         id,
		Title:      fmt.Sprintf("Уровень %d", id),
		Theme:      "Природа",
		Difficulty: domain.DifficultyEasy,
		Locked:     locked,
	}
	for i := 0; i < n; i++ {
		level.Questions = append(level.Questions, domain.Question{
			Prompt:             fmt.Sprintf("Вопрос %d?", i+1),
			Options:            []string{"Первый", "Второй", "Третий"},
			CorrectOptionIndex: i % 3,
			Explanation:        fmt.Sprintf("Пояснение %d", i+1),
		})
	}
	return level
}
