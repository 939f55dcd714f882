package repository

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"bio-kids-puzzles/internal/domain"
	"bio-kids-puzzles/internal/validation"

	"gopkg.in/yaml.v3"
)

//go:embed data/levels.yaml
var embeddedLevels []byte

// EmbeddedLevels returns the level catalog compiled into the binary
func EmbeddedLevels() []byte {
	return embeddedLevels
}

type levelCatalogFile struct {
	Levels []domain.Level `yaml:"levels"`
}

// LevelFileRepository serves the level catalog from a YAML data asset.
// It is immutable after construction.
type LevelFileRepository struct {
	levels []*domain.Level
	byID   map[int]*domain.Level
}

// NewLevelFileRepository loads the catalog from path, or from the embedded
// asset when path is empty.
func NewLevelFileRepository(path string) (*LevelFileRepository, error) {
	data := embeddedLevels
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read level catalog %s: %w", path, err)
		}
	}
	return NewLevelFileRepositoryFromBytes(data)
}

// NewLevelFileRepositoryFromBytes parses and validates a YAML catalog
func NewLevelFileRepositoryFromBytes(data []byte) (*LevelFileRepository, error) {
	levels, err := ParseLevels(data)
	if err != nil {
		return nil, err
	}

	repo := &LevelFileRepository{
		levels: make([]*domain.Level, 0, len(levels)),
		byID:   make(map[int]*domain.Level, len(levels)),
	}
	for i := range levels {
		l := &levels[i]
		repo.levels = append(repo.levels, l)
		repo.byID[l.ID] = l
	}
	return repo, nil
}

// ParseLevels decodes a YAML catalog and validates every level
func ParseLevels(data []byte) ([]domain.Level, error) {
	var file levelCatalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, domain.NewCatalogSourceError("failed to parse level catalog", err)
	}
	if len(file.Levels) == 0 {
		return nil, domain.NewCatalogSourceError("level catalog is empty", nil)
	}

	v := validation.NewValidator()
	seen := make(map[int]struct{}, len(file.Levels))
	for i := range file.Levels {
		l := &file.Levels[i]
		if errs := v.ValidateStruct(l); len(errs) > 0 {
			return nil, domain.NewCatalogSourceError(fmt.Sprintf("level #%d is invalid", i+1), errs)
		}
		if err := l.Validate(); err != nil {
			return nil, domain.NewCatalogSourceError(fmt.Sprintf("level %d is invalid", l.ID), err)
		}
		if _, dup := seen[l.ID]; dup {
			return nil, domain.NewCatalogSourceError(fmt.Sprintf("duplicate level id %d", l.ID), nil)
		}
		seen[l.ID] = struct{}{}
	}
	return file.Levels, nil
}

// FindLevel implements domain.LevelRepository
func (r *LevelFileRepository) FindLevel(_ context.Context, id int) (*domain.Level, error) {
	l, ok := r.byID[id]
	if !ok {
		return nil, domain.NewLevelNotFoundError(id)
	}
	return l, nil
}

// ListLevels implements domain.LevelRepository
func (r *LevelFileRepository) ListLevels(_ context.Context) ([]*domain.Level, error) {
	out := make([]*domain.Level, len(r.levels))
	copy(out, r.levels)
	return out, nil
}
