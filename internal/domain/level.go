package domain

import (
	"context"
	"fmt"
	"strings"
)

// Difficulty is the tier a level belongs to
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ParseDifficulty converts a string to a Difficulty, case-insensitively.
func ParseDifficulty(s string) (Difficulty, error) {
	switch d := Difficulty(strings.ToLower(strings.TrimSpace(s))); d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return d, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q", s)
	}
}

// Valid reports whether d is one of the known tiers
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Question is a single multiple-choice question. Immutable once loaded.
type Question struct {
	Prompt             string   `json:"prompt" yaml:"prompt" validate:"required"`
	Options            []string `json:"options" yaml:"options" validate:"min=2,unique,dive,required"`
	CorrectOptionIndex int      `json:"correct_option_index" yaml:"correct_option_index" validate:"min=0"`
	Explanation        string   `json:"explanation" yaml:"explanation"`
}

// IsCorrect reports whether option is the correct answer
func (q *Question) IsCorrect(option int) bool {
	return option == q.CorrectOptionIndex
}

// HasOption reports whether option is a valid index into Options
func (q *Question) HasOption(option int) bool {
	return option >= 0 && option < len(q.Options)
}

// Validate checks the question invariants
func (q *Question) Validate() error {
	var errs ValidationErrors
	if strings.TrimSpace(q.Prompt) == "" {
		errs = append(errs, NewMissingFieldError("prompt"))
	}
	if len(q.Options) < 2 {
		errs = append(errs, NewValidationError("options", "at least two options are required"))
	}
	seen := make(map[string]struct{}, len(q.Options))
	for i, opt := range q.Options {
		if strings.TrimSpace(opt) == "" {
			errs = append(errs, NewMissingFieldError(fmt.Sprintf("options[%d]", i)))
			continue
		}
		if _, dup := seen[opt]; dup {
			errs = append(errs, NewValidationError(fmt.Sprintf("options[%d]", i), "options must be distinct"))
		}
		seen[opt] = struct{}{}
	}
	if !q.HasOption(q.CorrectOptionIndex) {
		errs = append(errs, NewOutOfRangeError("correct_option_index", q.CorrectOptionIndex, 0, len(q.Options)-1))
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Level is a named, ordered set of questions sharing a theme and difficulty tier
type Level struct {
	ID         int        `json:"id" yaml:"id" validate:"required,gt=0"`
	Title      string     `json:"title" yaml:"title" validate:"required"`
	Theme      string     `json:"theme" yaml:"theme"`
	Difficulty Difficulty `json:"difficulty" yaml:"difficulty" validate:"required,oneof=easy medium hard"`
	Locked     bool       `json:"locked" yaml:"locked"`
	Questions  []Question `json:"questions" yaml:"questions" validate:"required,min=1,dive"`
}

// QuestionCount returns the number of questions in the level
func (l *Level) QuestionCount() int {
	return len(l.Questions)
}

// Validate checks the level invariants, including every question
func (l *Level) Validate() error {
	var errs ValidationErrors
	if l.ID <= 0 {
		errs = append(errs, NewValidationError("id", "id must be a positive integer"))
	}
	if strings.TrimSpace(l.Title) == "" {
		errs = append(errs, NewMissingFieldError("title"))
	}
	if !l.Difficulty.Valid() {
		errs = append(errs, NewInvalidFormatError("difficulty", string(l.Difficulty)))
	}
	if len(l.Questions) == 0 {
		errs = append(errs, NewValidationError("questions", "a level needs at least one question"))
	}
	for i := range l.Questions {
		if err := l.Questions[i].Validate(); err != nil {
			if qErrs, ok := err.(ValidationErrors); ok {
				for _, qe := range qErrs {
					qe.Field = fmt.Sprintf("questions[%d].%s", i, qe.Field)
					errs = append(errs, qe)
				}
			}
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// LevelRepository is the read-only level catalog
type LevelRepository interface {
	// FindLevel returns ErrLevelNotFound when no level has the given id
	FindLevel(ctx context.Context, id int) (*Level, error)

	// ListLevels returns all levels in catalog order
	ListLevels(ctx context.Context) ([]*Level, error)
}
