package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestLevel builds a level with n questions; question i has 3 options and
// its correct answer at index i%3.
func newTestLevel(n int) *Level {
	qs := make([]Question, n)
	for i := range qs {
		qs[i] = Question{
			Prompt:             fmt.Sprintf("question %d", i+1),
			Options:            []string{"a", "b", "c"},
			CorrectOptionIndex: i % 3,
			Explanation:        fmt.Sprintf("because %d", i+1),
		}
	}
	return &Level{ID: 1, Title: "Test", Theme: "Testing", Difficulty: DifficultyEasy, Questions: qs}
}

func wrongOption(q *Question) int {
	return (q.CorrectOptionIndex + 1) % len(q.Options)
}

func assertInitial(t *testing.T, s *QuizSession) {
	t.Helper()
	assert.Equal(t, 0, s.CurrentIndex())
	assert.Equal(t, 0, s.AnsweredCount())
	assert.Equal(t, 0, s.CorrectCount())
	assert.False(t, s.Completed())
	assert.Equal(t, StatePresenting, s.State())
	_, ok := s.SelectedAnswer()
	assert.False(t, ok)
	for i := 0; i < s.TotalQuestions(); i++ {
		assert.False(t, s.IsAnswered(i))
	}
}

func TestNewQuizSession_InitialState(t *testing.T) {
	for _, n := range []int{1, 3, 10} {
		t.Run(fmt.Sprintf("%d questions", n), func(t *testing.T) {
			assertInitial(t, NewQuizSession(newTestLevel(n)))
		})
	}
}

func TestSubmitAnswer_Correct(t *testing.T) {
	s := NewQuizSession(newTestLevel(3))

	fb, err := s.SubmitAnswer(0)
	require.NoError(t, err)
	assert.True(t, fb.Correct)
	assert.False(t, fb.Duplicate)
	assert.Equal(t, 0, fb.CorrectOption)
	assert.Equal(t, "because 1", fb.Explanation)

	assert.Equal(t, StateRevealed, s.State())
	assert.Equal(t, 1, s.CorrectCount())
	assert.True(t, s.IsCurrentAnswered())
	sel, ok := s.SelectedAnswer()
	assert.True(t, ok)
	assert.Equal(t, 0, sel)
}

func TestSubmitAnswer_Incorrect(t *testing.T) {
	s := NewQuizSession(newTestLevel(3))

	fb, err := s.SubmitAnswer(2)
	require.NoError(t, err)
	assert.False(t, fb.Correct)
	assert.Equal(t, 2, fb.SelectedOption)
	assert.Equal(t, 0, fb.CorrectOption)
	assert.Equal(t, 0, s.CorrectCount())
	assert.Equal(t, 1, s.AnsweredCount())
	assert.Equal(t, StateRevealed, s.State())
}

func TestSubmitAnswer_OneShotScoring(t *testing.T) {
	s := NewQuizSession(newTestLevel(3))

	_, err := s.SubmitAnswer(0)
	require.NoError(t, err)
	fb, err := s.SubmitAnswer(0)
	require.NoError(t, err)

	assert.True(t, fb.Duplicate)
	assert.True(t, fb.Correct)
	assert.Equal(t, 1, s.CorrectCount())
	assert.Equal(t, 1, s.AnsweredCount())
}

func TestSubmitAnswer_ReanswerKeepsFirstChoice(t *testing.T) {
	s := NewQuizSession(newTestLevel(3))

	_, err := s.SubmitAnswer(1)
	require.NoError(t, err)
	fb, err := s.SubmitAnswer(0)
	require.NoError(t, err)

	assert.True(t, fb.Duplicate)
	assert.True(t, fb.HasSelection())
	assert.False(t, fb.Correct)
	assert.Equal(t, 1, fb.SelectedOption)
	assert.Equal(t, 0, s.CorrectCount())
	sel, _ := s.SelectedAnswer()
	assert.Equal(t, 1, sel)
}

func TestSubmitAnswer_RejectsOutOfRange(t *testing.T) {
	for _, option := range []int{-1, 3, 100} {
		t.Run(fmt.Sprintf("option %d", option), func(t *testing.T) {
			s := NewQuizSession(newTestLevel(3))
			before := s.Snapshot()

			_, err := s.SubmitAnswer(option)

			assert.ErrorIs(t, err, ErrInvalidOption)
			var domainErr *DomainError
			require.True(t, errors.As(err, &domainErr))
			assert.Equal(t, CodeInvalidOption, domainErr.Code)
			assert.Equal(t, before, s.Snapshot())
			assert.Equal(t, StatePresenting, s.State())
		})
	}
}

func TestAdvance_BeforeAnswer(t *testing.T) {
	s := NewQuizSession(newTestLevel(3))
	before := s.Snapshot()

	err := s.Advance()

	assert.ErrorIs(t, err, ErrAdvanceBeforeAnswer)
	assert.Equal(t, before, s.Snapshot())
}

func TestAdvance_MovesToNextQuestion(t *testing.T) {
	s := NewQuizSession(newTestLevel(3))
	_, err := s.SubmitAnswer(0)
	require.NoError(t, err)

	require.NoError(t, s.Advance())

	assert.Equal(t, 1, s.CurrentIndex())
	assert.Equal(t, StatePresenting, s.State())
	_, ok := s.SelectedAnswer()
	assert.False(t, ok)
	assert.True(t, s.IsAnswered(0))
	assert.False(t, s.IsCurrentAnswered())
}

func TestAdvance_CompletesAfterLastQuestion(t *testing.T) {
	level := newTestLevel(4)
	s := NewQuizSession(level)

	for i := 0; i < level.QuestionCount(); i++ {
		assert.False(t, s.Completed())
		assert.Equal(t, i, s.CurrentIndex())
		assert.Equal(t, i == level.QuestionCount()-1, s.IsLastQuestion())
		_, err := s.SubmitAnswer(level.Questions[i].CorrectOptionIndex)
		require.NoError(t, err)
		require.NoError(t, s.Advance())
	}

	assert.True(t, s.Completed())
	assert.Equal(t, StateCompleted, s.State())
	assert.Equal(t, 3, s.CurrentIndex())
	_, ok := s.SelectedAnswer()
	assert.False(t, ok)

	for i := 0; i < 3; i++ {
		require.NoError(t, s.Advance())
		assert.Equal(t, 3, s.CurrentIndex())
		assert.True(t, s.Completed())
	}
}

func TestSubmitAnswer_AfterCompletionIsIgnored(t *testing.T) {
	s := NewQuizSession(newTestLevel(1))
	_, err := s.SubmitAnswer(1)
	require.NoError(t, err)
	require.NoError(t, s.Advance())
	require.True(t, s.Completed())

	fb, err := s.SubmitAnswer(0)

	require.NoError(t, err)
	assert.True(t, fb.Duplicate)
	assert.False(t, fb.HasSelection())
	assert.Equal(t, 0, s.CorrectCount())
	assert.True(t, s.Completed())
}

func TestProgressMonotonicity(t *testing.T) {
	level := newTestLevel(5)
	s := NewQuizSession(level)
	prev := s.AnsweredCount()

	// A noisy event stream: duplicates, bad options and early advances.
	steps := []func(){
		func() { _ = s.Advance() },
		func() { _, _ = s.SubmitAnswer(-1) },
		func() { _, _ = s.SubmitAnswer(0) },
		func() { _, _ = s.SubmitAnswer(0) },
		func() { _ = s.Advance() },
		func() { _ = s.Advance() },
		func() { _, _ = s.SubmitAnswer(2) },
		func() { _ = s.Advance() },
		func() { _, _ = s.SubmitAnswer(1) },
		func() { _ = s.Advance() },
		func() { _, _ = s.SubmitAnswer(7) },
		func() { _, _ = s.SubmitAnswer(1) },
		func() { _ = s.Advance() },
		func() { _, _ = s.SubmitAnswer(1) },
		func() { _ = s.Advance() },
		func() { _ = s.Advance() },
	}
	for _, step := range steps {
		step()
		assert.GreaterOrEqual(t, s.AnsweredCount(), prev)
		assert.LessOrEqual(t, s.AnsweredCount(), level.QuestionCount())
		assert.LessOrEqual(t, s.CorrectCount(), s.AnsweredCount())
		prev = s.AnsweredCount()
	}
	assert.True(t, s.Completed())
	assert.Equal(t, 100.0, s.ProgressPercent())
}

func TestStarsEarned(t *testing.T) {
	tests := []struct {
		total   int
		correct int
		want    int
	}{
		{3, 0, 0},
		{3, 1, 1},
		{3, 2, 2},
		{3, 3, 3},
		{10, 6, 1},
		{10, 7, 2},
		{10, 10, 3},
		{10, 3, 0},
		{10, 4, 1},
		{1, 1, 3},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d of %d", tt.correct, tt.total), func(t *testing.T) {
			level := newTestLevel(tt.total)
			s := NewQuizSession(level)
			for i := 0; i < tt.total; i++ {
				q := &level.Questions[i]
				option := wrongOption(q)
				if i < tt.correct {
					option = q.CorrectOptionIndex
				}
				_, err := s.SubmitAnswer(option)
				require.NoError(t, err)
				require.NoError(t, s.Advance())
			}
			assert.Equal(t, tt.correct, s.CorrectCount())
			assert.Equal(t, tt.want, s.StarsEarned())
			assert.Equal(t, tt.want, s.Summary().Stars)
		})
	}
}

func TestStarsFor_Clamped(t *testing.T) {
	assert.Equal(t, 0, StarsFor(0, 0))
	assert.Equal(t, 0, StarsFor(-2, 3))
	assert.Equal(t, 3, StarsFor(5, 3))
}

func TestProgressPercent(t *testing.T) {
	s := NewQuizSession(newTestLevel(4))
	assert.Equal(t, 0.0, s.ProgressPercent())

	_, err := s.SubmitAnswer(0)
	require.NoError(t, err)
	assert.Equal(t, 25.0, s.ProgressPercent())

	require.NoError(t, s.Advance())
	assert.Equal(t, 25.0, s.ProgressPercent())
}

func TestRestart_ReturnsToInitialState(t *testing.T) {
	level := newTestLevel(3)
	s := NewQuizSession(level)

	play := func() []int {
		var trajectory []int
		for i := 0; i < level.QuestionCount(); i++ {
			option := level.Questions[i].CorrectOptionIndex
			if i == 1 {
				option = wrongOption(&level.Questions[i])
			}
			_, err := s.SubmitAnswer(option)
			require.NoError(t, err)
			trajectory = append(trajectory, s.CorrectCount())
			require.NoError(t, s.Advance())
		}
		return trajectory
	}

	first := play()
	require.True(t, s.Completed())

	s.Restart()
	assertInitial(t, s)
	assert.Equal(t, NewQuizSession(level).Snapshot(), s.Snapshot())

	second := play()
	assert.Equal(t, []int{1, 1, 2}, first)
	assert.Equal(t, first, second)
}

func TestRestart_MidQuestion(t *testing.T) {
	s := NewQuizSession(newTestLevel(3))
	_, err := s.SubmitAnswer(0)
	require.NoError(t, err)

	s.Restart()

	assertInitial(t, s)
}

func TestSnapshot_RoundTrip(t *testing.T) {
	level := newTestLevel(3)
	s := NewQuizSession(level)
	_, err := s.SubmitAnswer(0)
	require.NoError(t, err)
	require.NoError(t, s.Advance())
	_, err = s.SubmitAnswer(2)
	require.NoError(t, err)

	restored, err := RestoreSession(level, s.Snapshot())
	require.NoError(t, err)

	assert.Equal(t, s.Snapshot(), restored.Snapshot())
	assert.Equal(t, StateRevealed, restored.State())
	sel, ok := restored.SelectedAnswer()
	assert.True(t, ok)
	assert.Equal(t, 2, sel)

	// the restored session keeps enforcing the one-shot guard
	fb, err := restored.SubmitAnswer(1)
	require.NoError(t, err)
	assert.True(t, fb.Duplicate)
	assert.Equal(t, 1, restored.CorrectCount())
}

func TestRestoreSession_RejectsInconsistentSnapshots(t *testing.T) {
	level := newTestLevel(3)
	one := 1
	tests := []struct {
		name string
		snap Snapshot
	}{
		{"wrong level", Snapshot{LevelID: 2}},
		{"index out of range", Snapshot{LevelID: 1, CurrentIndex: 3}},
		{"negative index", Snapshot{LevelID: 1, CurrentIndex: -1}},
		{"answered out of range", Snapshot{LevelID: 1, Answered: []int{5}}},
		{"answered twice", Snapshot{LevelID: 1, CurrentIndex: 1, Answered: []int{0, 0}}},
		{"skipped question", Snapshot{LevelID: 1, CurrentIndex: 2, Answered: []int{0}}},
		{"answered ahead", Snapshot{LevelID: 1, CurrentIndex: 0, Answered: []int{2}}},
		{"correct exceeds answered", Snapshot{LevelID: 1, CurrentIndex: 1, Answered: []int{0}, CorrectCount: 2}},
		{"selection without answer", Snapshot{LevelID: 1, SelectedAnswer: &one}},
		{"answer without selection", Snapshot{LevelID: 1, Answered: []int{0}}},
		{"completed early", Snapshot{LevelID: 1, CurrentIndex: 1, Answered: []int{0, 1}, Completed: true}},
		{"completed with selection", Snapshot{LevelID: 1, CurrentIndex: 2, Answered: []int{0, 1, 2}, Completed: true, SelectedAnswer: &one}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := RestoreSession(level, tt.snap)
			var domainErr *DomainError
			require.True(t, errors.As(err, &domainErr))
			assert.Equal(t, CodeInvalidSessionState, domainErr.Code)
		})
	}
}
