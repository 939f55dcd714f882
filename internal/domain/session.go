package domain

import "fmt"

// maxStars is the top of the star rating scale
const maxStars = 3

// SessionState names the node of the progression state machine a session is in
type SessionState string

const (
	// StatePresenting: the current question is shown and not yet answered
	StatePresenting SessionState = "presenting"
	// StateRevealed: the current question has been answered and feedback is shown
	StateRevealed SessionState = "revealed"
	// StateCompleted: the learner advanced past the last question
	StateCompleted SessionState = "completed"
)

// Feedback is the transient result of a submitted answer. It is not part of
// the session state.
type Feedback struct {
	QuestionIndex  int    `json:"question_index"`
	SelectedOption int    `json:"selected_option"`
	CorrectOption  int    `json:"correct_option"`
	Correct        bool   `json:"correct"`
	Explanation    string `json:"explanation"`
	// Duplicate is set when the question had already been answered and the
	// submission was ignored. The other fields describe the recorded answer;
	// SelectedOption is -1 and Correct is false when none is on record.
	Duplicate bool `json:"duplicate"`
}

// HasSelection reports whether the feedback names a chosen option
func (f Feedback) HasSelection() bool {
	return f.SelectedOption >= 0
}

// Summary is the derived scoring view of a session
type Summary struct {
	CorrectCount    int     `json:"correct_count"`
	AnsweredCount   int     `json:"answered_count"`
	TotalQuestions  int     `json:"total_questions"`
	ProgressPercent float64 `json:"progress_percent"`
	Stars           int     `json:"stars"`
	Completed       bool    `json:"completed"`
}

// QuizSession tracks a single attempt at one level.
//
// The zero value is not usable; construct with NewQuizSession or RestoreSession.
// A QuizSession is not safe for concurrent use.
type QuizSession struct {
	level          *Level
	currentIndex   int
	answered       []bool
	answeredCount  int
	selectedAnswer int
	hasSelection   bool
	correctCount   int
	completed      bool
}

// NewQuizSession creates a session positioned at the first question.
// The level must be valid and unlocked; that is checked by the caller.
func NewQuizSession(level *Level) *QuizSession {
	s := &QuizSession{level: level}
	s.Restart()
	return s
}

// Restart resets the session to its initial state
func (s *QuizSession) Restart() {
	s.currentIndex = 0
	s.answered = make([]bool, len(s.level.Questions))
	s.answeredCount = 0
	s.selectedAnswer = 0
	s.hasSelection = false
	s.correctCount = 0
	s.completed = false
}

// SubmitAnswer records the learner's choice for the current question.
//
// An out-of-range option returns ErrInvalidOption and leaves the session
// untouched. Re-answering an already answered question is ignored: the
// returned Feedback has Duplicate set and err is nil.
func (s *QuizSession) SubmitAnswer(option int) (Feedback, error) {
	i := s.currentIndex
	q := &s.level.Questions[i]

	if s.answered[i] {
		return s.recordedFeedback(i), nil
	}
	if !q.HasOption(option) {
		return Feedback{}, NewInvalidOptionError(option, len(q.Options))
	}

	s.selectedAnswer = option
	s.hasSelection = true
	s.answered[i] = true
	s.answeredCount++
	correct := q.IsCorrect(option)
	if correct {
		s.correctCount++
	}

	return Feedback{
		QuestionIndex:  i,
		SelectedOption: option,
		CorrectOption:  q.CorrectOptionIndex,
		Correct:        correct,
		Explanation:    q.Explanation,
	}, nil
}

func (s *QuizSession) recordedFeedback(i int) Feedback {
	q := &s.level.Questions[i]
	fb := Feedback{
		QuestionIndex:  i,
		SelectedOption: -1,
		CorrectOption:  q.CorrectOptionIndex,
		Explanation:    q.Explanation,
		Duplicate:      true,
	}
	if s.hasSelection {
		fb.SelectedOption = s.selectedAnswer
		fb.Correct = q.IsCorrect(s.selectedAnswer)
	}
	return fb
}

// Advance moves past the current, answered question. Advancing past the last
// question completes the session; advancing a completed session does nothing.
func (s *QuizSession) Advance() error {
	if s.completed {
		return nil
	}
	if !s.answered[s.currentIndex] {
		return NewAdvanceBeforeAnswerError(s.currentIndex)
	}

	s.hasSelection = false
	s.selectedAnswer = 0
	if s.currentIndex < len(s.level.Questions)-1 {
		s.currentIndex++
		return nil
	}
	s.completed = true
	return nil
}

// State reports the current node of the state machine
func (s *QuizSession) State() SessionState {
	switch {
	case s.completed:
		return StateCompleted
	case s.answered[s.currentIndex]:
		return StateRevealed
	default:
		return StatePresenting
	}
}

func (s *QuizSession) Level() *Level { return s.level }

func (s *QuizSession) CurrentIndex() int { return s.currentIndex }

// CurrentQuestion returns the question at the current index. After completion
// it still returns the last question; callers should check Completed first.
func (s *QuizSession) CurrentQuestion() *Question {
	return &s.level.Questions[s.currentIndex]
}

// SelectedAnswer returns the option chosen for the current question, if any
func (s *QuizSession) SelectedAnswer() (int, bool) {
	return s.selectedAnswer, s.hasSelection
}

// IsAnswered reports whether question i has received an answer
func (s *QuizSession) IsAnswered(i int) bool {
	if i < 0 || i >= len(s.answered) {
		return false
	}
	return s.answered[i]
}

func (s *QuizSession) IsCurrentAnswered() bool { return s.answered[s.currentIndex] }

func (s *QuizSession) IsLastQuestion() bool {
	return s.currentIndex == len(s.level.Questions)-1
}

func (s *QuizSession) AnsweredCount() int { return s.answeredCount }

func (s *QuizSession) CorrectCount() int { return s.correctCount }

func (s *QuizSession) Completed() bool { return s.completed }

func (s *QuizSession) TotalQuestions() int { return len(s.level.Questions) }

// ProgressPercent is the share of answered questions, 0 to 100
func (s *QuizSession) ProgressPercent() float64 {
	return 100 * float64(s.answeredCount) / float64(len(s.level.Questions))
}

// StarsEarned is floor(3 * correct / total), clamped to [0, 3]
func (s *QuizSession) StarsEarned() int {
	return StarsFor(s.correctCount, len(s.level.Questions))
}

// StarsFor computes the star rating for correct answers out of total questions
func StarsFor(correct, total int) int {
	if total <= 0 || correct <= 0 {
		return 0
	}
	stars := maxStars * correct / total
	if stars > maxStars {
		return maxStars
	}
	return stars
}

// Summary returns the derived scoring view
func (s *QuizSession) Summary() Summary {
	return Summary{
		CorrectCount:    s.correctCount,
		AnsweredCount:   s.answeredCount,
		TotalQuestions:  len(s.level.Questions),
		ProgressPercent: s.ProgressPercent(),
		Stars:           s.StarsEarned(),
		Completed:       s.completed,
	}
}

// Snapshot is the serializable form of a live session
type Snapshot struct {
	LevelID        int   `json:"level_id"`
	CurrentIndex   int   `json:"current_index"`
	Answered       []int `json:"answered"`
	SelectedAnswer *int  `json:"selected_answer,omitempty"`
	CorrectCount   int   `json:"correct_count"`
	Completed      bool  `json:"completed"`
}

// Snapshot captures the session state
func (s *QuizSession) Snapshot() Snapshot {
	snap := Snapshot{
		LevelID:      s.level.ID,
		CurrentIndex: s.currentIndex,
		Answered:     make([]int, 0, s.answeredCount),
		CorrectCount: s.correctCount,
		Completed:    s.completed,
	}
	for i, ok := range s.answered {
		if ok {
			snap.Answered = append(snap.Answered, i)
		}
	}
	if s.hasSelection {
		sel := s.selectedAnswer
		snap.SelectedAnswer = &sel
	}
	return snap
}

// RestoreSession rebuilds a session from a snapshot taken against level.
// Snapshots that break the session invariants are rejected.
func RestoreSession(level *Level, snap Snapshot) (*QuizSession, error) {
	if level == nil {
		return nil, NewInvalidSessionStateError("level is required")
	}
	if snap.LevelID != level.ID {
		return nil, NewInvalidSessionStateError(fmt.Sprintf("snapshot belongs to level %d, not %d", snap.LevelID, level.ID))
	}
	n := len(level.Questions)
	if snap.CurrentIndex < 0 || snap.CurrentIndex >= n {
		return nil, NewInvalidSessionStateError(fmt.Sprintf("current index %d out of range", snap.CurrentIndex))
	}

	s := NewQuizSession(level)
	for _, i := range snap.Answered {
		if i < 0 || i >= n {
			return nil, NewInvalidSessionStateError(fmt.Sprintf("answered index %d out of range", i))
		}
		if s.answered[i] {
			return nil, NewInvalidSessionStateError(fmt.Sprintf("question %d answered twice", i))
		}
		s.answered[i] = true
		s.answeredCount++
	}
	// Questions are answered in order: everything before the current index is
	// answered and nothing after it is.
	for i, ok := range s.answered {
		if i < snap.CurrentIndex && !ok {
			return nil, NewInvalidSessionStateError(fmt.Sprintf("question %d was skipped", i))
		}
		if i > snap.CurrentIndex && ok {
			return nil, NewInvalidSessionStateError(fmt.Sprintf("question %d answered ahead of current", i))
		}
	}
	if snap.CorrectCount < 0 || snap.CorrectCount > s.answeredCount {
		return nil, NewInvalidSessionStateError("correct count exceeds answered count")
	}
	if snap.Completed && !s.answered[snap.CurrentIndex] {
		return nil, NewInvalidSessionStateError("completed session must have answered its last question")
	}
	if snap.Completed && snap.CurrentIndex != n-1 {
		return nil, NewInvalidSessionStateError("completed session must rest on the last question")
	}

	if snap.SelectedAnswer != nil {
		if snap.Completed || !s.answered[snap.CurrentIndex] {
			return nil, NewInvalidSessionStateError("selected answer without an answered current question")
		}
		if !level.Questions[snap.CurrentIndex].HasOption(*snap.SelectedAnswer) {
			return nil, NewInvalidSessionStateError("selected answer out of range")
		}
		s.selectedAnswer = *snap.SelectedAnswer
		s.hasSelection = true
	} else if !snap.Completed && s.answered[snap.CurrentIndex] {
		return nil, NewInvalidSessionStateError("answered current question is missing its selected answer")
	}

	s.currentIndex = snap.CurrentIndex
	s.correctCount = snap.CorrectCount
	s.completed = snap.Completed
	return s, nil
}
