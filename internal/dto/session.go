package dto

// Option statuses shown once the current question is revealed
const (
	OptionStatusCorrect   = "correct"
	OptionStatusIncorrect = "incorrect"
	OptionStatusDimmed    = "dimmed"
)

// OptionView is one answer choice. Status is empty until the question is answered.
type OptionView struct {
	Index  int    `json:"index"`
	Label  string `json:"label"`
	Text   string `json:"text"`
	Status string `json:"status,omitempty"`
}

// QuestionView is the current question as shown to the learner
type QuestionView struct {
	Prompt  string       `json:"prompt"`
	Options []OptionView `json:"options"`
}

// SessionResponse is the learner-facing view of a live quiz session
// @Description Quiz session state
type SessionResponse struct {
	SessionID       string        `json:"session_id"`
	Level           LevelRef      `json:"level"`
	State           string        `json:"state"`
	QuestionNumber  int           `json:"question_number"`
	TotalQuestions  int           `json:"total_questions"`
	Question        *QuestionView `json:"question,omitempty"`
	SelectedAnswer  *int          `json:"selected_answer,omitempty"`
	Explanation     string        `json:"explanation,omitempty"`
	IsLastQuestion  bool          `json:"is_last_question"`
	ProgressPercent float64       `json:"progress_percent"`
	CorrectCount    int           `json:"correct_count"`
	AnsweredCount   int           `json:"answered_count"`
	Stars           int           `json:"stars"`
	Completed       bool          `json:"completed"`
}

// SubmitAnswerRequest carries the chosen option
// @Description Request body for answering the current question
type SubmitAnswerRequest struct {
	OptionIndex *int `json:"option_index" validate:"required,min=0"`
}

// FeedbackResponse is the outcome of a submitted answer
type FeedbackResponse struct {
	// Correct and SelectedOption are omitted when no answer is on record for
	// the current question, as on a completed session
	Correct        *bool  `json:"correct,omitempty"`
	SelectedOption *int   `json:"selected_option,omitempty"`
	CorrectOption  int    `json:"correct_option"`
	Explanation    string `json:"explanation,omitempty"`
	// Duplicate is set when the question was already answered and the
	// submission changed nothing
	Duplicate bool `json:"duplicate"`
}

// SubmitAnswerResponse returns the feedback together with the updated session
type SubmitAnswerResponse struct {
	Feedback FeedbackResponse `json:"feedback"`
	Session  SessionResponse  `json:"session"`
}

// HealthResponse reports service liveness
type HealthResponse struct {
	Status string `json:"status"`
	Cache  string `json:"cache"`
}
