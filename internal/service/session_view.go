package service

import (
	"bio-kids-puzzles/internal/domain"
	"bio-kids-puzzles/internal/dto"
)

// optionLabel returns "A" for 0, "B" for 1 and so on
func optionLabel(i int) string {
	return string(rune('A' + i))
}

func toSessionResponse(sessionID string, s *domain.QuizSession) *dto.SessionResponse {
	level := s.Level()
	state := s.State()
	summary := s.Summary()

	resp := &dto.SessionResponse{
		SessionID: sessionID,
		Level: dto.LevelRef{
			ID:         level.ID,
			Title:      level.Title,
			Theme:      level.Theme,
			Difficulty: string(level.Difficulty),
		},
		State:           string(state),
		QuestionNumber:  s.CurrentIndex() + 1,
		TotalQuestions:  summary.TotalQuestions,
		IsLastQuestion:  s.IsLastQuestion(),
		ProgressPercent: summary.ProgressPercent,
		CorrectCount:    summary.CorrectCount,
		AnsweredCount:   summary.AnsweredCount,
		Stars:           summary.Stars,
		Completed:       summary.Completed,
	}
	if state == domain.StateCompleted {
		return resp
	}

	q := s.CurrentQuestion()
	selected, hasSelection := s.SelectedAnswer()
	revealed := state == domain.StateRevealed

	view := &dto.QuestionView{
		Prompt:  q.Prompt,
		Options: make([]dto.OptionView, len(q.Options)),
	}
	for i, text := range q.Options {
		opt := dto.OptionView{Index: i, Label: optionLabel(i), Text: text}
		if revealed {
			switch {
			case q.IsCorrect(i):
				opt.Status = dto.OptionStatusCorrect
			case hasSelection && i == selected:
				opt.Status = dto.OptionStatusIncorrect
			default:
				opt.Status = dto.OptionStatusDimmed
			}
		}
		view.Options[i] = opt
	}
	resp.Question = view

	if hasSelection {
		sel := selected
		resp.SelectedAnswer = &sel
	}
	if revealed {
		resp.Explanation = q.Explanation
	}
	return resp
}

func toFeedbackResponse(fb domain.Feedback) dto.FeedbackResponse {
	resp := dto.FeedbackResponse{
		CorrectOption: fb.CorrectOption,
		Explanation:   fb.Explanation,
		Duplicate:     fb.Duplicate,
	}
	if fb.HasSelection() {
		correct, selected := fb.Correct, fb.SelectedOption
		resp.Correct = &correct
		resp.SelectedOption = &selected
	}
	return resp
}
