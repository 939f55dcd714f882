package dto

// LevelSummaryResponse is a row of the level picker
// @Description Level summary
type LevelSummaryResponse struct {
	ID            int    `json:"id"`
	Title         string `json:"title"`
	Theme         string `json:"theme,omitempty"`
	Difficulty    string `json:"difficulty"`
	Locked        bool   `json:"locked"`
	QuestionCount int    `json:"question_count"`
}

// LevelListResponse lists every level in catalog order
type LevelListResponse struct {
	Levels []LevelSummaryResponse `json:"levels"`
}

// LevelRef identifies the level a session is playing
type LevelRef struct {
	ID         int    `json:"id"`
	Title      string `json:"title"`
	Theme      string `json:"theme,omitempty"`
	Difficulty string `json:"difficulty"`
}
