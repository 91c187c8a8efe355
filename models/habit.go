package models

// HabitSuggestion is one personalized wellness habit offered to the user.
type HabitSuggestion struct {
	Habit         string `json:"habit"`
	Category      string `json:"category"`
	Description   string `json:"description"`
	Difficulty    string `json:"difficulty"` // easy | medium | hard
	EstimatedTime string `json:"estimated_time"`
}

// WeeklyReport summarizes the last seven days of mood analytics.
type WeeklyReport struct {
	Summary         string   `json:"summary"`
	Trend           string   `json:"trend"` // improving | declining | stable
	Recommendations []string `json:"recommendations"`
	TotalSessions   int64    `json:"total_sessions"`
	TotalMessages   int64    `json:"total_messages"`
}
