package models

// MoodType labels the primary emotion detected in a user message.
type MoodType string

const (
	MoodVeryHappy MoodType = "very_happy"
	MoodHappy     MoodType = "happy"
	MoodNeutral   MoodType = "neutral"
	MoodSad       MoodType = "sad"
	MoodVerySad   MoodType = "very_sad"
	MoodAnxious   MoodType = "anxious"
	MoodStressed  MoodType = "stressed"
	MoodCalm      MoodType = "calm"
	MoodExcited   MoodType = "excited"
	MoodTired     MoodType = "tired"
)

var knownMoods = map[MoodType]struct{}{
	MoodVeryHappy: {},
	MoodHappy:     {},
	MoodNeutral:   {},
	MoodSad:       {},
	MoodVerySad:   {},
	MoodAnxious:   {},
	MoodStressed:  {},
	MoodCalm:      {},
	MoodExcited:   {},
	MoodTired:     {},
}

// ParseMoodType returns the mood for s, or MoodNeutral with ok=false when
// s is not one of the known mood labels.
func ParseMoodType(s string) (MoodType, bool) {
	m := MoodType(s)
	if _, ok := knownMoods[m]; ok {
		return m, true
	}
	return MoodNeutral, false
}

// SentimentResult is the parsed outcome of a single-message mood analysis.
type SentimentResult struct {
	Mood           MoodType `json:"mood"`
	SentimentScore float64  `json:"sentiment_score"` // 0.0 very negative .. 1.0 very positive
	Intensity      string   `json:"intensity"`       // low | medium | high
	Keywords       []string `json:"keywords"`
}

// NeutralSentiment is the fallback used whenever analysis fails.
func NeutralSentiment() SentimentResult {
	return SentimentResult{
		Mood:           MoodNeutral,
		SentimentScore: 0.5,
		Intensity:      "low",
		Keywords:       []string{},
	}
}

// PatternInsight is the parsed outcome of an emotional pattern analysis
// across recent user messages.
type PatternInsight struct {
	Pattern    string `json:"pattern"`
	Trend      string `json:"trend"` // improving | declining | stable
	Suggestion string `json:"suggestion"`
}
