package models

import "time"

// MoodAnalytics is a per-user daily roll-up stored in the "analytics"
// collection. Document ID is "<user_id>_<YYYY-MM-DD>" so merge writes for
// the same day land on the same document.
type MoodAnalytics struct {
	UserID           string           `firestore:"user_id" json:"user_id"`
	Date             time.Time        `firestore:"date" json:"date"`
	MoodDistribution map[string]int64 `firestore:"mood_distribution" json:"mood_distribution"`
	AverageSentiment float64          `firestore:"average_sentiment" json:"average_sentiment"`
	TotalMessages    int64            `firestore:"total_messages" json:"total_messages"`
	SessionCount     int64            `firestore:"session_count" json:"session_count"`
}
