package models

import "time"

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is a single turn, stored in the "messages" collection with
// MessageID as document ID. Mood fields are filled only for user turns.
type ChatMessage struct {
	MessageID      string    `firestore:"message_id" json:"message_id"`
	UserID         string    `firestore:"user_id" json:"user_id"`
	SessionID      string    `firestore:"session_id" json:"session_id"`
	Role           string    `firestore:"role" json:"role"` // "user" or "assistant"
	Content        string    `firestore:"content" json:"content"`
	Timestamp      time.Time `firestore:"timestamp" json:"timestamp"`
	MoodDetected   MoodType  `firestore:"mood_detected,omitempty" json:"mood_detected,omitempty"`
	SentimentScore float64   `firestore:"sentiment_score,omitempty" json:"sentiment_score,omitempty"`
}
