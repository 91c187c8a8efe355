package models

import "time"

// ChatSession is one conversation window, stored in the "sessions"
// collection with SessionID as document ID.
type ChatSession struct {
	SessionID    string     `firestore:"session_id" json:"session_id"`
	UserID       string     `firestore:"user_id" json:"user_id"`
	StartedAt    time.Time  `firestore:"started_at" json:"started_at"`
	EndedAt      *time.Time `firestore:"ended_at,omitempty" json:"ended_at,omitempty"`
	MessageCount int64      `firestore:"message_count" json:"message_count"`
	IsActive     bool       `firestore:"is_active" json:"is_active"`
}
