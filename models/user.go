package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// UserProfile is the per-user document stored in the "users" collection.
// The document ID equals UserID so every other record can be scoped by it.
type UserProfile struct {
	UserID        string         `firestore:"user_id" json:"user_id"`
	Email         string         `firestore:"email" json:"email"`
	Username      string         `firestore:"username" json:"username"`
	PasswordHash  string         `firestore:"password_hash" json:"-"`
	CreatedAt     time.Time      `firestore:"created_at" json:"created_at"`
	LastActive    time.Time      `firestore:"last_active" json:"last_active"`
	TotalSessions int64          `firestore:"total_sessions" json:"total_sessions"`
	TotalMessages int64          `firestore:"total_messages" json:"total_messages"`
	Preferences   map[string]any `firestore:"preferences" json:"preferences"`
}

func (u *UserProfile) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

func (u *UserProfile) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}
