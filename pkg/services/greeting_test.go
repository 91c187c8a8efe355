package services

import (
	"context"
	"testing"
	"time"

	"SereneAI/models"
)

func TestPersonalizedGreetingNewUser(t *testing.T) {
	s := NewGeminiService()

	if got := s.PersonalizedGreeting(context.Background(), nil); got != Greeting() {
		t.Fatalf("expected standard opener for missing profile, got %q", got)
	}

	first := &models.UserProfile{Username: "ana", TotalSessions: 1}
	if got := s.PersonalizedGreeting(context.Background(), first); got != Greeting() {
		t.Fatalf("expected standard opener for first session, got %q", got)
	}
}

func TestPersonalizedGreetingDegradesWithoutAPI(t *testing.T) {
	// config not loaded, so the API is disabled and generation must fall
	// back to the standard opener even for returning users
	s := NewGeminiService()
	returning := &models.UserProfile{
		Username:      "ana",
		TotalSessions: 5,
		TotalMessages: 40,
		LastActive:    time.Now().UTC(),
	}
	if got := s.PersonalizedGreeting(context.Background(), returning); got != Greeting() {
		t.Fatalf("expected fallback opener when generation unavailable, got %q", got)
	}
}
