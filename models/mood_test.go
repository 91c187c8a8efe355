package models

import "testing"

func TestParseMoodType(t *testing.T) {
	for _, s := range []string{"very_happy", "happy", "neutral", "sad", "very_sad", "anxious", "stressed", "calm", "excited", "tired"} {
		m, ok := ParseMoodType(s)
		if !ok {
			t.Fatalf("expected %q to be a known mood", s)
		}
		if string(m) != s {
			t.Fatalf("expected mood %q, got %q", s, m)
		}
	}
}

func TestParseMoodTypeUnknownFallsBackToNeutral(t *testing.T) {
	m, ok := ParseMoodType("melancholic")
	if ok {
		t.Fatalf("expected unknown mood to be rejected")
	}
	if m != MoodNeutral {
		t.Fatalf("expected neutral fallback, got %q", m)
	}
}

func TestNeutralSentiment(t *testing.T) {
	s := NeutralSentiment()
	if s.Mood != MoodNeutral || s.SentimentScore != 0.5 || s.Intensity != "low" {
		t.Fatalf("unexpected neutral sentiment: %+v", s)
	}
	if s.Keywords == nil {
		t.Fatalf("expected non-nil keywords slice")
	}
}
