package services

import (
	"testing"

	"SereneAI/models"
)

func TestParseSentiment(t *testing.T) {
	text := "MOOD: anxious\nSENTIMENT: 0.25\nINTENSITY: high\nKEYWORDS: worried, deadline, overwhelmed"
	res := parseSentiment(text)
	if res.Mood != models.MoodAnxious {
		t.Fatalf("expected anxious, got %q", res.Mood)
	}
	if res.SentimentScore != 0.25 {
		t.Fatalf("expected score 0.25, got %v", res.SentimentScore)
	}
	if res.Intensity != "high" {
		t.Fatalf("expected high intensity, got %q", res.Intensity)
	}
	if len(res.Keywords) != 3 || res.Keywords[0] != "worried" {
		t.Fatalf("unexpected keywords: %v", res.Keywords)
	}
}

func TestParseSentimentTolerantOfGarbage(t *testing.T) {
	res := parseSentiment("I cannot comply with that request.")
	if res.Mood != models.MoodNeutral || res.SentimentScore != 0.5 || res.Intensity != "low" {
		t.Fatalf("expected neutral fallback, got %+v", res)
	}
}

func TestParseSentimentClampsAndValidates(t *testing.T) {
	text := "MOOD: euphoric\nSENTIMENT: 7.5\nINTENSITY: extreme\nKEYWORDS: "
	res := parseSentiment(text)
	if res.Mood != models.MoodNeutral {
		t.Fatalf("expected unknown mood to stay neutral, got %q", res.Mood)
	}
	if res.SentimentScore != 1.0 {
		t.Fatalf("expected score clamped to 1.0, got %v", res.SentimentScore)
	}
	if res.Intensity != "low" {
		t.Fatalf("expected invalid intensity to stay low, got %q", res.Intensity)
	}
	if len(res.Keywords) != 0 {
		t.Fatalf("expected empty keywords, got %v", res.Keywords)
	}
}

func TestParseSentimentWithIndentedLines(t *testing.T) {
	text := "  MOOD: calm\n  SENTIMENT: 0.8\n  INTENSITY: medium\n  KEYWORDS: peaceful"
	res := parseSentiment(text)
	if res.Mood != models.MoodCalm || res.SentimentScore != 0.8 || res.Intensity != "medium" {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestParsePatterns(t *testing.T) {
	text := "PATTERN: Recurring work stress peaking midweek\nTREND: improving\nSUGGESTION: Schedule short breaks before meetings"
	res := parsePatterns(text)
	if res.Pattern != "Recurring work stress peaking midweek" {
		t.Fatalf("unexpected pattern: %q", res.Pattern)
	}
	if res.Trend != "improving" {
		t.Fatalf("unexpected trend: %q", res.Trend)
	}
	if res.Suggestion != "Schedule short breaks before meetings" {
		t.Fatalf("unexpected suggestion: %q", res.Suggestion)
	}
}

func TestParsePatternsFallbacks(t *testing.T) {
	res := parsePatterns("TREND: skyrocketing")
	if res.Trend != "stable" {
		t.Fatalf("expected invalid trend to fall back to stable, got %q", res.Trend)
	}
	if res.Pattern == "" || res.Suggestion == "" {
		t.Fatalf("expected default pattern and suggestion, got %+v", res)
	}
}
