package services

import (
	"testing"
	"time"

	"SereneAI/models"
)

func TestSelectCategoriesByMood(t *testing.T) {
	cases := []struct {
		mood  models.MoodType
		score float64
		first string
	}{
		{models.MoodStressed, 0.5, "stress_relief"},
		{models.MoodAnxious, 0.5, "stress_relief"},
		{models.MoodSad, 0.5, "mood_boost"},
		{models.MoodVerySad, 0.5, "mood_boost"},
		{models.MoodHappy, 0.5, "general_wellness"},
		{models.MoodTired, 0.5, "general_wellness"},
		{models.MoodNeutral, 0.5, "general_wellness"},
	}
	for _, tc := range cases {
		got := selectCategories(tc.mood, tc.score)
		if len(got) == 0 || got[0] != tc.first {
			t.Fatalf("mood %s: expected first category %q, got %v", tc.mood, tc.first, got)
		}
	}
}

func TestSelectCategoriesSentimentOverride(t *testing.T) {
	got := selectCategories(models.MoodStressed, 0.2)
	if got[0] != "depression_support" {
		t.Fatalf("expected low sentiment to front depression_support, got %v", got)
	}
	got = selectCategories(models.MoodStressed, 0.8)
	if got[0] != "mood_boost" {
		t.Fatalf("expected high sentiment to front mood_boost, got %v", got)
	}
}

func TestSelectCategoriesDeduplicates(t *testing.T) {
	got := selectCategories(models.MoodSad, 0.1)
	seen := map[string]int{}
	for _, c := range got {
		seen[c]++
		if seen[c] > 1 {
			t.Fatalf("duplicate category %q in %v", c, got)
		}
	}
}

func TestAssessDifficulty(t *testing.T) {
	if d := assessDifficulty(0.1); d != "easy" {
		t.Fatalf("expected easy for low sentiment, got %q", d)
	}
	if d := assessDifficulty(0.5); d != "medium" {
		t.Fatalf("expected medium, got %q", d)
	}
	if d := assessDifficulty(0.9); d != "medium" {
		t.Fatalf("expected medium for high sentiment, got %q", d)
	}
}

func TestEstimateTime(t *testing.T) {
	if got := estimateTime("stress_relief"); got != "5-10 minutes" {
		t.Fatalf("unexpected estimate: %q", got)
	}
	if got := estimateTime("unknown_category"); got != "10-15 minutes" {
		t.Fatalf("expected default estimate, got %q", got)
	}
}

func TestWeeklyTrend(t *testing.T) {
	day := func(offset int, avg float64) models.MoodAnalytics {
		return models.MoodAnalytics{
			Date:             time.Now().UTC().AddDate(0, 0, offset),
			AverageSentiment: avg,
		}
	}

	if trend := weeklyTrend([]models.MoodAnalytics{day(-6, 0.3), day(0, 0.6)}); trend != "improving" {
		t.Fatalf("expected improving, got %q", trend)
	}
	if trend := weeklyTrend([]models.MoodAnalytics{day(-6, 0.7), day(0, 0.4)}); trend != "declining" {
		t.Fatalf("expected declining, got %q", trend)
	}
	// moves within the 0.1 threshold are stable
	if trend := weeklyTrend([]models.MoodAnalytics{day(-6, 0.5), day(0, 0.58)}); trend != "stable" {
		t.Fatalf("expected stable, got %q", trend)
	}
	if trend := weeklyTrend([]models.MoodAnalytics{day(0, 0.5)}); trend != "stable" {
		t.Fatalf("expected single day to be stable, got %q", trend)
	}
}

func TestTrendRecommendations(t *testing.T) {
	for _, trend := range []string{"improving", "declining", "stable"} {
		recs := trendRecommendations(trend)
		if len(recs) != 3 {
			t.Fatalf("trend %q: expected 3 recommendations, got %d", trend, len(recs))
		}
	}
}

func TestHabitCatalogCoversAllCategories(t *testing.T) {
	for category, habits := range habitCatalog {
		if len(habits) == 0 {
			t.Fatalf("category %q has no habits", category)
		}
		if _, ok := habitTimeEstimates[category]; !ok {
			t.Fatalf("category %q has no time estimate", category)
		}
	}
}
