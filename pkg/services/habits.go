package services

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"SereneAI/models"
	"SereneAI/pkg/cache"
)

// HabitEngine picks wellness habits matching the user's mood and asks
// Gemini to personalize the descriptions.
type HabitEngine struct {
	gemini *GeminiService
	store  *FirestoreService
	cache  *cache.Cache
	rng    *rand.Rand
}

func NewHabitEngine(gemini *GeminiService, store *FirestoreService, c *cache.Cache) *HabitEngine {
	return &HabitEngine{
		gemini: gemini,
		store:  store,
		cache:  c,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

var habitCatalog = map[string][]string{
	"stress_relief": {
		"Deep breathing exercises",
		"Progressive muscle relaxation",
		"Mindful walking",
		"Journaling your thoughts",
		"Listening to calming music",
	},
	"mood_boost": {
		"Gratitude practice",
		"Physical exercise",
		"Social connection",
		"Creative activities",
		"Nature exposure",
	},
	"anxiety_management": {
		"Grounding techniques",
		"Regular sleep schedule",
		"Limiting caffeine",
		"Mindfulness meditation",
		"Structured daily routine",
	},
	"depression_support": {
		"Daily movement",
		"Social engagement",
		"Goal setting",
		"Positive self-talk",
		"Professional support seeking",
	},
	"general_wellness": {
		"Regular sleep hygiene",
		"Balanced nutrition",
		"Hydration tracking",
		"Digital detox periods",
		"Hobby development",
	},
}

var habitTimeEstimates = map[string]string{
	"stress_relief":      "5-10 minutes",
	"mood_boost":         "15-30 minutes",
	"anxiety_management": "10-20 minutes",
	"depression_support": "20-45 minutes",
	"general_wellness":   "varies",
}

// selectCategories orders habit categories by relevance to the current
// mood and sentiment score.
func selectCategories(mood models.MoodType, score float64) []string {
	var categories []string
	switch mood {
	case models.MoodStressed, models.MoodAnxious:
		categories = append(categories, "stress_relief", "anxiety_management")
	case models.MoodSad, models.MoodVerySad:
		categories = append(categories, "mood_boost", "depression_support")
	case models.MoodHappy, models.MoodVeryHappy, models.MoodExcited:
		categories = append(categories, "general_wellness", "mood_boost")
	case models.MoodTired:
		categories = append(categories, "general_wellness", "stress_relief")
	default:
		categories = append(categories, "general_wellness", "mood_boost")
	}

	if score < 0.3 {
		categories = append([]string{"depression_support"}, categories...)
	} else if score > 0.7 {
		categories = append([]string{"mood_boost"}, categories...)
	}

	seen := make(map[string]struct{}, len(categories))
	unique := categories[:0]
	for _, c := range categories {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		unique = append(unique, c)
	}
	return unique
}

// assessDifficulty suggests easier habits when the user is feeling down.
func assessDifficulty(score float64) string {
	if score < 0.3 {
		return "easy"
	}
	return "medium"
}

func estimateTime(category string) string {
	if t, ok := habitTimeEstimates[category]; ok {
		return t
	}
	return "10-15 minutes"
}

// Suggest returns up to count personalized habit suggestions for the
// user's current mood.
func (e *HabitEngine) Suggest(ctx context.Context, userID string, mood models.MoodType, score float64, count int) []models.HabitSuggestion {
	if count <= 0 {
		count = 3
	}
	categories := selectCategories(mood, score)
	if len(categories) > count {
		categories = categories[:count]
	}

	suggestions := make([]models.HabitSuggestion, 0, len(categories))
	for _, category := range categories {
		habits := habitCatalog[category]
		if len(habits) == 0 {
			continue
		}
		habit := habits[e.rng.Intn(len(habits))]
		suggestions = append(suggestions, models.HabitSuggestion{
			Habit:         habit,
			Category:      category,
			Description:   e.describeHabit(ctx, userID, habit, category, mood),
			Difficulty:    assessDifficulty(score),
			EstimatedTime: estimateTime(category),
		})
	}
	if len(suggestions) == 0 {
		suggestions = append(suggestions, models.HabitSuggestion{
			Habit:         "Take a few deep breaths",
			Category:      "stress_relief",
			Description:   "Simple breathing exercise to help you feel more centered",
			Difficulty:    "easy",
			EstimatedTime: "2-3 minutes",
		})
	}
	return suggestions
}

// describeHabit asks Gemini for a short encouraging description, falling
// back to a generic line on any failure.
func (e *HabitEngine) describeHabit(ctx context.Context, userID, habit, category string, mood models.MoodType) string {
	var totalSessions int64
	if profile, err := e.store.GetUserProfile(ctx, userID); err == nil {
		totalSessions = profile.TotalSessions
	}

	prompt := fmt.Sprintf(`Create a personalized, encouraging description for this mental health habit:

Habit: %s
Category: %s
Current mood: %s
User experience level: %d sessions

Make the description:
1. Encouraging and non-judgmental
2. Specific and actionable
3. Tailored to their current emotional state
4. Brief (1-2 sentences)
5. Focused on benefits they'll experience

Description:`, habit, category, mood, totalSessions)

	desc, err := e.gemini.Generate(ctx, prompt)
	if err != nil || strings.TrimSpace(desc) == "" {
		log.Printf("[habits] describe habit failed: %v", err)
		return fmt.Sprintf("Try %s to help improve your well-being.", strings.ToLower(habit))
	}
	return strings.TrimSpace(desc)
}

// WeeklyReport summarizes the last seven days of analytics. Reports are
// cached briefly since they scan the whole week.
func (e *HabitEngine) WeeklyReport(ctx context.Context, userID string) (*models.WeeklyReport, error) {
	key := cache.Key("weekly_report", userID)
	if v, ok := e.cache.Get(key); ok {
		if report, ok := v.(*models.WeeklyReport); ok {
			return report, nil
		}
	}

	history, err := e.store.MoodHistory(ctx, userID, 7)
	if err != nil {
		return nil, err
	}
	if len(history) == 0 {
		return &models.WeeklyReport{
			Summary:         "No data available for this week",
			Trend:           "stable",
			Recommendations: []string{"Start tracking your mood to get personalized insights"},
		}, nil
	}

	var sum float64
	var sessions, messages int64
	for _, a := range history {
		sum += a.AverageSentiment
		sessions += a.SessionCount
		messages += a.TotalMessages
	}
	avg := sum / float64(len(history))

	report := &models.WeeklyReport{
		Summary:         fmt.Sprintf("Your average mood this week was %.2f/1.0", avg),
		Trend:           weeklyTrend(history),
		TotalSessions:   sessions,
		TotalMessages:   messages,
		Recommendations: trendRecommendations(weeklyTrend(history)),
	}
	e.cache.Set(key, report, 10*time.Minute)
	return report, nil
}

// weeklyTrend compares first and last day of the window; moves smaller
// than 0.1 count as stable.
func weeklyTrend(history []models.MoodAnalytics) string {
	if len(history) < 2 {
		return "stable"
	}
	earlier := history[0].AverageSentiment
	recent := history[len(history)-1].AverageSentiment
	switch {
	case recent > earlier+0.1:
		return "improving"
	case recent < earlier-0.1:
		return "declining"
	default:
		return "stable"
	}
}

func trendRecommendations(trend string) []string {
	switch trend {
	case "improving":
		return []string{
			"Keep up the great work!",
			"Consider adding more challenging wellness activities",
			"Share your positive progress with others",
		}
	case "declining":
		return []string{
			"Be gentle with yourself during difficult times",
			"Consider reaching out to a mental health professional",
			"Focus on small, manageable self-care activities",
		}
	default:
		return []string{
			"Try introducing new wellness activities",
			"Consider tracking specific mood triggers",
			"Explore different coping strategies",
		}
	}
}
