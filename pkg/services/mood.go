package services

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"SereneAI/models"
	"SereneAI/pkg/cache"
	"SereneAI/pkg/config"
)

// MoodAnalyzer derives emotional signals from user messages via
// structured Gemini prompts. Every method degrades to a neutral or canned
// result instead of failing the chat turn.
type MoodAnalyzer struct {
	gemini *GeminiService
	store  *FirestoreService
	cache  *cache.Cache
}

func NewMoodAnalyzer(gemini *GeminiService, store *FirestoreService, c *cache.Cache) *MoodAnalyzer {
	return &MoodAnalyzer{gemini: gemini, store: store, cache: c}
}

const sentimentPrompt = `Analyze the emotional content of this message and provide:
1. Primary mood (very_happy, happy, neutral, sad, very_sad, anxious, stressed, calm, excited, tired)
2. Sentiment score (0.0 to 1.0, where 0.0 is very negative and 1.0 is very positive)
3. Emotional intensity (low, medium, high)
4. Key emotional keywords

Message: "%s"

Respond in this exact format:
MOOD: [mood_type]
SENTIMENT: [score]
INTENSITY: [intensity]
KEYWORDS: [comma-separated keywords]`

const patternPrompt = `Analyze these recent messages for emotional patterns and provide insights:

Recent messages:
%s

Provide analysis in this format:
PATTERN: [brief description of emotional pattern]
TREND: [improving/declining/stable]
SUGGESTION: [personalized coping strategy or habit suggestion]`

// AnalyzeSentiment classifies a single message. Identical messages reuse
// the cached result within the configured TTL.
func (a *MoodAnalyzer) AnalyzeSentiment(ctx context.Context, message string) models.SentimentResult {
	key := cache.Key("sentiment", message)
	if v, ok := a.cache.Get(key); ok {
		if res, ok := v.(models.SentimentResult); ok {
			return res
		}
	}

	text, err := a.gemini.Generate(ctx, fmt.Sprintf(sentimentPrompt, message))
	if err != nil {
		log.Printf("[mood] sentiment analysis failed: %v", err)
		return models.NeutralSentiment()
	}
	res := parseSentiment(text)
	a.cache.Set(key, res, time.Duration(config.SentimentCacheTTLSecs)*time.Second)
	return res
}

// parseSentiment reads the line-oriented MOOD/SENTIMENT/INTENSITY/KEYWORDS
// reply. Anything malformed keeps its neutral default.
func parseSentiment(text string) models.SentimentResult {
	res := models.NeutralSentiment()
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "MOOD:"):
			raw := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(line, "MOOD:")))
			if mood, ok := models.ParseMoodType(raw); ok {
				res.Mood = mood
			}
		case strings.HasPrefix(line, "SENTIMENT:"):
			raw := strings.TrimSpace(strings.TrimPrefix(line, "SENTIMENT:"))
			if score, err := strconv.ParseFloat(raw, 64); err == nil {
				if score < 0 {
					score = 0
				}
				if score > 1 {
					score = 1
				}
				res.SentimentScore = score
			}
		case strings.HasPrefix(line, "INTENSITY:"):
			raw := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(line, "INTENSITY:")))
			if raw == "low" || raw == "medium" || raw == "high" {
				res.Intensity = raw
			}
		case strings.HasPrefix(line, "KEYWORDS:"):
			raw := strings.TrimSpace(strings.TrimPrefix(line, "KEYWORDS:"))
			var keywords []string
			for _, k := range strings.Split(raw, ",") {
				if k = strings.TrimSpace(k); k != "" {
					keywords = append(keywords, k)
				}
			}
			if keywords != nil {
				res.Keywords = keywords
			}
		}
	}
	return res
}

// AnalyzePatterns looks at the user's turns over the last `days` days and
// asks Gemini for a pattern read.
func (a *MoodAnalyzer) AnalyzePatterns(ctx context.Context, userID string, days int) models.PatternInsight {
	if days <= 0 {
		days = 7
	}
	start := time.Now().UTC().AddDate(0, 0, -days)

	sessions, err := a.store.UserSessions(ctx, userID, 20)
	if err != nil {
		log.Printf("[mood] pattern analysis: list sessions failed: %v", err)
		return models.PatternInsight{
			Pattern:    "Unable to analyze patterns at this time",
			Trend:      "stable",
			Suggestion: "Continue sharing your thoughts for better insights",
		}
	}

	var recent []models.ChatMessage
	for _, session := range sessions {
		if session.StartedAt.Before(start) {
			continue
		}
		msgs, err := a.store.SessionMessages(ctx, session.SessionID)
		if err != nil {
			log.Printf("[mood] pattern analysis: load messages failed: %v", err)
			continue
		}
		recent = append(recent, msgs...)
	}
	if len(recent) == 0 {
		return models.PatternInsight{
			Pattern:    "No recent messages to analyze",
			Trend:      "stable",
			Suggestion: "Start a conversation to get personalized insights",
		}
	}

	// last 10 user turns only
	var lines []string
	for _, m := range recent {
		if m.Role == models.RoleUser {
			lines = append(lines, "User: "+m.Content)
		}
	}
	if len(lines) == 0 {
		return models.PatternInsight{
			Pattern:    "No user messages to analyze",
			Trend:      "stable",
			Suggestion: "Share your thoughts to get personalized support",
		}
	}
	if len(lines) > 10 {
		lines = lines[len(lines)-10:]
	}

	text, err := a.gemini.Generate(ctx, fmt.Sprintf(patternPrompt, strings.Join(lines, "\n")))
	if err != nil {
		log.Printf("[mood] pattern analysis failed: %v", err)
		return models.PatternInsight{
			Pattern:    "Unable to analyze patterns at this time",
			Trend:      "stable",
			Suggestion: "Continue sharing your thoughts for better insights",
		}
	}
	return parsePatterns(text)
}

func parsePatterns(text string) models.PatternInsight {
	res := models.PatternInsight{
		Pattern:    "Unable to analyze patterns",
		Trend:      "stable",
		Suggestion: "Continue sharing your thoughts",
	}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "PATTERN:"):
			if v := strings.TrimSpace(strings.TrimPrefix(line, "PATTERN:")); v != "" {
				res.Pattern = v
			}
		case strings.HasPrefix(line, "TREND:"):
			v := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(line, "TREND:")))
			if v == "improving" || v == "declining" || v == "stable" {
				res.Trend = v
			}
		case strings.HasPrefix(line, "SUGGESTION:"):
			if v := strings.TrimSpace(strings.TrimPrefix(line, "SUGGESTION:")); v != "" {
				res.Suggestion = v
			}
		}
	}
	return res
}

// PersonalizedFeedback writes a short supportive note grounded in the
// user's history and current mood.
func (a *MoodAnalyzer) PersonalizedFeedback(ctx context.Context, userID string, mood models.MoodType, score float64) string {
	var totalSessions int64
	if profile, err := a.store.GetUserProfile(ctx, userID); err == nil {
		totalSessions = profile.TotalSessions
	}
	patterns := a.AnalyzePatterns(ctx, userID, 7)

	prompt := fmt.Sprintf(`Generate personalized, empathetic feedback for a mental health companion user.

User context:
- Current mood: %s
- Sentiment score: %.2f
- Total sessions: %d
- Recent pattern: %s
- Trend: %s

Provide a supportive, personalized response that:
1. Acknowledges their current emotional state
2. References their recent patterns if relevant
3. Offers specific, actionable suggestions
4. Maintains a warm, non-judgmental tone
5. Keeps it concise (2-3 sentences)

Response:`, mood, score, totalSessions, patterns.Pattern, patterns.Trend)

	feedback, err := a.gemini.Generate(ctx, prompt)
	if err != nil || strings.TrimSpace(feedback) == "" {
		log.Printf("[mood] personalized feedback failed: %v", err)
		return "I'm here to listen and support you. How are you feeling right now?"
	}
	return strings.TrimSpace(feedback)
}

// UpdateAnalytics folds one sentiment result into the user's daily
// roll-up: running average sentiment plus mood distribution counts.
func (a *MoodAnalyzer) UpdateAnalytics(ctx context.Context, userID string, res models.SentimentResult) error {
	today := time.Now().UTC().Truncate(24 * time.Hour)

	analytics := &models.MoodAnalytics{
		UserID:           userID,
		Date:             today,
		MoodDistribution: map[string]int64{string(res.Mood): 1},
		AverageSentiment: res.SentimentScore,
		TotalMessages:    1,
		SessionCount:     1,
	}

	history, err := a.store.MoodHistory(ctx, userID, 1)
	if err != nil {
		log.Printf("[mood] load today's analytics failed: %v", err)
	} else if len(history) > 0 {
		latest := history[len(history)-1]
		if latest.Date.UTC().Truncate(24 * time.Hour).Equal(today) {
			latest.TotalMessages++
			latest.AverageSentiment = (latest.AverageSentiment*float64(latest.TotalMessages-1) + res.SentimentScore) / float64(latest.TotalMessages)
			if latest.MoodDistribution == nil {
				latest.MoodDistribution = map[string]int64{}
			}
			latest.MoodDistribution[string(res.Mood)]++
			analytics = &latest
		}
	}

	return a.store.SaveMoodAnalytics(ctx, analytics)
}
