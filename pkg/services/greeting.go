package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"SereneAI/models"
)

// PersonalizedGreeting opens a session. Returning users get a greeting
// generated from their history; new users and every failure path get
// the standard opener.
func (s *GeminiService) PersonalizedGreeting(ctx context.Context, user *models.UserProfile) string {
	if user == nil || user.TotalSessions <= 1 {
		return Greeting()
	}

	prompt := fmt.Sprintf(`Generate a warm, personalized greeting for a returning user.

User context:
- Total sessions: %d
- Total messages: %d
- Last active: %s

Make it:
1. Welcoming and familiar
2. Acknowledges their return
3. Encourages them to share how they're feeling
4. Warm and supportive
5. Brief (1-2 sentences)

Greeting:`, user.TotalSessions, user.TotalMessages, user.LastActive.Format("January 2"))

	greeting, err := s.Generate(ctx, prompt)
	if err != nil || strings.TrimSpace(greeting) == "" {
		log.Printf("[gemini] personalized greeting failed: %v", err)
		return Greeting()
	}
	return strings.TrimSpace(greeting)
}
