package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"SereneAI/middleware"
	"SereneAI/models"
	"SereneAI/pkg/config"
	svc "SereneAI/pkg/services"
)

type chatRequest struct {
	Message   string  `json:"message"`
	SessionID *string `json:"session_id"`
}

// resolveSession loads the caller's session or starts a new one. A new
// session also bumps the user's activity counters.
func resolveSession(ctx context.Context, app *App, userID string, sessionID *string) (*models.ChatSession, bool, error) {
	if sessionID != nil && strings.TrimSpace(*sessionID) != "" {
		session, err := app.Store.GetSession(ctx, strings.TrimSpace(*sessionID))
		if err != nil {
			return nil, false, err
		}
		if session.UserID != userID {
			// do not leak other users' session ids
			return nil, false, svc.ErrNotFound
		}
		return session, false, nil
	}
	session, err := app.Store.CreateSession(ctx, userID)
	if err != nil {
		return nil, false, err
	}
	if err := app.Store.UpdateUserActivity(ctx, userID); err != nil {
		log.Printf("[chat] update user activity failed: %v", err)
	}
	return session, true, nil
}

// sessionStatus maps a resolveSession error to an HTTP status. Missing
// or foreign sessions are 404; anything else is a store failure.
func sessionStatus(err error) (int, string) {
	if errors.Is(err, svc.ErrNotFound) {
		return http.StatusNotFound, "session not found"
	}
	return http.StatusInternalServerError, "failed to resolve session"
}

// greetNewSession persists the opening assistant turn for a fresh
// session and returns it. Greeting failures never fail the chat turn.
func greetNewSession(ctx context.Context, app *App, userID string, session *models.ChatSession) *models.ChatMessage {
	var profile *models.UserProfile
	if p, err := app.Store.GetUserProfile(ctx, userID); err == nil {
		profile = p
	}
	msg := &models.ChatMessage{
		MessageID: uuid.NewString(),
		UserID:    userID,
		SessionID: session.SessionID,
		Role:      models.RoleAssistant,
		Content:   app.Gemini.PersonalizedGreeting(ctx, profile),
		Timestamp: time.Now().UTC(),
	}
	if err := app.Store.SaveMessage(ctx, msg); err != nil {
		log.Printf("[chat] save greeting failed: %v", err)
		return nil
	}
	return msg
}

// buildHistory maps stored turns to model-facing history, bounded by
// MaxConversationLength, with the pending user message appended.
func buildHistory(prior []models.ChatMessage, current string) []svc.ChatMessage {
	history := make([]svc.ChatMessage, 0, len(prior)+1)
	for _, m := range prior {
		role := "user"
		if m.Role == models.RoleAssistant {
			role = "model"
		}
		history = append(history, svc.ChatMessage{Role: role, Text: m.Content})
	}
	history = append(history, svc.ChatMessage{Role: "user", Text: current})
	if max := config.MaxConversationLength; max > 0 && len(history) > max {
		history = history[len(history)-max:]
	}
	return history
}

// SendMessage appends a user turn, runs mood analysis, generates the
// companion reply and returns reply + mood + habit suggestions.
func SendMessage(app *App) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := middleware.CurrentUserID(c)

		var body chatRequest
		if err := c.ShouldBindJSON(&body); err != nil || strings.TrimSpace(body.Message) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "message is required"})
			return
		}
		message := strings.TrimSpace(body.Message)

		if !middleware.DuplicateGuard(uid, message) {
			c.JSON(http.StatusTooManyRequests, gin.H{"msg": "duplicate message, please wait"})
			return
		}
		release := middleware.AcquireUserSlot(uid)
		defer release()

		ctx, cancel := context.WithTimeout(c.Request.Context(), time.Duration(config.ResponseTimeoutSeconds)*time.Second)
		defer cancel()

		session, created, err := resolveSession(ctx, app, uid, body.SessionID)
		if err != nil {
			code, msg := sessionStatus(err)
			c.JSON(code, gin.H{"msg": msg})
			return
		}
		var greeting *models.ChatMessage
		if created {
			greeting = greetNewSession(ctx, app, uid, session)
		}

		prior, err := app.Store.SessionMessages(ctx, session.SessionID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "failed to load messages"})
			return
		}

		sentiment := app.Mood.AnalyzeSentiment(ctx, message)

		userMsg := models.ChatMessage{
			MessageID:      uuid.NewString(),
			UserID:         uid,
			SessionID:      session.SessionID,
			Role:           models.RoleUser,
			Content:        message,
			Timestamp:      time.Now().UTC(),
			MoodDetected:   sentiment.Mood,
			SentimentScore: sentiment.SentimentScore,
		}
		if err := app.Store.SaveMessage(ctx, &userMsg); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "failed to save message"})
			return
		}

		history := buildHistory(prior, message)

		reply := ""
		if resp, err := app.Gemini.Chat(ctx, history); err == nil {
			reply = strings.TrimSpace(resp)
		}
		if reply == "" {
			reply = svc.LocalReply(ctx, history)
		}

		botMsg := models.ChatMessage{
			MessageID: uuid.NewString(),
			UserID:    uid,
			SessionID: session.SessionID,
			Role:      models.RoleAssistant,
			Content:   reply,
			Timestamp: time.Now().UTC(),
		}
		if err := app.Store.SaveMessage(ctx, &botMsg); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "failed to save reply"})
			return
		}

		if err := app.Mood.UpdateAnalytics(ctx, uid, sentiment); err != nil {
			log.Printf("[chat] analytics update failed: %v", err)
		}

		suggestions := app.Habits.Suggest(ctx, uid, sentiment.Mood, sentiment.SentimentScore, 2)

		resp := gin.H{
			"session_id":  session.SessionID,
			"reply":       botMsg,
			"mood":        sentiment,
			"suggestions": suggestions,
		}
		if greeting != nil {
			resp["greeting"] = greeting
		}
		c.JSON(http.StatusCreated, resp)
	}
}

// SendMessageStream is the SSE variant of SendMessage.
// Events: session -> greeting (new sessions) -> mood -> delta... ->
// suggestions -> done.
func SendMessageStream(app *App) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "text/event-stream")
		c.Writer.Header().Set("Cache-Control", "no-cache")
		c.Writer.Header().Set("Connection", "keep-alive")
		c.Writer.Header().Set("X-Accel-Buffering", "no") // nginx buffering off

		flusher, ok := c.Writer.(http.Flusher)
		if !ok {
			c.String(http.StatusInternalServerError, "streaming unsupported")
			return
		}

		uid := middleware.CurrentUserID(c)

		var body chatRequest
		if err := c.ShouldBindJSON(&body); err != nil || strings.TrimSpace(body.Message) == "" {
			c.Status(http.StatusBadRequest)
			return
		}
		message := strings.TrimSpace(body.Message)

		if !middleware.DuplicateGuard(uid, message) {
			c.Status(http.StatusTooManyRequests)
			return
		}
		release := middleware.AcquireUserSlot(uid)
		defer release()

		ctx, cancel := context.WithTimeout(c.Request.Context(), time.Duration(config.ResponseTimeoutSeconds)*time.Second)
		defer cancel()

		session, created, err := resolveSession(ctx, app, uid, body.SessionID)
		if err != nil {
			code, _ := sessionStatus(err)
			c.Status(code)
			return
		}
		var greeting *models.ChatMessage
		if created {
			greeting = greetNewSession(ctx, app, uid, session)
		}

		prior, err := app.Store.SessionMessages(ctx, session.SessionID)
		if err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}

		sentiment := app.Mood.AnalyzeSentiment(ctx, message)

		userMsg := models.ChatMessage{
			MessageID:      uuid.NewString(),
			UserID:         uid,
			SessionID:      session.SessionID,
			Role:           models.RoleUser,
			Content:        message,
			Timestamp:      time.Now().UTC(),
			MoodDetected:   sentiment.Mood,
			SentimentScore: sentiment.SentimentScore,
		}
		if err := app.Store.SaveMessage(ctx, &userMsg); err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}

		writeEvent := func(event string, payload any) {
			data, err := json.Marshal(payload)
			if err != nil {
				return
			}
			fmt.Fprintf(c.Writer, "event: %s\n", event)
			fmt.Fprintf(c.Writer, "data: %s\n\n", data)
			flusher.Flush()
		}

		writeEvent("session", gin.H{"session_id": session.SessionID})
		if greeting != nil {
			writeEvent("greeting", greeting)
		}
		writeEvent("mood", sentiment)

		history := buildHistory(prior, message)

		var full strings.Builder
		gotDelta := false
		onDelta := func(chunk string) {
			writeEvent("delta", gin.H{"text": chunk})
			full.WriteString(chunk)
			gotDelta = true
		}

		if _, err := app.Gemini.StreamChat(ctx, history, onDelta); err != nil {
			// fall back to the local generator when Gemini fails
			svc.StreamLocalReply(ctx, history, onDelta)
		}
		if !gotDelta {
			svc.StreamLocalReply(ctx, history, onDelta)
		}

		reply := strings.TrimSpace(full.String())
		if reply == "" {
			reply = svc.FallbackReply()
		}

		botMsg := models.ChatMessage{
			MessageID: uuid.NewString(),
			UserID:    uid,
			SessionID: session.SessionID,
			Role:      models.RoleAssistant,
			Content:   reply,
			Timestamp: time.Now().UTC(),
		}
		if err := app.Store.SaveMessage(ctx, &botMsg); err != nil {
			log.Printf("[chat] save streamed reply failed: %v", err)
		}

		if err := app.Mood.UpdateAnalytics(ctx, uid, sentiment); err != nil {
			log.Printf("[chat] analytics update failed: %v", err)
		}

		writeEvent("suggestions", app.Habits.Suggest(ctx, uid, sentiment.Mood, sentiment.SentimentScore, 2))
		writeEvent("done", gin.H{"ok": true})
	}
}
