package controllers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"SereneAI/middleware"
	"SereneAI/models"
	"SereneAI/pkg/config"
	svc "SereneAI/pkg/services"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// CORS handled at HTTP level; allow WS here
		return true
	},
}

type wsStartPayload struct {
	Type      string  `json:"type"`
	Message   string  `json:"message"`
	SessionID *string `json:"session_id"`
}

// ChatWS handles WebSocket chat streaming.
// Client protocol (JSON messages):
//
//	-> {type: "start", message: string, session_id?: string}
//	<- {type: "session", session_id: string}
//	<- {type: "greeting", data: ChatMessage}   (new sessions only)
//	<- {type: "mood", data: SentimentResult}
//	<- {type: "delta", data: string}
//	<- {type: "suggestions", data: []HabitSuggestion}
//	<- {type: "done", ok: true}
//	<- {type: "error", error: string}
//
// A client may send {type: "stop"} to cancel generation.
func ChatWS(app *App) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Authenticate via ?token=JWT
		tokenStr := strings.TrimSpace(c.Query("token"))
		if tokenStr == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "missing token query"})
			return
		}
		uid, _, ok := middleware.ParseUserToken(tokenStr)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "invalid token"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("[ws] upgrade error: %v", err)
			return
		}
		defer conn.Close()

		// Setup read limits and pong handler for keepalive
		conn.SetReadLimit(1 << 20) // 1MB
		_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		})

		// Read exactly one start message per connection
		_, msgBytes, err := conn.ReadMessage()
		if err != nil {
			log.Printf("[ws] read message error: %v", err)
			return
		}
		var start wsStartPayload
		if err := json.Unmarshal(msgBytes, &start); err != nil || strings.ToLower(start.Type) != "start" || strings.TrimSpace(start.Message) == "" {
			_ = conn.WriteJSON(gin.H{"type": "error", "error": "invalid start payload"})
			return
		}
		message := strings.TrimSpace(start.Message)

		if !middleware.DuplicateGuard(uid, message) {
			_ = conn.WriteJSON(gin.H{"type": "error", "error": "duplicate message"})
			return
		}
		release := middleware.AcquireUserSlot(uid)
		defer release()

		parentCtx, cancelTimeout := context.WithTimeout(c.Request.Context(), time.Duration(config.ResponseTimeoutSeconds+45)*time.Second)
		ctx, cancel := context.WithCancel(parentCtx)
		defer func() {
			cancel()
			cancelTimeout()
		}()

		session, created, err := resolveSession(ctx, app, uid, start.SessionID)
		if err != nil {
			_, msg := sessionStatus(err)
			_ = conn.WriteJSON(gin.H{"type": "error", "error": msg})
			return
		}
		var greeting *models.ChatMessage
		if created {
			greeting = greetNewSession(ctx, app, uid, session)
		}

		prior, err := app.Store.SessionMessages(ctx, session.SessionID)
		if err != nil {
			_ = conn.WriteJSON(gin.H{"type": "error", "error": "failed to load messages"})
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
			_ = conn.WriteJSON(gin.H{"type": "error", "error": "failed to save message"})
			return
		}

		_ = conn.WriteJSON(gin.H{"type": "session", "session_id": session.SessionID})
		if greeting != nil {
			_ = conn.WriteJSON(gin.H{"type": "greeting", "data": greeting})
		}
		_ = conn.WriteJSON(gin.H{"type": "mood", "data": sentiment})

		// Listen for {type:"stop"} while generating
		stopCh := make(chan struct{})
		go func() {
			for {
				if err := conn.SetReadDeadline(time.Now().Add(60 * time.Second)); err != nil {
					return
				}
				mt, msg, err := conn.ReadMessage()
				if err != nil {
					return
				}
				if mt != websocket.TextMessage && mt != websocket.BinaryMessage {
					continue
				}
				var obj struct {
					Type string `json:"type"`
				}
				_ = json.Unmarshal(msg, &obj)
				if strings.ToLower(strings.TrimSpace(obj.Type)) == "stop" {
					select {
					case <-stopCh:
					default:
						close(stopCh)
					}
					return
				}
			}
		}()
		go func() {
			select {
			case <-stopCh:
				cancel()
			case <-ctx.Done():
			}
		}()

		history := buildHistory(prior, message)

		var full strings.Builder
		gotDelta := false
		onDelta := func(chunk string) {
			_ = conn.WriteJSON(gin.H{"type": "delta", "data": chunk})
			full.WriteString(chunk)
			gotDelta = true
		}

		if _, err := app.Gemini.StreamChat(ctx, history, onDelta); err != nil && ctx.Err() == nil {
			svc.StreamLocalReply(ctx, history, onDelta)
		}
		if !gotDelta && ctx.Err() == nil {
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
		// persist even when the client stopped early, so history stays coherent
		saveCtx, saveCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer saveCancel()
		if err := app.Store.SaveMessage(saveCtx, &botMsg); err != nil {
			log.Printf("[ws] save streamed reply failed: %v", err)
		}
		if err := app.Mood.UpdateAnalytics(saveCtx, uid, sentiment); err != nil {
			log.Printf("[ws] analytics update failed: %v", err)
		}

		_ = conn.WriteJSON(gin.H{"type": "suggestions", "data": app.Habits.Suggest(saveCtx, uid, sentiment.Mood, sentiment.SentimentScore, 2)})
		_ = conn.WriteJSON(gin.H{"type": "done", "ok": true})
	}
}
