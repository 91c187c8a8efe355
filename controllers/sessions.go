package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"SereneAI/middleware"
)

// ListSessions returns the caller's most recent sessions.
func ListSessions(app *App) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := middleware.CurrentUserID(c)

		limit := 10
		if raw := c.Query("limit"); raw != "" {
			if v, err := strconv.Atoi(raw); err == nil && v > 0 && v <= 100 {
				limit = v
			}
		}

		sessions, err := app.Store.UserSessions(c.Request.Context(), uid, limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "store error"})
			return
		}
		c.JSON(http.StatusOK, sessions)
	}
}

// GetSession returns one session and its messages. Sessions belonging to
// other users look like they do not exist.
func GetSession(app *App) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := middleware.CurrentUserID(c)
		sid := c.Param("session_id")

		session, err := app.Store.GetSession(c.Request.Context(), sid)
		if err != nil || session.UserID != uid {
			c.JSON(http.StatusNotFound, gin.H{"msg": "session not found"})
			return
		}

		messages, err := app.Store.SessionMessages(c.Request.Context(), sid)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "failed to load messages"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"session":  session,
			"messages": messages,
		})
	}
}

// EndSession marks a session inactive.
func EndSession(app *App) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := middleware.CurrentUserID(c)
		sid := c.Param("session_id")

		session, err := app.Store.GetSession(c.Request.Context(), sid)
		if err != nil || session.UserID != uid {
			c.JSON(http.StatusNotFound, gin.H{"msg": "session not found"})
			return
		}
		if !session.IsActive {
			c.JSON(http.StatusOK, gin.H{"msg": "session already ended"})
			return
		}
		if err := app.Store.EndSession(c.Request.Context(), sid); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "failed to end session"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"msg": "session ended"})
	}
}

// DeleteSession removes a session and its messages.
func DeleteSession(app *App) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := middleware.CurrentUserID(c)
		sid := c.Param("session_id")

		session, err := app.Store.GetSession(c.Request.Context(), sid)
		if err != nil || session.UserID != uid {
			c.JSON(http.StatusNotFound, gin.H{"msg": "session not found"})
			return
		}
		if err := app.Store.DeleteSession(c.Request.Context(), sid); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "failed to delete session"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"msg": "session deleted"})
	}
}
