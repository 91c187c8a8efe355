package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"SereneAI/middleware"
	"SereneAI/models"
)

func intQuery(c *gin.Context, name string, def, max int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return def
	}
	if max > 0 && v > max {
		return max
	}
	return v
}

// MoodHistory returns the caller's daily mood analytics.
func MoodHistory(app *App) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := middleware.CurrentUserID(c)
		days := intQuery(c, "days", 30, 365)

		history, err := app.Store.MoodHistory(c.Request.Context(), uid, days)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "store error"})
			return
		}
		if history == nil {
			history = []models.MoodAnalytics{}
		}
		c.JSON(http.StatusOK, gin.H{"days": days, "history": history})
	}
}

// Patterns runs the emotional pattern analysis over recent messages.
func Patterns(app *App) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := middleware.CurrentUserID(c)
		days := intQuery(c, "days", 7, 90)

		insight := app.Mood.AnalyzePatterns(c.Request.Context(), uid, days)
		c.JSON(http.StatusOK, insight)
	}
}

// WeeklyReport returns the seven-day summary with trend and
// recommendations.
func WeeklyReport(app *App) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := middleware.CurrentUserID(c)

		report, err := app.Habits.WeeklyReport(c.Request.Context(), uid)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "store error"})
			return
		}
		c.JSON(http.StatusOK, report)
	}
}

// Feedback returns a short personalized supportive note for the given
// mood, grounded in the caller's recent emotional patterns.
func Feedback(app *App) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := middleware.CurrentUserID(c)

		mood := models.MoodNeutral
		score := 0.5
		if raw := c.Query("mood"); raw != "" {
			if m, ok := models.ParseMoodType(raw); ok {
				mood = m
			} else {
				c.JSON(http.StatusBadRequest, gin.H{"msg": "unknown mood"})
				return
			}
		}
		if raw := c.Query("score"); raw != "" {
			if v, err := strconv.ParseFloat(raw, 64); err == nil && v >= 0 && v <= 1 {
				score = v
			}
		}

		feedback := app.Mood.PersonalizedFeedback(c.Request.Context(), uid, mood, score)
		c.JSON(http.StatusOK, gin.H{"mood": mood, "feedback": feedback})
	}
}

// HabitSuggestions returns personalized habits for the given (or latest
// known) mood.
func HabitSuggestions(app *App) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := middleware.CurrentUserID(c)
		count := intQuery(c, "count", 3, 5)

		mood := models.MoodNeutral
		score := 0.5
		if raw := c.Query("mood"); raw != "" {
			if m, ok := models.ParseMoodType(raw); ok {
				mood = m
			} else {
				c.JSON(http.StatusBadRequest, gin.H{"msg": "unknown mood"})
				return
			}
		}
		if raw := c.Query("score"); raw != "" {
			if v, err := strconv.ParseFloat(raw, 64); err == nil && v >= 0 && v <= 1 {
				score = v
			}
		}

		suggestions := app.Habits.Suggest(c.Request.Context(), uid, mood, score, count)
		c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
	}
}
