package controllers

import (
	"SereneAI/pkg/cache"
	"SereneAI/pkg/config"
	svc "SereneAI/pkg/services"
)

// App bundles the shared services handed to every handler factory.
type App struct {
	Store  *svc.FirestoreService
	Gemini *svc.GeminiService
	Mood   *svc.MoodAnalyzer
	Habits *svc.HabitEngine
}

// NewApp wires the service graph around an initialized store.
func NewApp(store *svc.FirestoreService) *App {
	gemini := svc.NewGeminiService()
	c := cache.New(config.SentimentCacheMaxItems)
	return &App{
		Store:  store,
		Gemini: gemini,
		Mood:   svc.NewMoodAnalyzer(gemini, store, c),
		Habits: svc.NewHabitEngine(gemini, store, c),
	}
}
