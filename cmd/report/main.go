package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"SereneAI/pkg/cache"
	"SereneAI/pkg/config"
	svc "SereneAI/pkg/services"
)

// Offline report generator. Produces the same weekly wellbeing report
// the /insights/report endpoint serves, plus the pattern insight, as a
// JSON document suitable for piping into other tools.
//
// Usage:
//
//	go run ./cmd/report -user <user_id> [-days 7] [-out report.json]

type reportDoc struct {
	UserID      string `json:"user_id"`
	GeneratedAt string `json:"generated_at"`
	Days        int    `json:"days"`
	Report      any    `json:"report"`
	Patterns    any    `json:"patterns"`
}

func main() {
	userID := flag.String("user", "", "user id to report on (required)")
	days := flag.Int("days", 7, "lookback window in days for pattern analysis")
	out := flag.String("out", "", "write JSON to this file instead of stdout")
	flag.Parse()

	if *userID == "" {
		flag.Usage()
		os.Exit(2)
	}

	config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	store, err := svc.NewFirestoreService(ctx)
	if err != nil {
		log.Fatalf("failed to connect firestore: %v", err)
	}
	defer store.Close()

	gemini := svc.NewGeminiService()
	c := cache.New(config.SentimentCacheMaxItems)
	habits := svc.NewHabitEngine(gemini, store, c)
	mood := svc.NewMoodAnalyzer(gemini, store, c)

	report, err := habits.WeeklyReport(ctx, *userID)
	if err != nil {
		log.Fatalf("weekly report failed: %v", err)
	}
	patterns := mood.AnalyzePatterns(ctx, *userID, *days)

	doc := reportDoc{
		UserID:      *userID,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Days:        *days,
		Report:      report,
		Patterns:    patterns,
	}

	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		log.Fatalf("marshal report: %v", err)
	}

	if *out != "" {
		if err := os.WriteFile(*out, b, 0o644); err != nil {
			log.Fatalf("write %s: %v", *out, err)
		}
		log.Printf("[report] wrote %s", *out)
		return
	}
	fmt.Println(string(b))
}
