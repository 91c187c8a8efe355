package config

import (
	"log"
	"os"
	"slices"
	"strconv"

	"github.com/joho/godotenv"
)

var (
	GoogleAPIKey   string
	GeminiModel    string
	GCPProjectID   string
	GCPCredentials string
	AppEnv         string
	IsStaging      bool
	IsProduction   bool
	// IsGeminiEnabled is a flag to enable/disable Gemini API usage (enum: "1" or "0")
	IsGeminiEnabled bool

	JWTSecret string
	Port      string

	// runtime tunables
	MaxConversationLength  int
	ResponseTimeoutSeconds int
	RateLimitWindowSeconds int
	RateLimitCapacity      int
	UserConcurrencyLimit   int
	DuplicateWindowSeconds int
	SentimentCacheTTLSecs  int
	SentimentCacheMaxItems int
)

// loadAppEnv loads .env only outside production; in production all values
// must come from the real environment.
func loadAppEnv() {
	AppEnv = os.Getenv("APP_ENV")

	if AppEnv == "production" {
		return
	}

	if err := godotenv.Load(); err != nil {
		log.Fatalf("Error loading .env file: %v", err)
	}
}

// Load reads the environment into the package globals. Called once from
// main before anything else; kept out of init so importing this package
// (e.g. from tests) has no side effects.
func Load() {
	loadAppEnv()

	GoogleAPIKey = os.Getenv("GOOGLE_API_KEY")
	GeminiModel = os.Getenv("GEMINI_MODEL")
	GCPProjectID = os.Getenv("GOOGLE_CLOUD_PROJECT_ID")
	GCPCredentials = os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")

	AppEnv = os.Getenv("APP_ENV")

	if !slices.Contains([]string{"staging", "production"}, AppEnv) {
		log.Fatal("environment variable APP_ENV must be 'staging' or 'production'")
	}

	IsStaging = AppEnv == "staging"
	IsProduction = AppEnv == "production"

	// IS_GEMINI_ENABLED: "1" for enabled, anything else disables the live API
	IsGeminiEnabled = os.Getenv("IS_GEMINI_ENABLED") == "1"

	// default model if not provided; can be overridden via GEMINI_MODEL env
	if GeminiModel == "" {
		GeminiModel = "gemini-2.0-flash-exp"
	}

	if GCPProjectID == "" {
		log.Fatal("GOOGLE_CLOUD_PROJECT_ID must be set")
	}

	JWTSecret = os.Getenv("JWT_SECRET_KEY")
	Port = os.Getenv("PORT")
	if Port == "" {
		Port = "5000"
	}

	// Tunables with defaults
	MaxConversationLength = atoiOr(os.Getenv("MAX_CONVERSATION_LENGTH"), 50)
	ResponseTimeoutSeconds = atoiOr(os.Getenv("RESPONSE_TIMEOUT_SECONDS"), 30)
	RateLimitWindowSeconds = atoiOr(os.Getenv("RATE_LIMIT_WINDOW_SECONDS"), 10)
	RateLimitCapacity = atoiOr(os.Getenv("RATE_LIMIT_CAPACITY"), 5)
	UserConcurrencyLimit = atoiOr(os.Getenv("USER_CONCURRENCY_LIMIT"), 2)
	DuplicateWindowSeconds = atoiOr(os.Getenv("DUPLICATE_WINDOW_SECONDS"), 45)
	SentimentCacheTTLSecs = atoiOr(os.Getenv("SENTIMENT_CACHE_TTL_SECONDS"), 600)
	SentimentCacheMaxItems = atoiOr(os.Getenv("SENTIMENT_CACHE_MAX_ITEMS"), 500)

	if IsProduction && JWTSecret == "" {
		log.Fatal("JWT_SECRET_KEY must be set in production")
	}

	// Log important config values to help debug environment
	log.Printf("[config] AppEnv=%s IsStaging=%v IsProduction=%v", AppEnv, IsStaging, IsProduction)
	log.Printf("[config] IsGeminiEnabled=%v GoogleAPIKeyPresent=%v", IsGeminiEnabled, GoogleAPIKey != "")
	log.Printf("[config] GeminiModel=%s ProjectID=%s", GeminiModel, GCPProjectID)
	log.Printf("[config] maxHistory=%d responseTimeout=%ds rateLimit window=%ds capacity=%d userConc=%d dupWindow=%ds",
		MaxConversationLength, ResponseTimeoutSeconds, RateLimitWindowSeconds, RateLimitCapacity, UserConcurrencyLimit, DuplicateWindowSeconds)
}

func atoiOr(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}
