package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

var (
	ErrMissingFirebaseConfig = errors.New("one or more Firebase environment variables are missing")
	ErrMissingGeminiKey      = errors.New("GEMINI_API_KEY is not set")
)

// DefaultCORSOrigins are the front-end hosts allowed to call the relay when
// CORS_ORIGINS is not set.
var DefaultCORSOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5000",
	"http://127.0.0.1:5000",
	"https://studentvoiceplatform.web.app",
	"https://studentvoiceplatform.firebaseapp.com",
}

// FirebaseConfig is the client configuration injected into the served pages.
// Field order is the order of the serialised JSON object.
type FirebaseConfig struct {
	APIKey            string `json:"apiKey"`
	AuthDomain        string `json:"authDomain"`
	ProjectID         string `json:"projectId"`
	StorageBucket     string `json:"storageBucket"`
	MessagingSenderID string `json:"messagingSenderId"`
	AppID             string `json:"appId"`
}

type Config struct {
	Firebase FirebaseConfig

	GeminiAPIKey string
	GeminiModel  string

	Port        string
	GinMode     string
	CORSOrigins []string
	FrontendDir string

	MaxRequestSize int64
	CompressPages  bool

	// Tracing
	OTLPEndpoint     string
	TraceSampleRatio float64
}

func LoadConfig() (*Config, error) {
	// Load .env file if exists
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	cfg := &Config{
		Firebase: FirebaseConfig{
			APIKey:            getEnv("FIREBASE_API_KEY", ""),
			AuthDomain:        getEnv("FIREBASE_AUTH_DOMAIN", ""),
			ProjectID:         getEnv("FIREBASE_PROJECT_ID", ""),
			StorageBucket:     getEnv("FIREBASE_STORAGE_BUCKET", ""),
			MessagingSenderID: getEnv("FIREBASE_MESSAGING_SENDER_ID", ""),
			AppID:             getEnv("FIREBASE_APP_ID", ""),
		},

		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.0-flash"),

		Port:        getEnv("PORT", "3000"),
		GinMode:     getEnv("GIN_MODE", "debug"),
		CORSOrigins: getEnvList("CORS_ORIGINS", DefaultCORSOrigins),
		FrontendDir: getEnv("FRONTEND_DIR", "./frontend"),

		MaxRequestSize: getEnvInt64("MAX_REQUEST_SIZE", 102400), // 100KB
		CompressPages:  getEnvBool("COMPRESS_PAGES", true),

		OTLPEndpoint:     getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		TraceSampleRatio: getEnvFloat64("OTEL_SAMPLE_RATIO", 0.1),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate reports missing required settings. It never exits the process.
func (c *Config) Validate() error {
	var missing []string
	if c.Firebase.APIKey == "" {
		missing = append(missing, "FIREBASE_API_KEY")
	}
	if c.Firebase.ProjectID == "" {
		missing = append(missing, "FIREBASE_PROJECT_ID")
	}
	if c.Firebase.AuthDomain == "" {
		missing = append(missing, "FIREBASE_AUTH_DOMAIN")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s - set them in .env file", ErrMissingFirebaseConfig, strings.Join(missing, ", "))
	}

	if c.GeminiAPIKey == "" {
		return fmt.Errorf("%w - set it in .env file", ErrMissingGeminiKey)
	}

	if len(c.CORSOrigins) == 0 {
		return fmt.Errorf("CORS_ORIGINS must list at least one origin")
	}
	for _, origin := range c.CORSOrigins {
		if !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return fmt.Errorf("invalid CORS origin %q: must start with http:// or https://", origin)
		}
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return append([]string(nil), defaultValue...)
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvFloat64(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
