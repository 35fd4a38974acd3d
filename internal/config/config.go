package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Port string
	Env  string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT
	JWTSecret        string
	JWTExpirationDur time.Duration

	// Generative planner (Anthropic messages API)
	AnthropicAPIKey string
	AnthropicModel  string
	PlannerTimeout  time.Duration

	// Live part search
	SearchBaseURL      string
	SearchClientID     string
	SearchClientSecret string
	SearchTimeout      time.Duration
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		// Server
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		// Database
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "bompilot"),
		DBPassword: getEnv("DB_PASSWORD", "bompilot"),
		DBName:     getEnv("DB_NAME", "bompilot"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		// JWT
		JWTSecret: getEnv("JWT_SECRET", "fallback-secret-key-for-dev-only"),

		// Collaborators
		AnthropicAPIKey:    os.Getenv("ANTHROPIC_API_KEY"),
		AnthropicModel:     getEnv("ANTHROPIC_MODEL", "claude-sonnet-4-20250514"),
		SearchBaseURL:      getEnv("SEARCH_BASE_URL", "https://api.partsearch.example.com"),
		SearchClientID:     os.Getenv("SEARCH_CLIENT_ID"),
		SearchClientSecret: os.Getenv("SEARCH_CLIENT_SECRET"),
	}

	config.JWTExpirationDur = getEnvDuration("JWT_EXPIRES_IN", 24*time.Hour)

	// The live search budget is independent of any caller deadline; a timed
	// out search is treated as "no data", never as a request failure.
	config.SearchTimeout = getEnvDuration("SEARCH_TIMEOUT", 8*time.Second)
	config.PlannerTimeout = getEnvDuration("PLANNER_TIMEOUT", 20*time.Second)

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvDuration parses a duration environment variable, falling back to
// the default on absence or parse failure.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("Warning: invalid %s value '%s', falling back to %s\n", key, raw, defaultValue)
		return defaultValue
	}
	return d
}
