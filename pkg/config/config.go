package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the evaluation service.
// Environment variables are read only in this package.
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Database
	Database DatabaseConfig

	// Redis
	Redis RedisConfig

	// External APIs
	Search SearchConfig
	Gemini GeminiConfig

	// Benchmark resolution
	Benchmark BenchmarkConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	URL      string

	// Connection Pool
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

// SearchConfig holds the benchmark search provider credentials.
// SerpAPI is the primary provider, Google Custom Search the secondary.
type SearchConfig struct {
	SerpAPIKey           string
	SerpAPIBaseURL       string
	GoogleSearchKey      string
	GoogleSearchEngineID string
	GoogleSearchBaseURL  string
	Timeout              time.Duration
	QueriesPerSecond     int
}

// GeminiConfig holds the Gemini API configuration used by the
// LLM text-to-benchmark extractor.
type GeminiConfig struct {
	APIKey  string
	Model   string
	Enabled bool
}

// BenchmarkConfig controls resolver caching and refresh behavior
type BenchmarkConfig struct {
	CacheTTL        time.Duration
	RefreshAfter    time.Duration // stored rows older than this are re-resolved by the scheduler
	RefreshSchedule string        // cron spec
}

// Load reads configuration from environment variables.
// This is the only function that calls os.Getenv().
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		// Server
		Port: getEnv("PORT", "8090"),
		Env:  getEnv("ENV", "development"),

		// Database
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			Name:            getEnv("DB_NAME", "pitchlens"),
			User:            getEnv("DB_USER", "pitchlens"),
			Password:        getEnv("DB_PASSWORD", ""),
			URL:             getEnv("DATABASE_URL", ""),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 25),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 5),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", "30m"),
		},

		// Redis
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", true),
		},

		// External APIs
		Search: SearchConfig{
			SerpAPIKey:           getEnv("SERPAPI_KEY", ""),
			SerpAPIBaseURL:       getEnv("SERPAPI_BASE_URL", "https://serpapi.com"),
			GoogleSearchKey:      getEnv("GOOGLE_SEARCH_API_KEY", ""),
			GoogleSearchEngineID: getEnv("GOOGLE_SEARCH_ENGINE_ID", ""),
			GoogleSearchBaseURL:  getEnv("GOOGLE_SEARCH_BASE_URL", "https://www.googleapis.com/customsearch/v1"),
			Timeout:              getEnvAsDuration("SEARCH_TIMEOUT", "15s"),
			QueriesPerSecond:     getEnvAsInt("SEARCH_QPS", 2),
		},

		Gemini: GeminiConfig{
			APIKey:  getEnv("GEMINI_API_KEY", ""),
			Model:   getEnv("GEMINI_MODEL", "gemini-1.5-pro"),
			Enabled: getEnvAsBool("GEMINI_EXTRACTOR_ENABLED", false),
		},

		Benchmark: BenchmarkConfig{
			CacheTTL:        getEnvAsDuration("BENCHMARK_CACHE_TTL", "1h"),
			RefreshAfter:    getEnvAsDuration("BENCHMARK_REFRESH_AFTER", "720h"),
			RefreshSchedule: getEnv("BENCHMARK_REFRESH_SCHEDULE", "0 0 3 * * 1"),
		},

		// Logging
		LogLevel:  getEnv("LOG_LEVEL", "debug"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	// Validate configuration
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set
func (c *Config) validate() error {
	// Database URL is required
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	// Validate environment
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.Gemini.Enabled && c.Gemini.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required when GEMINI_EXTRACTOR_ENABLED=true")
	}

	return nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	// Try paths in order of priority
	paths := []string{
		".env", // Current directory
	}

	// Also try relative to executable
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
			filepath.Join(exeDir, "..", "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		// Fallback to default
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}
