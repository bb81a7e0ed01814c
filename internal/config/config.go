// Package config provides application configuration management.
// It loads settings from environment variables once at startup; the
// resulting Config is immutable and injected into every component.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Supported completion providers.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Defaults for course-facing values.
const (
	DefaultModel            = "gpt-4o-mini"
	DefaultCoursePageURL    = "https://learn.example.edu/course/syllabus"
	DefaultAltAssistantURL  = "https://learn.example.edu/course/ebo-essay-assistant"
	DefaultAltAssistantName = "EBO & Essay Assistant"
	DefaultSyllabusPath     = "./data/syllabus.md"
	DefaultMaxContextChars  = 60000
)

// Config holds all application configuration
type Config struct {
	// Server Configuration
	Port            string
	LogLevel        string
	ShutdownTimeout time.Duration
	RateLimit       float64 // /api/ask requests per minute per client IP; 0 = unlimited

	// Completion Configuration
	Model         string
	LLMProvider   string // "openai" or "gemini"
	OpenAIAPIKey  string
	OpenAIBaseURL string // empty = SDK default
	GeminiAPIKey  string

	// Course Configuration
	CoursePageURL    string // linked from the disclaimer footer
	AltAssistantURL  string // redirect target for EBO/essay how-to questions
	AltAssistantName string
	SyllabusPath     string
	SyllabusR2Key    string // when set, the syllabus is read from R2 instead of SyllabusPath
	MaxContextChars  int    // 0 = unlimited
	DocumentRecheck  time.Duration

	// R2 Configuration
	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2AnalyticsPrefix string

	// Local interaction log (empty = disabled)
	InteractionsDBPath string

	// Better Stack Configuration
	BetterStackToken    string
	BetterStackEndpoint string

	// Sentry Configuration
	SentryDSN         string
	SentryToken       string
	SentryHost        string
	SentryEnvironment string
	SentryRelease     string
	SentrySampleRate  float64

	// Metrics Authentication
	MetricsUsername string // Username for /metrics endpoint Basic Auth (default: "prometheus")
	MetricsPassword string // Password for /metrics endpoint Basic Auth (empty = no auth)
}

// Load reads configuration from environment variables
// It attempts to load .env file first, then reads from env vars
func Load() (*Config, error) {
	// Try to load .env file (ignore error if file doesn't exist)
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnv(EnvPort, "8080"),
		LogLevel:        getEnv(EnvLogLevel, "info"),
		ShutdownTimeout: getDurationEnv(EnvShutdownTimeout, GracefulShutdown),
		RateLimit:       getFloatEnv(EnvRateLimit, 0),

		Model:         getEnv(EnvModel, DefaultModel),
		LLMProvider:   strings.ToLower(getEnv(EnvLLMProvider, ProviderOpenAI)),
		OpenAIAPIKey:  getEnv(EnvOpenAIAPIKey, ""),
		OpenAIBaseURL: getEnv(EnvOpenAIBaseURL, ""),
		GeminiAPIKey:  getEnv(EnvGeminiAPIKey, ""),

		CoursePageURL:    getEnv(EnvCoursePageURL, DefaultCoursePageURL),
		AltAssistantURL:  getEnv(EnvAltAssistantURL, DefaultAltAssistantURL),
		AltAssistantName: getEnv(EnvAltAssistantName, DefaultAltAssistantName),
		SyllabusPath:     getEnv(EnvSyllabusPath, DefaultSyllabusPath),
		SyllabusR2Key:    getEnv(EnvSyllabusR2Key, ""),
		MaxContextChars:  getIntEnv(EnvMaxContextChars, DefaultMaxContextChars),
		DocumentRecheck:  getDurationEnv(EnvDocumentRecheckWait, DocumentRecheckInterval),

		R2AccountID:       getEnv(EnvR2AccountID, ""),
		R2AccessKeyID:     getEnv(EnvR2AccessKeyID, ""),
		R2SecretAccessKey: getEnv(EnvR2SecretAccessKey, ""),
		R2BucketName:      getEnv(EnvR2BucketName, "syllabus-assistant"),
		R2AnalyticsPrefix: getEnv(EnvR2AnalyticsPrefix, "analytics"),

		InteractionsDBPath: getEnv(EnvInteractionsDBPath, ""),

		BetterStackToken:    getEnv(EnvBetterStackToken, ""),
		BetterStackEndpoint: getEnv(EnvBetterStackEndpoint, ""),

		SentryDSN:         getEnv(EnvSentryDSN, ""),
		SentryToken:       getEnv(EnvSentryToken, ""),
		SentryHost:        getEnv(EnvSentryHost, ""),
		SentryEnvironment: getEnv(EnvSentryEnvironment, "production"),
		SentryRelease:     getEnv(EnvSentryRelease, ""),
		SentrySampleRate:  getFloatEnv(EnvSentrySampleRate, 1.0),

		MetricsUsername: getEnv(EnvMetricsUsername, "prometheus"),
		MetricsPassword: getEnv(EnvMetricsPassword, ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that configuration values are usable.
// Missing completion credentials are not an error here: they only matter
// on the generative path and are reported per request.
func (c *Config) Validate() error {
	var errs []error

	if c.Port == "" {
		errs = append(errs, fmt.Errorf("%s is required", EnvPort))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %v", EnvShutdownTimeout, c.ShutdownTimeout))
	}
	if c.RateLimit < 0 {
		errs = append(errs, fmt.Errorf("%s cannot be negative, got %v", EnvRateLimit, c.RateLimit))
	}
	if c.LLMProvider != ProviderOpenAI && c.LLMProvider != ProviderGemini {
		errs = append(errs, fmt.Errorf("%s must be %q or %q, got %q", EnvLLMProvider, ProviderOpenAI, ProviderGemini, c.LLMProvider))
	}
	if c.Model == "" {
		errs = append(errs, fmt.Errorf("%s is required", EnvModel))
	}
	if c.MaxContextChars < 0 {
		errs = append(errs, fmt.Errorf("%s cannot be negative, got %d", EnvMaxContextChars, c.MaxContextChars))
	}
	if c.DocumentRecheck < 0 {
		errs = append(errs, fmt.Errorf("%s cannot be negative, got %v", EnvDocumentRecheckWait, c.DocumentRecheck))
	}
	if c.SyllabusR2Key != "" && !c.R2Enabled() {
		errs = append(errs, fmt.Errorf("%s requires R2 credentials", EnvSyllabusR2Key))
	}
	if c.SentrySampleRate < 0 || c.SentrySampleRate > 1 {
		errs = append(errs, fmt.Errorf("%s must be within [0, 1], got %v", EnvSentrySampleRate, c.SentrySampleRate))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// R2Enabled reports whether all three R2 credentials are set.
func (c *Config) R2Enabled() bool {
	return c.R2AccountID != "" && c.R2AccessKeyID != "" && c.R2SecretAccessKey != ""
}

// R2Endpoint returns the S3-compatible endpoint for the configured account.
func (c *Config) R2Endpoint() string {
	if c.R2AccountID == "" {
		return ""
	}
	return fmt.Sprintf("https://%s.r2.cloudflarestorage.com", c.R2AccountID)
}

// CompletionAPIKey returns the credential for the configured provider.
func (c *Config) CompletionAPIKey() string {
	if c.LLMProvider == ProviderGemini {
		return c.GeminiAPIKey
	}
	return c.OpenAIAPIKey
}

// CompletionAPIKeyEnv returns the environment key holding CompletionAPIKey.
func (c *Config) CompletionAPIKeyEnv() string {
	if c.LLMProvider == ProviderGemini {
		return EnvGeminiAPIKey
	}
	return EnvOpenAIAPIKey
}

// SentryEnabled reports whether error tracking has a destination.
func (c *Config) SentryEnabled() bool {
	return c.SentryDSN != "" || c.SentryToken != ""
}

// getEnv retrieves environment variable with fallback to default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getIntEnv retrieves integer environment variable with fallback to default value
func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getDurationEnv retrieves duration environment variable with fallback to default value
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getFloatEnv retrieves float64 environment variable with fallback to default value
func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
