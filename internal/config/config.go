package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	// Screenshot capture API
	ScreenshotAPIKey     string
	ScreenshotAPIBaseURL string
	UseScreenshotService bool

	// Supabase
	SupabaseURL            string
	SupabasePublishableKey string
	SupabaseJWTSecret      string
	SupabaseStorageBucket  string

	// Database
	DatabaseURL string

	// Server
	Port        string
	Environment string
	BaseURL     string
}

func Load() (*Config, error) {
	cfg := &Config{
		ScreenshotAPIKey:     getEnv("SCREENSHOT_API_KEY", ""),
		ScreenshotAPIBaseURL: getEnv("SCREENSHOT_API_BASE_URL", "https://api.screenshotone.com"),
		UseScreenshotService: getEnvBool("USE_SCREENSHOT_SERVICE", false),

		SupabaseURL:            getEnv("SUPABASE_URL", ""),
		SupabasePublishableKey: getEnv("SUPABASE_PUBLISHABLE_KEY", ""),
		SupabaseJWTSecret:      getEnv("SUPABASE_JWT_SECRET", ""),
		SupabaseStorageBucket:  getEnv("SUPABASE_STORAGE_BUCKET", "instagram-mockups"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:8080"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate only rejects contradictory settings. Absent provider credentials
// are not an error: the pipeline treats a missing provider as a signal to use
// its fallback tier.
func (c *Config) Validate() error {
	if c.UseScreenshotService && c.ScreenshotAPIKey == "" {
		return fmt.Errorf("USE_SCREENSHOT_SERVICE is set but SCREENSHOT_API_KEY is empty")
	}
	return nil
}

// CaptureConfigured reports whether the remote capture tier has what it needs.
func (c *Config) CaptureConfigured() bool {
	return c.UseScreenshotService && c.ScreenshotAPIKey != ""
}

// StorageConfigured reports whether the cloud upload tier has what it needs.
func (c *Config) StorageConfigured() bool {
	return c.SupabaseURL != "" && c.SupabasePublishableKey != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
