package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	DataDir          string
	DBPath           string
	AttachmentsDir   string
	APIAddr          string
	AttachmentScheme string
	// UIOrigins are the browser origins of the UI host allowed to call the API.
	UIOrigins     []string
	SaveDebounce  time.Duration
	GCDelay       time.Duration
	GCGracePeriod time.Duration
	LogLevel      slog.Level
	LogFormat     string
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates the rest.
// If a .env file exists in the current directory or a parent directory, it will be loaded automatically.
// Environment variables already set take precedence over .env file values.
func Load() (*Config, error) {
	_ = godotenv.Load()

	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ { // Limit search depth
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	dataDir := getEnv("DESKNOTES_DATA_DIR", defaultDataDir())

	cfg := &Config{
		DataDir:          dataDir,
		DBPath:           getEnv("DB_PATH", filepath.Join(dataDir, "notes.db")),
		AttachmentsDir:   getEnv("ATTACHMENTS_DIR", filepath.Join(dataDir, "attachments")),
		APIAddr:          getEnv("API_ADDR", "127.0.0.1:9000"),
		AttachmentScheme: strings.ToLower(getEnv("ATTACHMENT_SCHEME", "desknotes")),
		LogFormat:        strings.ToLower(getEnv("LOG_FORMAT", "text")),
	}

	if cfg.SaveDebounce, err = getDuration("SAVE_DEBOUNCE", 600*time.Millisecond); err != nil {
		return nil, err
	}
	if cfg.GCDelay, err = getDuration("GC_DELAY", 250*time.Millisecond); err != nil {
		return nil, err
	}
	if cfg.GCGracePeriod, err = getDuration("GC_GRACE_PERIOD", 2*time.Minute); err != nil {
		return nil, err
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL is invalid: %w", err)
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}
	if cfg.UIOrigins, err = parseOrigins(os.Getenv("UI_ORIGIN")); err != nil {
		return nil, err
	}
	if cfg.AttachmentScheme == "" || strings.ContainsAny(cfg.AttachmentScheme, ":/ ") {
		return nil, fmt.Errorf("ATTACHMENT_SCHEME %q is not a valid scheme name", cfg.AttachmentScheme)
	}

	// The database and attachment tree live in an application-private directory.
	for _, dir := range []string{filepath.Dir(cfg.DBPath), cfg.AttachmentsDir} {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	return cfg, nil
}

func defaultDataDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return "./data"
	}
	return filepath.Join(base, "desknotes")
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parseOrigins reads a comma-separated list of scheme://host[:port] origins.
func parseOrigins(raw string) ([]string, error) {
	var origins []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		u, err := url.Parse(part)
		if err != nil || u.Scheme == "" || u.Host == "" || (u.Path != "" && u.Path != "/") || u.RawQuery != "" {
			return nil, fmt.Errorf("UI_ORIGIN %q is not a valid origin", part)
		}
		origins = append(origins, strings.ToLower(u.Scheme+"://"+u.Host))
	}
	return origins, nil
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid duration: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s must not be negative", key)
	}
	return d, nil
}
