package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envVars = []string{
	"DESKNOTES_DATA_DIR", "DB_PATH", "ATTACHMENTS_DIR", "API_ADDR", "ATTACHMENT_SCHEME", "UI_ORIGIN",
	"SAVE_DEBOUNCE", "GC_DELAY", "GC_GRACE_PERIOD", "LOG_LEVEL", "LOG_FORMAT",
}

// clearEnv blanks every variable Load reads for the duration of the test.
// Load treats empty values as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envVars {
		t.Setenv(key, "")
	}
}

// chdirTemp moves into a directory without a .env file so none is loaded.
func chdirTemp(t *testing.T) {
	t.Helper()
	originalWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() {
		_ = os.Chdir(originalWd)
	})
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		setupEnv    func(*testing.T) string
		wantErr     string
		checkConfig func(*testing.T, *Config, string)
	}{
		{
			name: "defaults derived from data dir",
			setupEnv: func(t *testing.T) string {
				dir := t.TempDir()
				t.Setenv("DESKNOTES_DATA_DIR", dir)
				return dir
			},
			checkConfig: func(t *testing.T, cfg *Config, dir string) {
				assert.Equal(t, dir, cfg.DataDir)
				assert.Equal(t, filepath.Join(dir, "notes.db"), cfg.DBPath)
				assert.Equal(t, filepath.Join(dir, "attachments"), cfg.AttachmentsDir)
				assert.Equal(t, "127.0.0.1:9000", cfg.APIAddr)
				assert.Equal(t, "desknotes", cfg.AttachmentScheme)
				assert.Empty(t, cfg.UIOrigins)
				assert.Equal(t, 600*time.Millisecond, cfg.SaveDebounce)
				assert.Equal(t, 250*time.Millisecond, cfg.GCDelay)
				assert.Equal(t, 2*time.Minute, cfg.GCGracePeriod)
				assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
				assert.Equal(t, "text", cfg.LogFormat)
			},
		},
		{
			name: "custom values",
			setupEnv: func(t *testing.T) string {
				dir := t.TempDir()
				t.Setenv("DESKNOTES_DATA_DIR", dir)
				t.Setenv("DB_PATH", filepath.Join(dir, "custom", "db.db"))
				t.Setenv("SAVE_DEBOUNCE", "1s")
				t.Setenv("GC_GRACE_PERIOD", "0s")
				t.Setenv("LOG_LEVEL", "debug")
				t.Setenv("LOG_FORMAT", "JSON")
				t.Setenv("ATTACHMENT_SCHEME", "Notes-App")
				return dir
			},
			checkConfig: func(t *testing.T, cfg *Config, dir string) {
				assert.Equal(t, "db.db", filepath.Base(cfg.DBPath))
				assert.Equal(t, time.Second, cfg.SaveDebounce)
				assert.Zero(t, cfg.GCGracePeriod)
				assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
				assert.Equal(t, "json", cfg.LogFormat)
				assert.Equal(t, "notes-app", cfg.AttachmentScheme)
			},
		},
		{
			name: "ui origins are normalized",
			setupEnv: func(t *testing.T) string {
				t.Setenv("DESKNOTES_DATA_DIR", t.TempDir())
				t.Setenv("UI_ORIGIN", " HTTP://LocalHost:5173/ , app://desknotes,")
				return ""
			},
			checkConfig: func(t *testing.T, cfg *Config, _ string) {
				assert.Equal(t, []string{"http://localhost:5173", "app://desknotes"}, cfg.UIOrigins)
			},
		},
		{
			name: "ui origin with a path",
			setupEnv: func(t *testing.T) string {
				t.Setenv("DESKNOTES_DATA_DIR", t.TempDir())
				t.Setenv("UI_ORIGIN", "http://localhost:5173/app")
				return ""
			},
			wantErr: "UI_ORIGIN",
		},
		{
			name: "ui origin without a scheme",
			setupEnv: func(t *testing.T) string {
				t.Setenv("DESKNOTES_DATA_DIR", t.TempDir())
				t.Setenv("UI_ORIGIN", "localhost")
				return ""
			},
			wantErr: "UI_ORIGIN",
		},
		{
			name: "ui origin wildcard",
			setupEnv: func(t *testing.T) string {
				t.Setenv("DESKNOTES_DATA_DIR", t.TempDir())
				t.Setenv("UI_ORIGIN", "*")
				return ""
			},
			wantErr: "UI_ORIGIN",
		},
		{
			name: "invalid duration",
			setupEnv: func(t *testing.T) string {
				t.Setenv("DESKNOTES_DATA_DIR", t.TempDir())
				t.Setenv("GC_DELAY", "soon")
				return ""
			},
			wantErr: "GC_DELAY",
		},
		{
			name: "negative duration",
			setupEnv: func(t *testing.T) string {
				t.Setenv("DESKNOTES_DATA_DIR", t.TempDir())
				t.Setenv("SAVE_DEBOUNCE", "-5ms")
				return ""
			},
			wantErr: "SAVE_DEBOUNCE",
		},
		{
			name: "invalid log level",
			setupEnv: func(t *testing.T) string {
				t.Setenv("DESKNOTES_DATA_DIR", t.TempDir())
				t.Setenv("LOG_LEVEL", "chatty")
				return ""
			},
			wantErr: "LOG_LEVEL",
		},
		{
			name: "invalid log format",
			setupEnv: func(t *testing.T) string {
				t.Setenv("DESKNOTES_DATA_DIR", t.TempDir())
				t.Setenv("LOG_FORMAT", "xml")
				return ""
			},
			wantErr: "LOG_FORMAT",
		},
		{
			name: "invalid scheme",
			setupEnv: func(t *testing.T) string {
				t.Setenv("DESKNOTES_DATA_DIR", t.TempDir())
				t.Setenv("ATTACHMENT_SCHEME", "bad://scheme")
				return ""
			},
			wantErr: "ATTACHMENT_SCHEME",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chdirTemp(t)
			clearEnv(t)
			dir := tt.setupEnv(t)

			cfg, err := Load()

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			if tt.checkConfig != nil {
				tt.checkConfig(t, cfg, dir)
			}
		})
	}
}

func TestLoad_CreatesDataDirectories(t *testing.T) {
	chdirTemp(t)
	clearEnv(t)

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "state", "notes.db")
	attachDir := filepath.Join(tmpDir, "blobs")

	t.Setenv("DESKNOTES_DATA_DIR", tmpDir)
	t.Setenv("DB_PATH", dbPath)
	t.Setenv("ATTACHMENTS_DIR", attachDir)

	cfg, err := Load()
	require.NoError(t, err)

	for _, dir := range []string{filepath.Dir(dbPath), attachDir} {
		assert.DirExists(t, dir)
	}
	assert.Equal(t, dbPath, cfg.DBPath)
}

func TestGetEnv(t *testing.T) {
	tests := []struct {
		name         string
		value        string
		set          bool
		defaultValue string
		want         string
	}{
		{
			name:         "env var set",
			value:        "set-value",
			set:          true,
			defaultValue: "default",
			want:         "set-value",
		},
		{
			name:         "env var not set",
			defaultValue: "default",
			want:         "default",
		},
		{
			name:         "empty env var uses default",
			set:          true,
			defaultValue: "default",
			want:         "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_ENV_VAR", "")
			if tt.set {
				t.Setenv("TEST_ENV_VAR", tt.value)
			} else {
				require.NoError(t, os.Unsetenv("TEST_ENV_VAR"))
			}
			assert.Equal(t, tt.want, getEnv("TEST_ENV_VAR", tt.defaultValue))
		})
	}
}
