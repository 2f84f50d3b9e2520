package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig_Valid(t *testing.T) {
	path := writeConfig(t, `{
		"handle": "someone",
		"cache_dir": "/tmp/cache",
		"max_posts": 50,
		"cache_only": true
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "someone", cfg.Handle)
	assert.Equal(t, "/tmp/cache", cfg.CacheDir)
	assert.Equal(t, 50, cfg.MaxPosts)
	assert.True(t, cfg.CacheOnly)
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	require.Error(t, err)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	path := writeConfig(t, "{not json")
	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "empty config valid", cfg: Config{}},
		{name: "negative max posts", cfg: Config{MaxPosts: -1}, wantErr: "max_posts"},
		{name: "negative cache ttl", cfg: Config{CacheTTLHrs: -1}, wantErr: "cache_ttl_hours"},
		{name: "negative history limit", cfg: Config{HistoryLimit: -1}, wantErr: "history_limit"},
		{name: "missing calendar file", cfg: Config{CalendarFile: "/does/not/exist.yaml"}, wantErr: "calendar file not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_ExistingCalendarFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calendar.yaml")
	require.NoError(t, os.WriteFile(path, []byte("events: []"), 0o644))

	cfg := Config{CalendarFile: path}
	assert.NoError(t, cfg.Validate())
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{Handle: "someone", MaxPosts: 50}
	defaults := Config{
		Handle:     "ignored",
		CacheDir:   "cache",
		ProfileDir: "profiles",
		MaxPosts:   100,
	}

	merged := cfg.MergeWithDefaults(defaults)
	assert.Equal(t, "someone", merged.Handle, "set fields win over defaults")
	assert.Equal(t, 50, merged.MaxPosts)
	assert.Equal(t, "cache", merged.CacheDir, "empty fields fill from defaults")
	assert.Equal(t, "profiles", merged.ProfileDir)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("POSTS_API_KEY", "env-key")
	t.Setenv("DATABASE_URL", "postgres://env")
	t.Setenv("LLM_PROVIDER", "ollama")

	cfg := Config{PostsAPIKey: "explicit"}
	cfg.FromEnv()
	assert.Equal(t, "explicit", cfg.PostsAPIKey, "explicit value is not overwritten")
	assert.Equal(t, "postgres://env", cfg.DatabaseURL)
	assert.Equal(t, "ollama", cfg.LLMProvider)
}

func TestOptionalJWTConfig(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	cfg, err := OptionalJWTConfig()
	require.NoError(t, err)
	assert.Nil(t, cfg, "auth disabled without a secret")

	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_EXPIRATION_HOURS", "")
	cfg, err = OptionalJWTConfig()
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "s3cret", cfg.Secret)
	assert.Equal(t, 24, cfg.ExpirationHours)
}

func TestNewJWTConfig_InvalidExpiration(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_EXPIRATION_HOURS", "zero")
	_, err := NewJWTConfig()
	require.Error(t, err)

	t.Setenv("JWT_EXPIRATION_HOURS", "0")
	_, err = NewJWTConfig()
	require.Error(t, err)
}
