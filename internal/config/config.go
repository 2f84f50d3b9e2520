// Package config provides configuration loading and validation for the CLI
// and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the agent configuration that can be loaded from a JSON
// file. All fields are optional; missing values use defaults or must be
// provided via CLI flags or environment variables.
type Config struct {
	// Identity
	Handle string `json:"handle,omitempty"` // Default handle to analyze and write as

	// Paths
	ContentDir   string `json:"content_dir,omitempty"`   // Directory of user-provided content files
	CalendarFile string `json:"calendar_file,omitempty"` // Path to content calendar (JSON or YAML)
	ProfileDir   string `json:"profile_dir,omitempty"`   // Directory for saved voice profiles
	CacheDir     string `json:"cache_dir,omitempty"`     // Directory for the posts API cache

	// Limits
	MaxPosts     int `json:"max_posts,omitempty"`       // Maximum posts fetched per handle
	CacheTTLHrs  int `json:"cache_ttl_hours,omitempty"` // Posts cache freshness window
	HistoryLimit int `json:"history_limit,omitempty"`   // Default history page size

	// Services
	PostsAPIKey string `json:"posts_api_key,omitempty"` // Scraping API key
	LLMProvider string `json:"llm_provider,omitempty"`  // "ollama" or "gemini"
	DatabaseURL string `json:"database_url,omitempty"`  // PostgreSQL connection URL

	// Behavior
	CacheOnly bool `json:"cache_only,omitempty"` // Serve posts from cache only
	Verbose   bool `json:"verbose,omitempty"`    // Print detailed debug information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv fills unset service fields from the environment.
func (c *Config) FromEnv() {
	if c.PostsAPIKey == "" {
		c.PostsAPIKey = os.Getenv("POSTS_API_KEY")
	}
	if c.DatabaseURL == "" {
		c.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if c.LLMProvider == "" {
		c.LLMProvider = os.Getenv("LLM_PROVIDER")
	}
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.MaxPosts < 0 {
		return fmt.Errorf("config error: 'max_posts' must be non-negative")
	}
	if c.CacheTTLHrs < 0 {
		return fmt.Errorf("config error: 'cache_ttl_hours' must be non-negative")
	}
	if c.HistoryLimit < 0 {
		return fmt.Errorf("config error: 'history_limit' must be non-negative")
	}
	if c.CalendarFile != "" {
		if _, err := os.Stat(c.CalendarFile); os.IsNotExist(err) {
			return fmt.Errorf("config error: calendar file not found: %s", c.CalendarFile)
		}
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. This is used to apply config file values as defaults for CLI
// flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Handle == "" {
		result.Handle = defaults.Handle
	}
	if result.ContentDir == "" {
		result.ContentDir = defaults.ContentDir
	}
	if result.CalendarFile == "" {
		result.CalendarFile = defaults.CalendarFile
	}
	if result.ProfileDir == "" {
		result.ProfileDir = defaults.ProfileDir
	}
	if result.CacheDir == "" {
		result.CacheDir = defaults.CacheDir
	}
	if result.PostsAPIKey == "" {
		result.PostsAPIKey = defaults.PostsAPIKey
	}
	if result.LLMProvider == "" {
		result.LLMProvider = defaults.LLMProvider
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	if result.MaxPosts == 0 {
		result.MaxPosts = defaults.MaxPosts
	}
	if result.CacheTTLHrs == 0 {
		result.CacheTTLHrs = defaults.CacheTTLHrs
	}
	if result.HistoryLimit == 0 {
		result.HistoryLimit = defaults.HistoryLimit
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
