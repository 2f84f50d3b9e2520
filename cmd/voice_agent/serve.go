package main

import (
	"fmt"
	"os"

	"github.com/jonathan/voice-agent/internal/config"
	"github.com/jonathan/voice-agent/internal/server"
	"github.com/spf13/cobra"
)

var (
	serveConfigFile   string
	servePort         int
	serveCacheDir     string
	serveProfileDir   string
	serveContentDir   string
	serveCalendarFile string
	serveMaxPosts     int
	serveCacheOnly    bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for voice analysis, content generation, scoring, and profile health.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveConfigFile, "config", os.Getenv("CONFIG_FILE"), "Path to a JSON config file; flags and env override its values")
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&serveCacheDir, "cache-dir", envOr("CACHE_DIR", ""), "Directory for cached posts and user info")
	serveCmd.Flags().StringVar(&serveProfileDir, "profile-dir", envOr("PROFILE_DIR", ""), "Directory for saved voice profiles")
	serveCmd.Flags().StringVar(&serveContentDir, "content-dir", envOr("CONTENT_DIR", ""), "Directory of user content files for generation context")
	serveCmd.Flags().StringVar(&serveCalendarFile, "calendar", os.Getenv("CALENDAR_FILE"), "Path to a calendar YAML/JSON file")
	serveCmd.Flags().IntVar(&serveMaxPosts, "max-posts", 0, "Default number of posts fetched for analysis")
	serveCmd.Flags().BoolVar(&serveCacheOnly, "cache-only", false, "Serve posts from cache only; never call the posts API")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	// Flags and environment win; the config file fills whatever is left.
	flagCfg := config.Config{
		CacheDir:     serveCacheDir,
		ProfileDir:   serveProfileDir,
		ContentDir:   serveContentDir,
		CalendarFile: serveCalendarFile,
		MaxPosts:     serveMaxPosts,
		DatabaseURL:  os.Getenv("DATABASE_URL"),
	}
	flagCfg.FromEnv()

	fileCfg := config.Config{
		CacheDir:   "cache",
		ProfileDir: "profiles",
		ContentDir: "content",
		MaxPosts:   100,
	}
	if serveConfigFile != "" {
		loaded, err := config.LoadConfig(serveConfigFile)
		if err != nil {
			return err
		}
		fileCfg = loaded.MergeWithDefaults(fileCfg)
	}

	merged := flagCfg.MergeWithDefaults(fileCfg)
	if err := merged.Validate(); err != nil {
		return err
	}
	if merged.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	cfg := server.Config{
		Port:         servePort,
		DatabaseURL:  merged.DatabaseURL,
		PostsAPIKey:  merged.PostsAPIKey,
		CacheDir:     merged.CacheDir,
		ProfileDir:   merged.ProfileDir,
		ContentDir:   merged.ContentDir,
		CalendarFile: merged.CalendarFile,
		MaxPosts:     merged.MaxPosts,
		CacheOnly:    serveCacheOnly || merged.CacheOnly,
	}

	srv, err := server.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
