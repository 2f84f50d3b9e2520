package main

import (
	"context"
	"fmt"

	"github.com/jonathan/voice-agent/internal/health"
	"github.com/spf13/cobra"
)

var (
	healthHandle    string
	healthMaxPosts  int
	healthCacheDir  string
	healthStoreDir  string
	healthCacheOnly bool
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Score a handle's profile health",
	Long:  "Computes weighted sub-scores (engagement, cadence, length, hashtags, topic focus, and more) for a handle's recent posting history, with recommendations and next steps.",
	RunE:  runHealth,
}

func init() {
	healthCmd.Flags().StringVarP(&healthHandle, "user", "u", "", "Handle to score (required)")
	healthCmd.Flags().IntVar(&healthMaxPosts, "max-posts", 200, "Maximum posts to analyze")
	healthCmd.Flags().StringVar(&healthCacheDir, "cache-dir", envOr("CACHE_DIR", "cache"), "Directory for cached posts")
	healthCmd.Flags().StringVar(&healthStoreDir, "profile-dir", envOr("PROFILE_DIR", "profiles"), "Directory for saved voice profiles")
	healthCmd.Flags().BoolVar(&healthCacheOnly, "cache-only", false, "Use cached posts only; never call the posts API")

	if err := healthCmd.MarkFlagRequired("user"); err != nil {
		panic(fmt.Sprintf("failed to mark user flag as required: %v", err))
	}

	rootCmd.AddCommand(healthCmd)
}

func runHealth(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	postsClient, _, err := newPostsClient(healthCacheDir, healthCacheOnly)
	if err != nil {
		return err
	}

	posts, err := postsClient.UserPosts(ctx, healthHandle, healthMaxPosts)
	if err != nil {
		return fmt.Errorf("failed to fetch posts for @%s: %w", healthHandle, err)
	}

	info, err := postsClient.UserInfo(ctx, healthHandle)
	if err != nil {
		info = nil
	}

	store, err := newProfileStore(healthStoreDir)
	if err != nil {
		return err
	}
	profile, _, err := store.Load(healthHandle)
	if err != nil {
		profile = nil
	}

	result := health.ScoreProfileHealth(healthHandle, posts, info, profile)
	return printJSON(result)
}
