package main

import (
	"context"
	"fmt"

	"github.com/jonathan/voice-agent/internal/llm"
	"github.com/jonathan/voice-agent/internal/voice"
	"github.com/spf13/cobra"
)

var (
	analyzeHandle    string
	analyzeMaxPosts  int
	analyzeNoSave    bool
	analyzeCacheDir  string
	analyzeStoreDir  string
	analyzeCacheOnly bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a handle's posting voice",
	Long:  "Fetches a handle's recent posts and extracts a structured voice profile (writing style, tone, topics, engagement patterns) using the configured LLM.",
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeHandle, "user", "u", "", "Handle to analyze (required)")
	analyzeCmd.Flags().IntVar(&analyzeMaxPosts, "max-posts", 100, "Maximum posts to analyze")
	analyzeCmd.Flags().BoolVar(&analyzeNoSave, "no-save", false, "Print the profile without saving it")
	analyzeCmd.Flags().StringVar(&analyzeCacheDir, "cache-dir", envOr("CACHE_DIR", "cache"), "Directory for cached posts")
	analyzeCmd.Flags().StringVar(&analyzeStoreDir, "profile-dir", envOr("PROFILE_DIR", "profiles"), "Directory for saved voice profiles")
	analyzeCmd.Flags().BoolVar(&analyzeCacheOnly, "cache-only", false, "Use cached posts only; never call the posts API")

	if err := analyzeCmd.MarkFlagRequired("user"); err != nil {
		panic(fmt.Sprintf("failed to mark user flag as required: %v", err))
	}

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	postsClient, _, err := newPostsClient(analyzeCacheDir, analyzeCacheOnly)
	if err != nil {
		return err
	}

	llmClient, err := llm.NewClient(ctx, llm.DefaultConfig())
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer llmClient.Close()

	analyzer := voice.NewAnalyzer(postsClient, llmClient, analyzeMaxPosts)
	profile, err := analyzer.Analyze(ctx, analyzeHandle)
	if err != nil {
		return fmt.Errorf("failed to analyze @%s: %w", analyzeHandle, err)
	}

	if !analyzeNoSave {
		store, err := newProfileStore(analyzeStoreDir)
		if err != nil {
			return err
		}
		if err := store.Save(profile); err != nil {
			return fmt.Errorf("failed to save profile: %w", err)
		}
		fmt.Printf("Saved voice profile for @%s\n", analyzeHandle)
	}

	return printJSON(profile)
}
