package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/voice-agent/internal/analytics"
	"github.com/jonathan/voice-agent/internal/calendar"
	"github.com/jonathan/voice-agent/internal/files"
	"github.com/jonathan/voice-agent/internal/generation"
	"github.com/jonathan/voice-agent/internal/llm"
	"github.com/jonathan/voice-agent/internal/types"
	"github.com/spf13/cobra"
)

var (
	generateHandle       string
	generateType         string
	generateCount        int
	generateThreadCount  int
	generateTopic        string
	generateVibe         string
	generateUseContent   bool
	generateUseAnalytics bool
	generateUseCalendar  bool
	generateScore        bool
	generateCacheDir     string
	generateStoreDir     string
	generateContentDir   string
	generateCalendarFile string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate content proposals in a handle's voice",
	Long:  "Generates posts, threads, replies, or quotes matching a previously analyzed voice profile, optionally grounded in content files, engagement analytics, and calendar events.",
	RunE:  runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&generateHandle, "user", "u", "", "Handle whose voice to write in (required)")
	generateCmd.Flags().StringVarP(&generateType, "type", "t", "tweet", "Content type: tweet, thread, reply, or quote")
	generateCmd.Flags().IntVarP(&generateCount, "count", "n", 1, "Number of proposals to generate")
	generateCmd.Flags().IntVar(&generateThreadCount, "thread-count", 5, "Number of segments for thread proposals")
	generateCmd.Flags().StringVar(&generateTopic, "topic", "", "Topic to write about")
	generateCmd.Flags().StringVar(&generateVibe, "vibe", "", "Vibe or mood to match")
	generateCmd.Flags().BoolVar(&generateUseContent, "use-content", false, "Include content files as generation context")
	generateCmd.Flags().BoolVar(&generateUseAnalytics, "use-analytics", false, "Include engagement analytics as generation context")
	generateCmd.Flags().BoolVar(&generateUseCalendar, "use-calendar", false, "Include calendar hints and suggested dates")
	generateCmd.Flags().BoolVar(&generateScore, "score", false, "Attach virality predictions to each proposal")
	generateCmd.Flags().StringVar(&generateCacheDir, "cache-dir", envOr("CACHE_DIR", "cache"), "Directory for cached posts")
	generateCmd.Flags().StringVar(&generateStoreDir, "profile-dir", envOr("PROFILE_DIR", "profiles"), "Directory for saved voice profiles")
	generateCmd.Flags().StringVar(&generateContentDir, "content-dir", envOr("CONTENT_DIR", "content"), "Directory of user content files")
	generateCmd.Flags().StringVar(&generateCalendarFile, "calendar", os.Getenv("CALENDAR_FILE"), "Path to a calendar YAML/JSON file")

	if err := generateCmd.MarkFlagRequired("user"); err != nil {
		panic(fmt.Sprintf("failed to mark user flag as required: %v", err))
	}

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	contentType, err := types.ParseContentType(generateType)
	if err != nil {
		return err
	}

	store, err := newProfileStore(generateStoreDir)
	if err != nil {
		return err
	}
	profile, found, err := store.Load(generateHandle)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("no saved voice profile for @%s; run analyze first", generateHandle)
	}

	llmClient, err := llm.NewClient(ctx, llm.DefaultConfig())
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer llmClient.Close()

	var insights generation.InsightsSource
	if generateUseAnalytics {
		postsClient, _, err := newPostsClient(generateCacheDir, false)
		if err != nil {
			return err
		}
		posts, err := postsClient.UserPosts(ctx, generateHandle, 0)
		if err != nil {
			return fmt.Errorf("failed to fetch posts for analytics: %w", err)
		}
		insights = analytics.NewProcessor(posts)
	}

	var schedule generation.ScheduleSource
	if generateUseCalendar {
		cal := calendar.NewProcessor()
		if generateCalendarFile != "" {
			if err := cal.Load(generateCalendarFile); err != nil {
				return err
			}
		}
		schedule = cal
	}

	assembler := generation.NewAssembler(llmClient, profile, files.NewProcessor(generateContentDir), insights, schedule)
	proposals, err := assembler.Generate(ctx, generation.Options{
		ContentType:  contentType,
		Count:        generateCount,
		Topic:        generateTopic,
		ThreadCount:  generateThreadCount,
		Vibe:         generateVibe,
		UseContent:   generateUseContent,
		UseAnalytics: generateUseAnalytics,
		UseCalendar:  generateUseCalendar,
	})
	if err != nil {
		return fmt.Errorf("failed to generate proposals: %w", err)
	}
	if generateScore {
		assembler.ScoreProposals(proposals)
	}

	return printJSON(proposals)
}
