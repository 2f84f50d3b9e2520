package main

import (
	"fmt"

	"github.com/jonathan/voice-agent/internal/posts"
	"github.com/spf13/cobra"
)

var (
	cacheInfoHandle  string
	cacheInfoDir     string
	cacheClearHandle string
	cacheClearDir    string
)

var cacheInfoCmd = &cobra.Command{
	Use:   "cache-info",
	Short: "Show cache freshness for a handle",
	RunE:  runCacheInfo,
}

var cacheClearCmd = &cobra.Command{
	Use:   "cache-clear",
	Short: "Clear cached posts and user info",
	Long:  "Clears the posts cache. With --user, drops only that handle's entries; otherwise the entire cache directory is cleared.",
	RunE:  runCacheClear,
}

func init() {
	cacheInfoCmd.Flags().StringVarP(&cacheInfoHandle, "user", "u", "", "Handle to inspect (required)")
	cacheInfoCmd.Flags().StringVar(&cacheInfoDir, "cache-dir", envOr("CACHE_DIR", "cache"), "Directory for cached posts")
	if err := cacheInfoCmd.MarkFlagRequired("user"); err != nil {
		panic(fmt.Sprintf("failed to mark user flag as required: %v", err))
	}

	cacheClearCmd.Flags().StringVarP(&cacheClearHandle, "user", "u", "", "Clear only this handle's cache entries")
	cacheClearCmd.Flags().StringVar(&cacheClearDir, "cache-dir", envOr("CACHE_DIR", "cache"), "Directory for cached posts")

	rootCmd.AddCommand(cacheInfoCmd)
	rootCmd.AddCommand(cacheClearCmd)
}

func runCacheInfo(_ *cobra.Command, _ []string) error {
	cache, err := posts.NewCache(cacheInfoDir, posts.DefaultCacheTTL)
	if err != nil {
		return err
	}
	return printJSON(cache.Stats(cacheInfoHandle))
}

func runCacheClear(_ *cobra.Command, _ []string) error {
	cache, err := posts.NewCache(cacheClearDir, posts.DefaultCacheTTL)
	if err != nil {
		return err
	}
	if cacheClearHandle != "" {
		cache.Invalidate(cacheClearHandle)
		fmt.Printf("Cleared cache for @%s\n", cacheClearHandle)
		return nil
	}
	removed := cache.Clear()
	fmt.Printf("Cleared %d cached file(s)\n", removed)
	return nil
}
