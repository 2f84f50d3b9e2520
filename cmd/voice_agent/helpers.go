package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/voice-agent/internal/posts"
	"github.com/jonathan/voice-agent/internal/voice"
)

// envOr returns the environment variable value or a fallback.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// newPostsClient builds a posts client backed by an on-disk cache. The API
// key comes from POSTS_API_KEY; with cacheOnly set the key is optional and
// only cached data is served.
func newPostsClient(cacheDir string, cacheOnly bool) (*posts.Client, *posts.Cache, error) {
	cache, err := posts.NewCache(cacheDir, posts.DefaultCacheTTL)
	if err != nil {
		return nil, nil, err
	}
	client, err := posts.NewClient(posts.ClientConfig{
		APIKey:          os.Getenv("POSTS_API_KEY"),
		Cache:           cache,
		PreferCacheOnly: cacheOnly,
	})
	if err != nil {
		return nil, nil, err
	}
	return client, cache, nil
}

// newProfileStore opens the voice profile directory.
func newProfileStore(dir string) (*voice.ProfileStore, error) {
	return voice.NewProfileStore(dir)
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
