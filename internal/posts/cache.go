package posts

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jonathan/voice-agent/internal/types"
)

// DefaultCacheTTL is how long cached API responses stay fresh.
const DefaultCacheTTL = 24 * time.Hour

// sufficientCacheRatio is the fraction of a requested post count the cache
// must hold before it is preferred over a fresh fetch.
const sufficientCacheRatio = 0.8

// Cache is a file-based cache for posts API responses, one directory per
// agent with a pair of JSON files per handle.
type Cache struct {
	dir string
	ttl time.Duration
}

type cachedPosts struct {
	Handle   string       `json:"handle"`
	CachedAt time.Time    `json:"cached_at"`
	Data     []types.Post `json:"data"`
}

type cachedInfo struct {
	Handle   string           `json:"handle"`
	CachedAt time.Time        `json:"cached_at"`
	Data     types.AuthorInfo `json:"data"`
}

// Info describes the cache state for a handle.
type Info struct {
	Handle        string   `json:"handle"`
	InfoCached    bool     `json:"user_info_cached"`
	PostsCached   bool     `json:"posts_cached"`
	InfoAgeHours  *float64 `json:"user_info_age_hours,omitempty"`
	PostsAgeHours *float64 `json:"posts_age_hours,omitempty"`
	PostCount     int      `json:"post_count"`
}

// NewCache creates a cache rooted at dir with the given TTL. A zero ttl
// falls back to DefaultCacheTTL.
func NewCache(dir string, ttl time.Duration) (*Cache, error) {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory %s: %w", dir, err)
	}
	return &Cache{dir: dir, ttl: ttl}, nil
}

// Posts returns cached posts for a handle. When returnAll is false the cache
// only answers if it holds at least 80% of the requested count, so callers
// fall through to the API when the cache is clearly short.
func (c *Cache) Posts(handle string, max int, returnAll bool) ([]types.Post, bool) {
	var entry cachedPosts
	if !c.read(c.postsPath(handle), &entry) {
		return nil, false
	}
	if time.Since(entry.CachedAt) > c.ttl {
		log.Printf("[cache] posts cache expired for @%s", handle)
		return nil, false
	}

	if returnAll || max <= 0 {
		return entry.Data, true
	}
	if len(entry.Data) < max && float64(len(entry.Data)) < float64(max)*sufficientCacheRatio {
		log.Printf("[cache] posts cache for @%s has %d of %d requested, deferring to API", handle, len(entry.Data), max)
		return nil, false
	}
	if len(entry.Data) > max {
		return entry.Data[:max], true
	}
	return entry.Data, true
}

// SetPosts caches the post list for a handle.
func (c *Cache) SetPosts(handle string, posts []types.Post) {
	c.write(c.postsPath(handle), cachedPosts{
		Handle:   handle,
		CachedAt: time.Now(),
		Data:     posts,
	})
}

// AuthorInfo returns the cached author info for a handle, if fresh.
func (c *Cache) AuthorInfo(handle string) (*types.AuthorInfo, bool) {
	var entry cachedInfo
	if !c.read(c.infoPath(handle), &entry) {
		return nil, false
	}
	if time.Since(entry.CachedAt) > c.ttl {
		log.Printf("[cache] user info cache expired for @%s", handle)
		return nil, false
	}
	return &entry.Data, true
}

// SetAuthorInfo caches author info for a handle.
func (c *Cache) SetAuthorInfo(handle string, info types.AuthorInfo) {
	c.write(c.infoPath(handle), cachedInfo{
		Handle:   handle,
		CachedAt: time.Now(),
		Data:     info,
	})
}

// Invalidate removes all cached entries for a handle.
func (c *Cache) Invalidate(handle string) {
	for _, path := range []string{c.postsPath(handle), c.infoPath(handle)} {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Printf("[cache] failed to remove %s: %v", path, err)
		}
	}
}

// Clear removes every cache file.
func (c *Cache) Clear() int {
	matches, err := filepath.Glob(filepath.Join(c.dir, "*.json"))
	if err != nil {
		return 0
	}
	removed := 0
	for _, path := range matches {
		if err := os.Remove(path); err == nil {
			removed++
		}
	}
	log.Printf("[cache] cleared %d cache files", removed)
	return removed
}

// Stats reports the cache state for a handle.
func (c *Cache) Stats(handle string) Info {
	info := Info{Handle: handle}

	var userEntry cachedInfo
	if c.read(c.infoPath(handle), &userEntry) {
		age := roundHours(time.Since(userEntry.CachedAt))
		info.InfoCached = true
		info.InfoAgeHours = &age
	}

	var postsEntry cachedPosts
	if c.read(c.postsPath(handle), &postsEntry) {
		age := roundHours(time.Since(postsEntry.CachedAt))
		info.PostsCached = true
		info.PostsAgeHours = &age
		info.PostCount = len(postsEntry.Data)
	}
	return info
}

func (c *Cache) read(path string, out any) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		log.Printf("[cache] failed to parse %s: %v", path, err)
		return false
	}
	return true
}

func (c *Cache) write(path string, entry any) {
	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		log.Printf("[cache] failed to encode %s: %v", path, err)
		return
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		log.Printf("[cache] failed to write %s: %v", path, err)
	}
}

func (c *Cache) postsPath(handle string) string {
	return filepath.Join(c.dir, fmt.Sprintf("posts_%s.json", safeHandle(handle)))
}

func (c *Cache) infoPath(handle string) string {
	return filepath.Join(c.dir, fmt.Sprintf("user_info_%s.json", safeHandle(handle)))
}

func safeHandle(handle string) string {
	return strings.ReplaceAll(strings.ToLower(handle), "@", "")
}

func roundHours(d time.Duration) float64 {
	return math.Round(d.Hours()*100) / 100
}
