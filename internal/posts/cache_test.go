package posts

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/voice-agent/internal/types"
)

func makePosts(n int) []types.Post {
	posts := make([]types.Post, n)
	for i := range posts {
		posts[i] = types.Post{ID: fmt.Sprintf("%d", i), Text: fmt.Sprintf("post %d", i)}
	}
	return posts
}

func TestCache_PostsRoundTrip(t *testing.T) {
	cache, err := NewCache(t.TempDir(), time.Hour)
	require.NoError(t, err)

	cache.SetPosts("someone", makePosts(10))

	got, ok := cache.Posts("someone", 10, false)
	require.True(t, ok)
	assert.Len(t, got, 10)
}

func TestCache_PostsMiss(t *testing.T) {
	cache, err := NewCache(t.TempDir(), time.Hour)
	require.NoError(t, err)

	_, ok := cache.Posts("nobody", 10, false)
	assert.False(t, ok)
}

func TestCache_SufficientRatio(t *testing.T) {
	cache, err := NewCache(t.TempDir(), time.Hour)
	require.NoError(t, err)
	cache.SetPosts("someone", makePosts(80))

	// 80 cached covers 80% of a 100-post request.
	got, ok := cache.Posts("someone", 100, false)
	require.True(t, ok)
	assert.Len(t, got, 80)

	// But not 80% of a 200-post request.
	_, ok = cache.Posts("someone", 200, false)
	assert.False(t, ok)

	// Cache-only mode returns whatever is there.
	got, ok = cache.Posts("someone", 200, true)
	require.True(t, ok)
	assert.Len(t, got, 80)
}

func TestCache_TruncatesToRequestedMax(t *testing.T) {
	cache, err := NewCache(t.TempDir(), time.Hour)
	require.NoError(t, err)
	cache.SetPosts("someone", makePosts(50))

	got, ok := cache.Posts("someone", 20, false)
	require.True(t, ok)
	assert.Len(t, got, 20)
}

func TestCache_ExpiredEntriesIgnored(t *testing.T) {
	cache, err := NewCache(t.TempDir(), time.Nanosecond)
	require.NoError(t, err)
	cache.SetPosts("someone", makePosts(5))
	cache.SetAuthorInfo("someone", types.AuthorInfo{Handle: "someone"})

	time.Sleep(time.Millisecond)

	_, ok := cache.Posts("someone", 5, false)
	assert.False(t, ok)
	_, ok = cache.AuthorInfo("someone")
	assert.False(t, ok)
}

func TestCache_AuthorInfoRoundTrip(t *testing.T) {
	cache, err := NewCache(t.TempDir(), time.Hour)
	require.NoError(t, err)

	cache.SetAuthorInfo("Someone", types.AuthorInfo{Handle: "someone", FollowersCount: 42})

	// Handle lookup is case-insensitive and tolerates a leading @.
	info, ok := cache.AuthorInfo("@someone")
	require.True(t, ok)
	assert.Equal(t, 42, info.FollowersCount)
}

func TestCache_Invalidate(t *testing.T) {
	cache, err := NewCache(t.TempDir(), time.Hour)
	require.NoError(t, err)
	cache.SetPosts("someone", makePosts(3))
	cache.SetAuthorInfo("someone", types.AuthorInfo{Handle: "someone"})

	cache.Invalidate("someone")

	_, ok := cache.Posts("someone", 3, false)
	assert.False(t, ok)
	_, ok = cache.AuthorInfo("someone")
	assert.False(t, ok)
}

func TestCache_Clear(t *testing.T) {
	cache, err := NewCache(t.TempDir(), time.Hour)
	require.NoError(t, err)
	cache.SetPosts("a", makePosts(1))
	cache.SetPosts("b", makePosts(1))
	cache.SetAuthorInfo("a", types.AuthorInfo{Handle: "a"})

	assert.Equal(t, 3, cache.Clear())
	assert.Equal(t, 0, cache.Clear())
}

func TestCache_Stats(t *testing.T) {
	cache, err := NewCache(t.TempDir(), time.Hour)
	require.NoError(t, err)

	empty := cache.Stats("someone")
	assert.False(t, empty.PostsCached)
	assert.False(t, empty.InfoCached)
	assert.Nil(t, empty.PostsAgeHours)

	cache.SetPosts("someone", makePosts(7))
	stats := cache.Stats("someone")
	assert.True(t, stats.PostsCached)
	assert.Equal(t, 7, stats.PostCount)
	require.NotNil(t, stats.PostsAgeHours)
	assert.GreaterOrEqual(t, *stats.PostsAgeHours, 0.0)
}
