package posts

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_RequiresAPIKey(t *testing.T) {
	_, err := NewClient(ClientConfig{})
	require.Error(t, err)

	var apiErr *APIError
	assert.ErrorAs(t, err, &apiErr)

	// Cache-only mode works without a key.
	_, err = NewClient(ClientConfig{PreferCacheOnly: true})
	assert.NoError(t, err)
}

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	client, err := NewClient(ClientConfig{APIKey: "test-key", BaseURL: ts.URL})
	require.NoError(t, err)
	return client
}

func TestUserInfo_ParsesWireFormat(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/twitter/user/info", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, "someone", r.URL.Query().Get("userName"))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"status": "success",
			"data": map[string]any{
				"userName":      "someone",
				"name":          "Someone Real",
				"description":   "writes about software",
				"followers":     1200,
				"following":     300,
				"statusesCount": 4100,
			},
		})
	}))

	info, err := client.UserInfo(context.Background(), "someone")
	require.NoError(t, err)
	assert.Equal(t, "someone", info.Handle)
	assert.Equal(t, "Someone Real", info.DisplayName)
	assert.Equal(t, 1200, info.FollowersCount)
	assert.Equal(t, 4100, info.PostCount)
}

func TestUserInfo_NotFound(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := client.UserInfo(context.Background(), "ghost")
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "ghost", notFound.Handle)
}

func TestUserPosts_Pagination(t *testing.T) {
	pages := 0
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/twitter/user/last_tweets", r.URL.Path)
		pages++

		tweets := make([]map[string]any, 3)
		for i := range tweets {
			tweets[i] = map[string]any{
				"id":        fmt.Sprintf("p%d-%d", pages, i),
				"text":      "a post",
				"createdAt": "2025-08-10T09:00:00Z",
				"likeCount": 5,
			}
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status": "success",
			"data": map[string]any{
				"tweets":        tweets,
				"has_next_page": pages < 2,
				"next_cursor":   "cursor-next",
			},
		})
	}))

	posts, err := client.UserPosts(context.Background(), "someone", 5)
	require.NoError(t, err)
	assert.Equal(t, 2, pages)
	assert.Len(t, posts, 5)
	require.NotNil(t, posts[0].CreatedAt)
	assert.Equal(t, 5, posts[0].LikeCount)
}

func TestUserPosts_RetriesWithReplies(t *testing.T) {
	calls := 0
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		includeReplies := r.URL.Query().Get("includeReplies")
		tweets := []map[string]any{}
		if includeReplies == "true" {
			tweets = append(tweets, map[string]any{"id": "r1", "text": "a reply", "isReply": true})
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status": "success",
			"data":   map[string]any{"tweets": tweets},
		})
	}))

	posts, err := client.UserPosts(context.Background(), "replies-only", 10)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	require.Len(t, posts, 1)
	assert.True(t, posts[0].IsReply)
}

func TestUserPosts_APIErrorStatus(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"status": "error", "msg": "rate limited"})
	}))

	_, err := client.UserPosts(context.Background(), "someone", 10)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Contains(t, apiErr.Error(), "rate limited")
}

func TestUserPosts_CacheOnlyWithoutData(t *testing.T) {
	cache, err := NewCache(t.TempDir(), 0)
	require.NoError(t, err)
	client, err := NewClient(ClientConfig{Cache: cache, PreferCacheOnly: true})
	require.NoError(t, err)

	posts, err := client.UserPosts(context.Background(), "someone", 10)
	assert.NoError(t, err)
	assert.Nil(t, posts)
}

func TestPostByID(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/twitter/tweets", r.URL.Path)
		assert.Equal(t, "123", r.URL.Query().Get("tweet_ids"))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"status": "success",
			"data": map[string]any{
				"tweets": []map[string]any{{
					"id":           "123",
					"text":         "the original post",
					"author":       map[string]any{"userName": "author1"},
					"quoted_tweet": map[string]any{"id": "99"},
				}},
			},
		})
	}))

	post, err := client.PostByID(context.Background(), "123")
	require.NoError(t, err)
	assert.Equal(t, "123", post.ID)
	assert.Equal(t, "author1", post.AuthorHandle)
	assert.True(t, post.IsQuote)
}

func TestPostByID_Missing(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"status": "success", "data": map[string]any{"tweets": []any{}}})
	}))

	_, err := client.PostByID(context.Background(), "404")
	var apiErr *APIError
	assert.ErrorAs(t, err, &apiErr)
}

func TestParseTimestamp(t *testing.T) {
	assert.NotNil(t, parseTimestamp("2025-08-10T09:00:00Z"))
	assert.NotNil(t, parseTimestamp("Wed Oct 29 22:33:20 +0000 2025"))
	assert.Nil(t, parseTimestamp(""))
	assert.Nil(t, parseTimestamp("not a date"))
}
