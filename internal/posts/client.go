// Package posts fetches a user's public posts and profile information from
// the scraping API, with a file-based cache in front of it.
package posts

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/voice-agent/internal/types"
)

const (
	// DefaultBaseURL is the scraping API endpoint.
	DefaultBaseURL = "https://api.twitterapi.io"

	defaultTimeout        = 30 * time.Second
	maxPaginationAttempts = 10
)

// ClientConfig configures the posts API client.
type ClientConfig struct {
	APIKey          string
	BaseURL         string
	Cache           *Cache // nil disables caching
	PreferCacheOnly bool   // never hit the API; serve only cached posts
}

// Client talks to the posts scraping API.
type Client struct {
	httpClient      *http.Client
	apiKey          string
	baseURL         string
	cache           *Cache
	preferCacheOnly bool
}

// NewClient creates a posts API client. The API key is required unless the
// client is cache-only.
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.APIKey == "" && !cfg.PreferCacheOnly {
		return nil, &APIError{Message: "API key is required; set POSTS_API_KEY or enable cache-only mode"}
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient:      &http.Client{Timeout: defaultTimeout},
		apiKey:          cfg.APIKey,
		baseURL:         strings.TrimRight(baseURL, "/"),
		cache:           cfg.Cache,
		preferCacheOnly: cfg.PreferCacheOnly,
	}, nil
}

type wireAuthor struct {
	UserName      string `json:"userName"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	Followers     int    `json:"followers"`
	Following     int    `json:"following"`
	StatusesCount int    `json:"statusesCount"`
}

type wirePost struct {
	ID           string          `json:"id"`
	Text         string          `json:"text"`
	CreatedAt    string          `json:"createdAt"`
	Author       *wireAuthor     `json:"author"`
	LikeCount    int             `json:"likeCount"`
	RetweetCount int             `json:"retweetCount"`
	ReplyCount   int             `json:"replyCount"`
	QuoteCount   int             `json:"quoteCount"`
	IsReply      bool            `json:"isReply"`
	QuotedPost   json.RawMessage `json:"quoted_tweet"`
	InReplyToID  string          `json:"inReplyToId"`
}

type responseEnvelope struct {
	Status      string `json:"status"`
	Msg         string `json:"msg"`
	Message     string `json:"message"`
	HasNextPage bool   `json:"has_next_page"`
	NextCursor  string `json:"next_cursor"`
	Data        struct {
		Tweets      []wirePost `json:"tweets"`
		HasNextPage bool       `json:"has_next_page"`
		NextCursor  string     `json:"next_cursor"`
	} `json:"data"`
}

type userInfoEnvelope struct {
	Status  string     `json:"status"`
	Msg     string     `json:"msg"`
	Message string     `json:"message"`
	Data    wireAuthor `json:"data"`
}

// UserInfo fetches profile information for a handle.
func (c *Client) UserInfo(ctx context.Context, handle string) (*types.AuthorInfo, error) {
	if c.cache != nil {
		if info, ok := c.cache.AuthorInfo(handle); ok {
			log.Printf("[posts] using cached user info for @%s", handle)
			return info, nil
		}
	}
	if c.preferCacheOnly {
		return nil, &NotFoundError{Handle: handle}
	}

	var envelope userInfoEnvelope
	status, err := c.get(ctx, "/twitter/user/info", url.Values{"userName": {handle}}, &envelope)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, &NotFoundError{Handle: handle}
	}

	info := types.AuthorInfo{
		Handle:         firstNonEmpty(envelope.Data.UserName, handle),
		DisplayName:    envelope.Data.Name,
		Bio:            envelope.Data.Description,
		FollowersCount: envelope.Data.Followers,
		FollowingCount: envelope.Data.Following,
		PostCount:      envelope.Data.StatusesCount,
	}
	if c.cache != nil {
		c.cache.SetAuthorInfo(handle, info)
	}
	return &info, nil
}

// UserPosts fetches up to max recent posts for a handle, following cursor
// pagination as needed.
func (c *Client) UserPosts(ctx context.Context, handle string, max int) ([]types.Post, error) {
	if max < 1 {
		max = 100
	}
	if c.cache != nil {
		if cached, ok := c.cache.Posts(handle, max, c.preferCacheOnly); ok {
			log.Printf("[posts] using %d cached posts for @%s (requested %d)", len(cached), handle, max)
			return cached, nil
		}
	}
	if c.preferCacheOnly {
		log.Printf("[posts] cache-only mode and no cached posts for @%s", handle)
		return nil, nil
	}

	fetched, err := c.fetchPages(ctx, handle, max)
	if err != nil {
		return nil, err
	}
	if len(fetched) == 0 {
		return nil, &APIError{Message: fmt.Sprintf("no posts found for @%s; the account may have no public posts or may be private", handle)}
	}

	if c.cache != nil {
		c.cache.SetPosts(handle, fetched)
	}
	return fetched, nil
}

func (c *Client) fetchPages(ctx context.Context, handle string, max int) ([]types.Post, error) {
	var all []types.Post
	cursor := ""
	includeReplies := false

	for attempt := 0; len(all) < max && attempt < maxPaginationAttempts; attempt++ {
		params := url.Values{
			"userName":       {handle},
			"includeReplies": {strconv.FormatBool(includeReplies)},
			"cursor":         {cursor},
		}

		var envelope responseEnvelope
		if _, err := c.get(ctx, "/twitter/user/last_tweets", params, &envelope); err != nil {
			return nil, err
		}
		if envelope.Status != "" && envelope.Status != "success" {
			message := firstNonEmpty(envelope.Msg, envelope.Message, "unknown error")
			return nil, &APIError{Message: fmt.Sprintf("API returned error status: %s", message)}
		}

		page := envelope.Data.Tweets

		// Some accounts only surface posts when replies are included.
		if len(page) == 0 && attempt == 0 && !includeReplies {
			includeReplies = true
			cursor = ""
			attempt--
			continue
		}

		for _, raw := range page {
			all = append(all, parsePost(raw, handle))
		}

		hasNext := envelope.HasNextPage || envelope.Data.HasNextPage
		nextCursor := firstNonEmpty(envelope.NextCursor, envelope.Data.NextCursor)
		log.Printf("[posts] page %d: got %d posts, total %d/%d, has_next_page=%t", attempt+1, len(page), len(all), max, hasNext)
		if !hasNext || nextCursor == "" {
			break
		}
		cursor = nextCursor
	}

	if len(all) > max {
		all = all[:max]
	}
	return all, nil
}

// PostByID fetches a single post, used to pull the original post for replies
// and quotes.
func (c *Client) PostByID(ctx context.Context, id string) (*types.Post, error) {
	var envelope responseEnvelope
	if _, err := c.get(ctx, "/twitter/tweets", url.Values{"tweet_ids": {id}}, &envelope); err != nil {
		return nil, err
	}
	if len(envelope.Data.Tweets) == 0 {
		return nil, &APIError{Message: fmt.Sprintf("post %s not found", id)}
	}
	post := parsePost(envelope.Data.Tweets[0], "")
	return &post, nil
}

// InvalidateCache drops cached entries for a handle.
func (c *Client) InvalidateCache(handle string) {
	if c.cache != nil {
		c.cache.Invalidate(handle)
		log.Printf("[posts] invalidated cache for @%s", handle)
	}
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) (int, error) {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, &APIError{Message: "failed to create request", Cause: err}
	}
	req.Header.Set("x-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, &APIError{Message: "request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, &APIError{StatusCode: resp.StatusCode, Message: "failed to read response body", Cause: err}
	}
	if resp.StatusCode == http.StatusNotFound {
		return resp.StatusCode, nil
	}
	if resp.StatusCode != http.StatusOK {
		return resp.StatusCode, &APIError{StatusCode: resp.StatusCode, Message: string(body)}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return resp.StatusCode, &APIError{StatusCode: resp.StatusCode, Message: "failed to decode response", Cause: err}
	}
	return resp.StatusCode, nil
}

func parsePost(raw wirePost, fallbackHandle string) types.Post {
	handle := fallbackHandle
	if raw.Author != nil && raw.Author.UserName != "" {
		handle = raw.Author.UserName
	}
	return types.Post{
		ID:           raw.ID,
		Text:         raw.Text,
		CreatedAt:    parseTimestamp(raw.CreatedAt),
		AuthorHandle: handle,
		LikeCount:    raw.LikeCount,
		RepostCount:  raw.RetweetCount,
		ReplyCount:   raw.ReplyCount,
		QuoteCount:   raw.QuoteCount,
		IsReply:      raw.IsReply,
		IsQuote:      len(raw.QuotedPost) > 0 && string(raw.QuotedPost) != "null",
		ReferencedID: raw.InReplyToID,
	}
}

// parseTimestamp accepts both ISO 8601 and the classic post timestamp format
// ("Wed Oct 29 22:33:20 +0000 2025").
func parseTimestamp(value string) *time.Time {
	if value == "" {
		return nil
	}
	if ts, err := time.Parse(time.RFC3339, value); err == nil {
		return &ts
	}
	if ts, err := time.Parse("Mon Jan 2 15:04:05 -0700 2006", value); err == nil {
		return &ts
	}
	log.Printf("[posts] failed to parse timestamp %q", value)
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
