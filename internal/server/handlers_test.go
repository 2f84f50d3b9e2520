package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/voice-agent/internal/posts"
	"github.com/jonathan/voice-agent/internal/types"
	"github.com/jonathan/voice-agent/internal/virality"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cache, err := posts.NewCache(t.TempDir(), time.Hour)
	require.NoError(t, err)
	return &Server{
		cache:    cache,
		scorer:   virality.NewScorer(),
		validate: validator.New(),
	}
}

func TestHandleScore_SingleItem(t *testing.T) {
	s := newTestServer(t)

	body := `{"content": "Unpopular opinion: most meetings could be a short doc.", "content_type": "tweet"}`
	req := httptest.NewRequest(http.MethodPost, "/score", strings.NewReader(body))
	w := httptest.NewRecorder()

	s.handleScore(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp ScoreResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, resp.Results, 1)
	assert.GreaterOrEqual(t, resp.Results[0].Score, 0.0)
	assert.LessOrEqual(t, resp.Results[0].Score, 100.0)
}

func TestHandleScore_Batch(t *testing.T) {
	s := newTestServer(t)

	body := `{"items": [
		{"content": "shipped a new release today", "content_type": "tweet"},
		{"texts": ["the first post of a thread", "and the second one"], "content_type": "thread"},
		{"content": "", "content_type": "tweet"}
	]}`
	req := httptest.NewRequest(http.MethodPost, "/score", strings.NewReader(body))
	w := httptest.NewRecorder()

	s.handleScore(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp ScoreResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 3)
	assert.Equal(t, 0.0, resp.Results[2].Score)
	assert.Contains(t, resp.Results[2].Notes, "No content to score")
}

func TestHandleScore_DefaultContentType(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/score", strings.NewReader(`{"content": "hello world"}`))
	w := httptest.NewRecorder()

	s.handleScore(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandleScore_InvalidContentType(t *testing.T) {
	s := newTestServer(t)

	body := `{"content": "hello", "content_type": "essay"}`
	req := httptest.NewRequest(http.MethodPost, "/score", strings.NewReader(body))
	w := httptest.NewRecorder()

	s.handleScore(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp["error"], "essay")
}

func TestHandleScore_InvalidJSON(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/score", strings.NewReader("{not json"))
	w := httptest.NewRecorder()

	s.handleScore(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleCacheInfo(t *testing.T) {
	s := newTestServer(t)
	s.cache.SetPosts("someone", []types.Post{{ID: "1", Text: "hello"}})

	req := httptest.NewRequest(http.MethodGet, "/cache/someone", nil)
	req.SetPathValue("handle", "someone")
	w := httptest.NewRecorder()

	s.handleCacheInfo(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var info posts.Info
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.Equal(t, "someone", info.Handle)
	assert.True(t, info.PostsCached)
	assert.Equal(t, 1, info.PostCount)
	assert.False(t, info.InfoCached)
}

func TestHandleCacheInvalidate(t *testing.T) {
	s := newTestServer(t)
	s.cache.SetPosts("someone", []types.Post{{ID: "1", Text: "hello"}})

	req := httptest.NewRequest(http.MethodDelete, "/cache/someone", nil)
	req.SetPathValue("handle", "someone")
	w := httptest.NewRecorder()

	s.handleCacheInvalidate(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "invalidated", resp["status"])
	assert.Equal(t, "someone", resp["handle"])

	_, ok := s.cache.Posts("someone", 1, true)
	assert.False(t, ok)
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	s.handleHealth(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
}

func TestPostIDFromURL(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "bare id", raw: "1234567890", want: "1234567890"},
		{name: "status url", raw: "https://x.com/someone/status/1234567890", want: "1234567890"},
		{name: "status url with query", raw: "https://x.com/someone/status/1234567890?s=20", want: "1234567890"},
		{name: "trailing photo segment", raw: "https://x.com/someone/status/1234567890/photo/1", want: "1"},
		{name: "no id in url", raw: "https://x.com/someone", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := postIDFromURL(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				var verr *ErrValidation
				assert.ErrorAs(t, err, &verr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseContentType(t *testing.T) {
	ct, err := parseContentType("")
	require.NoError(t, err)
	assert.Equal(t, types.ContentTypeTweet, ct)

	ct, err = parseContentType("thread")
	require.NoError(t, err)
	assert.Equal(t, types.ContentTypeThread, ct)

	_, err = parseContentType("essay")
	require.Error(t, err)
}

func TestExtractClientID(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.RemoteAddr = "10.0.0.5:49152"
	assert.Equal(t, "10.0.0.5", s.extractClientID(req))

	req.RemoteAddr = "not-a-hostport"
	assert.Equal(t, "not-a-hostport", s.extractClientID(req))
}
