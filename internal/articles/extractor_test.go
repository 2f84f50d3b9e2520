package articles

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractURLs(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "single url",
			text: "check this out https://example.com/blog/post",
			want: []string{"https://example.com/blog/post"},
		},
		{
			name: "trailing punctuation stripped",
			text: "read https://example.com/article/1.",
			want: []string{"https://example.com/article/1"},
		},
		{
			name: "multiple urls",
			text: "http://a.com/x and https://b.com/y!",
			want: []string{"http://a.com/x", "https://b.com/y"},
		},
		{
			name: "no urls",
			text: "nothing to see here",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractURLs(tt.text))
		})
	}
}

func TestIsArticleURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want bool
	}{
		{name: "blog path", url: "https://example.com/blog/shipping-fast", want: true},
		{name: "news path", url: "https://example.com/news/latest", want: true},
		{name: "dated path", url: "https://example.com/2023/05/12/release", want: true},
		{name: "html extension", url: "https://example.com/essays/growth.html", want: true},
		{name: "plain path", url: "https://example.com/some-essay", want: true},
		{name: "bare root", url: "https://example.com/", want: false},
		{name: "social excluded", url: "https://x.com/someone/status/123", want: false},
		{name: "youtube excluded", url: "https://www.youtube.com/watch?v=abc", want: false},
		{name: "github excluded", url: "https://github.com/someone/repo", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsArticleURL(tt.url))
		})
	}
}

func TestExtract_ArticleTag(t *testing.T) {
	body := strings.Repeat("The release process got a lot simpler this quarter. ", 10)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(`<html><head><script>ignored()</script></head><body>
			<nav>Menu Menu Menu</nav>
			<article><p>` + body + `</p></article>
			<footer>Copyright</footer>
		</body></html>`))
	}))
	defer srv.Close()

	e := NewExtractor()
	content, err := e.Extract(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Contains(t, content, "release process")
	assert.NotContains(t, content, "Menu")
	assert.NotContains(t, content, "ignored")
}

func TestExtract_TruncatesLongContent(t *testing.T) {
	long := strings.Repeat("word ", 3000)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body><article>" + long + "</article></body></html>"))
	}))
	defer srv.Close()

	e := NewExtractor()
	content, err := e.Extract(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Len(t, content, maxContentLength)
}

func TestExtract_TooShort(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body><article>tiny</article></body></html>"))
	}))
	defer srv.Close()

	e := NewExtractor()
	_, err := e.Extract(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no meaningful content")
}

func TestExtract_NonHTML(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"not": "html"}`))
	}))
	defer srv.Close()

	e := NewExtractor()
	_, err := e.Extract(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not an HTML page")
}

func TestExtract_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	e := NewExtractor()
	_, err := e.Extract(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestExtractFromPost(t *testing.T) {
	body := strings.Repeat("A long analysis of developer productivity trends. ", 10)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body><article>" + body + "</article></body></html>"))
	}))
	defer srv.Close()

	e := NewExtractor()

	content, ok := e.ExtractFromPost(context.Background(), "interesting read: "+srv.URL+"/blog/trends")
	require.True(t, ok)
	assert.Contains(t, content, "developer productivity")

	_, ok = e.ExtractFromPost(context.Background(), "no links in this post")
	assert.False(t, ok)

	_, ok = e.ExtractFromPost(context.Background(), "social only https://x.com/someone/status/123")
	assert.False(t, ok)
}

func TestCollapse(t *testing.T) {
	assert.Equal(t, "a b c", collapse("  a\n\n b\t c  "))
}
