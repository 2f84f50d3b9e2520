// Package articles extracts readable article text from URLs found in posts,
// for use as research context during generation.
package articles

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	defaultTimeout = 10 * time.Second

	// minContentLength filters out boilerplate-only extractions.
	minContentLength = 100

	// maxContentLength bounds how much article text flows into prompts.
	maxContentLength = 8000
)

var (
	urlRe  = regexp.MustCompile(`https?://\S+`)
	dateRe = regexp.MustCompile(`/\d{4}[/-]\d{1,2}[/-]\d{1,2}/`)
	wsRe   = regexp.MustCompile(`\s+`)
)

var articleIndicators = []string{
	"/article/", "/post/", "/blog/", "/news/", "/story/",
	"/2024/", "/2025/", "/p/", ".html", ".htm",
}

var excludedDomains = []string{
	"twitter.com", "x.com", "youtube.com", "youtu.be", "instagram.com",
	"tiktok.com", "linkedin.com", "facebook.com", "reddit.com", "github.com",
}

// Extractor fetches pages and pulls out their main article text.
type Extractor struct {
	httpClient *http.Client
}

// NewExtractor creates an article extractor.
func NewExtractor() *Extractor {
	return &Extractor{
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// ExtractURLs returns the URLs found in text, with trailing punctuation
// stripped.
func ExtractURLs(text string) []string {
	var urls []string
	for _, match := range urlRe.FindAllString(text, -1) {
		urls = append(urls, strings.TrimRight(match, ".,;:!?)"))
	}
	return urls
}

// IsArticleURL reports whether a URL likely points at an article or blog
// post rather than a social or media page.
func IsArticleURL(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	domain := strings.ToLower(parsed.Host)
	for _, excluded := range excludedDomains {
		if strings.Contains(domain, excluded) {
			return false
		}
	}

	path := strings.ToLower(parsed.Path)
	for _, indicator := range articleIndicators {
		if strings.Contains(path, indicator) {
			return true
		}
	}
	if dateRe.MatchString(path) {
		return true
	}
	return len(path) > 1
}

// Extract fetches a URL and returns its main article text, or an error when
// no meaningful content could be found.
func (e *Extractor) Extract(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request for %s: %w", rawURL, err)
	}

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", rawURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d fetching %s", resp.StatusCode, rawURL)
	}
	if contentType := resp.Header.Get("Content-Type"); !strings.Contains(strings.ToLower(contentType), "text/html") {
		return "", fmt.Errorf("%s is not an HTML page (%s)", rawURL, contentType)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to parse %s: %w", rawURL, err)
	}

	doc.Find("script, style, nav, header, footer, aside, noscript").Remove()

	// Prefer semantic article containers, then common content classes,
	// then the whole body.
	selectors := []string{
		"article", "main",
		`div[class*="content"]`, `div[class*="article"]`, `div[class*="post"]`,
		"body",
	}
	for _, selector := range selectors {
		text := collapse(doc.Find(selector).First().Text())
		if len(text) > minContentLength {
			if len(text) > maxContentLength {
				text = text[:maxContentLength]
			}
			log.Printf("[articles] extracted %d characters from %s via %q", len(text), rawURL, selector)
			return text, nil
		}
	}

	return "", fmt.Errorf("no meaningful content found at %s", rawURL)
}

// ExtractFromPost tries each article-looking URL in a post's text and returns
// the first successfully extracted article.
func (e *Extractor) ExtractFromPost(ctx context.Context, postText string) (string, bool) {
	for _, candidate := range ExtractURLs(postText) {
		if !IsArticleURL(candidate) {
			continue
		}
		content, err := e.Extract(ctx, candidate)
		if err != nil {
			log.Printf("[articles] %v", err)
			continue
		}
		return content, true
	}
	return "", false
}

func collapse(text string) string {
	return strings.TrimSpace(wsRe.ReplaceAllString(text, " "))
}
