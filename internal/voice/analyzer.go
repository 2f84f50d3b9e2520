// Package voice analyzes a user's writing voice from their post history and
// maintains persisted voice profiles.
package voice

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jonathan/voice-agent/internal/analytics"
	"github.com/jonathan/voice-agent/internal/llm"
	"github.com/jonathan/voice-agent/internal/prompts"
	"github.com/jonathan/voice-agent/internal/types"
)

// maxPostsForAnalysis bounds the number of posts included in the LLM prompt.
const maxPostsForAnalysis = 200

// PostsSource fetches a user's recent posts.
type PostsSource interface {
	UserPosts(ctx context.Context, handle string, max int) ([]types.Post, error)
}

// Analyzer derives a structured voice profile from a user's post history.
type Analyzer struct {
	posts    PostsSource
	client   llm.Client
	maxPosts int
}

// NewAnalyzer creates an analyzer that examines up to maxPosts posts.
func NewAnalyzer(posts PostsSource, client llm.Client, maxPosts int) *Analyzer {
	if maxPosts < 1 {
		maxPosts = 100
	}
	return &Analyzer{posts: posts, client: client, maxPosts: maxPosts}
}

// Analyze fetches the user's posts, runs the LLM voice analysis, and parses
// the result into a VoiceProfile.
func (a *Analyzer) Analyze(ctx context.Context, handle string) (*types.VoiceProfile, error) {
	log.Printf("[voice] fetching posts for @%s", handle)
	posts, err := a.posts.UserPosts(ctx, handle, a.maxPosts)
	if err != nil {
		return nil, &AnalysisError{Handle: handle, Message: "failed to fetch posts", Cause: err}
	}
	if len(posts) == 0 {
		return nil, &AnalysisError{Handle: handle, Message: "no posts found"}
	}

	log.Printf("[voice] analyzing %d posts for @%s", len(posts), handle)
	analysisText, err := a.analyzeText(ctx, handle, posts)
	if err != nil {
		return nil, &AnalysisError{Handle: handle, Message: "LLM analysis failed", Cause: err}
	}

	profile := parseAnalysis(analysisText, handle, posts)

	processor := analytics.NewProcessor(posts)
	if patterns := processor.AnalyzePatterns(); patterns != nil {
		profile.EngagementPatterns = map[string]any{
			"average_metrics":      patterns.AverageMetrics,
			"top_performing_posts": patterns.TopPosts,
			"best_posting_hours":   patterns.BestPostingHours,
			"average_length":       patterns.AverageLength,
			"top_hashtags":         patterns.TopHashtags,
			"engagement_by_type":   patterns.EngagementByType,
			"total_posts_analyzed": patterns.TotalAnalyzed,
		}
	}

	return profile, nil
}

// ExtractTopic summarizes the main topic of a piece of content in five
// sentences, for use as research and generation context.
func (a *Analyzer) ExtractTopic(ctx context.Context, content string) (string, error) {
	system, err := prompts.Get("voice.json", "extract-topic-system")
	if err != nil {
		return "", err
	}
	template, err := prompts.Get("voice.json", "extract-topic-user")
	if err != nil {
		return "", err
	}
	prompt := prompts.Format(template, map[string]string{"Content": content})

	result, err := a.client.Generate(ctx, prompt, system, 0.4)
	if err != nil {
		return "", err
	}
	summary := strings.TrimSpace(result)
	summary = strings.Trim(summary, `"'`)
	return strings.TrimSpace(summary), nil
}

func (a *Analyzer) analyzeText(ctx context.Context, handle string, posts []types.Post) (string, error) {
	limit := len(posts)
	if limit > maxPostsForAnalysis {
		limit = maxPostsForAnalysis
	}
	var sb strings.Builder
	for _, post := range posts[:limit] {
		fmt.Fprintf(&sb, "- %s\n", post.Text)
	}

	system, err := prompts.Get("voice.json", "analyze-system")
	if err != nil {
		return "", err
	}
	template, err := prompts.Get("voice.json", "analyze-user")
	if err != nil {
		return "", err
	}
	prompt := prompts.Format(template, map[string]string{
		"Handle": handle,
		"Posts":  strings.TrimRight(sb.String(), "\n"),
	})

	return a.client.Generate(ctx, prompt, system, 0.3)
}

// parseAnalysis extracts structured fields from the free-text LLM analysis
// and combines them with measurements taken directly from the posts.
func parseAnalysis(analysisText, handle string, posts []types.Post) *types.VoiceProfile {
	writingStyle := extractSection(analysisText, []string{"writing style", "style"})
	tone := extractSection(analysisText, []string{"tone", "voice tone"})

	topicsText := extractSection(analysisText, []string{"topics", "themes", "subjects"})
	topics := extractListItems(topicsText)
	if len(topics) > 10 {
		topics = topics[:10]
	}

	tagUsage := map[string]int{}
	var totalLength int
	for _, post := range posts {
		totalLength += utf8.RuneCountInString(post.Text)
		for _, word := range strings.Fields(post.Text) {
			if strings.HasPrefix(word, "#") {
				tagUsage[strings.ToLower(word)]++
			}
		}
	}

	if writingStyle == "" {
		writingStyle = "Analyzed from posts"
	}
	if tone == "" {
		tone = "Analyzed from posts"
	}

	return &types.VoiceProfile{
		Handle:        handle,
		WritingStyle:  writingStyle,
		Tone:          tone,
		CommonTopics:  topics,
		TagUsage:      tagUsage,
		AverageLength: totalLength / len(posts),
		AnalyzedAt:    time.Now().UTC(),
	}
}

// extractSection finds the text following the first matching keyword, bounded
// by the next newline and trimmed to at most one sentence or 200 characters.
func extractSection(text string, keywords []string) string {
	lower := strings.ToLower(text)
	for _, keyword := range keywords {
		idx := strings.Index(lower, keyword)
		if idx == -1 {
			continue
		}
		start := idx + len(keyword)

		end := len(text)
		if nl := strings.Index(text[start:], "\n"); nl != -1 {
			end = start + nl
		}
		if colon := strings.Index(text[start:], ":"); colon != -1 && start+colon+200 < end {
			end = start + colon + 200
			for end > start && !utf8.RuneStart(text[end]) {
				end--
			}
		}

		section := strings.TrimSpace(text[start:end])
		section = strings.TrimSpace(strings.TrimLeft(section, ": -"))
		if period := strings.Index(section, "."); period != -1 && period < 200 {
			return section[:period+1]
		}
		if runes := []rune(section); len(runes) > 200 {
			section = string(runes[:200])
		}
		return section
	}
	return ""
}

// extractListItems pulls bulleted, numbered, or comma-separated items out of
// a section of analysis text.
func extractListItems(text string) []string {
	var items []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		switch {
		case strings.HasPrefix(line, "- "), strings.HasPrefix(line, "* "):
			items = append(items, strings.TrimSpace(line[2:]))
		case line[0] >= '0' && line[0] <= '9' && len(line) > 2 && line[1] == '.' && line[2] == ' ':
			items = append(items, strings.TrimSpace(line[3:]))
		case line[0] >= '0' && line[0] <= '9' && len(line) > 1 && line[1] == ')':
			items = append(items, strings.TrimSpace(line[2:]))
		case strings.Contains(line, ",") && len(items) == 0:
			for _, item := range strings.Split(line, ",") {
				items = append(items, strings.TrimSpace(item))
			}
		}
	}
	if len(items) > 10 {
		items = items[:10]
	}
	return items
}
