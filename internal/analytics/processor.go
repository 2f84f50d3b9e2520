// Package analytics aggregates engagement patterns from historical posts.
package analytics

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/voice-agent/internal/metrics"
	"github.com/jonathan/voice-agent/internal/types"
)

// AverageMetrics holds per-post engagement averages.
type AverageMetrics struct {
	Likes   float64 `json:"likes"`
	Reposts float64 `json:"reposts"`
	Replies float64 `json:"replies"`
	Quotes  float64 `json:"quotes"`
}

// TopPost is a truncated view of a high-performing post.
type TopPost struct {
	Text    string `json:"text"`
	Likes   int    `json:"likes"`
	Reposts int    `json:"reposts"`
}

// EngagementByType compares average engagement of replies vs originals.
type EngagementByType struct {
	Replies  float64 `json:"replies"`
	Original float64 `json:"original"`
}

// Patterns is the aggregated engagement analysis for a post history.
type Patterns struct {
	AverageMetrics   AverageMetrics   `json:"average_metrics"`
	TopPosts         []TopPost        `json:"top_performing_posts"`
	BestPostingHours []int            `json:"best_posting_hours"`
	AverageLength    float64          `json:"average_length"`
	TopHashtags      []string         `json:"top_hashtags"`
	EngagementByType EngagementByType `json:"engagement_by_type"`
	TotalAnalyzed    int              `json:"total_posts_analyzed"`
}

// Processor computes engagement analytics over a fixed post history.
type Processor struct {
	posts []types.Post
}

// NewProcessor creates a processor for the given posts.
func NewProcessor(posts []types.Post) *Processor {
	return &Processor{posts: posts}
}

// AnalyzePatterns computes engagement patterns. Returns nil for an empty
// history so callers can treat absence uniformly.
func (p *Processor) AnalyzePatterns() *Patterns {
	if len(p.posts) == 0 {
		return nil
	}

	n := float64(len(p.posts))
	var likes, reposts, replies, quotes int
	for _, post := range p.posts {
		likes += post.LikeCount
		reposts += post.RepostCount
		replies += post.ReplyCount
		quotes += post.QuoteCount
	}

	patterns := &Patterns{
		AverageMetrics: AverageMetrics{
			Likes:   round2(float64(likes) / n),
			Reposts: round2(float64(reposts) / n),
			Replies: round2(float64(replies) / n),
			Quotes:  round2(float64(quotes) / n),
		},
		TotalAnalyzed: len(p.posts),
	}

	// Top performers weighted by likes + 2x reposts.
	ranked := make([]types.Post, len(p.posts))
	copy(ranked, p.posts)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].LikeCount+ranked[i].RepostCount*2 > ranked[j].LikeCount+ranked[j].RepostCount*2
	})
	for _, post := range ranked[:min(5, len(ranked))] {
		text := post.Text
		if runes := []rune(text); len(runes) > 100 {
			text = string(runes[:100]) + "..."
		}
		patterns.TopPosts = append(patterns.TopPosts, TopPost{Text: text, Likes: post.LikeCount, Reposts: post.RepostCount})
	}

	patterns.BestPostingHours = p.bestHours()

	var totalLength int
	for _, post := range p.posts {
		totalLength += utf8.RuneCountInString(post.Text)
	}
	patterns.AverageLength = float64(int(float64(totalLength)/n + 0.5))

	patterns.TopHashtags = p.topHashtags(10)
	patterns.EngagementByType = p.engagementByType()

	return patterns
}

// bestHours returns up to three posting hours ranked by average engagement
// (likes + 2x reposts per post in that hour).
func (p *Processor) bestHours() []int {
	type hourStats struct {
		hour  int
		score float64
	}
	buckets := map[int]*[3]int{} // likes, reposts, count
	for _, post := range p.posts {
		if post.CreatedAt == nil {
			continue
		}
		hour := post.CreatedAt.Hour()
		if buckets[hour] == nil {
			buckets[hour] = &[3]int{}
		}
		buckets[hour][0] += post.LikeCount
		buckets[hour][1] += post.RepostCount
		buckets[hour][2]++
	}

	stats := make([]hourStats, 0, len(buckets))
	for hour, b := range buckets {
		count := b[2]
		if count == 0 {
			count = 1
		}
		stats = append(stats, hourStats{hour: hour, score: float64(b[0]+b[1]*2) / float64(count)})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].score != stats[j].score {
			return stats[i].score > stats[j].score
		}
		return stats[i].hour < stats[j].hour
	})

	var hours []int
	for _, s := range stats[:min(3, len(stats))] {
		hours = append(hours, s.hour)
	}
	return hours
}

func (p *Processor) topHashtags(limit int) []string {
	counts := map[string]int{}
	for _, post := range p.posts {
		for _, word := range strings.Fields(post.Text) {
			if strings.HasPrefix(word, "#") {
				counts[strings.ToLower(word)]++
			}
		}
	}
	tags := make([]string, 0, len(counts))
	for tag := range counts {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool {
		if counts[tags[i]] != counts[tags[j]] {
			return counts[tags[i]] > counts[tags[j]]
		}
		return tags[i] < tags[j]
	})
	if len(tags) > limit {
		tags = tags[:limit]
	}
	return tags
}

func (p *Processor) engagementByType() EngagementByType {
	var replySum, replyCount, origSum, origCount int
	for _, post := range p.posts {
		engagement := post.LikeCount + post.RepostCount
		if post.IsReply {
			replySum += engagement
			replyCount++
		} else {
			origSum += engagement
			origCount++
		}
	}
	result := EngagementByType{}
	if replyCount > 0 {
		result.Replies = round2(float64(replySum) / float64(replyCount))
	}
	if origCount > 0 {
		result.Original = round2(float64(origSum) / float64(origCount))
	}
	return result
}

// InsightsSummary formats the engagement patterns as bounded plain text for
// inclusion in a generation prompt.
func (p *Processor) InsightsSummary() string {
	patterns := p.AnalyzePatterns()
	if patterns == nil {
		return "No analytics data available."
	}

	var sb strings.Builder
	sb.WriteString("ENGAGEMENT ANALYTICS SUMMARY:\n")
	fmt.Fprintf(&sb, "- Average likes per post: %.2f\n", patterns.AverageMetrics.Likes)
	fmt.Fprintf(&sb, "- Average reposts per post: %.2f\n", patterns.AverageMetrics.Reposts)
	fmt.Fprintf(&sb, "- Average post length: %.0f characters\n", patterns.AverageLength)

	if len(patterns.BestPostingHours) > 0 {
		hours := make([]string, len(patterns.BestPostingHours))
		for i, hour := range patterns.BestPostingHours {
			hours[i] = fmt.Sprintf("%d", hour)
		}
		fmt.Fprintf(&sb, "- Best posting hours: %s:00\n", strings.Join(hours, ", "))
	}
	if len(patterns.TopHashtags) > 0 {
		fmt.Fprintf(&sb, "- Most used hashtags: %s\n", strings.Join(patterns.TopHashtags[:min(5, len(patterns.TopHashtags))], ", "))
	}
	fmt.Fprintf(&sb, "- Replies vs original engagement: %.2f vs %.2f\n",
		patterns.EngagementByType.Replies, patterns.EngagementByType.Original)

	if len(patterns.TopPosts) > 0 {
		sb.WriteString("\nTOP PERFORMING CONTENT PATTERNS:\n")
		for i, post := range patterns.TopPosts[:min(3, len(patterns.TopPosts))] {
			fmt.Fprintf(&sb, "%d. %s (Likes: %d)\n", i+1, post.Text, post.Likes)
		}
	}

	return strings.TrimRight(sb.String(), "\n")
}

// HashtagUsage counts hashtag occurrences across the history, lowercased.
func (p *Processor) HashtagUsage() map[string]int {
	counts := map[string]int{}
	for _, post := range p.posts {
		for _, tag := range strings.Fields(post.Text) {
			if strings.HasPrefix(tag, "#") {
				counts[strings.ToLower(tag)]++
			}
		}
	}
	return counts
}

// AverageHashtagRate returns the mean hashtag count per post.
func (p *Processor) AverageHashtagRate() float64 {
	if len(p.posts) == 0 {
		return 0
	}
	total := 0
	for _, post := range p.posts {
		total += metrics.CountHashtags(post.Text)
	}
	return float64(total) / float64(len(p.posts))
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
