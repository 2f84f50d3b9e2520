package analytics

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/voice-agent/internal/types"
)

func samplePosts() []types.Post {
	at := func(hour int) *time.Time {
		t := time.Date(2025, 8, 10, hour, 0, 0, 0, time.UTC)
		return &t
	}
	return []types.Post{
		{ID: "1", Text: "Shipping small is a superpower #shipping", LikeCount: 100, RepostCount: 20, ReplyCount: 5, CreatedAt: at(9)},
		{ID: "2", Text: "Slow review queues kill momentum #shipping #reviews", LikeCount: 10, RepostCount: 1, CreatedAt: at(18)},
		{ID: "3", Text: "Replying to a good thread", LikeCount: 4, RepostCount: 0, IsReply: true, CreatedAt: at(9)},
		{ID: "4", Text: "Write docs for the reader you were last month", LikeCount: 30, RepostCount: 6, QuoteCount: 2, CreatedAt: at(12)},
	}
}

func TestAnalyzePatterns_EmptyHistory(t *testing.T) {
	assert.Nil(t, NewProcessor(nil).AnalyzePatterns())
}

func TestAnalyzePatterns_Averages(t *testing.T) {
	patterns := NewProcessor(samplePosts()).AnalyzePatterns()
	require.NotNil(t, patterns)

	assert.Equal(t, 36.0, patterns.AverageMetrics.Likes)
	assert.Equal(t, 6.75, patterns.AverageMetrics.Reposts)
	assert.Equal(t, 1.25, patterns.AverageMetrics.Replies)
	assert.Equal(t, 0.5, patterns.AverageMetrics.Quotes)
	assert.Equal(t, 4, patterns.TotalAnalyzed)
}

func TestAnalyzePatterns_TopPostsRankedByWeightedEngagement(t *testing.T) {
	patterns := NewProcessor(samplePosts()).AnalyzePatterns()
	require.NotNil(t, patterns)
	require.NotEmpty(t, patterns.TopPosts)

	assert.Contains(t, patterns.TopPosts[0].Text, "Shipping small")
	assert.Equal(t, 100, patterns.TopPosts[0].Likes)
}

func TestAnalyzePatterns_TruncatesLongTopPostText(t *testing.T) {
	long := strings.Repeat("a", 150)
	patterns := NewProcessor([]types.Post{{Text: long, LikeCount: 1}}).AnalyzePatterns()
	require.NotNil(t, patterns)

	assert.Len(t, patterns.TopPosts[0].Text, 103)
	assert.True(t, strings.HasSuffix(patterns.TopPosts[0].Text, "..."))
}

func TestAnalyzePatterns_TruncationKeepsValidUTF8(t *testing.T) {
	long := strings.Repeat("é", 150)
	patterns := NewProcessor([]types.Post{{Text: long, LikeCount: 1}}).AnalyzePatterns()
	require.NotNil(t, patterns)

	assert.True(t, utf8.ValidString(patterns.TopPosts[0].Text))
	assert.Equal(t, strings.Repeat("é", 100)+"...", patterns.TopPosts[0].Text)
}

func TestAnalyzePatterns_AverageLengthCountsRunes(t *testing.T) {
	patterns := NewProcessor([]types.Post{{Text: strings.Repeat("🚀", 40), LikeCount: 1}}).AnalyzePatterns()
	require.NotNil(t, patterns)

	assert.Equal(t, 40.0, patterns.AverageLength)
}

func TestBestHours_RankedByAverageEngagement(t *testing.T) {
	patterns := NewProcessor(samplePosts()).AnalyzePatterns()
	require.NotNil(t, patterns)

	// Hour 9 averages (100+4)/2 likes + reposts; it beats 12 and 18.
	require.NotEmpty(t, patterns.BestPostingHours)
	assert.Equal(t, 9, patterns.BestPostingHours[0])
	assert.LessOrEqual(t, len(patterns.BestPostingHours), 3)
}

func TestTopHashtags_CountDescending(t *testing.T) {
	patterns := NewProcessor(samplePosts()).AnalyzePatterns()
	require.NotNil(t, patterns)

	assert.Equal(t, []string{"#shipping", "#reviews"}, patterns.TopHashtags)
}

func TestEngagementByType_SplitsRepliesFromOriginals(t *testing.T) {
	patterns := NewProcessor(samplePosts()).AnalyzePatterns()
	require.NotNil(t, patterns)

	assert.Equal(t, 4.0, patterns.EngagementByType.Replies)
	assert.InDelta(t, 55.67, patterns.EngagementByType.Original, 0.01)
}

func TestInsightsSummary_EmptyHistory(t *testing.T) {
	assert.Equal(t, "No analytics data available.", NewProcessor(nil).InsightsSummary())
}

func TestInsightsSummary_ContainsKeySections(t *testing.T) {
	summary := NewProcessor(samplePosts()).InsightsSummary()

	assert.Contains(t, summary, "ENGAGEMENT ANALYTICS SUMMARY:")
	assert.Contains(t, summary, "Average likes per post: 36.00")
	assert.Contains(t, summary, "Best posting hours:")
	assert.Contains(t, summary, "#shipping")
	assert.Contains(t, summary, "TOP PERFORMING CONTENT PATTERNS:")
}

func TestAverageHashtagRate(t *testing.T) {
	assert.Equal(t, 0.0, NewProcessor(nil).AverageHashtagRate())
	assert.InDelta(t, 0.75, NewProcessor(samplePosts()).AverageHashtagRate(), 0.001)
}

func TestHashtagUsage_Lowercases(t *testing.T) {
	usage := NewProcessor([]types.Post{{Text: "#Go and #go and #GO"}}).HashtagUsage()
	assert.Equal(t, map[string]int{"#go": 3}, usage)
}
