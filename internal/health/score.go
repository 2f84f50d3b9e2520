// Package health computes a composite 0-100 health score for an account's
// recent posting behavior, with prioritized recommendations and next steps.
package health

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jonathan/voice-agent/internal/analytics"
	"github.com/jonathan/voice-agent/internal/metrics"
	"github.com/jonathan/voice-agent/internal/types"
	"github.com/jonathan/voice-agent/internal/virality"
)

// Sub-score keys in ProfileHealthResult.Scores.
const (
	ScoreEngagementQuality   = "engagement_quality"
	ScoreCadence             = "cadence"
	ScoreTopicFocus          = "topic_focus"
	ScoreFormatFit           = "format_fit"
	ScoreConversationBalance = "conversation_balance"
	ScoreShareability        = "shareability"
	ScoreHashtagHygiene      = "hashtag_hygiene"
	ScoreLinkBalance         = "link_balance"
	ScoreProfileCompleteness = "profile_completeness"
)

// overallWeights sum to 1.0.
var overallWeights = map[string]float64{
	ScoreEngagementQuality:   0.25,
	ScoreShareability:        0.20,
	ScoreCadence:             0.15,
	ScoreTopicFocus:          0.12,
	ScoreFormatFit:           0.10,
	ScoreConversationBalance: 0.08,
	ScoreHashtagHygiene:      0.05,
	ScoreLinkBalance:         0.03,
	ScoreProfileCompleteness: 0.02,
}

var stopwords = map[string]bool{
	"the": true, "and": true, "for": true, "that": true, "with": true,
	"this": true, "you": true, "your": true, "are": true, "was": true,
	"were": true, "but": true, "not": true, "have": true, "has": true,
	"had": true, "its": true, "it's": true, "they": true, "them": true,
	"from": true, "about": true, "into": true, "over": true, "after": true,
	"before": true, "just": true, "than": true, "then": true, "what": true,
	"when": true, "where": true, "which": true, "who": true, "why": true,
	"how": true, "also": true, "their": true, "there": true, "here": true,
	"because": true, "been": true, "being": true, "i": true, "im": true,
	"i'm": true, "we": true, "our": true, "us": true, "my": true, "me": true,
}

var (
	urlStripRe = regexp.MustCompile(`https?://\S+`)
	tokenRe    = regexp.MustCompile(`\b[a-z]{4,}\b`)
)

// Recommendation is one prioritized improvement suggestion.
type Recommendation struct {
	Title    string   `json:"title"`
	Priority string   `json:"priority"`
	Why      string   `json:"why"`
	Actions  []string `json:"actions"`
}

// ProfileHealthResult is the health scoring output for a profile.
// Computed per request, never persisted by this package.
type ProfileHealthResult struct {
	Handle          string             `json:"handle"`
	OverallScore    float64            `json:"overall_score"`
	Scores          map[string]float64 `json:"scores"`
	Metrics         map[string]any     `json:"metrics"`
	Recommendations []Recommendation   `json:"recommendations"`
	Steps           []string           `json:"steps"`
}

// ScoreProfileHealth computes the 9 weighted sub-scores, overall score, raw
// metrics, recommendations, and next steps for a handle's post history.
// Sparse input degrades to documented defaults; it never errors.
func ScoreProfileHealth(handle string, posts []types.Post, info *types.AuthorInfo, profile *types.VoiceProfile) ProfileHealthResult {
	processor := analytics.NewProcessor(posts)
	patterns := processor.AnalyzePatterns()

	var avgLikes, avgReposts, avgReplies, avgQuotes float64
	if patterns != nil {
		avgLikes = patterns.AverageMetrics.Likes
		avgReposts = patterns.AverageMetrics.Reposts
		avgReplies = patterns.AverageMetrics.Replies
		avgQuotes = patterns.AverageMetrics.Quotes
	}

	followers := 0
	if info != nil {
		followers = info.FollowersCount
	}

	avgEngagement := avgLikes + avgReposts*2 + avgReplies + avgQuotes
	engagementRate := avgEngagement / math.Max(float64(followers), 1.0)

	cadenceScore, postsPerWeek := scoreCadence(posts)
	engagementScore := scoreEngagementRate(engagementRate)

	avgLength := averageLength(profile, patterns, posts)
	formatScore := scoreLength(avgLength)

	replyRatio := replyRatio(posts)
	conversationScore := scoreReplyRatio(replyRatio)

	hashtagRate := processor.AverageHashtagRate()
	hashtagScore := scoreHashtags(hashtagRate)

	linkRate := linkRate(posts)
	linkScore := scoreLinks(linkRate)

	topicScore, topicMetric := scoreTopicFocus(posts, profile)

	viralityScore := averageVirality(posts)

	profileScore := scoreProfileCompleteness(info)

	scores := map[string]float64{
		ScoreEngagementQuality:   engagementScore,
		ScoreCadence:             cadenceScore,
		ScoreTopicFocus:          topicScore,
		ScoreFormatFit:           formatScore,
		ScoreConversationBalance: conversationScore,
		ScoreShareability:        viralityScore,
		ScoreHashtagHygiene:      hashtagScore,
		ScoreLinkBalance:         linkScore,
		ScoreProfileCompleteness: profileScore,
	}

	var bestHours []int
	if patterns != nil {
		bestHours = patterns.BestPostingHours
	}

	resultMetrics := map[string]any{
		"followers":          followers,
		"avg_engagement":     roundN(avgEngagement, 2),
		"engagement_rate":    roundN(engagementRate, 4),
		"posts_per_week":     roundN(postsPerWeek, 2),
		"avg_length":         roundN(avgLength, 1),
		"reply_ratio":        roundN(replyRatio, 2),
		"hashtag_rate":       roundN(hashtagRate, 2),
		"link_rate":          roundN(linkRate, 2),
		"topic_focus":        roundN(topicMetric, 3),
		"best_posting_hours": bestHours,
	}

	return ProfileHealthResult{
		Handle:          handle,
		OverallScore:    weightedOverall(scores),
		Scores:          scores,
		Metrics:         resultMetrics,
		Recommendations: buildRecommendations(scores),
		Steps:           buildSteps(scores, bestHours),
	}
}

func scoreEngagementRate(rate float64) float64 {
	switch {
	case rate >= 0.02:
		return 1.0
	case rate >= 0.01:
		return 0.8
	case rate >= 0.005:
		return 0.6
	case rate >= 0.002:
		return 0.45
	case rate >= 0.001:
		return 0.3
	default:
		return 0.2
	}
}

// scoreCadence computes posts per week over the dated span. Fewer than two
// dated posts defaults to 0.4 with a zero rate.
func scoreCadence(posts []types.Post) (float64, float64) {
	var dated []time.Time
	for _, post := range posts {
		if post.CreatedAt != nil {
			dated = append(dated, *post.CreatedAt)
		}
	}
	if len(dated) < 2 {
		return 0.4, 0.0
	}

	earliest, latest := dated[0], dated[0]
	for _, t := range dated[1:] {
		if t.Before(earliest) {
			earliest = t
		}
		if t.After(latest) {
			latest = t
		}
	}
	spanDays := int(latest.Sub(earliest).Hours() / 24)
	if spanDays < 1 {
		spanDays = 1
	}
	postsPerWeek := float64(len(dated)) / float64(spanDays) * 7

	var score float64
	switch {
	case postsPerWeek < 1:
		score = 0.2
	case postsPerWeek < 3:
		score = 0.2 + (postsPerWeek-1)*0.2
	case postsPerWeek <= 10:
		score = 0.9
	case postsPerWeek <= 20:
		score = 0.7
	default:
		score = 0.5
	}
	return score, postsPerWeek
}

// averageLength prefers the voice profile's figure, then analytics, then a
// direct computation over the posts.
func averageLength(profile *types.VoiceProfile, patterns *analytics.Patterns, posts []types.Post) float64 {
	if profile != nil && profile.AverageLength > 0 {
		return float64(profile.AverageLength)
	}
	if patterns != nil && patterns.AverageLength > 0 {
		return patterns.AverageLength
	}
	if len(posts) > 0 {
		total := 0
		for _, post := range posts {
			total += utf8.RuneCountInString(post.Text)
		}
		return float64(total) / float64(len(posts))
	}
	return 0.0
}

func scoreLength(avgLength float64) float64 {
	switch {
	case avgLength <= 0:
		return 0.4
	case avgLength < 60:
		return 0.4
	case avgLength < 90:
		return 0.6
	case avgLength <= 200:
		return 0.95
	case avgLength <= 240:
		return 0.7
	default:
		return 0.4
	}
}

func replyRatio(posts []types.Post) float64 {
	if len(posts) == 0 {
		return 0.0
	}
	replies := 0
	for _, post := range posts {
		if post.IsReply {
			replies++
		}
	}
	return float64(replies) / float64(len(posts))
}

func scoreReplyRatio(ratio float64) float64 {
	const target = 0.45
	return math.Max(0.2, 1.0-math.Abs(ratio-target)/target)
}

func scoreHashtags(rate float64) float64 {
	switch {
	case rate <= 0.3:
		return 1.0
	case rate <= 1.0:
		return 0.85
	case rate <= 2.0:
		return 0.6
	case rate <= 3.0:
		return 0.4
	default:
		return 0.2
	}
}

func linkRate(posts []types.Post) float64 {
	if len(posts) == 0 {
		return 0.0
	}
	hits := 0
	for _, post := range posts {
		if metrics.HasLink(post.Text) {
			hits++
		}
	}
	return float64(hits) / float64(len(posts))
}

func scoreLinks(rate float64) float64 {
	switch {
	case rate >= 0.05 && rate <= 0.2:
		return 0.9
	case rate < 0.05:
		return 0.6
	case rate <= 0.35:
		return 0.7
	default:
		return 0.4
	}
}

// scoreTopicFocus uses the voice profile's topic count when present;
// otherwise it measures how concentrated the history's vocabulary is in its
// five most frequent stopword-filtered tokens.
func scoreTopicFocus(posts []types.Post, profile *types.VoiceProfile) (float64, float64) {
	if profile != nil && len(profile.CommonTopics) > 0 {
		count := len(profile.CommonTopics)
		switch {
		case count >= 3 && count <= 7:
			return 1.0, float64(count)
		case count <= 2:
			return 0.5, float64(count)
		case count <= 12:
			return 0.7, float64(count)
		default:
			return 0.4, float64(count)
		}
	}

	counts := map[string]int{}
	total := 0
	for _, post := range posts {
		cleaned := urlStripRe.ReplaceAllString(strings.ToLower(post.Text), "")
		for _, token := range tokenRe.FindAllString(cleaned, -1) {
			if !stopwords[token] {
				counts[token]++
				total++
			}
		}
	}
	if total == 0 {
		return 0.4, 0.0
	}

	frequencies := make([]int, 0, len(counts))
	for _, count := range counts {
		frequencies = append(frequencies, count)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(frequencies)))
	top := 0
	for _, count := range frequencies[:min(5, len(frequencies))] {
		top += count
	}
	concentration := float64(top) / float64(total)

	switch {
	case concentration >= 0.18:
		return 1.0, concentration
	case concentration >= 0.12:
		return 0.8, concentration
	case concentration >= 0.08:
		return 0.6, concentration
	case concentration >= 0.05:
		return 0.4, concentration
	default:
		return 0.2, concentration
	}
}

// averageVirality scores the first 20 posts through the virality scorer and
// averages the normalized results. Replies are scored with reply length
// bands.
func averageVirality(posts []types.Post) float64 {
	if len(posts) == 0 {
		return 0.4
	}
	scorer := virality.NewScorer()
	sample := posts[:min(20, len(posts))]
	sum := 0.0
	for _, post := range sample {
		contentType := types.ContentTypeTweet
		if post.IsReply {
			contentType = types.ContentTypeReply
		}
		sum += scorer.ScoreText(post.Text, contentType).Score / 100.0
	}
	return sum / float64(len(sample))
}

func scoreProfileCompleteness(info *types.AuthorInfo) float64 {
	if info == nil {
		return 0.5
	}
	bio := strings.TrimSpace(info.Bio)
	switch {
	case len(bio) >= 80:
		return 1.0
	case len(bio) >= 20:
		return 0.7
	case len(bio) > 0:
		return 0.5
	default:
		return 0.3
	}
}

func weightedOverall(scores map[string]float64) float64 {
	total := 0.0
	weighted := 0.0
	for key, weight := range overallWeights {
		total += weight
		value, ok := scores[key]
		if !ok {
			value = 0.5
		}
		weighted += value * weight
	}
	return roundN(weighted/math.Max(total, 1e-6)*100, 1)
}

func roundN(v float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(v*factor) / factor
}
