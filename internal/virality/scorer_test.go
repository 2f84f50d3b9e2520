package virality

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/voice-agent/internal/types"
)

func TestScore_EmptyContent(t *testing.T) {
	scorer := NewScorer()

	for _, texts := range [][]string{nil, {}, {""}, {"   "}} {
		result := scorer.Score(texts, types.ContentTypeTweet)
		assert.Equal(t, 0.0, result.Score)
		assert.Equal(t, []string{"No content to score"}, result.Notes)
		assert.Empty(t, result.Components)
	}
}

func TestScore_WithinRange(t *testing.T) {
	scorer := NewScorer()
	texts := []string{
		"hi",
		"What do you think about shipping smaller releases more often?",
		"5 lessons from a year of building in public:\n- write daily\n- ship weekly\n- ask for feedback",
		"RT IF YOU AGREE!!! FOLLOW ME FOR A FREE GIVEAWAY!!! #win #free #money",
		"The truth about growing an audience is that consistency beats clever hooks.",
	}

	for _, text := range texts {
		for _, contentType := range []types.ContentType{types.ContentTypeTweet, types.ContentTypeThread, types.ContentTypeReply, types.ContentTypeQuote} {
			result := scorer.Score([]string{text}, contentType)
			assert.GreaterOrEqual(t, result.Score, 0.0, "score for %q as %s", text, contentType)
			assert.LessOrEqual(t, result.Score, 100.0, "score for %q as %s", text, contentType)
		}
	}
}

func TestScore_Deterministic(t *testing.T) {
	scorer := NewScorer()
	text := "A checklist for better code reviews: read the tests first, then the happy path, then the edges."

	first := scorer.Score([]string{text}, types.ContentTypeTweet)
	second := scorer.Score([]string{text}, types.ContentTypeTweet)
	assert.Equal(t, first, second)
}

func TestScoreText_MatchesSingleElementScore(t *testing.T) {
	scorer := NewScorer()
	text := "Curious what everyone thinks about pairing on reviews?"

	assert.Equal(t, scorer.Score([]string{text}, types.ContentTypeReply), scorer.ScoreText(text, types.ContentTypeReply))
}

func TestScore_ThreadHookBonus(t *testing.T) {
	scorer := NewScorer()
	// Length sits inside both the tweet and thread ideal bands, so the only
	// difference between the two runs is the thread hook bonus.
	text := "The truth about growing an audience is that consistency wins. Publish on a schedule, answer the people who show up, and let the compounding do the rest."

	asTweet := scorer.Score([]string{text}, types.ContentTypeTweet)
	asThread := scorer.Score([]string{text}, types.ContentTypeThread)

	assert.Greater(t, asThread.Score, asTweet.Score)
	assert.Contains(t, asThread.Notes, "Strong hook")
}

func TestScore_EngagementBaitPenalized(t *testing.T) {
	scorer := NewScorer()

	bait := scorer.Score([]string{"RT if you agree! Follow me and DM me for the free giveaway! #crypto #airdrop #free"}, types.ContentTypeTweet)
	honest := scorer.Score([]string{"A short framework for writing better commit messages: say what changed and why it matters to the reader."}, types.ContentTypeTweet)

	assert.Less(t, bait.Score, honest.Score)
	assert.Contains(t, bait.Notes, "Risk: looks like engagement bait")
}

func TestScore_ThreadAveragesSegments(t *testing.T) {
	scorer := NewScorer()
	segments := []string{
		"A practical guide to onboarding new engineers without drowning them in docs on their first week.",
		"Start with one real ticket. Small, shippable, reviewed by a human who explains the why behind each comment.",
	}

	result := scorer.Score(segments, types.ContentTypeThread)
	assert.GreaterOrEqual(t, result.Score, 0.0)
	assert.LessOrEqual(t, result.Score, 100.0)
	for _, key := range []string{ComponentReplyPotential, ComponentSharePotential, ComponentClickPotential, ComponentDwellPotential, ComponentClarity, ComponentNegativeRisk} {
		value, ok := result.Components[key]
		assert.True(t, ok, "missing component %s", key)
		assert.GreaterOrEqual(t, value, 0.0)
		assert.LessOrEqual(t, value, 1.0)
	}
}

func TestLengthScore(t *testing.T) {
	tests := []struct {
		name        string
		length      int
		contentType types.ContentType
		expected    float64
	}{
		{"Below hard minimum", 20, types.ContentTypeTweet, 0.0},
		{"At hard minimum", 30, types.ContentTypeTweet, 0.0},
		{"Inside tweet ideal band", 150, types.ContentTypeTweet, 1.0},
		{"At hard maximum", 280, types.ContentTypeTweet, 0.0},
		{"Above hard maximum", 400, types.ContentTypeThread, 0.0},
		{"Inside reply ideal band", 100, types.ContentTypeReply, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, lengthScore(tt.length, tt.contentType), 0.001)
		})
	}
}

func TestScore_EmojiLengthCountsRunes(t *testing.T) {
	scorer := NewScorer()

	// 150 runes but 300 bytes; must land inside the tweet ideal band, not
	// past the 280 hard bound.
	text := strings.Repeat("🚀", 50) + strings.Repeat("a", 100)
	result := scorer.Score([]string{text}, types.ContentTypeTweet)

	assert.NotContains(t, result.Notes, "May be too long")
	assert.GreaterOrEqual(t, result.Components[ComponentDwellPotential], 0.5)
}

func TestHookScore(t *testing.T) {
	assert.Equal(t, 1.0, hookScore("unpopular opinion: meetings can be good"))
	assert.Equal(t, 0.3, hookScore("a perfectly ordinary opening line"))
	assert.Equal(t, 0.0, hookScore("..."))
}

func TestNegativeRisk_Accumulates(t *testing.T) {
	clean := NewScorer().ScoreText("Shipping a small fix today.", types.ContentTypeTweet)
	assert.Equal(t, 0.0, clean.Components[ComponentNegativeRisk])
}
