package health

import (
	"fmt"
	"strings"
)

// buildRecommendations emits a fixed recommendation record for each
// sub-score below 0.6, in priority order, truncated to six.
func buildRecommendations(scores map[string]float64) []Recommendation {
	var recommendations []Recommendation

	add := func(title, priority, why string, actions ...string) {
		recommendations = append(recommendations, Recommendation{
			Title:    title,
			Priority: priority,
			Why:      why,
			Actions:  actions,
		})
	}

	if scores[ScoreTopicFocus] < 0.6 {
		add("Sharpen topical focus", "high",
			"Posts cover too many themes, which weakens recommendation signals.",
			"Pick 2-3 core topics and publish within those for 2 weeks.",
			"Create a recurring series or format to reinforce your niche.")
	}
	if scores[ScoreShareability] < 0.6 {
		add("Increase shareable formats", "high",
			"Recent posts are not triggering strong share signals.",
			"Publish 1-2 posts/week that include a framework, checklist, or strong takeaway.",
			"Open with a bold statement before supporting detail.")
	}
	if scores[ScoreEngagementQuality] < 0.6 {
		add("Strengthen engagement hooks", "high",
			"Average engagement rate is low for the current follower base.",
			"Use sharper hooks and clearer takes (avoid hedging).",
			"End posts with a specific, natural prompt for replies.")
	}
	if scores[ScoreCadence] < 0.6 {
		add("Stabilize posting cadence", "medium",
			"Inconsistent posting reduces recency and distribution opportunities.",
			"Aim for 3-7 posts per week for the next month.",
			"Schedule posts during your best-performing hours.")
	}
	if scores[ScoreConversationBalance] < 0.6 {
		add("Balance replies and originals", "medium",
			"Conversation signals are not balanced across content.",
			"Keep ~30-50% of weekly posts as replies or quote posts.",
			"Respond to high-quality threads in your niche.")
	}
	if scores[ScoreFormatFit] < 0.6 {
		add("Tighten post length", "medium",
			"Average length is outside the best-performing range.",
			"Aim for 100-200 characters on single posts.",
			"Use short lines or bullets for readability.")
	}
	if scores[ScoreHashtagHygiene] < 0.6 {
		add("Reduce hashtag usage", "low",
			"High hashtag density can look spammy to users.",
			"Limit to 0-1 hashtags per post.",
			"Replace hashtags with plain-language keywords.")
	}
	if scores[ScoreLinkBalance] < 0.6 {
		add("Increase standalone value", "low",
			"Heavy link usage can reduce dwell and share signals.",
			"Include the key takeaway in the post itself.",
			"Use links sparingly and only when adding depth.")
	}
	if scores[ScoreProfileCompleteness] < 0.6 {
		add("Improve profile clarity", "low",
			"A short bio weakens follow conversion.",
			"Add a clear value proposition in your bio.",
			"Highlight your niche and what people gain by following you.")
	}

	if len(recommendations) > 6 {
		recommendations = recommendations[:6]
	}
	return recommendations
}

// buildSteps produces an ordered action list, capped to six.
func buildSteps(scores map[string]float64, bestHours []int) []string {
	var steps []string

	if scores[ScoreCadence] < 0.7 {
		steps = append(steps, "Plan a 2-week schedule of 3-7 posts per week.")
	}
	if len(bestHours) > 0 {
		hours := make([]string, 0, 3)
		for _, hour := range bestHours[:min(3, len(bestHours))] {
			hours = append(hours, fmt.Sprintf("%d:00", hour))
		}
		steps = append(steps, fmt.Sprintf("Post during your best hours: %s.", strings.Join(hours, ", ")))
	}
	if scores[ScoreShareability] < 0.7 {
		steps = append(steps, "Publish one framework/list post and one strong-opinion post weekly.")
	}
	if scores[ScoreConversationBalance] < 0.7 {
		steps = append(steps, "Reply to 3-5 posts in your niche each week.")
	}
	if scores[ScoreTopicFocus] < 0.7 {
		steps = append(steps, "Commit to 2-3 core themes for the next 10 posts.")
	}
	if scores[ScoreFormatFit] < 0.7 {
		steps = append(steps, "Keep single posts in the 100-200 character range.")
	}

	if len(steps) > 6 {
		steps = steps[:6]
	}
	return steps
}
