package health

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/voice-agent/internal/types"
	"github.com/jonathan/voice-agent/internal/virality"
)

// Impact is one projected sub-score movement for a draft.
type Impact struct {
	Metric string  `json:"metric"`
	Delta  float64 `json:"delta"`
	Reason string  `json:"reason"`
}

// HealthImpact estimates how publishing a draft could move health sub-scores,
// with follow-up content suggestions.
type HealthImpact struct {
	Impacts   []Impact `json:"impacts"`
	Followups []string `json:"followups"`
}

// EstimateImpact projects sub-score deltas for a draft from its virality
// components. At most four impacts and four follow-ups are returned.
func EstimateImpact(texts []string, contentType types.ContentType, components map[string]float64) HealthImpact {
	var lengths []int
	for _, text := range texts {
		if trimmed := strings.TrimSpace(text); trimmed != "" {
			lengths = append(lengths, utf8.RuneCountInString(trimmed))
		}
	}
	avgLength := 0.0
	if len(lengths) > 0 {
		total := 0
		for _, n := range lengths {
			total += n
		}
		avgLength = float64(total) / float64(len(lengths))
	}

	sharePotential := components[virality.ComponentSharePotential]
	replyPotential := components[virality.ComponentReplyPotential]
	dwellPotential := components[virality.ComponentDwellPotential]
	clarity := components[virality.ComponentClarity]
	negativeRisk := components[virality.ComponentNegativeRisk]

	lengthScore := impactLengthScore(avgLength, contentType)

	var impacts []Impact

	if shareDelta := roundN(sharePotential*0.2, 2); shareDelta > 0.03 {
		impacts = append(impacts, Impact{
			Metric: ScoreShareability,
			Delta:  shareDelta,
			Reason: "Structured insight increases the chance of reposts and shares.",
		})
	}

	convBase := replyPotential
	if contentType == types.ContentTypeReply || contentType == types.ContentTypeQuote {
		convBase += 0.2
	}
	if conversationDelta := roundN(math.Min(1.0, convBase)*0.15, 2); conversationDelta > 0.03 {
		impacts = append(impacts, Impact{
			Metric: ScoreConversationBalance,
			Delta:  conversationDelta,
			Reason: "Clear opinion or prompt can drive replies and discussion.",
		})
	}

	if formatDelta := roundN((lengthScore+clarity)/2*0.1, 2); formatDelta > 0.02 {
		impacts = append(impacts, Impact{
			Metric: ScoreFormatFit,
			Delta:  formatDelta,
			Reason: "Length and readability align with high-performing formats.",
		})
	}

	engagementDelta := roundN((1-negativeRisk)*0.08, 2)
	if negativeRisk > 0.6 {
		impacts = append(impacts, Impact{
			Metric: ScoreEngagementQuality,
			Delta:  -0.05,
			Reason: "High risk of negative feedback could reduce engagement quality.",
		})
	} else if engagementDelta > 0.02 {
		impacts = append(impacts, Impact{
			Metric: ScoreEngagementQuality,
			Delta:  engagementDelta,
			Reason: "Lower negative-signal risk can lift overall engagement quality.",
		})
	}

	if len(impacts) > 4 {
		impacts = impacts[:4]
	}

	followups := followupSuggestions(contentType, sharePotential, replyPotential, dwellPotential)
	if len(followups) > 4 {
		followups = followups[:4]
	}

	return HealthImpact{Impacts: impacts, Followups: followups}
}

func impactLengthScore(avgLength float64, contentType types.ContentType) float64 {
	var idealMin, idealMax float64
	switch contentType {
	case types.ContentTypeReply:
		idealMin, idealMax = 60, 200
	case types.ContentTypeQuote:
		idealMin, idealMax = 80, 200
	case types.ContentTypeThread:
		idealMin, idealMax = 120, 260
	default:
		idealMin, idealMax = 100, 220
	}

	const minValue, maxValue = 30.0, 280.0
	if avgLength <= minValue || avgLength >= maxValue {
		return 0.0
	}
	if avgLength < idealMin {
		return (avgLength - minValue) / math.Max(idealMin-minValue, 1)
	}
	if avgLength > idealMax {
		return math.Max(0.0, (maxValue-avgLength)/math.Max(maxValue-idealMax, 1))
	}
	return 1.0
}

func followupSuggestions(contentType types.ContentType, sharePotential, replyPotential, dwellPotential float64) []string {
	var suggestions []string

	if sharePotential < 0.6 {
		suggestions = append(suggestions, "Framework or checklist post")
	}
	if replyPotential < 0.6 {
		suggestions = append(suggestions, "Opinionated reply prompt")
	}
	if dwellPotential < 0.6 {
		suggestions = append(suggestions, "Mini-thread (3-5 posts) with a strong hook")
	}

	switch contentType {
	case types.ContentTypeThread:
		suggestions = append(suggestions, "Single crisp insight post", "Quote post with a fresh angle")
	case types.ContentTypeTweet:
		suggestions = append(suggestions, "Short thread expanding this idea", "Reply to a top post in your niche")
	default:
		suggestions = append(suggestions, "Standalone post with a clear takeaway")
	}

	var deduped []string
	seen := map[string]bool{}
	for _, item := range suggestions {
		if !seen[item] {
			seen[item] = true
			deduped = append(deduped, item)
		}
	}
	return deduped
}
