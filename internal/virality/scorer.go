// Package virality scores content for likely reach and engagement using
// deterministic heuristics. Scores are estimates tuned against observed
// ranking signals, not statistically validated predictions.
package virality

import (
	"math"
	"strings"

	"github.com/jonathan/voice-agent/internal/metrics"
	"github.com/jonathan/voice-agent/internal/types"
)

// Component keys present in ViralityResult.Components. Every key is a 0-1
// sub-score; NegativeRisk is a risk level rather than a quality score.
const (
	ComponentReplyPotential = "reply_potential"
	ComponentSharePotential = "share_potential"
	ComponentClickPotential = "click_potential"
	ComponentDwellPotential = "dwell_potential"
	ComponentClarity        = "clarity"
	ComponentNegativeRisk   = "negative_risk"
)

// Aggregation weights for the positive components. NegativeRisk is applied
// as a flat penalty of risk*20 points instead.
var componentWeights = map[string]float64{
	ComponentReplyPotential: 0.2,
	ComponentSharePotential: 0.25,
	ComponentClickPotential: 0.1,
	ComponentDwellPotential: 0.25,
	ComponentClarity:        0.2,
}

// ViralityResult is the outcome of scoring one piece of content.
// It is computed on demand and never persisted.
type ViralityResult struct {
	Score      float64            `json:"score"`
	Components map[string]float64 `json:"components"`
	Notes      []string           `json:"notes"`
}

// Scorer scores content for estimated virality. The zero value is ready to
// use; scoring is pure and safe for concurrent use.
type Scorer struct{}

// NewScorer returns a ready Scorer.
func NewScorer() *Scorer {
	return &Scorer{}
}

// ScoreText scores a single text unit. It is equivalent to Score with a
// one-element segment list.
func (s *Scorer) ScoreText(text string, contentType types.ContentType) ViralityResult {
	return s.Score([]string{text}, contentType)
}

// Score evaluates content against reach-oriented signals and returns a 0-100
// score with named 0-1 component sub-scores and short diagnostic notes.
// Threads pass their segments in order; single posts pass one segment.
func (s *Scorer) Score(texts []string, contentType types.ContentType) ViralityResult {
	if len(texts) == 0 || (len(texts) == 1 && strings.TrimSpace(texts[0]) == "") {
		return ViralityResult{Score: 0.0, Components: map[string]float64{}, Notes: []string{"No content to score"}}
	}

	perText := make([]ViralityResult, len(texts))
	for i, text := range texts {
		perText[i] = s.scoreText(text, contentType)
	}

	components := map[string]float64{}
	for _, result := range perText {
		for key, value := range result.Components {
			components[key] += value
		}
	}
	for key := range components {
		components[key] /= float64(len(perText))
	}

	var notes []string
	seen := map[string]bool{}
	for _, result := range perText {
		for _, note := range result.Notes {
			if !seen[note] {
				seen[note] = true
				notes = append(notes, note)
			}
		}
	}
	if len(notes) > 6 {
		notes = notes[:6]
	}

	score := aggregateScore(components)

	// Thread-specific hook bonus when the opening segment lands.
	if contentType == types.ContentTypeThread {
		hook := hookScore(texts[0])
		score = math.Min(100.0, score+hook*6)
		if hook > 0.6 && !seen["Strong hook"] {
			notes = append([]string{"Strong hook"}, notes...)
		}
	}

	return ViralityResult{Score: round1(score), Components: components, Notes: notes}
}

// scoreText scores one segment.
func (s *Scorer) scoreText(text string, contentType types.ContentType) ViralityResult {
	cleaned := strings.TrimSpace(text)
	if cleaned == "" {
		return ViralityResult{Score: 0.0, Components: map[string]float64{}, Notes: []string{"Empty content"}}
	}

	m := metrics.Extract(cleaned)

	lengthScore := lengthScore(m.Length, contentType)
	structureScore := math.Min(1.0, boolVal(m.LineBreaks >= 1, 0.4)+boolVal(m.HasList, 0.4)+boolVal(m.NumberCount >= 1, 0.2))
	hook := hookScore(cleaned)

	replyPotential := math.Min(1.0, boolVal(m.QuestionMarks > 0, 0.6)+boolVal(hasKeywords(cleaned, replyKeywords), 0.4))
	sharePotential := math.Min(1.0, boolVal(m.HasList || m.NumberCount >= 1, 0.3)+boolVal(hasKeywords(cleaned, shareKeywords), 0.4)+boolVal(hook > 0.4, 0.3))
	clickPotential := math.Min(1.0, boolVal(hasKeywords(cleaned, clickKeywords), 0.6)+boolVal(m.HasLink, 0.4))
	dwellPotential := math.Min(1.0, 0.5*lengthScore+0.3*structureScore+0.2*hook)
	clarity := clarityScore(m.AvgSentenceLen, m.Length, m.Exclamations)
	risk := negativeRisk(cleaned, m)

	components := map[string]float64{
		ComponentReplyPotential: replyPotential,
		ComponentSharePotential: sharePotential,
		ComponentClickPotential: clickPotential,
		ComponentDwellPotential: dwellPotential,
		ComponentClarity:        clarity,
		ComponentNegativeRisk:   risk,
	}

	notes := notesFromComponents(components, m.Length, contentType)

	return ViralityResult{Score: aggregateScore(components), Components: components, Notes: notes}
}

func aggregateScore(components map[string]float64) float64 {
	positive := 0.0
	for key, weight := range componentWeights {
		positive += weight * components[key]
	}
	penalty := components[ComponentNegativeRisk] * 20.0
	return math.Max(0.0, math.Min(100.0, positive*100.0-penalty))
}

// lengthScore is a trapezoid over character length: 0 outside the hard
// 30-280 bounds, 1.0 inside the content-type ideal band, linear ramps between.
func lengthScore(length int, contentType types.ContentType) float64 {
	var idealMin, idealMax int
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

	const minValue, maxValue = 30, 280
	if length <= minValue || length >= maxValue {
		return 0.0
	}
	if length < idealMin {
		return float64(length-minValue) / float64(max(idealMin-minValue, 1))
	}
	if length > idealMax {
		return math.Max(0.0, float64(maxValue-length)/float64(max(maxValue-idealMax, 1)))
	}
	return 1.0
}

func clarityScore(avgSentenceLen float64, length, exclamations int) float64 {
	if avgSentenceLen <= 0 {
		return 0.5
	}
	base := 1.0 - math.Min(1.0, math.Abs(avgSentenceLen-14)/14)
	if length > 250 {
		base *= 0.8
	}
	if exclamations >= 4 {
		base *= 0.8
	}
	return math.Max(0.0, math.Min(1.0, base))
}

func hasKeywords(text string, keywords []string) bool {
	lowered := strings.ToLower(text)
	for _, keyword := range keywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}

// hookScore checks the first 12 words for an attention-grabbing opener:
// 1.0 on a hit, 0.3 otherwise, 0.0 for wordless text.
func hookScore(text string) float64 {
	words := metrics.Words(text)
	if len(words) > 12 {
		words = words[:12]
	}
	firstWords := strings.Join(words, " ")
	if firstWords == "" {
		return 0.0
	}
	for _, keyword := range hookKeywords {
		if strings.Contains(firstWords, keyword) {
			return 1.0
		}
	}
	return 0.3
}

func negativeRisk(text string, m metrics.TextMetrics) float64 {
	risk := 0.0
	lowered := strings.ToLower(text)
	for _, pattern := range engagementBaitPatterns {
		if pattern.MatchString(lowered) {
			risk += 0.5
			break
		}
	}
	if m.Hashtags > 2 {
		risk += 0.2
	}
	if m.Mentions > 2 {
		risk += 0.2
	}
	if m.Exclamations > 3 {
		risk += 0.1
	}
	if m.UppercaseRatio > 0.35 {
		risk += 0.2
	}
	if spamRe.MatchString(lowered) {
		risk += 0.2
	}
	return math.Min(1.0, risk)
}

func notesFromComponents(components map[string]float64, length int, contentType types.ContentType) []string {
	var notes []string
	if components[ComponentSharePotential] >= 0.7 {
		notes = append(notes, "Shareable insight")
	}
	if components[ComponentReplyPotential] >= 0.7 {
		notes = append(notes, "Strong reply prompt")
	}
	if components[ComponentClickPotential] >= 0.7 {
		notes = append(notes, "Clear click value")
	}
	if components[ComponentDwellPotential] >= 0.7 {
		notes = append(notes, "Good dwell potential")
	}
	if components[ComponentClarity] < 0.5 {
		notes = append(notes, "Clarity could be tighter")
	}
	if components[ComponentNegativeRisk] >= 0.5 {
		notes = append(notes, "Risk: looks like engagement bait")
	}

	if contentType != types.ContentTypeThread {
		if length < 70 {
			notes = append(notes, "May be too short")
		} else if length > 250 {
			notes = append(notes, "May be too long")
		}
	}

	return notes
}

func boolVal(condition bool, value float64) float64 {
	if condition {
		return value
	}
	return 0.0
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
