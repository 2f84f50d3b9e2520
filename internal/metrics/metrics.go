// Package metrics extracts deterministic text features used by the scoring
// heuristics. All functions are pure: same input, same output, no I/O.
package metrics

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	hashtagRe  = regexp.MustCompile(`#\w+`)
	mentionRe  = regexp.MustCompile(`@\w+`)
	linkRe     = regexp.MustCompile(`https?://|www\.`)
	sentenceRe = regexp.MustCompile(`[.!?]+`)
	wordRe     = regexp.MustCompile(`\b\w+\b`)
	numberRe   = regexp.MustCompile(`\b\d+\b`)
)

// listMarkers are the prefixes that mark a line as a list item.
var listMarkers = []string{"-", "*", "1.", "1)", "•"}

// TextMetrics holds the extracted features for a single text unit.
// Length and ratios are computed over the trimmed text.
type TextMetrics struct {
	Length         int
	UppercaseRatio float64
	QuestionMarks  int
	Exclamations   int
	Hashtags       int
	Mentions       int
	HasLink        bool
	SentenceLens   []int
	AvgSentenceLen float64
	LineBreaks     int
	HasList        bool
	NumberCount    int
}

// Extract computes all text features for one text unit.
func Extract(text string) TextMetrics {
	cleaned := strings.TrimSpace(text)

	var m TextMetrics
	m.Length = utf8.RuneCountInString(cleaned)

	letters := 0
	upper := 0
	for _, r := range cleaned {
		if r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z' {
			letters++
		}
		if unicode.IsUpper(r) {
			upper++
		}
	}
	if letters > 0 {
		m.UppercaseRatio = float64(upper) / float64(letters)
	}

	m.QuestionMarks = strings.Count(cleaned, "?")
	m.Exclamations = strings.Count(cleaned, "!")
	m.Hashtags = len(hashtagRe.FindAllString(cleaned, -1))
	m.Mentions = len(mentionRe.FindAllString(cleaned, -1))
	m.HasLink = linkRe.MatchString(cleaned)

	for _, sentence := range sentenceRe.Split(cleaned, -1) {
		if strings.TrimSpace(sentence) == "" {
			continue
		}
		m.SentenceLens = append(m.SentenceLens, len(wordRe.FindAllString(sentence, -1)))
	}
	if len(m.SentenceLens) > 0 {
		total := 0
		for _, n := range m.SentenceLens {
			total += n
		}
		m.AvgSentenceLen = float64(total) / float64(len(m.SentenceLens))
	}

	m.LineBreaks = strings.Count(cleaned, "\n")
	for _, line := range strings.Split(cleaned, "\n") {
		trimmed := strings.TrimSpace(line)
		for _, marker := range listMarkers {
			if strings.HasPrefix(trimmed, marker) {
				m.HasList = true
				break
			}
		}
		if m.HasList {
			break
		}
	}
	m.NumberCount = len(numberRe.FindAllString(cleaned, -1))

	return m
}

// Words returns the lowercased word tokens of a text.
func Words(text string) []string {
	return wordRe.FindAllString(strings.ToLower(text), -1)
}

// CountHashtags returns the number of #tag tokens in a text.
func CountHashtags(text string) int {
	return len(hashtagRe.FindAllString(text, -1))
}

// HasLink reports whether the text contains a URL.
func HasLink(text string) bool {
	return linkRe.MatchString(text)
}
