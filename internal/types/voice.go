package types

import "time"

// VoiceProfile captures the analyzed writing voice of an account.
// It is built once by voice analysis and treated as immutable afterwards;
// callers persist and reload it as a flat JSON file.
type VoiceProfile struct {
	Handle        string         `json:"handle"`
	WritingStyle  string         `json:"writing_style"`
	Tone          string         `json:"tone"`
	CommonTopics  []string       `json:"common_topics,omitempty"`
	TagUsage      map[string]int `json:"tag_usage,omitempty"`
	AverageLength int            `json:"average_length,omitempty"`
	// EngagementPatterns is produced by the analytics processor and passed
	// through opaquely; its shape is owned by that layer.
	EngagementPatterns map[string]any `json:"engagement_patterns,omitempty"`
	AnalyzedAt         time.Time      `json:"analyzed_at"`
}

// TotalTagUses returns the total number of hashtag occurrences recorded in
// the profile's history.
func (v *VoiceProfile) TotalTagUses() int {
	total := 0
	for _, count := range v.TagUsage {
		total += count
	}
	return total
}
