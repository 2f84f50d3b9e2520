package generation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/voice-agent/internal/types"
)

// FormatVoiceProfile renders a voice profile as prompt-ready text describing
// how the user writes.
func FormatVoiceProfile(profile *types.VoiceProfile) string {
	var parts []string
	parts = append(parts, fmt.Sprintf("USER: @%s", profile.Handle))
	parts = append(parts, fmt.Sprintf("WRITING STYLE: %s", profile.WritingStyle))
	parts = append(parts, fmt.Sprintf("TONE: %s", profile.Tone))

	styleLower := strings.ToLower(profile.WritingStyle)
	if strings.Contains(styleLower, "lowercase") || strings.Contains(styleLower, "casual") {
		parts = append(parts, "CAPITALIZATION: Primarily lowercase/sentence case")
	} else {
		parts = append(parts, "CAPITALIZATION: Standard capitalization (observe their patterns)")
	}

	if len(profile.CommonTopics) > 0 {
		parts = append(parts, fmt.Sprintf("COMMON TOPICS: %s", strings.Join(profile.CommonTopics, ", ")))
	}
	if profile.AverageLength > 0 {
		parts = append(parts, fmt.Sprintf("AVERAGE POST LENGTH: %d characters", profile.AverageLength))
	}

	if len(profile.TagUsage) > 0 {
		if profile.TotalTagUses() < 5 {
			parts = append(parts, "HASHTAG USAGE: Rarely uses hashtags - DO NOT include hashtags in generated content")
		} else {
			parts = append(parts, fmt.Sprintf("COMMON HASHTAGS: %s (use sparingly, only if user frequently uses them)",
				strings.Join(topTags(profile.TagUsage, 5), ", ")))
		}
	} else {
		parts = append(parts, "HASHTAG USAGE: Does not use hashtags - DO NOT include hashtags")
	}

	return strings.Join(parts, "\n")
}

// topTags returns up to limit tags ordered by usage count, ties broken by name
// for stable output.
func topTags(usage map[string]int, limit int) []string {
	tags := make([]string, 0, len(usage))
	for tag := range usage {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool {
		if usage[tags[i]] != usage[tags[j]] {
			return usage[tags[i]] > usage[tags[j]]
		}
		return tags[i] < tags[j]
	})
	if len(tags) > limit {
		tags = tags[:limit]
	}
	return tags
}
