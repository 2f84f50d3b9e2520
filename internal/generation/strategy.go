package generation

import "github.com/jonathan/voice-agent/internal/types"

// baseEngagementStrategy captures ranking-signal guidance shared by all
// content types.
const baseEngagementStrategy = `Optimize for ranking signals while avoiding engagement bait.
- Maximize positive actions: like, reply, repost, share, click, profile click, follow, and dwell.
- Minimize negative actions: hide/not-interested, mute, block, report.
- Make it shareable: deliver a clear takeaway, framework, list, or counterintuitive insight.
- Make it reply-worthy: a strong opinion or specific prompt (no "like/RT if" bait).
- Increase dwell: strong opening line, short lines, and structured flow.
- Avoid spam patterns: excessive hashtags/mentions, ALL CAPS, clickbait, or unsafe content.
`

// EngagementStrategy returns tailored engagement guidance for the content type.
func EngagementStrategy(contentType types.ContentType) string {
	switch contentType {
	case types.ContentTypeThread:
		return baseEngagementStrategy +
			"- Thread-specific: hook hard in post 1, keep clear transitions, and make each post substantial."
	case types.ContentTypeReply, types.ContentTypeQuote:
		return baseEngagementStrategy +
			"- Reply/quote-specific: add a unique angle, avoid rephrasing, and prefer strong statements over questions."
	default:
		return baseEngagementStrategy +
			"- Single post: one clear idea, concise phrasing, and a natural conversational pull."
	}
}
