package llm

import "strings"

// StripFences removes a surrounding markdown code fence from a model
// response. Models occasionally wrap plain-text output in ``` blocks even
// when asked not to; unwrapped text is returned unchanged.
func StripFences(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") || !strings.HasSuffix(trimmed, "```") {
		return trimmed
	}

	inner := strings.TrimSuffix(strings.TrimPrefix(trimmed, "```"), "```")

	// The opening fence may carry a language tag on its own line.
	if newline := strings.IndexByte(inner, '\n'); newline >= 0 {
		firstLine := strings.TrimSpace(inner[:newline])
		if firstLine != "" && !strings.ContainsAny(firstLine, " \t") && len(firstLine) <= 16 {
			inner = inner[newline+1:]
		}
	}

	return strings.TrimSpace(inner)
}
