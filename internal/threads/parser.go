// Package threads segments raw generated text into an ordered list of thread
// posts. LLMs number threads inconsistently ("1/5", "1)", "1."), so parsing
// is tolerant: marker detection first, then a chain of fallbacks that
// guarantees at least one non-empty segment for any non-empty input.
package threads

import "strings"

// Parse converts raw generated text into ordered thread segments.
func Parse(raw string) []string {
	lines := strings.Split(raw, "\n")
	var segments []string
	var current []string

	flush := func() {
		if len(current) > 0 {
			segments = append(segments, strings.TrimSpace(strings.Join(current, " ")))
			current = nil
		}
	}

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			flush()
			continue
		}

		if isMarkerLine(line) {
			flush()
			text := stripMarker(line)
			if text != "" {
				current = []string{text}
			} else {
				current = nil
			}
			continue
		}

		current = append(current, line)
	}
	flush()

	// Drop empties left behind by bare markers.
	var cleaned []string
	for _, segment := range segments {
		if segment != "" {
			cleaned = append(cleaned, segment)
		}
	}
	segments = cleaned

	if len(segments) < 2 {
		segments = fallbackSplit(raw, segments)
	}

	return segments
}

// isMarkerLine reports whether a line looks like a numbered thread marker:
// it starts with a digit and one of "/", ")", "." appears within the first
// six characters.
func isMarkerLine(line string) bool {
	if line == "" || line[0] < '0' || line[0] > '9' {
		return false
	}
	head := line
	if len(head) > 6 {
		head = head[:6]
	}
	return strings.ContainsAny(head, "/).")
}

// stripMarker removes the numbering prefix: everything up to and including
// the first space, colon, or hyphen after position 0.
func stripMarker(line string) string {
	markerEnd := len(line)
	for i, char := range line {
		if i > 0 && (char == ' ' || char == ':' || char == '-') {
			markerEnd = i + 1
			break
		}
	}
	return strings.TrimSpace(line[markerEnd:])
}

// fallbackSplit recovers segments when marker parsing produced fewer than
// two: paragraphs first, then sentence-based chunking for long text, and
// finally the whole trimmed text as a single segment.
func fallbackSplit(raw string, segments []string) []string {
	var paragraphs []string
	for _, paragraph := range strings.Split(raw, "\n\n") {
		if trimmed := strings.TrimSpace(paragraph); trimmed != "" {
			paragraphs = append(paragraphs, trimmed)
		}
	}
	if len(paragraphs) > 1 {
		return paragraphs
	}

	text := strings.TrimSpace(raw)
	if len(text) > 400 {
		if chunks := chunkSentences(text); len(chunks) > 0 {
			return chunks
		}
	}

	if len(segments) == 0 {
		return []string{text}
	}
	return segments
}

// chunkSentences splits text at sentence boundaries into chunks of roughly
// 260 characters, capped at 10 chunks. The ". " substitution is knowingly
// naive about abbreviations and decimals.
func chunkSentences(text string) []string {
	sentences := strings.Split(strings.ReplaceAll(text, ". ", ".\n"), "\n")

	var chunks []string
	var current []string
	currentLength := 0

	for _, sentence := range sentences {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}
		sentenceLength := len(sentence) + 1

		if currentLength+sentenceLength > 260 && len(current) > 0 {
			chunks = append(chunks, strings.Join(current, " "))
			current = []string{sentence}
			currentLength = len(sentence)
		} else {
			current = append(current, sentence)
			currentLength += sentenceLength
		}
	}
	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, " "))
	}

	if len(chunks) > 10 {
		chunks = chunks[:10]
	}
	return chunks
}
