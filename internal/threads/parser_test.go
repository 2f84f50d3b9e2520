package threads

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse_SlashMarkers(t *testing.T) {
	raw := "1/3 first\n2/3 second\n3/3 third"
	assert.Equal(t, []string{"first", "second", "third"}, Parse(raw))
}

func TestParse_DotMarkers(t *testing.T) {
	raw := "1. opening point\n2. supporting point\n3. closing point"
	assert.Equal(t, []string{"opening point", "supporting point", "closing point"}, Parse(raw))
}

func TestParse_ParenMarkers(t *testing.T) {
	raw := "1) first idea\n\n2) second idea"
	assert.Equal(t, []string{"first idea", "second idea"}, Parse(raw))
}

func TestParse_MultilineSegments(t *testing.T) {
	raw := "1/2 first line\ncontinues here\n2/2 second segment"
	assert.Equal(t, []string{"first line continues here", "second segment"}, Parse(raw))
}

func TestParse_ParagraphFallback(t *testing.T) {
	raw := "First paragraph without numbering.\n\nSecond paragraph without numbering."
	got := Parse(raw)
	assert.Equal(t, []string{
		"First paragraph without numbering.",
		"Second paragraph without numbering.",
	}, got)
}

func TestParse_LongTextChunked(t *testing.T) {
	sentence := "This is a sentence that keeps the thread moving along nicely."
	raw := strings.TrimSpace(strings.Repeat(sentence+" ", 12))

	got := Parse(raw)
	assert.GreaterOrEqual(t, len(got), 2)
	for _, segment := range got {
		assert.NotEmpty(t, segment)
		assert.LessOrEqual(t, len(segment), 400)
	}
}

func TestParse_SingleShortText(t *testing.T) {
	assert.Equal(t, []string{"just one post"}, Parse("just one post"))
}

func TestIsMarkerLine(t *testing.T) {
	tests := []struct {
		line     string
		expected bool
	}{
		{"1/5 hello", true},
		{"2. hello", true},
		{"3) hello", true},
		{"10/12 hello", true},
		{"hello world", false},
		{"", false},
		{"2024 was a big year for signed releases", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, isMarkerLine(tt.line), "isMarkerLine(%q)", tt.line)
	}
}

func TestStripMarker(t *testing.T) {
	assert.Equal(t, "hello", stripMarker("1/5 hello"))
	assert.Equal(t, "hello", stripMarker("1: hello"))
	assert.Equal(t, "", stripMarker("1/"))
}
