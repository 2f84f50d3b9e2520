package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripFences(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "no fence",
			text: "just a post about shipping",
			want: "just a post about shipping",
		},
		{
			name: "plain fence",
			text: "```\nthe actual post\n```",
			want: "the actual post",
		},
		{
			name: "fence with language tag",
			text: "```markdown\nthe actual post\n```",
			want: "the actual post",
		},
		{
			name: "fence with surrounding whitespace",
			text: "  ```\nthe actual post\n```  ",
			want: "the actual post",
		},
		{
			name: "first line with spaces is content",
			text: "```\nthis line has spaces\nsecond line\n```",
			want: "this line has spaces\nsecond line",
		},
		{
			name: "opening fence only",
			text: "```\nunterminated",
			want: "```\nunterminated",
		},
		{
			name: "empty",
			text: "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripFences(tt.text))
		})
	}
}
