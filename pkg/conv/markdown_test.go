package conv

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarkdownToTelegramHTML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty answer", input: "", expected: ""},
		{name: "plain answer", input: "Opening hours are 9 to 5", expected: "Opening hours are 9 to 5\n"},
		{name: "emphasis kept", input: "**Yes** and *no*", expected: "<strong>Yes</strong> and <em>no</em>\n"},
		{name: "inline code kept", input: "run `faqbot serve`", expected: "run <code>faqbot serve</code>\n"},
		{name: "link kept", input: "[docs](https://example.com)", expected: "<a href=\"https://example.com\">docs</a>\n"},
		{name: "heading flattened", input: "# Billing", expected: "Billing\n"},
		{name: "script dropped", input: "<script>alert('xss')</script>", expected: "\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MarkdownToTelegramHTML([]byte(tt.input))
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestSplitMessage(t *testing.T) {
	t.Run("short text is a single chunk", func(t *testing.T) {
		assert.Equal(t, []string{"hello"}, SplitMessage("hello", 10))
	})

	t.Run("prefers newline boundaries", func(t *testing.T) {
		text := strings.Repeat("a", 6) + "\n" + strings.Repeat("b", 6)
		chunks := SplitMessage(text, 10)
		assert.Equal(t, []string{"aaaaaa", "bbbbbb"}, chunks)
	})

	t.Run("hard cut without newlines", func(t *testing.T) {
		chunks := SplitMessage(strings.Repeat("x", 25), 10)
		assert.Len(t, chunks, 3)
		for _, c := range chunks {
			assert.LessOrEqual(t, len(c), 10)
		}
	})
}
