package telegram

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitMessageShortTextIsUntouched(t *testing.T) {
	parts := SplitMessage("hello", 100)
	assert.Equal(t, []string{"hello"}, parts)
}

func TestSplitMessageRespectsMaxLen(t *testing.T) {
	text := strings.Repeat("a", 250)
	parts := SplitMessage(text, 100)

	require.Len(t, parts, 3)
	for _, p := range parts[:2] {
		assert.Len(t, p, 100)
	}
	assert.Equal(t, text, strings.Join(parts, ""))
}

func TestSplitMessagePrefersNewlines(t *testing.T) {
	// A newline in the second half of the chunk becomes the split point
	text := strings.Repeat("a", 80) + "\n" + strings.Repeat("b", 80)
	parts := SplitMessage(text, 100)

	require.Len(t, parts, 2)
	assert.True(t, strings.HasSuffix(parts[0], "\n"))
	assert.Equal(t, strings.Repeat("b", 80), parts[1])
}

func TestFixMarkdownClosesCodeBlock(t *testing.T) {
	fixed := FixMarkdown("```go\nfunc main() {}")
	assert.Equal(t, 0, strings.Count(fixed, "```")%2)
}

func TestFixMarkdownClosesInlineCode(t *testing.T) {
	fixed := FixMarkdown("use `foo to do it")
	assert.Equal(t, 0, strings.Count(fixed, "`")%2)
}

func TestFixMarkdownLeavesBalancedTextAlone(t *testing.T) {
	text := "use `foo` inside ```\ncode\n```"
	assert.Equal(t, text, FixMarkdown(text))
}
