package strings

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// DefaultSummaryWidth is the display width summaries are cut to in command
// listings and completion hints.
const DefaultSummaryWidth = 60

// MinTruncateWidth is the smallest width Truncate honours; anything below
// leaves no room for content plus the ellipsis.
const MinTruncateWidth = 4

const ellipsis = "..."

// Truncate collapses all whitespace runs (including newlines) into single
// spaces and cuts the result to at most width terminal cells, appending
// "..." when something was dropped. Width is measured in display cells, so
// wide runes count twice.
func Truncate(s string, width int) string {
	if width < MinTruncateWidth {
		width = MinTruncateWidth
	}

	s = strings.Join(strings.Fields(s), " ")
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, ellipsis)
}

// FirstLine returns the first non-blank line of s, trimmed.
func FirstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
