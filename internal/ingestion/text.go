package ingestion

import (
	"regexp"
	"strings"
)

var (
	multiSpace   = regexp.MustCompile(`[ \t\f\v\x{00A0}]+`)
	excessBlanks = regexp.MustCompile(`\n{3,}`)
)

// CleanText normalizes line endings, collapses runs of spaces inside lines,
// and keeps at most one blank line between blocks. Bullet markers and line
// order are preserved so section headers stay on their own lines.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = strings.ReplaceAll(content, "\u200b", "")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(multiSpace.ReplaceAllString(line, " "))
	}

	content = excessBlanks.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(content)
}
