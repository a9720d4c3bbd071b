package parse

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	markdownChars = strings.NewReplacer("**", "", "__", "", "~~", "", "`", "", "*", "", "_", "")
	numberPattern = regexp.MustCompile(`-?[\d.,]*\d`)
)

// splitLines splits free text on newlines, trims each line, and drops the
// empty ones. Embed values use multi-line strings as a stand-in for tables.
func splitLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

// stripMarkdown removes bold, italic, underline, strikethrough, inline-code
// markers, and stray asterisks from embed text.
func stripMarkdown(s string) string {
	return strings.TrimSpace(markdownChars.Replace(s))
}

// firstInt extracts the first integer-looking token from s, tolerating
// thousands separators and surrounding markup. Returns 0 when nothing
// numeric is present.
func firstInt(s string) int {
	m := numberPattern.FindString(stripMarkdown(s))
	if m == "" {
		return 0
	}
	m = strings.NewReplacer(",", "", ".", "").Replace(m)
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return n
}

// containsFold reports whether s contains substr, case-insensitively.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
