package formatter

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"
	"unicode"
)

// newTable returns a tabwriter with kubectl style spacing
func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
}

// writeTimestamp prints the scan timestamp and duration
func writeTimestamp(w io.Writer, scanStartTime time.Time, scanDuration time.Duration) {
	fmt.Fprintf(w, "Scan completed at %s (took %.2fs)\n",
		scanStartTime.Format("2006-01-02 15:04:05"), scanDuration.Seconds())
}

// orDash replaces empty cells with "-"
func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// runeWidth is 2 for CJK characters and 1 otherwise
func runeWidth(r rune) int {
	if r >= 128 && (unicode.Is(unicode.Han, r) ||
		unicode.Is(unicode.Hangul, r) ||
		unicode.Is(unicode.Hiragana, r) ||
		unicode.Is(unicode.Katakana, r)) {
		return 2
	}
	return 1
}

// truncateString shortens s to at most maxWidth display columns, marking the
// cut with "..."
func truncateString(s string, maxWidth int) string {
	width := 0
	for _, r := range s {
		width += runeWidth(r)
	}
	if width <= maxWidth {
		return s
	}

	limit := maxWidth - 3
	width = 0
	for i, r := range s {
		if width+runeWidth(r) > limit {
			return s[:i] + "..."
		}
		width += runeWidth(r)
	}
	return s
}
