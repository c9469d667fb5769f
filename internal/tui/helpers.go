package tui

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
)

// barWidth is the number of cells in a profile stat bar.
const barWidth = 20

// truncStr truncates a string to maxLen runes, appending an ellipsis if needed.
func truncStr(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen-1]) + "…"
}

// formatCount renders n with thousands separators, e.g. 12,345.
func formatCount(n int) string {
	return humanize.Comma(int64(n))
}

// formatUpdated renders a repository update time, e.g. "Updated Jan 2, 2006".
func formatUpdated(t time.Time) string {
	if t.IsZero() {
		return "Updated never"
	}
	return "Updated " + t.Format("Jan 2, 2006")
}

// renderBar draws a fixed-width bar filled to ratio (0..1).
// An unfilled bar draws only the empty track.
func renderBar(ratio float64, filled bool) string {
	n := 0
	if filled {
		n = int(ratio*barWidth + 0.5)
	}
	n = max(0, min(n, barWidth))
	return barFillStyle.Render(strings.Repeat("█", n)) + barEmptyStyle.Render(strings.Repeat("░", barWidth-n))
}

// centerLine left-pads s so it sits centered within width.
func centerLine(s string, width, sWidth int) string {
	pad := (width - sWidth) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad) + s
}
