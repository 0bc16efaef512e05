package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

const resetStyle = "\x1b[0m"

// overlay draws fg over bg with its top-left cell at (x, y). Parts of fg
// outside a known width/height are clipped; with a non-positive width or
// height that dimension is unbounded and bg grows to fit.
func overlay(bg, fg string, x, y, width, height int) string {
	if fg == "" {
		return bg
	}
	bgLines := strings.Split(bg, "\n")
	fgLines := strings.Split(fg, "\n")

	for i, line := range fgLines {
		row := y + i
		if row < 0 {
			continue
		}
		if height > 0 && row >= height {
			break
		}
		for row >= len(bgLines) {
			bgLines = append(bgLines, "")
		}

		col := x
		if col < 0 {
			line = ansi.TruncateLeft(line, -col, "")
			col = 0
		}
		if width > 0 {
			avail := width - col
			if avail <= 0 {
				continue
			}
			if ansi.StringWidth(line) > avail {
				line = ansi.Truncate(line, avail, "")
			}
		}
		if line == "" {
			continue
		}

		base := bgLines[row]
		baseW := ansi.StringWidth(base)
		left := ansi.Truncate(base, col, "")
		if baseW < col {
			left += strings.Repeat(" ", col-baseW)
		}
		var right string
		if end := col + ansi.StringWidth(line); baseW > end {
			right = ansi.TruncateLeft(base, end, "")
		}
		bgLines[row] = left + resetStyle + line + resetStyle + right
	}
	return strings.Join(bgLines, "\n")
}
