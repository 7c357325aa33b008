package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// placeOverlay splices box over base with its top-left corner at cell
// (x, y). Lines of base that are too short are padded; parts of box that
// fall outside base are dropped.
func placeOverlay(base []string, box string, x, y int) []string {
	out := append([]string(nil), base...)
	x = max(x, 0)
	for i, boxLine := range strings.Split(box, "\n") {
		row := y + i
		if row < 0 || row >= len(out) {
			continue
		}
		line := out[row]
		w := ansi.StringWidth(boxLine)
		if lw := ansi.StringWidth(line); lw < x {
			line += strings.Repeat(" ", x-lw)
		}
		left := ansi.Truncate(line, x, "")
		right := ansi.TruncateLeft(line, x+w, "")
		out[row] = left + boxLine + right
	}
	return out
}

// centerOverlay places box in the middle of base.
func centerOverlay(base []string, box string, width int) []string {
	bw := lipgloss.Width(box)
	bh := lipgloss.Height(box)
	return placeOverlay(base, box, (width-bw)/2, (len(base)-bh)/2)
}
