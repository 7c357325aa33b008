package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderDoneRatio renders an issue's done ratio as a bar like
// [████░░░░]  40%. Complete issues are green, started ones yellow and
// untouched ones dim.
func RenderDoneRatio(ratio int, width int) string {
	ratio = min(max(ratio, 0), 100)
	width = max(width, 2)

	filled := min(ratio*width/100, width)
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleYellow
	switch {
	case ratio == 100:
		style = StyleGreen
	case ratio == 0:
		style = StyleDim
	}
	return fmt.Sprintf("[%s] %3d%%", style.Render(bar), ratio)
}
