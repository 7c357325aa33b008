package formatter

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	mdMu sync.Mutex
	// Renderers keyed by style and wrap width. Building one is costly.
	mdRenderers = map[string]*glamour.TermRenderer{}
)

// RenderMarkdown renders an issue description for the terminal, wrapped to
// width. The style follows the lipgloss color profile and never queries the
// terminal. On a renderer error the source text is returned as is.
func RenderMarkdown(md string, width int) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	width = max(width, 10)

	style := markdownStyle()
	key := fmt.Sprintf("%s:%d", style, width)

	mdMu.Lock()
	r := mdRenderers[key]
	if r == nil {
		var err error
		r, err = glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			mdMu.Unlock()
			return md
		}
		mdRenderers[key] = r
	}
	mdMu.Unlock()

	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

func markdownStyle() string {
	if lipgloss.ColorProfile() == termenv.Ascii {
		return styles.NoTTYStyle
	}
	return styles.DarkStyle
}

// DisableColor forces plain output for every style in this package and
// for markdown.
func DisableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
}
