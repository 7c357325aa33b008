package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yken-tsuru/ganttx/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
	ColorBg     = lipgloss.Color("#3c3836")
)

// Predefined lipgloss styles.
var (
	StyleGreen      = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow     = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleYellowBold = lipgloss.NewStyle().Foreground(ColorYellow).Bold(true)
	StyleRed        = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue       = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple     = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim        = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg         = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader     = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold       = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
	StyleHighlight  = lipgloss.NewStyle().Foreground(ColorBg).Background(ColorYellow)
)

// Bar fragment styles.
var (
	StyleBarTodo = lipgloss.NewStyle().Foreground(ColorBlue)
	StyleBarLate = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBarDone = lipgloss.NewStyle().Foreground(ColorGreen)
)

// OutcomeColor returns the style for a journal outcome.
func OutcomeColor(o domain.EditOutcome) lipgloss.Style {
	switch o {
	case domain.OutcomeApplied:
		return StyleGreen
	case domain.OutcomeAbandoned:
		return StyleDim
	case domain.OutcomeValidation, domain.OutcomeFetch:
		return StyleYellow
	default:
		return StyleRed
	}
}

// OutcomeIndicator returns a colored outcome label such as "● applied".
func OutcomeIndicator(o domain.EditOutcome) string {
	return OutcomeColor(o).Render("● " + string(o))
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
