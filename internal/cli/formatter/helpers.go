package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		inner := titleRendered + "\n\n" + content
		return boxStyle.Render(inner)
	}

	return boxStyle.Render(content)
}

// RenderPanel is a compact box for overlays: no vertical padding and a
// fixed outer width.
func RenderPanel(title string, content string, width int, border lipgloss.Color) string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		PaddingLeft(1).
		PaddingRight(1)
	if width > 4 {
		style = style.Width(width - 2)
	}
	if title != "" {
		content = StyleHeader.Render(title) + "\n" + content
	}
	return style.Render(content)
}

// HumanDate returns a human-friendly absolute date string.
func HumanDate(t time.Time) string {
	now := time.Now()
	y1, m1, d1 := now.Date()
	y2, m2, d2 := t.Date()

	if y1 == y2 && m1 == m2 && d1 == d2 {
		return "Today"
	}
	yesterday := now.AddDate(0, 0, -1)
	y3, m3, d3 := yesterday.Date()
	if y2 == y3 && m2 == m3 && d2 == d3 {
		return "Yesterday"
	}
	return t.Format("Jan 2, 2006")
}

// HumanTimestamp returns a human-friendly relative timestamp string.
func HumanTimestamp(t time.Time) string {
	now := time.Now()
	diff := now.Sub(t)

	switch {
	case diff < 0:
		return HumanDate(t)
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	default:
		return HumanDate(t)
	}
}

// SignedDays renders a day delta such as "+3d" or "-1d".
func SignedDays(days int) string {
	if days > 0 {
		return fmt.Sprintf("+%dd", days)
	}
	return fmt.Sprintf("%dd", days)
}

// DateOrDash returns s, or a dim dash when s is empty.
func DateOrDash(s string) string {
	if s == "" {
		return StyleDim.Render("—")
	}
	return s
}

// DateRange renders "start → due" with dashes for absent bounds.
func DateRange(start, due string) string {
	return DateOrDash(start) + " → " + DateOrDash(due)
}
