package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/yken-tsuru/ganttx/internal/cli/formatter"
)

// panelResult is how a hosted form ended.
type panelResult int

const (
	panelOpen panelResult = iota
	panelCompleted
	panelCancelled
)

// formPanel hosts a huh.Form in a bordered overlay. Escape cancels it.
type formPanel struct {
	form  *huh.Form
	title string
	width int
	// x, y place the panel; centered panels ignore them.
	x, y     int
	centered bool
}

func newFormPanel(title string, form *huh.Form, width int) *formPanel {
	return &formPanel{form: form, title: title, width: width}
}

func (p *formPanel) Init() tea.Cmd {
	return p.form.Init()
}

// Update forwards msg to the form and reports whether it finished.
func (p *formPanel) Update(msg tea.Msg) (tea.Cmd, panelResult) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return nil, panelCancelled
	}

	form, cmd := p.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		p.form = f
	}

	switch p.form.State {
	case huh.StateCompleted:
		return cmd, panelCompleted
	case huh.StateAborted:
		return cmd, panelCancelled
	}
	return cmd, panelOpen
}

func (p *formPanel) View() string {
	return formatter.RenderPanel(p.title, p.form.View(), p.width, formatter.ColorHeader)
}

// overlayOn places the panel on screen lines.
func (p *formPanel) overlayOn(lines []string, screenWidth int) []string {
	box := p.View()
	if p.centered {
		return centerOverlay(lines, box, screenWidth)
	}
	x := p.x
	if w := lipgloss.Width(box); x+w > screenWidth {
		x = max(screenWidth-w, 0)
	}
	return placeOverlay(lines, box, x, p.y)
}
