package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/yken-tsuru/ganttx/internal/cli/formatter"
	"github.com/yken-tsuru/ganttx/internal/domain"
	"github.com/yken-tsuru/ganttx/internal/engine"
	"github.com/yken-tsuru/ganttx/internal/timescale"
)

// ganttxHuhTheme returns a custom huh theme using the existing Gruvbox palette.
func ganttxHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.NextIndicator = lipgloss.NewStyle().Foreground(formatter.ColorHeader).MarginLeft(1)
	t.Focused.PrevIndicator = lipgloss.NewStyle().Foreground(formatter.ColorHeader).MarginRight(1)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// validateOptionalDate accepts empty or a YYYY-MM-DD date string.
func validateOptionalDate(s string) error {
	if s == "" {
		return nil
	}
	if _, err := timescale.ParseDate(s); err != nil {
		return fmt.Errorf("use YYYY-MM-DD format")
	}
	return nil
}

// quickEditValues are the form bindings of the quick-edit popup.
type quickEditValues struct {
	StartDate  string
	DueDate    string
	DoneRatio  int
	AssigneeID int
	Save       bool
}

func newQuickEditValues(p *engine.Popup) *quickEditValues {
	return &quickEditValues{
		StartDate:  p.Fields.StartDate,
		DueDate:    p.Fields.DueDate,
		DoneRatio:  p.Fields.DoneRatio,
		AssigneeID: p.Fields.AssigneeID,
		Save:       true,
	}
}

func (v *quickEditValues) fields() engine.QuickEditFields {
	return engine.QuickEditFields{
		StartDate:  v.StartDate,
		DueDate:    v.DueDate,
		DoneRatio:  v.DoneRatio,
		AssigneeID: v.AssigneeID,
	}
}

// wizardQuickEdit creates the quick-edit form for popup p. Enter walks the
// fields; the last one saves or cancels.
func wizardQuickEdit(p *engine.Popup, s domain.Strings, v *quickEditValues) *huh.Form {
	done := make([]huh.Option[int], 0, len(p.DoneOptions))
	for _, r := range p.DoneOptions {
		done = append(done, huh.NewOption(strconv.Itoa(r)+"%", r))
	}
	assignees := make([]huh.Option[int], 0, len(p.AssigneeOptions))
	for _, r := range p.AssigneeOptions {
		assignees = append(assignees, huh.NewOption(r.Name, r.ID))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(s.LabelStartDate).
				Placeholder("YYYY-MM-DD").
				Value(&v.StartDate).
				Validate(validateOptionalDate),
			huh.NewInput().
				Title(s.LabelDueDate).
				Placeholder("YYYY-MM-DD").
				Value(&v.DueDate).
				Validate(validateOptionalDate),
			huh.NewSelect[int]().
				Title(s.LabelDoneRatio).
				Options(done...).
				Inline(true).
				Value(&v.DoneRatio),
			huh.NewSelect[int]().
				Title(s.LabelAssignee).
				Options(assignees...).
				Inline(true).
				Value(&v.AssigneeID),
			huh.NewConfirm().
				Affirmative(s.ButtonSave).
				Negative(s.ButtonCancel).
				Value(&v.Save),
		),
	).WithTheme(ganttxHuhTheme()).WithShowHelp(false).WithWidth(p.Width - 4)
}

// wizardConfirm creates a huh form for a yes/no confirmation. The
// affirmative answer is preselected.
func wizardConfirm(title, cancel string, result *bool) *huh.Form {
	*result = true
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("OK").
				Negative(cancel).
				Value(result),
		),
	).WithTheme(ganttxHuhTheme()).WithShowHelp(false)
}
