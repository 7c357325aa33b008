package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/yken-tsuru/ganttx/internal/cli/formatter"
)

func newChartCmd(app *App) *cobra.Command {
	var parent int

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Open the interactive chart (default command)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChart(cmd, app, parent)
		},
	}

	cmd.Flags().IntVar(&parent, "parent", 0, "Show only this issue and its descendants")
	return cmd
}

// mouseCapable reports whether the terminal can deliver pointer events.
// Without them the chart is rendered read-only.
func mouseCapable() bool {
	term := os.Getenv("TERM")
	return term != "" && term != "dumb"
}

// runChart opens the chart TUI, or prints the chart once when the session
// is not interactive.
func runChart(cmd *cobra.Command, app *App, parent int) error {
	if app.Config.Project == "" {
		return fmt.Errorf("no project configured: pass --project or set project in %s", configHint())
	}

	ctx := cmdContext(cmd)

	if !app.interactive() {
		app.logger().Warn("drag editing disabled", "reason", "not a terminal")
		p, err := app.loadPage(ctx, pageRequest{Zoom: app.Config.Zoom, ParentIssueID: parent})
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprint(out, renderStatic(p.Chart, app.Config.Project))
		if p.Chart.Truncated {
			fmt.Fprintln(out, formatter.StyleYellow.Render(fmt.Sprintf("Showing the first %d issues.", app.Config.MaxRows)))
		}
		return nil
	}

	mouse := mouseCapable()
	if !mouse {
		app.logger().Warn("drag editing disabled", "reason", "terminal reports no pointer support")
	}

	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	model := newAppModel(ctx, app, chartOptions{ParentIssueID: parent, Mouse: mouse})
	_, err := tea.NewProgram(model, opts...).Run()
	return err
}

func configHint() string {
	return "the config file (ganttx config init)"
}
