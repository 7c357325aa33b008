package cli

import (
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/yken-tsuru/ganttx/internal/cli/formatter"
	"github.com/yken-tsuru/ganttx/internal/config"
	"github.com/yken-tsuru/ganttx/internal/engine"
	"github.com/yken-tsuru/ganttx/internal/redmine"
	"github.com/yken-tsuru/ganttx/internal/repository"
)

// App holds everything the commands and the chart TUI need.
type App struct {
	Config   *config.Config
	Client   *redmine.Client
	Settings repository.SettingsRepo
	Journal  repository.JournalRepo
	// Edits receives every write attempt; usually a bounded journal over
	// Journal's table.
	Edits  engine.Journal
	Logger *slog.Logger

	// Connect builds Client once flags are parsed. Nil keeps Client as is.
	Connect func(cfg *config.Config) (*redmine.Client, error)

	// IsInteractive reports whether stdin is a terminal. Nil means no.
	IsInteractive func() bool
	// Now is the clock used for "today"; nil means time.Now.
	Now func() time.Time
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.New(slog.DiscardHandler)
}

// committer builds the fetch-then-patch writer. One-shot commands are
// silent: there is no chart to reload.
func (a *App) committer(silent bool) *engine.Committer {
	return engine.NewCommitter(a.Client, a.Edits, a.Config.Strings, engine.SubmitOptions{Silent: silent}, a.logger())
}

// NewRootCmd creates the top-level "ganttx" command and registers all
// subcommands against the provided App. Without a subcommand it opens the
// chart.
func NewRootCmd(app *App) *cobra.Command {
	var (
		parent  int
		noColor bool
	)

	root := &cobra.Command{
		Use:           "ganttx",
		Short:         "Interactive Gantt chart editor for Redmine",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if noColor {
				formatter.DisableColor()
			}
			if app.Client != nil || app.Connect == nil {
				return nil
			}
			client, err := app.Connect(app.Config)
			if err != nil {
				return err
			}
			app.Client = client
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChart(cmd, app, parent)
		},
	}

	root.PersistentFlags().StringVar(&app.Config.Project, "project", app.Config.Project, "Redmine project identifier")
	root.PersistentFlags().IntVar(&app.Config.Zoom, "zoom", app.Config.Zoom, "Zoom level 1-4")
	root.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	root.Flags().IntVar(&parent, "parent", 0, "Show only this issue and its descendants")

	root.AddCommand(
		newChartCmd(app),
		newListCmd(app),
		newShowCmd(app),
		newShiftCmd(app),
		newResizeCmd(app),
		newReparentCmd(app),
		newEditCmd(app),
		newModeCmd(app),
		newLogCmd(app),
		newConfigCmd(app),
	)

	return root
}
