package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yken-tsuru/ganttx/internal/cli/formatter"
	"github.com/yken-tsuru/ganttx/internal/config"
	"github.com/yken-tsuru/ganttx/internal/domain"
	"github.com/yken-tsuru/ganttx/internal/repository"
)

func newModeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:       "mode [compact|standard]",
		Short:     "Show or set the chart header layout",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{string(domain.LayoutCompact), string(domain.LayoutStandard)},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmdContext(cmd)
			out := cmd.OutOrStdout()

			if len(args) == 0 {
				compact, err := app.Settings.GetBool(ctx, repository.CompactModeKey)
				if err != nil {
					return err
				}
				layout := domain.LayoutStandard
				if compact {
					layout = domain.LayoutCompact
				}
				fmt.Fprintf(out, "Header layout: %s\n", formatter.Bold(string(layout)))
				return nil
			}

			layout := domain.HeaderLayout(args[0])
			if layout != domain.LayoutCompact && layout != domain.LayoutStandard {
				return fmt.Errorf("invalid mode %q (want compact or standard)", args[0])
			}
			if err := app.Settings.SetBool(ctx, repository.CompactModeKey, layout.Compact()); err != nil {
				return err
			}
			fmt.Fprintf(out, "Header layout set to %s\n", formatter.Bold(string(layout)))
			return nil
		},
	}
}

func newLogCmd(app *App) *cobra.Command {
	var issue, limit int

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show the journal of recent edits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmdContext(cmd)
			var (
				records []*domain.EditRecord
				err     error
			)
			if issue > 0 {
				records, err = app.Journal.ListByIssue(ctx, issue, limit)
			} else {
				records, err = app.Journal.ListRecent(ctx, limit)
			}
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatEditLog(records))
			return nil
		},
	}

	cmd.Flags().IntVar(&issue, "issue", 0, "Only edits of this issue")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum entries to show")
	return cmd
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}
	cmd.AddCommand(newConfigInitCmd(), newConfigShowCmd(app))
	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var (
		force bool
		path  string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				path = config.GlobalPath()
			}
			if err := config.WriteDefault(path, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	cmd.Flags().StringVar(&path, "path", "", "Target file (default: the global config path)")
	return cmd
}

func newConfigShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := app.Config
			key := formatter.Dim("(unset)")
			if c.Server.APIKey != "" {
				key = "********"
			}
			rows := [][]string{
				{"server.url", c.Server.URL},
				{"server.api_key", key},
				{"server.timeout_ms", fmt.Sprint(c.Server.TimeoutMs)},
				{"project", c.Project},
				{"zoom", fmt.Sprint(c.Zoom)},
				{"max_rows", fmt.Sprint(c.MaxRows)},
				{"journal_retention", fmt.Sprint(c.JournalRetention)},
				{"db_path", c.DBPath},
				{"log_path", c.LogPath},
				{"log_calls", fmt.Sprint(c.LogCalls)},
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTable([]string{"KEY", "VALUE"}, rows))
			return nil
		},
	}
}
