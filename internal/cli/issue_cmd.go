package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/yken-tsuru/ganttx/internal/cli/formatter"
	"github.com/yken-tsuru/ganttx/internal/redmine"
)

// showRecentEdits is how many journal entries "show" lists.
const showRecentEdits = 5

func newListCmd(app *App) *cobra.Command {
	var parent int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the chart issues as a tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Config.Project == "" {
				return fmt.Errorf("no project configured: pass --project or set project in %s", configHint())
			}
			data, err := app.Client.ListChartIssues(cmdContext(cmd), redmine.ChartQuery{
				ProjectID:     app.Config.Project,
				ParentIssueID: parent,
				MaxRows:       app.Config.MaxRows,
			})
			if err != nil {
				return err
			}

			items := make([]formatter.TreeItem, len(data.Rows))
			for i, r := range data.Rows {
				items[i] = formatter.TreeItem{
					Title:  r.Item.Subject,
					ID:     r.Item.ID,
					Level:  r.Depth,
					Done:   r.Item.DoneRatio == 100,
					Detail: formatter.DateRange(r.Item.StartDate, r.Item.DueDate),
				}
			}
			formatter.MarkLastSiblings(items)

			out := cmd.OutOrStdout()
			fmt.Fprint(out, formatter.RenderTree(items))
			if data.Truncated {
				fmt.Fprintln(out, formatter.StyleYellow.Render(fmt.Sprintf("Showing the first %d issues.", app.Config.MaxRows)))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&parent, "parent", 0, "Show only this issue and its descendants")
	return cmd
}

func newShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <issue-id>",
		Short: "Show an issue's schedule and its recent edits",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIssueID(args[0])
			if err != nil {
				return err
			}
			ctx := cmdContext(cmd)

			item, err := app.Client.FetchSchedule(ctx, id)
			if err != nil {
				if redmine.IsNotFound(err) {
					return fmt.Errorf("issue #%d not found", id)
				}
				return err
			}

			recent, err := app.Journal.ListByIssue(ctx, id, showRecentEdits)
			if err != nil {
				app.logger().Warn("edit journal unavailable", "issue", id, "error", err)
				recent = nil
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatIssue(item, recent))
			return nil
		},
	}
}

// parseIssueID accepts "123" or "#123".
func parseIssueID(s string) (int, error) {
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid issue id %q", s)
	}
	return id, nil
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
