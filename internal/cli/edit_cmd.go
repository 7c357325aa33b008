package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yken-tsuru/ganttx/internal/cli/formatter"
	"github.com/yken-tsuru/ganttx/internal/domain"
	"github.com/yken-tsuru/ganttx/internal/engine"
	"github.com/yken-tsuru/ganttx/internal/redmine"
)

func newShiftCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "shift <issue-id> <days>",
		Short: "Move an issue's start and due dates by a number of days",
		Example: `  ganttx shift 12 3
  ganttx shift 12 -- -2`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIssueID(args[0])
			if err != nil {
				return err
			}
			days, err := parseDays(args[1])
			if err != nil {
				return err
			}
			res := withSpinner(app, cmd.ErrOrStderr(), func() engine.Result {
				return app.committer(true).Shift(cmdContext(cmd), id, days)
			})
			return reportResult(cmd.OutOrStdout(), res)
		},
	}
}

func newResizeCmd(app *App) *cobra.Command {
	var edge string

	cmd := &cobra.Command{
		Use:   "resize <issue-id> <days>",
		Short: "Move one bound of an issue by a number of days",
		Example: `  ganttx resize 12 2
  ganttx resize 12 --edge start -- -1`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIssueID(args[0])
			if err != nil {
				return err
			}
			days, err := parseDays(args[1])
			if err != nil {
				return err
			}
			var field domain.Field
			switch strings.ToLower(edge) {
			case "start", "left":
				field = domain.FieldStartDate
			case "due", "right":
				field = domain.FieldDueDate
			default:
				return fmt.Errorf("invalid --edge %q (want start or due)", edge)
			}
			res := withSpinner(app, cmd.ErrOrStderr(), func() engine.Result {
				return app.committer(true).SetBound(cmdContext(cmd), id, field, days)
			})
			return reportResult(cmd.OutOrStdout(), res)
		},
	}

	cmd.Flags().StringVar(&edge, "edge", "due", "Bound to move: start or due")
	return cmd
}

func newReparentCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reparent <issue-id> <parent-id|none>",
		Short: "Change an issue's parent",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIssueID(args[0])
			if err != nil {
				return err
			}
			parent := 0
			if !strings.EqualFold(args[1], "none") {
				if parent, err = parseIssueID(args[1]); err != nil {
					return err
				}
			}
			if parent == id {
				return fmt.Errorf("an issue cannot be its own parent")
			}
			ctx := cmdContext(cmd)

			if !yes {
				prompt, err := reparentPrompt(ctx, app, id, parent)
				if err != nil {
					return err
				}
				ok, err := confirmReparent(cmd, app, prompt)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Cancelled."))
					return nil
				}
			}

			res := withSpinner(app, cmd.ErrOrStderr(), func() engine.Result {
				return app.committer(true).Reparent(ctx, id, parent)
			})
			return reportResult(cmd.OutOrStdout(), res)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

// reparentPrompt builds the confirmation text from both issues' labels.
func reparentPrompt(ctx context.Context, app *App, id, parent int) (string, error) {
	strs := app.Config.Strings.WithDefaults()
	child, err := app.Client.FetchSchedule(ctx, id)
	if err != nil {
		return "", err
	}
	target := strs.LabelNone
	if parent > 0 {
		p, err := app.Client.FetchSchedule(ctx, parent)
		if err != nil {
			return "", err
		}
		target = p.Label()
	}
	return strs.ConfirmParentText(child.Label(), target), nil
}

// confirmReparent asks with a huh form on a terminal and reads a y/N line
// otherwise. An aborted form counts as no.
func confirmReparent(cmd *cobra.Command, app *App, prompt string) (bool, error) {
	if !app.interactive() {
		return askYesNo(cmd.InOrStdin(), cmd.ErrOrStderr(), prompt+" [y/N] "), nil
	}
	var ok bool
	form := wizardConfirm(prompt, app.Config.Strings.WithDefaults().ButtonCancel, &ok)
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	return ok, nil
}

func newEditCmd(app *App) *cobra.Command {
	var (
		start, due     string
		done, assignee int
	)

	cmd := &cobra.Command{
		Use:   "edit <issue-id>",
		Short: "Set an issue's dates, progress or assignee",
		Long: `Set an issue's dates, progress or assignee in one update, as the
chart's quick-edit popup does. Unset flags keep the current value; pass an
empty date to clear it and --assignee 0 to unassign.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIssueID(args[0])
			if err != nil {
				return err
			}
			set := make(map[string]bool)
			cmd.LocalFlags().VisitAll(func(f *pflag.Flag) {
				if f.Changed {
					set[f.Name] = true
				}
			})
			if len(set) == 0 {
				return fmt.Errorf("nothing to change: pass --start, --due, --done or --assignee")
			}
			for _, d := range []string{start, due} {
				if err := validateOptionalDate(d); err != nil {
					return fmt.Errorf("invalid date %q: %w", d, err)
				}
			}
			if done < 0 || done > 100 || done%10 != 0 {
				return fmt.Errorf("invalid --done %d (want 0-100 in steps of 10)", done)
			}

			ctx := cmdContext(cmd)
			item, err := app.Client.FetchSchedule(ctx, id)
			if err != nil {
				if redmine.IsNotFound(err) {
					return fmt.Errorf("issue #%d not found", id)
				}
				return err
			}

			fields := engine.QuickEditFields{
				StartDate:  item.StartDate,
				DueDate:    item.DueDate,
				DoneRatio:  item.DoneRatio,
				AssigneeID: item.AssigneeID,
			}
			if set["start"] {
				fields.StartDate = start
			}
			if set["due"] {
				fields.DueDate = due
			}
			if set["done"] {
				fields.DoneRatio = done
			}
			if set["assignee"] {
				fields.AssigneeID = assignee
			}

			res := withSpinner(app, cmd.ErrOrStderr(), func() engine.Result {
				return app.committer(true).QuickEdit(ctx, id, fields)
			})
			return reportResult(cmd.OutOrStdout(), res)
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD, empty clears)")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD, empty clears)")
	cmd.Flags().IntVar(&done, "done", 0, "Done ratio (0-100, step 10)")
	cmd.Flags().IntVar(&assignee, "assignee", 0, "Assignee user id (0 unassigns)")
	return cmd
}

func parseDays(s string) (int, error) {
	days, err := strconv.Atoi(strings.TrimSuffix(s, "d"))
	if err != nil {
		return 0, fmt.Errorf("invalid day count %q", s)
	}
	return days, nil
}

// withSpinner runs fn with the catalog's busy message spinning on
// interactive terminals.
func withSpinner(app *App, w io.Writer, fn func() engine.Result) engine.Result {
	if app.interactive() {
		stop := formatter.StartSpinner(w, app.Config.Strings.WithDefaults().Loading)
		defer stop()
	}
	return fn()
}

// reportResult prints a successful write or turns a failed one into the
// command's error.
func reportResult(w io.Writer, res engine.Result) error {
	if res.Err != nil {
		if res.Outcome.Notice != "" {
			return errors.New(res.Outcome.Notice)
		}
		return res.Err
	}
	if len(res.Patch) == 0 {
		fmt.Fprint(w, formatter.FormatPatch(res.ItemID, res.Patch))
		return nil
	}
	fmt.Fprint(w, formatter.OutcomeIndicator(domain.OutcomeApplied)+"  "+formatter.FormatPatch(res.ItemID, res.Patch))
	return nil
}
