package cli

import (
	"context"
	"fmt"

	"github.com/yken-tsuru/ganttx/internal/chart"
	"github.com/yken-tsuru/ganttx/internal/domain"
	"github.com/yken-tsuru/ganttx/internal/redmine"
	"github.com/yken-tsuru/ganttx/internal/repository"
	"github.com/yken-tsuru/ganttx/internal/timescale"
)

// pageRequest is what a chart load is parameterised by.
type pageRequest struct {
	Zoom          int
	ParentIssueID int
	// Roster is reused when already known; nil loads it.
	Roster []domain.RosterEntry
}

// page is one loaded chart together with the read-only configuration the
// editing controllers work against.
type page struct {
	Chart   *chart.Chart
	Config  domain.PageConfig
	Compact bool
	// ParentIssueID is the filter actually applied.
	ParentIssueID int
}

// loadPage lists the chart issues, reads the persisted display mode and
// lays the chart out. A roster that cannot be read degrades to an empty
// assignee list.
func (a *App) loadPage(ctx context.Context, req pageRequest) (*page, error) {
	compact, err := a.Settings.GetBool(ctx, repository.CompactModeKey)
	if err != nil {
		return nil, fmt.Errorf("reading display mode: %w", err)
	}

	data, err := a.Client.ListChartIssues(ctx, redmine.ChartQuery{
		ProjectID:     a.Config.Project,
		ParentIssueID: req.ParentIssueID,
		MaxRows:       a.Config.MaxRows,
	})
	if err != nil {
		return nil, err
	}
	if req.ParentIssueID > 0 && data.ParentIssueID == 0 {
		a.logger().Warn("parent filter ignored", "parent", req.ParentIssueID)
	}

	roster := req.Roster
	if roster == nil {
		roster, err = a.Client.ListRoster(ctx, a.Config.Project)
		if err != nil {
			a.logger().Warn("assignee roster unavailable", "project", a.Config.Project, "error", err)
			roster = []domain.RosterEntry{}
		}
	}

	rows := make([]chart.Row, len(data.Rows))
	for i, r := range data.Rows {
		rows[i] = chart.Row{Item: r.Item, Depth: r.Depth}
	}
	c := chart.Build(rows, chart.Options{
		Zoom:  req.Zoom,
		Today: timescale.DateOf(a.now()),
	})
	c.Truncated = data.Truncated

	return &page{
		Chart: c,
		Config: domain.PageConfig{
			ProjectID: a.Config.Project,
			Strings:   a.Config.Strings.WithDefaults(),
			Roster:    roster,
		},
		Compact:       compact,
		ParentIssueID: data.ParentIssueID,
	}, nil
}
