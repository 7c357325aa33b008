package redmine

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/yken-tsuru/ganttx/internal/domain"
)

// pageSize is the server's maximum page size for list endpoints.
const pageSize = 100

// ChartQuery selects the issues rendered in the chart.
type ChartQuery struct {
	ProjectID string
	// ParentIssueID restricts the chart to one issue and its descendants.
	ParentIssueID int
	// MaxRows truncates the listing; zero means unlimited.
	MaxRows int
}

// ChartRow is one issue in hierarchy order with its tree depth.
type ChartRow struct {
	Item  domain.ScheduleItem
	Depth int
}

// ChartData is the result of a chart listing.
type ChartData struct {
	Rows      []ChartRow
	Truncated bool
	// ParentIssueID is the scoping filter actually applied; zero when the
	// requested parent was not visible and the listing fell back to the
	// whole project.
	ParentIssueID int
}

// ListChartIssues lists the chart rows. With a parent filter the parent
// comes first, followed by its visible descendants in tree order.
func (c *Client) ListChartIssues(ctx context.Context, q ChartQuery) (*ChartData, error) {
	start := time.Now()
	data, err := c.listChart(ctx, q)
	c.observe("list", q.ParentIssueID, 0, start, err)
	return data, err
}

func (c *Client) listChart(ctx context.Context, q ChartQuery) (*ChartData, error) {
	if q.ParentIssueID > 0 {
		var env issueEnvelope
		_, err := c.getJSON(ctx, fmt.Sprintf("issues/%d.json", q.ParentIssueID), nil, &env)
		switch {
		case err == nil && env.Issue != nil:
			descendants, err := c.listIssues(ctx, url.Values{
				"parent_id": {"~" + strconv.Itoa(q.ParentIssueID)},
				"status_id": {"*"},
			})
			if err != nil {
				return nil, fmt.Errorf("listing descendants of #%d: %w", q.ParentIssueID, err)
			}
			items := append([]domain.ScheduleItem{*env.Issue.toDomain()}, descendants...)
			data := buildChartData(items, q.MaxRows)
			data.ParentIssueID = q.ParentIssueID
			return data, nil
		case err != nil && !IsNotFound(err):
			return nil, fmt.Errorf("loading parent issue #%d: %w", q.ParentIssueID, err)
		}
	}

	query := url.Values{"status_id": {"open"}}
	if q.ProjectID != "" {
		query.Set("project_id", q.ProjectID)
	}
	items, err := c.listIssues(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing issues: %w", err)
	}
	return buildChartData(items, q.MaxRows), nil
}

// listIssues pages through issues.json.
func (c *Client) listIssues(ctx context.Context, query url.Values) ([]domain.ScheduleItem, error) {
	var items []domain.ScheduleItem
	seen := make(map[int]bool)
	for offset := 0; ; offset += pageSize {
		q := url.Values{}
		for k, v := range query {
			q[k] = v
		}
		q.Set("limit", strconv.Itoa(pageSize))
		q.Set("offset", strconv.Itoa(offset))

		var env issueListEnvelope
		if _, err := c.getJSON(ctx, "issues.json", q, &env); err != nil {
			return nil, err
		}
		for i := range env.Issues {
			if seen[env.Issues[i].ID] {
				continue
			}
			seen[env.Issues[i].ID] = true
			items = append(items, *env.Issues[i].toDomain())
		}
		if len(env.Issues) == 0 || offset+pageSize >= env.TotalCount {
			return items, nil
		}
	}
}

// buildChartData orders items depth-first by hierarchy and applies MaxRows.
func buildChartData(items []domain.ScheduleItem, maxRows int) *ChartData {
	rows := OrderByHierarchy(items)
	data := &ChartData{Rows: rows}
	if maxRows > 0 && len(rows) > maxRows {
		data.Rows = rows[:maxRows]
		data.Truncated = true
	}
	return data
}

// OrderByHierarchy returns items in tree pre-order. Items whose parent is
// not in the set are roots; siblings are ordered by id.
func OrderByHierarchy(items []domain.ScheduleItem) []ChartRow {
	byID := make(map[int]bool, len(items))
	for _, it := range items {
		byID[it.ID] = true
	}
	children := make(map[int][]domain.ScheduleItem)
	var roots []domain.ScheduleItem
	for _, it := range items {
		if it.ParentID != 0 && byID[it.ParentID] && it.ParentID != it.ID {
			children[it.ParentID] = append(children[it.ParentID], it)
			continue
		}
		roots = append(roots, it)
	}
	byIDAsc := func(list []domain.ScheduleItem) {
		sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	}
	byIDAsc(roots)

	rows := make([]ChartRow, 0, len(items))
	visited := make(map[int]bool, len(items))
	var walk func(it domain.ScheduleItem, depth int)
	walk = func(it domain.ScheduleItem, depth int) {
		if visited[it.ID] {
			return
		}
		visited[it.ID] = true
		rows = append(rows, ChartRow{Item: it, Depth: depth})
		kids := children[it.ID]
		byIDAsc(kids)
		for _, k := range kids {
			walk(k, depth+1)
		}
	}
	for _, r := range roots {
		walk(r, 0)
	}
	// Items caught in a parent cycle are never reached from a root.
	for _, it := range items {
		if !visited[it.ID] {
			walk(it, 0)
		}
	}
	return rows
}

// ListRoster returns the assignable users of a project, sorted by name.
func (c *Client) ListRoster(ctx context.Context, projectID string) ([]domain.RosterEntry, error) {
	start := time.Now()
	roster, err := c.listRoster(ctx, projectID)
	c.observe("roster", 0, 0, start, err)
	return roster, err
}

func (c *Client) listRoster(ctx context.Context, projectID string) ([]domain.RosterEntry, error) {
	if projectID == "" {
		return nil, nil
	}
	seen := make(map[int]bool)
	var roster []domain.RosterEntry
	for offset := 0; ; offset += pageSize {
		q := url.Values{
			"limit":  {strconv.Itoa(pageSize)},
			"offset": {strconv.Itoa(offset)},
		}
		var env membershipListEnvelope
		if _, err := c.getJSON(ctx, "projects/"+url.PathEscape(projectID)+"/memberships.json", q, &env); err != nil {
			return nil, fmt.Errorf("listing memberships: %w", err)
		}
		for _, m := range env.Memberships {
			if m.User == nil || seen[m.User.ID] {
				continue
			}
			seen[m.User.ID] = true
			roster = append(roster, domain.RosterEntry{ID: m.User.ID, Name: m.User.Name})
		}
		if len(env.Memberships) == 0 || offset+pageSize >= env.TotalCount {
			break
		}
	}
	sort.SliceStable(roster, func(i, j int) bool { return roster[i].Name < roster[j].Name })
	return roster, nil
}
