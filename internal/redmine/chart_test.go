package redmine

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yken-tsuru/ganttx/internal/domain"
	"github.com/yken-tsuru/ganttx/internal/testutil"
)

func rowIDs(rows []ChartRow) []int {
	ids := make([]int, len(rows))
	for i, r := range rows {
		ids[i] = r.Item.ID
	}
	return ids
}

func TestOrderByHierarchy(t *testing.T) {
	items := []domain.ScheduleItem{
		{ID: 5, ParentID: 1},
		{ID: 1},
		{ID: 3, ParentID: 1},
		{ID: 4, ParentID: 3},
		{ID: 2},
		{ID: 9, ParentID: 77},
	}

	rows := OrderByHierarchy(items)

	assert.Equal(t, []int{1, 3, 4, 5, 2, 9}, rowIDs(rows))
	assert.Equal(t, []int{0, 1, 2, 1, 0, 0}, []int{rows[0].Depth, rows[1].Depth, rows[2].Depth, rows[3].Depth, rows[4].Depth, rows[5].Depth})
}

func TestOrderByHierarchy_CycleStillListed(t *testing.T) {
	rows := OrderByHierarchy([]domain.ScheduleItem{{ID: 1, ParentID: 2}, {ID: 2, ParentID: 1}})
	assert.Len(t, rows, 2)
}

func seedTree(fake *testutil.FakeRedmine) {
	fake.AddIssue(
		testutil.NewTestIssue(1, "Root"),
		testutil.NewTestIssue(2, "Child", testutil.WithParent(1)),
		testutil.NewTestIssue(3, "Grandchild", testutil.WithParent(2)),
		testutil.NewTestIssue(4, "Other"),
	)
}

func TestListChartIssues_ParentScoped(t *testing.T) {
	fake := testutil.NewFakeRedmine(t)
	seedTree(fake)
	c, _ := newTestClient(t, fake)

	data, err := c.ListChartIssues(context.Background(), ChartQuery{ProjectID: fake.Project(), ParentIssueID: 1})
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 3}, rowIDs(data.Rows))
	assert.Equal(t, 1, data.ParentIssueID)
	assert.False(t, data.Truncated)
}

func TestListChartIssues_Truncates(t *testing.T) {
	fake := testutil.NewFakeRedmine(t)
	seedTree(fake)
	c, _ := newTestClient(t, fake)

	data, err := c.ListChartIssues(context.Background(), ChartQuery{ParentIssueID: 1, MaxRows: 2})
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2}, rowIDs(data.Rows))
	assert.True(t, data.Truncated)
}

func TestListChartIssues_UnknownParentFallsBack(t *testing.T) {
	fake := testutil.NewFakeRedmine(t)
	seedTree(fake)
	c, _ := newTestClient(t, fake)

	data, err := c.ListChartIssues(context.Background(), ChartQuery{ProjectID: fake.Project(), ParentIssueID: 999})
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 3, 4}, rowIDs(data.Rows))
	assert.Zero(t, data.ParentIssueID)
}

func TestListChartIssues_Pages(t *testing.T) {
	fake := testutil.NewFakeRedmine(t)
	for i := 1; i <= 230; i++ {
		fake.AddIssue(testutil.NewTestIssue(i, fmt.Sprintf("Issue %d", i)))
	}
	c, _ := newTestClient(t, fake)

	data, err := c.ListChartIssues(context.Background(), ChartQuery{})
	require.NoError(t, err)
	assert.Len(t, data.Rows, 230)
}

func TestListRoster_UsersOnlySortedByName(t *testing.T) {
	fake := testutil.NewFakeRedmine(t)
	fake.SetMembers(
		domain.RosterEntry{ID: 2, Name: "Bob"},
		domain.RosterEntry{ID: 1, Name: "Alice"},
		domain.RosterEntry{ID: 2, Name: "Bob"},
	)
	c, _ := newTestClient(t, fake)

	roster, err := c.ListRoster(context.Background(), fake.Project())
	require.NoError(t, err)
	assert.Equal(t, []domain.RosterEntry{{ID: 1, Name: "Alice"}, {ID: 2, Name: "Bob"}}, roster)
}
