package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yken-tsuru/ganttx/internal/chart"
	"github.com/yken-tsuru/ganttx/internal/domain"
	"github.com/yken-tsuru/ganttx/internal/redmine"
	"github.com/yken-tsuru/ganttx/internal/timescale"
)

const ppd = 16

func testChart() *chart.Chart {
	return chart.Build([]chart.Row{
		{Item: domain.ScheduleItem{ID: 1, Subject: "Parent", StartDate: "2024-01-10", DueDate: "2024-01-14", DoneRatio: 50}},
		{Item: domain.ScheduleItem{ID: 2, Subject: "Child", StartDate: "2024-01-30", DueDate: "2024-02-05"}, Depth: 1},
		{Item: domain.ScheduleItem{ID: 3, Subject: "Unscheduled"}},
	}, chart.Options{Zoom: 3, Today: timescale.MustParseDate("2024-01-12")})
}

type geom struct{ left, width int }

func geometry(c *chart.Chart, id int) map[chart.FragmentKind]geom {
	out := map[chart.FragmentKind]geom{}
	for _, f := range c.Related(id) {
		out[f.Kind] = geom{f.Left, f.Width}
	}
	return out
}

func TestMove_TranslatesRelatedSetRigidly(t *testing.T) {
	c := testChart()
	before := geometry(c, 1)
	m := NewMoveController(nil)

	_, err := m.Start(c, 1, 200, ppd)
	require.NoError(t, err)
	m.Drag(237)

	for kind, g := range geometry(c, 1) {
		assert.Equal(t, before[kind].left+37, g.left, kind)
		assert.Equal(t, before[kind].width, g.width, kind)
	}
	assert.Equal(t, StateDragging, m.StateOf(1))
}

func TestMove_ZeroDisplacementRestoresBaseline(t *testing.T) {
	c := testChart()
	before := geometry(c, 1)
	m := NewMoveController(nil)

	_, err := m.Start(c, 1, 200, ppd)
	require.NoError(t, err)
	m.Drag(260)
	m.Drag(150)
	id, days := m.End(207)

	assert.Equal(t, 1, id)
	assert.Zero(t, days)
	assert.Equal(t, before, geometry(c, 1))
	assert.Equal(t, StateIdle, m.StateOf(1))
}

func TestMove_DeltaFromTotalDisplacement(t *testing.T) {
	c := testChart()
	m := NewMoveController(nil)

	_, err := m.Start(c, 2, 100, ppd)
	require.NoError(t, err)
	for x := 101; x <= 148; x++ {
		m.Drag(x)
	}
	_, days := m.End(148)

	assert.Equal(t, 3, days)
	assert.Equal(t, StateCommitting, m.StateOf(2))
}

func TestMove_PreviewWaitsForSnapshot(t *testing.T) {
	c := testChart()
	m := NewMoveController(nil)

	seq, err := m.Start(c, 2, 0, ppd)
	require.NoError(t, err)

	p := m.Drag(48)
	assert.False(t, p.Ready)
	assert.Equal(t, 3, p.Days)

	require.True(t, m.SetSnapshot(seq, &domain.ScheduleItem{ID: 2, StartDate: "2024-01-30", DueDate: "2024-02-05"}, nil))
	p = m.Drag(48)
	assert.True(t, p.Ready)
	assert.Equal(t, "2024-02-02", p.StartDate)
	assert.Equal(t, "2024-02-08", p.DueDate)
}

func TestMove_PreviewOmitsAbsentBound(t *testing.T) {
	c := testChart()
	m := NewMoveController(nil)

	seq, _ := m.Start(c, 2, 0, ppd)
	m.SetSnapshot(seq, &domain.ScheduleItem{ID: 2, DueDate: "2024-02-05"}, nil)
	p := m.Drag(-16)

	assert.Empty(t, p.StartDate)
	assert.Equal(t, "2024-02-04", p.DueDate)
}

func TestMove_FailedOrStaleSnapshotIgnored(t *testing.T) {
	c := testChart()
	m := NewMoveController(nil)

	seq, _ := m.Start(c, 2, 0, ppd)
	assert.False(t, m.SetSnapshot(seq, nil, &redmine.FetchError{IssueID: 2}))
	assert.False(t, m.SetSnapshot(seq-1, &domain.ScheduleItem{ID: 2, StartDate: "2024-01-30"}, nil))
	assert.False(t, m.Drag(32).Ready)
}

func TestMove_RevertAfterFailedCommit(t *testing.T) {
	c := testChart()
	before := geometry(c, 2)
	m := NewMoveController(nil)

	m.Start(c, 2, 0, ppd)
	_, days := m.End(40)
	require.Equal(t, 3, days)
	assert.Equal(t, before[chart.FragmentTodo].left+48, geometry(c, 2)[chart.FragmentTodo].left)

	require.True(t, m.Revert(2))
	assert.Equal(t, before, geometry(c, 2))
	assert.Equal(t, StateIdle, m.StateOf(2))
}

func TestMove_RefusesSecondGestureOnCommittingItem(t *testing.T) {
	c := testChart()
	m := NewMoveController(nil)

	m.Start(c, 2, 0, ppd)
	m.End(64)

	_, err := m.Start(c, 2, 0, ppd)
	assert.ErrorIs(t, err, ErrItemBusy)

	_, err = m.Start(c, 1, 0, ppd)
	require.NoError(t, err)
	_, err = m.Start(c, 1, 0, ppd)
	assert.ErrorIs(t, err, ErrGestureActive)

	m.Cancel()
	m.Finish(2)
	_, err = m.Start(c, 2, 0, ppd)
	assert.NoError(t, err)
}

func TestSharedPendingSet_RefusesOtherGesturesOnCommittingItem(t *testing.T) {
	c := testChart()
	pending := NewPendingSet()
	m := NewMoveController(pending)
	r := NewResizeController(pending)
	rp := NewReparentController(domain.DefaultStrings(), pending)
	before := geometry(c, 2)
	s, _ := c.Subject(2)

	m.Start(c, 2, 0, ppd)
	_, days := m.End(48)
	require.Equal(t, 3, days)
	require.True(t, pending.Has(2))

	_, err := r.Start(c, 2, EdgeTrailing, 0, ppd)
	assert.ErrorIs(t, err, ErrItemBusy)
	assert.Equal(t, StateIdle, r.StateOf(2))
	assert.False(t, rp.Start(c, s.Top))

	require.True(t, m.Revert(2))
	assert.Equal(t, before, geometry(c, 2))
	assert.False(t, pending.Has(2))

	_, err = r.Start(c, 2, EdgeTrailing, 0, ppd)
	require.NoError(t, err)
	r.End(32)
	assert.True(t, pending.Has(2))
	_, err = m.Start(c, 2, 0, ppd)
	assert.ErrorIs(t, err, ErrItemBusy)

	m.Finish(2)
	assert.True(t, pending.Has(2), "finishing another controller's item keeps it busy")
	r.Finish(2)
	assert.False(t, pending.Has(2))
}

func TestMove_NoBar(t *testing.T) {
	_, err := NewMoveController(nil).Start(testChart(), 3, 0, ppd)
	assert.ErrorIs(t, err, ErrNoBar)
}

func TestResize_WidthOnlyPatchesDueDate(t *testing.T) {
	c := testChart()
	r := NewResizeController(nil)
	left, width, _ := c.BarExtent(1)

	_, err := r.Start(c, 1, EdgeTrailing, 300, ppd)
	require.NoError(t, err)
	p := r.Drag(332)
	assert.Equal(t, domain.FieldDueDate, p.Field)

	gotLeft, gotWidth, _ := c.BarExtent(1)
	assert.Equal(t, left, gotLeft)
	assert.Equal(t, width+32, gotWidth)

	id, field, days := r.End(332)
	assert.Equal(t, 1, id)
	assert.Equal(t, domain.FieldDueDate, field)
	assert.Equal(t, 2, days)
}

func TestResize_LeftChangePatchesStartDate(t *testing.T) {
	c := testChart()
	r := NewResizeController(nil)

	r.Start(c, 1, EdgeLeading, 144, ppd)
	_, field, days := r.End(144 - 32)

	assert.Equal(t, domain.FieldStartDate, field)
	assert.Equal(t, -2, days)
}

func TestResize_ClampsToOneDay(t *testing.T) {
	c := testChart()
	r := NewResizeController(nil)
	left, width, _ := c.BarExtent(1)

	r.Start(c, 1, EdgeTrailing, 0, ppd)
	r.Drag(-500)
	_, gotWidth, _ := c.BarExtent(1)
	assert.Equal(t, ppd, gotWidth)
	r.Cancel()

	r.Start(c, 1, EdgeLeading, 0, ppd)
	r.Drag(500)
	gotLeft, gotWidth, _ := c.BarExtent(1)
	assert.Equal(t, ppd, gotWidth)
	assert.Equal(t, left+width-ppd, gotLeft)
	_, field, days := r.End(500)
	assert.Equal(t, domain.FieldStartDate, field)
	assert.Equal(t, 4, days)
}

func TestResize_SnapsToDayGrid(t *testing.T) {
	c := testChart()
	r := NewResizeController(nil)
	_, width, _ := c.BarExtent(1)

	r.Start(c, 1, EdgeTrailing, 0, ppd)
	r.Drag(7)
	_, got, _ := c.BarExtent(1)
	assert.Equal(t, width, got)

	r.Drag(9)
	_, got, _ = c.BarExtent(1)
	assert.Equal(t, width+ppd, got)
}

func TestResize_ZeroDeltaRestores(t *testing.T) {
	c := testChart()
	before := geometry(c, 1)
	r := NewResizeController(nil)

	r.Start(c, 1, EdgeLeading, 0, ppd)
	r.Drag(40)
	_, _, days := r.End(3)

	assert.Zero(t, days)
	assert.Equal(t, before, geometry(c, 1))
}

func TestResize_PreviewFromSnapshot(t *testing.T) {
	c := testChart()
	r := NewResizeController(nil)

	seq, _ := r.Start(c, 1, EdgeTrailing, 0, ppd)
	r.SetSnapshot(seq, &domain.ScheduleItem{ID: 1, StartDate: "2024-01-10", DueDate: "2024-01-14"}, nil)
	p := r.Drag(48)

	assert.True(t, p.Ready)
	assert.Equal(t, "2024-01-17", p.Date)
	assert.Equal(t, 3, p.Days)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name                          string
		baseLeft, baseWidth, left, wd int
		field                         domain.Field
		days                          int
	}{
		{"width grows", 100, 32, 100, 64, domain.FieldDueDate, 2},
		{"left within noise", 100, 32, 101, 63, domain.FieldDueDate, 2},
		{"left moves with width", 100, 32, 84, 80, domain.FieldStartDate, -1},
		{"left moves right", 100, 64, 132, 32, domain.FieldStartDate, 2},
		{"nothing", 100, 32, 100, 32, domain.FieldDueDate, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			field, days := Classify(tt.baseLeft, tt.baseWidth, tt.left, tt.wd, 16)
			assert.Equal(t, tt.field, field)
			assert.Equal(t, tt.days, days)
		})
	}
}

func TestReparent_SelfDropIsNoop(t *testing.T) {
	c := testChart()
	r := NewReparentController(domain.DefaultStrings(), nil)
	s, _ := c.Subject(2)

	require.True(t, r.Start(c, s.Top))
	assert.Zero(t, r.Hover(s.Top))
	_, ok := r.Drop(s.Top)

	assert.False(t, ok)
	assert.False(t, r.Active())
}

func TestReparent_DropNamesBothIssues(t *testing.T) {
	c := testChart()
	r := NewReparentController(domain.DefaultStrings(), nil)
	src, _ := c.Subject(3)
	dst, _ := c.Subject(1)

	r.Start(c, src.Top)
	assert.Equal(t, 1, r.Hover(dst.Top))
	assert.True(t, dst.Highlight)

	req, ok := r.Drop(dst.Top)
	require.True(t, ok)
	assert.Equal(t, 3, req.ItemID)
	assert.Equal(t, 1, req.ParentID)
	assert.Equal(t, "Change the parent of #3 to #1?", req.Prompt)
	assert.False(t, dst.Highlight)
}

func TestReparent_DropOutsideRows(t *testing.T) {
	c := testChart()
	r := NewReparentController(domain.DefaultStrings(), nil)
	src, _ := c.Subject(3)

	r.Start(c, src.Top)
	_, ok := r.Drop(100)
	assert.False(t, ok)
}
