package cli

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yken-tsuru/ganttx/internal/domain"
	"github.com/yken-tsuru/ganttx/internal/engine"
)

func TestGestureKindString(t *testing.T) {
	assert.Equal(t, "move", gestureMove.String())
	assert.Equal(t, "resize", gestureResize.String())
	assert.Equal(t, "reparent", gestureReparent.String())
	assert.Equal(t, "quick_edit", gestureQuickEdit.String())
	assert.Equal(t, "none", gestureNone.String())
	assert.Equal(t, "none", gestureIgnored.String())
}

func TestMovePreviewText(t *testing.T) {
	assert.Empty(t, movePreviewText(engine.Preview{}))
	assert.Equal(t, "#4 +2d", movePreviewText(engine.Preview{ItemID: 4, Days: 2}))
	assert.Equal(t, "#4 2024-01-03 → 2024-01-05 (-1d)", movePreviewText(engine.Preview{
		ItemID: 4, Days: -1, StartDate: "2024-01-03", DueDate: "2024-01-05", Ready: true,
	}))
}

func TestResizePreviewText(t *testing.T) {
	assert.Empty(t, resizePreviewText(engine.ResizePreview{}))
	assert.Equal(t, "#4 due_date +3d", resizePreviewText(engine.ResizePreview{
		ItemID: 4, Field: domain.FieldDueDate, Days: 3,
	}))
	assert.Equal(t, "#4 start_date 2024-01-09 (+1d)", resizePreviewText(engine.ResizePreview{
		ItemID: 4, Field: domain.FieldStartDate, Days: 1, Date: "2024-01-09", Ready: true,
	}))
}

func TestAppModel_InitialState(t *testing.T) {
	app, _ := testApp(t)
	app.Config.Zoom = 2

	m := newAppModel(context.Background(), app, chartOptions{ParentIssueID: 5})
	assert.Equal(t, 2, m.zoom)
	assert.Equal(t, 5, m.parent)
	assert.False(t, m.mouse)
	assert.True(t, m.loading)
	assert.Nil(t, m.chart)
	require.NotNil(t, m.Init())
}

func TestAppModel_InvalidZoomFallsBackToDefault(t *testing.T) {
	app, _ := testApp(t)
	app.Config.Zoom = 9

	m := newAppModel(context.Background(), app, chartOptions{})
	assert.Equal(t, 3, m.zoom)
}

func TestAppModel_ViewBeforeSize(t *testing.T) {
	app, fake := testApp(t)
	m := newAppModel(context.Background(), app, chartOptions{})

	view := m.View()
	assert.Contains(t, view, "ganttx")
	assert.Contains(t, view, fake.Project())
}

func TestAppModel_LoadErrorBecomesNotice(t *testing.T) {
	app, _ := testApp(t)
	m := newAppModel(context.Background(), app, chartOptions{})

	next, _ := m.Update(pageLoadedMsg{err: assert.AnError})
	got := next.(appModel)
	assert.False(t, got.loading)
	assert.Contains(t, got.notice, "Could not load chart")
}

func TestAppModel_CtrlCQuitsWhileLoading(t *testing.T) {
	app, _ := testApp(t)
	m := newAppModel(context.Background(), app, chartOptions{})

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.True(t, next.(appModel).quitting)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
