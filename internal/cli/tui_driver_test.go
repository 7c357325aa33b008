package cli

import (
	"context"
	"testing"
	"time"

	"github.com/yken-tsuru/ganttx/internal/chart"
	"github.com/yken-tsuru/ganttx/internal/teatest"
)

// tuiCmdTimeout covers a round trip to the httptest server.
const tuiCmdTimeout = 300 * time.Millisecond

// TestDriver wraps teatest.Driver with chart-specific inspection methods.
// It provides access to appModel internals (chart layout, overlays,
// controllers) that the generic driver can't see.
type TestDriver struct {
	*teatest.Driver
}

// NewTestDriver creates a TestDriver from a test App with pointer gestures
// enabled. It sets the terminal size and drains Init(), which loads the
// chart from the fake server.
func NewTestDriver(t *testing.T, app *App) *TestDriver {
	t.Helper()
	return newTestDriver(t, app, chartOptions{Mouse: true})
}

func newTestDriver(t *testing.T, app *App, opts chartOptions) *TestDriver {
	t.Helper()

	m := newAppModel(context.Background(), app, opts)
	d := teatest.New(t, m, teatest.WithSize(120, 40), teatest.WithCmdTimeout(tuiCmdTimeout))
	d.DrainInit()

	return &TestDriver{Driver: d}
}

// ── Chart-specific inspection ────────────────────────────────────────────────

func (d *TestDriver) appModel() appModel {
	return d.Model.(appModel)
}

// Chart returns the live layout model.
func (d *TestDriver) Chart() *chart.Chart {
	return d.appModel().chart
}

// BarCells returns the screen columns [x0, x1) and row of item id's bar.
func (d *TestDriver) BarCells(id int) (x0, x1, y int) {
	d.T.Helper()
	m := d.appModel()
	left, width, ok := m.chart.BarExtent(id)
	if !ok {
		d.T.Fatalf("item #%d has no bar", id)
	}
	from, to := cellSpan(left, width)
	return chartX0 + from - m.scrollX, chartX0 + to - m.scrollX, d.SubjectRow(id)
}

// BarMiddle returns a screen cell inside item id's bar, away from its edges.
func (d *TestDriver) BarMiddle(id int) (x, y int) {
	x0, x1, y := d.BarCells(id)
	return (x0 + x1) / 2, y
}

// SubjectRow returns the screen row of item id's subject.
func (d *TestDriver) SubjectRow(id int) int {
	d.T.Helper()
	m := d.appModel()
	s, ok := m.chart.Subject(id)
	if !ok {
		d.T.Fatalf("item #%d is not in the chart", id)
	}
	return chartTop + m.chart.HeaderLines() + (s.Top - m.chart.ContentTop()) - m.scrollY
}

// Notice returns the blocking notification text, if any.
func (d *TestDriver) Notice() string {
	return d.appModel().notice
}

// PopupOpen reports whether the quick-edit popup is shown.
func (d *TestDriver) PopupOpen() bool {
	return d.appModel().popup != nil
}

// ConfirmOpen reports whether the reparent confirmation is shown.
func (d *TestDriver) ConfirmOpen() bool {
	return d.appModel().confirm != nil
}

// Busy reports whether a write or a reload is in flight.
func (d *TestDriver) Busy() bool {
	m := d.appModel()
	return m.busy > 0 || m.loading
}

// Zoom returns the current zoom level.
func (d *TestDriver) Zoom() int {
	return d.appModel().zoom
}

// Compact reports whether the compact header is active.
func (d *TestDriver) Compact() bool {
	return d.appModel().compact
}

// IsQuitting returns whether the app has signaled a quit.
func (d *TestDriver) IsQuitting() bool {
	return d.appModel().quitting || d.Quitting
}
