package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/yken-tsuru/ganttx/internal/chart"
	"github.com/yken-tsuru/ganttx/internal/cli/formatter"
	"github.com/yken-tsuru/ganttx/internal/domain"
	"github.com/yken-tsuru/ganttx/internal/engine"
	"github.com/yken-tsuru/ganttx/internal/repository"
	"github.com/yken-tsuru/ganttx/internal/timescale"
)

// Screen layout: two header lines above the chart, two status lines below.
const (
	chartTop     = 2
	chromeHeight = 4
	scrollStepX  = 8

	defaultWidth  = 100
	defaultHeight = 30
)

// gestureKind identifies the controller a pointer gesture is routed to.
type gestureKind int

const (
	gestureNone gestureKind = iota
	gestureMove
	gestureResize
	gestureReparent
	gestureQuickEdit
	// gestureIgnored swallows the rest of a drag that could not start.
	gestureIgnored
)

func (g gestureKind) String() string {
	switch g {
	case gestureMove:
		return "move"
	case gestureResize:
		return "resize"
	case gestureReparent:
		return "reparent"
	case gestureQuickEdit:
		return "quick_edit"
	default:
		return "none"
	}
}

// pointer tracks the left button between press and release.
type pointer struct {
	down     bool
	x, y     int
	at       hit
	dragging gestureKind
	lastX    int
	lastY    int
}

// ── messages ─────────────────────────────────────────────────────────────────

type pageLoadedMsg struct {
	page *page
	err  error
}

type snapshotMsg struct {
	gesture gestureKind
	seq     int
	item    *domain.ScheduleItem
	err     error
}

type commitDoneMsg struct {
	gesture gestureKind
	res     engine.Result
}

type quickEditFetchedMsg struct {
	item *domain.ScheduleItem
	err  error
	x, y int
}

type compactToggledMsg struct {
	err error
}

// chartOptions are the startup parameters of the chart TUI.
type chartOptions struct {
	ParentIssueID int
	// Mouse enables the drag, resize, reparent and quick-edit gestures.
	Mouse bool
}

// appModel is the root bubbletea Model of the chart editor. It owns the
// layout model and routes pointer gestures to the editing controllers.
type appModel struct {
	app *App
	ctx context.Context

	width, height int
	zoom          int
	parent        int
	mouse         bool
	quitting      bool

	page        *page
	chart       *chart.Chart
	compact     bool
	attached    bool
	transformer *chart.HeaderTransformer
	committer   *engine.Committer

	pending  *engine.PendingSet
	move     *engine.MoveController
	resize   *engine.ResizeController
	reparent *engine.ReparentController
	quick    *engine.QuickEditController

	ptr     pointer
	preview string

	popup       *formPanel
	popupValues *quickEditValues
	confirm     *formPanel
	confirmReq  engine.ParentRequest
	confirmOK   *bool

	notice       string
	noticeReload bool

	busy    int
	loading bool
	spinner spinner.Model

	filter    textinput.Model
	filtering bool

	scrollX, scrollY int

	keys keyMap
}

func newAppModel(ctx context.Context, app *App, opts chartOptions) appModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = formatter.StylePurple

	ti := textinput.New()
	ti.Prompt = "parent #"
	ti.Placeholder = "issue id, empty for all"
	ti.CharLimit = 10

	zoom := app.Config.Zoom
	if !timescale.ValidZoom(zoom) {
		zoom = timescale.DefaultZoom
	}

	strs := app.Config.Strings.WithDefaults()
	pending := engine.NewPendingSet()
	return appModel{
		app:         app,
		ctx:         ctx,
		zoom:        zoom,
		parent:      opts.ParentIssueID,
		mouse:       opts.Mouse,
		loading:     true,
		transformer: chart.NewHeaderTransformer(0, app.logger()),
		committer:   app.committer(false),
		pending:     pending,
		move:        engine.NewMoveController(pending),
		resize:      engine.NewResizeController(pending),
		reparent:    engine.NewReparentController(strs, pending),
		quick:       engine.NewQuickEditController(domain.PageConfig{Strings: strs}),
		spinner:     sp,
		filter:      ti,
		keys:        defaultKeyMap(),
	}
}

// ── bubbletea interface ──────────────────────────────────────────────────────

func (m appModel) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), m.spinner.Tick)
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.clampScroll()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case spinner.TickMsg:
		if m.busy == 0 && !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case pageLoadedMsg:
		return m.handlePageLoaded(msg)

	case snapshotMsg:
		switch msg.gesture {
		case gestureMove:
			if m.move.SetSnapshot(msg.seq, msg.item, msg.err) && m.ptr.down {
				m.preview = movePreviewText(m.move.Drag(m.ptr.lastPixel(m)))
			}
		case gestureResize:
			if m.resize.SetSnapshot(msg.seq, msg.item, msg.err) && m.ptr.down {
				m.preview = resizePreviewText(m.resize.Drag(m.ptr.lastPixel(m)))
			}
		}
		if msg.err != nil {
			m.app.logger().Debug("preview snapshot unavailable", "gesture", msg.gesture, "error", msg.err)
		}
		return m, nil

	case commitDoneMsg:
		return m.handleCommitDone(msg)

	case quickEditFetchedMsg:
		m.busy--
		if msg.err != nil {
			m.app.logger().Warn("quick edit fetch failed", "error", msg.err)
			m.showNotice(m.strings().ErrorFetchIssue, false)
			return m, nil
		}
		return m.openQuickEdit(msg.item, msg.x, msg.y)

	case compactToggledMsg:
		if msg.err != nil {
			m.showNotice(fmt.Sprintf("Could not save display mode: %v", msg.err), false)
			return m, nil
		}
		return m, m.reload()
	}

	// Forward everything else (form internals, cursor blink) to the
	// focused overlay.
	switch {
	case m.confirm != nil:
		return m.updateConfirm(msg)
	case m.popup != nil:
		return m.updatePopup(msg)
	case m.filtering:
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m appModel) View() string {
	if m.quitting {
		return ""
	}
	width, height := m.screenSize()

	lines := make([]string, 0, height)
	lines = append(lines, m.renderHeader(width)...)

	body := make([]string, 0, height)
	if m.chart != nil {
		body = m.chartView().lines()
	} else if m.loading {
		body = append(body, "  "+m.spinner.View()+" "+formatter.Dim(m.strings().Loading))
	}
	for len(body) < max(height-chromeHeight, 0) {
		body = append(body, "")
	}
	lines = append(lines, body...)
	lines = append(lines, m.renderStatusBar(width)...)

	if m.preview != "" && m.ptr.down {
		tip := lipgloss.NewStyle().
			Foreground(formatter.ColorFg).
			Background(formatter.ColorBg).
			Padding(0, 1).
			Render(m.preview)
		lines = placeOverlay(lines, tip, m.ptr.lastX+2, m.ptr.lastY+1)
	}
	if m.popup != nil {
		lines = m.popup.overlayOn(lines, width)
	}
	if m.confirm != nil {
		lines = m.confirm.overlayOn(lines, width)
	}
	if m.notice != "" {
		box := formatter.RenderPanel("", formatter.StyleRed.Render(m.notice)+"\n\n"+formatter.Dim("press any key"), min(60, width), formatter.ColorRed)
		lines = centerOverlay(lines, box, width)
	}

	// Pad to terminal height to prevent stale line artifacts from
	// bubbletea's line-diff renderer in alt-screen mode.
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// ── keys ─────────────────────────────────────────────────────────────────────

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	switch {
	case m.notice != "":
		return m.dismissNotice()
	case m.confirm != nil:
		return m.updateConfirm(msg)
	case m.popup != nil:
		return m.updatePopup(msg)
	case m.filtering:
		return m.updateFilter(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Cancel):
		m.cancelGesture()
		return m, nil

	case key.Matches(msg, m.keys.Compact):
		settings := m.app.Settings
		next := !m.compact
		ctx := m.ctx
		return m, func() tea.Msg {
			return compactToggledMsg{err: settings.SetBool(ctx, repository.CompactModeKey, next)}
		}

	case key.Matches(msg, m.keys.ZoomIn):
		if m.zoom < 4 {
			m.zoom++
			return m, m.reload()
		}

	case key.Matches(msg, m.keys.ZoomOut):
		if m.zoom > 1 {
			m.zoom--
			return m, m.reload()
		}

	case key.Matches(msg, m.keys.Reload):
		return m, m.reload()

	case key.Matches(msg, m.keys.Filter):
		m.filtering = true
		m.filter.SetValue("")
		if m.parent > 0 {
			m.filter.SetValue(strconv.Itoa(m.parent))
		}
		return m, m.filter.Focus()

	case key.Matches(msg, m.keys.Left):
		m.scrollX -= scrollStepX
		m.clampScroll()
	case key.Matches(msg, m.keys.Right):
		m.scrollX += scrollStepX
		m.clampScroll()
	case key.Matches(msg, m.keys.Up):
		m.scrollY--
		m.clampScroll()
	case key.Matches(msg, m.keys.Down):
		m.scrollY++
		m.clampScroll()

	case key.Matches(msg, m.keys.Today):
		if m.chart != nil {
			col, _ := cellSpan(timescale.DaysBetween(m.chart.Start, m.chart.Today)*m.chart.PixelsPerDay, 0)
			m.scrollX = col - m.chartView().timelineWidth()/3
			m.clampScroll()
		}
	}
	return m, nil
}

func (m appModel) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.filtering = false
		m.filter.Blur()
		return m, nil
	case tea.KeyEnter:
		value := strings.TrimPrefix(strings.TrimSpace(m.filter.Value()), "#")
		parent := 0
		if value != "" {
			n, err := strconv.Atoi(value)
			if err != nil || n <= 0 {
				m.filter.SetValue("")
				m.filter.Placeholder = "not an issue id"
				return m, nil
			}
			parent = n
		}
		m.filtering = false
		m.filter.Blur()
		m.parent = parent
		m.scrollY = 0
		return m, m.reload()
	}
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	return m, cmd
}

// ── loading ──────────────────────────────────────────────────────────────────

func (m appModel) loadCmd() tea.Cmd {
	app, ctx := m.app, m.ctx
	req := pageRequest{Zoom: m.zoom, ParentIssueID: m.parent}
	if m.page != nil {
		req.Roster = m.page.Config.Roster
	}
	return func() tea.Msg {
		p, err := app.loadPage(ctx, req)
		return pageLoadedMsg{page: p, err: err}
	}
}

// reload rebuilds the chart from the server. Any drag in progress is
// abandoned.
func (m *appModel) reload() tea.Cmd {
	m.cancelGesture()
	wasIdle := m.busy == 0 && !m.loading
	m.loading = true
	if wasIdle {
		return tea.Batch(m.loadCmd(), m.spinner.Tick)
	}
	return m.loadCmd()
}

func (m appModel) handlePageLoaded(msg pageLoadedMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	if msg.err != nil {
		m.app.logger().Error("chart load failed", "error", msg.err)
		m.showNotice(fmt.Sprintf("Could not load chart: %v", msg.err), false)
		return m, nil
	}

	p := msg.page
	m.cancelGesture()
	if !p.Compact {
		m.transformer.Detach()
		m.attached = false
	}
	if m.chart == nil {
		m.chart = p.Chart
	} else {
		m.chart.Replace(p.Chart)
	}
	if p.Compact && !m.attached {
		m.transformer.Attach(m.chart)
		m.attached = true
	}

	m.page = p
	m.compact = p.Compact
	m.parent = p.ParentIssueID
	m.quick = engine.NewQuickEditController(p.Config)
	m.reparent = engine.NewReparentController(p.Config.Strings, m.pending)
	m.clampScroll()
	m.app.logger().Debug("chart loaded", "rows", len(m.chart.Subjects), "zoom", m.chart.Zoom, "compact", m.compact)
	return m, nil
}

// ── pointer gestures ─────────────────────────────────────────────────────────

func (m appModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action == tea.MouseActionPress {
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.scrollY--
			m.clampScroll()
			return m, nil
		case tea.MouseButtonWheelDown:
			m.scrollY++
			m.clampScroll()
			return m, nil
		case tea.MouseButtonWheelLeft:
			m.scrollX -= scrollStepX
			m.clampScroll()
			return m, nil
		case tea.MouseButtonWheelRight:
			m.scrollX += scrollStepX
			m.clampScroll()
			return m, nil
		}
	}

	if m.notice != "" {
		if msg.Action == tea.MouseActionPress {
			return m.dismissNotice()
		}
		return m, nil
	}
	if m.confirm != nil || m.filtering || m.chart == nil || !m.mouse || m.loading {
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if m.popup != nil {
			if m.quick.ClickAt(msg.X, msg.Y) {
				m.closePopup()
			}
			return m, nil
		}
		m.ptr = pointer{
			down:  true,
			x:     msg.X,
			y:     msg.Y,
			lastX: msg.X,
			lastY: msg.Y,
			at:    m.chartView().hitTest(msg.X, msg.Y-chartTop),
		}
		return m, nil

	case tea.MouseActionMotion:
		if !m.ptr.down {
			return m, nil
		}
		m.ptr.lastX, m.ptr.lastY = msg.X, msg.Y
		var cmd tea.Cmd
		if m.ptr.dragging == gestureNone {
			if msg.X == m.ptr.x && msg.Y == m.ptr.y {
				return m, nil
			}
			cmd = m.startGesture()
		}
		m.dragTo(msg.X, msg.Y)
		return m, cmd

	case tea.MouseActionRelease:
		if !m.ptr.down {
			return m, nil
		}
		m.ptr.lastX, m.ptr.lastY = msg.X, msg.Y
		return m.endGesture(msg.X, msg.Y)
	}
	return m, nil
}

// startGesture begins the gesture the press landed on once the pointer
// moved at least one cell. ppd is read from the current zoom.
func (m *appModel) startGesture() tea.Cmd {
	at := m.ptr.at
	ppd := timescale.PixelsPerDay(m.zoom)
	logger := m.app.logger()

	switch at.kind {
	case hitBar:
		var (
			seq  int
			err  error
			kind gestureKind
		)
		if at.onEdge {
			kind = gestureResize
			seq, err = m.resize.Start(m.chart, at.itemID, at.edge, at.px, ppd)
		} else {
			kind = gestureMove
			seq, err = m.move.Start(m.chart, at.itemID, at.px, ppd)
		}
		if err != nil {
			logger.Debug("gesture refused", "gesture", kind, "issue", at.itemID, "error", err)
			m.ptr.dragging = gestureIgnored
			return nil
		}
		m.ptr.dragging = kind
		return m.snapshotCmd(kind, seq, at.itemID)

	case hitSubject:
		if m.reparent.Start(m.chart, at.line) {
			m.ptr.dragging = gestureReparent
			return nil
		}
	}
	m.ptr.dragging = gestureIgnored
	return nil
}

func (m *appModel) dragTo(x, y int) {
	v := m.chartView()
	switch m.ptr.dragging {
	case gestureMove:
		m.preview = movePreviewText(m.move.Drag(v.pixelAt(x)))
	case gestureResize:
		m.preview = resizePreviewText(m.resize.Drag(v.pixelAt(x)))
	case gestureReparent:
		m.reparent.Hover(m.subjectLineAt(x, y))
	}
}

func (m appModel) endGesture(x, y int) (tea.Model, tea.Cmd) {
	ptr := m.ptr
	m.ptr = pointer{}
	m.preview = ""
	v := m.chartView()

	switch ptr.dragging {
	case gestureNone:
		if ptr.at.kind == hitBar {
			return m, m.quickEditFetchCmd(ptr.at.itemID, x, y)
		}

	case gestureMove:
		id, days := m.move.End(v.pixelAt(x))
		if days == 0 {
			return m, nil
		}
		c := m.committer
		return m, m.startCommit(gestureMove, func(ctx context.Context) engine.Result {
			return c.Shift(ctx, id, days)
		})

	case gestureResize:
		id, field, days := m.resize.End(v.pixelAt(x))
		if days == 0 {
			return m, nil
		}
		c := m.committer
		return m, m.startCommit(gestureResize, func(ctx context.Context) engine.Result {
			return c.SetBound(ctx, id, field, days)
		})

	case gestureReparent:
		req, ok := m.reparent.Drop(m.subjectLineAt(x, y))
		if !ok {
			return m, nil
		}
		m.confirmReq = req
		m.confirmOK = new(bool)
		m.confirm = newFormPanel("", wizardConfirm(req.Prompt, m.strings().ButtonCancel, m.confirmOK), min(60, m.screenWidth()))
		m.confirm.centered = true
		return m, m.confirm.Init()
	}
	return m, nil
}

// subjectLineAt is the chart line under (x, y) when it lies in the subject
// column, or -1.
func (m *appModel) subjectLineAt(x, y int) int {
	if x >= subjectWidth {
		return -1
	}
	line, ok := m.chartView().lineAt(y - chartTop)
	if !ok {
		return -1
	}
	return line
}

func (p pointer) lastPixel(m appModel) int {
	return m.chartView().pixelAt(p.lastX)
}

func (m *appModel) cancelGesture() {
	m.move.Cancel()
	m.resize.Cancel()
	m.reparent.Cancel()
	m.ptr = pointer{}
	m.preview = ""
}

func (m appModel) snapshotCmd(kind gestureKind, seq, id int) tea.Cmd {
	client, ctx := m.app.Client, m.ctx
	return func() tea.Msg {
		item, err := client.FetchSchedule(ctx, id)
		return snapshotMsg{gesture: kind, seq: seq, item: item, err: err}
	}
}

// ── writes ───────────────────────────────────────────────────────────────────

// startCommit runs fn as a command and shows the busy indicator until its
// result arrives.
func (m *appModel) startCommit(kind gestureKind, fn func(ctx context.Context) engine.Result) tea.Cmd {
	ctx := m.ctx
	run := func() tea.Msg {
		return commitDoneMsg{gesture: kind, res: fn(ctx)}
	}
	return m.withBusy(run)
}

// withBusy counts cmd as in flight, starting the spinner when idle.
func (m *appModel) withBusy(cmd tea.Cmd) tea.Cmd {
	wasIdle := m.busy == 0 && !m.loading
	m.busy++
	if wasIdle {
		return tea.Batch(cmd, m.spinner.Tick)
	}
	return cmd
}

func (m appModel) handleCommitDone(msg commitDoneMsg) (tea.Model, tea.Cmd) {
	m.busy--
	res := msg.res
	out := res.Outcome

	switch msg.gesture {
	case gestureMove:
		if out.Revert {
			m.move.Revert(res.ItemID)
		} else {
			m.move.Finish(res.ItemID)
		}
	case gestureResize:
		if out.Revert {
			m.resize.Revert(res.ItemID)
		} else {
			m.resize.Finish(res.ItemID)
		}
	}

	if out.Notice != "" {
		m.showNotice(out.Notice, out.Reload)
		return m, nil
	}
	if out.Reload {
		return m, m.reload()
	}
	return m, nil
}

func (m *appModel) showNotice(text string, reload bool) {
	if m.notice != "" {
		text = m.notice + "\n\n" + text
		reload = reload || m.noticeReload
	}
	m.notice = text
	m.noticeReload = reload
}

func (m appModel) dismissNotice() (tea.Model, tea.Cmd) {
	reload := m.noticeReload
	m.notice = ""
	m.noticeReload = false
	if reload {
		return m, m.reload()
	}
	return m, nil
}

// ── quick edit ───────────────────────────────────────────────────────────────

func (m *appModel) quickEditFetchCmd(id, x, y int) tea.Cmd {
	client, ctx := m.app.Client, m.ctx
	return m.withBusy(func() tea.Msg {
		item, err := client.FetchSchedule(ctx, id)
		return quickEditFetchedMsg{item: item, err: err, x: x, y: y}
	})
}

func (m appModel) openQuickEdit(item *domain.ScheduleItem, x, y int) (tea.Model, tea.Cmd) {
	width, height := m.screenSize()
	p := m.quick.Open(item, x, y, width, height)
	m.popupValues = newQuickEditValues(p)
	m.popup = newFormPanel(p.Title, wizardQuickEdit(p, m.strings(), m.popupValues), p.Width)
	m.popup.x, m.popup.y = p.X, p.Y
	return m, m.popup.Init()
}

func (m appModel) updatePopup(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd, result := m.popup.Update(msg)
	switch result {
	case panelCancelled:
		m.closePopup()
		return m, nil
	case panelCompleted:
		values := m.popupValues
		m.popup = nil
		m.popupValues = nil
		if !values.Save {
			m.quick.Close()
			return m, nil
		}
		id, _, ok := m.quick.Save(values.fields())
		if !ok {
			return m, nil
		}
		c := m.committer
		fields := values.fields()
		return m, m.startCommit(gestureQuickEdit, func(ctx context.Context) engine.Result {
			return c.QuickEdit(ctx, id, fields)
		})
	}
	return m, cmd
}

func (m *appModel) closePopup() {
	m.quick.Close()
	m.popup = nil
	m.popupValues = nil
}

// ── reparent confirmation ────────────────────────────────────────────────────

func (m appModel) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd, result := m.confirm.Update(msg)
	switch result {
	case panelCancelled:
		m.confirm = nil
		return m, nil
	case panelCompleted:
		req, ok := m.confirmReq, *m.confirmOK
		m.confirm = nil
		m.confirmReq = engine.ParentRequest{}
		if !ok {
			return m, nil
		}
		c := m.committer
		return m, m.startCommit(gestureReparent, func(ctx context.Context) engine.Result {
			return c.Reparent(ctx, req.ItemID, req.ParentID)
		})
	}
	return m, cmd
}

// ── rendering helpers ────────────────────────────────────────────────────────

func (m appModel) screenSize() (int, int) {
	w, h := m.width, m.height
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = defaultHeight
	}
	return w, h
}

func (m appModel) screenWidth() int {
	w, _ := m.screenSize()
	return w
}

func (m appModel) strings() domain.Strings {
	if m.page != nil {
		return m.page.Config.Strings
	}
	return m.app.Config.Strings.WithDefaults()
}

func (m appModel) chartView() chartView {
	width, height := m.screenSize()
	v := chartView{
		chart:   m.chart,
		scrollX: m.scrollX,
		scrollY: m.scrollY,
		width:   width,
		height:  max(height-chromeHeight, 0),
		title:   "Issues",
	}
	if m.reparent.Active() {
		v.dragSource = m.reparent.Source()
	}
	return v
}

func (m *appModel) clampScroll() {
	if m.chart == nil {
		m.scrollX, m.scrollY = 0, 0
		return
	}
	v := m.chartView()
	_, total := cellSpan(0, m.chart.Width())
	m.scrollX = min(max(m.scrollX, 0), max(total-v.timelineWidth(), 0))
	m.scrollY = min(max(m.scrollY, 0), max(len(m.chart.Subjects)-v.contentRows(), 0))
}

func (m *appModel) renderHeader(width int) []string {
	title := formatter.StylePurple.Render("ganttx")
	crumbs := []string{m.app.Config.Project}
	if m.parent > 0 {
		crumbs = append(crumbs, fmt.Sprintf("#%d", m.parent))
	}
	header := title + " " + formatter.Dim("›") + " " + formatter.Dim(strings.Join(crumbs, " › "))

	header += "  " + formatter.Dim("[") + formatter.StyleGreen.Render(fmt.Sprintf("zoom %d", m.zoom)) + formatter.Dim("]")
	if m.compact {
		header += " " + formatter.StyleBlue.Render("compact")
	}
	if m.chart != nil && m.chart.Truncated {
		header += " " + formatter.StyleYellow.Render("truncated")
	}
	if !m.mouse {
		header += " " + formatter.Dim("read-only")
	}
	if m.busy > 0 || m.loading {
		header += "  " + m.spinner.View()
	}

	sep := formatter.Dim(strings.Repeat("─", max(width, 20)))
	return []string{header, sep}
}

func (m *appModel) renderStatusBar(width int) []string {
	sepStyle := lipgloss.NewStyle().Foreground(formatter.ColorDim)
	sep := sepStyle.Render(strings.Repeat("─", max(width, 20)))

	if m.filtering {
		return []string{sep, m.filter.View()}
	}
	if m.preview != "" {
		return []string{sep, formatter.StyleYellow.Render(m.preview)}
	}

	var hints []string
	for _, b := range m.keys.ShortHelp() {
		hints = append(hints, formatter.Dim(b.Help().Key+": "+b.Help().Desc))
	}
	return []string{sep, strings.Join(hints, "  ")}
}

func movePreviewText(p engine.Preview) string {
	if p.ItemID == 0 {
		return ""
	}
	text := fmt.Sprintf("#%d %s", p.ItemID, formatter.SignedDays(p.Days))
	if p.Ready {
		text = fmt.Sprintf("#%d %s (%s)", p.ItemID, formatter.DateRange(p.StartDate, p.DueDate), formatter.SignedDays(p.Days))
	}
	return text
}

func resizePreviewText(p engine.ResizePreview) string {
	if p.ItemID == 0 {
		return ""
	}
	text := fmt.Sprintf("#%d %s %s", p.ItemID, p.Field, formatter.SignedDays(p.Days))
	if p.Ready {
		text = fmt.Sprintf("#%d %s %s (%s)", p.ItemID, p.Field, formatter.DateOrDash(p.Date), formatter.SignedDays(p.Days))
	}
	return text
}
