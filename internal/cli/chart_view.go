package cli

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/yken-tsuru/ganttx/internal/chart"
	"github.com/yken-tsuru/ganttx/internal/cli/formatter"
	"github.com/yken-tsuru/ganttx/internal/engine"
	"github.com/yken-tsuru/ganttx/internal/timescale"
)

// Chart area geometry in terminal cells.
const (
	subjectWidth = 28
	chartX0      = subjectWidth + 1

	// minEdgeCells is the narrowest bar that gets resize handles; a
	// narrower bar is only movable.
	minEdgeCells = 3
)

// paint is the style class of one canvas cell.
type paint uint8

const (
	paintNone paint = iota
	paintHeader
	paintDim
	paintToday
	paintTodo
	paintLate
	paintDone
	paintLabel
)

func (p paint) style() (lipgloss.Style, bool) {
	switch p {
	case paintHeader:
		return formatter.StyleHeader, true
	case paintDim:
		return formatter.StyleDim, true
	case paintToday:
		return formatter.StyleYellow, true
	case paintTodo:
		return formatter.StyleBarTodo, true
	case paintLate:
		return formatter.StyleBarLate, true
	case paintDone:
		return formatter.StyleBarDone, true
	case paintLabel:
		return formatter.StyleFg, true
	default:
		return lipgloss.Style{}, false
	}
}

// canvasLine is one row of the timeline part of the chart.
type canvasLine struct {
	runes  []rune
	paints []paint
}

func newCanvasLine(width int) *canvasLine {
	l := &canvasLine{runes: make([]rune, width), paints: make([]paint, width)}
	for i := range l.runes {
		l.runes[i] = ' '
	}
	return l
}

func (l *canvasLine) put(col int, r rune, p paint) {
	if col < 0 || col >= len(l.runes) {
		return
	}
	l.runes[col] = r
	l.paints[col] = p
}

// text writes s from col, clipped to limit runes.
func (l *canvasLine) text(col int, s string, p paint, limit int) {
	n := 0
	for _, r := range s {
		if n >= limit {
			return
		}
		l.put(col+n, r, p)
		n++
	}
}

// render joins runs of equally painted cells into styled segments.
func (l *canvasLine) render() string {
	var b strings.Builder
	for i := 0; i < len(l.runes); {
		j := i
		for j < len(l.runes) && l.paints[j] == l.paints[i] {
			j++
		}
		seg := string(l.runes[i:j])
		if st, ok := l.paints[i].style(); ok {
			seg = st.Render(seg)
		}
		b.WriteString(seg)
		i = j
	}
	return b.String()
}

// cellSpan converts a pixel extent to the half-open column range it covers.
func cellSpan(left, width int) (from, to int) {
	from = timescale.CellsFromPixels(left)
	to = -timescale.CellsFromPixels(-(left + width))
	if to <= from && width > 0 {
		to = from + 1
	}
	return from, to
}

// chartView renders a chart into a fixed-size area and maps cells of that
// area back to chart coordinates.
type chartView struct {
	chart   *chart.Chart
	scrollX int // columns
	scrollY int // content lines
	width   int
	height  int
	// dragSource is the subject row being dragged for reparenting.
	dragSource int
	title      string
}

func (v chartView) timelineWidth() int { return max(v.width-chartX0, 0) }

// contentRows is the number of subject rows that fit below the header.
func (v chartView) contentRows() int {
	return max(v.height-v.chart.HeaderLines(), 0)
}

// lines renders the area, header bands first.
func (v chartView) lines() []string {
	c := v.chart
	tw := v.timelineWidth()
	out := make([]string, 0, v.height)

	bands := make([]*chart.Band, 0, len(c.Bands))
	for _, b := range c.Bands {
		if !b.Hidden {
			bands = append(bands, b)
		}
	}
	sort.Slice(bands, func(i, j int) bool { return bands[i].Top < bands[j].Top })

	for i, b := range bands {
		if len(out) >= v.height {
			return out
		}
		left := strings.Repeat(" ", subjectWidth)
		if i == len(bands)-1 {
			left = padCells(formatter.StyleHeader.Render(ansi.Truncate(v.title, subjectWidth-1, "…")), subjectWidth)
		}
		out = append(out, left+formatter.Dim("│")+v.renderBand(b, tw))
	}

	byLine := make(map[int][]*chart.Fragment)
	for _, f := range c.Fragments {
		byLine[f.Top] = append(byLine[f.Top], f)
	}
	todayCol := -1
	if !c.Today.IsZero() {
		todayCol = timescale.CellsFromPixels(timescale.DaysBetween(c.Start, c.Today)*c.PixelsPerDay) - v.scrollX
	}

	top := c.ContentTop() + v.scrollY
	for i := 0; len(out) < v.height; i++ {
		line := top + i
		subject := strings.Repeat(" ", subjectWidth)
		if s, ok := c.SubjectAt(line); ok {
			subject = v.renderSubject(s)
		} else if v.scrollY+i >= len(c.Subjects) {
			break
		}
		canvas := newCanvasLine(tw)
		canvas.put(todayCol, '┊', paintToday)
		for _, f := range byLine[line] {
			v.drawFragment(canvas, f)
		}
		out = append(out, subject+formatter.Dim("│")+canvas.render())
	}
	return out
}

func (v chartView) renderBand(b *chart.Band, width int) string {
	canvas := newCanvasLine(width)
	p := paintDim
	if b.Level == chart.LevelCoarse {
		p = paintHeader
	}
	for _, cell := range b.Cells {
		from, to := cellSpan(cell.Left, cell.Width)
		from -= v.scrollX
		to -= v.scrollX
		if to <= 0 || from >= width {
			continue
		}
		span := to - from
		if b.Level != chart.LevelFine && span > 1 {
			canvas.put(from, '▏', paintDim)
			canvas.text(from+1, cell.Label, p, span-1)
			continue
		}
		canvas.text(from, cell.Label, p, span)
	}
	return canvas.render()
}

func (v chartView) drawFragment(canvas *canvasLine, f *chart.Fragment) {
	if f.Kind == chart.FragmentLabel {
		canvas.text(timescale.CellsFromPixels(f.Left)-v.scrollX, f.Text, paintLabel, len(f.Text))
		return
	}
	if f.Width <= 0 {
		return
	}
	p := paintTodo
	switch f.Kind {
	case chart.FragmentLate:
		p = paintLate
	case chart.FragmentDone:
		p = paintDone
	}
	from, to := cellSpan(f.Left, f.Width)
	for col := from; col < to; col++ {
		canvas.put(col-v.scrollX, '█', p)
	}
}

func (v chartView) renderSubject(s *chart.Subject) string {
	text := strings.Repeat("  ", s.Depth) + s.Text
	text = ansi.Truncate(text, subjectWidth-1, "…")
	switch {
	case s.Highlight:
		text = formatter.StyleHighlight.Render(text)
	case s.ItemID == v.dragSource && v.dragSource != 0:
		text = formatter.StyleYellowBold.Render(text)
	}
	return padCells(text, subjectWidth)
}

// padCells pads s with spaces to width visible cells.
func padCells(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// hitKind classifies what lies under a cell of the chart area.
type hitKind int

const (
	hitNone hitKind = iota
	hitHeader
	hitSubject
	hitBar
)

// hit is the result of mapping an area cell to the chart.
type hit struct {
	kind   hitKind
	line   int
	px     int
	itemID int
	onEdge bool
	edge   engine.Edge
}

// pixelAt converts an area column to a chart pixel.
func (v chartView) pixelAt(x int) int {
	return timescale.PixelsFromCells(x - chartX0 + v.scrollX)
}

// lineAt converts an area row to a chart line; ok is false on the header.
func (v chartView) lineAt(y int) (int, bool) {
	header := v.chart.HeaderLines()
	if y < header {
		return 0, false
	}
	return v.chart.ContentTop() + v.scrollY + (y - header), true
}

// hitTest maps cell (x, y) of the area to the chart element under it.
func (v chartView) hitTest(x, y int) hit {
	if v.chart == nil || y < 0 || y >= v.height || x < 0 || x >= v.width {
		return hit{}
	}
	line, ok := v.lineAt(y)
	if !ok {
		return hit{kind: hitHeader}
	}
	h := hit{line: line, px: v.pixelAt(x)}
	if x < subjectWidth {
		if s, ok := v.chart.SubjectAt(line); ok {
			h.kind = hitSubject
			h.itemID = s.ItemID
		}
		return h
	}
	if x < chartX0 {
		return h
	}
	id, ok := v.chart.ItemAt(h.px, line)
	if !ok {
		return h
	}
	h.kind = hitBar
	h.itemID = id
	left, width, _ := v.chart.BarExtent(id)
	from, to := cellSpan(left, width)
	col := x - chartX0 + v.scrollX
	if to-from >= minEdgeCells {
		switch col {
		case from:
			h.onEdge, h.edge = true, engine.EdgeLeading
		case to - 1:
			h.onEdge, h.edge = true, engine.EdgeTrailing
		}
	}
	return h
}

// renderStatic renders the whole chart without scrolling, for output that
// is not a terminal.
func renderStatic(c *chart.Chart, title string) string {
	_, to := cellSpan(0, c.Width())
	v := chartView{
		chart:  c,
		width:  chartX0 + to + 6,
		height: c.HeaderLines() + len(c.Subjects),
		title:  title,
	}
	return strings.Join(v.lines(), "\n") + "\n"
}
