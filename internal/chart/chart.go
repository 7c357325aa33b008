// Package chart is the in-memory layout of a Gantt chart: date header bands,
// subject rows and bar fragments, all positioned in pixels on the horizontal
// axis and in lines on the vertical axis.
package chart

import (
	"fmt"
	"sync"
	"time"

	"github.com/yken-tsuru/ganttx/internal/domain"
	"github.com/yken-tsuru/ganttx/internal/timescale"
)

// BandHeight is the fixed height in lines of every header band.
const BandHeight = 1

// labelGap separates a bar from its trailing label.
const labelGap = timescale.PixelsPerCell

// Level identifies a header band.
type Level int

const (
	LevelCoarse Level = iota // months
	LevelMedium              // ISO weeks
	LevelFine                // days
)

// FineStyle is how the day band is labelled.
type FineStyle int

const (
	FineWeekday FineStyle = iota
	FineDayNumber
)

// Cell is one labelled span of a header band.
type Cell struct {
	Left  int
	Width int
	Label string
	Day   timescale.Date
}

// Band is one row of the date header.
type Band struct {
	Level  Level
	Top    int
	Height int
	Hidden bool
	Cells  []Cell
}

// FragmentKind is the role of a rendered piece of an issue.
type FragmentKind string

const (
	FragmentTodo  FragmentKind = "todo"
	FragmentLate  FragmentKind = "late"
	FragmentDone  FragmentKind = "done"
	FragmentLabel FragmentKind = "label"
)

// IsBar reports whether the fragment is part of the bar itself.
func (k FragmentKind) IsBar() bool { return k != FragmentLabel }

// Fragment is one rendered piece of an issue. All fragments of an issue
// share its ItemID.
type Fragment struct {
	ItemID int
	Kind   FragmentKind
	Left   int
	Width  int
	Top    int
	Text   string
}

// Subject is the row label of an issue in the subject column.
type Subject struct {
	ItemID    int
	Text      string
	Depth     int
	Top       int
	Highlight bool
}

// Row is one issue to lay out, in display order.
type Row struct {
	Item  domain.ScheduleItem
	Depth int
}

// Options controls the chart range and scale.
type Options struct {
	Zoom  int
	Today timescale.Date
	// From is the first displayed day; zero derives it from the rows.
	From timescale.Date
	// Months is the number of displayed months; zero derives it from the rows.
	Months int
}

// maxMonths bounds a derived range.
const maxMonths = 24

var timeNow = time.Now

// Mutation is a structural change announced to observers.
type Mutation int

const (
	MutationReplace Mutation = iota
	MutationHideBand
	MutationShift
)

func (m Mutation) String() string {
	switch m {
	case MutationReplace:
		return "replace"
	case MutationHideBand:
		return "hide_band"
	case MutationShift:
		return "shift"
	default:
		return fmt.Sprintf("mutation(%d)", int(m))
	}
}

// Chart is the layout model. It is owned by the UI goroutine; only the
// observer registry is safe for concurrent use.
type Chart struct {
	Start        timescale.Date
	Days         int
	Zoom         int
	PixelsPerDay int
	Today        timescale.Date
	Truncated    bool

	Bands     []*Band
	Subjects  []*Subject
	Fragments []*Fragment

	items     map[int]domain.ScheduleItem
	index     map[int][]*Fragment
	fineStyle FineStyle

	mu        sync.Mutex
	observers map[int]func(Mutation)
	nextObs   int
}

// Build lays out rows.
func Build(rows []Row, opts Options) *Chart {
	ppd := timescale.PixelsPerDay(opts.Zoom)
	zoom := opts.Zoom
	if !timescale.ValidZoom(zoom) {
		zoom = timescale.DefaultZoom
	}
	start, months := chartRange(rows, opts)
	end := start.AddMonths(months)

	c := &Chart{
		Start:        start,
		Days:         timescale.DaysBetween(start, end),
		Zoom:         zoom,
		PixelsPerDay: ppd,
		Today:        opts.Today,
		items:        make(map[int]domain.ScheduleItem, len(rows)),
		index:        make(map[int][]*Fragment, len(rows)),
	}
	c.buildBands(end)

	top := c.HeaderLines()
	for i, r := range rows {
		line := top + i
		c.items[r.Item.ID] = r.Item
		c.Subjects = append(c.Subjects, &Subject{
			ItemID: r.Item.ID,
			Text:   r.Item.Label(),
			Depth:  r.Depth,
			Top:    line,
		})
		c.layoutItem(r.Item, line)
	}
	return c
}

func chartRange(rows []Row, opts Options) (timescale.Date, int) {
	var first, last timescale.Date
	for _, r := range rows {
		for _, s := range []string{r.Item.StartDate, r.Item.DueDate} {
			d, err := timescale.ParseDate(s)
			if err != nil {
				continue
			}
			if first.IsZero() || d.Before(first) {
				first = d
			}
			if last.IsZero() || d.After(last) {
				last = d
			}
		}
	}

	start := opts.From
	if start.IsZero() {
		start = first
		if start.IsZero() {
			start = opts.Today
		}
		if start.IsZero() {
			start = timescale.DateOf(timeNow())
		}
		start = start.FirstOfMonth()
	}

	months := opts.Months
	if months <= 0 {
		months = 1
		if !last.IsZero() && last.After(start) {
			months = (last.Year-start.Year)*12 + int(last.Month) - int(start.Month) + 1
		}
		months = min(max(months, 1), maxMonths)
	}
	return start, months
}

func (c *Chart) buildBands(end timescale.Date) {
	ppd := c.PixelsPerDay
	coarse := &Band{Level: LevelCoarse, Top: 0, Height: BandHeight}
	medium := &Band{Level: LevelMedium, Top: BandHeight, Height: BandHeight}
	fine := &Band{Level: LevelFine, Top: 2 * BandHeight, Height: BandHeight}

	for m := c.Start.FirstOfMonth(); m.Before(end); m = m.AddMonths(1) {
		from := m
		if from.Before(c.Start) {
			from = c.Start
		}
		to := m.AddMonths(1)
		if to.After(end) {
			to = end
		}
		coarse.Cells = append(coarse.Cells, Cell{
			Left:  timescale.DaysBetween(c.Start, from) * ppd,
			Width: timescale.DaysBetween(from, to) * ppd,
			Label: fmt.Sprintf("%04d-%02d", m.Year, int(m.Month)),
			Day:   from,
		})
	}

	for d := c.Start; d.Before(end); {
		next := d.AddDays(1)
		for next.Before(end) && next.Weekday() != 1 {
			next = next.AddDays(1)
		}
		_, week := d.ISOWeek()
		medium.Cells = append(medium.Cells, Cell{
			Left:  timescale.DaysBetween(c.Start, d) * ppd,
			Width: timescale.DaysBetween(d, next) * ppd,
			Label: fmt.Sprintf("%d", week),
			Day:   d,
		})
		d = next
	}

	for d := c.Start; d.Before(end); d = d.AddDays(1) {
		fine.Cells = append(fine.Cells, Cell{
			Left:  timescale.DaysBetween(c.Start, d) * ppd,
			Width: ppd,
			Label: fineLabel(d, FineWeekday),
			Day:   d,
		})
	}
	c.Bands = []*Band{coarse, medium, fine}
}

func fineLabel(d timescale.Date, style FineStyle) string {
	if style == FineDayNumber {
		return fmt.Sprintf("%d", d.Day)
	}
	return d.Weekday().String()[:1]
}

// layoutItem adds the fragments of it on line. An item with a single bound
// renders as a one-day bar on that bound; an item with none has no bar.
func (c *Chart) layoutItem(it domain.ScheduleItem, line int) {
	start, errS := timescale.ParseDate(it.StartDate)
	due, errD := timescale.ParseDate(it.DueDate)
	switch {
	case errS != nil && errD != nil:
		return
	case errS != nil:
		start = due
	case errD != nil:
		due = start
	}
	if due.Before(start) {
		due = start
	}

	ppd := c.PixelsPerDay
	left := timescale.DaysBetween(c.Start, start) * ppd
	width := (timescale.DaysBetween(start, due) + 1) * ppd

	frags := []*Fragment{{ItemID: it.ID, Kind: FragmentTodo, Top: line}}
	if !c.Today.IsZero() && it.DoneRatio < 100 {
		frags = append(frags, &Fragment{ItemID: it.ID, Kind: FragmentLate, Top: line})
	}
	if it.DoneRatio > 0 {
		frags = append(frags, &Fragment{ItemID: it.ID, Kind: FragmentDone, Top: line})
	}
	frags = append(frags, &Fragment{ItemID: it.ID, Kind: FragmentLabel, Top: line,
		Text: fmt.Sprintf("%d%%", it.DoneRatio)})

	c.index[it.ID] = frags
	c.Fragments = append(c.Fragments, frags...)
	c.ReflowBar(it.ID, left, width)
}

// ReflowBar sets the bar of item id to [left, left+width) and recomputes
// its done, late and label pieces.
func (c *Chart) ReflowBar(id, left, width int) {
	it := c.items[id]
	todayPx := timescale.DaysBetween(c.Start, c.Today)*c.PixelsPerDay + c.PixelsPerDay
	for _, f := range c.index[id] {
		switch f.Kind {
		case FragmentTodo:
			f.Left, f.Width = left, width
		case FragmentDone:
			f.Left, f.Width = left, width*it.DoneRatio/100
		case FragmentLate:
			f.Left = left
			f.Width = min(max(todayPx-left, 0), width)
		case FragmentLabel:
			f.Left, f.Width = left+width+labelGap, 0
		}
	}
}

// Item returns the schedule the chart was built from.
func (c *Chart) Item(id int) (domain.ScheduleItem, bool) {
	it, ok := c.items[id]
	return it, ok
}

// Related returns every fragment of item id.
func (c *Chart) Related(id int) []*Fragment {
	return append([]*Fragment(nil), c.index[id]...)
}

// BarExtent returns the horizontal extent of the bar of item id.
func (c *Chart) BarExtent(id int) (left, width int, ok bool) {
	for _, f := range c.index[id] {
		if f.Kind == FragmentTodo {
			return f.Left, f.Width, true
		}
	}
	return 0, 0, false
}

// ItemAt returns the item whose bar covers pixel px on line.
func (c *Chart) ItemAt(px, line int) (int, bool) {
	for _, f := range c.Fragments {
		if f.Kind == FragmentTodo && f.Top == line && px >= f.Left && px < f.Left+f.Width {
			return f.ItemID, true
		}
	}
	return 0, false
}

// SubjectAt returns the subject row on line.
func (c *Chart) SubjectAt(line int) (*Subject, bool) {
	for _, s := range c.Subjects {
		if s.Top == line {
			return s, true
		}
	}
	return nil, false
}

// Subject returns the subject row of item id.
func (c *Chart) Subject(id int) (*Subject, bool) {
	for _, s := range c.Subjects {
		if s.ItemID == id {
			return s, true
		}
	}
	return nil, false
}

// Band returns the header band at level.
func (c *Chart) Band(level Level) *Band {
	for _, b := range c.Bands {
		if b.Level == level {
			return b
		}
	}
	return nil
}

// HeaderLines is the number of lines taken by visible header bands.
func (c *Chart) HeaderLines() int {
	n := 0
	for _, b := range c.Bands {
		if !b.Hidden {
			n += b.Height
		}
	}
	return n
}

// ContentTop is the first line below the header.
func (c *Chart) ContentTop() int {
	top := 0
	for _, b := range c.Bands {
		if !b.Hidden && b.Top+b.Height > top {
			top = b.Top + b.Height
		}
	}
	return top
}

// Width is the total chart width in pixels.
func (c *Chart) Width() int { return c.Days * c.PixelsPerDay }

// DateAt returns the day under pixel px.
func (c *Chart) DateAt(px int) timescale.Date {
	if px < 0 {
		return c.Start.AddDays(-((-px + c.PixelsPerDay - 1) / c.PixelsPerDay))
	}
	return c.Start.AddDays(px / c.PixelsPerDay)
}

// FineStyle reports how the day band is labelled.
func (c *Chart) FineStyle() FineStyle { return c.fineStyle }

// HideBand hides a header band. It returns false when the band is already
// hidden or missing.
func (c *Chart) HideBand(level Level) bool {
	b := c.Band(level)
	if b == nil || b.Hidden {
		return false
	}
	b.Hidden = true
	c.notify(MutationHideBand)
	return true
}

// ShiftContent moves every band below the first hidden one, every subject
// row and every fragment by dy lines.
func (c *Chart) ShiftContent(dy int) {
	if dy == 0 {
		return
	}
	hiddenTop := -1
	for _, b := range c.Bands {
		if b.Hidden && (hiddenTop < 0 || b.Top < hiddenTop) {
			hiddenTop = b.Top
		}
	}
	for _, b := range c.Bands {
		if hiddenTop >= 0 && b.Top > hiddenTop {
			b.Top += dy
		}
	}
	for _, s := range c.Subjects {
		s.Top += dy
	}
	for _, f := range c.Fragments {
		f.Top += dy
	}
	c.notify(MutationShift)
}

// RelabelFine relabels the day band.
func (c *Chart) RelabelFine(style FineStyle) {
	b := c.Band(LevelFine)
	if b == nil {
		return
	}
	for i := range b.Cells {
		b.Cells[i].Label = fineLabel(b.Cells[i].Day, style)
	}
	c.fineStyle = style
}

// SetHighlight marks the subject row of id as a drop target and clears any
// other highlight. Zero clears all.
func (c *Chart) SetHighlight(id int) {
	for _, s := range c.Subjects {
		s.Highlight = id != 0 && s.ItemID == id
	}
}

// Replace swaps in the content of next, keeping this chart's observers.
func (c *Chart) Replace(next *Chart) {
	c.Start = next.Start
	c.Days = next.Days
	c.Zoom = next.Zoom
	c.PixelsPerDay = next.PixelsPerDay
	c.Today = next.Today
	c.Truncated = next.Truncated
	c.Bands = next.Bands
	c.Subjects = next.Subjects
	c.Fragments = next.Fragments
	c.items = next.items
	c.index = next.index
	c.fineStyle = next.fineStyle
	c.notify(MutationReplace)
}

// Observe registers fn for structural mutations. Callbacks run
// synchronously on the mutating goroutine. The returned func unregisters.
func (c *Chart) Observe(fn func(Mutation)) (cancel func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.observers == nil {
		c.observers = make(map[int]func(Mutation))
	}
	id := c.nextObs
	c.nextObs++
	c.observers[id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.observers, id)
	}
}

func (c *Chart) notify(m Mutation) {
	c.mu.Lock()
	fns := make([]func(Mutation), 0, len(c.observers))
	for _, fn := range c.observers {
		fns = append(fns, fn)
	}
	c.mu.Unlock()
	for _, fn := range fns {
		fn(m)
	}
}
