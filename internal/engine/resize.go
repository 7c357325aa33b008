package engine

import (
	"github.com/yken-tsuru/ganttx/internal/chart"
	"github.com/yken-tsuru/ganttx/internal/domain"
	"github.com/yken-tsuru/ganttx/internal/timescale"
)

// Edge is the bar handle being dragged.
type Edge int

const (
	EdgeLeading Edge = iota
	EdgeTrailing
)

func (e Edge) String() string {
	if e == EdgeLeading {
		return "leading"
	}
	return "trailing"
}

// ResizePreview is the live feedback of an edge drag.
type ResizePreview struct {
	ItemID int
	Field  domain.Field
	Days   int
	// Date is the previewed value of Field; empty until the snapshot has
	// arrived or when the bound is absent.
	Date  string
	Ready bool
}

// ResizeController drags one edge of a bar on the day grid.
type ResizeController struct {
	session
	edge      Edge
	baseLeft  int
	baseWidth int
	left      int
	width     int
}

func NewResizeController(pending *PendingSet) *ResizeController {
	return &ResizeController{session: newSession(pending)}
}

// Start begins dragging edge of item id.
func (r *ResizeController) Start(c *chart.Chart, id int, edge Edge, pointerX, ppd int) (int, error) {
	seq, err := r.begin(c, id, pointerX, ppd)
	if err != nil {
		return 0, err
	}
	r.edge = edge
	r.baseLeft, r.baseWidth, _ = c.BarExtent(id)
	r.left, r.width = r.baseLeft, r.baseWidth
	return seq, nil
}

// SetSnapshot supplies the preview snapshot fetched for gesture seq.
func (r *ResizeController) SetSnapshot(seq int, item *domain.ScheduleItem, err error) bool {
	return r.setSnapshot(seq, item, err)
}

// Drag moves the edge to pointerX, snapped to whole days and clamped to a
// one-day minimum width.
func (r *ResizeController) Drag(pointerX int) ResizePreview {
	if !r.active {
		return ResizePreview{}
	}
	r.left, r.width = resizeGeometry(r.edge, r.baseLeft, r.baseWidth, pointerX-r.originX, r.ppd)
	r.chart.ReflowBar(r.itemID, r.left, r.width)

	field, days := Classify(r.baseLeft, r.baseWidth, r.left, r.width, r.ppd)
	p := ResizePreview{ItemID: r.itemID, Field: field, Days: days}
	if r.snapshot != nil {
		p.Ready = true
		if field == domain.FieldStartDate {
			p.Date = previewBound(r.snapshot.StartDate, days)
		} else {
			p.Date = previewBound(r.snapshot.DueDate, days)
		}
	}
	return p
}

// End finishes the drag and reports the single field to change. A zero
// delta restores the bar and returns days == 0.
func (r *ResizeController) End(pointerX int) (id int, field domain.Field, days int) {
	if !r.active {
		return 0, "", 0
	}
	r.Drag(pointerX)
	id = r.itemID
	field, days = Classify(r.baseLeft, r.baseWidth, r.left, r.width, r.ppd)
	r.settle(days != 0)
	return id, field, days
}

// Edge returns the handle of the current or last gesture.
func (r *ResizeController) Edge() Edge { return r.edge }

func resizeGeometry(edge Edge, left, width, dx, ppd int) (int, int) {
	if ppd <= 0 {
		ppd = timescale.DefaultPixelsPerDay
	}
	dx = timescale.SnapToDay(dx, ppd)
	if edge == EdgeLeading {
		newLeft, newWidth := left+dx, width-dx
		if newWidth < ppd {
			return left + width - ppd, ppd
		}
		return newLeft, newWidth
	}
	return left, max(width+dx, ppd)
}

// Classify decides which bound a resize changes. A left edge that moved by
// more than the noise threshold means the start date; otherwise the due
// date, whatever happened to the width.
func Classify(baseLeft, baseWidth, left, width, ppd int) (domain.Field, int) {
	if d := left - baseLeft; d > timescale.NoiseThresholdPx || d < -timescale.NoiseThresholdPx {
		return domain.FieldStartDate, timescale.DaysFromPixelDelta(d, ppd)
	}
	return domain.FieldDueDate, timescale.DaysFromPixelDelta((left+width)-(baseLeft+baseWidth), ppd)
}
