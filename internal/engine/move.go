package engine

import (
	"github.com/yken-tsuru/ganttx/internal/chart"
	"github.com/yken-tsuru/ganttx/internal/domain"
	"github.com/yken-tsuru/ganttx/internal/timescale"
)

// Preview is the live feedback of a drag.
type Preview struct {
	ItemID int
	Days   int
	// StartDate and DueDate are the previewed bounds; empty when the bound
	// is absent or the snapshot has not arrived.
	StartDate string
	DueDate   string
	// Ready is false until the schedule snapshot has arrived.
	Ready bool
}

// MoveController drags a whole bar: every fragment of the item is
// translated by the same pixel delta.
type MoveController struct {
	session
}

// NewMoveController returns a controller that refuses items committing in
// pending. A nil pending gives the controller a set of its own.
func NewMoveController(pending *PendingSet) *MoveController {
	return &MoveController{session: newSession(pending)}
}

// Start begins a drag of item id at pointerX. ppd must be read from the
// current zoom at gesture start. The returned sequence number tags the
// preview fetch.
func (m *MoveController) Start(c *chart.Chart, id, pointerX, ppd int) (int, error) {
	return m.begin(c, id, pointerX, ppd)
}

// SetSnapshot supplies the preview snapshot fetched for gesture seq.
func (m *MoveController) SetSnapshot(seq int, item *domain.ScheduleItem, err error) bool {
	return m.setSnapshot(seq, item, err)
}

// Drag translates the related set to pointerX.
func (m *MoveController) Drag(pointerX int) Preview {
	if !m.active {
		return Preview{}
	}
	dx := pointerX - m.originX
	for _, b := range m.baselines {
		b.frag.Left = b.left + dx
	}
	return m.preview(timescale.DaysFromPixelDelta(dx, m.ppd))
}

func (m *MoveController) preview(days int) Preview {
	p := Preview{ItemID: m.itemID, Days: days}
	if m.snapshot != nil {
		p.Ready = true
		p.StartDate = previewBound(m.snapshot.StartDate, days)
		p.DueDate = previewBound(m.snapshot.DueDate, days)
	}
	return p
}

// End finishes the drag. The day delta comes from the total displacement.
// Zero restores the baseline and returns 0; otherwise the item enters the
// committing state and the delta is returned.
func (m *MoveController) End(pointerX int) (id, days int) {
	if !m.active {
		return 0, 0
	}
	id = m.itemID
	days = timescale.DaysFromPixelDelta(pointerX-m.originX, m.ppd)
	if days == 0 {
		m.settle(false)
		return id, 0
	}
	snapped := timescale.PixelsFromDays(days, m.ppd)
	for _, b := range m.baselines {
		b.frag.Left = b.left + snapped
	}
	m.settle(true)
	return id, days
}
