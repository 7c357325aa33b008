package engine

import (
	"fmt"

	"github.com/yken-tsuru/ganttx/internal/chart"
	"github.com/yken-tsuru/ganttx/internal/domain"
)

// ParentRequest asks the user to confirm a new parent.
type ParentRequest struct {
	ItemID   int
	ParentID int
	Prompt   string
}

// ReparentController drags a subject row onto another subject row.
type ReparentController struct {
	strings domain.Strings
	pending *PendingSet

	chart  *chart.Chart
	source int
	target int
	active bool
}

func NewReparentController(strings domain.Strings, pending *PendingSet) *ReparentController {
	return &ReparentController{strings: strings.WithDefaults(), pending: pending}
}

// Start picks up the subject row on line. A row whose item has a bar
// commit in flight cannot be picked up.
func (r *ReparentController) Start(c *chart.Chart, line int) bool {
	s, ok := c.SubjectAt(line)
	if !ok || r.pending.Has(s.ItemID) {
		return false
	}
	r.chart = c
	r.source = s.ItemID
	r.target = 0
	r.active = true
	return true
}

// Active reports whether a subject is being dragged.
func (r *ReparentController) Active() bool { return r.active }

// Source is the dragged item.
func (r *ReparentController) Source() int { return r.source }

// Hover highlights the subject row on line when it is a valid target.
func (r *ReparentController) Hover(line int) int {
	if !r.active {
		return 0
	}
	r.target = 0
	if s, ok := r.chart.SubjectAt(line); ok && s.ItemID != r.source {
		r.target = s.ItemID
	}
	r.chart.SetHighlight(r.target)
	return r.target
}

// Drop ends the drag over line. Dropping on the source itself or outside
// any subject row is a no-op.
func (r *ReparentController) Drop(line int) (ParentRequest, bool) {
	if !r.active {
		return ParentRequest{}, false
	}
	target := r.Hover(line)
	r.Cancel()
	if target == 0 {
		return ParentRequest{}, false
	}
	return ParentRequest{
		ItemID:   r.source,
		ParentID: target,
		Prompt:   r.strings.ConfirmParentText(fmt.Sprintf("#%d", r.source), fmt.Sprintf("#%d", target)),
	}, true
}

// Cancel ends the drag and clears the hover highlight.
func (r *ReparentController) Cancel() {
	if r.chart != nil {
		r.chart.SetHighlight(0)
	}
	r.active = false
	r.target = 0
}
