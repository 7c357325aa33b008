package engine

import (
	"errors"

	"github.com/yken-tsuru/ganttx/internal/chart"
	"github.com/yken-tsuru/ganttx/internal/domain"
)

var (
	// ErrGestureActive is returned when a gesture starts while another one
	// of the same controller is still being dragged.
	ErrGestureActive = errors.New("a gesture is already active")
	// ErrItemBusy is returned when the item has a commit in flight from any
	// controller sharing the same PendingSet.
	ErrItemBusy = errors.New("item has a pending update")
	// ErrNoBar is returned when the item has no rendered bar.
	ErrNoBar = errors.New("item has no bar")
)

// State is the phase of a gesture on one item.
type State int

const (
	StateIdle State = iota
	StateDragging
	StateCommitting
)

func (s State) String() string {
	switch s {
	case StateDragging:
		return "dragging"
	case StateCommitting:
		return "committing"
	default:
		return "idle"
	}
}

// PendingSet records the items with a gesture commit in flight. Controllers
// built over the same set refuse to start on each other's committing items.
type PendingSet struct {
	items map[int]struct{}
}

func NewPendingSet() *PendingSet {
	return &PendingSet{items: make(map[int]struct{})}
}

// Has reports whether item id has a commit in flight.
func (p *PendingSet) Has(id int) bool {
	if p == nil {
		return false
	}
	_, ok := p.items[id]
	return ok
}

func (p *PendingSet) add(id int) { p.items[id] = struct{}{} }

func (p *PendingSet) remove(id int) { delete(p.items, id) }

type baseline struct {
	frag  *chart.Fragment
	left  int
	width int
}

// session is the state shared by the bar gestures: the related fragments
// captured at gesture start, the pointer baseline and the lazily fetched
// schedule snapshot.
type session struct {
	chart     *chart.Chart
	itemID    int
	ppd       int
	originX   int
	baselines []baseline
	snapshot  *domain.ScheduleItem
	seq       int
	active    bool

	pending map[int][]baseline
	busy    *PendingSet
}

func newSession(busy *PendingSet) session {
	if busy == nil {
		busy = NewPendingSet()
	}
	return session{busy: busy}
}

func (s *session) begin(c *chart.Chart, id, pointerX, ppd int) (int, error) {
	if s.active {
		return 0, ErrGestureActive
	}
	if s.busy.Has(id) {
		return 0, ErrItemBusy
	}
	related := c.Related(id)
	if _, _, ok := c.BarExtent(id); !ok {
		return 0, ErrNoBar
	}

	s.seq++
	s.chart = c
	s.itemID = id
	s.ppd = ppd
	s.originX = pointerX
	s.snapshot = nil
	s.active = true
	s.baselines = make([]baseline, len(related))
	for i, f := range related {
		s.baselines[i] = baseline{frag: f, left: f.Left, width: f.Width}
	}
	return s.seq, nil
}

// setSnapshot stores a preview snapshot fetched for gesture seq. Results
// of older gestures and failed fetches are ignored.
func (s *session) setSnapshot(seq int, item *domain.ScheduleItem, err error) bool {
	if !s.active || seq != s.seq || err != nil || item == nil || item.ID != s.itemID {
		return false
	}
	s.snapshot = item
	return true
}

func restore(bs []baseline) {
	for _, b := range bs {
		b.frag.Left = b.left
		b.frag.Width = b.width
	}
}

// settle ends the drag. A committing gesture keeps its baselines until
// Finish or Revert.
func (s *session) settle(commit bool) {
	if commit {
		if s.pending == nil {
			s.pending = make(map[int][]baseline)
		}
		s.pending[s.itemID] = s.baselines
		s.busy.add(s.itemID)
	} else {
		restore(s.baselines)
	}
	s.active = false
	s.baselines = nil
	s.snapshot = nil
}

// Cancel abandons the active drag and restores the baseline.
func (s *session) Cancel() {
	if s.active {
		s.settle(false)
	}
}

// Revert restores item id to its pre-gesture position after a failed
// commit.
func (s *session) Revert(id int) bool {
	bs, ok := s.pending[id]
	if !ok {
		return false
	}
	restore(bs)
	delete(s.pending, id)
	s.busy.remove(id)
	return true
}

// Finish forgets the committed gesture of item id.
func (s *session) Finish(id int) {
	if _, ok := s.pending[id]; ok {
		delete(s.pending, id)
		s.busy.remove(id)
	}
}

// StateOf reports the gesture phase of item id.
func (s *session) StateOf(id int) State {
	switch {
	case s.active && s.itemID == id:
		return StateDragging
	case s.pending[id] != nil:
		return StateCommitting
	default:
		return StateIdle
	}
}

// Active reports whether a drag is in progress and on which item.
func (s *session) Active() (int, bool) { return s.itemID, s.active }

// Seq identifies the current gesture for matching async results.
func (s *session) Seq() int { return s.seq }
