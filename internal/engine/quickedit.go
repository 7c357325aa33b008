package engine

import (
	"fmt"
	"sort"

	"github.com/yken-tsuru/ganttx/internal/domain"
)

// Popup dimensions in terminal cells.
const (
	PopupWidth  = 40
	PopupHeight = 16
)

// QuickEditFields are the values edited in the popup.
type QuickEditFields struct {
	StartDate  string
	DueDate    string
	DoneRatio  int
	AssigneeID int
}

// Patch returns all four fields as one update.
func (f QuickEditFields) Patch() domain.Patch {
	p := domain.Patch{
		domain.FieldStartDate: f.StartDate,
		domain.FieldDueDate:   f.DueDate,
	}
	p.SetInt(domain.FieldDoneRatio, f.DoneRatio)
	p.SetInt(domain.FieldAssignee, f.AssigneeID)
	return p
}

// Popup is the open quick-edit panel.
type Popup struct {
	ItemID          int
	Title           string
	X, Y            int
	Width, Height   int
	Fields          QuickEditFields
	DoneOptions     []int
	AssigneeOptions []domain.RosterEntry
}

// Contains reports whether cell (x, y) lies inside the popup.
func (p *Popup) Contains(x, y int) bool {
	return x >= p.X && x < p.X+p.Width && y >= p.Y && y < p.Y+p.Height
}

// QuickEditController owns the single quick-edit popup.
type QuickEditController struct {
	cfg   domain.PageConfig
	popup *Popup
}

func NewQuickEditController(cfg domain.PageConfig) *QuickEditController {
	cfg.Strings = cfg.Strings.WithDefaults()
	return &QuickEditController{cfg: cfg}
}

// Open replaces any open popup with one for item, anchored at cell (x, y)
// and clamped to the viewport.
func (q *QuickEditController) Open(item *domain.ScheduleItem, x, y, viewportWidth, viewportHeight int) *Popup {
	q.Close()

	w, h := PopupWidth, PopupHeight
	if viewportWidth > 0 && w > viewportWidth {
		w = viewportWidth
	}
	if viewportWidth > 0 && x+w > viewportWidth {
		x = viewportWidth - w
	}
	if viewportHeight > 0 && y+h > viewportHeight {
		y = max(viewportHeight-h, 0)
	}
	x = max(x, 0)

	q.popup = &Popup{
		ItemID: item.ID,
		Title:  fmt.Sprintf("%s #%d", q.cfg.Strings.TitleEditIssue, item.ID),
		X:      x,
		Y:      y,
		Width:  w,
		Height: h,
		Fields: QuickEditFields{
			StartDate:  item.StartDate,
			DueDate:    item.DueDate,
			DoneRatio:  item.DoneRatio,
			AssigneeID: item.AssigneeID,
		},
		DoneOptions:     DoneRatioOptions(item.DoneRatio),
		AssigneeOptions: AssigneeOptions(q.cfg.Roster, item, q.cfg.Strings.LabelNone),
	}
	return q.popup
}

// Current returns the open popup or nil.
func (q *QuickEditController) Current() *Popup { return q.popup }

// Close discards the popup without saving.
func (q *QuickEditController) Close() { q.popup = nil }

// ClickAt closes the popup when (x, y) is outside it and reports whether
// it did.
func (q *QuickEditController) ClickAt(x, y int) bool {
	if q.popup == nil || q.popup.Contains(x, y) {
		return false
	}
	q.Close()
	return true
}

// Save closes the popup and returns the update to submit.
func (q *QuickEditController) Save(fields QuickEditFields) (int, domain.Patch, bool) {
	if q.popup == nil {
		return 0, nil, false
	}
	id := q.popup.ItemID
	q.Close()
	return id, fields.Patch(), true
}

// Strings returns the message catalog.
func (q *QuickEditController) Strings() domain.Strings { return q.cfg.Strings }

// DoneRatioOptions returns 0..100 in steps of 10 plus current when it is
// off-step.
func DoneRatioOptions(current int) []int {
	opts := make([]int, 0, 12)
	found := false
	for v := 0; v <= 100; v += 10 {
		opts = append(opts, v)
		found = found || v == current
	}
	if !found {
		opts = append(opts, current)
		sort.Ints(opts)
	}
	return opts
}

// AssigneeOptions returns "none" followed by the roster. An assignee missing
// from the roster is appended so the form never drops it.
func AssigneeOptions(roster []domain.RosterEntry, item *domain.ScheduleItem, noneLabel string) []domain.RosterEntry {
	opts := make([]domain.RosterEntry, 0, len(roster)+2)
	opts = append(opts, domain.RosterEntry{ID: 0, Name: noneLabel})
	found := false
	for _, r := range roster {
		opts = append(opts, r)
		found = found || r.ID == item.AssigneeID
	}
	if item.AssigneeID != 0 && !found {
		name := item.AssigneeName
		if name == "" {
			name = fmt.Sprintf("#%d", item.AssigneeID)
		}
		opts = append(opts, domain.RosterEntry{ID: item.AssigneeID, Name: name})
	}
	return opts
}
