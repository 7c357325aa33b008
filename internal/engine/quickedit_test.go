package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yken-tsuru/ganttx/internal/domain"
)

func TestDoneRatioOptions(t *testing.T) {
	assert.Equal(t, []int{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100}, DoneRatioOptions(40))
	assert.Equal(t, []int{0, 10, 20, 30, 35, 40, 50, 60, 70, 80, 90, 100}, DoneRatioOptions(35))
}

func TestAssigneeOptions_EmptyRosterNoAssignee(t *testing.T) {
	opts := AssigneeOptions(nil, &domain.ScheduleItem{ID: 1}, "(none)")
	assert.Equal(t, []domain.RosterEntry{{ID: 0, Name: "(none)"}}, opts)
}

func TestAssigneeOptions_KeepsAssigneeMissingFromRoster(t *testing.T) {
	item := &domain.ScheduleItem{ID: 1, AssigneeID: 9, AssigneeName: "Carol"}

	opts := AssigneeOptions(nil, item, "(none)")
	assert.Equal(t, []domain.RosterEntry{{ID: 0, Name: "(none)"}, {ID: 9, Name: "Carol"}}, opts)

	roster := []domain.RosterEntry{{ID: 9, Name: "Carol"}, {ID: 4, Name: "Dan"}}
	opts = AssigneeOptions(roster, item, "(none)")
	assert.Len(t, opts, 3)
}

func TestQuickEdit_OpenClampsToViewport(t *testing.T) {
	q := NewQuickEditController(domain.PageConfig{})

	p := q.Open(&domain.ScheduleItem{ID: 4}, 90, 2, 100, 40)
	assert.Equal(t, 100-PopupWidth, p.X)
	assert.Equal(t, 2, p.Y)

	p = q.Open(&domain.ScheduleItem{ID: 4}, 10, 35, 100, 40)
	assert.Equal(t, 10, p.X)
	assert.Equal(t, 40-PopupHeight, p.Y)

	p = q.Open(&domain.ScheduleItem{ID: 4}, 10, 0, 20, 40)
	assert.Equal(t, 0, p.X)
	assert.Equal(t, 20, p.Width)
}

func TestQuickEdit_SinglePopup(t *testing.T) {
	q := NewQuickEditController(domain.PageConfig{})

	q.Open(&domain.ScheduleItem{ID: 1}, 0, 0, 100, 40)
	q.Open(&domain.ScheduleItem{ID: 2}, 0, 0, 100, 40)

	require.NotNil(t, q.Current())
	assert.Equal(t, 2, q.Current().ItemID)
}

func TestQuickEdit_ClickOutsideCloses(t *testing.T) {
	q := NewQuickEditController(domain.PageConfig{})
	p := q.Open(&domain.ScheduleItem{ID: 1}, 5, 5, 100, 40)

	assert.False(t, q.ClickAt(p.X+1, p.Y+1))
	assert.NotNil(t, q.Current())

	assert.True(t, q.ClickAt(p.X+p.Width, p.Y))
	assert.Nil(t, q.Current())
}

func TestQuickEdit_PopulatesFromItem(t *testing.T) {
	q := NewQuickEditController(domain.PageConfig{
		Roster: []domain.RosterEntry{{ID: 3, Name: "Alice"}},
	})
	item := &domain.ScheduleItem{ID: 7, StartDate: "2024-01-01", DueDate: "2024-01-31", DoneRatio: 45, AssigneeID: 3}

	p := q.Open(item, 0, 0, 100, 40)

	assert.Equal(t, "Edit issue #7", p.Title)
	assert.Equal(t, QuickEditFields{StartDate: "2024-01-01", DueDate: "2024-01-31", DoneRatio: 45, AssigneeID: 3}, p.Fields)
	assert.Contains(t, p.DoneOptions, 45)
	assert.Equal(t, []domain.RosterEntry{{ID: 0, Name: "(none)"}, {ID: 3, Name: "Alice"}}, p.AssigneeOptions)
}

func TestQuickEdit_SaveSubmitsAllFieldsAndCloses(t *testing.T) {
	q := NewQuickEditController(domain.PageConfig{})
	q.Open(&domain.ScheduleItem{ID: 7}, 0, 0, 100, 40)

	id, patch, ok := q.Save(QuickEditFields{StartDate: "2024-01-01", DueDate: "", DoneRatio: 30})

	require.True(t, ok)
	assert.Equal(t, 7, id)
	assert.Nil(t, q.Current())
	assert.Equal(t, domain.Patch{
		domain.FieldStartDate: "2024-01-01",
		domain.FieldDueDate:   "",
		domain.FieldDoneRatio: "30",
		domain.FieldAssignee:  "",
	}, patch)

	_, _, ok = q.Save(QuickEditFields{})
	assert.False(t, ok)
}
