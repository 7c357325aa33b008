package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/yken-tsuru/ganttx/internal/domain"
)

func splitLines(s string) []string { return strings.Split(s, "\n") }

func visibleWidth(s string) int { return lipgloss.Width(s) }

func TestFormatIssue_ShowsScheduleAndEdits(t *testing.T) {
	item := &domain.ScheduleItem{
		ID: 7, Subject: "Write docs", StartDate: "2024-01-10", DueDate: "2024-01-12",
		DoneRatio: 30, AssigneeID: 4, AssigneeName: "Dana", ParentID: 2,
	}
	recent := []*domain.EditRecord{{
		IssueID: 7, Kind: domain.EditMove, Fields: "start_date=2024-01-10 due_date=2024-01-12",
		Outcome: domain.OutcomeApplied, CreatedAt: time.Now(),
	}}

	out := FormatIssue(item, recent)
	assert.Contains(t, out, "#7")
	assert.Contains(t, out, "Write docs")
	assert.Contains(t, out, "2024-01-10 → 2024-01-12")
	assert.Contains(t, out, " 30%")
	assert.Contains(t, out, "Dana")
	assert.Contains(t, out, "#2")
	assert.Contains(t, out, "applied")
}

func TestFormatIssue_Unassigned(t *testing.T) {
	out := FormatIssue(&domain.ScheduleItem{ID: 1, Subject: "x"}, nil)
	assert.Contains(t, out, "(none)")
	assert.NotContains(t, out, "Recent edits")
}

func TestFormatIssue_RendersDescription(t *testing.T) {
	out := FormatIssue(&domain.ScheduleItem{
		ID: 1, Subject: "x", Description: "Ship the **beta** build.\n\n- docs\n- release notes",
	}, nil)
	assert.Contains(t, out, "Description")
	assert.Contains(t, out, "beta")
	assert.Contains(t, out, "release notes")

	assert.NotContains(t, FormatIssue(&domain.ScheduleItem{ID: 1, Description: "  \n"}, nil), "Description")
}

func TestFormatEditLog(t *testing.T) {
	out := FormatEditLog([]*domain.EditRecord{{
		IssueID: 3, Kind: domain.EditResize, Fields: "due_date=2024-02-01",
		Outcome: domain.OutcomeValidation, Detail: "Due date is invalid\nmore", CreatedAt: time.Now(),
	}})
	assert.Contains(t, out, "#3")
	assert.Contains(t, out, "resize")
	assert.Contains(t, out, "validation_failed")
	assert.Contains(t, out, "Due date is invalid…")
	assert.NotContains(t, out, "more")
}

func TestFormatEditLog_Empty(t *testing.T) {
	assert.Contains(t, FormatEditLog(nil), "No entries.")
}

func TestFormatPatch(t *testing.T) {
	p := domain.Patch{domain.FieldStartDate: "2024-01-13", domain.FieldDueDate: "2024-01-15"}
	out := FormatPatch(12, p)
	assert.Contains(t, out, "#12")
	assert.Contains(t, out, "2024-01-13")
	assert.Contains(t, FormatPatch(12, nil), "no change")
}
