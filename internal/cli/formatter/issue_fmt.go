package formatter

import (
	"fmt"
	"strings"

	"github.com/yken-tsuru/ganttx/internal/domain"
)

// FormatIssue renders the schedule of one issue and its recent edits.
func FormatIssue(item *domain.ScheduleItem, recent []*domain.EditRecord) string {
	var b strings.Builder

	b.WriteString(Header(fmt.Sprintf("#%d", item.ID)))
	b.WriteString("\n")
	b.WriteString(Bold(item.Subject))
	b.WriteString("\n\n")

	assignee := StyleDim.Render("(none)")
	if item.AssigneeID != 0 {
		assignee = item.AssigneeName
		if assignee == "" {
			assignee = fmt.Sprintf("#%d", item.AssigneeID)
		}
	}
	parent := StyleDim.Render("—")
	if item.ParentID != 0 {
		parent = fmt.Sprintf("#%d", item.ParentID)
	}

	fmt.Fprintf(&b, "  %s  %s\n", Dim("Schedule"), DateRange(item.StartDate, item.DueDate))
	fmt.Fprintf(&b, "  %s  %s\n", Dim("Done    "), RenderDoneRatio(item.DoneRatio, 20))
	fmt.Fprintf(&b, "  %s  %s\n", Dim("Assignee"), assignee)
	fmt.Fprintf(&b, "  %s  %s\n", Dim("Parent  "), parent)

	if desc := RenderMarkdown(item.Description, 76); desc != "" {
		b.WriteString("\n")
		b.WriteString(StyleHeader.Render("Description"))
		b.WriteString("\n")
		b.WriteString(desc)
		b.WriteString("\n")
	}

	if len(recent) > 0 {
		b.WriteString("\n")
		b.WriteString(StyleHeader.Render("Recent edits"))
		b.WriteString("\n")
		for _, r := range recent {
			fmt.Fprintf(&b, "  %s  %-10s %s  %s\n",
				Dim(HumanTimestamp(r.CreatedAt)), r.Kind, OutcomeIndicator(r.Outcome), r.Fields)
		}
	}
	return b.String()
}

// FormatEditLog renders journal entries as a table, newest first.
func FormatEditLog(records []*domain.EditRecord) string {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		detail := r.Detail
		if i := strings.IndexByte(detail, '\n'); i >= 0 {
			detail = detail[:i] + "…"
		}
		rows = append(rows, []string{
			Dim(HumanTimestamp(r.CreatedAt)),
			fmt.Sprintf("#%d", r.IssueID),
			string(r.Kind),
			OutcomeIndicator(r.Outcome),
			r.Fields,
			Dim(detail),
		})
	}
	return RenderTable([]string{"WHEN", "ISSUE", "KIND", "OUTCOME", "FIELDS", "DETAIL"}, rows)
}

// FormatPatch renders an applied update such as
// "#12  start_date=2024-01-13 due_date=2024-01-15".
func FormatPatch(id int, patch domain.Patch) string {
	if len(patch) == 0 {
		return fmt.Sprintf("%s  %s\n", StyleGreen.Render(fmt.Sprintf("#%d", id)), Dim("no change"))
	}
	parts := make([]string, 0, len(patch))
	for _, f := range patch.Fields() {
		parts = append(parts, Dim(string(f)+"=")+patch[f])
	}
	return fmt.Sprintf("%s  %s\n", StyleGreen.Render(fmt.Sprintf("#%d", id)), strings.Join(parts, " "))
}
