package testutil

import (
	"github.com/yken-tsuru/ganttx/internal/domain"
)

// IssueOption customizes a test issue.
type IssueOption func(*domain.ScheduleItem)

func WithDates(start, due string) IssueOption {
	return func(it *domain.ScheduleItem) {
		it.StartDate = start
		it.DueDate = due
	}
}

func WithParent(id int) IssueOption {
	return func(it *domain.ScheduleItem) {
		it.ParentID = id
	}
}

func WithDoneRatio(r int) IssueOption {
	return func(it *domain.ScheduleItem) {
		it.DoneRatio = r
	}
}

func WithDescription(text string) IssueOption {
	return func(it *domain.ScheduleItem) {
		it.Description = text
	}
}

func WithAssignee(id int, name string) IssueOption {
	return func(it *domain.ScheduleItem) {
		it.AssigneeID = id
		it.AssigneeName = name
	}
}

// NewTestIssue builds an issue scheduled 2024-01-10..2024-01-12 in project 1.
func NewTestIssue(id int, subject string, opts ...IssueOption) *domain.ScheduleItem {
	it := &domain.ScheduleItem{
		ID:        id,
		ProjectID: 1,
		Subject:   subject,
		StartDate: "2024-01-10",
		DueDate:   "2024-01-12",
	}
	for _, o := range opts {
		o(it)
	}
	return it
}
