package domain

import "fmt"

// ScheduleItem is a transient copy of a remote issue's schedule fields.
// Empty date strings mean the issue is not scheduled on that bound; zero
// ids mean "no parent" and "unassigned".
type ScheduleItem struct {
	ID           int
	ProjectID    int
	Subject      string
	ParentID     int
	StartDate    string
	DueDate      string
	DoneRatio    int
	AssigneeID   int
	AssigneeName string
	// Description is only read for display; it is never written back.
	Description string
}

// HasStart reports whether the item has a start date.
func (s *ScheduleItem) HasStart() bool { return s.StartDate != "" }

// HasDue reports whether the item has a due date.
func (s *ScheduleItem) HasDue() bool { return s.DueDate != "" }

// Label returns the "#id subject" text used in prompts and subject rows.
func (s *ScheduleItem) Label() string {
	if s.Subject == "" {
		return fmt.Sprintf("#%d", s.ID)
	}
	return fmt.Sprintf("#%d %s", s.ID, s.Subject)
}

// RosterEntry is one assignable user, supplied once per page load.
type RosterEntry struct {
	ID   int
	Name string
}
