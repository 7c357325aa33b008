package redmine

import "github.com/yken-tsuru/ganttx/internal/domain"

type refJSON struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// issueJSON is the subset of the issue representation the engine reads.
type issueJSON struct {
	ID          int      `json:"id"`
	Subject     string   `json:"subject"`
	Project     *refJSON `json:"project"`
	Parent      *refJSON `json:"parent"`
	StartDate   *string  `json:"start_date"`
	DueDate     *string  `json:"due_date"`
	DoneRatio   int      `json:"done_ratio"`
	AssignedTo  *refJSON `json:"assigned_to"`
	Description string   `json:"description"`
}

type issueEnvelope struct {
	Issue *issueJSON `json:"issue"`
}

type issueListEnvelope struct {
	Issues     []issueJSON `json:"issues"`
	TotalCount int         `json:"total_count"`
	Offset     int         `json:"offset"`
	Limit      int         `json:"limit"`
}

type membershipJSON struct {
	User  *refJSON `json:"user"`
	Group *refJSON `json:"group"`
}

type membershipListEnvelope struct {
	Memberships []membershipJSON `json:"memberships"`
	TotalCount  int              `json:"total_count"`
}

type errorsEnvelope struct {
	Errors []string `json:"errors"`
}

func (j *issueJSON) toDomain() *domain.ScheduleItem {
	item := &domain.ScheduleItem{
		ID:          j.ID,
		Subject:     j.Subject,
		DoneRatio:   j.DoneRatio,
		Description: j.Description,
	}
	if j.Project != nil {
		item.ProjectID = j.Project.ID
	}
	if j.Parent != nil {
		item.ParentID = j.Parent.ID
	}
	if j.StartDate != nil {
		item.StartDate = *j.StartDate
	}
	if j.DueDate != nil {
		item.DueDate = *j.DueDate
	}
	if j.AssignedTo != nil {
		item.AssigneeID = j.AssignedTo.ID
		item.AssigneeName = j.AssignedTo.Name
	}
	return item
}
