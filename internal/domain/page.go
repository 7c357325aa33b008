package domain

import (
	"fmt"
	"strings"
)

// Strings is the message catalog delivered with the page.
type Strings struct {
	TitleEditIssue        string `mapstructure:"title_edit_issue" yaml:"title_edit_issue"`
	LabelStartDate        string `mapstructure:"label_start_date" yaml:"label_start_date"`
	LabelDueDate          string `mapstructure:"label_due_date" yaml:"label_due_date"`
	LabelDoneRatio        string `mapstructure:"label_done_ratio" yaml:"label_done_ratio"`
	LabelAssignee         string `mapstructure:"label_assignee" yaml:"label_assignee"`
	LabelNone             string `mapstructure:"label_none" yaml:"label_none"`
	LabelParentIssueID    string `mapstructure:"label_parent_issue_id" yaml:"label_parent_issue_id"`
	ButtonSave            string `mapstructure:"button_save" yaml:"button_save"`
	ButtonCancel          string `mapstructure:"button_cancel" yaml:"button_cancel"`
	ConfirmChangeParent   string `mapstructure:"confirm_change_parent" yaml:"confirm_change_parent"`
	ErrorFetchIssue       string `mapstructure:"error_fetch_issue" yaml:"error_fetch_issue"`
	ErrorUpdateFailed     string `mapstructure:"error_update_failed" yaml:"error_update_failed"`
	ErrorPermissionDenied string `mapstructure:"error_permission_denied" yaml:"error_permission_denied"`
	ErrorValidationFailed string `mapstructure:"error_validation_failed" yaml:"error_validation_failed"`
	Loading               string `mapstructure:"loading" yaml:"loading"`
}

// DefaultStrings returns the built-in English catalog.
func DefaultStrings() Strings {
	return Strings{
		TitleEditIssue:        "Edit issue",
		LabelStartDate:        "Start date",
		LabelDueDate:          "Due date",
		LabelDoneRatio:        "% Done",
		LabelAssignee:         "Assignee",
		LabelNone:             "(none)",
		LabelParentIssueID:    "Parent Issue ID",
		ButtonSave:            "Save",
		ButtonCancel:          "Cancel",
		ConfirmChangeParent:   "Change the parent of %s to %s?",
		ErrorFetchIssue:       "Error: Could not fetch issue data.",
		ErrorUpdateFailed:     "Failed to update issue",
		ErrorPermissionDenied: "Permission denied: You do not have permission to edit this issue.",
		ErrorValidationFailed: "Validation failed",
		Loading:               "Loading...",
	}
}

// WithDefaults fills every empty message from DefaultStrings.
func (s Strings) WithDefaults() Strings {
	d := DefaultStrings()
	s.TitleEditIssue = CoalesceStr(s.TitleEditIssue, d.TitleEditIssue)
	s.LabelStartDate = CoalesceStr(s.LabelStartDate, d.LabelStartDate)
	s.LabelDueDate = CoalesceStr(s.LabelDueDate, d.LabelDueDate)
	s.LabelDoneRatio = CoalesceStr(s.LabelDoneRatio, d.LabelDoneRatio)
	s.LabelAssignee = CoalesceStr(s.LabelAssignee, d.LabelAssignee)
	s.LabelNone = CoalesceStr(s.LabelNone, d.LabelNone)
	s.LabelParentIssueID = CoalesceStr(s.LabelParentIssueID, d.LabelParentIssueID)
	s.ButtonSave = CoalesceStr(s.ButtonSave, d.ButtonSave)
	s.ButtonCancel = CoalesceStr(s.ButtonCancel, d.ButtonCancel)
	s.ConfirmChangeParent = CoalesceStr(s.ConfirmChangeParent, d.ConfirmChangeParent)
	s.ErrorFetchIssue = CoalesceStr(s.ErrorFetchIssue, d.ErrorFetchIssue)
	s.ErrorUpdateFailed = CoalesceStr(s.ErrorUpdateFailed, d.ErrorUpdateFailed)
	s.ErrorPermissionDenied = CoalesceStr(s.ErrorPermissionDenied, d.ErrorPermissionDenied)
	s.ErrorValidationFailed = CoalesceStr(s.ErrorValidationFailed, d.ErrorValidationFailed)
	s.Loading = CoalesceStr(s.Loading, d.Loading)
	return s
}

// ConfirmParentText names both issues in the reparent confirmation prompt.
// The catalog entry takes the child then the parent as two %s verbs. An
// entry without verbs gets "(child → parent)" appended; any other verb
// layout falls back to the default wording.
func (s Strings) ConfirmParentText(child, parent string) string {
	text := s.ConfirmChangeParent
	switch n, ok := stringVerbs(text); {
	case ok && n == 2:
		return fmt.Sprintf(text, child, parent)
	case ok && n == 0 && text != "":
		return strings.ReplaceAll(text, "%%", "%") + " (" + child + " → " + parent + ")"
	default:
		return fmt.Sprintf(DefaultStrings().ConfirmChangeParent, child, parent)
	}
}

// stringVerbs counts the formatting verbs in format. ok is false when any
// verb is not a plain %s.
func stringVerbs(format string) (n int, ok bool) {
	for i := 0; i < len(format); i++ {
		if format[i] != '%' {
			continue
		}
		i++
		switch {
		case i < len(format) && format[i] == '%':
		case i < len(format) && format[i] == 's':
			n++
		default:
			return n, false
		}
	}
	return n, true
}

// PageConfig is the read-only snapshot handed to the editing engine once
// per page load.
type PageConfig struct {
	ProjectID string
	Strings   Strings
	Roster    []RosterEntry
}
