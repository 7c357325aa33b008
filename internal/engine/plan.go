// Package engine turns pointer gestures on the chart into schedule updates:
// gesture controllers track the visual state of a drag, and the Committer
// performs the fetch-then-patch write against the issue store.
package engine

import (
	"errors"
	"fmt"

	"github.com/yken-tsuru/ganttx/internal/domain"
	"github.com/yken-tsuru/ganttx/internal/timescale"
)

var (
	// ErrBoundAbsent means the authoritative schedule lacks the bound a
	// gesture would change.
	ErrBoundAbsent = errors.New("schedule bound is not set")
	// ErrNoChange means the gesture resolved to a zero-day delta.
	ErrNoChange = errors.New("no change")
)

// PlanMove shifts every bound present on item by days.
func PlanMove(item *domain.ScheduleItem, days int) (domain.Patch, error) {
	if days == 0 {
		return nil, ErrNoChange
	}
	if !item.HasStart() && !item.HasDue() {
		return nil, ErrBoundAbsent
	}
	patch := domain.Patch{}
	if item.HasStart() {
		d, err := timescale.ShiftCalendarDate(item.StartDate, days)
		if err != nil {
			return nil, fmt.Errorf("shifting start date: %w", err)
		}
		patch[domain.FieldStartDate] = d
	}
	if item.HasDue() {
		d, err := timescale.ShiftCalendarDate(item.DueDate, days)
		if err != nil {
			return nil, fmt.Errorf("shifting due date: %w", err)
		}
		patch[domain.FieldDueDate] = d
	}
	return patch, nil
}

// PlanResize shifts exactly one bound of item by days.
func PlanResize(item *domain.ScheduleItem, field domain.Field, days int) (domain.Patch, error) {
	if days == 0 {
		return nil, ErrNoChange
	}
	var current string
	switch field {
	case domain.FieldStartDate:
		current = item.StartDate
	case domain.FieldDueDate:
		current = item.DueDate
	default:
		return nil, fmt.Errorf("resize cannot change %s", field)
	}
	if current == "" {
		return nil, ErrBoundAbsent
	}
	d, err := timescale.ShiftCalendarDate(current, days)
	if err != nil {
		return nil, fmt.Errorf("shifting %s: %w", field, err)
	}
	return domain.Patch{field: d}, nil
}

// previewBound shifts s by days, leaving an absent bound absent.
func previewBound(s string, days int) string {
	if s == "" {
		return ""
	}
	d, err := timescale.ShiftCalendarDate(s, days)
	if err != nil {
		return ""
	}
	return d
}
