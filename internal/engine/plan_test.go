package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yken-tsuru/ganttx/internal/domain"
)

func TestPlanMove_ShiftsExistingBounds(t *testing.T) {
	item := &domain.ScheduleItem{ID: 1, StartDate: "2024-01-30", DueDate: "2024-02-05"}

	patch, err := PlanMove(item, 3)
	require.NoError(t, err)
	assert.Equal(t, domain.Patch{
		domain.FieldStartDate: "2024-02-02",
		domain.FieldDueDate:   "2024-02-08",
	}, patch)
}

func TestPlanMove_NeverInventsBound(t *testing.T) {
	item := &domain.ScheduleItem{ID: 1, StartDate: "2024-12-30"}

	patch, err := PlanMove(item, 5)
	require.NoError(t, err)
	assert.Equal(t, domain.Patch{domain.FieldStartDate: "2025-01-04"}, patch)
}

func TestPlanMove_Errors(t *testing.T) {
	_, err := PlanMove(&domain.ScheduleItem{ID: 1, StartDate: "2024-01-01"}, 0)
	assert.ErrorIs(t, err, ErrNoChange)

	_, err = PlanMove(&domain.ScheduleItem{ID: 1}, 2)
	assert.ErrorIs(t, err, ErrBoundAbsent)
}

func TestPlanResize_OneField(t *testing.T) {
	item := &domain.ScheduleItem{ID: 1, StartDate: "2024-02-27", DueDate: "2024-03-01"}

	patch, err := PlanResize(item, domain.FieldStartDate, 2)
	require.NoError(t, err)
	assert.Equal(t, domain.Patch{domain.FieldStartDate: "2024-02-29"}, patch)

	patch, err = PlanResize(item, domain.FieldDueDate, -1)
	require.NoError(t, err)
	assert.Equal(t, domain.Patch{domain.FieldDueDate: "2024-02-29"}, patch)
}

func TestPlanResize_AbsentBound(t *testing.T) {
	_, err := PlanResize(&domain.ScheduleItem{ID: 1, DueDate: "2024-03-01"}, domain.FieldStartDate, 1)
	assert.ErrorIs(t, err, ErrBoundAbsent)
}

func TestPlanResize_RejectsOtherFields(t *testing.T) {
	_, err := PlanResize(&domain.ScheduleItem{ID: 1}, domain.FieldDoneRatio, 1)
	assert.Error(t, err)
}
