package chart

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaderTransformer_Apply(t *testing.T) {
	c := buildTestChart(t, 3)
	h := NewHeaderTransformer(0, nil)

	require.True(t, h.Apply(c))

	assert.True(t, c.Band(LevelMedium).Hidden)
	assert.Equal(t, 2, c.HeaderLines())
	assert.Equal(t, 1, c.Band(LevelFine).Top)
	s, _ := c.Subject(1)
	assert.Equal(t, 2, s.Top)
	assert.Equal(t, "1", c.Band(LevelFine).Cells[0].Label)
	assert.Equal(t, "31", c.Band(LevelFine).Cells[30].Label)
}

func TestHeaderTransformer_Idempotent(t *testing.T) {
	c := buildTestChart(t, 3)
	h := NewHeaderTransformer(0, nil)

	h.Apply(c)
	assert.False(t, h.Apply(c))

	assert.Equal(t, 1, c.Band(LevelFine).Top)
	s, _ := c.Subject(1)
	assert.Equal(t, 2, s.Top)
}

func TestHeaderTransformer_KeepsWeekdaysWhenNarrow(t *testing.T) {
	c := buildTestChart(t, 1)
	h := NewHeaderTransformer(0, nil)

	h.Apply(c)

	assert.True(t, c.Band(LevelMedium).Hidden)
	assert.Equal(t, FineWeekday, c.FineStyle())
	assert.Equal(t, "M", c.Band(LevelFine).Cells[0].Label)
}

func TestHeaderTransformer_DropsOverlappingInvocations(t *testing.T) {
	h := NewHeaderTransformer(time.Hour, nil)
	first := buildTestChart(t, 3)
	second := buildTestChart(t, 3)

	require.True(t, h.Apply(first))
	assert.True(t, h.Busy())

	assert.False(t, h.Apply(second))
	assert.False(t, second.Band(LevelMedium).Hidden)

	h.Detach()
	assert.False(t, h.Busy())
}

func TestHeaderTransformer_SettleDelayClearsBusy(t *testing.T) {
	h := NewHeaderTransformer(10*time.Millisecond, nil)

	h.Apply(buildTestChart(t, 3))
	assert.Eventually(t, func() bool { return !h.Busy() }, time.Second, 5*time.Millisecond)
}

func TestHeaderTransformer_AttachReappliesAfterReplace(t *testing.T) {
	c := buildTestChart(t, 3)
	h := NewHeaderTransformer(0, nil)

	h.Attach(c)
	require.True(t, c.Band(LevelMedium).Hidden)

	c.Replace(buildTestChart(t, 3))

	assert.True(t, c.Band(LevelMedium).Hidden)
	assert.Equal(t, 1, c.Band(LevelFine).Top)
	s, _ := c.Subject(1)
	assert.Equal(t, 2, s.Top)
}

func TestHeaderTransformer_DetachStopsReapplying(t *testing.T) {
	c := buildTestChart(t, 3)
	h := NewHeaderTransformer(0, nil)

	h.Attach(c)
	h.Detach()
	c.Replace(buildTestChart(t, 3))

	assert.False(t, c.Band(LevelMedium).Hidden)
	assert.Equal(t, 3, c.HeaderLines())
}
