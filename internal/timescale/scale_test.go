package timescale

import (
	"math/rand"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPixelsPerDay_KnownZoomLevels(t *testing.T) {
	assert.Equal(t, 4, PixelsPerDay(1))
	assert.Equal(t, 8, PixelsPerDay(2))
	assert.Equal(t, 16, PixelsPerDay(3))
	assert.Equal(t, 24, PixelsPerDay(4))
}

func TestPixelsPerDay_UnknownZoomUsesDefault(t *testing.T) {
	for _, z := range []int{0, -1, 5, 99} {
		assert.Equal(t, 16, PixelsPerDay(z), "zoom %d", z)
	}
}

func TestZoomFromQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"missing", "", 3},
		{"valid", "zoom=1", 1},
		{"max", "zoom=4", 4},
		{"out of range", "zoom=7", 3},
		{"garbage", "zoom=abc", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, ZoomFromQuery(q))
		})
	}
}

func TestDaysFromPixelDelta_HalfDayRoundsAwayFromZero(t *testing.T) {
	// 16 px/day: exactly half a day is 8 px.
	assert.Equal(t, 1, DaysFromPixelDelta(8, 16))
	assert.Equal(t, -1, DaysFromPixelDelta(-8, 16))
	assert.Equal(t, 0, DaysFromPixelDelta(7, 16))
	assert.Equal(t, 0, DaysFromPixelDelta(-7, 16))

	// 24 px/day: 12 px boundary, and 1.5 days = 36 px.
	assert.Equal(t, 1, DaysFromPixelDelta(12, 24))
	assert.Equal(t, 2, DaysFromPixelDelta(36, 24))
	assert.Equal(t, -2, DaysFromPixelDelta(-36, 24))
}

func TestDaysFromPixelDelta_WholeDays(t *testing.T) {
	assert.Equal(t, 3, DaysFromPixelDelta(48, 16))
	assert.Equal(t, -3, DaysFromPixelDelta(-48, 16))
	assert.Equal(t, 0, DaysFromPixelDelta(0, 16))
}

func TestDaysFromPixelDelta_NonPositiveScaleUsesDefault(t *testing.T) {
	assert.Equal(t, 2, DaysFromPixelDelta(32, 0))
}

func TestDaysFromPixelDelta_Symmetric(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 500; trial++ {
		p := rng.Intn(2000) - 1000
		s := []int{4, 8, 16, 24}[rng.Intn(4)]
		assert.Equal(t, -DaysFromPixelDelta(p, s), DaysFromPixelDelta(-p, s), "p=%d s=%d", p, s)
	}
}

func TestSnapToDay(t *testing.T) {
	assert.Equal(t, 16, SnapToDay(9, 16))
	assert.Equal(t, 0, SnapToDay(5, 16))
	assert.Equal(t, -32, SnapToDay(-25, 16))
}

func TestCellsFromPixels_FloorsNegative(t *testing.T) {
	assert.Equal(t, 0, CellsFromPixels(3))
	assert.Equal(t, 1, CellsFromPixels(4))
	assert.Equal(t, -1, CellsFromPixels(-1))
	assert.Equal(t, -1, CellsFromPixels(-4))
	assert.Equal(t, -2, CellsFromPixels(-5))
}
