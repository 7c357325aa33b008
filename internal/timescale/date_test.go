package timescale

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate_RejectsMalformed(t *testing.T) {
	for _, s := range []string{"", "2024-1-05", "2024-02-30", "20240105", "2024-13-01", "2024-01-05T00:00:00Z"} {
		_, err := ParseDate(s)
		assert.ErrorIs(t, err, ErrInvalidDate, "input %q", s)
	}
}

func TestParseDate_RoundTripsString(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, Date{Year: 2024, Month: time.February, Day: 29}, d)
	assert.Equal(t, "2024-02-29", d.String())
}

func TestShiftCalendarDate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"2024-01-30", 3, "2024-02-02"},
		{"2024-02-05", 3, "2024-02-08"},
		{"2024-02-28", 1, "2024-02-29"},
		{"2023-02-28", 1, "2023-03-01"},
		{"2024-12-31", 1, "2025-01-01"},
		{"2025-01-01", -1, "2024-12-31"},
		{"2024-03-01", -1, "2024-02-29"},
		{"2024-03-10", 1, "2024-03-11"}, // US DST start
		{"2024-11-03", 1, "2024-11-04"}, // US DST end
		{"2024-01-15", 366, "2025-01-15"},
	}
	for _, tt := range tests {
		got, err := ShiftCalendarDate(tt.in, tt.n)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%s %+d", tt.in, tt.n)
	}
}

func TestShiftCalendarDate_ZeroIsIdentity(t *testing.T) {
	got, err := ShiftCalendarDate("2024-06-15", 0)
	require.NoError(t, err)
	assert.Equal(t, "2024-06-15", got)
}

func TestShiftCalendarDate_InvalidInput(t *testing.T) {
	_, err := ShiftCalendarDate("not-a-date", 2)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestShiftCalendarDate_IgnoresLocalTimezone(t *testing.T) {
	prev := time.Local
	t.Cleanup(func() { time.Local = prev })
	time.Local = time.FixedZone("UTC-10", -10*60*60)

	got, err := ShiftCalendarDate("2024-03-01", 1)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-02", got)
}

func TestShiftCalendarDate_RoundTripProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	base := MustParseDate("1990-01-01")
	for trial := 0; trial < 1000; trial++ {
		d := base.AddDays(rng.Intn(40 * 365)).String()
		n := rng.Intn(4000) - 2000

		shifted, err := ShiftCalendarDate(d, n)
		require.NoError(t, err)
		back, err := ShiftCalendarDate(shifted, -n)
		require.NoError(t, err)

		assert.Equal(t, d, back, "trial %d: %s %+d", trial, d, n)
	}
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 3, DaysBetween(MustParseDate("2024-01-30"), MustParseDate("2024-02-02")))
	assert.Equal(t, -1, DaysBetween(MustParseDate("2025-01-01"), MustParseDate("2024-12-31")))
	assert.Equal(t, 366, DaysBetween(MustParseDate("2024-01-01"), MustParseDate("2025-01-01")))
}

func TestAddMonths(t *testing.T) {
	assert.Equal(t, "2025-02-01", MustParseDate("2024-12-17").AddMonths(2).String())
	assert.Equal(t, "2024-11-01", MustParseDate("2025-01-31").AddMonths(-2).String())
}
