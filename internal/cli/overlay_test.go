package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceOverlay(t *testing.T) {
	base := []string{"aaaaaaaaaa", "bbbbbbbbbb", "cccccccccc"}

	tests := []struct {
		name string
		box  string
		x, y int
		want []string
	}{
		{
			name: "inside",
			box:  "XY\nZW",
			x:    3, y: 1,
			want: []string{"aaaaaaaaaa", "bbbXYbbbbb", "cccZWccccc"},
		},
		{
			name: "clipped below",
			box:  "XY\nZW",
			x:    0, y: 2,
			want: []string{"aaaaaaaaaa", "bbbbbbbbbb", "XYcccccccc"},
		},
		{
			name: "above the top",
			box:  "XY\nZW",
			x:    8, y: -1,
			want: []string{"aaaaaaaaZW", "bbbbbbbbbb", "cccccccccc"},
		},
		{
			name: "negative x pins to the left",
			box:  "XY",
			x:    -4, y: 0,
			want: []string{"XYaaaaaaaa", "bbbbbbbbbb", "cccccccccc"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := placeOverlay(base, tt.box, tt.x, tt.y)
			assert.Equal(t, tt.want, got)
		})
	}
	assert.Equal(t, "aaaaaaaaaa", base[0], "base is not modified")
}

func TestPlaceOverlay_PadsShortLines(t *testing.T) {
	got := placeOverlay([]string{"ab", ""}, "XY", 5, 1)
	require.Len(t, got, 2)
	assert.Equal(t, "ab", got[0])
	assert.Equal(t, "     XY", got[1])
}

func TestPlaceOverlay_ExtendsPastLineEnd(t *testing.T) {
	got := placeOverlay([]string{"abcd"}, "XYZ", 2, 0)
	assert.Equal(t, []string{"abXYZ"}, got)
}

func TestCenterOverlay(t *testing.T) {
	base := []string{"..........", "..........", "..........", ".........."}

	got := centerOverlay(base, "##\n##", 10)
	assert.Equal(t, []string{
		"..........",
		"....##....",
		"....##....",
		"..........",
	}, got)
}
