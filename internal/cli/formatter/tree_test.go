package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkLastSiblings(t *testing.T) {
	items := []TreeItem{
		{ID: 1, Level: 0},
		{ID: 2, Level: 1},
		{ID: 3, Level: 2},
		{ID: 4, Level: 1},
		{ID: 5, Level: 0},
	}
	MarkLastSiblings(items)

	assert.False(t, items[0].IsLast)
	assert.False(t, items[1].IsLast)
	assert.True(t, items[2].IsLast)
	assert.True(t, items[3].IsLast)
	assert.True(t, items[4].IsLast)
}

func TestRenderTree_Connectors(t *testing.T) {
	items := []TreeItem{
		{ID: 1, Title: "Release", Level: 0},
		{ID: 2, Title: "Design", Level: 1, Done: true},
		{ID: 3, Title: "Build", Level: 1, Detail: "2024-01-10 → 2024-01-12"},
	}
	MarkLastSiblings(items)

	out := RenderTree(items)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "Release")
	assert.Contains(t, lines[1], "├─ ")
	assert.Contains(t, lines[1], "✔")
	assert.Contains(t, lines[2], "└─ ")
	assert.Contains(t, lines[2], "2024-01-10")
}

func TestRenderTree_Empty(t *testing.T) {
	assert.Empty(t, RenderTree(nil))
}
