package suggestions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/geosearch/internal/core/domain"
)

func testLocations() []domain.Location {
	return []domain.Location{
		domain.NewLocation(10.75, 59.91, "Oslo, Norway", nil, nil),
		domain.NewLocation(-89.5, 43.1, "Oslo, Wisconsin", nil, nil),
		domain.NewLocation(25.0, 60.2, "Oslo Street, Helsinki", nil, nil),
	}
}

func TestNewList(t *testing.T) {
	l := NewList(nil)

	require.NotNil(t, l)
	assert.False(t, l.Visible())
	assert.Equal(t, -1, l.Selected())
	assert.Equal(t, "", l.View())
}

func TestList_Show(t *testing.T) {
	l := NewList(nil)

	l.Show(testLocations())

	assert.True(t, l.Visible())
	assert.Equal(t, 3, l.Count())
	assert.Equal(t, -1, l.Selected())

	view := l.View()
	assert.Contains(t, view, "Oslo, Norway")
	assert.Contains(t, view, "59.9100, 10.7500")
	assert.NotContains(t, view, "> ")
}

func TestList_ShowEmptyHides(t *testing.T) {
	l := NewList(nil)
	l.Show(testLocations())

	l.Show(nil)

	assert.False(t, l.Visible())
}

func TestList_Highlight(t *testing.T) {
	l := NewList(nil)
	l.Show(testLocations())

	l.Highlight(1)
	assert.Equal(t, 1, l.Selected())
	assert.Contains(t, l.View(), "> Oslo, Wisconsin")

	l.Highlight(7)
	assert.Equal(t, 1, l.Selected())

	l.Highlight(-1)
	assert.Equal(t, -1, l.Selected())
}

func TestList_Hide(t *testing.T) {
	l := NewList(nil)
	l.Show(testLocations())

	l.Hide()

	assert.Equal(t, "", l.View())
	assert.Len(t, l.Entries(), 3)
}

func TestList_ScrollsToHighlight(t *testing.T) {
	l := NewList(nil)
	l.SetDimensions(60, 2)
	l.Show(testLocations())

	l.Highlight(2)
	view := l.View()

	assert.Contains(t, view, "Oslo Street")
	assert.NotContains(t, view, "Oslo, Norway")
}

func TestList_RowAt(t *testing.T) {
	l := NewList(nil)

	_, ok := l.RowAt(1)
	assert.False(t, ok, "hidden list has no rows")

	l.Show(testLocations())

	tests := []struct {
		y    int
		want int
		ok   bool
	}{
		{0, 0, false}, // top border
		{1, 0, true},
		{2, 1, true},
		{3, 2, true},
		{4, 0, false}, // bottom border
		{-1, 0, false},
	}
	for _, tt := range tests {
		got, ok := l.RowAt(tt.y)
		assert.Equal(t, tt.ok, ok, "y=%d", tt.y)
		if tt.ok {
			assert.Equal(t, tt.want, got, "y=%d", tt.y)
		}
	}
}

func TestList_RowAtFollowsScroll(t *testing.T) {
	l := NewList(nil)
	l.SetDimensions(60, 2)
	l.Show(testLocations())
	l.Highlight(2)

	got, ok := l.RowAt(1)

	require.True(t, ok)
	assert.Equal(t, 1, got)
}

func TestList_EscapesLabels(t *testing.T) {
	l := NewList(nil)
	l.Show([]domain.Location{domain.NewLocation(0, 0, "Evil\x1b]0;pwned\x07 Town", nil, nil)})

	view := l.View()

	assert.NotContains(t, view, "\x1b]0;")
	assert.Contains(t, view, "Evil]0;pwned Town")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "Königsbe…", truncate("Königsberg in Bayern", 9))
}
