// Package suggestions renders the autocomplete list.
package suggestions

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/geosearch/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/geosearch/internal/core/domain"
)

// List renders suggestion entries with one optional highlighted row.
// Selection logic lives in the control; the list only mirrors it.
type List struct {
	entries  []domain.Location
	selected int
	visible  bool
	styles   *styles.Styles
	width    int
	height   int
}

// NewList creates an empty hidden list.
func NewList(s *styles.Styles) *List {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &List{
		selected: -1,
		styles:   s,
		width:    60,
		height:   10,
	}
}

// Show replaces the entries and clears the highlight.
func (l *List) Show(entries []domain.Location) {
	l.entries = entries
	l.selected = -1
	l.visible = len(entries) > 0
}

// Hide hides the list.
func (l *List) Hide() {
	l.visible = false
}

// Highlight marks row index, or none for -1.
func (l *List) Highlight(index int) {
	if index < -1 || index >= len(l.entries) {
		return
	}
	l.selected = index
}

// View renders the list, or "" when hidden.
func (l *List) View() string {
	if !l.visible || len(l.entries) == 0 {
		return ""
	}

	start, end := l.window()

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		lines = append(lines, l.renderRow(i))
	}
	return l.styles.Suggestions.Render(strings.Join(lines, "\n"))
}

// window returns the range of entries currently drawn. The list scrolls
// so the highlighted row stays in view.
func (l *List) window() (int, int) {
	rows := l.height
	if rows < 1 {
		rows = 1
	}
	start := 0
	if l.selected >= rows {
		start = l.selected - rows + 1
	}
	end := start + rows
	if end > len(l.entries) {
		end = len(l.entries)
	}
	return start, end
}

// RowAt maps a line offset from the top of the rendered list to an entry
// index. Border lines and empty space report false.
func (l *List) RowAt(y int) (int, bool) {
	if !l.visible || len(l.entries) == 0 {
		return 0, false
	}
	start, end := l.window()
	i := start + y - l.styles.Suggestions.GetBorderTopSize()
	if i < start || i >= end {
		return 0, false
	}
	return i, true
}

func (l *List) renderRow(i int) string {
	loc := l.entries[i]
	coord := fmt.Sprintf("%.4f, %.4f", loc.Lat(), loc.Lng())

	maxLabel := l.width - len(coord) - 6
	if maxLabel < 10 {
		maxLabel = 10
	}
	label := truncate(domain.EscapeLabel(loc.Label), maxLabel)

	if i == l.selected {
		return l.styles.Selected.Render(fmt.Sprintf("> %-*s  %s", maxLabel, label, coord))
	}
	return l.styles.Normal.Render(fmt.Sprintf("  %-*s  ", maxLabel, label)) + l.styles.Coord.Render(coord)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// Entries returns the current entries.
func (l *List) Entries() []domain.Location {
	return l.entries
}

// Selected returns the highlighted row, or -1.
func (l *List) Selected() int {
	return l.selected
}

// Visible reports whether the list is shown.
func (l *List) Visible() bool {
	return l.visible
}

// SetDimensions sets the component dimensions.
func (l *List) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Count returns the number of entries.
func (l *List) Count() int {
	return len(l.entries)
}
