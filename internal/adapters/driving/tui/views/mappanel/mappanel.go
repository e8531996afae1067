// Package mappanel renders the headless map as a terminal panel.
package mappanel

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/geosearch/internal/adapters/driven/mapview"
	"github.com/custodia-labs/geosearch/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/geosearch/internal/core/domain"
)

const maxEvents = 5

// View draws the map viewport, its markers and recent map events.
type View struct {
	styles *styles.Styles
	m      *mapview.Map
	events []string
	width  int
	height int
}

// NewView creates a panel for m and subscribes to its events.
func NewView(s *styles.Styles, m *mapview.Map) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	v := &View{styles: s, m: m, width: 80, height: 16}
	m.On(mapview.AllEvents, v.record)
	return v
}

func (v *View) record(e domain.MapEvent) {
	v.events = append(v.events, describe(e))
	if len(v.events) > maxEvents {
		v.events = v.events[len(v.events)-maxEvents:]
	}
}

func describe(e domain.MapEvent) string {
	switch e.Name {
	case domain.EventFoundLocations:
		return fmt.Sprintf("%s (%d)", e.Name, len(e.Locations))
	case domain.EventShowLocation:
		if e.Location != nil {
			return fmt.Sprintf("%s %s", e.Name, domain.EscapeLabel(e.Location.Label))
		}
	case domain.EventError, domain.EventShowInfo:
		return fmt.Sprintf("%s %q", e.Name, e.Message)
	}
	return e.Name
}

// View renders the panel.
func (v *View) View() string {
	vp := v.m.Viewport()

	header := v.styles.Coord.Render(fmt.Sprintf("%.5f, %.5f  z%d", vp.Lat, vp.Lng, vp.Zoom))
	grid := v.renderGrid(vp)

	lines := []string{header, grid}
	if popup, ok := v.m.OpenedPopup(); ok && popup.Text != "" {
		lines = append(lines, v.styles.Popup.Render(domain.EscapeLabel(popup.Text)))
	}
	for _, e := range v.events {
		lines = append(lines, v.styles.Muted.Render(e))
	}

	return v.styles.MapPanel.Width(v.width).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// renderGrid projects markers onto a character grid centred on the
// viewport. One column spans 360/2^zoom/width degrees of longitude; rows
// are twice as tall as columns are wide.
func (v *View) renderGrid(vp mapview.Viewport) string {
	cols, rows := v.gridSize()
	cells := make([][]rune, rows)
	for r := range cells {
		cells[r] = []rune(strings.Repeat("·", cols))
	}
	cells[rows/2][cols/2] = '+'

	degPerCol := 360 / math.Pow(2, float64(vp.Zoom)) / float64(cols)
	degPerRow := degPerCol * 2
	for _, mk := range v.m.Markers() {
		c := cols/2 + int(math.Round((mk.Location.Lng()-vp.Lng)/degPerCol))
		r := rows/2 - int(math.Round((mk.Location.Lat()-vp.Lat)/degPerRow))
		if c >= 0 && c < cols && r >= 0 && r < rows {
			cells[r][c] = '●'
		}
	}

	out := make([]string, rows)
	for r, row := range cells {
		line := string(row)
		line = strings.ReplaceAll(line, "●", v.styles.Marker.Render("●"))
		out[r] = line
	}
	return strings.Join(out, "\n")
}

func (v *View) gridSize() (int, int) {
	cols := v.width - 4
	if cols < 10 {
		cols = 10
	}
	rows := v.height - 4 - maxEvents
	if rows < 3 {
		rows = 3
	}
	return cols, rows
}

// Events returns the recent event descriptions, oldest first.
func (v *View) Events() []string {
	return v.events
}

// SetDimensions sets the panel dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}
