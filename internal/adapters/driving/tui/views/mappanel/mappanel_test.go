package mappanel

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/geosearch/internal/adapters/driven/mapview"
	"github.com/custodia-labs/geosearch/internal/core/domain"
)

func TestView_RendersViewport(t *testing.T) {
	m := mapview.New(48.85, 2.35, 12)
	v := NewView(nil, m)

	view := v.View()

	assert.Contains(t, view, "48.85000, 2.35000  z12")
	assert.Contains(t, view, "+")
}

func TestView_RendersMarkerAtCentre(t *testing.T) {
	m := mapview.New(0, 0, 3)
	v := NewView(nil, m)
	v.SetDimensions(40, 20)

	loc := domain.NewLocation(2.35, 48.85, "Paris", nil, nil)
	m.SetView(loc.Lat(), loc.Lng(), 12)
	id := m.AddMarkerLayer([]domain.Marker{{Location: loc, Popup: "Paris"}})
	m.OpenPopup(id, 0)

	view := v.View()

	assert.Contains(t, view, "●")
	assert.Contains(t, view, "Paris")
}

func TestView_MarkerOutsideViewportIsHidden(t *testing.T) {
	m := mapview.New(0, 0, 15)
	v := NewView(nil, m)
	m.AddMarkerLayer([]domain.Marker{{Location: domain.NewLocation(100, 40, "Far", nil, nil)}})

	assert.NotContains(t, v.View(), "●")
}

func TestView_RecordsEvents(t *testing.T) {
	m := mapview.New(0, 0, 3)
	v := NewView(nil, m)
	loc := domain.NewLocation(1, 2, "Somewhere", nil, nil)

	m.Fire(domain.MapEvent{Name: domain.EventFoundLocations, Locations: []domain.Location{loc}})
	m.Fire(domain.MapEvent{Name: domain.EventShowLocation, Location: &loc})
	m.Fire(domain.MapEvent{Name: domain.EventShowInfo, Message: "Displaying 1 of 1 results."})

	assert.Equal(t, []string{
		"geosearch_foundlocations (1)",
		"geosearch_showlocation Somewhere",
		`geosearch_showinfo "Displaying 1 of 1 results."`,
	}, v.Events())
}

func TestView_KeepsRecentEventsOnly(t *testing.T) {
	m := mapview.New(0, 0, 3)
	v := NewView(nil, m)

	for i := 0; i < maxEvents+3; i++ {
		m.Fire(domain.MapEvent{Name: domain.EventError, Message: strings.Repeat("x", i)})
	}

	assert.Len(t, v.Events(), maxEvents)
	assert.Contains(t, v.Events()[maxEvents-1], strings.Repeat("x", maxEvents+2))
}

func TestView_EscapesLabels(t *testing.T) {
	m := mapview.New(0, 0, 3)
	v := NewView(nil, m)
	loc := domain.NewLocation(0, 0, "Bad\x1b[2JPlace", nil, nil)

	id := m.AddMarkerLayer([]domain.Marker{{Location: loc, Popup: loc.Label}})
	m.OpenPopup(id, 0)
	m.Fire(domain.MapEvent{Name: domain.EventShowLocation, Location: &loc})

	assert.Equal(t, "geosearch_showlocation Bad[2JPlace", v.Events()[0])
	assert.NotContains(t, v.View(), "\x1b[2J")
}
