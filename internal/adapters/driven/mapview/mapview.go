// Package mapview provides a headless map widget. It tracks the viewport,
// the marker layers and open popups, and re-publishes fired events to
// subscribers so terminal and MCP front ends can render them.
package mapview

import (
	"math"
	"sort"
	"sync"

	"github.com/custodia-labs/geosearch/internal/core/domain"
	"github.com/custodia-labs/geosearch/internal/core/ports/driven"
)

// Ensure Map implements the interface.
var _ driven.MapWidget = (*Map)(nil)

// Zoom limits.
const (
	MinZoom = 0
	MaxZoom = 19
)

// Viewport is the visible map region.
type Viewport struct {
	Lat  float64
	Lng  float64
	Zoom int
}

// Popup identifies an open marker popup.
type Popup struct {
	Layer driven.LayerID
	Index int
	Text  string
}

// Handler receives fired map events.
type Handler func(domain.MapEvent)

// Map is an in-memory map widget. It is safe for concurrent use.
type Map struct {
	mu       sync.RWMutex
	viewport Viewport
	layers   map[driven.LayerID][]domain.Marker
	nextID   driven.LayerID
	popup    *Popup
	focused  bool
	handlers map[string][]subscription
	nextSub  int
}

type subscription struct {
	id      int
	handler Handler
}

// AllEvents subscribes a handler to every event name.
const AllEvents = "*"

// New creates a map centred on lat/lng at zoom.
func New(lat, lng float64, zoom int) *Map {
	return &Map{
		viewport: Viewport{Lat: lat, Lng: lng, Zoom: clampZoom(zoom)},
		layers:   make(map[driven.LayerID][]domain.Marker),
		handlers: make(map[string][]subscription),
	}
}

// SetView centres the map on lat/lng at zoom.
func (m *Map) SetView(lat, lng float64, zoom int) {
	m.mu.Lock()
	m.viewport = Viewport{Lat: lat, Lng: lng, Zoom: clampZoom(zoom)}
	m.mu.Unlock()
}

// FitBounds centres the map on bounds at the largest zoom that shows them.
func (m *Map) FitBounds(bounds domain.BoundingBox) {
	lat, lng := bounds.Center()
	zoom := fitZoom(bounds)

	m.mu.Lock()
	m.viewport = Viewport{Lat: lat, Lng: lng, Zoom: zoom}
	m.mu.Unlock()
}

// AddMarkerLayer stores markers as a new layer.
func (m *Map) AddMarkerLayer(markers []domain.Marker) driven.LayerID {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	m.layers[m.nextID] = append([]domain.Marker(nil), markers...)
	return m.nextID
}

// RemoveLayer drops a layer and any popup open on it.
func (m *Map) RemoveLayer(id driven.LayerID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.layers, id)
	if m.popup != nil && m.popup.Layer == id {
		m.popup = nil
	}
}

// OpenPopup opens the popup of a marker. Unknown markers are ignored.
func (m *Map) OpenPopup(id driven.LayerID, index int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	markers, ok := m.layers[id]
	if !ok || index < 0 || index >= len(markers) {
		return
	}
	m.popup = &Popup{Layer: id, Index: index, Text: markers[index].Popup}
}

// CurrentZoom returns the current zoom level.
func (m *Map) CurrentZoom() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.viewport.Zoom
}

// Focus marks the map as holding keyboard focus.
func (m *Map) Focus() {
	m.mu.Lock()
	m.focused = true
	m.mu.Unlock()
}

// Blur clears the focus flag, typically when the search box takes focus.
func (m *Map) Blur() {
	m.mu.Lock()
	m.focused = false
	m.mu.Unlock()
}

// Fire delivers event to its subscribers, then to AllEvents subscribers.
// Handlers run on the caller's goroutine.
func (m *Map) Fire(event domain.MapEvent) {
	m.mu.RLock()
	var handlers []Handler
	for _, s := range m.handlers[event.Name] {
		handlers = append(handlers, s.handler)
	}
	for _, s := range m.handlers[AllEvents] {
		handlers = append(handlers, s.handler)
	}
	m.mu.RUnlock()

	for _, h := range handlers {
		h(event)
	}
}

// On subscribes handler to events named name, or AllEvents.
// It returns an unsubscribe function.
func (m *Map) On(name string, handler Handler) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextSub++
	id := m.nextSub
	m.handlers[name] = append(m.handlers[name], subscription{id: id, handler: handler})

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()

		subs := m.handlers[name]
		for i, s := range subs {
			if s.id == id {
				m.handlers[name] = append(subs[:i], subs[i+1:]...)
				break
			}
		}
	}
}

// Viewport returns the current viewport.
func (m *Map) Viewport() Viewport {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.viewport
}

// Markers returns every marker on the map, ordered by layer.
func (m *Map) Markers() []domain.Marker {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]int, 0, len(m.layers))
	for id := range m.layers {
		ids = append(ids, int(id))
	}
	sort.Ints(ids)

	var out []domain.Marker
	for _, id := range ids {
		out = append(out, m.layers[driven.LayerID(id)]...)
	}
	return out
}

// LayerCount returns the number of marker layers.
func (m *Map) LayerCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.layers)
}

// OpenedPopup returns the open popup, if any.
func (m *Map) OpenedPopup() (Popup, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.popup == nil {
		return Popup{}, false
	}
	return *m.popup, true
}

// Focused reports whether the map holds keyboard focus.
func (m *Map) Focused() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.focused
}

func clampZoom(z int) int {
	if z < MinZoom {
		return MinZoom
	}
	if z > MaxZoom {
		return MaxZoom
	}
	return z
}

// fitZoom picks the zoom at which the larger span of bounds fills one
// 256px tile.
func fitZoom(b domain.BoundingBox) int {
	span := math.Max(b.North-b.South, b.East-b.West)
	if span <= 0 {
		return MaxZoom
	}
	return clampZoom(int(math.Floor(math.Log2(360 / span))))
}
