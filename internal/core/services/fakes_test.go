package services

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/custodia-labs/geosearch/internal/core/domain"
	"github.com/custodia-labs/geosearch/internal/core/ports/driven"
)

// --- Fake scheduler ---

// fakeScheduler is a manual clock. Timers run when Advance passes their
// deadline; posted functions run on Flush.
type fakeScheduler struct {
	mu     sync.Mutex
	now    time.Duration
	seq    int
	timers []*fakeTimer
	posted []func()
}

type fakeTimer struct {
	at      time.Duration
	seq     int
	fn      func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

func newFakeScheduler() *fakeScheduler {
	return &fakeScheduler{}
}

func (s *fakeScheduler) AfterFunc(d time.Duration, fn func()) driven.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	t := &fakeTimer{at: s.now + d, seq: s.seq, fn: fn}
	s.timers = append(s.timers, t)
	return t
}

func (s *fakeScheduler) Post(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posted = append(s.posted, fn)
}

// Flush runs posted functions until none are left.
func (s *fakeScheduler) Flush() {
	for {
		s.mu.Lock()
		if len(s.posted) == 0 {
			s.mu.Unlock()
			return
		}
		fn := s.posted[0]
		s.posted = s.posted[1:]
		s.mu.Unlock()
		fn()
	}
}

// Advance moves the clock forward, firing due timers in deadline order and
// flushing posted work after each.
func (s *fakeScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now + d
	s.mu.Unlock()

	for {
		s.Flush()
		t := s.nextDue(target)
		if t == nil {
			break
		}
		t.fn()
	}

	s.mu.Lock()
	s.now = target
	s.mu.Unlock()
	s.Flush()
}

func (s *fakeScheduler) nextDue(target time.Duration) *fakeTimer {
	s.mu.Lock()
	defer s.mu.Unlock()

	var due []*fakeTimer
	for _, t := range s.timers {
		if !t.stopped && !t.fired && t.at <= target {
			due = append(due, t)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].at == due[j].at {
			return due[i].seq < due[j].seq
		}
		return due[i].at < due[j].at
	})
	next := due[0]
	next.fired = true
	if next.at > s.now {
		s.now = next.at
	}
	return next
}

// Active returns the number of timers that have neither fired nor stopped.
func (s *fakeScheduler) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// syncExec runs lookups inline so delivery order is deterministic.
func syncExec(fn func()) { fn() }

// --- Presenter ---

type recordingPresenter struct {
	instructions []domain.RenderInstruction
}

func (p *recordingPresenter) Apply(instr domain.RenderInstruction) {
	p.instructions = append(p.instructions, instr)
}

func (p *recordingPresenter) Count(kind domain.InstructionKind) int {
	n := 0
	for _, i := range p.instructions {
		if i.Kind == kind {
			n++
		}
	}
	return n
}

func (p *recordingPresenter) Last(kind domain.InstructionKind) (domain.RenderInstruction, bool) {
	for i := len(p.instructions) - 1; i >= 0; i-- {
		if p.instructions[i].Kind == kind {
			return p.instructions[i], true
		}
	}
	return domain.RenderInstruction{}, false
}

func (p *recordingPresenter) Reset() {
	p.instructions = nil
}

// --- Map widget ---

type setViewCall struct {
	Lat, Lng float64
	Zoom     int
}

type fakeMap struct {
	zoom      int
	nextLayer driven.LayerID
	layers    map[driven.LayerID][]domain.Marker
	removed   []driven.LayerID
	setViews  []setViewCall
	fits      []domain.BoundingBox
	popups    []int
	focused   int
	events    []domain.MapEvent
}

func newFakeMap() *fakeMap {
	return &fakeMap{zoom: 5, layers: make(map[driven.LayerID][]domain.Marker)}
}

func (m *fakeMap) SetView(lat, lng float64, zoom int) {
	m.setViews = append(m.setViews, setViewCall{Lat: lat, Lng: lng, Zoom: zoom})
	m.zoom = zoom
}

func (m *fakeMap) FitBounds(b domain.BoundingBox) {
	m.fits = append(m.fits, b)
}

func (m *fakeMap) AddMarkerLayer(markers []domain.Marker) driven.LayerID {
	m.nextLayer++
	m.layers[m.nextLayer] = markers
	return m.nextLayer
}

func (m *fakeMap) RemoveLayer(id driven.LayerID) {
	delete(m.layers, id)
	m.removed = append(m.removed, id)
}

func (m *fakeMap) OpenPopup(_ driven.LayerID, index int) {
	m.popups = append(m.popups, index)
}

func (m *fakeMap) CurrentZoom() int { return m.zoom }

func (m *fakeMap) Focus() { m.focused++ }

func (m *fakeMap) Fire(e domain.MapEvent) {
	m.events = append(m.events, e)
}

func (m *fakeMap) ViewportChanges() int {
	return len(m.setViews) + len(m.fits)
}

func (m *fakeMap) Events(name string) []domain.MapEvent {
	var out []domain.MapEvent
	for _, e := range m.events {
		if e.Name == name {
			out = append(out, e)
		}
	}
	return out
}

func (m *fakeMap) AllMarkers() []domain.Marker {
	var out []domain.Marker
	for _, ms := range m.layers {
		out = append(out, ms...)
	}
	return out
}

// --- Providers and transport ---

// MockDirectLookup implements driven.DirectLookup.
type MockDirectLookup struct {
	LookupFunc func(ctx context.Context, query string) ([]domain.Location, error)
	Queries    []string
}

func (m *MockDirectLookup) Lookup(ctx context.Context, query string) ([]domain.Location, error) {
	m.Queries = append(m.Queries, query)
	if m.LookupFunc != nil {
		return m.LookupFunc(ctx, query)
	}
	return nil, nil
}

// MockURLProvider implements driven.URLProvider.
type MockURLProvider struct {
	BuildURLFunc func(query string) (string, error)
	ParseFunc    func(raw json.RawMessage) ([]domain.Location, error)
}

func (m *MockURLProvider) BuildURL(query string) (string, error) {
	if m.BuildURLFunc != nil {
		return m.BuildURLFunc(query)
	}
	return "https://example.test/search?q=" + query, nil
}

func (m *MockURLProvider) Parse(raw json.RawMessage) ([]domain.Location, error) {
	if m.ParseFunc != nil {
		return m.ParseFunc(raw)
	}
	var locs []domain.Location
	err := json.Unmarshal(raw, &locs)
	return locs, err
}

// MockTransport implements driven.ResultTransport.
type MockTransport struct {
	FetchFunc func(ctx context.Context, url string) (json.RawMessage, error)
	URLs      []string
}

func (m *MockTransport) Fetch(ctx context.Context, url string) (json.RawMessage, error) {
	m.URLs = append(m.URLs, url)
	if m.FetchFunc != nil {
		return m.FetchFunc(ctx, url)
	}
	return json.RawMessage(`[]`), nil
}

// staticLookup returns the same locations for every query.
func staticLookup(locs ...domain.Location) *MockDirectLookup {
	return &MockDirectLookup{
		LookupFunc: func(context.Context, string) ([]domain.Location, error) {
			return locs, nil
		},
	}
}

func loc(label string, x, y float64) domain.Location {
	return domain.Location{X: x, Y: y, Label: label}
}

// capturingScheduler hands scheduled functions to capture instead of running
// them.
type capturingScheduler struct {
	capture func(fn func())
}

type noopTimer struct{}

func (noopTimer) Stop() bool { return true }

func (s *capturingScheduler) AfterFunc(_ time.Duration, fn func()) driven.Timer {
	s.capture(fn)
	return noopTimer{}
}

func (s *capturingScheduler) Post(fn func()) { s.capture(fn) }
