package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/geosearch/internal/core/domain"
	"github.com/custodia-labs/geosearch/internal/core/ports/driven"
	"github.com/custodia-labs/geosearch/internal/core/ports/driving"
	"github.com/custodia-labs/geosearch/internal/logger"
)

// Ensure GeoSearchControl implements the interface.
var _ driving.GeoSearch = (*GeoSearchControl)(nil)

// Control construction errors.
var (
	ErrMissingMap       = errors.New("geosearch: map widget is required")
	ErrMissingScheduler = errors.New("geosearch: scheduler is required")
)

// ControlDeps are the collaborators of a GeoSearchControl.
type ControlDeps struct {
	// Provider is required.
	Provider driven.ProviderConfig

	// Transport is required for URL providers.
	Transport driven.ResultTransport

	// Map is required.
	Map driven.MapWidget

	// Presenter receives render instructions. Nil discards them.
	Presenter driven.Presenter

	// Scheduler is required; every engine call runs on its loop.
	Scheduler driven.Scheduler

	// Executor runs the blocking half of lookups. Nil starts a goroutine.
	Executor func(func())
}

// GeoSearchControl is the search control engine. It owns the query
// lifecycle and emits render instructions and map events; it never
// renders anything itself.
type GeoSearchControl struct {
	cfg         domain.Config
	mapWidget   driven.MapWidget
	presenter   driven.Presenter
	scheduler   driven.Scheduler
	adapter     *ProviderAdapter
	session     *SearchSession
	suggestions *SuggestionList
	debounce    *debouncer
	ctx         context.Context

	text         string
	boxVisible   bool
	icon         domain.Icon
	message      string
	messageKind  domain.MessageKind
	showingMsg   bool
	messageTimer driven.Timer
	messageGen   uint64
	cancelButton bool
	pending      int

	layer    driven.LayerID
	hasLayer bool
}

// NewGeoSearchControl creates a control for cfg.
func NewGeoSearchControl(cfg domain.Config, deps ControlDeps) (*GeoSearchControl, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if deps.Map == nil {
		return nil, ErrMissingMap
	}
	if deps.Scheduler == nil {
		return nil, ErrMissingScheduler
	}

	adapter, err := NewProviderAdapter(deps.Provider, deps.Transport, deps.Scheduler)
	if err != nil {
		return nil, fmt.Errorf("geosearch: %w", err)
	}
	adapter.SetExecutor(deps.Executor)

	presenter := deps.Presenter
	if presenter == nil {
		presenter = driven.PresenterFunc(func(domain.RenderInstruction) {})
	}

	c := &GeoSearchControl{
		cfg:        cfg,
		mapWidget:  deps.Map,
		presenter:  presenter,
		scheduler:  deps.Scheduler,
		adapter:    adapter,
		debounce:   newDebouncer(deps.Scheduler),
		ctx:        context.Background(),
		boxVisible: cfg.AlwaysShowSearchBox,
		icon:       domain.IconGlass,
	}
	c.session = NewSearchSession(adapter, cfg.AutocompleteMinQueryLen, c.handleAutocomplete, c.handleCommit)
	if cfg.EnableAutoComplete {
		c.suggestions = NewSuggestionList(cfg.MaxResultCount, presenter, c.onSuggestion)
	}

	return c, nil
}

// WithContext sets the context used for lookups. Cancelling it abandons
// in-flight requests.
func (c *GeoSearchControl) WithContext(ctx context.Context) *GeoSearchControl {
	if ctx != nil {
		c.ctx = ctx
	}
	return c
}

// Config returns the control configuration.
func (c *GeoSearchControl) Config() domain.Config {
	return c.cfg
}

// Suggestions returns the autocomplete list, or nil when autocomplete is off.
func (c *GeoSearchControl) Suggestions() *SuggestionList {
	return c.suggestions
}

// ClickIcon toggles the search box. With an always-visible box it submits.
func (c *GeoSearchControl) ClickIcon() {
	if c.cfg.AlwaysShowSearchBox {
		c.startSearch()
		return
	}
	if c.boxVisible {
		c.hideBox()
		return
	}
	c.boxVisible = true
	c.presenter.Apply(domain.ShowBox())
	c.presenter.Apply(domain.FocusBox())
}

// ClickSubmit starts a commit search.
func (c *GeoSearchControl) ClickSubmit() {
	c.startSearch()
}

// ClickCancel clears the search box.
func (c *GeoSearchControl) ClickCancel() {
	c.clearInput()
}

// HandleKey reacts to a key release.
func (c *GeoSearchControl) HandleKey(key domain.Key, text string) {
	c.text = text

	switch key {
	case domain.KeyEscape:
		if !c.hideAutocomplete() {
			c.Cancel()
		}
	case domain.KeyUp:
		if c.suggestions != nil {
			c.suggestions.MoveUp()
		}
	case domain.KeyDown:
		if c.suggestions != nil {
			c.suggestions.MoveDown()
		}
	case domain.KeyEnter:
		c.startSearch()
	case domain.KeyLeft, domain.KeyRight, domain.KeyShift, domain.KeyCtrl:
	default:
		c.onInputUpdate()
	}
}

// Input reacts to the raw text-changed event: a showing flash message is
// dismissed and the icon goes back to the glass.
func (c *GeoSearchControl) Input(text string) {
	c.text = text
	if c.showingMsg {
		c.hideMessage()
		c.setIcon(domain.IconGlass)
	}
}

// Paste updates the text and runs the input-changed path on the next tick.
func (c *GeoSearchControl) Paste(text string) {
	c.text = text
	c.scheduler.Post(c.onInputUpdate)
}

// SelectSuggestion commits the suggestion at index.
func (c *GeoSearchControl) SelectSuggestion(index int) {
	if c.suggestions != nil {
		c.suggestions.Activate(index)
	}
}

// ScrollSuggestions moves the highlight by wheel delta.
func (c *GeoSearchControl) ScrollSuggestions(delta int) {
	if c.suggestions != nil {
		c.suggestions.Scroll(delta)
	}
}

// BlurSuggestions hides the suggestion list.
func (c *GeoSearchControl) BlurSuggestions() {
	if c.suggestions != nil {
		c.suggestions.Hide()
	}
}

// Search runs a commit search for query without touching the box text.
func (c *GeoSearchControl) Search(query string) {
	q := domain.ProgrammaticQuery(query)
	if q.IsEmpty() {
		return
	}
	c.hideAutocomplete()
	c.setIcon(domain.IconSpinner)
	c.geosearch(q)
}

// LookupExt resolves query through the provider and hands the raw result to
// the callbacks, bypassing markers, messages and events.
func (c *GeoSearchControl) LookupExt(query string, onSuccess func([]domain.Location, string), onFailure func(error)) {
	c.adapter.Resolve(c.ctx, query, onSuccess, onFailure)
}

// Cancel abandons the search: the box is cleared, suggestions and any flash
// message are hidden and focus returns to the map.
func (c *GeoSearchControl) Cancel() {
	c.finishSearch()
	c.clearInput()
	c.hideMessage()
}

// State returns the current control state.
func (c *GeoSearchControl) State() domain.ControlState {
	switch {
	case c.pending > 0:
		return domain.StateSearching
	case c.suggestions != nil && c.suggestions.IsVisible():
		return domain.StateShowingSuggestions
	case c.showingMsg:
		return domain.StateShowingMessage
	case c.boxVisible:
		return domain.StateBoxOpen
	default:
		return domain.StateIdle
	}
}

// Snapshot returns a copy of the visible state.
func (c *GeoSearchControl) Snapshot() domain.Snapshot {
	snap := domain.Snapshot{
		State:        c.State(),
		Text:         c.text,
		BoxVisible:   c.boxVisible,
		Icon:         c.icon,
		Selected:     -1,
		CancelButton: c.cancelButton,
	}
	if c.showingMsg {
		snap.Message = c.message
		snap.MessageKind = c.messageKind
	}
	if c.suggestions != nil {
		snap.Suggestions = c.suggestions.Entries()
		snap.Selected = c.suggestions.Selected()
	}
	return snap
}

func (c *GeoSearchControl) onInputUpdate() {
	query := domain.UserQuery(c.text)

	if c.suggestions != nil {
		c.suggestions.RecordLastUserInput(query.Text)
		if query.Len() >= c.cfg.AutocompleteMinQueryLen {
			logger.Debug("Autocomplete scheduled in %s for %q", c.cfg.AutocompleteQueryDelay, query.Text)
			c.debounce.Trigger(c.cfg.AutocompleteQueryDelay, c.autocomplete)
		} else {
			c.debounce.Cancel()
			c.suggestions.Hide()
		}
	}

	if c.cfg.EnableButtons {
		c.setCancelButton(query.Len() > 0)
	}
}

// autocomplete reads the box text when the debounce timer fires.
func (c *GeoSearchControl) autocomplete() {
	if !c.session.Run(c.ctx, domain.ModeAutocomplete, domain.UserQuery(c.text)) {
		c.suggestions.Hide()
	}
}

func (c *GeoSearchControl) startSearch() {
	query := domain.UserQuery(c.text)
	if query.IsEmpty() {
		return
	}
	c.hideAutocomplete()
	c.setIcon(domain.IconSpinner)
	c.geosearch(query)
}

func (c *GeoSearchControl) geosearch(query domain.SearchQuery) {
	logger.Section("Commit Search")
	logger.Debug("Query: %q (%s)", query.Text, query.Origin)
	if c.session.Run(c.ctx, domain.ModeCommit, query) {
		c.pending++
	}
}

func (c *GeoSearchControl) handleAutocomplete(outcome domain.Outcome) {
	if c.suggestions == nil {
		return
	}
	switch outcome.Kind {
	case domain.OutcomeSuccess:
		n := c.suggestions.Show(outcome.Locations)
		logger.Debug("Autocomplete %q: showing %d of %d", outcome.Query, n, len(outcome.Locations))
	case domain.OutcomeEmpty:
		c.suggestions.Hide()
	case domain.OutcomeFailure:
		logger.Debug("Autocomplete failed: %v", outcome.Err)
		c.suggestions.Hide()
	}
}

func (c *GeoSearchControl) handleCommit(outcome domain.Outcome) {
	if c.pending > 0 {
		c.pending--
	}

	switch outcome.Kind {
	case domain.OutcomeSuccess:
		logger.Info("Found %d locations for %q", len(outcome.Locations), outcome.Query)
		c.hideMessage()
		c.mapWidget.Fire(domain.MapEvent{
			Name:      domain.EventFoundLocations,
			Locations: outcome.Locations,
		})
		c.showLocations(outcome.Locations)
		c.finishSearch()
	case domain.OutcomeEmpty:
		logger.Info("No locations for %q", outcome.Query)
		c.printError(c.cfg.NotFoundMessage)
	case domain.OutcomeFailure:
		logger.Warn("Search failed: %v", outcome.Err)
		c.printError(outcome.Err.Error())
	}
}

// showLocations replaces the result markers and moves the viewport to the
// top result.
func (c *GeoSearchControl) showLocations(results []domain.Location) {
	var markers []domain.Marker

	if c.cfg.ShowMarker {
		if c.hasLayer {
			c.mapWidget.RemoveLayer(c.layer)
			c.hasLayer = false
		}

		n := len(results)
		if n > c.cfg.MaxMarkers {
			n = c.cfg.MaxMarkers
		}
		markers = make([]domain.Marker, 0, n)
		for _, loc := range results[:n] {
			m := domain.Marker{
				Location:  loc,
				Icon:      c.cfg.CustomIcon,
				Draggable: c.cfg.Draggable,
			}
			if c.cfg.ShowPopup {
				m.Popup = loc.Label
			}
			markers = append(markers, m)
		}
		c.layer = c.mapWidget.AddMarkerLayer(markers)
		c.hasLayer = true

		c.printInfo(fmt.Sprintf("Displaying %d of %d results.", n, len(results)))
	}

	top := results[0]
	if !c.cfg.RetainZoomLevel && top.Bounds.IsValid() {
		c.mapWidget.FitBounds(*top.Bounds)
	} else {
		c.mapWidget.SetView(top.Y, top.X, c.zoomLevel())
	}

	event := domain.MapEvent{Name: domain.EventShowLocation, Location: &top}
	if len(markers) > 0 {
		if c.cfg.ShowPopup {
			c.mapWidget.OpenPopup(c.layer, 0)
		}
		event.Marker = &markers[0]
	}
	c.mapWidget.Fire(event)
}

func (c *GeoSearchControl) zoomLevel() int {
	if c.cfg.RetainZoomLevel {
		return c.mapWidget.CurrentZoom()
	}
	return c.cfg.ZoomLevel
}

func (c *GeoSearchControl) finishSearch() {
	if !c.cfg.AlwaysShowSearchBox {
		c.hideBox()
	}
	c.hideAutocomplete()
	c.setIcon(domain.IconGlass)
	c.mapWidget.Focus()
}

// hideAutocomplete drops a pending autocomplete and hides the list. It
// reports whether the list was visible.
func (c *GeoSearchControl) hideAutocomplete() bool {
	c.debounce.Cancel()
	if c.suggestions == nil || !c.suggestions.IsVisible() {
		return false
	}
	c.suggestions.Hide()
	return true
}

func (c *GeoSearchControl) clearInput() {
	c.hideAutocomplete()
	c.text = ""
	c.presenter.Apply(domain.SetText(""))
	if c.cfg.EnableButtons {
		c.setCancelButton(false)
	}
}

func (c *GeoSearchControl) onSuggestion(text string, commit bool) {
	c.text = text
	c.presenter.Apply(domain.SetText(text))
	if commit {
		c.startSearch()
	}
}

func (c *GeoSearchControl) printError(msg string) {
	c.showMessage(domain.MessageError, msg)
	c.mapWidget.Fire(domain.MapEvent{Name: domain.EventError, Message: msg})
	c.setIcon(domain.IconAlert)
}

func (c *GeoSearchControl) printInfo(msg string) {
	c.showMessage(domain.MessageInfo, msg)
	c.mapWidget.Fire(domain.MapEvent{Name: domain.EventShowInfo, Message: msg})
}

// showMessage displays a flash message and restarts its hide timer.
func (c *GeoSearchControl) showMessage(kind domain.MessageKind, msg string) {
	c.stopMessageTimer()
	c.message = msg
	c.messageKind = kind
	c.showingMsg = true
	c.presenter.Apply(domain.ShowMessage(kind, msg))

	if c.cfg.MessageHideDelay <= 0 {
		return
	}
	gen := c.messageGen
	c.messageTimer = c.scheduler.AfterFunc(c.cfg.MessageHideDelay, func() {
		if gen != c.messageGen {
			return
		}
		c.messageTimer = nil
		c.hideMessage()
		if c.icon == domain.IconAlert {
			c.setIcon(domain.IconGlass)
		}
	})
}

func (c *GeoSearchControl) hideMessage() {
	c.stopMessageTimer()
	if !c.showingMsg {
		return
	}
	c.showingMsg = false
	c.message = ""
	c.presenter.Apply(domain.HideMessage())
}

func (c *GeoSearchControl) stopMessageTimer() {
	if c.messageTimer != nil {
		c.messageTimer.Stop()
		c.messageTimer = nil
	}
	c.messageGen++
}

func (c *GeoSearchControl) hideBox() {
	if !c.boxVisible {
		return
	}
	c.boxVisible = false
	c.presenter.Apply(domain.HideBox())
}

func (c *GeoSearchControl) setIcon(icon domain.Icon) {
	if c.icon == icon {
		return
	}
	c.icon = icon
	c.presenter.Apply(domain.SetIcon(icon))
}

func (c *GeoSearchControl) setCancelButton(visible bool) {
	if c.cancelButton == visible {
		return
	}
	c.cancelButton = visible
	if visible {
		c.presenter.Apply(domain.ShowCancelButton())
	} else {
		c.presenter.Apply(domain.HideCancelButton())
	}
}
