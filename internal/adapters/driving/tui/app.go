package tui

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/geosearch/internal/adapters/driven/config/file"
	"github.com/custodia-labs/geosearch/internal/adapters/driven/mapview"
	"github.com/custodia-labs/geosearch/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/geosearch/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/geosearch/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/geosearch/internal/adapters/driving/tui/views/search"
	"github.com/custodia-labs/geosearch/internal/adapters/driving/tui/views/settings"
	"github.com/custodia-labs/geosearch/internal/core/ports/driving"
	"github.com/custodia-labs/geosearch/internal/logger"
)

// Initial viewport: the whole world.
const (
	initialLat  = 20.0
	initialLng  = 0.0
	initialZoom = 2
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap

	// m is the map the control drives.
	m *mapview.Map

	// loop delivers the control's posted and timed work to Update.
	loop *Loop

	searchView   *search.View
	settingsView *settings.View

	// control is the live search control; closer releases its provider.
	control driving.GeoSearch
	closer  io.Closer

	// gen identifies the live control. Work scheduled by an older
	// control is dropped.
	gen uint64

	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports and builds
// the first control from the current settings.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	m := mapview.New(initialLat, initialLng, initialZoom)

	a := &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		keymap:       km,
		m:            m,
		loop:         NewLoop(),
		searchView:   search.NewView(s, km, m),
		settingsView: settings.NewView(s, ports.Settings),
		currentView:  messages.ViewSearch,
	}

	if err := a.rebuildControl(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}
	return a, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// rebuildControl builds a control from the current settings and swaps it
// in. On failure the previous control stays live.
func (a *App) rebuildControl() error {
	cfg, err := a.ports.Settings.Get()
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	gen := a.gen + 1
	env := ControlEnv{
		Map:       a.m,
		Presenter: a.searchView,
		Scheduler: a.loop.Scoped(func() bool { return a.gen == gen }),
	}
	ctrl, closer, err := a.ports.NewControl(*cfg, env)
	if err != nil {
		return fmt.Errorf("build control: %w", err)
	}

	a.closeControl()
	a.gen = gen
	a.control = ctrl
	a.closer = closer
	a.searchView.SetControl(ctrl, cfg.Control, cfg.Provider.Name.String())
	logger.Debug("Control rebuilt with provider %s", cfg.Provider.Name)
	return nil
}

func (a *App) closeControl() {
	if a.closer == nil {
		return
	}
	if err := a.closer.Close(); err != nil {
		logger.Warn("Closing control: %v", err)
	}
	a.closer = nil
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("geosearch"),
		a.searchView.Init(),
		a.searchView.Flush(),
	)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocognit,gocyclo // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case messages.Dispatch:
		if msg.Fn != nil {
			msg.Fn()
		}
		return a, a.searchView.Flush()

	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case tea.MouseMsg:
		if a.currentView == messages.ViewSearch {
			a.searchView, cmd = a.searchView.Update(msg)
		}
		return a, cmd

	case messages.ViewChanged:
		a.currentView = msg.View
		if msg.View == messages.ViewSettings {
			a.settingsView.Reset()
			return a, a.settingsView.Init()
		}
		return a, nil

	case messages.ConfigChanged:
		err := a.ports.Settings.Reload()
		if err == nil {
			err = a.rebuildControl()
		}
		return a, func() tea.Msg { return messages.ControlRebuilt{Err: err} }

	case messages.ControlRebuilt:
		if msg.Err != nil {
			logger.Warn("Rebuilding control: %v", msg.Err)
			a.err = msg.Err
			a.searchView, cmd = a.searchView.Update(messages.ErrorOccurred{Err: msg.Err})
			return a, cmd
		}
		a.err = nil
		return a, a.searchView.Flush()

	case messages.SettingsLoaded, messages.SettingSaved:
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		a.searchView, cmd = a.searchView.Update(msg)
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages to active view
	switch a.currentView {
	case messages.ViewSearch:
		a.searchView, cmd = a.searchView.Update(msg)
	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)
	case messages.ViewHelp:
		// Help view doesn't need to handle other messages
	}

	return a, cmd
}

// handleKey routes global bindings and forwards the rest to the active view.
func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()
	if keymap.Matches(keyStr, a.keymap.Quit) {
		return a, tea.Quit
	}

	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewSearch:
		switch {
		case keymap.Matches(keyStr, a.keymap.Help):
			a.currentView = messages.ViewHelp
			return a, nil
		case keymap.Matches(keyStr, a.keymap.Settings):
			return a.Update(messages.ViewChanged{View: messages.ViewSettings})
		}
		a.searchView, cmd = a.searchView.Update(msg)

	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)

	case messages.ViewHelp:
		if keymap.Matches(keyStr, a.keymap.Back) || keymap.Matches(keyStr, a.keymap.Help) {
			a.currentView = messages.ViewSearch
		}
	}
	return a, cmd
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewSettings:
		return a.settingsView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.searchView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Help

Search control:
  ctrl+f      Open or close the search box
  (type)      Enter a place or address
  enter       Search
  ↑/↓         Move through suggestions
  pgup/pgdn   Scroll suggestions
  esc         Hide suggestions, then cancel
  ctrl+x      Clear the box

Views:
  f1          Help
  f2          Settings
  ctrl+c      Quit

[esc] back to map`
}

// Run starts the TUI application. The loop is attached to the program and,
// when a config path is set, the file is watched for edits.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(a.ctx)
	defer cancel()

	p := tea.NewProgram(a,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	a.loop.Start(p.Send)
	defer a.loop.Stop()
	defer a.closeControl()

	if a.ports.ConfigPath != "" {
		w, err := file.NewWatcher(a.ports.ConfigPath)
		if err != nil {
			logger.Warn("Config watching disabled: %v", err)
		} else {
			defer w.Close()
			go w.Run(ctx, func() { p.Send(messages.ConfigChanged{}) })
		}
	}

	_, err := p.Run()
	return err
}

// Control returns the live search control.
func (a *App) Control() driving.GeoSearch {
	return a.control
}

// Map returns the map the control drives.
func (a *App) Map() *mapview.Map {
	return a.m
}

// Loop returns the scheduler loop.
func (a *App) Loop() *Loop {
	return a.loop
}

// SearchView returns the search view.
func (a *App) SearchView() *search.View {
	return a.searchView
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.searchView.SetDimensions(width, height)
	a.settingsView.SetDimensions(width, height)
}

