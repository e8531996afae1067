// Package search provides the main search view for the TUI: the map panel
// with the geosearch control drawn over it.
package search

import (
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/geosearch/internal/adapters/driven/mapview"
	"github.com/custodia-labs/geosearch/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/geosearch/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/geosearch/internal/adapters/driving/tui/components/suggestions"
	"github.com/custodia-labs/geosearch/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/geosearch/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/geosearch/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/geosearch/internal/adapters/driving/tui/views/mappanel"
	"github.com/custodia-labs/geosearch/internal/core/domain"
	"github.com/custodia-labs/geosearch/internal/core/ports/driven"
	"github.com/custodia-labs/geosearch/internal/core/ports/driving"
)

// Ensure View implements the presenter port.
var _ driven.Presenter = (*View)(nil)

// suggestionRows is the height reserved for the suggestion list.
const suggestionRows = 6

// View is the search view. It renders the control's instructions and
// turns key presses into control events.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	box       *input.SearchBox
	list      *suggestions.List
	statusbar *status.Bar
	mapPanel  *mappanel.View
	m         *mapview.Map

	control  driving.GeoSearch
	position domain.Position

	// cmds collects commands produced while applying instructions.
	cmds []tea.Cmd

	width  int
	height int
	ready  bool
}

// NewView creates a search view over m.
func NewView(s *styles.Styles, km *keymap.KeyMap, m *mapview.Map) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	cfg := domain.DefaultConfig()
	return &View{
		styles:    s,
		keymap:    km,
		box:       input.NewSearchBox(s, cfg.SearchLabel),
		list:      suggestions.NewList(s),
		statusbar: status.NewBar(s, km),
		mapPanel:  mappanel.NewView(s, m),
		m:         m,
		position:  cfg.Position,
		width:     80,
		height:    24,
	}
}

// SetControl attaches a freshly built control and resets the widgets to
// match its configuration.
func (v *View) SetControl(ctrl driving.GeoSearch, cfg domain.Config, provider string) {
	v.control = ctrl
	v.position = cfg.Position

	v.box.SetPlaceholder(cfg.SearchLabel)
	v.box.SetButtons(cfg.EnableButtons)
	v.box.SetCancelButton(false)
	v.box.SetIcon(domain.IconGlass)
	v.box.SetValue("")
	v.box.SetVisible(cfg.AlwaysShowSearchBox)
	if cfg.AlwaysShowSearchBox {
		v.cmds = append(v.cmds, v.box.Focus())
	}
	v.list.Hide()
	v.statusbar.ClearMessage()
	v.statusbar.SetProvider(provider)
	v.sync()
}

// Control returns the attached control, or nil.
func (v *View) Control() driving.GeoSearch {
	return v.control
}

// Apply implements driven.Presenter.
func (v *View) Apply(instr domain.RenderInstruction) {
	switch instr.Kind {
	case domain.RenderShowBox:
		v.box.SetVisible(true)
	case domain.RenderHideBox:
		v.box.SetVisible(false)
	case domain.RenderFocusBox:
		v.m.Blur()
		v.cmds = append(v.cmds, v.box.Focus())
	case domain.RenderSetText:
		v.box.SetValue(instr.Text)
	case domain.RenderSetIcon:
		v.box.SetIcon(instr.Icon)
	case domain.RenderShowMessage:
		v.statusbar.SetMessage(instr.MessageKind, instr.Text)
	case domain.RenderHideMessage:
		v.statusbar.ClearMessage()
	case domain.RenderShowSuggestions:
		v.list.Show(instr.Entries)
	case domain.RenderHideSuggestions:
		v.list.Hide()
	case domain.RenderHighlightSuggestion:
		v.list.Highlight(instr.Index)
	case domain.RenderShowCancelButton:
		v.box.SetCancelButton(true)
	case domain.RenderHideCancelButton:
		v.box.SetCancelButton(false)
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.box.Init()
}

// Update handles messages for the search view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		v.handleKeyMsg(msg)

	case tea.MouseMsg:
		v.handleMouseMsg(msg)

	case messages.ErrorOccurred:
		if msg.Err != nil {
			v.statusbar.SetMessage(domain.MessageError, msg.Err.Error())
		}

	default:
		var cmd tea.Cmd
		v.box, cmd = v.box.Update(msg)
		v.cmds = append(v.cmds, cmd)
	}

	return v, v.Flush()
}

// Flush syncs the status bar with the control and returns the commands
// queued since the last flush. The app calls it after running work
// posted by the control.
func (v *View) Flush() tea.Cmd {
	v.sync()
	cmds := v.cmds
	v.cmds = nil
	return tea.Batch(cmds...)
}

func (v *View) sync() {
	if v.control == nil {
		v.statusbar.SetState(domain.StateIdle)
		return
	}
	v.statusbar.SetState(v.control.State())
	if v.m.Focused() && v.box.Focused() {
		v.box.Blur()
	}
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) {
	if v.control == nil {
		v.statusbar.SetMessage(domain.MessageError, ErrNoControl.Error())
		return
	}

	keyStr := msg.String()
	switch {
	case keymap.Matches(keyStr, v.keymap.Toggle):
		v.control.ClickIcon()
		return
	case keymap.Matches(keyStr, v.keymap.ScrollUp):
		v.control.ScrollSuggestions(-1)
		return
	case keymap.Matches(keyStr, v.keymap.ScrollDown):
		v.control.ScrollSuggestions(1)
		return
	}

	if !v.box.Visible() {
		return
	}

	if keymap.Matches(keyStr, v.keymap.Clear) {
		v.control.ClickCancel()
		return
	}

	// Typing into a blurred box is treated as clicking into it first.
	if !v.box.Focused() {
		v.m.Blur()
		v.cmds = append(v.cmds, v.box.Focus())
	}

	before := v.box.Value()
	var cmd tea.Cmd
	v.box, cmd = v.box.Update(msg)
	v.cmds = append(v.cmds, cmd)
	after := v.box.Value()

	if after != before {
		v.control.Input(after)
	}
	if msg.Paste {
		v.control.Paste(after)
		return
	}
	v.control.HandleKey(domainKey(msg), after)
}

// handleMouseMsg maps the wheel onto the suggestion list and left clicks
// onto its rows.
func (v *View) handleMouseMsg(msg tea.MouseMsg) {
	if v.control == nil || msg.Action != tea.MouseActionPress {
		return
	}
	//nolint:exhaustive // other buttons are ignored
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		v.control.ScrollSuggestions(-1)
	case tea.MouseButtonWheelDown:
		v.control.ScrollSuggestions(1)
	case tea.MouseButtonLeft:
		v.handleClick(msg.X, msg.Y)
	}
}

// handleClick commits the suggestion under the pointer. A click anywhere
// but the list or the box dismisses an open list.
func (v *View) handleClick(x, y int) {
	if !v.list.Visible() {
		return
	}

	top, left, right := v.listBounds()
	if x >= left && x < right {
		if i, ok := v.list.RowAt(y - top); ok {
			v.control.SelectSuggestion(i)
			return
		}
		if y < top && y >= top-lipgloss.Height(v.box.View()) {
			return
		}
	}
	v.control.BlurSuggestions()
}

// listBounds returns the screen line where the suggestion list starts and
// the columns the control block spans, mirroring View.
func (v *View) listBounds() (top, left, right int) {
	box := v.box.View()
	block := lipgloss.JoinVertical(v.hAlign(), box, v.list.View())

	top = lipgloss.Height(v.title())
	if v.isBottom() {
		top += lipgloss.Height(v.mapPanel.View())
	}
	top += lipgloss.Height(box)

	w := lipgloss.Width(block)
	gap := v.width - w
	if gap < 0 {
		gap = 0
	}
	switch v.hAlign() {
	case lipgloss.Right:
		left = gap
	case lipgloss.Left:
		left = 0
	default:
		left = gap - int(math.Round(float64(gap)/2))
	}
	return top, left, left + w
}

// domainKey translates a terminal key into the key the control reacts to.
func domainKey(msg tea.KeyMsg) domain.Key {
	//nolint:exhaustive // every other key edits the text
	switch msg.Type {
	case tea.KeyEnter:
		return domain.KeyEnter
	case tea.KeyEsc:
		return domain.KeyEscape
	case tea.KeyUp:
		return domain.KeyUp
	case tea.KeyDown:
		return domain.KeyDown
	case tea.KeyLeft:
		return domain.KeyLeft
	case tea.KeyRight:
		return domain.KeyRight
	case tea.KeyShiftLeft, tea.KeyShiftRight, tea.KeyShiftUp, tea.KeyShiftDown:
		return domain.KeyShift
	case tea.KeyCtrlLeft, tea.KeyCtrlRight, tea.KeyCtrlUp, tea.KeyCtrlDown:
		return domain.KeyCtrl
	default:
		return domain.KeyOther
	}
}

// View renders the search view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	controlRows := []string{v.box.View()}
	if v.list.Visible() {
		controlRows = append(controlRows, v.list.View())
	}
	control := v.place(lipgloss.JoinVertical(v.hAlign(), controlRows...))

	sections := make([]string, 0, 5)
	sections = append(sections, v.title())
	if v.isBottom() {
		sections = append(sections, v.mapPanel.View(), control)
	} else {
		sections = append(sections, control, v.mapPanel.View())
	}
	sections = append(sections, v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (v *View) title() string {
	return v.styles.Title.Render("geosearch")
}

func (v *View) isBottom() bool {
	return strings.HasPrefix(string(v.position), "bottom")
}

func (v *View) hAlign() lipgloss.Position {
	switch v.position {
	case domain.PositionTopRight, domain.PositionBottomRight:
		return lipgloss.Right
	case domain.PositionTopCenter:
		//nolint:misspell // lipgloss.Center is the correct constant from the library
		return lipgloss.Center
	default:
		return lipgloss.Left
	}
}

func (v *View) place(block string) string {
	return lipgloss.PlaceHorizontal(v.width, v.hAlign(), block)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	// Allocate space to components
	v.box.SetWidth(width)
	v.list.SetDimensions(width, suggestionRows)
	v.mapPanel.SetDimensions(width, height-suggestionRows-6)
	v.statusbar.SetWidth(width)
}

// Width returns the current width.
func (v *View) Width() int {
	return v.width
}

// Height returns the current height.
func (v *View) Height() int {
	return v.height
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Box returns the search box component.
func (v *View) Box() *input.SearchBox {
	return v.box
}

// Suggestions returns the suggestion list component.
func (v *View) Suggestions() *suggestions.List {
	return v.list
}

// StatusBar returns the status bar component.
func (v *View) StatusBar() *status.Bar {
	return v.statusbar
}

// MapPanel returns the map panel.
func (v *View) MapPanel() *mappanel.View {
	return v.mapPanel
}
