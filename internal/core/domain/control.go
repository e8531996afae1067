package domain

// ControlState is the visible state of the geosearch control.
type ControlState int

const (
	// StateIdle has the search box hidden.
	StateIdle ControlState = iota

	// StateBoxOpen has the search box visible and nothing pending.
	StateBoxOpen

	// StateSearching has a commit search outstanding.
	StateSearching

	// StateShowingSuggestions has the suggestion list visible.
	StateShowingSuggestions

	// StateShowingMessage has a flash message visible.
	StateShowingMessage
)

// String returns the string representation.
func (s ControlState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateBoxOpen:
		return "box_open"
	case StateSearching:
		return "searching"
	case StateShowingSuggestions:
		return "showing_suggestions"
	case StateShowingMessage:
		return "showing_message"
	default:
		return "unknown"
	}
}

// MessageKind distinguishes informational and error flash messages.
type MessageKind string

const (
	MessageInfo  MessageKind = "info"
	MessageError MessageKind = "error"
)

// Icon is the glyph shown on the control's link.
type Icon string

const (
	IconGlass   Icon = "glass"
	IconSpinner Icon = "spinner"
	IconAlert   Icon = "alert"
)

// Key is a keyboard key the control reacts to on release.
type Key int

const (
	// KeyOther is any key that edits the text.
	KeyOther Key = iota
	KeyEnter
	KeyEscape
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyShift
	KeyCtrl
)

// String returns the string representation.
func (k Key) String() string {
	switch k {
	case KeyEnter:
		return "enter"
	case KeyEscape:
		return "esc"
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyShift:
		return "shift"
	case KeyCtrl:
		return "ctrl"
	default:
		return "other"
	}
}

// Snapshot is a read-only copy of the control state for presenters and tests.
type Snapshot struct {
	State        ControlState
	Text         string
	BoxVisible   bool
	Icon         Icon
	Message      string
	MessageKind  MessageKind
	Suggestions  []Location
	Selected     int
	CancelButton bool
}

// SuggestionListState is a copy of the autocomplete list.
type SuggestionListState struct {
	Entries       []Location
	Selected      int
	Visible       bool
	LastUserInput string
}
