// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

// Dispatch runs Fn on the update loop. The control's scheduler delivers
// every posted and timed call this way.
type Dispatch struct {
	Fn func()
}

// ConfigChanged is sent when the configuration file changed on disk or a
// setting was saved.
type ConfigChanged struct{}

// ControlRebuilt reports the outcome of rebuilding the control from
// fresh settings.
type ControlRebuilt struct {
	Err error
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewSearch is the map with the search control.
	ViewSearch ViewType = iota
	// ViewSettings is the settings editor.
	ViewSettings
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewSearch:
		return "search"
	case ViewSettings:
		return "settings"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// SettingsLoaded carries the setting keys and their current values.
type SettingsLoaded struct {
	Keys   []string
	Values map[string]string
	Err    error
}

// SettingSaved signals a setting was written.
type SettingSaved struct {
	Key string
	Err error
}
