// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/geosearch/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/geosearch/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/geosearch/internal/core/domain"
)

// Bar displays the control state, the flash message and keybinding hints.
type Bar struct {
	styles      *styles.Styles
	keymap      *keymap.KeyMap
	state       domain.ControlState
	message     string
	messageKind domain.MessageKind
	provider    string
	width       int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  domain.StateIdle,
		width:  80,
	}
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

func (s *Bar) renderLeft() string {
	if s.message != "" {
		if s.messageKind == domain.MessageError {
			return s.styles.Error.Render(s.message)
		}
		return s.styles.Info.Render(s.message)
	}

	var text string
	switch s.state {
	case domain.StateSearching:
		text = "Searching..."
	case domain.StateShowingSuggestions:
		text = "Suggestions"
	case domain.StateBoxOpen:
		text = "Ready"
	default:
		text = "Idle"
	}
	if s.provider != "" {
		text = fmt.Sprintf("%s · %s", text, s.provider)
	}
	return s.styles.Muted.Render(text)
}

func (s *Bar) renderRight() string {
	var bindings []key.Binding
	if s.state == domain.StateShowingSuggestions {
		bindings = s.keymap.SuggestionsHelp()
	} else {
		bindings = s.keymap.ShortHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Help.Render(strings.Join(hints, " | "))
}

// SetState sets the control state.
func (s *Bar) SetState(state domain.ControlState) {
	s.state = state
}

// State returns the control state.
func (s *Bar) State() domain.ControlState {
	return s.state
}

// SetMessage shows a flash message.
func (s *Bar) SetMessage(kind domain.MessageKind, message string) {
	s.messageKind = kind
	s.message = message
}

// ClearMessage removes the flash message.
func (s *Bar) ClearMessage() {
	s.message = ""
	s.messageKind = ""
}

// Message returns the flash message and its kind.
func (s *Bar) Message() (domain.MessageKind, string) {
	return s.messageKind, s.message
}

// SetProvider sets the provider name shown next to the state.
func (s *Bar) SetProvider(name string) {
	s.provider = name
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}
