// Package input provides the search box component for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/geosearch/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/geosearch/internal/core/domain"
)

// Icon glyphs.
var iconGlyphs = map[domain.Icon]string{
	domain.IconGlass:   "⌕",
	domain.IconSpinner: "◌",
	domain.IconAlert:   "!",
}

// SearchBox is the control's text box with its icon and optional buttons.
type SearchBox struct {
	textinput    textinput.Model
	styles       *styles.Styles
	icon         domain.Icon
	visible      bool
	buttons      bool
	cancelButton bool
	width        int
}

// NewSearchBox creates a search box with placeholder as its label.
func NewSearchBox(s *styles.Styles, placeholder string) *SearchBox {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 256
	ti.Width = 40

	return &SearchBox{
		textinput: ti,
		styles:    s,
		icon:      domain.IconGlass,
		width:     40,
	}
}

// Init initialises the search box.
func (b *SearchBox) Init() tea.Cmd {
	return textinput.Blink
}

// Update forwards messages to the text input.
func (b *SearchBox) Update(msg tea.Msg) (*SearchBox, tea.Cmd) {
	var cmd tea.Cmd
	b.textinput, cmd = b.textinput.Update(msg)
	return b, cmd
}

// View renders the icon, and the box when visible.
func (b *SearchBox) View() string {
	icon := b.styles.Icon.Render(Glyph(b.icon))
	if b.icon == domain.IconAlert {
		icon = b.styles.Error.Padding(0, 1).Render(Glyph(b.icon))
	}
	if !b.visible {
		return icon
	}

	parts := []string{icon, b.styles.SearchBox.Render(b.textinput.View())}
	if b.buttons {
		parts = append(parts, b.styles.Button.Render("Search"))
		if b.cancelButton {
			parts = append(parts, b.styles.Button.Render("✕"))
		}
	}
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}

// Glyph returns the glyph for icon.
func Glyph(icon domain.Icon) string {
	if g, ok := iconGlyphs[icon]; ok {
		return g
	}
	return "?"
}

// Value returns the current text.
func (b *SearchBox) Value() string {
	return b.textinput.Value()
}

// SetValue sets the text.
func (b *SearchBox) SetValue(value string) {
	b.textinput.SetValue(value)
	b.textinput.CursorEnd()
}

// SetPlaceholder sets the label shown while the box is empty.
func (b *SearchBox) SetPlaceholder(placeholder string) {
	b.textinput.Placeholder = placeholder
}

// Placeholder returns the box label.
func (b *SearchBox) Placeholder() string {
	return b.textinput.Placeholder
}

// SetVisible shows or hides the box. The icon is always shown.
func (b *SearchBox) SetVisible(visible bool) {
	b.visible = visible
	if !visible {
		b.textinput.Blur()
	}
}

// Visible reports whether the box is shown.
func (b *SearchBox) Visible() bool {
	return b.visible
}

// Focus sets focus on the input.
func (b *SearchBox) Focus() tea.Cmd {
	return b.textinput.Focus()
}

// Blur removes focus from the input.
func (b *SearchBox) Blur() {
	b.textinput.Blur()
}

// Focused returns whether the input is focused.
func (b *SearchBox) Focused() bool {
	return b.textinput.Focused()
}

// SetIcon sets the icon glyph.
func (b *SearchBox) SetIcon(icon domain.Icon) {
	b.icon = icon
}

// Icon returns the current icon.
func (b *SearchBox) Icon() domain.Icon {
	return b.icon
}

// SetButtons enables the submit and cancel buttons.
func (b *SearchBox) SetButtons(enabled bool) {
	b.buttons = enabled
}

// SetCancelButton shows or hides the cancel button.
func (b *SearchBox) SetCancelButton(visible bool) {
	b.cancelButton = visible
}

// CancelButton reports whether the cancel button is shown.
func (b *SearchBox) CancelButton() bool {
	return b.cancelButton
}

// SetWidth sets the width of the box.
func (b *SearchBox) SetWidth(width int) {
	b.width = width
	// icon, border, padding and buttons
	inputWidth := width - 24
	if inputWidth < 20 {
		inputWidth = 20
	}
	b.textinput.Width = inputWidth
}

// Width returns the current width.
func (b *SearchBox) Width() int {
	return b.width
}
