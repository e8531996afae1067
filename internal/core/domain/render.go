package domain

// InstructionKind identifies a render instruction.
type InstructionKind int

const (
	RenderShowBox InstructionKind = iota
	RenderHideBox
	RenderFocusBox
	RenderSetText
	RenderSetIcon
	RenderShowMessage
	RenderHideMessage
	RenderShowSuggestions
	RenderHideSuggestions
	RenderHighlightSuggestion
	RenderShowCancelButton
	RenderHideCancelButton
)

// String returns the string representation.
func (k InstructionKind) String() string {
	switch k {
	case RenderShowBox:
		return "show_box"
	case RenderHideBox:
		return "hide_box"
	case RenderFocusBox:
		return "focus_box"
	case RenderSetText:
		return "set_text"
	case RenderSetIcon:
		return "set_icon"
	case RenderShowMessage:
		return "show_message"
	case RenderHideMessage:
		return "hide_message"
	case RenderShowSuggestions:
		return "show_suggestions"
	case RenderHideSuggestions:
		return "hide_suggestions"
	case RenderHighlightSuggestion:
		return "highlight_suggestion"
	case RenderShowCancelButton:
		return "show_cancel_button"
	case RenderHideCancelButton:
		return "hide_cancel_button"
	default:
		return "unknown"
	}
}

// RenderInstruction tells a presenter how to change what is on screen.
// Only the fields relevant to Kind are set.
type RenderInstruction struct {
	Kind        InstructionKind
	Text        string
	Icon        Icon
	MessageKind MessageKind
	Entries     []Location
	Index       int
}

// ShowBox opens the search box.
func ShowBox() RenderInstruction { return RenderInstruction{Kind: RenderShowBox} }

// HideBox closes the search box.
func HideBox() RenderInstruction { return RenderInstruction{Kind: RenderHideBox} }

// FocusBox moves keyboard focus to the search box.
func FocusBox() RenderInstruction { return RenderInstruction{Kind: RenderFocusBox} }

// SetText replaces the search box contents.
func SetText(text string) RenderInstruction {
	return RenderInstruction{Kind: RenderSetText, Text: text}
}

// SetIcon swaps the control icon.
func SetIcon(icon Icon) RenderInstruction {
	return RenderInstruction{Kind: RenderSetIcon, Icon: icon}
}

// ShowMessage displays a flash message.
func ShowMessage(kind MessageKind, text string) RenderInstruction {
	return RenderInstruction{Kind: RenderShowMessage, MessageKind: kind, Text: text}
}

// HideMessage removes the flash message.
func HideMessage() RenderInstruction { return RenderInstruction{Kind: RenderHideMessage} }

// ShowSuggestions renders the suggestion entries with nothing highlighted.
func ShowSuggestions(entries []Location) RenderInstruction {
	return RenderInstruction{Kind: RenderShowSuggestions, Entries: entries, Index: -1}
}

// HideSuggestions clears and hides the suggestion list.
func HideSuggestions() RenderInstruction { return RenderInstruction{Kind: RenderHideSuggestions} }

// HighlightSuggestion highlights entry index, or none when index is -1.
func HighlightSuggestion(index int) RenderInstruction {
	return RenderInstruction{Kind: RenderHighlightSuggestion, Index: index}
}

// ShowCancelButton reveals the cancel button.
func ShowCancelButton() RenderInstruction { return RenderInstruction{Kind: RenderShowCancelButton} }

// HideCancelButton hides the cancel button.
func HideCancelButton() RenderInstruction { return RenderInstruction{Kind: RenderHideCancelButton} }
