package driving

import "github.com/custodia-labs/geosearch/internal/core/domain"

// GeoSearch is the interactive search control driven by a presentation layer.
// Every method must be called from the control's event loop.
type GeoSearch interface {
	// ClickIcon toggles the search box, or submits when it is always shown.
	ClickIcon()

	// ClickSubmit starts a commit search with the current text.
	ClickSubmit()

	// ClickCancel clears the search box.
	ClickCancel()

	// HandleKey reacts to a key release. text is the box content after the key.
	HandleKey(key domain.Key, text string)

	// Input reacts to the raw text-changed event.
	Input(text string)

	// Paste reacts to pasted text; the box content is re-read on the next tick.
	Paste(text string)

	// SelectSuggestion commits the suggestion at index (pointer activation).
	SelectSuggestion(index int)

	// ScrollSuggestions moves the highlight by wheel delta.
	ScrollSuggestions(delta int)

	// BlurSuggestions hides the suggestion list.
	BlurSuggestions()

	// Search runs a programmatic commit search.
	Search(query string)

	// Cancel abandons the search and clears the box.
	Cancel()

	// State returns the current control state.
	State() domain.ControlState

	// Snapshot returns a copy of the visible state.
	Snapshot() domain.Snapshot
}
