package services

import (
	"github.com/custodia-labs/geosearch/internal/core/domain"
	"github.com/custodia-labs/geosearch/internal/core/ports/driven"
)

// SelectionFunc is notified when the suggestion list changes the search text.
// commit is true when the user activated an entry rather than highlighting it.
type SelectionFunc func(text string, commit bool)

// SuggestionList holds the autocomplete entries and the keyboard highlight.
// Visible implies at least one entry; Selected is -1 or a valid index.
type SuggestionList struct {
	presenter     driven.Presenter
	onSelect      SelectionFunc
	maxResults    int
	entries       []domain.Location
	selected      int
	visible       bool
	lastUserInput string
}

// NewSuggestionList creates an empty, hidden suggestion list.
func NewSuggestionList(maxResults int, presenter driven.Presenter, onSelect SelectionFunc) *SuggestionList {
	if presenter == nil {
		presenter = driven.PresenterFunc(func(domain.RenderInstruction) {})
	}
	if onSelect == nil {
		onSelect = func(string, bool) {}
	}
	return &SuggestionList{
		presenter:  presenter,
		onSelect:   onSelect,
		maxResults: maxResults,
		selected:   -1,
	}
}

// Show replaces the entries with the first maxResults results and clears the
// highlight. The list is hidden when nothing is left to show.
// It returns the number of entries shown.
func (l *SuggestionList) Show(results []domain.Location) int {
	n := len(results)
	if n > l.maxResults {
		n = l.maxResults
	}
	if n == 0 {
		l.Hide()
		return 0
	}

	l.entries = make([]domain.Location, n)
	copy(l.entries, results[:n])
	l.selected = -1
	l.visible = true
	l.presenter.Apply(domain.ShowSuggestions(l.Entries()))
	return n
}

// Hide clears and hides the list. Hiding a hidden list does nothing.
func (l *SuggestionList) Hide() {
	wasVisible := l.visible
	l.entries = nil
	l.selected = -1
	l.visible = false
	if wasVisible {
		l.presenter.Apply(domain.HideSuggestions())
	}
}

// IsVisible reports whether the list is on screen.
func (l *SuggestionList) IsVisible() bool {
	return l.visible
}

// Selected returns the highlighted index, or -1.
func (l *SuggestionList) Selected() int {
	return l.selected
}

// Entries returns a copy of the current entries.
func (l *SuggestionList) Entries() []domain.Location {
	if len(l.entries) == 0 {
		return nil
	}
	out := make([]domain.Location, len(l.entries))
	copy(out, l.entries)
	return out
}

// RecordLastUserInput stores what the user typed, restored when the
// highlight moves above the first entry.
func (l *SuggestionList) RecordLastUserInput(text string) {
	l.lastUserInput = text
}

// LastUserInput returns the recorded user text.
func (l *SuggestionList) LastUserInput() string {
	return l.lastUserInput
}

// MoveDown highlights the next entry, wrapping to the first.
func (l *SuggestionList) MoveDown() {
	if !l.visible {
		return
	}
	if l.selected < len(l.entries)-1 {
		l.selected++
	} else {
		l.selected = 0
	}
	l.highlight()
	l.onSelect(l.entries[l.selected].Label, false)
}

// MoveUp highlights the previous entry. Moving above the first entry clears
// the highlight and restores the user's own text.
func (l *SuggestionList) MoveUp() {
	if !l.visible || l.selected < 0 {
		return
	}
	l.selected--
	l.highlight()
	if l.selected >= 0 {
		l.onSelect(l.entries[l.selected].Label, false)
		return
	}
	l.onSelect(l.lastUserInput, false)
}

// Scroll maps wheel movement onto the highlight: positive deltas move down.
func (l *SuggestionList) Scroll(delta int) {
	switch {
	case delta > 0:
		l.MoveDown()
	case delta < 0:
		l.MoveUp()
	}
}

// Activate commits the entry at index. It returns false when index is not a
// visible entry.
func (l *SuggestionList) Activate(index int) bool {
	if !l.visible || index < 0 || index >= len(l.entries) {
		return false
	}
	label := l.entries[index].Label
	l.selected = index
	l.onSelect(label, true)
	return true
}

// State returns a copy of the list state.
func (l *SuggestionList) State() domain.SuggestionListState {
	return domain.SuggestionListState{
		Entries:       l.Entries(),
		Selected:      l.selected,
		Visible:       l.visible,
		LastUserInput: l.lastUserInput,
	}
}

func (l *SuggestionList) highlight() {
	l.presenter.Apply(domain.HighlightSuggestion(l.selected))
}
