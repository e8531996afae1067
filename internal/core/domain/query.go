package domain

import "unicode/utf8"

// QueryOrigin identifies who produced a search query.
type QueryOrigin string

const (
	// OriginUserInput is text typed or selected by the user.
	OriginUserInput QueryOrigin = "user-input"

	// OriginProgrammatic is a query issued through the API.
	OriginProgrammatic QueryOrigin = "programmatic"
)

// SearchQuery is the text being searched and where it came from.
type SearchQuery struct {
	Text   string
	Origin QueryOrigin
}

// UserQuery creates a query originating from user input.
func UserQuery(text string) SearchQuery {
	return SearchQuery{Text: text, Origin: OriginUserInput}
}

// ProgrammaticQuery creates a query issued by code rather than the user.
func ProgrammaticQuery(text string) SearchQuery {
	return SearchQuery{Text: text, Origin: OriginProgrammatic}
}

// Len returns the query length in characters.
func (q SearchQuery) Len() int {
	return utf8.RuneCountInString(q.Text)
}

// IsEmpty reports whether there is no text to search for.
func (q SearchQuery) IsEmpty() bool {
	return q.Text == ""
}

// SessionMode selects how a search session treats its outcome.
type SessionMode int

const (
	// ModeAutocomplete is a speculative search that only feeds suggestions.
	ModeAutocomplete SessionMode = iota

	// ModeCommit is the authoritative search that moves the map.
	ModeCommit
)

// String returns the string representation.
func (m SessionMode) String() string {
	switch m {
	case ModeAutocomplete:
		return "autocomplete"
	case ModeCommit:
		return "commit"
	default:
		return "unknown"
	}
}
