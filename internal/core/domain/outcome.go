package domain

// OutcomeKind tags the variant held by an Outcome.
type OutcomeKind int

const (
	// OutcomeSuccess carries at least one location.
	OutcomeSuccess OutcomeKind = iota

	// OutcomeEmpty is a successful lookup with no matches.
	OutcomeEmpty

	// OutcomeFailure carries the error that ended the search.
	OutcomeFailure
)

// String returns the string representation.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeEmpty:
		return "empty"
	case OutcomeFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// Outcome is the result of one search session.
type Outcome struct {
	Kind      OutcomeKind
	Locations []Location
	Query     string
	Err       error
}

// NewSuccess creates a success outcome, or an empty one when there are no
// locations.
func NewSuccess(locations []Location, query string) Outcome {
	if len(locations) == 0 {
		return NewEmpty(query)
	}
	return Outcome{Kind: OutcomeSuccess, Locations: locations, Query: query}
}

// NewEmpty creates an empty-result outcome.
func NewEmpty(query string) Outcome {
	return Outcome{Kind: OutcomeEmpty, Query: query}
}

// NewFailure creates a failure outcome.
func NewFailure(err error) Outcome {
	return Outcome{Kind: OutcomeFailure, Err: err}
}
