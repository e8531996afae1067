package services

import (
	"context"

	"github.com/custodia-labs/geosearch/internal/core/domain"
	"github.com/custodia-labs/geosearch/internal/logger"
)

// OutcomeFunc receives the outcome of one search session.
type OutcomeFunc func(outcome domain.Outcome)

// SearchSession runs a single query through the provider adapter and hands
// the outcome to the handler for its mode. Each run delivers exactly one
// outcome; runs are independent and are never cancelled.
type SearchSession struct {
	adapter        *ProviderAdapter
	minQueryLen    int
	onAutocomplete OutcomeFunc
	onCommit       OutcomeFunc
}

// NewSearchSession creates a session runner.
func NewSearchSession(adapter *ProviderAdapter, minQueryLen int, onAutocomplete, onCommit OutcomeFunc) *SearchSession {
	return &SearchSession{
		adapter:        adapter,
		minQueryLen:    minQueryLen,
		onAutocomplete: onAutocomplete,
		onCommit:       onCommit,
	}
}

// Run starts a search for query. It returns false, without contacting the
// provider, when the query is empty or too short to autocomplete.
func (s *SearchSession) Run(ctx context.Context, mode domain.SessionMode, query domain.SearchQuery) bool {
	if query.IsEmpty() {
		return false
	}
	if mode == domain.ModeAutocomplete && query.Len() < s.minQueryLen {
		return false
	}

	handler := s.onCommit
	if mode == domain.ModeAutocomplete {
		handler = s.onAutocomplete
	}

	logger.Debug("Session %s: %q (%s)", mode, query.Text, query.Origin)
	s.adapter.Resolve(ctx, query.Text,
		func(locations []domain.Location, q string) {
			handler(domain.NewSuccess(locations, q))
		},
		func(err error) {
			handler(domain.NewFailure(err))
		},
	)
	return true
}
