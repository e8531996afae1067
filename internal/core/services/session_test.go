package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/geosearch/internal/core/domain"
	"github.com/custodia-labs/geosearch/internal/core/ports/driven"
)

type sessionRecorder struct {
	autocomplete []domain.Outcome
	commit       []domain.Outcome
}

func newTestSession(t *testing.T, lookup driven.DirectLookup) (*SearchSession, *sessionRecorder, *fakeScheduler) {
	t.Helper()
	adapter, sched := newTestAdapter(t, driven.NewDirectProvider("mock", lookup), nil)
	rec := &sessionRecorder{}
	session := NewSearchSession(adapter, 3,
		func(o domain.Outcome) { rec.autocomplete = append(rec.autocomplete, o) },
		func(o domain.Outcome) { rec.commit = append(rec.commit, o) },
	)
	return session, rec, sched
}

func TestSearchSession_AutocompleteBelowMinimumDoesNotRun(t *testing.T) {
	lookup := staticLookup(loc("A", 0, 0))
	session, rec, sched := newTestSession(t, lookup)

	ran := session.Run(context.Background(), domain.ModeAutocomplete, domain.UserQuery("ab"))
	sched.Flush()

	assert.False(t, ran)
	assert.Empty(t, lookup.Queries)
	assert.Empty(t, rec.autocomplete)
}

func TestSearchSession_CommitShortQueryRuns(t *testing.T) {
	lookup := staticLookup(loc("A", 0, 0))
	session, rec, sched := newTestSession(t, lookup)

	ran := session.Run(context.Background(), domain.ModeCommit, domain.UserQuery("ab"))
	sched.Flush()

	assert.True(t, ran)
	require.Len(t, rec.commit, 1)
	assert.Equal(t, domain.OutcomeSuccess, rec.commit[0].Kind)
	assert.Empty(t, rec.autocomplete)
}

func TestSearchSession_EmptyQueryDoesNotRun(t *testing.T) {
	lookup := staticLookup()
	session, _, _ := newTestSession(t, lookup)

	assert.False(t, session.Run(context.Background(), domain.ModeCommit, domain.UserQuery("")))
	assert.Empty(t, lookup.Queries)
}

func TestSearchSession_Outcomes(t *testing.T) {
	tests := []struct {
		name   string
		lookup *MockDirectLookup
		want   domain.OutcomeKind
	}{
		{"success", staticLookup(loc("A", 0, 0)), domain.OutcomeSuccess},
		{"empty", staticLookup(), domain.OutcomeEmpty},
		{"failure", &MockDirectLookup{LookupFunc: func(context.Context, string) ([]domain.Location, error) {
			return nil, errors.New("down")
		}}, domain.OutcomeFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session, rec, sched := newTestSession(t, tt.lookup)

			session.Run(context.Background(), domain.ModeAutocomplete, domain.UserQuery("abcd"))
			sched.Flush()

			require.Len(t, rec.autocomplete, 1, "exactly one outcome per run")
			assert.Equal(t, tt.want, rec.autocomplete[0].Kind)
		})
	}
}
