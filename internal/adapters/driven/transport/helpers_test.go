package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
)

// seqTokens hands out cb1, cb2, ...
type seqTokens struct {
	n atomic.Int64
}

func (s *seqTokens) NewToken() string {
	return fmt.Sprintf("cb%d", s.n.Add(1))
}

// MockTransport implements driven.ResultTransport.
type MockTransport struct {
	mu        sync.Mutex
	FetchFunc func(ctx context.Context, url string) (json.RawMessage, error)
	URLs      []string
}

func (m *MockTransport) Fetch(ctx context.Context, url string) (json.RawMessage, error) {
	m.mu.Lock()
	m.URLs = append(m.URLs, url)
	m.mu.Unlock()
	if m.FetchFunc != nil {
		return m.FetchFunc(ctx, url)
	}
	return json.RawMessage(`[]`), nil
}

func (m *MockTransport) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.URLs)
}

// jsonpServer answers requests carrying a callback parameter with a JSONP
// call and everything else with status. It counts both kinds.
type jsonpServer struct {
	*httptest.Server
	status        int
	payload       string
	plainRequests atomic.Int64
	scriptHits    atomic.Int64
}

func newJSONPServer(t *testing.T, status int, payload string) *jsonpServer {
	t.Helper()
	s := &jsonpServer{status: status, payload: payload}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if cb := r.URL.Query().Get("callback"); cb != "" {
			s.scriptHits.Add(1)
			w.Header().Set("Content-Type", "application/javascript")
			fmt.Fprintf(w, "%s(%s);", cb, s.payload)
			return
		}
		s.plainRequests.Add(1)
		w.WriteHeader(s.status)
		if s.status == http.StatusOK {
			fmt.Fprint(w, s.payload)
		}
	}))
	t.Cleanup(s.Close)
	return s
}

func errorsIsFallThrough(err error) bool {
	return errors.Is(err, ErrFallThrough)
}
