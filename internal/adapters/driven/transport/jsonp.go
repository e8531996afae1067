package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/custodia-labs/geosearch/internal/core/domain"
	"github.com/custodia-labs/geosearch/internal/core/ports/driven"
	"github.com/custodia-labs/geosearch/internal/logger"
)

// Ensure ScriptTransport implements the interface.
var _ driven.ResultTransport = (*ScriptTransport)(nil)

// CallbackRegistry holds the single-use callback slots of in-flight script
// loads, keyed by correlation token.
type CallbackRegistry struct {
	mu    sync.Mutex
	slots map[string]chan json.RawMessage
}

// NewCallbackRegistry creates an empty registry.
func NewCallbackRegistry() *CallbackRegistry {
	return &CallbackRegistry{slots: make(map[string]chan json.RawMessage)}
}

// Register opens a slot for name.
func (r *CallbackRegistry) Register(name string) <-chan json.RawMessage {
	r.mu.Lock()
	defer r.mu.Unlock()
	ch := make(chan json.RawMessage, 1)
	r.slots[name] = ch
	return ch
}

// Invoke delivers payload to the slot for name and clears it. It returns
// false when no such slot exists.
func (r *CallbackRegistry) Invoke(name string, payload json.RawMessage) bool {
	r.mu.Lock()
	ch, ok := r.slots[name]
	delete(r.slots, name)
	r.mu.Unlock()

	if !ok {
		return false
	}
	ch <- payload
	return true
}

// Remove clears the slot for name without delivering anything.
func (r *CallbackRegistry) Remove(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.slots, name)
}

// Pending returns the number of open slots.
func (r *CallbackRegistry) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.slots)
}

// ScriptLoader retrieves and evaluates a script. Evaluating a well-formed
// JSONP response invokes the callback it names in the registry. Failures are
// silent.
type ScriptLoader interface {
	Load(ctx context.Context, src string, callbacks *CallbackRegistry)
}

// ScriptTransport retrieves results by script injection. The callback slot
// is named by a fresh token per call so overlapping calls never collide.
type ScriptTransport struct {
	tokens    driven.TokenSource
	loader    ScriptLoader
	callbacks *CallbackRegistry

	active   atomic.Int64
	injected atomic.Int64
}

// NewScriptTransport creates a script-injection transport.
func NewScriptTransport(tokens driven.TokenSource, loader ScriptLoader) (*ScriptTransport, error) {
	if tokens == nil {
		return nil, ErrNoTokenSource
	}
	if loader == nil {
		loader = NewHTTPScriptLoader(nil, "")
	}
	return &ScriptTransport{
		tokens:    tokens,
		loader:    loader,
		callbacks: NewCallbackRegistry(),
	}, nil
}

// Fetch injects one script for url with a callback parameter and waits for
// the callback. A load that never calls back stalls until ctx is done.
func (t *ScriptTransport) Fetch(ctx context.Context, rawURL string) (json.RawMessage, error) {
	token := t.tokens.NewToken()
	src, err := withCallback(rawURL, token)
	if err != nil {
		return nil, &domain.TransportError{Transport: "script", URL: rawURL, Err: err}
	}

	slot := t.callbacks.Register(token)
	loadCtx, removeNode := context.WithCancel(ctx)
	t.active.Add(1)
	t.injected.Add(1)
	defer func() {
		removeNode()
		t.active.Add(-1)
		t.callbacks.Remove(token)
	}()

	logger.Debug("Injecting script %s", src)
	go t.loader.Load(loadCtx, src, t.callbacks)

	select {
	case payload := <-slot:
		return payload, nil
	case <-ctx.Done():
		logger.Warn("Script load for %s never called back: %v", rawURL, ctx.Err())
		return nil, &domain.TransportError{Transport: "script", URL: rawURL, Err: ctx.Err()}
	}
}

// Active returns the number of injected scripts not yet removed.
func (t *ScriptTransport) Active() int {
	return int(t.active.Load())
}

// Injected returns the total number of scripts injected.
func (t *ScriptTransport) Injected() int {
	return int(t.injected.Load())
}

// Callbacks exposes the registry.
func (t *ScriptTransport) Callbacks() *CallbackRegistry {
	return t.callbacks
}

// withCallback appends the callback parameter, keeping the rest of the URL
// untouched.
func withCallback(rawURL, name string) (string, error) {
	if _, err := url.Parse(rawURL); err != nil {
		return "", err
	}
	sep := "?"
	if strings.Contains(rawURL, "?") {
		sep = "&"
	}
	return rawURL + sep + "callback=" + url.QueryEscape(name), nil
}

// HTTPScriptLoader fetches scripts over HTTP and evaluates JSONP payloads.
type HTTPScriptLoader struct {
	client    *http.Client
	userAgent string
}

// NewHTTPScriptLoader creates a loader.
func NewHTTPScriptLoader(client *http.Client, userAgent string) *HTTPScriptLoader {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPScriptLoader{client: client, userAgent: userAgent}
}

// Load fetches src and, if the body is a JSONP call, invokes its callback.
func (l *HTTPScriptLoader) Load(ctx context.Context, src string, callbacks *CallbackRegistry) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		logger.Debug("Script request: %v", err)
		return
	}
	if l.userAgent != "" {
		req.Header.Set("User-Agent", l.userAgent)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		logger.Debug("Script load: %v", err)
		return
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		logger.Debug("Script read: %v", err)
		return
	}

	name, payload, err := parseJSONP(body)
	if err != nil {
		logger.Debug("Script eval: %v", err)
		return
	}
	if !callbacks.Invoke(name, payload) {
		logger.Debug("Script called unknown callback %q", name)
	}
}

var errNotJSONP = errors.New("not a JSONP call")

// parseJSONP splits `name(payload);` into its callback name and payload.
func parseJSONP(body []byte) (string, json.RawMessage, error) {
	body = bytes.TrimSpace(body)
	body = bytes.TrimPrefix(body, []byte("/**/"))
	body = bytes.TrimSuffix(body, []byte(";"))
	body = bytes.TrimSpace(body)

	open := bytes.IndexByte(body, '(')
	if open <= 0 || body[len(body)-1] != ')' {
		return "", nil, errNotJSONP
	}
	name := string(bytes.TrimSpace(body[:open]))
	payload := bytes.TrimSpace(body[open+1 : len(body)-1])
	if !json.Valid(payload) {
		return "", nil, fmt.Errorf("%w: invalid payload", errNotJSONP)
	}
	return name, json.RawMessage(payload), nil
}
