package tui

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/geosearch/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/geosearch/internal/core/ports/driven"
)

// Ensure Loop implements the scheduler port.
var _ driven.Scheduler = (*Loop)(nil)

// Loop is a driven.Scheduler backed by the Bubbletea update loop. Posted
// functions are delivered as messages.Dispatch in posting order, so the
// control is only ever touched from Update.
//
// Sending straight to the program from inside Update would block, so a
// pump goroutine drains the queue instead.
type Loop struct {
	mu      sync.Mutex
	queue   []func()
	wake    chan struct{}
	done    chan struct{}
	once    sync.Once
	started bool
}

// NewLoop creates a loop. Nothing is delivered until Start is called.
func NewLoop() *Loop {
	return &Loop{
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
}

// Start begins delivering queued functions through send.
// Calling Start more than once has no effect.
func (l *Loop) Start(send func(tea.Msg)) {
	l.mu.Lock()
	if l.started {
		l.mu.Unlock()
		return
	}
	l.started = true
	l.mu.Unlock()

	go l.pump(send)
}

func (l *Loop) pump(send func(tea.Msg)) {
	for {
		select {
		case <-l.done:
			return
		case <-l.wake:
		}

		for {
			l.mu.Lock()
			if len(l.queue) == 0 {
				l.mu.Unlock()
				break
			}
			fn := l.queue[0]
			l.queue[0] = nil
			l.queue = l.queue[1:]
			l.mu.Unlock()

			select {
			case <-l.done:
				return
			default:
			}
			send(messages.Dispatch{Fn: fn})
		}
	}
}

// Post queues fn for the update loop. It is safe to call from any goroutine.
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// AfterFunc posts fn once d has elapsed.
func (l *Loop) AfterFunc(d time.Duration, fn func()) driven.Timer {
	return time.AfterFunc(d, func() { l.Post(fn) })
}

// Scoped returns a scheduler on this loop whose functions are dropped
// once live reports false. A replaced control gets a dead scope, so its
// late callbacks never reach the shared map or presenter.
func (l *Loop) Scoped(live func() bool) driven.Scheduler {
	return scope{loop: l, live: live}
}

type scope struct {
	loop *Loop
	live func() bool
}

func (s scope) guard(fn func()) func() {
	return func() {
		if s.live() {
			fn()
		}
	}
}

func (s scope) Post(fn func()) {
	s.loop.Post(s.guard(fn))
}

func (s scope) AfterFunc(d time.Duration, fn func()) driven.Timer {
	return s.loop.AfterFunc(d, s.guard(fn))
}

// Pending returns the number of queued functions not yet delivered.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.queue)
}

// Stop ends delivery. Queued functions are dropped.
func (l *Loop) Stop() {
	l.once.Do(func() { close(l.done) })
}
