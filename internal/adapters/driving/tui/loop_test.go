package tui

import (
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/geosearch/internal/adapters/driving/tui/messages"
)

// collector runs every dispatched function in order, like App.Update.
type collector struct {
	mu  sync.Mutex
	got chan struct{}
}

func (c *collector) send(msg tea.Msg) {
	d, ok := msg.(messages.Dispatch)
	if !ok {
		return
	}
	c.mu.Lock()
	d.Fn()
	c.mu.Unlock()
	c.got <- struct{}{}
}

func waitFor(t *testing.T, ch <-chan struct{}, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-ch:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out after %d of %d dispatches", i, n)
		}
	}
}

func TestLoop_PostDeliversInOrder(t *testing.T) {
	loop := NewLoop()
	defer loop.Stop()
	c := &collector{got: make(chan struct{}, 16)}

	var order []int
	for i := 0; i < 5; i++ {
		i := i
		loop.Post(func() { order = append(order, i) })
	}
	assert.Equal(t, 5, loop.Pending())

	loop.Start(c.send)
	waitFor(t, c.got, 5)

	c.mu.Lock()
	defer c.mu.Unlock()
	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
	assert.Equal(t, 0, loop.Pending())
}

func TestLoop_AfterFuncDelivers(t *testing.T) {
	loop := NewLoop()
	defer loop.Stop()
	c := &collector{got: make(chan struct{}, 4)}
	loop.Start(c.send)

	ran := false
	loop.AfterFunc(10*time.Millisecond, func() { ran = true })
	waitFor(t, c.got, 1)

	c.mu.Lock()
	defer c.mu.Unlock()
	assert.True(t, ran)
}

func TestLoop_AfterFuncStop(t *testing.T) {
	loop := NewLoop()
	defer loop.Stop()

	timer := loop.AfterFunc(time.Hour, func() {})
	require.NotNil(t, timer)
	assert.True(t, timer.Stop())
	assert.False(t, timer.Stop())
	assert.Equal(t, 0, loop.Pending())
}

func TestLoop_StartTwice(t *testing.T) {
	loop := NewLoop()
	defer loop.Stop()
	c := &collector{got: make(chan struct{}, 4)}

	loop.Start(c.send)
	loop.Start(func(tea.Msg) { t.Error("second sender used") })

	loop.Post(func() {})
	waitFor(t, c.got, 1)
}

func TestLoop_StopIsIdempotent(t *testing.T) {
	loop := NewLoop()
	loop.Stop()
	assert.NotPanics(t, loop.Stop)
}

func TestLoop_ScopedDropsWhenDead(t *testing.T) {
	loop := NewLoop()
	defer loop.Stop()
	c := &collector{got: make(chan struct{}, 4)}

	live := true
	sched := loop.Scoped(func() bool { return live })

	var ran []string
	sched.Post(func() { ran = append(ran, "first") })
	live = false
	sched.Post(func() { ran = append(ran, "second") })

	loop.Start(c.send)
	waitFor(t, c.got, 2)

	c.mu.Lock()
	defer c.mu.Unlock()
	assert.Empty(t, ran)
}

func TestLoop_ScopedRunsWhileLive(t *testing.T) {
	loop := NewLoop()
	defer loop.Stop()
	c := &collector{got: make(chan struct{}, 4)}
	loop.Start(c.send)

	ran := false
	sched := loop.Scoped(func() bool { return true })
	sched.AfterFunc(5*time.Millisecond, func() { ran = true })
	waitFor(t, c.got, 1)

	c.mu.Lock()
	defer c.mu.Unlock()
	assert.True(t, ran)
}
