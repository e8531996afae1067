package driven

import "time"

// Timer is a pending scheduled call.
type Timer interface {
	// Stop prevents the call from running. It returns false if the call
	// already ran or was already stopped.
	Stop() bool
}

// Scheduler runs functions on the control's event loop.
// All engine state is only touched from functions it runs.
type Scheduler interface {
	// AfterFunc runs fn on the loop once d has elapsed.
	AfterFunc(d time.Duration, fn func()) Timer

	// Post runs fn on the loop as soon as possible. It is safe to call
	// from any goroutine.
	Post(fn func())
}
