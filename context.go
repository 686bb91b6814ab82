package relaybox

// Waker is notified when a pending future wants to be polled again.
type Waker interface {
	Wake()
}

type noopWaker struct{}

func (noopWaker) Wake() {}

// NoopWaker returns a waker whose Wake does nothing.
//
// The executor has no way to be woken between steps: a call to Step is the
// wake event. Waking therefore has no independent effect.
func NoopWaker() Waker {
	return noopWaker{}
}

// Context is passed to every Poll call.
type Context struct {
	waker Waker
}

// NewContext creates a poll context around w. A nil waker is replaced by
// NoopWaker.
func NewContext(w Waker) *Context {
	if w == nil {
		w = NoopWaker()
	}
	return &Context{waker: w}
}

// Waker returns the waker of the current poll.
func (c *Context) Waker() Waker {
	return c.waker
}
