package relaybox

// Unit is the result of futures that complete without a value.
type Unit = struct{}

// Future is a computation that progresses each time it is polled.
//
// Poll returns the result and true once the computation is complete, or the
// zero value and false while it is still pending. A future must not be
// polled again after it reported completion.
type Future[T any] interface {
	Poll(cx *Context) (T, bool)
}

// PollFunc adapts a plain function to the Future interface.
type PollFunc[T any] func(cx *Context) (T, bool)

// Poll calls f(cx).
func (f PollFunc[T]) Poll(cx *Context) (T, bool) {
	return f(cx)
}

// Ready returns a future that completes with v on its first poll.
func Ready[T any](v T) Future[T] {
	return &ready[T]{v: v}
}

type ready[T any] struct {
	v    T
	done bool
}

func (r *ready[T]) Poll(*Context) (T, bool) {
	if r.done {
		panic("relaybox: ready future polled after completion")
	}
	r.done = true
	return r.v, true
}

// closer is implemented by futures that hold resources until they complete,
// such as coroutines.
type closer interface {
	Close()
}

func closeFuture(f any) {
	if c, ok := f.(closer); ok {
		c.Close()
	}
}
