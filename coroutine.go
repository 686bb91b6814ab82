package relaybox

import "iter"

// Co is the handle a coroutine body uses to suspend itself.
//
// A Co is only valid inside the body it was passed to. Functions that take a
// *Co may only be called from inside a coroutine body.
type Co struct {
	cx        *Context
	yield     func(Unit) bool
	abandoned bool
}

// abandon is the panic value used to unwind a coroutine whose owner gave up
// on it before it completed.
type abandon struct{}

// suspend returns control to whoever polled the coroutine. It returns when
// the coroutine is polled again.
func (co *Co) suspend() {
	if co.abandoned || !co.yield(Unit{}) {
		co.abandoned = true
		panic(abandon{})
	}
}

// Context returns the poll context of the current resumption.
func (co *Co) Context() *Context {
	return co.cx
}

// Yield suspends the coroutine exactly once, like awaiting YieldNow.
func (co *Co) Yield() {
	Await(co, YieldNow())
}

// SleepAtMost requests a wake-up within d milliseconds and suspends once.
func (co *Co) SleepAtMost(t Timing, d Duration) {
	Await(co, SleepAtMost(t, d))
}

// Await polls f until it completes, suspending the calling coroutine each
// time f is pending. It returns the result of f.
func Await[T any](co *Co, f Future[T]) T {
	defer func() {
		if co.abandoned {
			closeFuture(f)
		}
	}()
	for {
		if v, ok := f.Poll(co.cx); ok {
			return v
		}
		co.suspend()
	}
}

// Async returns a future that runs body as a coroutine.
//
// The body starts on the first poll and runs until it suspends through its
// *Co (directly or via Await). Every further poll resumes it. The future
// completes with the value returned by body. A panic in body propagates to
// the caller of Poll.
//
// The coroutine is only created by the first poll. A future that was polled
// but will not be polled to completion must be closed, see Executor.Close.
func Async[T any](body func(co *Co) T) Future[T] {
	return &coroutine[T]{co: &Co{}, body: body}
}

// Task is Async for bodies without a result.
func Task(body func(co *Co)) Future[Unit] {
	return Async(func(co *Co) Unit {
		body(co)
		return Unit{}
	})
}

type coroutine[T any] struct {
	co     *Co
	body   func(co *Co) T
	next   func() (Unit, bool)
	stop   func()
	result T
	done   bool
}

func (c *coroutine[T]) Poll(cx *Context) (T, bool) {
	if c.done {
		panic("relaybox: coroutine polled after completion")
	}
	c.co.cx = cx
	if c.next == nil {
		c.start()
	}
	if _, suspended := c.next(); suspended {
		var zero T
		return zero, false
	}
	c.done = true
	c.stop()
	return c.result, true
}

func (c *coroutine[T]) start() {
	body := c.body
	c.body = nil
	c.next, c.stop = iter.Pull(func(yield func(Unit) bool) {
		c.co.yield = yield
		defer func() {
			if r := recover(); r != nil {
				if _, ok := r.(abandon); !ok {
					panic(r)
				}
			}
		}()
		c.result = body(c.co)
	})
}

// Close abandons a coroutine that has not completed. Its body unwinds at the
// point where it is suspended; deferred calls run and awaited futures are
// closed in turn.
func (c *coroutine[T]) Close() {
	if c.done {
		return
	}
	c.done = true
	if c.stop != nil {
		c.stop()
	}
}
