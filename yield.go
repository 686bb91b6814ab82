package relaybox

// YieldNow returns a future that suspends exactly once.
//
// The first poll wakes the waker and reports pending; the second poll
// completes. This is the only primitive that actually suspends.
func YieldNow() Future[Unit] {
	return &yieldNow{}
}

type yieldNow struct {
	yielded bool
}

func (y *yieldNow) Poll(cx *Context) (Unit, bool) {
	if !y.yielded {
		y.yielded = true
		cx.Waker().Wake()
		return Unit{}, false
	}
	return Unit{}, true
}
