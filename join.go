package relaybox

// Pair holds the results of the two branches of Join2.
type Pair[T, U any] struct {
	First  T
	Second U
}

// Join2 runs two futures "in parallel" within one cooperative task.
//
// Each poll of the returned future polls f1 if it has not completed yet and
// then f2 if it has not completed yet, always in this order. The side effects
// of f1 for a given poll therefore happen before those of f2. Once both
// branches are done, the join completes with both results and must not be
// polled again.
func Join2[T, U any](f1 Future[T], f2 Future[U]) Future[Pair[T, U]] {
	return &join2[T, U]{f1: f1, f2: f2}
}

type join2[T, U any] struct {
	f1       Future[T]
	f2       Future[U]
	r1       T
	r2       U
	done1    bool
	done2    bool
	consumed bool
}

func (j *join2[T, U]) Poll(cx *Context) (Pair[T, U], bool) {
	if j.consumed {
		panic("relaybox: join polled after completion")
	}
	if !j.done1 {
		j.r1, j.done1 = j.f1.Poll(cx)
	}
	if !j.done2 {
		j.r2, j.done2 = j.f2.Poll(cx)
	}
	if j.done1 && j.done2 {
		j.consumed = true
		res := Pair[T, U]{First: j.r1, Second: j.r2}
		var z1 T
		var z2 U
		j.r1, j.r2 = z1, z2
		return res, true
	}
	return Pair[T, U]{}, false
}

// Close releases branches that have not completed yet.
func (j *join2[T, U]) Close() {
	if !j.done1 {
		j.done1 = true
		closeFuture(j.f1)
	}
	if !j.done2 {
		j.done2 = true
		closeFuture(j.f2)
	}
}
