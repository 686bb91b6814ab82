package relaybox

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/petermattis/goid"
)

// Builder is the first stage of creating an Executor. It exists so that the
// shared scheduler can be handed to the root task before the task is built.
type Builder[X any] struct {
	sched *Scheduler[X]
}

// NewExecutor starts building an executor. start must be the current instant
// at the time of creation; the signals start out as the zero value of X.
func NewExecutor[X any](start Instant) *Builder[X] {
	return &Builder[X]{
		sched: &Scheduler[X]{instant: start},
	}
}

// Scheduler returns the scheduler to pass to the root task.
func (b *Builder[X]) Scheduler() *Scheduler[X] {
	return b.sched
}

// Build finishes construction with task as the root task.
func (b *Builder[X]) Build(task Future[Unit], opts ...Option) *Executor[X] {
	cfg := config{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Executor[X]{
		task:      task,
		cx:        NewContext(NoopWaker()),
		sched:     b.sched,
		logger:    cfg.logger,
		observers: cfg.observers,
	}
}

// Executor runs a single root task, one poll per Step.
//
// The executor is either running (it holds the root task) or finished (the
// task completed and was dropped). The transition is one-way.
type Executor[X any] struct {
	task      Future[Unit]
	cx        *Context
	sched     *Scheduler[X]
	owner     int64
	stepping  bool
	steps     uint64
	logger    *slog.Logger
	observers []Observer
}

// Step advances the root task by exactly one poll.
//
// instant is the current time; signals describe what may have triggered this
// step and are made available to the task through the scheduler.
//
// The boolean result is false once the root task has finished; stepping may
// stop then. Otherwise the duration is the maximum delay before the next call
// to Step. Calling Step sooner is always acceptable and expected when an
// external event occurs. A zero duration means that no branch requested a
// delay and the task wants to be polled again immediately.
//
// Step must always be called from the same goroutine; it panics otherwise.
func (e *Executor[X]) Step(instant Instant, signals X) (Duration, bool) {
	e.claim()
	e.stepping = true
	defer func() { e.stepping = false }()

	e.sched.begin(instant, signals)
	if e.task == nil {
		return 0, false
	}

	e.steps++
	started := time.Now()
	_, done := e.task.Poll(e.cx)
	info := StepInfo{
		Step:    e.steps,
		Instant: instant,
		Elapsed: time.Since(started),
	}
	if done {
		e.task = nil
		info.Finished = true
		e.logger.Debug("root task finished", "step", e.steps, "instant", instant)
		e.notify(info)
		return 0, false
	}

	delay, ok := e.sched.pendingDelay()
	info.Delay = delay
	info.Requested = ok
	if !ok {
		e.logger.Debug("no delay requested, immediate re-poll", "step", e.steps, "instant", instant)
	}
	e.notify(info)
	return delay, true
}

// Finished reports whether the root task has completed or was closed.
func (e *Executor[X]) Finished() bool {
	return e.task == nil
}

// Steps returns the number of steps that polled the root task.
func (e *Executor[X]) Steps() uint64 {
	return e.steps
}

// Close abandons the root task if it is still running. Coroutines in the
// task tree unwind and release their resources. Afterwards the executor
// behaves as finished.
func (e *Executor[X]) Close() {
	e.claim()
	if e.task == nil {
		return
	}
	task := e.task
	e.task = nil
	closeFuture(task)
	e.logger.Debug("root task abandoned", "step", e.steps)
}

func (e *Executor[X]) claim() {
	id := goid.Get()
	if e.owner == 0 {
		e.owner = id
	} else if e.owner != id {
		panic(fmt.Sprintf("relaybox: executor owned by goroutine %d used from goroutine %d", e.owner, id))
	}
	if e.stepping {
		panic("relaybox: executor stepped re-entrantly")
	}
}

func (e *Executor[X]) notify(info StepInfo) {
	for _, o := range e.observers {
		o.ObserveStep(info)
	}
}
