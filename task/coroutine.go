package task

// Coroutine support: single-step suspendable computations driven purely by
// explicit polling, once per frame. Useful for multi-step asset loads that
// want linear-looking code without paying for a thread or a runtime.

// coroutineCanceled is the panic value used to unwind a canceled body.
type coroutineCanceled struct{}

// coCore holds the parts of a coroutine that the body-side [Yield] handle
// needs without knowing the coroutine's return type. The resume and yield
// channels are unbuffered, so the body goroutine and the polling goroutine
// advance in strict lockstep: the body only ever runs while a Poll call is
// blocked on it.
type coCore[S any] struct {
	resume   chan struct{}
	yielded  chan struct{}
	state    *S
	canceled bool
}

// Yield is the suspension handle passed to a coroutine body. It is only
// valid inside that body, on the body's own goroutine.
type Yield[S any] struct {
	c *coCore[S]
}

// Yield suspends the body until the next Poll call. The first time a poll
// reaches it, the enclosing Poll returns "not ready"; the next poll resumes
// right after it. It is the minimal suspension point: do part of the work,
// yield, resume next frame.
func (y *Yield[S]) Yield() {
	y.c.yielded <- struct{}{}
	<-y.c.resume
	if y.c.canceled {
		panic(coroutineCanceled{})
	}
}

// State returns the application state passed to the Poll call currently
// driving the body. It panics if called while the coroutine is not being
// polled (for example from a goroutine the body itself started).
func (y *Yield[S]) State() *S {
	if y.c.state == nil {
		panic("task: coroutine state accessed outside of a poll")
	}
	return y.c.state
}

type coroutineStep[T any] struct {
	val      T
	panicked bool
	panicVal any
	canceled bool
}

// Coroutine is a suspendable computation stepped to completion by repeated
// [Coroutine.Poll] calls. It has a single owner and is not safe for
// concurrent use; the owning executor (or caller) is the only thing that
// may poll it. A finished coroutine stays finished: further polls return
// nothing.
type Coroutine[T, S any] struct {
	core     *coCore[S]
	done     chan coroutineStep[T]
	finished bool
}

// NewCoroutine starts a coroutine around body. The body does not run until
// the first Poll; each Poll then advances it by exactly one step, up to the
// next [Yield.Yield] or to completion. There is no external wake-up: polling
// is the only mechanism that advances the computation.
func NewCoroutine[T, S any](body func(*Yield[S]) T) *Coroutine[T, S] {
	core := &coCore[S]{
		resume:  make(chan struct{}),
		yielded: make(chan struct{}),
	}
	c := &Coroutine[T, S]{
		core: core,
		done: make(chan coroutineStep[T]),
	}
	go func() {
		var st coroutineStep[T]
		func() {
			defer func() {
				if r := recover(); r != nil {
					if _, ok := r.(coroutineCanceled); ok {
						st = coroutineStep[T]{canceled: true}
					} else {
						st = coroutineStep[T]{panicked: true, panicVal: r}
					}
				}
			}()
			<-core.resume
			if core.canceled {
				panic(coroutineCanceled{})
			}
			st = coroutineStep[T]{val: body(&Yield[S]{c: core})}
		}()
		c.done <- st
	}()
	return c
}

// Poll advances the coroutine by exactly one step. It returns (value, true)
// on the step that completes the body, and (zero, false) both while the
// body is suspended and forever after completion. A panic inside the body
// surfaces from Poll on the step that reached it.
func (c *Coroutine[T, S]) Poll(state *S) (T, bool) {
	var zero T
	if c.finished {
		return zero, false
	}
	c.core.state = state
	c.core.resume <- struct{}{}
	select {
	case <-c.core.yielded:
		c.core.state = nil
		return zero, false
	case st := <-c.done:
		c.core.state = nil
		c.finished = true
		if st.panicked {
			panic(st.panicVal)
		}
		return st.val, !st.canceled
	}
}

// Cancel unwinds an unfinished coroutine and releases its goroutine.
// Any value the body would still have produced is discarded. Cancel after
// completion (or a second Cancel) is a no-op. Like Poll, Cancel may only
// be called by the coroutine's owner.
func (c *Coroutine[T, S]) Cancel() {
	if c.finished {
		return
	}
	c.core.canceled = true
	c.core.resume <- struct{}{}
	<-c.done
	c.finished = true
}

// Done reports whether the coroutine has completed or been canceled.
func (c *Coroutine[T, S]) Done() bool {
	return c.finished
}

// Await resolves r from inside a main-thread coroutine body without
// blocking the main goroutine: it polls the result and yields until a
// later tick resolves it. Pool computations should use [Result.Wait]
// instead.
func Await[T, S any](y *Yield[S], r *Result[T]) (T, error) {
	for {
		if v, ok, err := r.TryGet(); ok {
			return v, err
		}
		y.Yield()
	}
}

// A Loading tracks a fallible, multi-step load (typically an asset read)
// and caches its outcome. Poll it once per frame until Result returns
// non-nil or Err reports the failure.
type Loading[T, S any] struct {
	co     *Coroutine[outcome[T], S]
	result *T
	err    error
}

// NewLoading wraps a fallible coroutine body into a Loading.
func NewLoading[T, S any](body func(*Yield[S]) (T, error)) *Loading[T, S] {
	co := NewCoroutine(func(y *Yield[S]) outcome[T] {
		v, err := body(y)
		return outcome[T]{val: v, err: err}
	})
	return &Loading[T, S]{co: co}
}

// Poll advances the load by one step. It returns the loaded value once the
// load completed, or the load's error once it failed; both outcomes are
// sticky and reported again on later polls without re-running anything.
func (l *Loading[T, S]) Poll(state *S) (*T, error) {
	if l.result != nil || l.err != nil {
		return l.result, l.err
	}
	if out, ok := l.co.Poll(state); ok {
		if out.err != nil {
			l.err = out.err
		} else {
			l.result = &out.val
		}
	}
	return l.result, l.err
}

// Result returns the loaded value, or nil while the load is unfinished or
// failed.
func (l *Loading[T, S]) Result() *T { return l.result }

// Err returns the load's error, if it has failed.
func (l *Loading[T, S]) Err() error { return l.err }

// Cancel abandons an unfinished load.
func (l *Loading[T, S]) Cancel() { l.co.Cancel() }
