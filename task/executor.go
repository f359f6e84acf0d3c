package task

// mainExecutor is the single-threaded cooperative pool driving
// main-thread-only computations. It is owned by a [Context] and touched
// only from the goroutine that runs the tick hooks; nothing here locks.
type mainExecutor[S any] struct {
	pending []*Coroutine[struct{}, S]
	closed  bool
}

func (e *mainExecutor[S]) spawn(co *Coroutine[struct{}, S]) error {
	if e.closed {
		return ErrSpawn
	}
	e.pending = append(e.pending, co)
	return nil
}

// runOnce advances every currently pending computation by exactly one
// step. Computations spawned while the pass runs are deliberately not
// polled until the next pass, so a newly spawned body never starts in the
// middle of the tick that created it.
func (e *mainExecutor[S]) runOnce(state *S) {
	running := e.pending
	e.pending = nil

	var kept []*Coroutine[struct{}, S]
	for _, co := range running {
		if _, done := co.Poll(state); !done && !co.Done() {
			kept = append(kept, co)
		}
	}
	e.pending = append(kept, e.pending...)
}

// shutdown cancels everything still pending so no body goroutine leaks.
func (e *mainExecutor[S]) shutdown() {
	e.closed = true
	for _, co := range e.pending {
		co.Cancel()
	}
	e.pending = nil
}
