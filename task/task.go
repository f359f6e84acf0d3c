package task

import (
	"errors"
	"sync"

	"github.com/ggez/ggo/internal/workerpool"
)

// entry is one queued sync-with-main callback. run executes it with
// exclusive application-state access; abort fails the waiting result
// instead, used when the context is torn down with the entry still queued.
type entry[S any] struct {
	run   func(*S)
	abort func()
}

// sharedMailbox is the cross-thread mailbox. Its lock only ever guards
// queue manipulation; callbacks run outside it, after TickPreUpdate swaps
// the queued entries out.
type sharedMailbox[S any] struct {
	mu      sync.Mutex
	closed  bool
	entries []entry[S]
}

func (m *sharedMailbox[S]) push(e entry[S]) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrContextClosed
	}
	m.entries = append(m.entries, e)
	return nil
}

func (m *sharedMailbox[S]) drainInto(dst []entry[S]) []entry[S] {
	m.mu.Lock()
	defer m.mu.Unlock()
	dst = append(dst, m.entries...)
	clear(m.entries)
	m.entries = m.entries[:0]
	return dst
}

// shutdown marks the mailbox closed and hands back whatever was still
// queued, atomically, so nothing can slip in after the caller aborts it.
func (m *sharedMailbox[S]) shutdown() []entry[S] {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	left := m.entries
	m.entries = nil
	return left
}

// countdown is one "resolve after N logical updates" request. remaining
// is decremented once per post-update tick; notify fires exactly once,
// when it reaches zero.
type countdown struct {
	remaining int
	notify    *sender[struct{}]
}

// tickCountdowns performs one post-update pass over a countdown list:
// saturating decrement, fire at zero, drop fired entries. Linear in the
// number of active sleepers, O(1) insert; fine for the sleeper counts a
// frame loop sees. Entries expiring on the same tick fire in no
// particular order relative to each other.
func tickCountdowns(entries []*countdown) []*countdown {
	kept := entries[:0]
	for _, c := range entries {
		if c.remaining > 0 {
			c.remaining--
		}
		if c.remaining <= 0 {
			c.notify.send(struct{}{})
		} else {
			kept = append(kept, c)
		}
	}
	for i := len(kept); i < len(entries); i++ {
		entries[i] = nil
	}
	return kept
}

type sharedCountdowns struct {
	mu      sync.Mutex
	closed  bool
	entries []*countdown
}

func (l *sharedCountdowns) add(c *countdown) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return ErrContextClosed
	}
	l.entries = append(l.entries, c)
	return nil
}

func (l *sharedCountdowns) tick() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = tickCountdowns(l.entries)
}

func (l *sharedCountdowns) shutdown() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
	for _, c := range l.entries {
		c.notify.fail(ErrResultDropped)
	}
	l.entries = nil
}

// Option configures [New].
type Option func(*config)

type config struct {
	workers int
}

// WithWorkers sets the size of the worker pool backing the pool executor.
// Zero (the default) means GOMAXPROCS; a negative count makes [New] fail.
func WithWorkers(n int) Option {
	return func(c *config) { c.workers = n }
}

// Context owns the whole asynchronous subsystem of an application: the
// cooperative main-thread executor, the worker pool, the two mailboxes of
// deferred callbacks and the two countdown registries. It is generic over
// S, the application-state type that mailbox callbacks and main-thread
// computations get exclusive access to.
//
// One goroutine, the one running the frame loop, owns the Context. That
// goroutine constructs it, calls the tick hooks, uses [MainHandle]s and
// eventually calls Close. The unsynchronized mailbox and registry rely on
// this affinity instead of locks. [PoolHandle]s are the only pieces safe
// to move to worker goroutines.
//
// Build one Context per application and pass it around explicitly; tests
// can then run several side by side without interference.
type Context[S any] struct {
	main *mainExecutor[S]
	pool *workerpool.Pool

	// Mailboxes of deferred callbacks. mailMain is touched only from
	// the owning goroutine; mailShared takes the cross-thread traffic.
	mailMain   []entry[S]
	mailShared sharedMailbox[S]

	// Countdown registries, split the same way.
	sleepMain   []*countdown
	sleepShared sharedCountdowns

	// accum is the reusable drain buffer. TickPreUpdate swaps it out so
	// no queue (or lock) is held while callbacks run.
	accum []entry[S]

	closed bool
}

// New builds a Context. The only failure mode is the worker pool refusing
// its configuration, reported as [ErrPoolCreation].
func New[S any](opts ...Option) (*Context[S], error) {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	pool, err := workerpool.New(cfg.workers)
	if err != nil {
		return nil, errors.Join(ErrPoolCreation, err)
	}
	return &Context[S]{
		main: &mainExecutor[S]{},
		pool: pool,
	}, nil
}

// Close shuts the subsystem down deterministically: no new work is
// accepted, every queued callback and sleeper fails its waiter with
// [ErrResultDropped], queued pool computations are drained, and pending
// main-thread computations are canceled. Outstanding handles stay valid
// to call but report [ErrContextClosed]. Close is idempotent.
func (tc *Context[S]) Close() error {
	if tc.closed {
		return nil
	}
	tc.closed = true

	// Fail cross-thread waiters before stopping the pool: a worker
	// blocked in Result.Wait must observe the failure, or the pool
	// shutdown below would never finish draining.
	for _, e := range tc.mailShared.shutdown() {
		e.abort()
	}
	tc.sleepShared.shutdown()

	for _, e := range tc.mailMain {
		e.abort()
	}
	tc.mailMain = nil
	for _, c := range tc.sleepMain {
		c.notify.fail(ErrResultDropped)
	}
	tc.sleepMain = nil

	tc.pool.Close()
	tc.main.shutdown()
	return nil
}

// MainHandle returns a handle for code running on the owning goroutine,
// typically captured by main-thread computations so they can keep
// scheduling work after their spawner returned. The handle does not keep
// the Context alive in any scheduling sense: after Close every operation
// on it reports [ErrContextClosed].
func (tc *Context[S]) MainHandle() *MainHandle[S] {
	return &MainHandle[S]{tc: tc}
}

// PoolHandle returns a handle safe to hand to worker goroutines. All its
// operations synchronize internally; after Close they report
// [ErrContextClosed].
func (tc *Context[S]) PoolHandle() *PoolHandle[S] {
	return &PoolHandle[S]{tc: tc}
}

// Direct returns the dispatch target for code that already runs on the
// owning goroutine with direct access to the application state, the case
// where [SyncWithMain] needs no queuing at all.
func (tc *Context[S]) Direct(state *S) DirectTarget[S] {
	return DirectTarget[S]{tc: tc, state: state}
}

// TickPreUpdate runs once per logical update, before the update callback.
// It drains both mailboxes into the swapped-out accumulation buffer (the
// unsynchronized one first), runs every collected callback in enqueue
// order with exclusive state access, then advances the main executor by
// one non-blocking pass. Callbacks enqueued while the drain runs are
// deferred to the next tick.
func (tc *Context[S]) TickPreUpdate(state *S) {
	if tc.closed {
		return
	}

	accum := tc.accum
	tc.accum = nil

	accum = append(accum, tc.mailMain...)
	clear(tc.mailMain)
	tc.mailMain = tc.mailMain[:0]
	accum = tc.mailShared.drainInto(accum)

	for _, e := range accum {
		e.run(state)
	}

	clear(accum)
	tc.accum = accum[:0]

	tc.main.runOnce(state)
}

// TickPostUpdate runs once per logical update, after the update callback.
// It ticks both countdown registries, the unsynchronized one first.
func (tc *Context[S]) TickPostUpdate() {
	if tc.closed {
		return
	}
	tc.sleepMain = tickCountdowns(tc.sleepMain)
	tc.sleepShared.tick()
}

// Workers returns the size of the worker pool, mostly for logging.
func (tc *Context[S]) Workers() int { return tc.pool.Workers() }

// Target identifies where the calling code runs, so [SyncWithMain] and
// [SleepUpdates] can pick the matching mailbox and registry. The three
// implementations are [DirectTarget] (owning goroutine, direct state
// access), [*MainHandle] (inside a main-thread computation) and
// [*PoolHandle] (worker goroutine).
type Target[S any] interface {
	enqueue(e entry[S]) error
	addSleeper(c *countdown) error
}

// DirectTarget is the [Target] for the owning goroutine itself.
type DirectTarget[S any] struct {
	tc    *Context[S]
	state *S
}

// enqueue for the direct case runs the callback synchronously: the caller
// already holds the state, so there is nothing to defer.
func (d DirectTarget[S]) enqueue(e entry[S]) error {
	if d.tc.closed {
		return ErrContextClosed
	}
	e.run(d.state)
	return nil
}

func (d DirectTarget[S]) addSleeper(c *countdown) error {
	if d.tc.closed {
		return ErrContextClosed
	}
	d.tc.sleepMain = append(d.tc.sleepMain, c)
	return nil
}

// MainHandle is the handle used from within main-thread computations:
// same goroutine as the Context, but no direct state access. Not safe to
// move to another goroutine.
type MainHandle[S any] struct {
	tc *Context[S]
}

// Spawn registers a new computation with the main executor. It starts
// progressing on the next TickPreUpdate.
func (h *MainHandle[S]) Spawn(body func(*Yield[S])) error {
	return SpawnOnMain(h.tc, body)
}

// enqueue boxes the callback onto the unsynchronized mailbox. It is never
// invoked inline even though the caller is on the right goroutine: queued
// callbacks must run in enqueue order, and the caller may be holding a
// borrowed view of the state already.
func (h *MainHandle[S]) enqueue(e entry[S]) error {
	if h.tc.closed {
		return ErrContextClosed
	}
	h.tc.mailMain = append(h.tc.mailMain, e)
	return nil
}

func (h *MainHandle[S]) addSleeper(c *countdown) error {
	if h.tc.closed {
		return ErrContextClosed
	}
	h.tc.sleepMain = append(h.tc.sleepMain, c)
	return nil
}

// PoolHandle is the handle used from worker goroutines. All operations go
// through the synchronized mailbox and registry; the handle is safe for
// concurrent use.
type PoolHandle[S any] struct {
	tc *Context[S]
}

// Spawn submits another computation to the worker pool.
func (h *PoolHandle[S]) Spawn(body func(*PoolHandle[S])) error {
	return SpawnOnPool(h.tc, body)
}

func (h *PoolHandle[S]) enqueue(e entry[S]) error {
	return h.tc.mailShared.push(e)
}

func (h *PoolHandle[S]) addSleeper(c *countdown) error {
	return h.tc.sleepShared.add(c)
}

// SpawnOnMain registers a computation with the cooperative main-thread
// executor. The body needs no synchronization: it only ever runs on the
// owning goroutine, one step per tick, starting with the next
// TickPreUpdate. The trade-off is that its per-step work counts against
// the frame, so keep steps short and yield often.
func SpawnOnMain[S any](tc *Context[S], body func(*Yield[S])) error {
	if tc.closed {
		return errors.Join(ErrSpawn, ErrContextClosed)
	}
	co := NewCoroutine(func(y *Yield[S]) struct{} {
		body(y)
		return struct{}{}
	})
	if err := tc.main.spawn(co); err != nil {
		co.Cancel()
		return err
	}
	return nil
}

// SpawnOnPool submits a computation to the worker pool. A free worker
// starts it immediately and runs it to completion; it may block, and it
// must be safe to run off the main goroutine. To touch application state
// it goes through [SyncWithMain] with the handle it receives.
func SpawnOnPool[S any](tc *Context[S], body func(*PoolHandle[S])) error {
	h := tc.PoolHandle()
	if err := tc.pool.Submit(func() { body(h) }); err != nil {
		return errors.Join(ErrSpawn, err)
	}
	return nil
}

// SyncWithMain schedules fn to run with exclusive access to the
// application state and returns the result of that call as a [Result].
//
// From a [DirectTarget] the callback runs synchronously and the result
// comes back already resolved. From a [MainHandle] or [PoolHandle] the
// callback is queued on the matching mailbox and runs during a later
// TickPreUpdate, in FIFO order with everything queued before it; the
// Result resolves when it does. If the context is closed, before the
// call or while the callback is still queued, the Result fails with
// [ErrContextClosed] or [ErrResultDropped] instead of hanging.
func SyncWithMain[S, T any](to Target[S], fn func(*S) T) *Result[T] {
	res, tx := newOneshot[T]()
	err := to.enqueue(entry[S]{
		run:   func(s *S) { tx.send(fn(s)) },
		abort: func() { tx.fail(ErrResultDropped) },
	})
	if err != nil {
		tx.fail(err)
	}
	return res
}

// SleepUpdates returns a Result that resolves after updates further
// logical update ticks, counted at the post-update boundary. Zero still
// waits for the next boundary: the result never resolves inside the tick
// that created it. The countdown is frame-paced, not wall-clock-paced; if
// the embedding loop stops ticking, it simply never fires.
func SleepUpdates[S any](to Target[S], updates int) *Result[struct{}] {
	res, tx := newOneshot[struct{}]()
	c := &countdown{remaining: updates, notify: tx}
	if err := to.addSleeper(c); err != nil {
		tx.fail(err)
	}
	return res
}
