// Package task is the asynchronous subsystem of the ggo frame loop: it
// runs non-blocking background logic such as multi-step asset loads and deferred
// mutations produced by worker goroutines, without stalling the per-frame
// update/draw cycle and without hand-written state machines.
//
// # Two executors
//
// A [Context] owns two executors. The main executor is single-threaded and
// cooperative: computations spawned with [SpawnOnMain] advance exactly one
// step per frame, need no synchronization, and get exclusive access to the
// application state, at the cost of their step time counting against the
// frame. The pool executor runs computations from [SpawnOnPool] on worker
// goroutines; they may block and run truly concurrently, but can only
// reach the application state by scheduling a callback back onto the main
// goroutine with [SyncWithMain].
//
// # Frame pacing
//
// The embedding loop drives everything by calling [Context.TickPreUpdate]
// before its update logic and [Context.TickPostUpdate] after it, once per
// logical update each. The pre-update tick drains the mailboxes of
// deferred callbacks and steps the main executor; the post-update tick
// counts down [SleepUpdates] requests. There are no wall-clock timers and
// no background wake-ups: if the hooks stop being called, pending work
// simply stops progressing.
//
// # Coroutines
//
// [Coroutine] (and its asset-flavored wrapper [Loading]) is the underlying
// poll-once primitive and can also be driven by hand, outside any
// executor, for code that wants "do a chunk of work, yield, resume next
// frame" with nothing else attached.
//
// # Lifetime
//
// The Context is built once, passed around explicitly, and closed
// deterministically with [Context.Close]. Handles obtained from it are
// weak: they never extend its life, and any use after Close reports
// [ErrContextClosed] while pending results fail with [ErrResultDropped]
// rather than hanging.
package task
