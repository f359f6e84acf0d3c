package task

import "errors"

var (
	// ErrPoolCreation means the worker pool backing the pool executor
	// could not be created. It is fatal to [New]; nothing is retried.
	ErrPoolCreation = errors.New("task: worker pool creation failed")

	// ErrSpawn means the target executor refused a computation, e.g.
	// because it is shutting down. The computation is dropped.
	ErrSpawn = errors.New("task: executor rejected computation")

	// ErrContextClosed means an operation went through a handle whose
	// task context has been closed. Handles never keep a context alive;
	// using one afterwards is reported, not silently ignored.
	ErrContextClosed = errors.New("task: task context is closed")

	// ErrResultDropped means a pending result's producing side was torn
	// down before it could send, e.g. because the task context was
	// closed with callbacks still queued. Waiters observe this instead
	// of hanging.
	ErrResultDropped = errors.New("task: result dropped before delivery")
)
