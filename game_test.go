package ggo

import (
	"errors"
	"testing"

	"github.com/ggez/ggo/task"
)

// scriptedEvents feeds a fixed queue of events to the loop.
type scriptedEvents struct {
	queue []Event
}

func (s *scriptedEvents) PollEvent() (Event, bool) {
	if len(s.queue) == 0 {
		return nil, false
	}
	e := s.queue[0]
	s.queue = s.queue[1:]
	return e, true
}

// recordingHandler logs the order of everything the loop invokes.
type recordingHandler struct {
	trace    []string
	maxTicks int
	updates  int

	failUpdate error
	vetoQuit   bool

	keys []KeyEvent
}

func (h *recordingHandler) Update(ctx *Context) error {
	h.trace = append(h.trace, "update")
	h.updates++
	if h.failUpdate != nil {
		return h.failUpdate
	}
	if h.maxTicks > 0 && h.updates >= h.maxTicks {
		ctx.Quit()
	}
	return nil
}

func (h *recordingHandler) Draw(*Context) error {
	h.trace = append(h.trace, "draw")
	return nil
}

func (h *recordingHandler) KeyEvent(_ *Context, e KeyEvent) {
	h.keys = append(h.keys, e)
}

func (h *recordingHandler) QuitRequested(*Context) bool {
	return !h.vetoQuit
}

func (h *recordingHandler) Shutdown(*Context) {
	h.trace = append(h.trace, "shutdown")
}

func newLoopContext(t *testing.T, opts ...ContextOption) *Context {
	t.Helper()
	opts = append(opts, WithTargetFPS(0)) // tests run unpaced
	ctx, err := NewContext(opts...)
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}
	t.Cleanup(func() { _ = ctx.Close() })
	return ctx
}

func TestRunFrameOrder(t *testing.T) {
	ctx := newLoopContext(t)
	h := &recordingHandler{}

	// A queued callback must be visible to Update of the same frame,
	// and a sleep requested before the frame must only count down after
	// Update ran.
	task.SyncWithMain[Context](ctx.Tasks().MainHandle(), func(*Context) struct{} {
		h.trace = append(h.trace, "callback")
		return struct{}{}
	})
	nap := task.SleepUpdates[Context](ctx.Tasks().Direct(ctx), 0)

	if err := RunFrame(ctx, h); err != nil {
		t.Fatalf("RunFrame: %v", err)
	}

	want := []string{"callback", "update", "draw"}
	if len(h.trace) != len(want) {
		t.Fatalf("trace = %v, want %v", h.trace, want)
	}
	for i, w := range want {
		if h.trace[i] != w {
			t.Fatalf("trace = %v, want %v", h.trace, want)
		}
	}
	if _, ok, _ := nap.TryGet(); !ok {
		t.Error("sleep(0) should resolve at the frame's post-update boundary")
	}
}

func TestRunStopsOnQuitEvent(t *testing.T) {
	src := &scriptedEvents{queue: []Event{QuitEvent{}}}
	ctx := newLoopContext(t, WithEventSource(src))
	h := &recordingHandler{}

	if err := Run(ctx, h); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if h.updates != 0 {
		t.Errorf("ran %d updates after an immediate quit, want 0", h.updates)
	}
	if len(h.trace) == 0 || h.trace[len(h.trace)-1] != "shutdown" {
		t.Errorf("shutdown not delivered; trace = %v", h.trace)
	}
}

func TestRunQuitCanBeVetoed(t *testing.T) {
	src := &scriptedEvents{queue: []Event{QuitEvent{}}}
	ctx := newLoopContext(t, WithEventSource(src))
	h := &recordingHandler{vetoQuit: true, maxTicks: 2}

	if err := Run(ctx, h); err != nil {
		t.Fatalf("Run: %v", err)
	}
	// The veto swallowed the quit; the loop ran until the handler quit
	// itself.
	if h.updates != 2 {
		t.Errorf("updates = %d, want 2", h.updates)
	}
}

func TestRunDispatchesInputEvents(t *testing.T) {
	src := &scriptedEvents{queue: []Event{
		KeyEvent{Key: "escape", Down: true},
		KeyEvent{Key: "escape", Down: false},
	}}
	ctx := newLoopContext(t, WithEventSource(src))
	h := &recordingHandler{maxTicks: 1}

	if err := Run(ctx, h); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(h.keys) != 2 || !h.keys[0].Down || h.keys[1].Down {
		t.Errorf("keys = %+v, want down then up", h.keys)
	}
}

func TestRunReturnsHandlerError(t *testing.T) {
	ctx := newLoopContext(t)
	boom := errors.New("update exploded")
	h := &recordingHandler{failUpdate: boom}

	if err := Run(ctx, h); !errors.Is(err, boom) {
		t.Fatalf("Run = %v, want handler error", err)
	}
}

// pollingHandler keeps the loop alive until a condition holds.
type pollingHandler struct {
	frames int
	done   func() bool
}

func (h *pollingHandler) Update(ctx *Context) error {
	h.frames++
	if h.done() || h.frames >= 10000 {
		ctx.Quit()
	}
	return nil
}

func (h *pollingHandler) Draw(*Context) error { return nil }

func TestRunDrivesBackgroundWorkToCompletion(t *testing.T) {
	ctx := newLoopContext(t)

	result := 0
	err := task.SpawnOnPool(ctx.Tasks(), func(ph *task.PoolHandle[Context]) {
		sum := 2 + 2
		res := task.SyncWithMain(ph, func(*Context) int {
			result = sum
			return sum
		})
		_, _ = res.Wait()
	})
	if err != nil {
		t.Fatalf("SpawnOnPool: %v", err)
	}

	h := &pollingHandler{done: func() bool { return result == 4 }}
	if err := Run(ctx, h); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result != 4 {
		t.Errorf("background result = %d, want 4 after the loop ticked", result)
	}
}
