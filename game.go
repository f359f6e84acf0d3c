package ggo

// A Handler defines a game: implement Update and Draw and hand it to
// [Run]. The optional extension interfaces below receive input events
// when the handler implements them.
type Handler interface {
	// Update advances the game's logic by one tick. By the time it
	// runs, every callback queued via the task subsystem before this
	// frame has already mutated the state it will see.
	Update(ctx *Context) error

	// Draw renders the current state.
	Draw(ctx *Context) error
}

// KeyHandler receives keyboard events.
type KeyHandler interface {
	KeyEvent(ctx *Context, e KeyEvent)
}

// MouseButtonHandler receives mouse button events.
type MouseButtonHandler interface {
	MouseButtonEvent(ctx *Context, e MouseButtonEvent)
}

// MouseMotionHandler receives mouse motion events.
type MouseMotionHandler interface {
	MouseMotionEvent(ctx *Context, e MouseMotionEvent)
}

// FocusHandler receives window focus changes.
type FocusHandler interface {
	FocusEvent(ctx *Context, gained bool)
}

// QuitHandler is consulted when a [QuitEvent] arrives. Returning false
// vetoes the quit (for an "unsaved changes" prompt, say); the default
// without this interface is to quit.
type QuitHandler interface {
	QuitRequested(ctx *Context) bool
}

// ShutdownHandler is notified once, after the loop has stopped.
type ShutdownHandler interface {
	Shutdown(ctx *Context)
}

// RunFrame executes exactly one logical update in the engine's fixed
// order: task pre-update tick, Update, task post-update tick, Draw, clock
// tick. Embedders replacing [Run] with their own loop must preserve this
// order and must keep calling both ticks, or all pending asynchronous
// work silently stalls.
func RunFrame(ctx *Context, h Handler) error {
	ctx.tasks.TickPreUpdate(ctx)
	if err := h.Update(ctx); err != nil {
		return err
	}
	ctx.tasks.TickPostUpdate()
	if err := h.Draw(ctx); err != nil {
		return err
	}
	ctx.clock.Tick()
	return nil
}

// Run drives the mainloop: drain and dispatch window events, run one
// frame via [RunFrame], pace to the target frame rate, until a quit event
// arrives or the handler returns an error. Handler errors abort the loop
// and are returned as-is.
func Run(ctx *Context, h Handler) error {
	for !ctx.quit {
		dispatchEvents(ctx, h)
		if ctx.quit {
			break
		}
		if err := RunFrame(ctx, h); err != nil {
			return err
		}
		if ctx.targetFPS > 0 {
			ctx.clock.SleepUntilNextFrame(ctx.targetFPS)
		}
	}
	if s, ok := h.(ShutdownHandler); ok {
		s.Shutdown(ctx)
	}
	return nil
}

func dispatchEvents(ctx *Context, h Handler) {
	if ctx.events == nil {
		return
	}
	for {
		e, ok := ctx.events.PollEvent()
		if !ok {
			return
		}
		switch e := e.(type) {
		case QuitEvent:
			if q, ok := h.(QuitHandler); ok && !q.QuitRequested(ctx) {
				continue
			}
			ctx.Quit()
		case KeyEvent:
			if kh, ok := h.(KeyHandler); ok {
				kh.KeyEvent(ctx, e)
			}
		case MouseButtonEvent:
			if mh, ok := h.(MouseButtonHandler); ok {
				mh.MouseButtonEvent(ctx, e)
			}
		case MouseMotionEvent:
			if mh, ok := h.(MouseMotionHandler); ok {
				mh.MouseMotionEvent(ctx, e)
			}
		case FocusEvent:
			if fh, ok := h.(FocusHandler); ok {
				fh.FocusEvent(ctx, e.Gained)
			}
		}
	}
}
