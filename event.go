package ggo

// Event is a window or input event delivered by an [EventSource]. The
// concrete types below cover what the frame loop dispatches; windowing
// backends translate their native events into them.
type Event interface {
	isEvent()
}

// QuitEvent asks the loop to stop, usually a closed window.
type QuitEvent struct{}

// KeyEvent is a key press or release. Key is the backend's name for the
// key ("escape", "w", ...).
type KeyEvent struct {
	Key  string
	Down bool
}

// MouseButtonEvent is a mouse button press or release at window
// coordinates X, Y.
type MouseButtonEvent struct {
	X, Y   int
	Button int
	Down   bool
}

// MouseMotionEvent reports the pointer moving to X, Y.
type MouseMotionEvent struct {
	X, Y int
}

// FocusEvent reports the window gaining or losing input focus.
type FocusEvent struct {
	Gained bool
}

func (QuitEvent) isEvent()        {}
func (KeyEvent) isEvent()         {}
func (MouseButtonEvent) isEvent() {}
func (MouseMotionEvent) isEvent() {}
func (FocusEvent) isEvent()       {}
