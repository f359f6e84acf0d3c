package ggo

import (
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/ggez/ggo/conf"
	"github.com/ggez/ggo/task"
	"github.com/ggez/ggo/timer"
)

// confPath is where NewContext looks for a game configuration, relative
// to the configured filesystem's root.
const confPath = "conf.toml"

// Filesystem is the virtual-filesystem collaborator: an overlay of the
// game's resource directories and archives. ggo only consumes it; the
// actual overlay lives outside this module.
type Filesystem interface {
	// Open opens a resource for reading. It returns an error
	// satisfying errors.Is(err, fs.ErrNotExist) for missing paths.
	Open(path string) (io.ReadCloser, error)

	// Exists reports whether a resource is present.
	Exists(path string) bool
}

// EventSource is the windowing collaborator: it surfaces window and input
// events to the frame loop. PollEvent returns false when no events are
// pending this frame.
type EventSource interface {
	PollEvent() (Event, bool)
}

// Renderer is the GPU collaborator. The loop only needs to clear and
// present; everything else is between the game and its rendering backend.
type Renderer interface {
	Clear()
	Present() error
}

// AudioPlayer is the audio playback collaborator.
type AudioPlayer interface {
	Play(name string) error
	Stop()
}

// A Context holds global engine state: configuration, the task subsystem,
// the frame clock, and whichever collaborators the game plugged in. It is
// not thread-safe; it belongs to the goroutine running the frame loop,
// and background work reaches it only through the task subsystem.
//
// Create one with [NewContext], pass it explicitly (never a global), and
// Close it when the game ends.
type Context struct {
	conf  conf.Conf
	tasks *task.Context[Context]
	clock *timer.Clock

	fs       Filesystem
	events   EventSource
	renderer Renderer
	audio    AudioPlayer

	targetFPS int
	quit      bool
	closed    bool
}

// NewContext builds a Context. When a filesystem is configured and holds
// a conf.toml, settings are loaded from it; an explicit [WithConf]
// overrides the file, and everything falls back to [conf.Default].
func NewContext(opts ...ContextOption) (*Context, error) {
	var o contextOptions
	o.targetFPS = defaultTargetFPS
	for _, opt := range opts {
		opt(&o)
	}

	c := conf.Default()
	switch {
	case o.conf != nil:
		c = *o.conf
	case o.fs != nil && o.fs.Exists(confPath):
		f, err := o.fs.Open(confPath)
		if err != nil {
			return nil, fmt.Errorf("%w: open %s: %v", ErrConfig, confPath, err)
		}
		c, err = conf.Decode(f)
		_ = f.Close()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConfig, err)
		}
	}

	tasks, err := task.New[Context](task.WithWorkers(o.taskWorkers))
	if err != nil {
		return nil, err
	}

	ctx := &Context{
		conf:      c,
		tasks:     tasks,
		clock:     timer.NewClock(),
		fs:        o.fs,
		events:    o.events,
		renderer:  o.renderer,
		audio:     o.audio,
		targetFPS: o.targetFPS,
	}
	Logger().Info("ggo: context created",
		"title", c.WindowTitle, "workers", tasks.Workers())
	return ctx, nil
}

// Conf returns the loaded game configuration.
func (c *Context) Conf() conf.Conf { return c.conf }

// Tasks returns the asynchronous task subsystem.
func (c *Context) Tasks() *task.Context[Context] { return c.tasks }

// Clock returns the frame clock.
func (c *Context) Clock() *timer.Clock { return c.clock }

// FS returns the configured filesystem, or nil.
func (c *Context) FS() Filesystem { return c.fs }

// Renderer returns the configured renderer, or nil.
func (c *Context) Renderer() Renderer { return c.renderer }

// Audio returns the configured audio player, or nil.
func (c *Context) Audio() AudioPlayer { return c.audio }

// ReadResource reads a whole resource from the context's filesystem.
func (c *Context) ReadResource(path string) ([]byte, error) {
	f, err := c.OpenResource(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("ggo: read resource %s: %w", path, err)
	}
	return data, nil
}

// OpenResource opens a resource from the context's filesystem, mapping a
// missing file to [ErrResourceNotFound].
func (c *Context) OpenResource(path string) (io.ReadCloser, error) {
	if c.fs == nil {
		return nil, ErrNoFilesystem
	}
	f, err := c.fs.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrResourceNotFound, path)
		}
		return nil, fmt.Errorf("ggo: open resource %s: %w", path, err)
	}
	return f, nil
}

// Quit asks the frame loop to stop after the current frame.
func (c *Context) Quit() { c.quit = true }

// Quitting reports whether [Context.Quit] has been called.
func (c *Context) Quitting() bool { return c.quit }

// Close shuts the engine down: the task subsystem is closed (failing any
// still-pending asynchronous results) and the audio player, if any, is
// stopped. Close is idempotent.
func (c *Context) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	if c.audio != nil {
		c.audio.Stop()
	}
	err := c.tasks.Close()
	Logger().Info("ggo: context closed")
	return err
}
