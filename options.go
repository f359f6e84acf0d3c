package ggo

import "github.com/ggez/ggo/conf"

// defaultTargetFPS is the frame rate [Run] paces itself to unless
// overridden with [WithTargetFPS].
const defaultTargetFPS = 60

// ContextOption configures [NewContext].
type ContextOption func(*contextOptions)

type contextOptions struct {
	conf        *conf.Conf
	fs          Filesystem
	events      EventSource
	renderer    Renderer
	audio       AudioPlayer
	taskWorkers int
	targetFPS   int
}

// WithConf uses c instead of loading conf.toml from the filesystem.
func WithConf(c conf.Conf) ContextOption {
	return func(o *contextOptions) { o.conf = &c }
}

// WithFilesystem plugs in the virtual-filesystem collaborator.
func WithFilesystem(fs Filesystem) ContextOption {
	return func(o *contextOptions) { o.fs = fs }
}

// WithEventSource plugs in the windowing collaborator. Without one, [Run]
// loops until the handler (or something it scheduled) calls
// [Context.Quit].
func WithEventSource(src EventSource) ContextOption {
	return func(o *contextOptions) { o.events = src }
}

// WithRenderer plugs in the rendering collaborator.
func WithRenderer(r Renderer) ContextOption {
	return func(o *contextOptions) { o.renderer = r }
}

// WithAudioPlayer plugs in the audio collaborator.
func WithAudioPlayer(a AudioPlayer) ContextOption {
	return func(o *contextOptions) { o.audio = a }
}

// WithTaskWorkers sets the worker count of the task subsystem's pool
// executor. Zero, the default, means GOMAXPROCS.
func WithTaskWorkers(n int) ContextOption {
	return func(o *contextOptions) { o.taskWorkers = n }
}

// WithTargetFPS sets the frame rate [Run] paces itself to. Zero or
// negative disables pacing and runs full-bore.
func WithTargetFPS(fps int) ContextOption {
	return func(o *contextOptions) { o.targetFPS = fps }
}
