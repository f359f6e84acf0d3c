// Package ggo is a lightweight core for real-time desktop games in Go.
//
// # Overview
//
// ggo provides the part of a game framework that every game needs and no
// game wants to write twice: a [Context] holding engine-wide state, a
// fixed-order frame loop ([Run], [RunFrame]), frame timing (package
// timer), TOML game configuration (package conf), an asset store with
// streaming loads (package resource), and at its heart an
// asynchronous task subsystem (package task) that runs background logic
// without ever stalling the update/draw cycle.
//
// # Quick start
//
//	type game struct{}
//
//	func (g *game) Update(ctx *ggo.Context) error {
//		// Game logic. Deferred callbacks queued by background work
//		// have already run for this frame.
//		return nil
//	}
//
//	func (g *game) Draw(ctx *ggo.Context) error { return nil }
//
//	func main() {
//		ctx, err := ggo.NewContext()
//		if err != nil {
//			log.Fatal(err)
//		}
//		defer ctx.Close()
//		if err := ggo.Run(ctx, &game{}); err != nil {
//			log.Fatal(err)
//		}
//	}
//
// # Frame order
//
// Every logical update runs in a fixed order: the task subsystem's
// pre-update tick (deferred callbacks, one cooperative executor pass),
// the handler's Update, the post-update tick (frame countdowns), the
// handler's Draw, then a clock tick. Background work only ever observes
// or mutates game state at these well-defined points.
//
// # Collaborators
//
// Windowing, GPU rendering, audio and the virtual filesystem are
// deliberately outside this module. They plug in through the small
// [EventSource], [Renderer], [AudioPlayer] and [Filesystem] interfaces.
package ggo

// Version is the current version of the library.
const Version = "0.1.0"
