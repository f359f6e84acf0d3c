// Command ggodemo exercises the ggo async subsystem headlessly: it runs a
// fixed number of logical updates while background computations stream an
// asset, sync results back onto the main goroutine and sleep for a few
// frames.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/ggez/ggo"
	"github.com/ggez/ggo/resource"
	"github.com/ggez/ggo/task"
)

func main() {
	var (
		ticks   = flag.Int("ticks", 120, "logical updates to run")
		workers = flag.Int("workers", 0, "pool workers (0 = GOMAXPROCS)")
		verbose = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	ggo.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	ctx, err := ggo.NewContext(
		ggo.WithTaskWorkers(*workers),
		ggo.WithTargetFPS(0), // run the demo full-bore
	)
	if err != nil {
		log.Fatal(err)
	}
	defer ctx.Close()

	g := &demo{maxTicks: *ticks}
	if err := ggo.Run(ctx, g); err != nil {
		log.Fatal(err)
	}

	fmt.Printf("ran %d ticks: pool result %d, napped at tick %d, loaded %d bytes\n",
		g.tick, g.poolResult, g.nappedAt, g.loadedBytes)
}

type demo struct {
	maxTicks int
	tick     int

	started    bool
	poolResult int
	nappedAt   int

	loading     *task.Loading[[]byte, ggo.Context]
	loadedBytes int
}

func (g *demo) Update(ctx *ggo.Context) error {
	if !g.started {
		g.started = true
		g.start(ctx)
	}

	if g.loading != nil {
		if data, err := g.loading.Poll(ctx); err != nil {
			return err
		} else if data != nil {
			g.loadedBytes = len(*data)
			g.loading = nil
		}
	}

	g.tick++
	if g.tick >= g.maxTicks {
		ctx.Quit()
	}
	return nil
}

func (g *demo) Draw(*ggo.Context) error { return nil }

func (g *demo) start(ctx *ggo.Context) {
	tasks := ctx.Tasks()

	// Background arithmetic on a worker, result synced back into this
	// struct during a later pre-update tick.
	err := task.SpawnOnPool(tasks, func(h *task.PoolHandle[ggo.Context]) {
		sum := 2 + 2
		res := task.SyncWithMain(h, func(*ggo.Context) int {
			g.poolResult = sum
			return sum
		})
		if _, err := res.Wait(); err != nil {
			ggo.Logger().Warn("ggodemo: sync failed", "err", err)
		}
	})
	if err != nil {
		ggo.Logger().Warn("ggodemo: spawn failed", "err", err)
	}

	// A cooperative main-thread computation that naps for 30 frames.
	_ = task.SpawnOnMain(tasks, func(y *task.Yield[ggo.Context]) {
		nap := task.SleepUpdates[ggo.Context](tasks.MainHandle(), 30)
		if _, err := task.Await(y, nap); err != nil {
			return
		}
		g.nappedAt = g.tick
	})

	// Stream an in-memory "asset" one chunk per frame.
	blob := bytes.Repeat([]byte{0xA5}, 3*resource.LoadChunkSize)
	g.loading = resource.LoadBytesAsync[ggo.Context](func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(blob)), nil
	})
}
