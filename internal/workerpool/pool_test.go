package workerpool

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestNewDefaultsToGOMAXPROCS(t *testing.T) {
	p, err := New(0)
	if err != nil {
		t.Fatalf("New(0): %v", err)
	}
	defer p.Close()
	if p.Workers() < 1 {
		t.Errorf("Workers() = %d, want >= 1", p.Workers())
	}
}

func TestNewRejectsNegativeCount(t *testing.T) {
	if _, err := New(-3); err == nil {
		t.Fatal("New(-3) succeeded, want error")
	}
}

func TestSubmitRunsWork(t *testing.T) {
	p, err := New(4)
	if err != nil {
		t.Fatal(err)
	}
	defer p.Close()

	const n = 100
	var ran atomic.Int32
	var wg sync.WaitGroup
	wg.Add(n)
	for _i := 0; _i < n; _i++ {
		if err := p.Submit(func() {
			ran.Add(1)
			wg.Done()
		}); err != nil {
			t.Fatalf("Submit: %v", err)
		}
	}

	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("work did not complete")
	}
	if ran.Load() != n {
		t.Errorf("ran %d items, want %d", ran.Load(), n)
	}
}

func TestSubmitNilIsNoop(t *testing.T) {
	p, err := New(1)
	if err != nil {
		t.Fatal(err)
	}
	defer p.Close()
	if err := p.Submit(nil); err != nil {
		t.Errorf("Submit(nil) = %v, want nil", err)
	}
}

func TestCloseDrainsQueuedWork(t *testing.T) {
	p, err := New(1)
	if err != nil {
		t.Fatal(err)
	}

	var ran atomic.Int32
	block := make(chan struct{})
	_ = p.Submit(func() { <-block; ran.Add(1) })
	for _i := 0; _i < 4; _i++ {
		_ = p.Submit(func() { ran.Add(1) })
	}
	close(block)

	p.Close()
	if got := ran.Load(); got != 5 {
		t.Errorf("ran %d items across Close, want all 5", got)
	}
	if p.Running() {
		t.Error("pool still reports running after Close")
	}
}

func TestSubmitAfterClose(t *testing.T) {
	p, err := New(2)
	if err != nil {
		t.Fatal(err)
	}
	p.Close()
	p.Close() // idempotent

	if err := p.Submit(func() {}); !errors.Is(err, ErrClosed) {
		t.Errorf("Submit after Close = %v, want ErrClosed", err)
	}
}

func TestWorkersStealFromBusyQueues(t *testing.T) {
	p, err := New(4)
	if err != nil {
		t.Fatal(err)
	}
	defer p.Close()

	// One long task plus a burst of short ones; the short ones must not
	// wait for the long one even if queued behind it.
	longDone := make(chan struct{})
	release := make(chan struct{})
	_ = p.Submit(func() { <-release; close(longDone) })

	var short atomic.Int32
	for _i := 0; _i < 32; _i++ {
		_ = p.Submit(func() { short.Add(1) })
	}

	deadline := time.After(5 * time.Second)
	for short.Load() != 32 {
		select {
		case <-deadline:
			t.Fatalf("only %d short tasks ran while one worker was busy", short.Load())
		default:
			time.Sleep(time.Millisecond)
		}
	}
	close(release)
	<-longDone
}

func BenchmarkSubmit(b *testing.B) {
	p, err := New(0)
	if err != nil {
		b.Fatal(err)
	}
	defer p.Close()

	var wg sync.WaitGroup
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		wg.Add(1)
		_ = p.Submit(wg.Done)
	}
	wg.Wait()
}
