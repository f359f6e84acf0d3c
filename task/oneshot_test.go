package task

import (
	"errors"
	"testing"
)

func TestOneshotPendingThenSend(t *testing.T) {
	res, tx := newOneshot[int]()

	if _, ok, _ := res.TryGet(); ok {
		t.Fatal("result resolved before anything was sent")
	}

	tx.send(42)

	v, ok, err := res.TryGet()
	if !ok || err != nil {
		t.Fatalf("TryGet = (%v, %v, %v), want resolved 42", v, ok, err)
	}
	if v != 42 {
		t.Errorf("value = %d, want 42", v)
	}

	// Resolution is sticky.
	for _i := 0; _i < 3; _i++ {
		v, ok, err = res.TryGet()
		if !ok || err != nil || v != 42 {
			t.Fatalf("repeated TryGet = (%v, %v, %v), want stable 42", v, ok, err)
		}
	}
}

func TestOneshotFirstDeliveryWins(t *testing.T) {
	res, tx := newOneshot[string]()
	tx.send("first")
	tx.send("second")
	tx.fail(ErrResultDropped)

	v, _, err := res.TryGet()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != "first" {
		t.Errorf("value = %q, want %q", v, "first")
	}
}

func TestOneshotDropped(t *testing.T) {
	res, tx := newOneshot[int]()
	tx.fail(ErrResultDropped)

	_, ok, err := res.TryGet()
	if !ok {
		t.Fatal("failed result should report as resolved")
	}
	if !errors.Is(err, ErrResultDropped) {
		t.Errorf("err = %v, want ErrResultDropped", err)
	}

	if _, err := res.Wait(); !errors.Is(err, ErrResultDropped) {
		t.Errorf("Wait err = %v, want ErrResultDropped", err)
	}
}

func TestOneshotWaitBlocksUntilSend(t *testing.T) {
	res, tx := newOneshot[int]()

	done := make(chan int)
	go func() {
		v, _ := res.Wait()
		done <- v
	}()
	tx.send(7)

	if v := <-done; v != 7 {
		t.Errorf("Wait = %d, want 7", v)
	}
}
