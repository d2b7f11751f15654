package memory

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncerCoalesces(t *testing.T) {
	d := &debouncer{window: 20 * time.Millisecond, pending: make(map[string]*time.Timer)}
	defer d.stop()

	var fired atomic.Int32
	for i := 0; i < 5; i++ {
		d.add("same-key", func() { fired.Add(1) })
	}

	time.Sleep(100 * time.Millisecond)
	if got := fired.Load(); got != 1 {
		t.Fatalf("debounced callback fired %d times, want 1", got)
	}
}

func TestDebouncerKeysAreIndependent(t *testing.T) {
	d := &debouncer{window: 10 * time.Millisecond, pending: make(map[string]*time.Timer)}
	defer d.stop()

	var fired atomic.Int32
	d.add("a", func() { fired.Add(1) })
	d.add("b", func() { fired.Add(1) })

	time.Sleep(80 * time.Millisecond)
	if got := fired.Load(); got != 2 {
		t.Fatalf("callbacks fired %d times, want 2", got)
	}
}

func TestDebouncerStopDropsPending(t *testing.T) {
	d := &debouncer{window: 20 * time.Millisecond, pending: make(map[string]*time.Timer)}

	var fired atomic.Int32
	d.add("key", func() { fired.Add(1) })
	d.stop()

	time.Sleep(60 * time.Millisecond)
	if got := fired.Load(); got != 0 {
		t.Fatalf("stopped debouncer still fired %d times", got)
	}
}
