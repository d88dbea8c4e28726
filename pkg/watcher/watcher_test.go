package watcher

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestCoalescerCollapsesBursts(t *testing.T) {
	c := NewCoalescer(50 * time.Millisecond)
	var calls atomic.Int32

	for i := 0; i < 10; i++ {
		c.Trigger(func() { calls.Add(1) })
	}

	time.Sleep(200 * time.Millisecond)
	if got := calls.Load(); got != 1 {
		t.Errorf("10 rapid triggers produced %d calls, want 1", got)
	}
}

func TestCoalescerRunsLatestCallback(t *testing.T) {
	c := NewCoalescer(50 * time.Millisecond)
	var got atomic.Int32

	c.Trigger(func() { got.Store(1) })
	c.Trigger(func() { got.Store(2) })

	time.Sleep(200 * time.Millisecond)
	if got.Load() != 2 {
		t.Errorf("ran callback %d, want the latest (2)", got.Load())
	}
}

func TestCoalescerStop(t *testing.T) {
	c := NewCoalescer(50 * time.Millisecond)
	var calls atomic.Int32

	c.Trigger(func() { calls.Add(1) })
	c.Stop()

	time.Sleep(200 * time.Millisecond)
	if calls.Load() != 0 {
		t.Errorf("stopped coalescer still fired %d times", calls.Load())
	}
}

func TestCoalescerSeparateBursts(t *testing.T) {
	c := NewCoalescer(30 * time.Millisecond)
	var calls atomic.Int32

	c.Trigger(func() { calls.Add(1) })
	time.Sleep(150 * time.Millisecond)
	c.Trigger(func() { calls.Add(1) })
	time.Sleep(150 * time.Millisecond)

	if got := calls.Load(); got != 2 {
		t.Errorf("two separated bursts produced %d calls, want 2", got)
	}
}

func TestFileWatcherSeesWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "portfolio.yaml")
	if err := os.WriteFile(path, []byte("title: A\n"), 0644); err != nil {
		t.Fatal(err)
	}

	changed := make(chan struct{}, 1)
	w, err := Watch(path, func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("title: B\n"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-changed:
	case <-time.After(3 * time.Second):
		t.Fatal("no change notification within 3s of a write")
	}
}

func TestFileWatcherIgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "portfolio.yaml")
	if err := os.WriteFile(path, []byte("title: A\n"), 0644); err != nil {
		t.Fatal(err)
	}

	var calls atomic.Int32
	w, err := Watch(path, func() { calls.Add(1) })
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	time.Sleep(500 * time.Millisecond)
	if calls.Load() != 0 {
		t.Errorf("sibling file write produced %d notifications", calls.Load())
	}
}
