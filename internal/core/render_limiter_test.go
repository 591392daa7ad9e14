package core

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestRenderLimiter_AcquireRelease(t *testing.T) {
	l := NewRenderLimiter(2, time.Second)
	ctx := context.Background()

	for i := range 2 {
		if err := l.Acquire(ctx); err != nil {
			t.Fatalf("Acquire %d: %v", i, err)
		}
	}
	st := l.Status()
	if st.Active != 2 || st.Available != 0 || st.MaxConcurrent != 2 {
		t.Errorf("Status() = %+v", st)
	}

	l.Release()
	l.Release()
	if got := l.ActiveCount(); got != 0 {
		t.Errorf("ActiveCount() = %d after releasing all", got)
	}
}

func TestRenderLimiter_Timeout(t *testing.T) {
	l := NewRenderLimiter(1, 20*time.Millisecond)
	if err := l.Acquire(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer l.Release()

	start := time.Now()
	err := l.Acquire(context.Background())
	if !errors.Is(err, ErrTooManyExports) {
		t.Fatalf("Acquire() error = %v, want ErrTooManyExports", err)
	}
	if time.Since(start) < 20*time.Millisecond {
		t.Error("Acquire gave up before maxWait")
	}
}

func TestRenderLimiter_ContextCancelled(t *testing.T) {
	l := NewRenderLimiter(1, time.Minute)
	if err := l.Acquire(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer l.Release()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := l.Acquire(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Acquire() error = %v, want context.Canceled", err)
	}
}

func TestRenderLimiter_WaiterGetsReleasedSlot(t *testing.T) {
	l := NewRenderLimiter(1, time.Second)
	if err := l.Acquire(context.Background()); err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	wg.Add(1)
	var err error
	go func() {
		defer wg.Done()
		err = l.Acquire(context.Background())
	}()

	time.Sleep(10 * time.Millisecond)
	l.Release()
	wg.Wait()

	if err != nil {
		t.Fatalf("waiting Acquire() error = %v", err)
	}
	l.Release()
}

func TestRenderLimiter_WaitForDrain(t *testing.T) {
	l := NewRenderLimiter(2, time.Second)
	if err := l.WaitForDrain(context.Background()); err != nil {
		t.Fatalf("idle drain: %v", err)
	}

	if err := l.Acquire(context.Background()); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	if err := l.WaitForDrain(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("WaitForDrain() error = %v, want deadline", err)
	}

	go func() {
		time.Sleep(20 * time.Millisecond)
		l.Release()
	}()
	if err := l.WaitForDrain(context.Background()); err != nil {
		t.Errorf("WaitForDrain() error = %v", err)
	}
}

func TestRenderLimiter_Defaults(t *testing.T) {
	l := NewRenderLimiter(0, 0)
	if got := l.Status().MaxConcurrent; got != DefaultMaxConcurrentExports {
		t.Errorf("MaxConcurrent = %d, want %d", got, DefaultMaxConcurrentExports)
	}
	if l.maxWait != DefaultExportWait {
		t.Errorf("maxWait = %v, want %v", l.maxWait, DefaultExportWait)
	}
}
