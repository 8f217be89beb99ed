package worker

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewPool(t *testing.T) {
	pool := NewPool(testLogger())
	if pool == nil {
		t.Fatal("expected pool, got nil")
	}
	if pool.Context() == nil {
		t.Fatal("expected pool context, got nil")
	}
	select {
	case <-pool.Context().Done():
		t.Fatal("new pool context should not be done")
	default:
	}
}

func TestPoolSubmit(t *testing.T) {
	pool := NewPool(testLogger())

	var counter int64
	for i := 0; i < 10; i++ {
		pool.Submit(func(ctx context.Context) {
			atomic.AddInt64(&counter, 1)
		})
	}

	pool.Shutdown(5 * time.Second)

	if got := atomic.LoadInt64(&counter); got != 10 {
		t.Fatalf("expected 10 completed tasks, got %d", got)
	}
}

func TestPoolSubmitWithTimeout(t *testing.T) {
	pool := NewPool(testLogger())

	done := make(chan struct{})
	pool.SubmitWithTimeout(50*time.Millisecond, func(ctx context.Context) {
		// The task outlives its deadline; the context must expire first
		<-ctx.Done()
		close(done)
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("task context was never canceled by the timeout")
	}

	pool.Shutdown(time.Second)
}

func TestPoolContext(t *testing.T) {
	pool := NewPool(testLogger())

	ctx := pool.Context()
	pool.Shutdown(time.Second)

	select {
	case <-ctx.Done():
	default:
		t.Fatal("pool context should be done after shutdown")
	}
}

func TestPoolShutdownWaitsForTasks(t *testing.T) {
	pool := NewPool(testLogger())

	var finished int64
	pool.Submit(func(ctx context.Context) {
		time.Sleep(100 * time.Millisecond)
		atomic.AddInt64(&finished, 1)
	})

	pool.Shutdown(5 * time.Second)

	if atomic.LoadInt64(&finished) != 1 {
		t.Fatal("shutdown returned before the in-flight task completed")
	}
}
